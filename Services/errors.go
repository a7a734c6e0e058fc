package Services

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindAuthentication
	KindRateLimited
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindAuthentication:
		return "authentication"
	case KindRateLimited:
		return "rate_limited"
	default:
		return "internal"
	}
}

// Error carries a client-safe Message; Err keeps the underlying cause for logs.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error by kind and message, so sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

var (
	ErrUserNotFound        = &Error{Kind: KindNotFound, Message: "User not found"}
	ErrRequestNotFound     = &Error{Kind: KindNotFound, Message: "Request not found"}
	ErrDuplicateWhatsApp   = &Error{Kind: KindConflict, Message: "User with this WhatsApp number already exists"}
	ErrInvalidCredentials  = &Error{Kind: KindAuthentication, Message: "invalid credentials"}
	ErrInvalidOrExpiredOTP = &Error{Kind: KindAuthentication, Message: "invalid or expired otp"}
	ErrOTPThrottled        = &Error{Kind: KindRateLimited, Message: "please wait before requesting another code"}
)

func validationError(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func internalError(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf reports the Kind of err, treating anything that is not an *Error as internal.
func KindOf(err error) Kind {
	var serviceErr *Error
	if errors.As(err, &serviceErr) {
		return serviceErr.Kind
	}
	return KindInternal
}
