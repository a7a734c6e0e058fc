package Repositories

import (
	"context"
	"errors"
	"time"

	"IranElaj/Models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

type UserRepository interface {
	// Create fails with ErrDuplicate when the WhatsApp number is already registered.
	Create(ctx context.Context, user *Models.User) error
	FindByID(ctx context.Context, id string) (*Models.User, error)
	FindByWhatsApp(ctx context.Context, whatsapp string) (*Models.User, error)
	// SetOTP stores the code and its expiry together.
	SetOTP(ctx context.Context, userID, code string, expiry time.Time) error
	// ConsumeOTP clears the stored OTP only if it equals code and has not expired at now.
	// It reports whether this call consumed it.
	ConsumeOTP(ctx context.Context, userID, code string, now time.Time) (bool, error)
	ClearExpiredOTPs(ctx context.Context, now time.Time) (int64, error)
}

type ListFilter struct {
	Status Models.RequestStatus
	UserID string
}

type RequestRepository interface {
	Create(ctx context.Context, request *Models.MedicalRequest) error
	// List returns requests newest first with user and files loaded.
	List(ctx context.Context, filter ListFilter) ([]Models.MedicalRequest, error)
	FindByID(ctx context.Context, id string) (*Models.MedicalRequest, error)
	UpdateStatus(ctx context.Context, id string, status Models.RequestStatus) (*Models.MedicalRequest, error)
	CountByStatus(ctx context.Context) (map[Models.RequestStatus]int64, error)
}
