package Services

import (
	"context"
	"errors"
	"strings"
	"time"

	"IranElaj/Config"
	"IranElaj/Models"
	"IranElaj/Repositories"
	"IranElaj/Utils/OTP"
	"IranElaj/Utils/Token"
	"IranElaj/Whatsapp"

	"go.uber.org/zap"
)

type RegisterInput struct {
	FullName string
	WhatsApp string
	Email    string
	Password string
}

// Credentials selects the OTP path when OTP is set, the password path otherwise.
type Credentials struct {
	WhatsApp string
	Password string
	OTP      string
}

type OTPResult struct {
	WhatsAppLink string
	Code         string
	ExpiresAt    time.Time
}

type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *Models.User
}

type AuthService struct {
	cfg      *Config.Config
	users    Repositories.UserRepository
	issuer   *Token.Issuer
	otp      OTP.Generator
	throttle OTPThrottle
	logger   *zap.Logger
	now      func() time.Time
}

func NewAuthService(cfg *Config.Config, users Repositories.UserRepository, issuer *Token.Issuer, throttle OTPThrottle, logger *zap.Logger) *AuthService {
	if throttle == nil {
		throttle = NoopThrottle{}
	}
	return &AuthService{
		cfg:      cfg,
		users:    users,
		issuer:   issuer,
		throttle: throttle,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock replaces the clock used for OTP issue and verification.
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	s.now = now
	return s
}

// WithOTPGenerator replaces the code generator.
func (s *AuthService) WithOTPGenerator(g OTP.Generator) *AuthService {
	s.otp = g
	return s
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*Models.User, error) {
	input.FullName = strings.TrimSpace(input.FullName)
	input.WhatsApp = strings.TrimSpace(input.WhatsApp)
	input.Email = strings.TrimSpace(input.Email)
	if input.FullName == "" || input.WhatsApp == "" || input.Password == "" {
		return nil, validationError("Full name, WhatsApp, and password are required")
	}

	_, err := s.users.FindByWhatsApp(ctx, input.WhatsApp)
	switch {
	case err == nil:
		return nil, ErrDuplicateWhatsApp
	case !errors.Is(err, Repositories.ErrNotFound):
		s.logger.Error("Register lookup failed", zap.Error(err))
		return nil, internalError("registration failed", err)
	}

	user := &Models.User{
		FullName: input.FullName,
		WhatsApp: input.WhatsApp,
		Role:     Models.RoleUser,
	}
	if input.Email != "" {
		user.Email = &input.Email
	}
	if err := user.SetPassword(input.Password); err != nil {
		return nil, internalError("registration failed", err)
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, Repositories.ErrDuplicate) {
			return nil, ErrDuplicateWhatsApp
		}
		s.logger.Error("Register insert failed", zap.Error(err))
		return nil, internalError("registration failed", err)
	}

	s.logger.Info("User registered", zap.String("user_id", user.ID))
	user.PrepareGive()
	return user, nil
}

// RequestOTP stores a fresh code on the user and returns the wa.me link that carries it.
func (s *AuthService) RequestOTP(ctx context.Context, whatsapp string) (*OTPResult, error) {
	whatsapp = strings.TrimSpace(whatsapp)
	if whatsapp == "" {
		return nil, validationError("WhatsApp number is required")
	}

	user, err := s.users.FindByWhatsApp(ctx, whatsapp)
	if err != nil {
		if errors.Is(err, Repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("OTP lookup failed", zap.Error(err))
		return nil, internalError("failed to send otp", err)
	}

	allowed, err := s.throttle.Allow(ctx, whatsapp)
	if err != nil {
		s.logger.Warn("OTP throttle unavailable, allowing send", zap.Error(err))
	} else if !allowed {
		return nil, ErrOTPThrottled
	}

	code, err := s.otp.Generate(s.now())
	if err != nil {
		s.releaseThrottle(ctx, whatsapp)
		return nil, internalError("failed to send otp", err)
	}
	if err := s.users.SetOTP(ctx, user.ID, code.Value, code.ExpiresAt); err != nil {
		s.logger.Error("OTP store failed", zap.String("user_id", user.ID), zap.Error(err))
		s.releaseThrottle(ctx, whatsapp)
		return nil, internalError("failed to send otp", err)
	}

	if s.cfg.OTPExposedInResponse {
		s.logger.Debug("OTP issued", zap.String("user_id", user.ID), zap.String("otp", code.Value))
	} else {
		s.logger.Info("OTP issued", zap.String("user_id", user.ID))
	}

	return &OTPResult{
		WhatsAppLink: Whatsapp.BuildLink(whatsapp, Whatsapp.OTPMessage(code.Value)),
		Code:         code.Value,
		ExpiresAt:    code.ExpiresAt,
	}, nil
}

// releaseThrottle lets the user retry at once after a send that never stored a code.
func (s *AuthService) releaseThrottle(ctx context.Context, whatsapp string) {
	if err := s.throttle.Release(ctx, whatsapp); err != nil {
		s.logger.Warn("OTP throttle release failed", zap.Error(err))
	}
}

func (s *AuthService) Authenticate(ctx context.Context, creds Credentials) (*Session, error) {
	creds.WhatsApp = strings.TrimSpace(creds.WhatsApp)
	creds.OTP = strings.TrimSpace(creds.OTP)
	if creds.WhatsApp == "" {
		return nil, validationError("WhatsApp number is required")
	}
	if creds.OTP == "" && creds.Password == "" {
		return nil, validationError("password or otp is required")
	}

	user, err := s.users.FindByWhatsApp(ctx, creds.WhatsApp)
	if err != nil {
		if errors.Is(err, Repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("Login lookup failed", zap.Error(err))
		return nil, internalError("login failed", err)
	}

	if creds.OTP != "" {
		ok, err := s.users.ConsumeOTP(ctx, user.ID, creds.OTP, s.now())
		if err != nil {
			s.logger.Error("OTP consume failed", zap.String("user_id", user.ID), zap.Error(err))
			return nil, internalError("login failed", err)
		}
		if !ok {
			s.logger.Warn("Login failed", zap.String("user_id", user.ID), zap.String("reason", "invalid_otp"))
			return nil, ErrInvalidOrExpiredOTP
		}
		user.ClearOTP()
	} else if err := user.VerifyPassword(creds.Password); err != nil {
		s.logger.Warn("Login failed", zap.String("user_id", user.ID), zap.String("reason", "invalid_password"))
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.issuer.GenerateToken(user.ID, string(user.Role), user.WhatsApp)
	if err != nil {
		return nil, internalError("login failed", err)
	}

	s.logger.Info("User logged in", zap.String("user_id", user.ID), zap.Bool("otp", creds.OTP != ""))
	user.PrepareGive()
	return &Session{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// CurrentUser loads the user behind a verified session.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*Models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, Repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, internalError("failed to load user", err)
	}
	user.PrepareGive()
	return user, nil
}
