package Models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// PasswordCost is the bcrypt cost used at registration.
const PasswordCost = 12

type User struct {
	ID        string     `gorm:"type:uuid;primaryKey" json:"id"`
	FullName  string     `gorm:"size:255;not null" json:"fullName"`
	WhatsApp  string     `gorm:"column:whatsapp;size:32;not null;uniqueIndex" json:"whatsapp"`
	Email     *string    `gorm:"size:255" json:"email,omitempty"`
	Password  *string    `gorm:"size:255" json:"-"`
	OTP       *string    `gorm:"column:otp;size:6" json:"-"`
	OTPExpiry *time.Time `gorm:"column:otp_expiry" json:"-"`
	Role      Role       `gorm:"size:16;not null;default:user" json:"role"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func (user *User) BeforeCreate(tx *gorm.DB) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Role == "" {
		user.Role = RoleUser
	}
	return nil
}

func (user *User) IsAdmin() bool {
	return user.Role == RoleAdmin
}

// HasValidOTP reports whether code matches the stored OTP and now is strictly before its expiry.
func (user *User) HasValidOTP(code string, now time.Time) bool {
	if user.OTP == nil || user.OTPExpiry == nil || code == "" {
		return false
	}
	return *user.OTP == code && now.Before(*user.OTPExpiry)
}

func (user *User) SetOTP(code string, expiry time.Time) {
	user.OTP = &code
	user.OTPExpiry = &expiry
}

func (user *User) ClearOTP() {
	user.OTP = nil
	user.OTPExpiry = nil
}

// SetPassword stores the bcrypt hash of password and normalizes identity fields.
func (user *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return err
	}
	hashed := string(hashedPassword)
	user.Password = &hashed
	user.FullName = strings.TrimSpace(user.FullName)
	user.WhatsApp = strings.TrimSpace(user.WhatsApp)
	return nil
}

// VerifyPassword fails when no hash is stored or the password does not match.
func (user *User) VerifyPassword(password string) error {
	if user.Password == nil || *user.Password == "" {
		return bcrypt.ErrMismatchedHashAndPassword
	}
	return bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(password))
}

// PrepareGive strips credential material before a user leaves the process.
func (user *User) PrepareGive() {
	user.Password = nil
	user.ClearOTP()
}
