package Repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"IranElaj/Models"

	"gorm.io/gorm"
)

type PostgresUserRepository struct {
	db *gorm.DB
}

func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, user *Models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *PostgresUserRepository) FindByID(ctx context.Context, id string) (*Models.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *PostgresUserRepository) FindByWhatsApp(ctx context.Context, whatsapp string) (*Models.User, error) {
	return r.findOne(ctx, "whatsapp = ?", whatsapp)
}

func (r *PostgresUserRepository) findOne(ctx context.Context, query string, arg interface{}) (*Models.User, error) {
	var user Models.User
	if err := r.db.WithContext(ctx).Where(query, arg).Take(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

func (r *PostgresUserRepository) SetOTP(ctx context.Context, userID, code string, expiry time.Time) error {
	result := r.db.WithContext(ctx).Model(&Models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{"otp": code, "otp_expiry": expiry})
	if result.Error != nil {
		return fmt.Errorf("set otp: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ConsumeOTP is a single conditional UPDATE so two concurrent logins cannot both use one code.
func (r *PostgresUserRepository) ConsumeOTP(ctx context.Context, userID, code string, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&Models.User{}).
		Where("id = ? AND otp = ? AND otp_expiry > ?", userID, code, now).
		Updates(map[string]interface{}{"otp": nil, "otp_expiry": nil})
	if result.Error != nil {
		return false, fmt.Errorf("consume otp: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *PostgresUserRepository) ClearExpiredOTPs(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&Models.User{}).
		Where("otp_expiry IS NOT NULL AND otp_expiry <= ?", now).
		Updates(map[string]interface{}{"otp": nil, "otp_expiry": nil})
	if result.Error != nil {
		return 0, fmt.Errorf("clear expired otps: %w", result.Error)
	}
	return result.RowsAffected, nil
}
