package Repositories

import (
	"context"
	"sync"
	"time"

	"IranElaj/Models"

	"github.com/google/uuid"
)

// MemoryUserRepository backs the API when the database is disabled.
type MemoryUserRepository struct {
	mu         sync.RWMutex
	users      map[string]Models.User // id -> user
	byWhatsApp map[string]string      // whatsapp -> id
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users:      map[string]Models.User{},
		byWhatsApp: map[string]string{},
	}
}

func (r *MemoryUserRepository) Create(_ context.Context, user *Models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byWhatsApp[user.WhatsApp]; exists {
		return ErrDuplicate
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Role == "" {
		user.Role = Models.RoleUser
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	r.users[user.ID] = *user
	r.byWhatsApp[user.WhatsApp] = user.ID
	return nil
}

func (r *MemoryUserRepository) FindByID(_ context.Context, id string) (*Models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (r *MemoryUserRepository) FindByWhatsApp(ctx context.Context, whatsapp string) (*Models.User, error) {
	r.mu.RLock()
	id, ok := r.byWhatsApp[whatsapp]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *MemoryUserRepository) SetOTP(_ context.Context, userID, code string, expiry time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		return ErrNotFound
	}
	user.SetOTP(code, expiry)
	user.UpdatedAt = time.Now()
	r.users[userID] = user
	return nil
}

func (r *MemoryUserRepository) ConsumeOTP(_ context.Context, userID, code string, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok || !user.HasValidOTP(code, now) {
		return false, nil
	}
	user.ClearOTP()
	user.UpdatedAt = time.Now()
	r.users[userID] = user
	return true, nil
}

func (r *MemoryUserRepository) ClearExpiredOTPs(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var cleared int64
	for id, user := range r.users {
		if user.OTPExpiry != nil && !now.Before(*user.OTPExpiry) {
			user.ClearOTP()
			r.users[id] = user
			cleared++
		}
	}
	return cleared, nil
}
