package CronJobs

import (
	"context"
	"time"

	"IranElaj/Repositories"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// OTPSweeper clears OTP pairs whose expiry has passed. Expired codes are
// already rejected at login; this only keeps the users table tidy.
type OTPSweeper struct {
	Users  Repositories.UserRepository
	Logger *zap.Logger
	Now    func() time.Time
}

func NewOTPSweeper(users Repositories.UserRepository, logger *zap.Logger) *OTPSweeper {
	return &OTPSweeper{
		Users:  users,
		Logger: logger,
		Now:    time.Now,
	}
}

// StartSweepCron runs Sweep every interval until the returned scheduler is stopped.
func (s *OTPSweeper) StartSweepCron(interval time.Duration) (*gocron.Scheduler, error) {
	scheduler := gocron.NewScheduler(time.UTC)

	_, err := scheduler.Every(interval).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := s.Sweep(ctx); err != nil {
			s.Logger.Error("OTP sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, err
	}

	scheduler.StartAsync()
	s.Logger.Info("OTP sweeper started", zap.Duration("interval", interval))
	return scheduler, nil
}

func (s *OTPSweeper) Sweep(ctx context.Context) (int64, error) {
	cleared, err := s.Users.ClearExpiredOTPs(ctx, s.Now())
	if err != nil {
		return 0, err
	}
	if cleared > 0 {
		s.Logger.Info("Cleared expired OTPs", zap.Int64("count", cleared))
	}
	return cleared, nil
}
