package Services

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// OTPThrottle decides whether another code may be sent to a number right now.
type OTPThrottle interface {
	Allow(ctx context.Context, whatsapp string) (bool, error)
	// Release hands back a slot taken by Allow when no code went out.
	Release(ctx context.Context, whatsapp string) error
}

type NoopThrottle struct{}

func (NoopThrottle) Allow(context.Context, string) (bool, error) { return true, nil }

func (NoopThrottle) Release(context.Context, string) error { return nil }

// RedisOTPThrottle allows one send per interval per number.
type RedisOTPThrottle struct {
	client   *redis.Client
	interval time.Duration
	prefix   string
}

func NewRedisOTPThrottle(client *redis.Client, interval time.Duration) *RedisOTPThrottle {
	return &RedisOTPThrottle{client: client, interval: interval, prefix: "iranelaj:otp:"}
}

func (t *RedisOTPThrottle) Allow(ctx context.Context, whatsapp string) (bool, error) {
	if t.interval <= 0 {
		return true, nil
	}
	return t.client.SetNX(ctx, t.prefix+whatsapp, time.Now().Unix(), t.interval).Result()
}

func (t *RedisOTPThrottle) Release(ctx context.Context, whatsapp string) error {
	return t.client.Del(ctx, t.prefix+whatsapp).Err()
}
