package OTP

import (
	"crypto/rand"
	"io"
	"math/big"
	"strconv"
	"time"
)

const (
	DefaultTTL = 10 * time.Minute

	minCode = 100000
	span    = 900000
)

type Code struct {
	Value     string
	ExpiresAt time.Time
}

// Generator produces six digit codes. The zero value uses crypto/rand and DefaultTTL.
type Generator struct {
	Rand io.Reader
	TTL  time.Duration
}

// Generate returns a code uniformly drawn from [100000, 999999] expiring TTL after now.
func (g Generator) Generate(now time.Time) (Code, error) {
	r := g.Rand
	if r == nil {
		r = rand.Reader
	}
	ttl := g.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	n, err := rand.Int(r, big.NewInt(span))
	if err != nil {
		return Code{}, err
	}
	return Code{
		Value:     strconv.FormatInt(n.Int64()+minCode, 10),
		ExpiresAt: now.Add(ttl),
	}, nil
}

func Generate(now time.Time) (Code, error) {
	return Generator{}.Generate(now)
}
