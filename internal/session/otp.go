package session

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrOTPInvalid is returned when the code is wrong, expired, or was never issued
var ErrOTPInvalid = errors.New("invalid or expired code")

// OTPStore keeps one-time login codes in Redis with a TTL. Codes are removed
// on successful verification or when they expire, whichever comes first.
type OTPStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewOTPStore creates a new OTP store
func NewOTPStore(client *redis.Client, ttl time.Duration) *OTPStore {
	return &OTPStore{
		client: client,
		ttl:    ttl,
	}
}

func otpKey(email string) string {
	return "otp:" + email
}

// Issue generates a 6-digit code for the email and stores it under the TTL.
// Issuing again overwrites the previous code.
func (s *OTPStore) Issue(ctx context.Context, email string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	code := fmt.Sprintf("%06d", n.Int64())

	if err := s.client.Set(ctx, otpKey(email), code, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store code: %w", err)
	}

	return code, nil
}

// Verify redeems a code. The code is deleted on success so it cannot be replayed.
func (s *OTPStore) Verify(ctx context.Context, email, code string) error {
	stored, err := s.client.Get(ctx, otpKey(email)).Result()
	if err == redis.Nil {
		return ErrOTPInvalid
	}
	if err != nil {
		return fmt.Errorf("failed to load code: %w", err)
	}

	if stored != code {
		return ErrOTPInvalid
	}

	if err := s.client.Del(ctx, otpKey(email)).Err(); err != nil {
		return fmt.Errorf("failed to delete code: %w", err)
	}

	return nil
}
