package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/wavepay/wavepay/internal/notify"
)

const (
	codePrefix     = "otp:v1:"
	attemptsPrefix = "otp:attempts:v1:"
	maxAttempts    = 5
	codeDigits     = 1000000
)

var (
	// ErrCodeExpired indicates no live code exists for the phone number.
	ErrCodeExpired = errors.New("otp expired or never requested")

	// ErrCodeMismatch indicates the submitted code is wrong.
	ErrCodeMismatch = errors.New("otp does not match")

	// ErrTooManyAttempts indicates the verify budget was burned; a fresh code
	// must be requested.
	ErrTooManyAttempts = errors.New("too many otp attempts")
)

// Service issues and verifies one-time sign-in codes. Codes live in Redis,
// hashed at rest, and expire after the configured TTL.
type Service struct {
	cache    *redis.Client
	notifier notify.Notifier
	ttl      time.Duration
}

// NewService builds an OTP service.
func NewService(cache *redis.Client, notifier notify.Notifier, ttl time.Duration) *Service {
	return &Service{cache: cache, notifier: notifier, ttl: ttl}
}

// Request generates a six digit code for the phone number, stores its hash
// with a TTL and hands the plaintext to the notifier for delivery.
func (s *Service) Request(ctx context.Context, phone string) error {
	if phone == "" {
		return fmt.Errorf("phone number is required")
	}

	n, err := rand.Int(rand.Reader, big.NewInt(codeDigits))
	if err != nil {
		return err
	}
	code := fmt.Sprintf("%06d", n.Int64())

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.cache.Set(ctx, codePrefix+phone, hash, s.ttl).Err(); err != nil {
		return err
	}
	if err := s.cache.Del(ctx, attemptsPrefix+phone).Err(); err != nil {
		return err
	}

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notify.Message{
			Kind:        notify.KindOTP,
			Destination: phone,
			Body:        fmt.Sprintf("Your WavePay sign-in code is %s", code),
		})
	}
	return nil
}

// Verify checks a submitted code. A correct code is single-use; repeated
// wrong codes burn the attempt budget and expire the code early.
func (s *Service) Verify(ctx context.Context, phone, code string) error {
	hash, err := s.cache.Get(ctx, codePrefix+phone).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCodeExpired
	}
	if err != nil {
		return err
	}

	attempts, err := s.cache.Incr(ctx, attemptsPrefix+phone).Result()
	if err != nil {
		return err
	}
	if attempts == 1 {
		s.cache.Expire(ctx, attemptsPrefix+phone, s.ttl)
	}
	if attempts > maxAttempts {
		s.cache.Del(ctx, codePrefix+phone, attemptsPrefix+phone)
		return ErrTooManyAttempts
	}

	if bcrypt.CompareHashAndPassword(hash, []byte(code)) != nil {
		return ErrCodeMismatch
	}

	s.cache.Del(ctx, codePrefix+phone, attemptsPrefix+phone)
	return nil
}
