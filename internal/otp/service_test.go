package otp

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/wavepay/wavepay/internal/notify"
)

type captureNotifier struct {
	last notify.Message
}

func (n *captureNotifier) Send(_ context.Context, msg notify.Message) error {
	n.last = msg
	return nil
}

func (n *captureNotifier) code() string {
	body := n.last.Body
	if len(body) < 6 {
		return ""
	}
	return body[len(body)-6:]
}

func newTestService(t *testing.T, ttl time.Duration) (*Service, *captureNotifier, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { cache.Close() })
	notifier := &captureNotifier{}
	return NewService(cache, notifier, ttl), notifier, mr
}

func TestRequestAndVerify(t *testing.T) {
	svc, notifier, _ := newTestService(t, time.Minute)
	ctx := context.Background()

	if err := svc.Request(ctx, "+11234567890"); err != nil {
		t.Fatalf("request: %v", err)
	}
	if notifier.last.Kind != notify.KindOTP {
		t.Fatalf("expected otp notification, got %q", notifier.last.Kind)
	}

	if err := svc.Verify(ctx, "+11234567890", notifier.code()); err != nil {
		t.Fatalf("verify: %v", err)
	}

	// The code is single-use.
	if err := svc.Verify(ctx, "+11234567890", notifier.code()); !errors.Is(err, ErrCodeExpired) {
		t.Fatalf("expected expired after use, got %v", err)
	}
}

func TestVerifyWrongCode(t *testing.T) {
	svc, notifier, _ := newTestService(t, time.Minute)
	ctx := context.Background()

	if err := svc.Request(ctx, "+11234567890"); err != nil {
		t.Fatalf("request: %v", err)
	}

	wrong := "000000"
	if wrong == notifier.code() {
		wrong = "000001"
	}
	if err := svc.Verify(ctx, "+11234567890", wrong); !errors.Is(err, ErrCodeMismatch) {
		t.Fatalf("expected mismatch, got %v", err)
	}
	// The right code still works within the attempt budget.
	if err := svc.Verify(ctx, "+11234567890", notifier.code()); err != nil {
		t.Fatalf("verify after one miss: %v", err)
	}
}

func TestVerifyAttemptBudget(t *testing.T) {
	svc, notifier, _ := newTestService(t, time.Minute)
	ctx := context.Background()

	if err := svc.Request(ctx, "+11234567890"); err != nil {
		t.Fatalf("request: %v", err)
	}

	wrong := "000000"
	if wrong == notifier.code() {
		wrong = "000001"
	}
	for i := 0; i < maxAttempts; i++ {
		if err := svc.Verify(ctx, "+11234567890", wrong); !errors.Is(err, ErrCodeMismatch) {
			t.Fatalf("attempt %d: expected mismatch, got %v", i, err)
		}
	}
	if err := svc.Verify(ctx, "+11234567890", notifier.code()); !errors.Is(err, ErrTooManyAttempts) {
		t.Fatalf("expected too many attempts, got %v", err)
	}
	// The code was revoked along with the budget.
	if err := svc.Verify(ctx, "+11234567890", notifier.code()); !errors.Is(err, ErrCodeExpired) {
		t.Fatalf("expected expired after revocation, got %v", err)
	}
}

func TestCodeExpires(t *testing.T) {
	svc, notifier, mr := newTestService(t, time.Minute)
	ctx := context.Background()

	if err := svc.Request(ctx, "+11234567890"); err != nil {
		t.Fatalf("request: %v", err)
	}

	mr.FastForward(2 * time.Minute)
	if err := svc.Verify(ctx, "+11234567890", notifier.code()); !errors.Is(err, ErrCodeExpired) {
		t.Fatalf("expected expired, got %v", err)
	}
}
