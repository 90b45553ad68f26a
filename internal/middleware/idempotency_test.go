package middleware

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/wavepay/wavepay/internal/logging"
)

func setupTestApp(t *testing.T) (*fiber.App, *int) {
	t.Helper()
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { cache.Close() })

	app := fiber.New()
	app.Use(Idempotency(cache, time.Minute, logging.Discard()))

	// Stand-in for the transaction record endpoint: every real invocation
	// mints a new transaction number.
	invocations := 0
	app.Post("/transactions", func(c *fiber.Ctx) error {
		invocations++
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"transaction_number": uuid.NewString()})
	})

	return app, &invocations
}

func postTransaction(t *testing.T, app *fiber.App, idemKey string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, "/transactions", strings.NewReader(`{"amount":10}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if idemKey != "" {
		req.Header.Set(idempotencyKeyHeader, idemKey)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, string(body)
}

func TestIdempotencyRequiresHeader(t *testing.T) {
	app, _ := setupTestApp(t)

	status, _ := postTransaction(t, app, "")
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected %d got %d", fiber.StatusBadRequest, status)
	}
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	app, invocations := setupTestApp(t)

	status, first := postTransaction(t, app, "txn-key-1")
	if status != fiber.StatusCreated {
		t.Fatalf("expected status %d got %d", fiber.StatusCreated, status)
	}

	status, second := postTransaction(t, app, "txn-key-1")
	if status != fiber.StatusCreated {
		t.Fatalf("expected replayed status %d got %d", fiber.StatusCreated, status)
	}
	if first != second {
		t.Fatalf("replay differs: %s vs %s", first, second)
	}
	if *invocations != 1 {
		t.Fatalf("handler ran %d times, want 1", *invocations)
	}
}

func TestIdempotencyDistinctKeysRecordSeparately(t *testing.T) {
	app, invocations := setupTestApp(t)

	_, first := postTransaction(t, app, "txn-key-1")
	_, second := postTransaction(t, app, "txn-key-2")
	if first == second {
		t.Fatalf("distinct keys replayed the same response")
	}
	if *invocations != 2 {
		t.Fatalf("handler ran %d times, want 2", *invocations)
	}
}
