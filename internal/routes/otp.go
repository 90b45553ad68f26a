package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/wavepay/wavepay/internal/middleware"
	"github.com/wavepay/wavepay/internal/otp"
)

// RegisterOTPRoutes wires OTP sign-in. Code requests are rate limited per
// phone number.
func RegisterOTPRoutes(r fiber.Router, h *otp.Handler, cache *redis.Client) {
	r.Post("/otp/request", middleware.RateLimit(cache, "otp", 3, time.Minute), h.Request)
	r.Post("/otp/verify", h.Verify)
}
