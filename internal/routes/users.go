package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/wavepay/wavepay/internal/middleware"
	"github.com/wavepay/wavepay/internal/user"
)

// RegisterUserRoutes wires the user directory endpoints. Registration is rate
// limited per phone number to blunt bulk signup abuse.
func RegisterUserRoutes(r fiber.Router, h *user.Handler, cache *redis.Client) {
	r.Post("/users", middleware.RateLimit(cache, "register", 5, time.Minute), h.Create)
	r.Get("/users/:phoneNumbers", h.Get)
	r.Get("/users/:phoneNumbers/exists", h.Exists)
	r.Put("/users/:phoneNumber/profile-image", h.UpdateProfileImage)
}
