package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wavepay/wavepay/internal/country"
)

// RegisterCountryRoutes wires the calling-code to currency lookup.
func RegisterCountryRoutes(r fiber.Router, h *country.Handler) {
	r.Get("/country-codes/:callingCode", h.Lookup)
}
