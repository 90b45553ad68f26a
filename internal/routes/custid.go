package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wavepay/wavepay/internal/custid"
)

// RegisterCustIDRoutes wires customer id allocation. Allocation mutates the
// counter, so it is a POST command rather than a GET.
func RegisterCustIDRoutes(r fiber.Router, h *custid.Handler) {
	r.Post("/custids", h.Allocate)
}
