package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wavepay/wavepay/internal/fx"
	"github.com/wavepay/wavepay/internal/payaddr"
)

// RegisterTransferRoutes wires the conversion-and-record transfer flow.
func RegisterTransferRoutes(r fiber.Router, h *fx.Handler) {
	r.Post("/transfers", h.Transfer)
}

// RegisterPaymentAddressRoutes wires QR-scan payment address resolution.
func RegisterPaymentAddressRoutes(r fiber.Router, h *payaddr.Handler) {
	r.Get("/payment-addresses/:address", h.Resolve)
}
