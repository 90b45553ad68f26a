package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wavepay/wavepay/internal/ledger"
)

// RegisterTransactionRoutes wires the append-only transaction ledger.
func RegisterTransactionRoutes(r fiber.Router, h *ledger.Handler) {
	r.Post("/transactions", h.Record)
	r.Get("/transactions/:phoneNumber", h.List)
}
