package custid

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes customer id allocation over HTTP.
type Handler struct {
	service *Service
}

// NewHandler builds an allocator HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Allocate issues a new customer id. Allocation mutates the counter, so it is
// exposed as a POST command rather than a GET.
func (h *Handler) Allocate(c *fiber.Ctx) error {
	id, err := h.service.Next(c.UserContext())
	if err != nil {
		if errors.Is(err, ErrContention) {
			return fiber.NewError(http.StatusServiceUnavailable, "allocator busy, retry")
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"cust_id": id})
}
