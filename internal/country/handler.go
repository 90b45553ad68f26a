package country

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the calling-code lookup endpoint.
type Handler struct {
	service *Service
}

// NewHandler builds a country lookup HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Lookup resolves a calling code to country and currency metadata.
func (h *Handler) Lookup(c *fiber.Ctx) error {
	res, err := h.service.Resolve(c.UserContext(), c.Params("callingCode"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "country data not found")
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{
		"country_code": res.CountryCode,
		"currency":     res.Currency,
	})
}
