package payaddr

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/wavepay/wavepay/internal/user"
)

// Handler resolves scanned payment addresses into recipient details.
type Handler struct {
	users *user.Service
}

// NewHandler builds a payment address HTTP handler.
func NewHandler(users *user.Service) *Handler {
	return &Handler{users: users}
}

// Resolve decodes a payment address and, when the encoded phone number is
// registered, joins in the directory's current view of the recipient.
func (h *Handler) Resolve(c *fiber.Ctx) error {
	addr, err := Decode(c.Params("address"))
	if err != nil {
		if errors.Is(err, ErrUnsupportedVersion) {
			return fiber.NewError(http.StatusBadRequest, "unsupported payment address version")
		}
		return fiber.NewError(http.StatusBadRequest, "malformed payment address")
	}

	resp := fiber.Map{
		"phone_number":  addr.PhoneNumber,
		"display_name":  addr.DisplayName,
		"currency_code": addr.CurrencyCode,
		"cust_id":       addr.CustID,
		"registered":    false,
	}

	recipient, err := h.users.Get(c.UserContext(), addr.PhoneNumber)
	switch {
	case err == nil:
		resp["registered"] = true
		resp["display_name"] = recipient.DisplayName()
		resp["currency_code"] = recipient.CurrencyCode
		resp["currency_symbol"] = recipient.CurrencySymbol
	case errors.Is(err, user.ErrNotFound):
		// Keep the decoded view; the recipient may register later.
	default:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(resp)
}
