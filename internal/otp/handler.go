package otp

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/wavepay/wavepay/internal/user"
)

// Handler exposes OTP sign-in endpoints.
type Handler struct {
	service *Service
	users   *user.Service
}

// NewHandler builds an OTP HTTP handler.
func NewHandler(service *Service, users *user.Service) *Handler {
	return &Handler{service: service, users: users}
}

type requestBody struct {
	PhoneNumber string `json:"phone_number"`
	Code        string `json:"code"`
}

// Request issues a fresh code for the phone number.
func (h *Handler) Request(c *fiber.Ctx) error {
	var req requestBody
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.PhoneNumber == "" {
		return fiber.NewError(http.StatusBadRequest, "phone_number is required")
	}
	if err := h.service.Request(c.UserContext(), req.PhoneNumber); err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusAccepted).JSON(fiber.Map{"status": "sent"})
}

// Verify checks a submitted code and reports whether the phone number already
// has a registered profile, so the client knows to continue to registration.
func (h *Handler) Verify(c *fiber.Ctx) error {
	var req requestBody
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.service.Verify(c.UserContext(), req.PhoneNumber, req.Code); err != nil {
		switch {
		case errors.Is(err, ErrCodeExpired), errors.Is(err, ErrCodeMismatch):
			return fiber.NewError(http.StatusUnauthorized, err.Error())
		case errors.Is(err, ErrTooManyAttempts):
			return fiber.NewError(http.StatusTooManyRequests, err.Error())
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}

	registered := false
	if h.users != nil {
		exists, err := h.users.Exists(c.UserContext(), req.PhoneNumber)
		if err != nil {
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
		registered = exists
	}
	return c.JSON(fiber.Map{"verified": true, "registered": registered})
}
