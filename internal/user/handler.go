package user

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes user directory HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a user HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	PhoneNumber    string `json:"phone_number"`
	CallingCode    string `json:"calling_code"`
	FirstName      string `json:"first_name"`
	MiddleName     string `json:"middle_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	CurrencyCode   string `json:"currency_code"`
	CurrencyName   string `json:"currency_name"`
	CurrencySymbol string `json:"currency_symbol"`
	PaymentAddress string `json:"payment_address"`
}

type userResponse struct {
	PhoneNumber    string `json:"phone_number"`
	CallingCode    string `json:"calling_code"`
	FirstName      string `json:"first_name"`
	MiddleName     string `json:"middle_name,omitempty"`
	LastName       string `json:"last_name,omitempty"`
	Email          string `json:"email"`
	CurrencyCode   string `json:"currency_code"`
	CurrencyName   string `json:"currency_name"`
	CurrencySymbol string `json:"currency_symbol"`
	ProfileImage   string `json:"profile_image,omitempty"`
	PaymentAddress string `json:"payment_address"`
}

func toResponse(u User) userResponse {
	return userResponse{
		PhoneNumber:    u.PhoneNumber,
		CallingCode:    u.CallingCode,
		FirstName:      u.FirstName,
		MiddleName:     u.MiddleName,
		LastName:       u.LastName,
		Email:          u.Email,
		CurrencyCode:   u.CurrencyCode,
		CurrencyName:   u.CurrencyName,
		CurrencySymbol: u.CurrencySymbol,
		ProfileImage:   u.ProfileImage,
		PaymentAddress: u.PaymentAddress,
	}
}

// Create registers a new user from the registration flow.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	created, err := h.service.Create(c.UserContext(), CreateInput(req))
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrConflict):
			return fiber.NewError(http.StatusConflict, "phone number already registered")
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.Status(http.StatusCreated).JSON(toResponse(created))
}

// Get returns one user, or an array when the path segment holds a
// comma-separated phone number list.
func (h *Handler) Get(c *fiber.Ctx) error {
	phones := splitPhones(c.Params("phoneNumbers"))
	switch len(phones) {
	case 0:
		return fiber.NewError(http.StatusBadRequest, "phone number is required")
	case 1:
		u, err := h.service.Get(c.UserContext(), phones[0])
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "user not found")
		}
		if err != nil {
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(toResponse(u))
	default:
		users, err := h.service.GetBatch(c.UserContext(), phones)
		if err != nil {
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
		out := make([]userResponse, 0, len(users))
		for _, u := range users {
			out = append(out, toResponse(u))
		}
		return c.JSON(out)
	}
}

// Exists answers whether phone numbers are registered, one or many per call.
func (h *Handler) Exists(c *fiber.Ctx) error {
	phones := splitPhones(c.Params("phoneNumbers"))
	switch len(phones) {
	case 0:
		return fiber.NewError(http.StatusBadRequest, "phone number is required")
	case 1:
		exists, err := h.service.Exists(c.UserContext(), phones[0])
		if err != nil {
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"user_exists": exists})
	default:
		results, err := h.service.ExistsBatch(c.UserContext(), phones)
		if err != nil {
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
		out := make([]fiber.Map, 0, len(results))
		for _, r := range results {
			out = append(out, fiber.Map{"phone_number": r.PhoneNumber, "exists": r.Exists})
		}
		return c.JSON(fiber.Map{"results": out})
	}
}

type profileImageRequest struct {
	ProfileImage string `json:"profile_image"`
}

// UpdateProfileImage stores a new profile image reference.
func (h *Handler) UpdateProfileImage(c *fiber.Ctx) error {
	var req profileImageRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	updated, err := h.service.UpdateProfileImage(c.UserContext(), c.Params("phoneNumber"), req.ProfileImage)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrNotFound):
			return fiber.NewError(http.StatusNotFound, "user not found")
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(toResponse(updated))
}

func splitPhones(raw string) []string {
	var phones []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			phones = append(phones, p)
		}
	}
	return phones
}
