package fx

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/wavepay/wavepay/internal/ledger"
	"github.com/wavepay/wavepay/internal/payaddr"
	"github.com/wavepay/wavepay/internal/user"
)

// Handler exposes the transfer endpoint.
type Handler struct {
	service *Service
}

// NewHandler builds a transfer HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type transferRequest struct {
	SenderPhoneNumber string  `json:"sender_phone_number"`
	RecipientAddress  string  `json:"recipient_address"`
	Amount            float64 `json:"amount"`
	TransactionNumber string  `json:"transaction_number"`
	SourceAccount     string  `json:"source_account"`
}

// Transfer converts and records a payment between two users.
func (h *Handler) Transfer(c *fiber.Ctx) error {
	var req transferRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	res, err := h.service.Transfer(c.UserContext(), TransferInput{
		SenderPhoneNumber: req.SenderPhoneNumber,
		RecipientAddress:  req.RecipientAddress,
		Amount:            req.Amount,
		TransactionNumber: req.TransactionNumber,
		SourceAccount:     req.SourceAccount,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation), errors.Is(err, ledger.ErrValidation),
			errors.Is(err, payaddr.ErrMalformed), errors.Is(err, payaddr.ErrUnsupportedVersion):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		case errors.Is(err, user.ErrNotFound):
			return fiber.NewError(http.StatusNotFound, "sender not registered")
		case errors.Is(err, ErrUpstream):
			return fiber.NewError(http.StatusBadGateway, "exchange rate unavailable")
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"transaction_number": res.Debit.TransactionNumber,
		"rate":               res.Rate,
		"debit_amount":       res.Debit.DebitAmount,
		"credit_amount":      res.Credit.CreditAmount,
		"transaction_time":   res.Debit.TransactionTime,
	})
}
