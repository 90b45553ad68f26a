package ledger

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the transaction ledger over HTTP.
type Handler struct {
	service *Service
}

// NewHandler builds a ledger HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type transactionPayload struct {
	PhoneNumber             string  `json:"phone_number"`
	TransactionNumber       string  `json:"transaction_number"`
	Amount                  float64 `json:"amount"`
	SenderName              string  `json:"sender_name"`
	SenderCurrencyCode      string  `json:"sender_currency_code"`
	SenderCurrencySymbol    string  `json:"sender_currency_symbol"`
	RecipientPhoneNumber    string  `json:"recipient_phone_number"`
	RecipientName           string  `json:"recipient_name"`
	RecipientAddress        string  `json:"recipient_address"`
	RecipientCurrencyCode   string  `json:"recipient_currency_code"`
	RecipientCurrencySymbol string  `json:"recipient_currency_symbol"`
	DebitAmount             float64 `json:"debit_amount"`
	CreditAmount            float64 `json:"credit_amount"`
	TransactionType         string  `json:"transaction_type"`
	TransactionTime         string  `json:"transaction_time"`
	SourceAccount           string  `json:"source_account"`
}

func toPayload(txn Transaction) transactionPayload {
	return transactionPayload{
		PhoneNumber:             txn.PhoneNumber,
		TransactionNumber:       txn.TransactionNumber,
		Amount:                  txn.Amount,
		SenderName:              txn.SenderName,
		SenderCurrencyCode:      txn.SenderCurrencyCode,
		SenderCurrencySymbol:    txn.SenderCurrencySymbol,
		RecipientPhoneNumber:    txn.RecipientPhoneNumber,
		RecipientName:           txn.RecipientName,
		RecipientAddress:        txn.RecipientAddress,
		RecipientCurrencyCode:   txn.RecipientCurrencyCode,
		RecipientCurrencySymbol: txn.RecipientCurrencySymbol,
		DebitAmount:             txn.DebitAmount,
		CreditAmount:            txn.CreditAmount,
		TransactionType:         txn.TransactionType,
		TransactionTime:         txn.TransactionTime,
		SourceAccount:           txn.SourceAccount,
	}
}

func (p transactionPayload) toTransaction() Transaction {
	return Transaction{
		PhoneNumber:             p.PhoneNumber,
		TransactionNumber:       p.TransactionNumber,
		Amount:                  p.Amount,
		SenderName:              p.SenderName,
		SenderCurrencyCode:      p.SenderCurrencyCode,
		SenderCurrencySymbol:    p.SenderCurrencySymbol,
		RecipientPhoneNumber:    p.RecipientPhoneNumber,
		RecipientName:           p.RecipientName,
		RecipientAddress:        p.RecipientAddress,
		RecipientCurrencyCode:   p.RecipientCurrencyCode,
		RecipientCurrencySymbol: p.RecipientCurrencySymbol,
		DebitAmount:             p.DebitAmount,
		CreditAmount:            p.CreditAmount,
		TransactionType:         p.TransactionType,
		TransactionTime:         p.TransactionTime,
		SourceAccount:           p.SourceAccount,
	}
}

// Record stores one transaction.
func (h *Handler) Record(c *fiber.Ctx) error {
	var req transactionPayload
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	recorded, err := h.service.Record(c.UserContext(), req.toTransaction())
	if err != nil {
		if errors.Is(err, ErrValidation) {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(toPayload(recorded))
}

// List returns the most recent transactions for a phone number.
func (h *Handler) List(c *fiber.Ctx) error {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, "limit must be an integer")
		}
		limit = parsed
	}
	txns, err := h.service.ListByPhoneNumber(c.UserContext(), c.Params("phoneNumber"), limit)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	out := make([]transactionPayload, 0, len(txns))
	for _, txn := range txns {
		out = append(out, toPayload(txn))
	}
	return c.JSON(out)
}
