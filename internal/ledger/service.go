package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Service validates and records transactions.
type Service struct {
	repo Repository
}

// NewService creates a new ledger service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Record appends one transaction after validating it. A failed validation
// stores nothing. The transaction number is normally the client's time-based
// token; a missing one is filled in server-side.
func (s *Service) Record(ctx context.Context, txn Transaction) (Transaction, error) {
	if txn.TransactionNumber == "" {
		txn.TransactionNumber = uuid.NewString()
	}
	if txn.TransactionTime == "" {
		txn.TransactionTime = Now()
	}

	if err := validate(txn); err != nil {
		return Transaction{}, err
	}

	return s.repo.Insert(ctx, txn)
}

// ListByPhoneNumber returns the most recent transactions initiated by the
// phone number, newest first. A non-positive limit falls back to the default.
func (s *Service) ListByPhoneNumber(ctx context.Context, phone string, limit int) ([]Transaction, error) {
	if phone == "" {
		return nil, fmt.Errorf("%w: phone_number is required", ErrValidation)
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return s.repo.ListByPhone(ctx, phone, limit)
}

func validate(txn Transaction) error {
	for field, value := range map[string]string{
		"phone_number":            txn.PhoneNumber,
		"sender_currency_code":    txn.SenderCurrencyCode,
		"sender_currency_symbol":  txn.SenderCurrencySymbol,
		"recipient_name":          txn.RecipientName,
		"recipient_address":       txn.RecipientAddress,
		"recipient_currency_code": txn.RecipientCurrencyCode,
		"transaction_time":        txn.TransactionTime,
	} {
		if value == "" {
			return fmt.Errorf("%w: %s is required", ErrValidation, field)
		}
	}

	if txn.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrValidation)
	}

	switch txn.TransactionType {
	case TypeDebit, TypeCredit:
	case "":
		return fmt.Errorf("%w: transaction_type is required", ErrValidation)
	default:
		return fmt.Errorf("%w: transaction_type must be %q or %q", ErrValidation, TypeDebit, TypeCredit)
	}

	return nil
}
