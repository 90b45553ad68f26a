package fx

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/wavepay/wavepay/internal/ledger"
	"github.com/wavepay/wavepay/internal/notify"
	"github.com/wavepay/wavepay/internal/payaddr"
	"github.com/wavepay/wavepay/internal/user"
)

// ErrValidation indicates a transfer request with missing or invalid fields.
var ErrValidation = errors.New("invalid transfer")

const rateTimeout = 3 * time.Second

// Service runs the transfer flow: resolve both parties, convert the amount at
// the current rate and record the already-resolved debit and credit entries.
// The two ledger writes are independent; the ledger itself never converts.
type Service struct {
	users    *user.Service
	txns     *ledger.Service
	rates    RateClient
	notifier notify.Notifier
}

// NewService builds a transfer service.
func NewService(users *user.Service, txns *ledger.Service, rates RateClient, notifier notify.Notifier) *Service {
	return &Service{users: users, txns: txns, rates: rates, notifier: notifier}
}

// TransferInput captures one requested transfer. The recipient is designated
// by payment address; the transaction number is the client's unique token.
type TransferInput struct {
	SenderPhoneNumber string
	RecipientAddress  string
	Amount            float64
	TransactionNumber string
	SourceAccount     string
}

// TransferResult carries both recorded legs of a completed transfer.
type TransferResult struct {
	Debit  ledger.Transaction
	Credit ledger.Transaction
	Rate   float64
}

// Transfer converts and records a payment. A rate failure aborts before any
// write. The debit and credit legs commit separately: a credit-side failure
// after a committed debit is surfaced, not rolled back.
func (s *Service) Transfer(ctx context.Context, input TransferInput) (TransferResult, error) {
	if input.SenderPhoneNumber == "" {
		return TransferResult{}, fmt.Errorf("%w: sender phone number is required", ErrValidation)
	}
	if input.Amount <= 0 {
		return TransferResult{}, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if input.TransactionNumber == "" {
		input.TransactionNumber = uuid.NewString()
	}

	sender, err := s.users.Get(ctx, input.SenderPhoneNumber)
	if err != nil {
		return TransferResult{}, err
	}

	addr, err := payaddr.Decode(input.RecipientAddress)
	if err != nil {
		return TransferResult{}, err
	}

	recipientName := addr.DisplayName
	recipientCurrency := addr.CurrencyCode
	recipientSymbol := ""
	recipient, err := s.users.Get(ctx, addr.PhoneNumber)
	switch {
	case err == nil:
		recipientName = recipient.DisplayName()
		recipientCurrency = recipient.CurrencyCode
		recipientSymbol = recipient.CurrencySymbol
	case errors.Is(err, user.ErrNotFound):
		// Unregistered recipients keep the details baked into the address.
	default:
		return TransferResult{}, err
	}
	if recipientCurrency == "" {
		return TransferResult{}, fmt.Errorf("%w: recipient currency is unknown", ErrValidation)
	}
	if recipientName == "" {
		recipientName = addr.PhoneNumber
	}

	rateCtx, cancel := context.WithTimeout(ctx, rateTimeout)
	defer cancel()
	rate, err := s.rates.Rate(rateCtx, sender.CurrencyCode, recipientCurrency)
	if err != nil {
		return TransferResult{}, err
	}

	debitAmount := round2(input.Amount)
	creditAmount := round2(input.Amount * rate)
	now := ledger.Now()

	debit := ledger.Transaction{
		PhoneNumber:             sender.PhoneNumber,
		TransactionNumber:       input.TransactionNumber,
		Amount:                  input.Amount,
		SenderName:              sender.DisplayName(),
		SenderCurrencyCode:      sender.CurrencyCode,
		SenderCurrencySymbol:    sender.CurrencySymbol,
		RecipientPhoneNumber:    addr.PhoneNumber,
		RecipientName:           recipientName,
		RecipientAddress:        input.RecipientAddress,
		RecipientCurrencyCode:   recipientCurrency,
		RecipientCurrencySymbol: recipientSymbol,
		DebitAmount:             debitAmount,
		CreditAmount:            creditAmount,
		TransactionType:         ledger.TypeDebit,
		TransactionTime:         now,
		SourceAccount:           input.SourceAccount,
	}

	recordedDebit, err := s.txns.Record(ctx, debit)
	if err != nil {
		return TransferResult{}, err
	}

	credit := debit
	credit.PhoneNumber = addr.PhoneNumber
	credit.TransactionType = ledger.TypeCredit
	recordedCredit, err := s.txns.Record(ctx, credit)
	if err != nil {
		return TransferResult{}, fmt.Errorf("debit recorded but credit leg failed: %w", err)
	}

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notify.Message{
			Kind:        notify.KindPaymentReceived,
			Destination: addr.PhoneNumber,
			Body:        fmt.Sprintf("You received %s%.2f from %s", recipientSymbol, creditAmount, sender.DisplayName()),
		})
	}

	return TransferResult{Debit: recordedDebit, Credit: recordedCredit, Rate: rate}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
