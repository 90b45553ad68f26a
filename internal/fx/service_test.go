package fx

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/wavepay/wavepay/internal/ledger"
	"github.com/wavepay/wavepay/internal/payaddr"
	"github.com/wavepay/wavepay/internal/user"
)

type fixedRateClient struct {
	rate float64
	err  error
}

func (f *fixedRateClient) Rate(_ context.Context, _, _ string) (float64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.rate, nil
}

func setup(t *testing.T, rates RateClient) (*Service, *ledger.Service, *user.Service) {
	t.Helper()
	users := user.NewService(user.NewMemoryRepository())
	txns := ledger.NewService(ledger.NewMemoryRepository())
	return NewService(users, txns, rates, nil), txns, users
}

func register(t *testing.T, users *user.Service, phone, name, code, symbol string) user.User {
	t.Helper()
	u, err := users.Create(context.Background(), user.CreateInput{
		PhoneNumber:    phone,
		CallingCode:    "1",
		FirstName:      name,
		Email:          name + "@example.com",
		CurrencyCode:   code,
		CurrencyName:   code,
		CurrencySymbol: symbol,
		PaymentAddress: "stored-elsewhere",
	})
	if err != nil {
		t.Fatalf("register %s: %v", phone, err)
	}
	return u
}

func recipientAddress(t *testing.T, phone, name, currency string) string {
	t.Helper()
	token, err := payaddr.Encode(payaddr.Address{
		PhoneNumber:  phone,
		DisplayName:  name,
		CurrencyCode: currency,
		CustID:       "WPAY0042",
	})
	if err != nil {
		t.Fatalf("encode address: %v", err)
	}
	return token
}

func TestTransferRecordsBothLegs(t *testing.T) {
	svc, txns, users := setup(t, &fixedRateClient{rate: 83.5})
	ctx := context.Background()

	register(t, users, "+11234567890", "Ada", "USD", "$")
	register(t, users, "+919812345678", "Bhaskara", "INR", "₹")
	addr := recipientAddress(t, "+919812345678", "Bhaskara", "INR")

	res, err := svc.Transfer(ctx, TransferInput{
		SenderPhoneNumber: "+11234567890",
		RecipientAddress:  addr,
		Amount:            100,
		TransactionNumber: "txn-100",
		SourceAccount:     "primary",
	})
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}

	if res.Debit.DebitAmount != 100 {
		t.Fatalf("debit amount: got %v", res.Debit.DebitAmount)
	}
	if res.Credit.CreditAmount != 8350 {
		t.Fatalf("credit amount: got %v", res.Credit.CreditAmount)
	}
	if res.Debit.TransactionType != ledger.TypeDebit || res.Credit.TransactionType != ledger.TypeCredit {
		t.Fatalf("leg types: %s / %s", res.Debit.TransactionType, res.Credit.TransactionType)
	}

	senderSide, err := txns.ListByPhoneNumber(ctx, "+11234567890", 0)
	if err != nil {
		t.Fatalf("list sender: %v", err)
	}
	if len(senderSide) != 1 || senderSide[0].TransactionNumber != "txn-100" {
		t.Fatalf("sender leg missing: %+v", senderSide)
	}

	recipientSide, err := txns.ListByPhoneNumber(ctx, "+919812345678", 0)
	if err != nil {
		t.Fatalf("list recipient: %v", err)
	}
	if len(recipientSide) != 1 || recipientSide[0].TransactionType != ledger.TypeCredit {
		t.Fatalf("recipient leg missing: %+v", recipientSide)
	}
}

func TestTransferRoundsConvertedAmount(t *testing.T) {
	svc, _, users := setup(t, &fixedRateClient{rate: 0.915})
	register(t, users, "+11234567890", "Ada", "USD", "$")
	addr := recipientAddress(t, "+4912345678", "Carl", "EUR")

	res, err := svc.Transfer(context.Background(), TransferInput{
		SenderPhoneNumber: "+11234567890",
		RecipientAddress:  addr,
		Amount:            33.33,
	})
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if res.Credit.CreditAmount != 30.5 {
		t.Fatalf("expected 30.50, got %v", res.Credit.CreditAmount)
	}
}

func TestTransferRateFailureRecordsNothing(t *testing.T) {
	svc, txns, users := setup(t, &fixedRateClient{err: fmt.Errorf("%w: timeout", ErrUpstream)})
	ctx := context.Background()

	register(t, users, "+11234567890", "Ada", "USD", "$")
	addr := recipientAddress(t, "+919812345678", "Bhaskara", "INR")

	if _, err := svc.Transfer(ctx, TransferInput{
		SenderPhoneNumber: "+11234567890",
		RecipientAddress:  addr,
		Amount:            100,
	}); !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}

	recorded, err := txns.ListByPhoneNumber(ctx, "+11234567890", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recorded) != 0 {
		t.Fatalf("expected no records on rate failure, got %d", len(recorded))
	}
}

func TestTransferUnregisteredSender(t *testing.T) {
	svc, _, _ := setup(t, &fixedRateClient{rate: 1})
	addr := recipientAddress(t, "+919812345678", "Bhaskara", "INR")

	if _, err := svc.Transfer(context.Background(), TransferInput{
		SenderPhoneNumber: "+10000000000",
		RecipientAddress:  addr,
		Amount:            10,
	}); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestTransferUnregisteredRecipientUsesAddressDetails(t *testing.T) {
	svc, txns, users := setup(t, &fixedRateClient{rate: 2})
	ctx := context.Background()

	register(t, users, "+11234567890", "Ada", "USD", "$")
	addr := recipientAddress(t, "+4400000000", "Guest", "GBP")

	res, err := svc.Transfer(ctx, TransferInput{
		SenderPhoneNumber: "+11234567890",
		RecipientAddress:  addr,
		Amount:            5,
	})
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if res.Debit.RecipientName != "Guest" || res.Debit.RecipientCurrencyCode != "GBP" {
		t.Fatalf("address details not carried: %+v", res.Debit)
	}

	recipientSide, err := txns.ListByPhoneNumber(ctx, "+4400000000", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recipientSide) != 1 {
		t.Fatalf("credit leg not recorded for unregistered recipient")
	}
}
