package ledger

import (
	"errors"
	"time"
)

const (
	// TypeDebit marks a transaction initiated by the sender's account.
	TypeDebit = "debit"
	// TypeCredit marks a transaction received into the account.
	TypeCredit = "credit"

	// DefaultListLimit caps history queries when the caller gives no limit.
	DefaultListLimit = 10

	// TimeFormat is the lexicographically sortable timestamp layout stored on
	// every transaction.
	TimeFormat = "2006-01-02T15:04:05.000Z"
)

// ErrValidation indicates a record request with missing or invalid fields.
// Nothing is stored when it is returned.
var ErrValidation = errors.New("invalid transaction")

// Transaction is one immutable money-movement record. Amounts arrive already
// converted; the ledger performs no currency arithmetic of its own.
type Transaction struct {
	Seq                     int64
	PhoneNumber             string
	TransactionNumber       string
	Amount                  float64
	SenderName              string
	SenderCurrencyCode      string
	SenderCurrencySymbol    string
	RecipientPhoneNumber    string
	RecipientName           string
	RecipientAddress        string
	RecipientCurrencyCode   string
	RecipientCurrencySymbol string
	DebitAmount             float64
	CreditAmount            float64
	TransactionType         string
	TransactionTime         string
	SourceAccount           string
}

// Now renders a timestamp in the ledger's sortable format.
func Now() string {
	return time.Now().UTC().Format(TimeFormat)
}
