package ledger

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists transactions. Records are append-only: no update or
// delete is part of the contract.
type Repository interface {
	Insert(ctx context.Context, txn Transaction) (Transaction, error)
	ListByPhone(ctx context.Context, phone string, limit int) ([]Transaction, error)
}

// PostgresRepository stores transactions in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed transaction repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const txnColumns = `phone_number, transaction_number, amount, sender_name,
    sender_currency_code, sender_currency_symbol, recipient_phone_number, recipient_name,
    recipient_address, recipient_currency_code, recipient_currency_symbol,
    debit_amount, credit_amount, transaction_type, transaction_time, source_account`

// Insert appends one transaction and returns it with its insertion sequence.
func (r *PostgresRepository) Insert(ctx context.Context, txn Transaction) (Transaction, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO transactions (`+txnColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
        RETURNING seq`,
		txn.PhoneNumber, txn.TransactionNumber, txn.Amount, txn.SenderName,
		txn.SenderCurrencyCode, txn.SenderCurrencySymbol, txn.RecipientPhoneNumber,
		txn.RecipientName, txn.RecipientAddress, txn.RecipientCurrencyCode,
		txn.RecipientCurrencySymbol, txn.DebitAmount, txn.CreditAmount,
		txn.TransactionType, txn.TransactionTime, txn.SourceAccount)
	if err := row.Scan(&txn.Seq); err != nil {
		return Transaction{}, err
	}
	return txn, nil
}

// ListByPhone returns at most limit transactions initiated by the phone
// number, most recent first. Equal timestamps keep insertion order.
func (r *PostgresRepository) ListByPhone(ctx context.Context, phone string, limit int) ([]Transaction, error) {
	rows, err := r.db.Query(ctx, `SELECT seq, `+txnColumns+` FROM transactions
        WHERE phone_number = $1
        ORDER BY transaction_time DESC, seq ASC
        LIMIT $2`, phone, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}
	return txns, rows.Err()
}

func scanTransaction(row pgx.Row) (Transaction, error) {
	var txn Transaction
	err := row.Scan(&txn.Seq, &txn.PhoneNumber, &txn.TransactionNumber, &txn.Amount,
		&txn.SenderName, &txn.SenderCurrencyCode, &txn.SenderCurrencySymbol,
		&txn.RecipientPhoneNumber, &txn.RecipientName, &txn.RecipientAddress,
		&txn.RecipientCurrencyCode, &txn.RecipientCurrencySymbol,
		&txn.DebitAmount, &txn.CreditAmount, &txn.TransactionType,
		&txn.TransactionTime, &txn.SourceAccount)
	return txn, err
}
