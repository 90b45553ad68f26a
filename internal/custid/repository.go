package custid

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const maxCASAttempts = 8

// Repository allocates customer ids from a persisted counter.
type Repository interface {
	// Next atomically increments the counter and returns the newly issued id.
	// Two concurrent calls never observe the same value.
	Next(ctx context.Context) (string, error)
	// Current returns the most recently issued id without allocating.
	Current(ctx context.Context) (string, error)
}

// PostgresRepository keeps the counter in a singleton row and advances it with
// a compare-and-swap UPDATE, retried a bounded number of times on conflict.
type PostgresRepository struct {
	db     *pgxpool.Pool
	prefix string
}

// NewPostgresRepository builds a Postgres-backed allocator for the given id prefix.
func NewPostgresRepository(db *pgxpool.Pool, prefix string) *PostgresRepository {
	return &PostgresRepository{db: db, prefix: prefix}
}

// Next allocates the next customer id. The new value is persisted before it is
// returned; a failed write issues nothing and leaves the counter untouched.
func (r *PostgresRepository) Next(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxCASAttempts; attempt++ {
		current, err := r.Current(ctx)
		if err != nil {
			return "", err
		}

		next, err := Increment(current)
		if err != nil {
			return "", err
		}

		tag, err := r.db.Exec(ctx, `UPDATE cust_ids SET current_id = $1 WHERE current_id = $2`, next, current)
		if err != nil {
			return "", fmt.Errorf("advance counter: %w", err)
		}
		if tag.RowsAffected() == 1 {
			return next, nil
		}
		// Lost the race to a concurrent allocator; re-read and retry.
	}
	return "", ErrContention
}

// Current reads the counter, seeding the singleton row on first use.
func (r *PostgresRepository) Current(ctx context.Context) (string, error) {
	var current string
	err := r.db.QueryRow(ctx, `SELECT current_id FROM cust_ids WHERE singleton`).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		seed := Seed(r.prefix)
		if _, err := r.db.Exec(ctx, `INSERT INTO cust_ids (singleton, current_id) VALUES (TRUE, $1)
            ON CONFLICT (singleton) DO NOTHING`, seed); err != nil {
			return "", fmt.Errorf("seed counter: %w", err)
		}
		// A concurrent seeder may have won; read back whatever landed.
		if err := r.db.QueryRow(ctx, `SELECT current_id FROM cust_ids WHERE singleton`).Scan(&current); err != nil {
			return "", fmt.Errorf("read counter: %w", err)
		}
		return current, nil
	}
	if err != nil {
		return "", fmt.Errorf("read counter: %w", err)
	}
	return current, nil
}
