package country

import (
	"context"
	"errors"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository reads the static calling-code reference table.
type Repository interface {
	FindByCallingCode(ctx context.Context, callingCode string) (CountryCode, error)
}

// PostgresRepository reads reference rows from PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed reference repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// FindByCallingCode fetches the reference row for a dialing prefix.
func (r *PostgresRepository) FindByCallingCode(ctx context.Context, callingCode string) (CountryCode, error) {
	row := r.db.QueryRow(ctx, `SELECT calling_code, country_code, country
        FROM country_codes WHERE calling_code = $1`, callingCode)
	var cc CountryCode
	if err := row.Scan(&cc.CallingCode, &cc.CountryCode, &cc.Country); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return CountryCode{}, ErrNotFound
		}
		return CountryCode{}, err
	}
	return cc, nil
}

type memoryRepository struct {
	mu   sync.RWMutex
	rows map[string]CountryCode
}

// NewMemoryRepository builds an in-memory reference table seeded with the
// provided rows, for tests and dev mode.
func NewMemoryRepository(rows ...CountryCode) Repository {
	repo := &memoryRepository{rows: make(map[string]CountryCode, len(rows))}
	for _, row := range rows {
		repo.rows[row.CallingCode] = row
	}
	return repo
}

func (r *memoryRepository) FindByCallingCode(_ context.Context, callingCode string) (CountryCode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cc, ok := r.rows[callingCode]
	if !ok {
		return CountryCode{}, ErrNotFound
	}
	return cc, nil
}
