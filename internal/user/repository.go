package user

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound indicates no user holds the requested phone number.
	ErrNotFound = errors.New("user not found")

	// ErrConflict indicates the phone number is already registered.
	ErrConflict = errors.New("user already exists")
)

const uniqueViolation = "23505"

// Repository persists users.
type Repository interface {
	Create(ctx context.Context, user User) error
	FindByPhone(ctx context.Context, phone string) (User, error)
	FindByPhones(ctx context.Context, phones []string) ([]User, error)
	UpdateProfileImage(ctx context.Context, phone, imageRef string) (User, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed user repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `phone_number, calling_code, first_name, middle_name, last_name, email,
    currency_code, currency_name, currency_symbol, profile_image, payment_address, created_at`

// Create inserts a new user, surfacing ErrConflict on a duplicate phone number.
func (r *PostgresRepository) Create(ctx context.Context, user User) error {
	_, err := r.db.Exec(ctx, `INSERT INTO users (`+userColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		user.PhoneNumber, user.CallingCode, user.FirstName, user.MiddleName, user.LastName,
		user.Email, user.CurrencyCode, user.CurrencyName, user.CurrencySymbol,
		user.ProfileImage, user.PaymentAddress, user.CreatedAt.UTC())
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrConflict
	}
	return err
}

// FindByPhone fetches a user by phone number.
func (r *PostgresRepository) FindByPhone(ctx context.Context, phone string) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE phone_number = $1`, phone)
	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return user, err
}

// FindByPhones fetches every user matching one of the given phone numbers.
// Numbers with no match are simply absent from the result.
func (r *PostgresRepository) FindByPhones(ctx context.Context, phones []string) ([]User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users WHERE phone_number = ANY($1)`, phones)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// UpdateProfileImage replaces the stored profile image reference.
func (r *PostgresRepository) UpdateProfileImage(ctx context.Context, phone, imageRef string) (User, error) {
	row := r.db.QueryRow(ctx, `UPDATE users SET profile_image = $1 WHERE phone_number = $2
        RETURNING `+userColumns, imageRef, phone)
	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return user, err
}

func scanUser(row pgx.Row) (User, error) {
	var (
		user      User
		createdAt time.Time
	)
	if err := row.Scan(&user.PhoneNumber, &user.CallingCode, &user.FirstName, &user.MiddleName,
		&user.LastName, &user.Email, &user.CurrencyCode, &user.CurrencyName, &user.CurrencySymbol,
		&user.ProfileImage, &user.PaymentAddress, &createdAt); err != nil {
		return User{}, err
	}
	user.CreatedAt = createdAt.UTC()
	return user, nil
}
