package user

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrValidation indicates a create request with missing required fields.
var ErrValidation = errors.New("invalid user")

// Service manages the user directory.
type Service struct {
	repo Repository
}

// NewService creates a new directory service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput carries the registration fields. The payment address arrives
// already generated by the registration flow and is stored verbatim.
type CreateInput struct {
	PhoneNumber    string
	CallingCode    string
	FirstName      string
	MiddleName     string
	LastName       string
	Email          string
	CurrencyCode   string
	CurrencyName   string
	CurrencySymbol string
	PaymentAddress string
}

// Create registers a user, failing with ErrConflict when the phone number is taken.
func (s *Service) Create(ctx context.Context, input CreateInput) (User, error) {
	for field, value := range map[string]string{
		"phone_number": input.PhoneNumber,
		"calling_code": input.CallingCode,
		"first_name":   input.FirstName,
		"email":        input.Email,
	} {
		if value == "" {
			return User{}, fmt.Errorf("%w: %s is required", ErrValidation, field)
		}
	}

	user := User{
		PhoneNumber:    input.PhoneNumber,
		CallingCode:    input.CallingCode,
		FirstName:      input.FirstName,
		MiddleName:     input.MiddleName,
		LastName:       input.LastName,
		Email:          input.Email,
		CurrencyCode:   input.CurrencyCode,
		CurrencyName:   input.CurrencyName,
		CurrencySymbol: input.CurrencySymbol,
		PaymentAddress: input.PaymentAddress,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return User{}, err
	}

	return user, nil
}

// Get fetches a single user by phone number.
func (s *Service) Get(ctx context.Context, phone string) (User, error) {
	return s.repo.FindByPhone(ctx, phone)
}

// GetBatch fetches the users registered under any of the given phone numbers.
func (s *Service) GetBatch(ctx context.Context, phones []string) ([]User, error) {
	return s.repo.FindByPhones(ctx, phones)
}

// Exists reports whether a phone number is registered.
func (s *Service) Exists(ctx context.Context, phone string) (bool, error) {
	_, err := s.repo.FindByPhone(ctx, phone)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ExistsBatch reports existence for every queried phone number. Each input
// appears exactly once in the output, including unregistered ones.
func (s *Service) ExistsBatch(ctx context.Context, phones []string) ([]Existence, error) {
	users, err := s.repo.FindByPhones(ctx, phones)
	if err != nil {
		return nil, err
	}

	registered := make(map[string]bool, len(users))
	for _, u := range users {
		registered[u.PhoneNumber] = true
	}

	results := make([]Existence, 0, len(phones))
	seen := make(map[string]bool, len(phones))
	for _, phone := range phones {
		if seen[phone] {
			continue
		}
		seen[phone] = true
		results = append(results, Existence{PhoneNumber: phone, Exists: registered[phone]})
	}
	return results, nil
}

// UpdateProfileImage stores a new profile image reference for the user.
func (s *Service) UpdateProfileImage(ctx context.Context, phone, imageRef string) (User, error) {
	if imageRef == "" {
		return User{}, fmt.Errorf("%w: profile image reference is required", ErrValidation)
	}
	return s.repo.UpdateProfileImage(ctx, phone, imageRef)
}
