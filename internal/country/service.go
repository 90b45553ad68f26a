package country

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	currencyCachePrefix = "currency:v1:"
	currencyCacheTTL    = 24 * time.Hour
	lookupTimeout       = 2 * time.Second
)

// Service resolves a calling code to country and currency metadata.
type Service struct {
	repo   Repository
	client InfoClient
	cache  *redis.Client
	logger *slog.Logger
}

// NewService combines the static reference table with the external info
// client. The Redis cache is optional and fail-open.
func NewService(repo Repository, client InfoClient, cache *redis.Client, logger *slog.Logger) *Service {
	return &Service{repo: repo, client: client, cache: cache, logger: logger}
}

// Resolve maps a calling code to its country and currency. An unknown calling
// code fails with ErrNotFound before any external call. When the upstream
// service fails, the currency falls back to the "N/A" sentinel rather than
// failing the whole resolution.
func (s *Service) Resolve(ctx context.Context, callingCode string) (Resolution, error) {
	ref, err := s.repo.FindByCallingCode(ctx, callingCode)
	if err != nil {
		return Resolution{}, err
	}

	if cached, ok := s.cachedCurrency(ctx, ref.CountryCode); ok {
		return Resolution{CountryCode: ref.CountryCode, Currency: cached}, nil
	}

	lookupCtx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	currency, err := s.client.LookupCurrency(lookupCtx, ref.CountryCode)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("currency lookup failed, using sentinel",
				slog.String("country_code", ref.CountryCode), slog.Any("error", err))
		}
		return Resolution{CountryCode: ref.CountryCode, Currency: unknownCurrency()}, nil
	}

	s.storeCurrency(ctx, ref.CountryCode, currency)
	return Resolution{CountryCode: ref.CountryCode, Currency: currency}, nil
}

func (s *Service) cachedCurrency(ctx context.Context, countryCode string) (Currency, bool) {
	if s.cache == nil {
		return Currency{}, false
	}
	raw, err := s.cache.Get(ctx, currencyCachePrefix+countryCode).Result()
	if err != nil {
		return Currency{}, false
	}
	var currency Currency
	if err := json.Unmarshal([]byte(raw), &currency); err != nil {
		return Currency{}, false
	}
	return currency, true
}

func (s *Service) storeCurrency(ctx context.Context, countryCode string, currency Currency) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(currency)
	if err != nil {
		return
	}
	// Best effort; a failed cache write only costs a future upstream call.
	s.cache.Set(ctx, currencyCachePrefix+countryCode, payload, currencyCacheTTL)
}
