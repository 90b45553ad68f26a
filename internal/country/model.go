package country

import "errors"

// SentinelUnknown is stored whenever upstream currency metadata is missing or
// unreachable. Currency fields are never left blank.
const SentinelUnknown = "N/A"

var (
	// ErrNotFound indicates the calling code has no reference row.
	ErrNotFound = errors.New("country data not found")

	// ErrUpstream indicates the external country-information service failed
	// or returned an unexpected shape.
	ErrUpstream = errors.New("country information service failed")
)

// CountryCode is one static reference row mapping an international dialing
// prefix to an ISO country code. Seeded out of band, read-only at runtime.
type CountryCode struct {
	CallingCode string
	CountryCode string
	Country     string
}

// Currency carries the metadata resolved for a country.
type Currency struct {
	Code   string `json:"currency_code"`
	Name   string `json:"currency_name"`
	Symbol string `json:"currency_symbol"`
}

// Resolution is the outcome of a calling-code lookup.
type Resolution struct {
	CountryCode string
	Currency    Currency
}

func unknownCurrency() Currency {
	return Currency{Code: SentinelUnknown, Name: SentinelUnknown, Symbol: SentinelUnknown}
}
