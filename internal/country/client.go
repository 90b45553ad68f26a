package country

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"
)

// InfoClient resolves currency metadata for an ISO country code against an
// external country-information service.
type InfoClient interface {
	LookupCurrency(ctx context.Context, countryCode string) (Currency, error)
}

// RESTClient queries a restcountries.com compatible API.
type RESTClient struct {
	baseURL string
	http    *http.Client
}

// NewRESTClient builds a client with a bounded per-call timeout so a slow
// upstream cannot hang a request.
func NewRESTClient(baseURL string, timeout time.Duration) *RESTClient {
	return &RESTClient{baseURL: baseURL, http: &http.Client{Timeout: timeout}}
}

type countryInfo struct {
	Currencies map[string]struct {
		Name   string `json:"name"`
		Symbol string `json:"symbol"`
	} `json:"currencies"`
}

// LookupCurrency fetches /alpha/{code} and extracts the first currency entry.
func (c *RESTClient) LookupCurrency(ctx context.Context, countryCode string) (Currency, error) {
	url := fmt.Sprintf("%s/alpha/%s", c.baseURL, countryCode)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Currency{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Currency{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Currency{}, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var payload []countryInfo
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Currency{}, fmt.Errorf("%w: decode: %v", ErrUpstream, err)
	}
	if len(payload) == 0 || len(payload[0].Currencies) == 0 {
		return Currency{}, fmt.Errorf("%w: no currency data for %s", ErrUpstream, countryCode)
	}

	// The API keys currencies by code; take the first in sorted order so the
	// pick is deterministic.
	codes := make([]string, 0, len(payload[0].Currencies))
	for code := range payload[0].Currencies {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	first := payload[0].Currencies[codes[0]]

	currency := Currency{Code: codes[0], Name: first.Name, Symbol: first.Symbol}
	if currency.Name == "" {
		currency.Name = SentinelUnknown
	}
	if currency.Symbol == "" {
		currency.Symbol = SentinelUnknown
	}
	return currency, nil
}
