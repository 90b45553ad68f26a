package fx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrUpstream indicates the exchange-rate service failed or answered with an
// unexpected shape. Nothing is recorded when it is returned.
var ErrUpstream = errors.New("exchange rate service failed")

// RateClient resolves a conversion rate between two currencies.
type RateClient interface {
	Rate(ctx context.Context, from, to string) (float64, error)
}

// RESTClient queries an exchangerate-api compatible endpoint.
type RESTClient struct {
	baseURL string
	http    *http.Client
}

// NewRESTClient builds a rate client with a bounded per-call timeout.
func NewRESTClient(baseURL string, timeout time.Duration) *RESTClient {
	return &RESTClient{baseURL: baseURL, http: &http.Client{Timeout: timeout}}
}

type ratesResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// Rate fetches /latest/{from} and reads the rate toward the target currency.
func (c *RESTClient) Rate(ctx context.Context, from, to string) (float64, error) {
	if from == to {
		return 1, nil
	}

	url := fmt.Sprintf("%s/latest/%s", c.baseURL, from)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var payload ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("%w: decode: %v", ErrUpstream, err)
	}

	rate, ok := payload.Rates[to]
	if !ok || rate <= 0 {
		return 0, fmt.Errorf("%w: no rate from %s to %s", ErrUpstream, from, to)
	}
	return rate, nil
}
