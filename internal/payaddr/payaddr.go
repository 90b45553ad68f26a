// Package payaddr encodes and decodes payment addresses: the opaque token a
// payer scans or enters to designate a recipient. The encoding is versioned
// and structured so consumers never parse ad hoc delimiter strings.
package payaddr

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const v1Prefix = "wpay1."

var (
	// ErrMalformed indicates a token that is not a payment address.
	ErrMalformed = errors.New("malformed payment address")

	// ErrUnsupportedVersion indicates a token from a newer or unknown
	// encoding revision.
	ErrUnsupportedVersion = errors.New("unsupported payment address version")
)

// Address is the structured content of a payment address.
type Address struct {
	PhoneNumber  string `json:"phone_number"`
	DisplayName  string `json:"display_name"`
	CurrencyCode string `json:"currency_code"`
	CustID       string `json:"cust_id"`
}

// Encode renders the address as a v1 token. Marshalling a struct keeps the
// field order fixed, so equal addresses always produce the same token.
func Encode(a Address) (string, error) {
	if a.PhoneNumber == "" {
		return "", fmt.Errorf("%w: phone number is required", ErrMalformed)
	}
	if a.CustID == "" {
		return "", fmt.Errorf("%w: customer id is required", ErrMalformed)
	}
	payload, err := json.Marshal(a)
	if err != nil {
		return "", err
	}
	return v1Prefix + base64.RawURLEncoding.EncodeToString(payload), nil
}

// Decode parses a token back into its structured form, rejecting unknown
// versions and malformed payloads.
func Decode(token string) (Address, error) {
	rest, ok := strings.CutPrefix(token, v1Prefix)
	if !ok {
		if i := strings.IndexByte(token, '.'); i > 0 {
			return Address{}, fmt.Errorf("%w: %q", ErrUnsupportedVersion, token[:i])
		}
		return Address{}, ErrMalformed
	}

	payload, err := base64.RawURLEncoding.DecodeString(rest)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var a Address
	if err := json.Unmarshal(payload, &a); err != nil {
		return Address{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if a.PhoneNumber == "" {
		return Address{}, fmt.Errorf("%w: missing phone number", ErrMalformed)
	}
	return a, nil
}
