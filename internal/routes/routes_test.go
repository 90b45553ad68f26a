package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/wavepay/wavepay/internal/config"
	"github.com/wavepay/wavepay/internal/logging"
	"github.com/wavepay/wavepay/internal/payaddr"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	countryAPI := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[{"currencies":{"USD":{"name":"United States dollar","symbol":"$"}}}]`)
	}))
	t.Cleanup(countryAPI.Close)

	exchangeAPI := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"base":"USD","rates":{"USD":1,"INR":83.5}}`)
	}))
	t.Cleanup(exchangeAPI.Close)

	cfg := config.Config{
		AppName:        "WavePay",
		AppEnv:         "development",
		CustIDPrefix:   "WPAY",
		CountryAPIURL:  countryAPI.URL,
		ExchangeAPIURL: exchangeAPI.URL,
	}

	app := fiber.New()
	if err := Setup(app, Deps{Cfg: cfg, Logger: logging.Discard()}); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var decoded map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("decode %s: %v", raw, err)
		}
	}
	return resp.StatusCode, decoded
}

func TestRegistrationFlow(t *testing.T) {
	app := newTestApp(t)

	// Allocate a customer id.
	status, body := doJSON(t, app, fiber.MethodPost, "/api/v1/custids", nil)
	if status != http.StatusCreated {
		t.Fatalf("allocate: status %d", status)
	}
	custID, _ := body["cust_id"].(string)
	if custID != "WPAY0001" {
		t.Fatalf("expected WPAY0001, got %q", custID)
	}

	// Resolve the currency for the calling code.
	status, body = doJSON(t, app, fiber.MethodGet, "/api/v1/country-codes/1", nil)
	if status != http.StatusOK {
		t.Fatalf("country lookup: status %d", status)
	}
	if body["country_code"] != "US" {
		t.Fatalf("country lookup payload: %v", body)
	}

	// Register with a generated payment address.
	address, err := payaddr.Encode(payaddr.Address{
		PhoneNumber:  "+11234567890",
		DisplayName:  "Ada Lovelace",
		CurrencyCode: "USD",
		CustID:       custID,
	})
	if err != nil {
		t.Fatalf("encode address: %v", err)
	}
	status, _ = doJSON(t, app, fiber.MethodPost, "/api/v1/users", fiber.Map{
		"phone_number":    "+11234567890",
		"calling_code":    "1",
		"first_name":      "Ada",
		"last_name":       "Lovelace",
		"email":           "ada@example.com",
		"currency_code":   "USD",
		"currency_name":   "United States dollar",
		"currency_symbol": "$",
		"payment_address": address,
	})
	if status != http.StatusCreated {
		t.Fatalf("register: status %d", status)
	}

	// A duplicate registration conflicts.
	status, _ = doJSON(t, app, fiber.MethodPost, "/api/v1/users", fiber.Map{
		"phone_number": "+11234567890",
		"calling_code": "1",
		"first_name":   "Ada",
		"email":        "ada@example.com",
	})
	if status != http.StatusConflict {
		t.Fatalf("duplicate register: status %d", status)
	}

	// Existence checks see the new user.
	status, body = doJSON(t, app, fiber.MethodGet, "/api/v1/users/+11234567890/exists", nil)
	if status != http.StatusOK || body["user_exists"] != true {
		t.Fatalf("exists: status %d body %v", status, body)
	}

	// The scanned payment address resolves to the registered profile.
	status, body = doJSON(t, app, fiber.MethodGet, "/api/v1/payment-addresses/"+address, nil)
	if status != http.StatusOK || body["registered"] != true {
		t.Fatalf("resolve address: status %d body %v", status, body)
	}
}

func TestUnknownCallingCodeIs404(t *testing.T) {
	app := newTestApp(t)
	status, _ := doJSON(t, app, fiber.MethodGet, "/api/v1/country-codes/999", nil)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
}

func TestTransferAndHistory(t *testing.T) {
	app := newTestApp(t)

	for _, u := range []fiber.Map{
		{"phone_number": "+11234567890", "calling_code": "1", "first_name": "Ada",
			"email": "ada@example.com", "currency_code": "USD", "currency_symbol": "$"},
		{"phone_number": "+919812345678", "calling_code": "91", "first_name": "Bhaskara",
			"email": "bhaskara@example.com", "currency_code": "INR", "currency_symbol": "₹"},
	} {
		if status, _ := doJSON(t, app, fiber.MethodPost, "/api/v1/users", u); status != http.StatusCreated {
			t.Fatalf("register %v: status %d", u["phone_number"], status)
		}
	}

	address, err := payaddr.Encode(payaddr.Address{
		PhoneNumber:  "+919812345678",
		DisplayName:  "Bhaskara",
		CurrencyCode: "INR",
		CustID:       "WPAY0002",
	})
	if err != nil {
		t.Fatalf("encode address: %v", err)
	}

	status, body := doJSON(t, app, fiber.MethodPost, "/api/v1/transfers", fiber.Map{
		"sender_phone_number": "+11234567890",
		"recipient_address":   address,
		"amount":              100,
		"transaction_number":  "txn-1",
		"source_account":      "primary",
	})
	if status != http.StatusCreated {
		t.Fatalf("transfer: status %d body %v", status, body)
	}
	if body["credit_amount"] != 8350.0 {
		t.Fatalf("credit amount: %v", body["credit_amount"])
	}

	req := httptest.NewRequest(fiber.MethodGet, "/api/v1/transactions/+11234567890", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	defer resp.Body.Close()
	var txns []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&txns); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(txns) != 1 || txns[0]["transaction_type"] != "debit" {
		t.Fatalf("unexpected history: %v", txns)
	}
}

func TestRecordTransactionValidation(t *testing.T) {
	app := newTestApp(t)

	status, _ := doJSON(t, app, fiber.MethodPost, "/api/v1/transactions", fiber.Map{
		"phone_number":            "+11234567890",
		"amount":                  10,
		"sender_currency_code":    "USD",
		"sender_currency_symbol":  "$",
		"recipient_name":          "Bhaskara",
		"recipient_address":       "wpay1.abc",
		"recipient_currency_code": "INR",
		// transaction_type missing
	})
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
}
