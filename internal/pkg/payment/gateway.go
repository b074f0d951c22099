package payment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/inkwell-app/inkwell/internal/pkg/env"
)

// Order is the gateway's order record as far as the core cares.
type Order struct {
	ID       string `json:"id"`
	Amount   uint   `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type orderRequest struct {
	Amount   uint              `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

var httpClient = &http.Client{Timeout: 10 * time.Second}

// Configured reports whether gateway credentials are present. Without them
// subscription orders cannot be created and the endpoint answers 503.
func Configured() bool {
	return env.GetEnv("PAYMENT_KEY_ID", "") != "" && env.GetEnv("PAYMENT_KEY_SECRET", "") != ""
}

// KeyID returns the public gateway key handed to the checkout frontend.
func KeyID() string {
	return env.GetEnv("PAYMENT_KEY_ID", "")
}

// KeySecret returns the shared secret used for callback signatures.
func KeySecret() string {
	return env.GetEnv("PAYMENT_KEY_SECRET", "")
}

// CreateOrder asks the gateway for a new payment order. Amounts are in the
// currency's smallest unit, as the gateway expects.
func CreateOrder(amount uint, currency, receipt string, notes map[string]string) (*Order, error) {
	if !Configured() {
		return nil, fmt.Errorf("payment gateway is not configured")
	}

	base := env.GetEnv("PAYMENT_API_BASE", "https://api.razorpay.com/v1")

	body, err := json.Marshal(orderRequest{
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
		Notes:    notes,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, base+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(env.GetEnv("PAYMENT_KEY_ID", ""), env.GetEnv("PAYMENT_KEY_SECRET", ""))
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach payment gateway: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("payment gateway returned status %d", resp.StatusCode)
	}

	var order Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("failed to decode payment gateway response: %v", err)
	}
	if order.ID == "" {
		return nil, fmt.Errorf("payment gateway returned an order without an id")
	}

	return &order, nil
}
