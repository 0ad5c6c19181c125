// Package webhook parses and verifies the callbacks Sweetpay sends
// after checkout and subscription events.
package webhook

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"
)

// CallbackTokenHeader carries the shared secret Sweetpay echoes on
// every callback request.
const CallbackTokenHeader = "X-Callback-Token"

var (
	// ErrInvalidPayload is returned when the body is not a callback
	// envelope.
	ErrInvalidPayload = errors.New("webhook: invalid callback payload")

	// ErrInvalidToken is returned when the callback token header is
	// missing or does not match the configured secret.
	ErrInvalidToken = errors.New("webhook: invalid callback token")
)

// Customer is the customer or billing block of a callback payload.
type Customer struct {
	Phone   string   `json:"phone,omitempty"`
	SSN     string   `json:"ssn,omitempty"`
	Org     string   `json:"org,omitempty"`
	Email   string   `json:"email,omitempty"`
	Name    *Name    `json:"name,omitempty"`
	Address *Address `json:"address,omitempty"`
}

// Name is a customer name block.
type Name struct {
	First string `json:"first,omitempty"`
	Last  string `json:"last,omitempty"`
	Org   string `json:"org,omitempty"`
}

// Address is a customer address block.
type Address struct {
	Street  string `json:"street,omitempty"`
	Zip     string `json:"zip,omitempty"`
	City    string `json:"city,omitempty"`
	Region  string `json:"region,omitempty"`
	Country string `json:"country,omitempty"`
	CareOf  string `json:"careOf,omitempty"`
}

// Payload is the event-specific body of a callback.
type Payload struct {
	SessionID          string          `json:"sessionId,omitempty"`
	MerchantSessionID  string          `json:"merchantSessionId,omitempty"`
	MerchantCustomerID string          `json:"merchantCustomerId,omitempty"`
	MerchantOrderID    string          `json:"merchantOrderId,omitempty"`
	ExecutedAt         string          `json:"executedAt,omitempty"`
	Status             string          `json:"status,omitempty"`
	Currency           string          `json:"currency,omitempty"`
	Amount             json.Number     `json:"amount,omitempty"`
	ReservationID      int64           `json:"reservationId,omitempty"`
	Customer           *Customer       `json:"customer,omitempty"`
	Billing            *Customer       `json:"billing,omitempty"`
	Raw                json.RawMessage `json:"-"`
}

// Envelope is the outer callback structure.
type Envelope struct {
	CreatedAt  time.Time `json:"createdAt"`
	SentAt     time.Time `json:"sentAt"`
	CallbackID int64     `json:"callbackId"`
	Version    string    `json:"version"`
	Event      string    `json:"event"`
	Payload    Payload   `json:"payload"`
}

// Parse decodes a callback body into an Envelope. The raw payload
// bytes are retained on Payload.Raw for callers that need fields this
// package does not model.
func Parse(body []byte) (*Envelope, error) {
	if !json.Valid(body) {
		return nil, ErrInvalidPayload
	}
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, ErrInvalidPayload
	}
	if env.Event == "" && env.CallbackID == 0 {
		return nil, ErrInvalidPayload
	}
	var shell struct {
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(body, &shell); err == nil {
		env.Payload.Raw = shell.Payload
	}
	return &env, nil
}

// Verify checks the callback token header against the configured
// secret using a constant-time compare.
func Verify(headers http.Header, secret string) error {
	token := strings.TrimSpace(headers.Get(CallbackTokenHeader))
	if token == "" || secret == "" {
		return ErrInvalidToken
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
		return ErrInvalidToken
	}
	return nil
}

// ParseAndVerify verifies the token and then parses the body.
func ParseAndVerify(body []byte, headers http.Header, secret string) (*Envelope, error) {
	if err := Verify(headers, secret); err != nil {
		return nil, err
	}
	return Parse(body)
}
