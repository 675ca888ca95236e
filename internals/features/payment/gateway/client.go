package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	razorpay "github.com/razorpay/razorpay-go"
)

/* =========================================================
   Gateway Client
========================================================= */

// Order is the handle returned by the provider for a hosted checkout.
type Order struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"` // paise
	Currency string `json:"currency"`
	KeyID    string `json:"key_id"` // public key the frontend checkout widget needs
}

// Client wraps order creation and signature verification against the
// hosted-payment provider. Amounts cross this boundary in whole rupees;
// the paise conversion happens here and nowhere else.
type Client interface {
	CreateOrder(ctx context.Context, amountRupees int, receipt string) (*Order, error)
	VerifySignature(orderID, paymentID, signature string) bool
}

type razorpayClient struct {
	api    *razorpay.Client
	keyID  string
	secret string
}

func NewRazorpayClient(keyID, keySecret string) Client {
	return &razorpayClient{
		api:    razorpay.NewClient(keyID, keySecret),
		keyID:  keyID,
		secret: keySecret,
	}
}

func (r *razorpayClient) CreateOrder(ctx context.Context, amountRupees int, receipt string) (*Order, error) {
	if amountRupees <= 0 {
		return nil, fmt.Errorf("create order: amount must be > 0, got %d", amountRupees)
	}

	data := map[string]interface{}{
		"amount":   int64(amountRupees) * 100, // rupees → paise, exactly once
		"currency": "INR",
		"receipt":  receipt,
	}

	operation := func() (map[string]interface{}, error) {
		body, err := r.api.Order.Create(data, nil)
		if err != nil {
			// Provider rejections carry "BAD_REQUEST" in the error body and
			// will not succeed on retry.
			if strings.Contains(err.Error(), "BAD_REQUEST") {
				return nil, backoff.Permanent(err)
			}
			return nil, err
		}
		return body, nil
	}

	body, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(3),
		backoff.WithMaxElapsedTime(15*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	id, _ := body["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("create order: provider returned no order id")
	}

	return &Order{
		OrderID:  id,
		Amount:   int64(amountRupees) * 100,
		Currency: "INR",
		KeyID:    r.keyID,
	}, nil
}

// VerifySignature checks the provider's HMAC-SHA256 over "orderID|paymentID".
// Deterministic, secret-keyed, single call, no retries on mismatch.
func (r *razorpayClient) VerifySignature(orderID, paymentID, signature string) bool {
	return VerifySignature(orderID, paymentID, signature, r.secret)
}

// VerifySignature is the bare HMAC check, split out so it is testable
// without provider credentials wiring.
func VerifySignature(orderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
