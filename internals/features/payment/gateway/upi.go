package gateway

import (
	"errors"
	"net/url"
	"strconv"

	qrcode "github.com/skip2/go-qrcode"
)

/* =========================================================
   UPI Intent Builder
========================================================= */

// IntentBuilder constructs upi://pay deep links for the organization's
// collection VPA, and renders them as scannable QR images for non-mobile
// clients.
type IntentBuilder struct {
	VPA       string // organization's payment address, e.g. sevasetu@icici
	PayeeName string
}

func NewIntentBuilder(vpa, payeeName string) *IntentBuilder {
	return &IntentBuilder{VPA: vpa, PayeeName: payeeName}
}

// BuildIntentURI builds the deep link. note rides in tn= so the bank
// statement carries the correlation id for manual reconciliation.
func (b *IntentBuilder) BuildIntentURI(amountRupees int, note string) (string, error) {
	if b.VPA == "" {
		return "", errors.New("upi intent: collection VPA not configured")
	}
	if amountRupees <= 0 {
		return "", errors.New("upi intent: amount must be > 0")
	}

	q := url.Values{}
	q.Set("pa", b.VPA)
	q.Set("pn", b.PayeeName)
	q.Set("am", strconv.Itoa(amountRupees))
	q.Set("cu", "INR")
	if note != "" {
		q.Set("tn", note)
	}
	return "upi://pay?" + q.Encode(), nil
}

// BuildOrderURI builds a deep link tied to a provider-tracked order
// (tr= carries the gateway order id as transaction reference).
func (b *IntentBuilder) BuildOrderURI(amountRupees int, orderID string) (string, error) {
	uri, err := b.BuildIntentURI(amountRupees, "")
	if err != nil {
		return "", err
	}
	if orderID == "" {
		return "", errors.New("upi intent: order id is required")
	}
	return uri + "&tr=" + url.QueryEscape(orderID), nil
}

// RenderQRPNG renders a payment URI into a QR PNG.
func RenderQRPNG(uri string) ([]byte, error) {
	return qrcode.Encode(uri, qrcode.Medium, 256)
}
