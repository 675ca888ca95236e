package dto

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"sevasetu_backend/internals/features/payment/donations/model"
)

/* ===================== Requests ===================== */

type SubmitDonationRequest struct {
	DonorName string  `json:"donor_name" validate:"required,max=100"`
	Email     string  `json:"email" validate:"required,email"`
	Phone     *string `json:"phone" validate:"omitempty,max=20"`

	Amount   int    `json:"amount" validate:"required,gt=0"`
	Campaign string `json:"campaign" validate:"required,max=150"`

	PaymentMethod string  `json:"payment_method" validate:"required,oneof=card upi upi-id qr"`
	UPIID         *string `json:"upi_id"` // payer's address, upi-id method only

	IsAnonymous bool    `json:"is_anonymous"`
	Message     *string `json:"message"`

	// Client context: mobile devices open the intent URI directly,
	// everyone else gets a QR image.
	Mobile bool `json:"mobile"`
}

func (r *SubmitDonationRequest) Validate(v *validator.Validate) error {
	if v == nil {
		v = validator.New()
	}
	if err := v.Struct(r); err != nil {
		return err
	}

	method, ok := model.ParsePaymentMethod(r.PaymentMethod)
	if !ok {
		return errors.New("payment_method must be one of card, upi, upi-id, qr")
	}

	// Method-specific rules. The address-intent branch has no gateway
	// verification, so contact info is mandatory for reconciliation.
	if method == model.MethodUPIID {
		if r.UPIID == nil || !strings.Contains(*r.UPIID, "@") {
			return errors.New("upi_id must be a valid address like name@bank")
		}
		if r.Phone == nil || strings.TrimSpace(*r.Phone) == "" {
			return errors.New("phone is required for upi-id donations")
		}
	}

	return nil
}

func (r *SubmitDonationRequest) Method() model.PaymentMethod {
	m, _ := model.ParsePaymentMethod(r.PaymentMethod)
	return m
}

// VerifyDonationRequest is the client callback after a hosted checkout.
// The donation payload rides along because nothing was persisted at
// submission time for hosted methods.
type VerifyDonationRequest struct {
	OrderID   string `json:"razorpay_order_id" validate:"required"`
	PaymentID string `json:"razorpay_payment_id" validate:"required"`
	Signature string `json:"razorpay_signature" validate:"required"`

	DonorName string  `json:"donor_name" validate:"required,max=100"`
	Email     string  `json:"email" validate:"required,email"`
	Phone     *string `json:"phone" validate:"omitempty,max=20"`

	Amount   int    `json:"amount" validate:"required,gt=0"`
	Campaign string `json:"campaign" validate:"required,max=150"`

	PaymentMethod string  `json:"payment_method" validate:"required,oneof=card upi qr"`
	IsAnonymous   bool    `json:"is_anonymous"`
	Message       *string `json:"message"`
}

func (r *VerifyDonationRequest) Validate(v *validator.Validate) error {
	if v == nil {
		v = validator.New()
	}
	return v.Struct(r)
}

/* ===================== Responses ===================== */

// SubmitDonationResponse is the union of the three branch results; only the
// fields of the taken branch are populated.
type SubmitDonationResponse struct {
	PaymentMethod string `json:"payment_method"`

	// Hosted checkout / generated code
	OrderID  string `json:"order_id,omitempty"`
	Amount   int64  `json:"amount,omitempty"` // paise, what the checkout widget expects
	Currency string `json:"currency,omitempty"`
	KeyID    string `json:"key_id,omitempty"`

	// Address-intent
	TransactionID string `json:"transaction_id,omitempty"`

	// Address-intent + generated code
	PaymentURI string `json:"payment_uri,omitempty"`
	QRImage    string `json:"qr_image,omitempty"` // base64 PNG, omitted on mobile
}

// PublicDonationResponse is the narrowed projection for the unauthenticated
// recent-donations feed. No email, phone, or transaction id ever leaves
// this boundary.
type PublicDonationResponse struct {
	DonorName string    `json:"donor_name"`
	Amount    int       `json:"amount"`
	Campaign  string    `json:"campaign"`
	Date      time.Time `json:"date"`
	Message   *string   `json:"message,omitempty"`
}

func ToPublicDonationResponse(d *model.Donation) PublicDonationResponse {
	return PublicDonationResponse{
		DonorName: d.DonationDonorName,
		Amount:    d.DonationAmount,
		Campaign:  d.DonationCampaign,
		Date:      d.CreatedAt,
		Message:   d.DonationMessage,
	}
}
