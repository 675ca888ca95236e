package dto

import (
	"testing"
	"time"

	"sevasetu_backend/internals/features/payment/donations/model"
)

func baseSubmit() SubmitDonationRequest {
	return SubmitDonationRequest{
		DonorName:     "Asha",
		Email:         "a@x.com",
		Amount:        500,
		Campaign:      "Education for All",
		PaymentMethod: "card",
	}
}

func TestSubmitDonationRequestValidate(t *testing.T) {
	phone := "9876543210"
	vpa := "asha@upi"
	noSep := "ashaupi"

	tests := []struct {
		name    string
		mutate  func(*SubmitDonationRequest)
		wantErr bool
	}{
		{"valid card", func(r *SubmitDonationRequest) {}, false},
		{"valid upi", func(r *SubmitDonationRequest) { r.PaymentMethod = "upi" }, false},
		{"valid qr", func(r *SubmitDonationRequest) { r.PaymentMethod = "qr" }, false},
		{"valid upi-id", func(r *SubmitDonationRequest) {
			r.PaymentMethod = "upi-id"
			r.UPIID = &vpa
			r.Phone = &phone
		}, false},
		{"zero amount", func(r *SubmitDonationRequest) { r.Amount = 0 }, true},
		{"negative amount", func(r *SubmitDonationRequest) { r.Amount = -50 }, true},
		{"missing donor name", func(r *SubmitDonationRequest) { r.DonorName = "" }, true},
		{"missing email", func(r *SubmitDonationRequest) { r.Email = "" }, true},
		{"bad email", func(r *SubmitDonationRequest) { r.Email = "nope" }, true},
		{"unknown method", func(r *SubmitDonationRequest) { r.PaymentMethod = "cash" }, true},
		{"upi-id without address", func(r *SubmitDonationRequest) {
			r.PaymentMethod = "upi-id"
			r.Phone = &phone
		}, true},
		{"upi-id address without separator", func(r *SubmitDonationRequest) {
			r.PaymentMethod = "upi-id"
			r.UPIID = &noSep
			r.Phone = &phone
		}, true},
		{"upi-id without phone", func(r *SubmitDonationRequest) {
			r.PaymentMethod = "upi-id"
			r.UPIID = &vpa
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseSubmit()
			tt.mutate(&req)
			err := req.Validate(nil)
			if tt.wantErr && err == nil {
				t.Error("want error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestPublicProjectionNarrowsFields(t *testing.T) {
	email := "secret@x.com"
	phone := "9876543210"
	txID := "pay_abc"
	msg := "Keep it up!"

	d := model.Donation{
		DonationDonorName:     "Ravi",
		DonationEmail:         &email,
		DonationPhone:         &phone,
		DonationAmount:        750,
		DonationCampaign:      "Clean Water",
		DonationTransactionID: &txID,
		DonationMessage:       &msg,
		CreatedAt:             time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}

	pub := ToPublicDonationResponse(&d)
	if pub.DonorName != "Ravi" || pub.Amount != 750 || pub.Campaign != "Clean Water" {
		t.Errorf("projection = %+v", pub)
	}
	if pub.Message == nil || *pub.Message != msg {
		t.Error("message should survive the projection")
	}
	// The struct has no email/phone/transaction-id fields at all; this test
	// pins the date mapping, the only non-obvious one.
	if !pub.Date.Equal(d.CreatedAt) {
		t.Errorf("date = %v, want %v", pub.Date, d.CreatedAt)
	}
}
