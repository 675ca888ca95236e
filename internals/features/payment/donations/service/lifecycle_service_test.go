package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"sevasetu_backend/internals/features/payment/donations/dto"
	"sevasetu_backend/internals/features/payment/donations/model"
	"sevasetu_backend/internals/features/payment/donations/store"
	"sevasetu_backend/internals/features/payment/gateway"
)

/* ===================== Fakes ===================== */

type fakeStore struct {
	donations []model.Donation
	events    []model.PaymentGatewayEvent
	insertErr error
}

func (f *fakeStore) Insert(ctx context.Context, d *model.Donation) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	if d.DonationID == uuid.Nil {
		d.DonationID = uuid.New()
	}
	f.donations = append(f.donations, *d)
	return nil
}

func (f *fakeStore) match(d *model.Donation, flt store.Filter) bool {
	if flt.Campaign != nil && d.DonationCampaign != *flt.Campaign {
		return false
	}
	if flt.Status != nil && d.DonationStatus != *flt.Status {
		return false
	}
	if flt.Approved != nil && d.DonationApproved != *flt.Approved {
		return false
	}
	if flt.Anonymous != nil && d.DonationIsAnonymous != *flt.Anonymous {
		return false
	}
	return true
}

func (f *fakeStore) FindMany(ctx context.Context, flt store.Filter, limit, offset int) ([]model.Donation, error) {
	var out []model.Donation
	for i := range f.donations {
		if f.match(&f.donations[i], flt) {
			out = append(out, f.donations[i])
		}
	}
	if offset > 0 {
		if offset >= len(out) {
			return nil, nil
		}
		out = out[offset:]
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) Count(ctx context.Context, flt store.Filter) (int64, error) {
	var n int64
	for i := range f.donations {
		if f.match(&f.donations[i], flt) {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) FindByID(ctx context.Context, id uuid.UUID) (*model.Donation, error) {
	for i := range f.donations {
		if f.donations[i].DonationID == id {
			d := f.donations[i]
			return &d, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) FindByTransactionID(ctx context.Context, txID string) (*model.Donation, error) {
	for i := range f.donations {
		if f.donations[i].DonationTransactionID != nil && *f.donations[i].DonationTransactionID == txID {
			d := f.donations[i]
			return &d, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) UpdateOne(ctx context.Context, id uuid.UUID, partial map[string]any) (int64, error) {
	for i := range f.donations {
		if f.donations[i].DonationID == id {
			if v, ok := partial["donation_status"].(string); ok {
				f.donations[i].DonationStatus = v
			}
			if v, ok := partial["donation_approved"].(bool); ok {
				f.donations[i].DonationApproved = v
			}
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeStore) LogGatewayEvent(ctx context.Context, e *model.PaymentGatewayEvent) error {
	f.events = append(f.events, *e)
	return nil
}

type fakeGateway struct {
	secret     string
	nextOrder  string
	createErr  error
	orderCalls int
}

func (f *fakeGateway) CreateOrder(ctx context.Context, amountRupees int, receipt string) (*gateway.Order, error) {
	f.orderCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &gateway.Order{
		OrderID:  f.nextOrder,
		Amount:   int64(amountRupees) * 100,
		Currency: "INR",
		KeyID:    "rzp_test_key",
	}, nil
}

func (f *fakeGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return gateway.VerifySignature(orderID, paymentID, signature, f.secret)
}

func signFor(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func newTestService() (*LifecycleService, *fakeStore, *fakeGateway) {
	st := &fakeStore{}
	gw := &fakeGateway{secret: "test_secret", nextOrder: "order_test_1"}
	intents := gateway.NewIntentBuilder("sevasetu@icici", "SevaSetu Foundation")
	return NewLifecycleService(st, gw, intents), st, gw
}

/* ===================== Submit ===================== */

func TestSubmitDonationRejectsInvalidInput(t *testing.T) {
	svc, st, _ := newTestService()

	cases := []dto.SubmitDonationRequest{
		{DonorName: "Asha", Email: "a@x.com", Amount: 0, Campaign: "C", PaymentMethod: "card"},
		{DonorName: "", Email: "a@x.com", Amount: 100, Campaign: "C", PaymentMethod: "card"},
		{DonorName: "Asha", Email: "not-an-email", Amount: 100, Campaign: "C", PaymentMethod: "card"},
		{DonorName: "Asha", Email: "a@x.com", Amount: 100, Campaign: "C", PaymentMethod: "paypal"},
		{DonorName: "Asha", Email: "a@x.com", Amount: 100, Campaign: "C", PaymentMethod: "upi-id",
			UPIID: strPtr("no-separator"), Phone: strPtr("9999999999")},
	}
	for i, req := range cases {
		if _, err := svc.SubmitDonation(context.Background(), req); !errors.Is(err, ErrValidation) {
			t.Errorf("case %d: want ErrValidation, got %v", i, err)
		}
	}
	if len(st.donations) != 0 {
		t.Fatalf("validation failures must not write: %d rows", len(st.donations))
	}
}

func TestSubmitHostedCreatesOrderWithoutPersisting(t *testing.T) {
	svc, st, gw := newTestService()

	resp, err := svc.SubmitDonation(context.Background(), dto.SubmitDonationRequest{
		DonorName: "Ravi", Email: "r@x.com", Amount: 1200,
		Campaign: "Clean Water", PaymentMethod: "card",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if resp.OrderID != "order_test_1" {
		t.Errorf("order id = %q", resp.OrderID)
	}
	if resp.Amount != 120000 {
		t.Errorf("paise conversion: got %d, want 120000", resp.Amount)
	}
	if gw.orderCalls != 1 {
		t.Errorf("order calls = %d", gw.orderCalls)
	}
	// Hosted checkout persists nothing until verification.
	if len(st.donations) != 0 {
		t.Fatalf("hosted submit wrote %d rows", len(st.donations))
	}
}

func TestSubmitGatewayFailureWritesNothing(t *testing.T) {
	svc, st, gw := newTestService()
	gw.createErr = errors.New("provider down")

	_, err := svc.SubmitDonation(context.Background(), dto.SubmitDonationRequest{
		DonorName: "Ravi", Email: "r@x.com", Amount: 100,
		Campaign: "Clean Water", PaymentMethod: "upi",
	})
	if !errors.Is(err, ErrGateway) {
		t.Fatalf("want ErrGateway, got %v", err)
	}
	if len(st.donations) != 0 {
		t.Fatal("gateway failure must not write")
	}
}

// Address-intent submission: pending row persisted up front.
func TestSubmitAddressIntent(t *testing.T) {
	svc, st, _ := newTestService()

	resp, err := svc.SubmitDonation(context.Background(), dto.SubmitDonationRequest{
		DonorName: "Asha", Email: "a@x.com", Phone: strPtr("9876543210"),
		Amount: 500, Campaign: "Education for All",
		PaymentMethod: "upi-id", UPIID: strPtr("asha@upi"),
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if len(st.donations) != 1 {
		t.Fatalf("want exactly one row, got %d", len(st.donations))
	}
	d := st.donations[0]
	if d.DonationStatus != model.DonationStatusPending || d.DonationApproved {
		t.Errorf("want pending/unapproved, got %s/%v", d.DonationStatus, d.DonationApproved)
	}
	if d.DonationTransactionID == nil || !strings.HasPrefix(*d.DonationTransactionID, "UPIID_") {
		t.Errorf("transaction id = %v", d.DonationTransactionID)
	}
	if !strings.Contains(resp.PaymentURI, "am=500") {
		t.Errorf("payment URI missing am=500: %s", resp.PaymentURI)
	}
	if resp.QRImage == "" {
		t.Error("non-mobile client should get a QR image")
	}
	if resp.TransactionID != *d.DonationTransactionID {
		t.Error("response correlation id differs from persisted row")
	}
}

func TestSubmitAddressIntentMobileSkipsQR(t *testing.T) {
	svc, _, _ := newTestService()

	resp, err := svc.SubmitDonation(context.Background(), dto.SubmitDonationRequest{
		DonorName: "Asha", Email: "a@x.com", Phone: strPtr("9876543210"),
		Amount: 300, Campaign: "Education for All",
		PaymentMethod: "upi-id", UPIID: strPtr("asha@upi"), Mobile: true,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if resp.QRImage != "" {
		t.Error("mobile client should open the URI directly, no QR")
	}
	if resp.PaymentURI == "" {
		t.Error("mobile client still needs the intent URI")
	}
}

func TestSubmitGeneratedCode(t *testing.T) {
	svc, st, _ := newTestService()

	resp, err := svc.SubmitDonation(context.Background(), dto.SubmitDonationRequest{
		DonorName: "Meera", Email: "m@x.com", Amount: 900,
		Campaign: "Clean Water", PaymentMethod: "qr",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !strings.Contains(resp.PaymentURI, "tr=order_test_1") {
		t.Errorf("QR URI should reference the gateway order: %s", resp.PaymentURI)
	}
	if resp.QRImage == "" {
		t.Error("missing QR image")
	}
	// Mirrors hosted checkout: nothing persisted until verification.
	if len(st.donations) != 0 {
		t.Fatalf("qr submit wrote %d rows", len(st.donations))
	}
}

/* ===================== Verify ===================== */

func verifyReq(orderID, paymentID, sig string) dto.VerifyDonationRequest {
	return dto.VerifyDonationRequest{
		OrderID: orderID, PaymentID: paymentID, Signature: sig,
		DonorName: "Ravi", Email: "r@x.com", Amount: 1200,
		Campaign: "Clean Water", PaymentMethod: "card",
	}
}

// Hosted checkout followed by a valid verification callback.
func TestVerifyAndFinalizeSuccess(t *testing.T) {
	svc, st, _ := newTestService()

	sig := signFor("order_test_1", "pay_abc", "test_secret")
	d, err := svc.VerifyAndFinalize(context.Background(), verifyReq("order_test_1", "pay_abc", sig))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if len(st.donations) != 1 {
		t.Fatalf("want exactly one row, got %d", len(st.donations))
	}
	if d.DonationStatus != model.DonationStatusCompleted || !d.DonationApproved {
		t.Errorf("want completed/approved, got %s/%v", d.DonationStatus, d.DonationApproved)
	}
	if d.DonationTransactionID == nil || *d.DonationTransactionID != "pay_abc" {
		t.Errorf("transaction id = %v", d.DonationTransactionID)
	}
	if len(st.events) != 1 || st.events[0].GatewayEventStatus != model.GatewayEventProcessed {
		t.Errorf("gateway event log = %+v", st.events)
	}
}

// Forged signature: logged, rejected, nothing persisted.
func TestVerifyAndFinalizeForgedSignature(t *testing.T) {
	svc, st, _ := newTestService()

	forged := signFor("order_test_1", "pay_abc", "attacker_secret")
	_, err := svc.VerifyAndFinalize(context.Background(), verifyReq("order_test_1", "pay_abc", forged))
	if !errors.Is(err, ErrVerification) {
		t.Fatalf("want ErrVerification, got %v", err)
	}
	if len(st.donations) != 0 {
		t.Fatal("forged signature must not write a donation")
	}
	if len(st.events) != 1 || st.events[0].GatewayEventStatus != model.GatewayEventSignatureMismatch {
		t.Errorf("mismatch should still be logged: %+v", st.events)
	}
}

func TestVerifyAndFinalizeIdempotent(t *testing.T) {
	svc, st, _ := newTestService()

	sig := signFor("order_test_1", "pay_abc", "test_secret")
	req := verifyReq("order_test_1", "pay_abc", sig)

	first, err := svc.VerifyAndFinalize(context.Background(), req)
	if err != nil {
		t.Fatalf("first verify: %v", err)
	}
	second, err := svc.VerifyAndFinalize(context.Background(), req)
	if err != nil {
		t.Fatalf("second verify: %v", err)
	}
	if len(st.donations) != 1 {
		t.Fatalf("duplicate delivery double-counted: %d rows", len(st.donations))
	}
	if first.DonationID != second.DonationID {
		t.Error("duplicate delivery returned a different row")
	}
}

func TestVerifyAnonymousReplacesNameKeepsContact(t *testing.T) {
	svc, _, _ := newTestService()

	sig := signFor("order_test_1", "pay_anon", "test_secret")
	req := verifyReq("order_test_1", "pay_anon", sig)
	req.IsAnonymous = true
	req.Phone = strPtr("9876543210")

	d, err := svc.VerifyAndFinalize(context.Background(), req)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if d.DonationDonorName != model.AnonymousDonorName {
		t.Errorf("donor name = %q", d.DonationDonorName)
	}
	// Contact survives server-side for tax receipts.
	if d.DonationEmail == nil || *d.DonationEmail != "r@x.com" {
		t.Error("email should be preserved")
	}
	if d.DonationPhone == nil || *d.DonationPhone != "9876543210" {
		t.Error("phone should be preserved")
	}
}

/* ===================== Public feed ===================== */

func seedDonation(st *fakeStore, campaign, status string, approved, anonymous bool, amount int, txID string) {
	email := "x@x.com"
	st.donations = append(st.donations, model.Donation{
		DonationID:            uuid.New(),
		DonationDonorName:     "Donor",
		DonationEmail:         &email,
		DonationAmount:        amount,
		DonationCampaign:      campaign,
		DonationPaymentMethod: model.MethodCard,
		DonationTransactionID: &txID,
		DonationStatus:        status,
		DonationApproved:      approved,
		DonationIsAnonymous:   anonymous,
	})
}

func TestListPublicRecentFiltersAndNarrows(t *testing.T) {
	svc, st, _ := newTestService()

	seedDonation(st, "A", model.DonationStatusCompleted, true, false, 400, "tx1") // visible
	seedDonation(st, "A", model.DonationStatusPending, false, false, 100, "tx2")  // pending → hidden
	seedDonation(st, "A", model.DonationStatusCompleted, false, false, 200, "tx3") // unapproved → hidden
	seedDonation(st, "A", model.DonationStatusCompleted, true, true, 300, "tx4")  // anonymous → hidden

	feed, err := svc.ListPublicRecent(context.Background(), 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(feed) != 1 {
		t.Fatalf("feed size = %d, want 1", len(feed))
	}
	if feed[0].Amount != 400 || feed[0].Campaign != "A" {
		t.Errorf("unexpected feed entry: %+v", feed[0])
	}
}

/* ===================== Approve ===================== */

func TestApproveTransitionsAndIsIdempotent(t *testing.T) {
	svc, st, _ := newTestService()
	seedDonation(st, "A", model.DonationStatusPending, false, false, 500, "UPIID_1_aa")
	id := st.donations[0].DonationID

	d, err := svc.Approve(context.Background(), id)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if !d.CountsTowardCampaign() {
		t.Error("approved donation should count toward its campaign")
	}

	// Re-approval is a no-op, never a rollback.
	again, err := svc.Approve(context.Background(), id)
	if err != nil {
		t.Fatalf("re-approve: %v", err)
	}
	if !again.CountsTowardCampaign() {
		t.Error("re-approval must not roll back")
	}

	if _, err := svc.Approve(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown id: want ErrNotFound, got %v", err)
	}
}

func strPtr(s string) *string { return &s }
