package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"sevasetu_backend/internals/features/payment/donations/dto"
	"sevasetu_backend/internals/features/payment/donations/model"
	"sevasetu_backend/internals/features/payment/donations/store"
	"sevasetu_backend/internals/features/payment/gateway"
)

/*
	========================================================
	  Donation Lifecycle Service

========================================================
*/

type LifecycleService struct {
	Store    store.DonationStore
	Gateway  gateway.Client
	Intents  *gateway.IntentBuilder
	validate *validator.Validate
}

func NewLifecycleService(st store.DonationStore, gw gateway.Client, intents *gateway.IntentBuilder) *LifecycleService {
	return &LifecycleService{
		Store:    st,
		Gateway:  gw,
		Intents:  intents,
		validate: validator.New(),
	}
}

/* ===================== Submit ===================== */

// SubmitDonation validates a pledge and dispatches on the payment method.
// Exactly one donation row is written per successful address-intent
// submission; hosted and QR branches persist nothing until verification.
func (s *LifecycleService) SubmitDonation(ctx context.Context, req dto.SubmitDonationRequest) (*dto.SubmitDonationResponse, error) {
	if err := req.Validate(s.validate); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	switch method := req.Method(); method {
	case model.MethodCard, model.MethodUPI:
		return s.submitHosted(ctx, req, method)
	case model.MethodQR:
		return s.submitGeneratedCode(ctx, req)
	case model.MethodUPIID:
		return s.submitAddressIntent(ctx, req)
	default:
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrValidation, req.PaymentMethod)
	}
}

// Hosted checkout: create a gateway order and hand the handle back. The
// donation is persisted only when VerifyAndFinalize succeeds; an abandoned
// checkout leaves no local row.
func (s *LifecycleService) submitHosted(ctx context.Context, req dto.SubmitDonationRequest, method model.PaymentMethod) (*dto.SubmitDonationResponse, error) {
	order, err := s.Gateway.CreateOrder(ctx, req.Amount, "donation_"+generateRef())
	if err != nil {
		log.Printf("[ERROR] gateway order creation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	return &dto.SubmitDonationResponse{
		PaymentMethod: string(method),
		OrderID:       order.OrderID,
		Amount:        order.Amount,
		Currency:      order.Currency,
		KeyID:         order.KeyID,
	}, nil
}

// Generated code: gateway order first (so the code is tied to a
// provider-tracked transaction), then the order's payment URI as a QR.
// Persistence deferred until verification, mirroring hosted checkout.
func (s *LifecycleService) submitGeneratedCode(ctx context.Context, req dto.SubmitDonationRequest) (*dto.SubmitDonationResponse, error) {
	order, err := s.Gateway.CreateOrder(ctx, req.Amount, "donation_"+generateRef())
	if err != nil {
		log.Printf("[ERROR] gateway order creation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	uri, err := s.Intents.BuildOrderURI(req.Amount, order.OrderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	png, err := gateway.RenderQRPNG(uri)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	return &dto.SubmitDonationResponse{
		PaymentMethod: string(model.MethodQR),
		OrderID:       order.OrderID,
		Amount:        order.Amount,
		Currency:      order.Currency,
		KeyID:         order.KeyID,
		PaymentURI:    uri,
		QRImage:       base64.StdEncoding.EncodeToString(png),
	}, nil
}

// Address-intent: persist a pending row immediately and hand back a deep
// link carrying the correlation id. Payment success is asserted by the
// payer; an admin approves after confirming receipt out-of-band.
func (s *LifecycleService) submitAddressIntent(ctx context.Context, req dto.SubmitDonationRequest) (*dto.SubmitDonationResponse, error) {
	correlationID := fmt.Sprintf("UPIID_%d_%s", time.Now().UnixNano(), generateRef())

	uri, err := s.Intents.BuildIntentURI(req.Amount, correlationID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	qrImage := ""
	if !req.Mobile {
		png, err := gateway.RenderQRPNG(uri)
		if err != nil {
			return nil, fmt.Errorf("render qr: %w", err)
		}
		qrImage = base64.StdEncoding.EncodeToString(png)
	}

	donation := buildDonation(req.DonorName, req.Email, req.Phone, req.Amount, req.Campaign,
		model.MethodUPIID, correlationID, nil, req.IsAnonymous, req.Message)
	donation.DonationStatus = model.DonationStatusPending
	donation.DonationApproved = false

	if err := s.Store.Insert(ctx, donation); err != nil {
		log.Printf("[ERROR] failed to persist donation: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return &dto.SubmitDonationResponse{
		PaymentMethod: string(model.MethodUPIID),
		TransactionID: correlationID,
		PaymentURI:    uri,
		QRImage:       qrImage,
	}, nil
}

/* ===================== Verify ===================== */

// VerifyAndFinalize checks the gateway signature and, on success, persists
// the donation as completed+approved. Idempotent on the gateway payment id:
// duplicate delivery of the same callback never double-counts.
func (s *LifecycleService) VerifyAndFinalize(ctx context.Context, req dto.VerifyDonationRequest) (*model.Donation, error) {
	if err := req.Validate(s.validate); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if !s.Gateway.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
		log.Printf("[WARN] signature mismatch for order %s", req.OrderID)
		s.logGatewayEvent(ctx, req, model.GatewayEventSignatureMismatch, "signature mismatch")
		return nil, fmt.Errorf("%w: signature mismatch for order %s", ErrVerification, req.OrderID)
	}

	// Duplicate callback → return the row already written.
	if existing, err := s.Store.FindByTransactionID(ctx, req.PaymentID); err == nil {
		s.logGatewayEvent(ctx, req, model.GatewayEventProcessed, "duplicate delivery")
		return existing, nil
	} else if err != store.ErrNotFound {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	method, _ := model.ParsePaymentMethod(req.PaymentMethod)
	donation := buildDonation(req.DonorName, req.Email, req.Phone, req.Amount, req.Campaign,
		method, req.PaymentID, &req.OrderID, req.IsAnonymous, req.Message)
	donation.DonationStatus = model.DonationStatusCompleted
	donation.DonationApproved = true

	if err := s.Store.Insert(ctx, donation); err != nil {
		log.Printf("[ERROR] failed to persist verified donation: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	s.logGatewayEvent(ctx, req, model.GatewayEventProcessed, "")
	return donation, nil
}

/* ===================== Reads ===================== */

// ListPublicRecent is the unauthenticated feed: completed, approved,
// non-anonymous donations only, narrowed fields.
func (s *LifecycleService) ListPublicRecent(ctx context.Context, limit int) ([]dto.PublicDonationResponse, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	completed := model.DonationStatusCompleted
	approved := true
	anonymous := false

	donations, err := s.Store.FindMany(ctx, store.Filter{
		Status:    &completed,
		Approved:  &approved,
		Anonymous: &anonymous,
	}, limit, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	out := make([]dto.PublicDonationResponse, 0, len(donations))
	for i := range donations {
		out = append(out, dto.ToPublicDonationResponse(&donations[i]))
	}
	return out, nil
}

// ListAllForAdmin exposes every field, status, and approval state for
// manual reconciliation.
func (s *LifecycleService) ListAllForAdmin(ctx context.Context, f store.Filter, limit, offset int) ([]model.Donation, int64, error) {
	donations, err := s.Store.FindMany(ctx, f, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	total, err := s.Store.Count(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return donations, total, nil
}

func (s *LifecycleService) GetByID(ctx context.Context, id uuid.UUID) (*model.Donation, error) {
	d, err := s.Store.FindByID(ctx, id)
	if err == store.ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return d, nil
}

/* ===================== Approve ===================== */

// Approve marks a manually reconciled donation completed+approved.
// Transitions false→true only; re-approval is a no-op.
func (s *LifecycleService) Approve(ctx context.Context, id uuid.UUID) (*model.Donation, error) {
	d, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.CountsTowardCampaign() {
		return d, nil
	}

	matched, err := s.Store.UpdateOne(ctx, id, map[string]any{
		"donation_status":   model.DonationStatusCompleted,
		"donation_approved": true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if matched == 0 {
		return nil, ErrNotFound
	}

	d.DonationStatus = model.DonationStatusCompleted
	d.DonationApproved = true
	return d, nil
}

/* ===================== Internals ===================== */

func buildDonation(name, email string, phone *string, amount int, campaign string,
	method model.PaymentMethod, transactionID string, orderID *string,
	anonymous bool, message *string) *model.Donation {

	// Anonymity is applied at write time and is irreversible; contact
	// fields are kept server-side for tax receipts.
	donorName := name
	if anonymous {
		donorName = model.AnonymousDonorName
	}

	return &model.Donation{
		DonationDonorName:     donorName,
		DonationEmail:         &email,
		DonationPhone:         phone,
		DonationAmount:        amount,
		DonationCampaign:      campaign,
		DonationPaymentMethod: method,
		DonationTransactionID: &transactionID,
		DonationOrderID:       orderID,
		DonationIsAnonymous:   anonymous,
		DonationMessage:       message,
	}
}

func (s *LifecycleService) logGatewayEvent(ctx context.Context, req dto.VerifyDonationRequest, status, errMsg string) {
	payload, _ := json.Marshal(req)
	event := &model.PaymentGatewayEvent{
		GatewayEventOrderID:   req.OrderID,
		GatewayEventPaymentID: &req.PaymentID,
		GatewayEventSignature: &req.Signature,
		GatewayEventPayload:   datatypes.JSON(payload),
		GatewayEventStatus:    status,
	}
	if errMsg != "" {
		event.GatewayEventError = &errMsg
	}
	if err := s.Store.LogGatewayEvent(ctx, event); err != nil {
		log.Printf("[ERROR] failed to log gateway event for order %s: %v", req.OrderID, err)
	}
}

func generateRef() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%08x", time.Now().UnixNano()&0xffffffff)
	}
	return hex.EncodeToString(b)
}
