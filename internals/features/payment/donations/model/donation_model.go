package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ===================== Constants ===================== */

const (
	DonationStatusPending   = "pending"
	DonationStatusCompleted = "completed"
)

// Payment methods. Closed set: each method has its own submission branch
// and carries only the fields that branch needs.
type PaymentMethod string

const (
	MethodCard  PaymentMethod = "card"   // hosted checkout
	MethodUPI   PaymentMethod = "upi"    // hosted checkout
	MethodUPIID PaymentMethod = "upi-id" // payer-supplied address, manual reconciliation
	MethodQR    PaymentMethod = "qr"     // provider-tracked order rendered as QR
)

func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch PaymentMethod(strings.ToLower(strings.TrimSpace(s))) {
	case MethodCard:
		return MethodCard, true
	case MethodUPI:
		return MethodUPI, true
	case MethodUPIID:
		return MethodUPIID, true
	case MethodQR:
		return MethodQR, true
	}
	return "", false
}

// Hosted methods settle through the gateway; nothing is persisted until
// signature verification succeeds.
func (m PaymentMethod) Hosted() bool {
	return m == MethodCard || m == MethodUPI || m == MethodQR
}

// AnonymousDonorName replaces the donor's name at write time when anonymity
// is requested. Irreversible: the real name is never stored.
const AnonymousDonorName = "Anonymous"

/* ===================== Model ===================== */

type Donation struct {
	DonationID uuid.UUID `gorm:"column:donation_id;type:uuid;primaryKey" json:"donation_id"`

	DonationDonorName string  `gorm:"column:donation_donor_name;type:varchar(100);not null" json:"donation_donor_name"`
	DonationEmail     *string `gorm:"column:donation_email;type:varchar(120)" json:"donation_email,omitempty"`
	DonationPhone     *string `gorm:"column:donation_phone;type:varchar(20)" json:"donation_phone,omitempty"`

	// Whole rupees.
	DonationAmount int `gorm:"column:donation_amount;not null;check:donation_amount > 0" json:"donation_amount"`

	// Join key to campaigns.campaign_title: exact string equality, not an FK.
	DonationCampaign string `gorm:"column:donation_campaign;type:varchar(150);not null;index" json:"donation_campaign"`

	DonationPaymentMethod PaymentMethod `gorm:"column:donation_payment_method;type:varchar(10);not null" json:"donation_payment_method"`

	// Gateway payment id, or the locally generated correlation id for
	// address-intent donations (UPIID_<ts>_<rand>).
	DonationTransactionID *string `gorm:"column:donation_transaction_id;type:varchar(100);uniqueIndex" json:"donation_transaction_id,omitempty"`
	DonationOrderID       *string `gorm:"column:donation_order_id;type:varchar(100)" json:"donation_order_id,omitempty"`

	DonationStatus   string `gorm:"column:donation_status;type:varchar(20);not null;default:'pending';index" json:"donation_status"`
	DonationApproved bool   `gorm:"column:donation_approved;not null;default:false;index" json:"donation_approved"`

	DonationIsAnonymous bool    `gorm:"column:donation_is_anonymous;not null;default:false" json:"donation_is_anonymous"`
	DonationMessage     *string `gorm:"column:donation_message;type:text" json:"donation_message,omitempty"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

func (Donation) TableName() string { return "donations" }

func (d *Donation) BeforeCreate(tx *gorm.DB) error {
	if d.DonationID == uuid.Nil {
		d.DonationID = uuid.New()
	}
	return nil
}

/* ===================== Helpers ===================== */

// CountsTowardCampaign: a donation contributes to its campaign's raised
// total and donor count iff both conditions hold.
func (d *Donation) CountsTowardCampaign() bool {
	return d.DonationStatus == DonationStatusCompleted && d.DonationApproved
}

// PubliclyVisible: safe for the unauthenticated recent-donations feed.
func (d *Donation) PubliclyVisible() bool {
	return d.CountsTowardCampaign() && !d.DonationIsAnonymous
}
