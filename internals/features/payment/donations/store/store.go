package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sevasetu_backend/internals/features/payment/donations/model"
)

var ErrNotFound = errors.New("donation not found")

// Filter is the predicate set the donation read paths need. Nil fields
// are unconstrained.
type Filter struct {
	Campaign  *string
	Status    *string
	Approved  *bool
	Anonymous *bool
}

// DonationStore is the persistence boundary for donation documents.
// Explicitly injected so tests can substitute an in-memory fake.
type DonationStore interface {
	Insert(ctx context.Context, d *model.Donation) error
	FindMany(ctx context.Context, f Filter, limit, offset int) ([]model.Donation, error)
	Count(ctx context.Context, f Filter) (int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Donation, error)
	FindByTransactionID(ctx context.Context, txID string) (*model.Donation, error)
	UpdateOne(ctx context.Context, id uuid.UUID, partial map[string]any) (int64, error)
	LogGatewayEvent(ctx context.Context, e *model.PaymentGatewayEvent) error
}

/* ===================== GORM implementation ===================== */

type gormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) DonationStore {
	return &gormStore{db: db}
}

func (s *gormStore) Insert(ctx context.Context, d *model.Donation) error {
	return s.db.WithContext(ctx).Create(d).Error
}

func (s *gormStore) scoped(ctx context.Context, f Filter) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&model.Donation{})
	if f.Campaign != nil {
		q = q.Where("donation_campaign = ?", *f.Campaign)
	}
	if f.Status != nil {
		q = q.Where("donation_status = ?", *f.Status)
	}
	if f.Approved != nil {
		q = q.Where("donation_approved = ?", *f.Approved)
	}
	if f.Anonymous != nil {
		q = q.Where("donation_is_anonymous = ?", *f.Anonymous)
	}
	return q
}

func (s *gormStore) FindMany(ctx context.Context, f Filter, limit, offset int) ([]model.Donation, error) {
	var out []model.Donation
	q := s.scoped(ctx, f).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *gormStore) Count(ctx context.Context, f Filter) (int64, error) {
	var n int64
	if err := s.scoped(ctx, f).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (s *gormStore) FindByID(ctx context.Context, id uuid.UUID) (*model.Donation, error) {
	var d model.Donation
	err := s.db.WithContext(ctx).Where("donation_id = ?", id).First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *gormStore) FindByTransactionID(ctx context.Context, txID string) (*model.Donation, error) {
	var d model.Donation
	err := s.db.WithContext(ctx).Where("donation_transaction_id = ?", txID).First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *gormStore) UpdateOne(ctx context.Context, id uuid.UUID, partial map[string]any) (int64, error) {
	res := s.db.WithContext(ctx).Model(&model.Donation{}).
		Where("donation_id = ?", id).
		Updates(partial)
	return res.RowsAffected, res.Error
}

func (s *gormStore) LogGatewayEvent(ctx context.Context, e *model.PaymentGatewayEvent) error {
	return s.db.WithContext(ctx).Create(e).Error
}
