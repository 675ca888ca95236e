package dto

import (
	"time"

	"github.com/go-playground/validator/v10"

	"sevasetu_backend/internals/features/campaigns/model"
)

/* ===================== Requests ===================== */

type CreateCampaignRequest struct {
	Title       string     `json:"title" validate:"required,max=150"`
	Description string     `json:"description"`
	Target      int        `json:"target" validate:"required,gt=0"`
	Category    string     `json:"category" validate:"omitempty,max=50"`
	Tags        []string   `json:"tags"`
	Status      string     `json:"status" validate:"omitempty,oneof=active paused completed"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	ImageURL    *string    `json:"image_url"`
}

func (r *CreateCampaignRequest) Validate(v *validator.Validate) error {
	if v == nil {
		v = validator.New()
	}
	return v.Struct(r)
}

type UpdateCampaignRequest struct {
	Description *string    `json:"description"`
	Target      *int       `json:"target" validate:"omitempty,gt=0"`
	Category    *string    `json:"category" validate:"omitempty,max=50"`
	Tags        []string   `json:"tags"`
	Status      *string    `json:"status" validate:"omitempty,oneof=active paused completed"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	ImageURL    *string    `json:"image_url"`
}

func (r *UpdateCampaignRequest) Validate(v *validator.Validate) error {
	if v == nil {
		v = validator.New()
	}
	return v.Struct(r)
}

/* ===================== Responses ===================== */

// PublicCampaignResponse carries campaign metadata plus the derived
// fundraising stats. Never individual donor identities.
type PublicCampaignResponse struct {
	CampaignID  string     `json:"campaign_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Target      int        `json:"target"`
	Category    string     `json:"category"`
	Tags        []string   `json:"tags,omitempty"`
	Status      string     `json:"status"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	ImageURL    *string    `json:"image_url,omitempty"`

	// Derived, never stored.
	Raised int `json:"raised"`
	Donors int `json:"donors"`
}

func ToPublicCampaignResponse(c *model.Campaign, raised, donors int) PublicCampaignResponse {
	return PublicCampaignResponse{
		CampaignID:  c.CampaignID.String(),
		Title:       c.CampaignTitle,
		Description: c.CampaignDescription,
		Target:      c.CampaignTarget,
		Category:    c.CampaignCategory,
		Tags:        c.CampaignTags,
		Status:      c.CampaignStatus,
		StartDate:   c.CampaignStartDate,
		EndDate:     c.CampaignEndDate,
		ImageURL:    c.CampaignImageURL,
		Raised:      raised,
		Donors:      donors,
	}
}
