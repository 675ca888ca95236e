package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

/* ===================== Constants ===================== */

const (
	CampaignStatusActive    = "active"
	CampaignStatusPaused    = "paused"
	CampaignStatusCompleted = "completed"
)

/* ===================== Model ===================== */

type Campaign struct {
	CampaignID uuid.UUID `gorm:"column:campaign_id;type:uuid;primaryKey" json:"campaign_id"`

	// Join key: donations reference campaigns by exact title match.
	CampaignTitle       string `gorm:"column:campaign_title;type:varchar(150);not null;uniqueIndex" json:"campaign_title"`
	CampaignDescription string `gorm:"column:campaign_description;type:text" json:"campaign_description"`

	// Fundraising goal in whole rupees.
	CampaignTarget int `gorm:"column:campaign_target;not null;check:campaign_target > 0" json:"campaign_target"`

	CampaignCategory string         `gorm:"column:campaign_category;type:varchar(50)" json:"campaign_category"`
	CampaignTags     pq.StringArray `gorm:"column:campaign_tags;type:text[]" json:"campaign_tags,omitempty"`

	CampaignStatus string `gorm:"column:campaign_status;type:varchar(20);not null;default:'active';index" json:"campaign_status"`

	CampaignStartDate *time.Time `gorm:"column:campaign_start_date" json:"campaign_start_date,omitempty"`
	CampaignEndDate   *time.Time `gorm:"column:campaign_end_date" json:"campaign_end_date,omitempty"`

	CampaignImageURL *string `gorm:"column:campaign_image_url;type:text" json:"campaign_image_url,omitempty"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

func (Campaign) TableName() string { return "campaigns" }

func (c *Campaign) BeforeCreate(tx *gorm.DB) error {
	if c.CampaignID == uuid.Nil {
		c.CampaignID = uuid.New()
	}
	return nil
}
