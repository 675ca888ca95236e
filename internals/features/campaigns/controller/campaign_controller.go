package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sevasetu_backend/internals/features/campaigns/dto"
	"sevasetu_backend/internals/features/campaigns/model"
	campaignService "sevasetu_backend/internals/features/campaigns/service"
	helper "sevasetu_backend/internals/helpers"
)

/*
	========================================================
	  Public Campaign Controller

========================================================
*/

type CampaignController struct {
	DB         *gorm.DB
	Aggregator *campaignService.Aggregator
}

func NewCampaignController(db *gorm.DB, agg *campaignService.Aggregator) *CampaignController {
	return &CampaignController{DB: db, Aggregator: agg}
}

// GET /api/public/campaigns
// Active campaigns only; stats recomputed per request (no cached counters).
func (ctrl *CampaignController) GetActiveCampaigns(c *fiber.Ctx) error {
	var campaigns []model.Campaign
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("campaign_status = ?", model.CampaignStatusActive).
		Order("created_at DESC").
		Find(&campaigns).Error; err != nil {
		log.Printf("[ERROR] failed to fetch campaigns: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch campaigns")
	}

	out := make([]dto.PublicCampaignResponse, 0, len(campaigns))
	for i := range campaigns {
		stats, err := ctrl.Aggregator.StatsFor(c.UserContext(), campaigns[i].CampaignTitle)
		if err != nil {
			log.Printf("[ERROR] failed to aggregate campaign %s: %v", campaigns[i].CampaignTitle, err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch campaigns")
		}
		out = append(out, dto.ToPublicCampaignResponse(&campaigns[i], stats.Raised, stats.Donors))
	}

	return helper.JsonOK(c, "Campaigns fetched.", out)
}

// GET /api/public/campaigns/:id
func (ctrl *CampaignController) GetCampaignByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid campaign id")
	}

	var campaign model.Campaign
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("campaign_id = ? AND campaign_status = ?", id, model.CampaignStatusActive).
		First(&campaign).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Campaign not found")
		}
		log.Printf("[ERROR] failed to fetch campaign: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch campaign")
	}

	stats, err := ctrl.Aggregator.StatsFor(c.UserContext(), campaign.CampaignTitle)
	if err != nil {
		log.Printf("[ERROR] failed to aggregate campaign %s: %v", campaign.CampaignTitle, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch campaign")
	}

	return helper.JsonOK(c, "Campaign fetched.", dto.ToPublicCampaignResponse(&campaign, stats.Raised, stats.Donors))
}
