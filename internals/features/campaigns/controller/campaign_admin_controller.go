package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"sevasetu_backend/internals/features/campaigns/dto"
	"sevasetu_backend/internals/features/campaigns/model"
	helper "sevasetu_backend/internals/helpers"
)

/*
	========================================================
	  Admin Campaign Controller

========================================================
*/

type CampaignAdminController struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewCampaignAdminController(db *gorm.DB) *CampaignAdminController {
	return &CampaignAdminController{DB: db, validate: validator.New()}
}

// POST /api/a/campaigns
func (ctrl *CampaignAdminController) CreateCampaign(c *fiber.Ctx) error {
	var body dto.CreateCampaignRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := body.Validate(ctrl.validate); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	status := body.Status
	if status == "" {
		status = model.CampaignStatusActive
	}

	campaign := model.Campaign{
		CampaignTitle:       strings.TrimSpace(body.Title),
		CampaignDescription: body.Description,
		CampaignTarget:      body.Target,
		CampaignCategory:    body.Category,
		CampaignTags:        pq.StringArray(body.Tags),
		CampaignStatus:      status,
		CampaignStartDate:   body.StartDate,
		CampaignEndDate:     body.EndDate,
		CampaignImageURL:    body.ImageURL,
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Create(&campaign).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "duplicate key") {
			return helper.JsonError(c, fiber.StatusConflict, "A campaign with this title already exists")
		}
		log.Printf("[ERROR] failed to create campaign: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create campaign")
	}

	return helper.JsonCreated(c, "Campaign created.", campaign)
}

// PUT /api/a/campaigns/:id
// The title (join key) is immutable: donations reference it by exact match,
// renaming would silently orphan their contributions.
func (ctrl *CampaignAdminController) UpdateCampaign(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid campaign id")
	}

	var body dto.UpdateCampaignRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := body.Validate(ctrl.validate); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var campaign model.Campaign
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("campaign_id = ?", id).First(&campaign).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Campaign not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch campaign")
	}

	updates := map[string]any{}
	if body.Description != nil {
		updates["campaign_description"] = *body.Description
	}
	if body.Target != nil {
		updates["campaign_target"] = *body.Target
	}
	if body.Category != nil {
		updates["campaign_category"] = *body.Category
	}
	if body.Tags != nil {
		updates["campaign_tags"] = pq.StringArray(body.Tags)
	}
	if body.Status != nil {
		updates["campaign_status"] = *body.Status
	}
	if body.StartDate != nil {
		updates["campaign_start_date"] = *body.StartDate
	}
	if body.EndDate != nil {
		updates["campaign_end_date"] = *body.EndDate
	}
	if body.ImageURL != nil {
		updates["campaign_image_url"] = *body.ImageURL
	}
	if len(updates) == 0 {
		return helper.JsonOK(c, "Nothing to update.", campaign)
	}

	if err := ctrl.DB.WithContext(c.UserContext()).
		Model(&campaign).Updates(updates).Error; err != nil {
		log.Printf("[ERROR] failed to update campaign %s: %v", id, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update campaign")
	}

	return helper.JsonUpdated(c, "Campaign updated.", campaign)
}

// DELETE /api/a/campaigns/:id (soft delete)
func (ctrl *CampaignAdminController) DeleteCampaign(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid campaign id")
	}

	res := ctrl.DB.WithContext(c.UserContext()).
		Where("campaign_id = ?", id).Delete(&model.Campaign{})
	if res.Error != nil {
		log.Printf("[ERROR] failed to delete campaign %s: %v", id, res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete campaign")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Campaign not found")
	}

	return helper.JsonDeleted(c, "Campaign deleted.", nil)
}

// GET /api/a/campaigns lists all statuses for the back office.
func (ctrl *CampaignAdminController) GetAllCampaigns(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.Campaign{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch campaigns")
	}

	var campaigns []model.Campaign
	if err := ctrl.DB.WithContext(c.UserContext()).
		Order("created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&campaigns).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch campaigns")
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	pagination.Count = len(campaigns)
	return helper.JsonList(c, "Campaigns fetched.", campaigns, &pagination)
}
