package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	campaignController "sevasetu_backend/internals/features/campaigns/controller"
	campaignService "sevasetu_backend/internals/features/campaigns/service"
)

// PublicCampaignRoutes: active campaigns with derived fundraising stats.
func PublicCampaignRoutes(api fiber.Router, db *gorm.DB, agg *campaignService.Aggregator) {
	ctrl := campaignController.NewCampaignController(db, agg)

	campaigns := api.Group("/campaigns")
	campaigns.Get("/", ctrl.GetActiveCampaigns)
	campaigns.Get("/:id", ctrl.GetCampaignByID)
}
