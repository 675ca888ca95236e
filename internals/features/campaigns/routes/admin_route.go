package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	campaignController "sevasetu_backend/internals/features/campaigns/controller"
)

// AdminCampaignRoutes: back-office CRUD. Mounted behind AuthJWT + admin role.
func AdminCampaignRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := campaignController.NewCampaignAdminController(db)

	admin := api.Group("/campaigns")
	admin.Get("/", ctrl.GetAllCampaigns)
	admin.Post("/", ctrl.CreateCampaign)
	admin.Put("/:id", ctrl.UpdateCampaign)
	admin.Delete("/:id", ctrl.DeleteCampaign)
}
