package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sevasetu_backend/internals/configs"
	"sevasetu_backend/internals/constants"
	campaignRoutes "sevasetu_backend/internals/features/campaigns/routes"
	campaignService "sevasetu_backend/internals/features/campaigns/service"
	donationRoutes "sevasetu_backend/internals/features/payment/donations/routes"
	donationService "sevasetu_backend/internals/features/payment/donations/service"
	"sevasetu_backend/internals/features/payment/donations/store"
	"sevasetu_backend/internals/features/payment/gateway"
	authRoutes "sevasetu_backend/internals/features/users/auth/routes"
	authMiddleware "sevasetu_backend/internals/middlewares/auth"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, gw gateway.Client) {
	// Shared collaborators: one store, one aggregator, one lifecycle service.
	donationStore := store.NewGormStore(db)
	intents := gateway.NewIntentBuilder(configs.UPIVPA, configs.UPIPayeeName)
	lifecycle := donationService.NewLifecycleService(donationStore, gw, intents)
	aggregator := campaignService.NewAggregator(donationStore)

	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	authRoutes.AuthRoutes(app, db)

	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")
	donationRoutes.PublicDonationRoutes(public, lifecycle)
	campaignRoutes.PublicCampaignRoutes(public, db, aggregator)

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			AllowCookieFallback: true,
		}),
		authMiddleware.RequireRoles(constants.RoleAdmin),
	)
	donationRoutes.AdminDonationRoutes(admin, lifecycle)
	campaignRoutes.AdminCampaignRoutes(admin, db)
}
