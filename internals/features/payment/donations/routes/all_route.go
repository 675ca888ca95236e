package routes

import (
	"github.com/gofiber/fiber/v2"

	donationController "sevasetu_backend/internals/features/payment/donations/controller"
	donationService "sevasetu_backend/internals/features/payment/donations/service"
	"sevasetu_backend/internals/middlewares"
)

// PublicDonationRoutes: pledge submission, verification callback, recent feed.
func PublicDonationRoutes(api fiber.Router, svc *donationService.LifecycleService) {
	ctrl := donationController.NewDonationController(svc)

	donations := api.Group("/donations")
	donations.Post("/", middlewares.DonationRateLimiter(), ctrl.SubmitDonation)
	donations.Post("/verify", ctrl.VerifyDonation)
	donations.Get("/recent", ctrl.GetRecentDonations)
}
