package routes

import (
	"github.com/gofiber/fiber/v2"

	donationController "sevasetu_backend/internals/features/payment/donations/controller"
	donationService "sevasetu_backend/internals/features/payment/donations/service"
)

// AdminDonationRoutes: full projection + manual reconciliation. The caller
// mounts this group behind AuthJWT + RequireRoles(admin).
func AdminDonationRoutes(api fiber.Router, svc *donationService.LifecycleService) {
	ctrl := donationController.NewDonationAdminController(svc)

	admin := api.Group("/donations")
	admin.Get("/", ctrl.GetAllDonations)
	admin.Get("/:id", ctrl.GetDonationByID)
	admin.Patch("/:id/approve", ctrl.ApproveDonation)
}
