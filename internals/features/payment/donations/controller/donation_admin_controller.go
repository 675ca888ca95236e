package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sevasetu_backend/internals/features/payment/donations/model"
	donationService "sevasetu_backend/internals/features/payment/donations/service"
	"sevasetu_backend/internals/features/payment/donations/store"
	helper "sevasetu_backend/internals/helpers"
)

/*
	========================================================
	  Admin Donation Controller (manual reconciliation)

========================================================
*/

type DonationAdminController struct {
	Service *donationService.LifecycleService
}

func NewDonationAdminController(svc *donationService.LifecycleService) *DonationAdminController {
	return &DonationAdminController{Service: svc}
}

// GET /api/a/donations?status=&campaign=&approved=&page=&per_page=
// Full projection: every field, status, and approval state.
func (ctrl *DonationAdminController) GetAllDonations(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	var f store.Filter
	if v := strings.TrimSpace(c.Query("status")); v != "" {
		if v != model.DonationStatusPending && v != model.DonationStatusCompleted {
			return helper.JsonError(c, fiber.StatusBadRequest, "status must be pending or completed")
		}
		f.Status = &v
	}
	if v := strings.TrimSpace(c.Query("campaign")); v != "" {
		f.Campaign = &v
	}
	if v := strings.TrimSpace(c.Query("approved")); v != "" {
		approved := v == "true" || v == "1"
		f.Approved = &approved
	}

	donations, total, err := ctrl.Service.ListAllForAdmin(c.UserContext(), f, paging.Limit, paging.Offset)
	if err != nil {
		return mapServiceError(c, err)
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	pagination.Count = len(donations)
	return helper.JsonList(c, "Donations fetched.", donations, &pagination)
}

// GET /api/a/donations/:id
func (ctrl *DonationAdminController) GetDonationByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid donation id")
	}

	donation, err := ctrl.Service.GetByID(c.UserContext(), id)
	if err != nil {
		return mapServiceError(c, err)
	}
	return helper.JsonOK(c, "Donation fetched.", donation)
}

// PATCH /api/a/donations/:id/approve
// Marks a manually reconciled (address-intent) donation completed+approved
// after the organization confirms receipt out-of-band. Idempotent.
func (ctrl *DonationAdminController) ApproveDonation(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid donation id")
	}

	donation, err := ctrl.Service.Approve(c.UserContext(), id)
	if err != nil {
		return mapServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Donation approved.", donation)
}
