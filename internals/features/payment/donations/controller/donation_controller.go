package controller

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"sevasetu_backend/internals/features/payment/donations/dto"
	donationService "sevasetu_backend/internals/features/payment/donations/service"
	helper "sevasetu_backend/internals/helpers"
)

/*
	========================================================
	  Public Donation Controller

========================================================
*/

type DonationController struct {
	Service *donationService.LifecycleService
}

func NewDonationController(svc *donationService.LifecycleService) *DonationController {
	return &DonationController{Service: svc}
}

// POST /api/public/donations
func (ctrl *DonationController) SubmitDonation(c *fiber.Ctx) error {
	var body dto.SubmitDonationRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	resp, err := ctrl.Service.SubmitDonation(c.UserContext(), body)
	if err != nil {
		return mapServiceError(c, err)
	}

	return helper.JsonCreated(c, "Donation initiated. Please complete the payment.", resp)
}

// POST /api/public/donations/verify
func (ctrl *DonationController) VerifyDonation(c *fiber.Ctx) error {
	var body dto.VerifyDonationRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	donation, err := ctrl.Service.VerifyAndFinalize(c.UserContext(), body)
	if err != nil {
		return mapServiceError(c, err)
	}

	return helper.JsonOK(c, "Payment verified. Thank you for your donation!", struct {
		DonationID    string `json:"donation_id"`
		TransactionID string `json:"transaction_id"`
		Status        string `json:"status"`
	}{
		DonationID:    donation.DonationID.String(),
		TransactionID: *donation.DonationTransactionID,
		Status:        donation.DonationStatus,
	})
}

// GET /api/public/donations/recent
func (ctrl *DonationController) GetRecentDonations(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "10"))

	feed, err := ctrl.Service.ListPublicRecent(c.UserContext(), limit)
	if err != nil {
		return mapServiceError(c, err)
	}

	return helper.JsonOK(c, "Recent donations fetched.", feed)
}

/* ===================== Error mapping ===================== */

// The payer sees a generic message per error class; detail stays in the log.
func mapServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, donationService.ErrValidation):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, donationService.ErrGateway):
		return helper.JsonError(c, fiber.StatusBadGateway, "Payment provider is unavailable. Please try again later.")
	case errors.Is(err, donationService.ErrVerification):
		return helper.JsonError(c, fiber.StatusBadRequest, "Payment verification failed. Please start the donation again.")
	case errors.Is(err, donationService.ErrNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Donation not found")
	default:
		log.Printf("[ERROR] donation request failed: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Something went wrong. Please try again later.")
	}
}
