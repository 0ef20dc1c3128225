package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"givehub/internal/models/request_models"
	"givehub/internal/services"
	"givehub/pkg/utils"
)

type DonationController struct {
	donationService services.DonationServiceInterface
}

func NewDonationController(donationService services.DonationServiceInterface) *DonationController {
	return &DonationController{
		donationService: donationService,
	}
}

// Create godoc
// @Summary Create a donation listing
// @Description Creates a pending donation awaiting moderation
// @Tags Donations
// @Accept json
// @Produce json
// @Param request body request_models.CreateDonationRequest true "Donation payload"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /donations [post]
func (d *DonationController) Create(c *gin.Context) {
	var req request_models.CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	donation, err := d.donationService.Create(c.Request.Context(), identityFromContext(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, donation, "Donation created successfully")
}

// List godoc
// @Summary List donations
// @Description Browse donations with filters; non-admin callers only see public statuses
// @Tags Donations
// @Produce json
// @Param type query string false "Donation type"
// @Param status query string false "Status filter"
// @Param search query string false "Search term"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} utils.APIResponse
// @Router /donations [get]
func (d *DonationController) List(c *gin.Context) {
	var query request_models.ListDonationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	donations, pagination, err := d.donationService.List(c.Request.Context(), identityFromContext(c), query)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"donations": donations, "pagination": pagination}, "Donations fetched successfully")
}

// Get godoc
// @Summary Get a donation with similar listings
// @Tags Donations
// @Produce json
// @Param id path string true "Donation ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /donations/{id} [get]
func (d *DonationController) Get(c *gin.Context) {
	detail, err := d.donationService.Get(c.Request.Context(), identityFromContext(c), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, detail, "Donation fetched successfully")
}

// Update godoc
// @Summary Update a donation
// @Tags Donations
// @Accept json
// @Produce json
// @Param id path string true "Donation ID"
// @Param request body request_models.UpdateDonationRequest true "Fields to update"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /donations/{id} [put]
func (d *DonationController) Update(c *gin.Context) {
	var req request_models.UpdateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	donation, err := d.donationService.Update(c.Request.Context(), identityFromContext(c), c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, donation, "Donation updated successfully")
}

// Delete godoc
// @Summary Delete a donation
// @Tags Donations
// @Produce json
// @Param id path string true "Donation ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /donations/{id} [delete]
func (d *DonationController) Delete(c *gin.Context) {
	if err := d.donationService.Delete(c.Request.Context(), identityFromContext(c), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Donation deleted successfully")
}

// SetStatus godoc
// @Summary Change a donation's status
// @Description Approve/reject (admin) or complete/cancel (owner)
// @Tags Donations
// @Accept json
// @Produce json
// @Param id path string true "Donation ID"
// @Param request body request_models.UpdateDonationStatusRequest true "Target status"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /donations/{id}/status [patch]
func (d *DonationController) SetStatus(c *gin.Context) {
	var req request_models.UpdateDonationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	donation, err := d.donationService.SetStatus(c.Request.Context(), identityFromContext(c), c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, donation, "Donation status updated successfully")
}

// Request godoc
// @Summary Request an approved donation
// @Description Reserves the donation for the caller; at most one request wins
// @Tags Donations
// @Produce json
// @Param id path string true "Donation ID"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /donations/{id}/request [post]
func (d *DonationController) Request(c *gin.Context) {
	donation, err := d.donationService.Request(c.Request.Context(), identityFromContext(c), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, donation, "Donation requested successfully")
}

// ToggleFavorite godoc
// @Summary Toggle a donation favorite
// @Tags Donations
// @Produce json
// @Param id path string true "Donation ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /donations/{id}/favorite [post]
func (d *DonationController) ToggleFavorite(c *gin.Context) {
	fav, err := d.donationService.ToggleFavorite(c.Request.Context(), identityFromContext(c), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, fav, "Favorite toggled successfully")
}

// MyDonations godoc
// @Summary List the caller's own donations
// @Tags Donations
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /donations/mine [get]
func (d *DonationController) MyDonations(c *gin.Context) {
	donations, err := d.donationService.MyDonations(c.Request.Context(), identityFromContext(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, donations, "Donations fetched successfully")
}
