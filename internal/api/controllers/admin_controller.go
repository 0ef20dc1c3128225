package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"givehub/internal/models/request_models"
	"givehub/internal/services"
	"givehub/pkg/utils"
)

// AdminController groups the moderation and back-office endpoints. All of
// its routes sit behind the admin role middleware; the services enforce the
// same check again.
type AdminController struct {
	accountService     services.AccountServiceInterface
	donationService    services.DonationServiceInterface
	itemService        services.ItemServiceInterface
	transactionService services.TransactionServiceInterface
	dashboardService   services.DashboardServiceInterface
}

func NewAdminController(
	accountService services.AccountServiceInterface,
	donationService services.DonationServiceInterface,
	itemService services.ItemServiceInterface,
	transactionService services.TransactionServiceInterface,
	dashboardService services.DashboardServiceInterface,
) *AdminController {
	return &AdminController{
		accountService:     accountService,
		donationService:    donationService,
		itemService:        itemService,
		transactionService: transactionService,
		dashboardService:   dashboardService,
	}
}

// ListAccounts godoc
// @Summary List accounts
// @Tags Admin
// @Produce json
// @Param search query string false "Search term"
// @Param role query string false "Role filter"
// @Param status query string false "active or inactive"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/accounts [get]
func (a *AdminController) ListAccounts(c *gin.Context) {
	var query request_models.ListAccountsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	accounts, pagination, err := a.accountService.ListAccounts(c.Request.Context(), identityFromContext(c), query)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"accounts": accounts, "pagination": pagination}, "Accounts fetched successfully")
}

func (a *AdminController) GetAccount(c *gin.Context) {
	account, err := a.accountService.GetAccount(c.Request.Context(), identityFromContext(c), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, account, "Account fetched successfully")
}

func (a *AdminController) UpdateAccount(c *gin.Context) {
	var req request_models.AdminUpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	account, err := a.accountService.UpdateAccount(c.Request.Context(), identityFromContext(c), c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, account, "Account updated successfully")
}

func (a *AdminController) DeleteAccount(c *gin.Context) {
	if err := a.accountService.DeleteAccount(c.Request.Context(), identityFromContext(c), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Account deleted successfully")
}

func (a *AdminController) SetItemStatus(c *gin.Context) {
	var req request_models.UpdateItemStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	item, err := a.itemService.SetStatus(c.Request.Context(), identityFromContext(c), c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, item, "Item status updated successfully")
}

func (a *AdminController) FeatureDonation(c *gin.Context) {
	donation, err := a.donationService.ToggleFeatured(c.Request.Context(), identityFromContext(c), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, donation, "Donation featured flag updated successfully")
}

func (a *AdminController) FeatureItem(c *gin.Context) {
	item, err := a.itemService.ToggleFeatured(c.Request.Context(), identityFromContext(c), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, item, "Item featured flag updated successfully")
}

func (a *AdminController) ListTransactions(c *gin.Context) {
	var query request_models.ListTransactionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	txns, pagination, err := a.transactionService.List(c.Request.Context(), identityFromContext(c), query)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"transactions": txns, "pagination": pagination}, "Transactions fetched successfully")
}

// Overview godoc
// @Summary Platform KPIs with recent activity
// @Tags Admin
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/dashboard [get]
func (a *AdminController) Overview(c *gin.Context) {
	overview, err := a.dashboardService.AdminOverview(c.Request.Context(), identityFromContext(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, overview, "Dashboard fetched successfully")
}

// Analytics godoc
// @Summary Donation type breakdown and signup series
// @Tags Admin
// @Produce json
// @Param days query int false "Window size in days" default(30)
// @Param interval query string false "day, week or month" default(day)
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/analytics [get]
func (a *AdminController) Analytics(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil || days < 1 || days > 365 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid days parameter")
		return
	}
	interval := c.DefaultQuery("interval", "day")

	analytics, err := a.dashboardService.Analytics(c.Request.Context(), identityFromContext(c), days, interval)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, analytics, "Analytics fetched successfully")
}
