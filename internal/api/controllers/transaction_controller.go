package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"givehub/internal/models/request_models"
	"givehub/internal/services"
	"givehub/pkg/utils"
)

type TransactionController struct {
	transactionService services.TransactionServiceInterface
}

func NewTransactionController(transactionService services.TransactionServiceInterface) *TransactionController {
	return &TransactionController{
		transactionService: transactionService,
	}
}

// ListMine godoc
// @Summary List the caller's transactions
// @Tags Transactions
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /transactions [get]
func (t *TransactionController) ListMine(c *gin.Context) {
	txns, err := t.transactionService.ListMine(c.Request.Context(), identityFromContext(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, txns, "Transactions fetched successfully")
}

// Get godoc
// @Summary Get a transaction with its message thread
// @Tags Transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (t *TransactionController) Get(c *gin.Context) {
	txn, err := t.transactionService.Get(c.Request.Context(), identityFromContext(c), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, txn, "Transaction fetched successfully")
}

// UpdateStatus godoc
// @Summary Advance a transaction's status
// @Description Recipient or admin only; completion and cancellation settle the referenced item
// @Tags Transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param request body request_models.UpdateTransactionStatusRequest true "Target status"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /transactions/{id}/status [patch]
func (t *TransactionController) UpdateStatus(c *gin.Context) {
	var req request_models.UpdateTransactionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	txn, err := t.transactionService.UpdateStatus(c.Request.Context(), identityFromContext(c), c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, txn, "Transaction status updated successfully")
}

// AddMessage godoc
// @Summary Send a message on a transaction
// @Tags Transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param request body request_models.SendMessageRequest true "Message payload"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /transactions/{id}/messages [post]
func (t *TransactionController) AddMessage(c *gin.Context) {
	var req request_models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	txn, err := t.transactionService.AddMessage(c.Request.Context(), identityFromContext(c), c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, txn, "Message sent successfully")
}

// SubmitRating godoc
// @Summary Rate the other party of a completed transaction
// @Tags Transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param request body request_models.SubmitRatingRequest true "Rating payload"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /transactions/{id}/rating [post]
func (t *TransactionController) SubmitRating(c *gin.Context) {
	var req request_models.SubmitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	txn, err := t.transactionService.SubmitRating(c.Request.Context(), identityFromContext(c), c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, txn, "Rating submitted successfully")
}
