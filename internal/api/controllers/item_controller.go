package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"givehub/internal/models/request_models"
	"givehub/internal/services"
	"givehub/pkg/utils"
)

type ItemController struct {
	itemService services.ItemServiceInterface
}

func NewItemController(itemService services.ItemServiceInterface) *ItemController {
	return &ItemController{
		itemService: itemService,
	}
}

// Create godoc
// @Summary List an item on the marketplace
// @Tags Items
// @Accept json
// @Produce json
// @Param request body request_models.CreateItemRequest true "Item payload"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /items [post]
func (i *ItemController) Create(c *gin.Context) {
	var req request_models.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	item, err := i.itemService.Create(c.Request.Context(), identityFromContext(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, item, "Item listed successfully")
}

// List godoc
// @Summary Browse marketplace items
// @Tags Items
// @Produce json
// @Param category query string false "Category"
// @Param search query string false "Search term"
// @Param is_free query bool false "Free items only"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(12)
// @Success 200 {object} utils.APIResponse
// @Router /items [get]
func (i *ItemController) List(c *gin.Context) {
	var query request_models.ListItemsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	items, pagination, err := i.itemService.List(c.Request.Context(), identityFromContext(c), query)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"items": items, "pagination": pagination}, "Items fetched successfully")
}

// Get godoc
// @Summary Get an item with similar listings
// @Tags Items
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /items/{id} [get]
func (i *ItemController) Get(c *gin.Context) {
	detail, err := i.itemService.Get(c.Request.Context(), identityFromContext(c), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, detail, "Item fetched successfully")
}

// Update godoc
// @Summary Update an item
// @Tags Items
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Param request body request_models.UpdateItemRequest true "Fields to update"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /items/{id} [put]
func (i *ItemController) Update(c *gin.Context) {
	var req request_models.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	item, err := i.itemService.Update(c.Request.Context(), identityFromContext(c), c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, item, "Item updated successfully")
}

// Delete godoc
// @Summary Delete an item
// @Tags Items
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /items/{id} [delete]
func (i *ItemController) Delete(c *gin.Context) {
	if err := i.itemService.Delete(c.Request.Context(), identityFromContext(c), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Item deleted successfully")
}

// Purchase godoc
// @Summary Purchase an item
// @Description Claims one unit of stock and opens the tracking transaction
// @Tags Items
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Param request body request_models.PurchaseItemRequest true "Purchase payload"
// @Success 201 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /items/{id}/purchase [post]
func (i *ItemController) Purchase(c *gin.Context) {
	var req request_models.PurchaseItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	txn, err := i.itemService.Purchase(c.Request.Context(), identityFromContext(c), c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, txn, "Purchase opened successfully")
}

// ToggleFavorite godoc
// @Summary Toggle an item favorite
// @Tags Items
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /items/{id}/favorite [post]
func (i *ItemController) ToggleFavorite(c *gin.Context) {
	fav, err := i.itemService.ToggleFavorite(c.Request.Context(), identityFromContext(c), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, fav, "Favorite toggled successfully")
}

// MyItems godoc
// @Summary List the caller's own items
// @Tags Items
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /items/mine [get]
func (i *ItemController) MyItems(c *gin.Context) {
	items, err := i.itemService.MyItems(c.Request.Context(), identityFromContext(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, items, "Items fetched successfully")
}
