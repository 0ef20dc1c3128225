package request_models

import (
	"encoding/json"

	"givehub/internal/models/db_models"
)

type CreateItemRequest struct {
	Title              string            `json:"title" binding:"required"`
	Description        string            `json:"description" binding:"required"`
	Category           string            `json:"category" binding:"required,oneof=clothing electronics furniture books food services other"`
	Subcategory        string            `json:"subcategory"`
	PriceMinor         int64             `json:"price_minor" binding:"min=0"`
	OriginalPriceMinor int64             `json:"original_price_minor" binding:"omitempty,min=0"`
	Currency           string            `json:"currency" binding:"omitempty,len=3"`
	IsFree             bool              `json:"is_free"`
	Condition          string            `json:"condition" binding:"omitempty,oneof=new like-new good fair poor"`
	Quantity           int               `json:"quantity" binding:"required,min=1"`
	Location           string            `json:"location" binding:"required"`
	Specifications     json.RawMessage   `json:"specifications"`
	Shipping           json.RawMessage   `json:"shipping"`
	Tags               []string          `json:"tags"`
	Images             []db_models.Image `json:"images"`
}

type UpdateItemRequest struct {
	Title          *string           `json:"title"`
	Description    *string           `json:"description"`
	Subcategory    *string           `json:"subcategory"`
	PriceMinor     *int64            `json:"price_minor" binding:"omitempty,min=0"`
	Condition      *string           `json:"condition" binding:"omitempty,oneof=new like-new good fair poor"`
	Quantity       *int              `json:"quantity" binding:"omitempty,min=1"`
	Location       *string           `json:"location"`
	Specifications json.RawMessage   `json:"specifications"`
	Shipping       json.RawMessage   `json:"shipping"`
	Tags           []string          `json:"tags"`
	Images         []db_models.Image `json:"images"`
}

type UpdateItemStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=draft active pending sold expired cancelled"`
}

type PurchaseItemRequest struct {
	PaymentMethod   string          `json:"payment_method" binding:"omitempty,oneof=cash card paypal bank_transfer other"`
	ShippingAddress json.RawMessage `json:"shipping_address"`
}

type ListItemsQuery struct {
	Category  string `form:"category"`
	Condition string `form:"condition"`
	Location  string `form:"location"`
	Search    string `form:"search"`
	IsFree    *bool  `form:"is_free"`
	MinPrice  int64  `form:"min_price"`
	MaxPrice  int64  `form:"max_price"`
	Status    string `form:"status"`
	Page      int    `form:"page,default=1"`
	Limit     int    `form:"limit,default=12"`
	SortBy    string `form:"sort_by,default=created_at"`
	SortOrder string `form:"sort_order,default=desc"`
}
