package response_models

import "gorm.io/datatypes"

type ItemResponse struct {
	ID                 string          `json:"id"`
	Title              string          `json:"title"`
	Description        string          `json:"description"`
	Category           string          `json:"category"`
	Subcategory        string          `json:"subcategory,omitempty"`
	PriceMinor         int64           `json:"price_minor"`
	OriginalPriceMinor int64           `json:"original_price_minor,omitempty"`
	Currency           string          `json:"currency"`
	IsFree             bool            `json:"is_free"`
	Condition          string          `json:"condition"`
	Quantity           int             `json:"quantity"`
	Location           string          `json:"location"`
	Status             string          `json:"status"`
	Tags               []string        `json:"tags,omitempty"`
	Images             datatypes.JSON  `json:"images,omitempty"`
	Specifications     datatypes.JSON  `json:"specifications,omitempty"`
	Shipping           datatypes.JSON  `json:"shipping,omitempty"`
	IsFeatured         bool            `json:"is_featured"`
	Views              int64           `json:"views"`
	CreatedAt          string          `json:"created_at"`
	SoldAt             string          `json:"sold_at,omitempty"`
	Seller             *AccountSummary `json:"seller,omitempty"`
	Buyer              *AccountSummary `json:"buyer,omitempty"`
}

type ItemDetailResponse struct {
	Item    ItemResponse   `json:"item"`
	Similar []ItemResponse `json:"similar_items"`
}
