package request_models

import (
	"encoding/json"

	"givehub/internal/models/db_models"
)

type CreateDonationRequest struct {
	Type        string             `json:"type" binding:"required,oneof=blood cash food books knowledge items"`
	Title       string             `json:"title" binding:"required"`
	Description string             `json:"description" binding:"required"`
	Quantity    int                `json:"quantity" binding:"required,min=1"`
	Location    string             `json:"location" binding:"required"`
	Details     json.RawMessage    `json:"details" binding:"required"`
	Tags        []string           `json:"tags"`
	Images      []db_models.Image  `json:"images"`
	ScheduledAt *string            `json:"scheduled_at"`
}

type UpdateDonationRequest struct {
	Title       *string           `json:"title"`
	Description *string           `json:"description"`
	Quantity    *int              `json:"quantity" binding:"omitempty,min=1"`
	Location    *string           `json:"location"`
	Details     json.RawMessage   `json:"details"`
	Tags        []string          `json:"tags"`
	Images      []db_models.Image `json:"images"`
}

type UpdateDonationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected completed cancelled"`
}

type ListDonationsQuery struct {
	Type        string `form:"type"`
	Status      string `form:"status"`
	Location    string `form:"location"`
	Search      string `form:"search"`
	MinQuantity int    `form:"min_quantity"`
	MaxQuantity int    `form:"max_quantity"`
	Page        int    `form:"page,default=1"`
	Limit       int    `form:"limit,default=10"`
	SortBy      string `form:"sort_by,default=created_at"`
	SortOrder   string `form:"sort_order,default=desc"`
}
