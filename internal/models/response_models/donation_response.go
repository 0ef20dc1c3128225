package response_models

import "gorm.io/datatypes"

type DonationResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Details     datatypes.JSON  `json:"details"`
	Quantity    int             `json:"quantity"`
	Location    string          `json:"location"`
	Status      string          `json:"status"`
	Tags        []string        `json:"tags,omitempty"`
	Images      datatypes.JSON  `json:"images,omitempty"`
	IsFeatured  bool            `json:"is_featured"`
	Views       int64           `json:"views"`
	CreatedAt   string          `json:"created_at"`
	CompletedAt string          `json:"completed_at,omitempty"`
	Donor       *AccountSummary `json:"donor,omitempty"`
	Recipient   *AccountSummary `json:"recipient,omitempty"`
}

type DonationDetailResponse struct {
	Donation DonationResponse   `json:"donation"`
	Similar  []DonationResponse `json:"similar_donations"`
}

type FavoriteResponse struct {
	IsFavorited bool `json:"is_favorited"`
}
