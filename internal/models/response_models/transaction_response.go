package response_models

import "gorm.io/datatypes"

type TransactionResponse struct {
	ID            string `json:"id"`
	Type          string `json:"type"`
	Status        string `json:"status"`
	AmountMinor   int64  `json:"amount_minor"`
	Currency      string `json:"currency"`
	PaymentMethod string `json:"payment_method,omitempty"`

	DonationID string `json:"donation_id,omitempty"`
	ItemID     string `json:"item_id,omitempty"`

	TrackingNumber  string         `json:"tracking_number,omitempty"`
	ShippingAddress datatypes.JSON `json:"shipping_address,omitempty"`

	DonorRating     *int   `json:"donor_rating,omitempty"`
	RecipientRating *int   `json:"recipient_rating,omitempty"`
	DonorReview     string `json:"donor_review,omitempty"`
	RecipientReview string `json:"recipient_review,omitempty"`

	CreatedAt   string `json:"created_at"`
	CompletedAt string `json:"completed_at,omitempty"`
	CancelledAt string `json:"cancelled_at,omitempty"`

	Donor     *AccountSummary              `json:"donor,omitempty"`
	Recipient *AccountSummary              `json:"recipient,omitempty"`
	Messages  []TransactionMessageResponse `json:"messages,omitempty"`
}

type TransactionMessageResponse struct {
	ID       string `json:"id"`
	SenderID string `json:"sender_id"`
	Body     string `json:"body"`
	SentAt   string `json:"sent_at"`
}
