package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type NotificationType string

const (
	NotifListingCreated    NotificationType = "listing_created"
	NotifDonationRequest   NotificationType = "donation_request"
	NotifDonationApproved  NotificationType = "donation_approved"
	NotifDonationRejected  NotificationType = "donation_rejected"
	NotifItemSold          NotificationType = "item_sold"
	NotifMessageReceived   NotificationType = "message_received"
	NotifTransactionUpdate NotificationType = "transaction_update"
	NotifSystem            NotificationType = "system"
)

const (
	NotifPriorityLow    = "low"
	NotifPriorityMedium = "medium"
	NotifPriorityHigh   = "high"
)

// Notification rows are write-once; only IsRead ever changes afterwards.
type Notification struct {
	BaseModel
	AccountID uuid.UUID        `gorm:"type:uuid;index:idx_notifications_account_read"`
	Type      NotificationType `gorm:"index"`
	Title     string
	Message   string
	Data      datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	IsRead    bool           `gorm:"default:false;index:idx_notifications_account_read"`
	Priority  string         `gorm:"default:medium"`
}
