package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type TransactionType string

const (
	TxnTypeDonation TransactionType = "donation"
	TxnTypePurchase TransactionType = "purchase"
)

type TransactionStatus string

const (
	TxnStatusPending    TransactionStatus = "pending"
	TxnStatusProcessing TransactionStatus = "processing"
	TxnStatusCompleted  TransactionStatus = "completed"
	TxnStatusCancelled  TransactionStatus = "cancelled"
	TxnStatusRefunded   TransactionStatus = "refunded"
)

type Transaction struct {
	BaseModel
	DonorID     uuid.UUID       `gorm:"type:uuid;index:idx_txn_donor_status"`
	RecipientID uuid.UUID       `gorm:"type:uuid;index:idx_txn_recipient_status"`
	Type        TransactionType `gorm:"index"`

	DonationID *uuid.UUID `gorm:"type:uuid;index"`
	ItemID     *uuid.UUID `gorm:"type:uuid;index"`

	// Minor units (cents), 0 for free exchanges.
	AmountMinor   int64
	Currency      string `gorm:"size:3;default:USD"`
	PaymentMethod string

	Status TransactionStatus `gorm:"default:pending;index:idx_txn_donor_status;index:idx_txn_recipient_status"`

	TrackingNumber  string         `gorm:"index"`
	ShippingAddress datatypes.JSON `gorm:"type:jsonb;default:'{}'"`

	// One-sided ratings: DonorRating rates the donor (set by the recipient),
	// RecipientRating rates the recipient (set by the donor).
	DonorRating     *int
	RecipientRating *int
	DonorReview     string
	RecipientReview string

	CompletedDate *int64
	CancelledDate *int64

	Donor     Account              `gorm:"foreignKey:DonorID"`
	Recipient Account              `gorm:"foreignKey:RecipientID"`
	Donation  *Donation            `gorm:"foreignKey:DonationID"`
	Item      *Item                `gorm:"foreignKey:ItemID"`
	Messages  []TransactionMessage `gorm:"foreignKey:TransactionID"`
}

// TransactionMessage rows are append-only; there is no edit or delete path.
type TransactionMessage struct {
	BaseModel
	TransactionID uuid.UUID `gorm:"type:uuid;index"`
	SenderID      uuid.UUID `gorm:"type:uuid"`
	Body          string
}

func (s TransactionStatus) Terminal() bool {
	switch s {
	case TxnStatusCompleted, TxnStatusCancelled, TxnStatusRefunded:
		return true
	}
	return false
}

func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	switch s {
	case TxnStatusPending:
		return next == TxnStatusProcessing || next == TxnStatusCompleted || next == TxnStatusCancelled
	case TxnStatusProcessing:
		return next == TxnStatusCompleted || next == TxnStatusCancelled || next == TxnStatusRefunded
	}
	return false
}
