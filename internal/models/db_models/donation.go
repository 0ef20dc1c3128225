package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type DonationType string

const (
	DonationTypeBlood     DonationType = "blood"
	DonationTypeCash      DonationType = "cash"
	DonationTypeFood      DonationType = "food"
	DonationTypeBooks     DonationType = "books"
	DonationTypeKnowledge DonationType = "knowledge"
	DonationTypeItems     DonationType = "items"
)

type DonationStatus string

const (
	DonationStatusPending   DonationStatus = "pending"
	DonationStatusApproved  DonationStatus = "approved"
	DonationStatusRejected  DonationStatus = "rejected"
	DonationStatusReserved  DonationStatus = "reserved"
	DonationStatusCompleted DonationStatus = "completed"
	DonationStatusCancelled DonationStatus = "cancelled"
)

// PublicDonationStatuses are visible to anonymous and non-owner callers.
var PublicDonationStatuses = []DonationStatus{
	DonationStatusPending,
	DonationStatusApproved,
	DonationStatusCompleted,
}

// Detail payloads form a tagged union keyed by Donation.Type. Exactly one
// variant is stored in the Details JSONB column.

type BloodDetails struct {
	BloodType        string   `json:"blood_type"`
	LastDonationDate string   `json:"last_donation_date,omitempty"`
	HealthConditions []string `json:"health_conditions,omitempty"`
	HemoglobinLevel  float64  `json:"hemoglobin_level,omitempty"`
	EligibleToDonate bool     `json:"eligible_to_donate"`
}

type CashDetails struct {
	AmountMinor   int64  `json:"amount_minor"`
	Currency      string `json:"currency"`
	PaymentMethod string `json:"payment_method,omitempty"`
}

type FoodDetails struct {
	FoodType            string   `json:"food_type"`
	Category            string   `json:"category,omitempty"`
	ExpirationDate      string   `json:"expiration_date,omitempty"`
	Servings            int      `json:"servings,omitempty"`
	DietaryRestrictions []string `json:"dietary_restrictions,omitempty"`
}

type BookDetails struct {
	BookTitle string `json:"book_title"`
	Author    string `json:"author,omitempty"`
	ISBN      string `json:"isbn,omitempty"`
	Genre     string `json:"genre,omitempty"`
	Condition string `json:"condition,omitempty"`
}

type KnowledgeDetails struct {
	Subject        string `json:"subject"`
	ExpertiseLevel string `json:"expertise_level,omitempty"`
	DurationHours  int    `json:"duration_hours,omitempty"`
	Format         string `json:"format,omitempty"`
}

type ItemDetails struct {
	Condition      string `json:"condition"`
	Brand          string `json:"brand,omitempty"`
	Model          string `json:"model,omitempty"`
	EstimatedValue int64  `json:"estimated_value,omitempty"`
	Category       string `json:"category,omitempty"`
}

type Donation struct {
	BaseModel
	DonorID     uuid.UUID    `gorm:"type:uuid;index"`
	Type        DonationType `gorm:"index:idx_donations_type_status"`
	Title       string
	Description string
	Details     datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	Quantity    int
	Location    string
	Images      datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	Tags        pq.StringArray `gorm:"type:text[]"`
	Status      DonationStatus `gorm:"default:pending;index:idx_donations_type_status"`
	RecipientID *uuid.UUID     `gorm:"type:uuid"`
	IsFeatured  bool           `gorm:"default:false"`
	Views       int64          `gorm:"default:0"`

	ScheduledDate *int64
	CompletedDate *int64

	Donor     Account  `gorm:"foreignKey:DonorID"`
	Recipient *Account `gorm:"foreignKey:RecipientID"`
}

func (s DonationStatus) Terminal() bool {
	switch s {
	case DonationStatusRejected, DonationStatusCompleted, DonationStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo encodes the legal donation edges. Reservation is excluded:
// it only happens through the conditional reserve update.
func (s DonationStatus) CanTransitionTo(next DonationStatus) bool {
	switch s {
	case DonationStatusPending:
		return next == DonationStatusApproved || next == DonationStatusRejected
	case DonationStatusApproved, DonationStatusReserved:
		return next == DonationStatusCompleted || next == DonationStatusCancelled
	}
	return false
}

func ValidDonationType(t DonationType) bool {
	switch t {
	case DonationTypeBlood, DonationTypeCash, DonationTypeFood,
		DonationTypeBooks, DonationTypeKnowledge, DonationTypeItems:
		return true
	}
	return false
}
