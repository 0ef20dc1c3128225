package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type ItemCategory string

const (
	ItemCategoryClothing    ItemCategory = "clothing"
	ItemCategoryElectronics ItemCategory = "electronics"
	ItemCategoryFurniture   ItemCategory = "furniture"
	ItemCategoryBooks       ItemCategory = "books"
	ItemCategoryFood        ItemCategory = "food"
	ItemCategoryServices    ItemCategory = "services"
	ItemCategoryOther       ItemCategory = "other"
)

type ItemStatus string

const (
	ItemStatusDraft     ItemStatus = "draft"
	ItemStatusActive    ItemStatus = "active"
	ItemStatusPending   ItemStatus = "pending"
	ItemStatusSold      ItemStatus = "sold"
	ItemStatusExpired   ItemStatus = "expired"
	ItemStatusCancelled ItemStatus = "cancelled"
)

type Item struct {
	BaseModel
	SellerID    uuid.UUID `gorm:"type:uuid;index"`
	Title       string
	Description string
	Category    ItemCategory `gorm:"index:idx_items_category_status"`
	Subcategory string

	// Minor units (cents). PriceMinor == 0 implies IsFree.
	PriceMinor         int64
	OriginalPriceMinor int64
	Currency           string `gorm:"size:3;default:USD"`
	IsFree             bool   `gorm:"default:false"`

	Condition string `gorm:"default:good"`
	Quantity  int
	Location  string

	Images         datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	Specifications datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	Shipping       datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	Tags           pq.StringArray `gorm:"type:text[]"`

	Status   ItemStatus `gorm:"default:active;index:idx_items_category_status"`
	BuyerID  *uuid.UUID `gorm:"type:uuid"`
	SoldDate *int64

	IsFeatured bool  `gorm:"default:false"`
	Views      int64 `gorm:"default:0"`

	Seller Account  `gorm:"foreignKey:SellerID"`
	Buyer  *Account `gorm:"foreignKey:BuyerID"`
}

// TerminalForUser reports whether a non-admin may still mutate the item.
func (s ItemStatus) TerminalForUser() bool {
	return s == ItemStatusSold || s == ItemStatusCancelled
}

func (s ItemStatus) CanTransitionTo(next ItemStatus) bool {
	switch s {
	case ItemStatusDraft:
		return next == ItemStatusActive || next == ItemStatusCancelled
	case ItemStatusActive:
		return next == ItemStatusPending || next == ItemStatusSold ||
			next == ItemStatusExpired || next == ItemStatusCancelled
	case ItemStatusPending:
		return next == ItemStatusActive || next == ItemStatusSold
	}
	return false
}

func ValidItemCategory(c ItemCategory) bool {
	switch c {
	case ItemCategoryClothing, ItemCategoryElectronics, ItemCategoryFurniture,
		ItemCategoryBooks, ItemCategoryFood, ItemCategoryServices, ItemCategoryOther:
		return true
	}
	return false
}
