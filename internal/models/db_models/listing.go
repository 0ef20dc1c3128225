package db_models

import "github.com/google/uuid"

// Image is stored inside a listing's JSONB images column. Only the URL and
// the primary flag matter to the core; storage is handled upstream.
type Image struct {
	URL       string `json:"url"`
	PublicID  string `json:"public_id,omitempty"`
	IsPrimary bool   `json:"is_primary"`
}

// Favorites are plain join rows so membership toggles stay idempotent.

type DonationFavorite struct {
	DonationID uuid.UUID `gorm:"type:uuid;primaryKey"`
	AccountID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt  int64     `gorm:"autoCreateTime"`
}

type ItemFavorite struct {
	ItemID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	AccountID uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt int64     `gorm:"autoCreateTime"`
}
