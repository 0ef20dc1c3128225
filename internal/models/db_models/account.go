package db_models

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	UserTypeDonor     = "donor"
	UserTypeRecipient = "recipient"
	UserTypeBoth      = "both"
)

// AccountStats is a derived read model recomputed on demand from donations,
// items and transactions. It is never maintained transactionally.
type AccountStats struct {
	TotalDonations        int64 `gorm:"default:0" json:"total_donations"`
	TotalItemsListed      int64 `gorm:"default:0" json:"total_items_listed"`
	TotalItemsReceived    int64 `gorm:"default:0" json:"total_items_received"`
	TotalTeachingSessions int64 `gorm:"default:0" json:"total_teaching_sessions"`
	// Minor units, summed over completed transactions initiated by the account.
	TotalAmountDonated int64   `gorm:"default:0" json:"total_amount_donated"`
	Rating             float64 `gorm:"default:0" json:"rating"`
	ReviewCount        int64   `gorm:"default:0" json:"review_count"`
}

type Account struct {
	BaseModel
	FirstName    string
	LastName     string
	Email        string `gorm:"uniqueIndex"`
	PasswordHash string
	Phone        string
	Avatar       string
	Bio          string
	Role         string `gorm:"default:user;index"`
	UserType     string `gorm:"default:both"`
	IsActive     bool   `gorm:"default:true"`
	LastLogin    *int64

	Stats AccountStats `gorm:"embedded;embeddedPrefix:stats_"`
}

func (a *Account) FullName() string {
	return a.FirstName + " " + a.LastName
}
