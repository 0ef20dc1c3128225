package response_models

import "givehub/internal/models/db_models"

type AccountResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
	Bio       string `json:"bio,omitempty"`
	Role      string `json:"role"`
	UserType  string `json:"user_type"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
	LastLogin string `json:"last_login,omitempty"`

	Stats *db_models.AccountStats `json:"stats,omitempty"`
}

// AccountSummary is the party embedded inside listing and transaction views.
type AccountSummary struct {
	ID        string  `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Avatar    string  `json:"avatar,omitempty"`
	Rating    float64 `json:"rating"`
}

type AuthResponse struct {
	Token   string          `json:"token"`
	Account AccountResponse `json:"account"`
}
