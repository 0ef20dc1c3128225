package response_models

import "givehub/internal/models/db_models"

type AdminOverviewResponse struct {
	Stats          AdminStats     `json:"stats"`
	RecentActivity RecentActivity `json:"recent_activity"`
}

type AdminStats struct {
	TotalUsers          int64 `json:"total_users"`
	ActiveUsers         int64 `json:"active_users"`
	TotalDonations      int64 `json:"total_donations"`
	PendingDonations    int64 `json:"pending_donations"`
	TotalItems          int64 `json:"total_items"`
	ActiveItems         int64 `json:"active_items"`
	TotalTransactions   int64 `json:"total_transactions"`
	PendingTransactions int64 `json:"pending_transactions"`
	// Sum over completed purchase transactions, minor units.
	TotalRevenueMinor int64 `json:"total_revenue_minor"`
}

type RecentActivity struct {
	Accounts     []AccountResponse     `json:"accounts"`
	Donations    []DonationResponse    `json:"donations"`
	Transactions []TransactionResponse `json:"transactions"`
}

type UserDashboardResponse struct {
	Stats    db_models.AccountStats `json:"stats"`
	Timeline []ActivityEntry        `json:"timeline"`
}

type ActivityEntry struct {
	Kind      string `json:"kind"` // donation | item | transaction
	ID        string `json:"id"`
	Title     string `json:"title"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

type AnalyticsResponse struct {
	DonationsByType []TypeCount   `json:"donations_by_type"`
	NewAccounts     []BucketCount `json:"new_accounts"`
}

type TypeCount struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

type BucketCount struct {
	Bucket string `json:"bucket"`
	Count  int64  `json:"count"`
}
