package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbm "givehub/internal/models/db_models"
)

type DashboardRepository interface {
	// KPIs / counts
	CountAccounts(ctx context.Context) (int64, error)
	CountActiveAccounts(ctx context.Context) (int64, error)
	CountDonations(ctx context.Context) (int64, error)
	CountDonationsByStatus(ctx context.Context, status dbm.DonationStatus) (int64, error)
	CountItems(ctx context.Context) (int64, error)
	CountItemsByStatus(ctx context.Context, status dbm.ItemStatus) (int64, error)
	CountTransactions(ctx context.Context) (int64, error)
	CountTransactionsByStatus(ctx context.Context, status dbm.TransactionStatus) (int64, error)
	RevenueTotal(ctx context.Context) (int64, error)

	// Recent activity
	RecentAccounts(ctx context.Context, limit int) ([]dbm.Account, error)
	RecentDonations(ctx context.Context, limit int) ([]dbm.Donation, error)
	RecentTransactions(ctx context.Context, limit int) ([]dbm.Transaction, error)

	// Analytics
	DonationTypeBreakdown(ctx context.Context) ([]TypeCountRow, error)
	NewAccountsSeries(ctx context.Context, start, end time.Time, interval string) ([]BucketCountRow, error)

	// Per-account stats inputs
	CountDonationsByDonor(ctx context.Context, donorID uuid.UUID) (int64, error)
	CountCompletedKnowledgeByDonor(ctx context.Context, donorID uuid.UUID) (int64, error)
	CountItemsBySeller(ctx context.Context, sellerID uuid.UUID) (int64, error)

	// Per-account timeline
	RecentDonationsByDonor(ctx context.Context, donorID uuid.UUID, limit int) ([]dbm.Donation, error)
	RecentItemsBySeller(ctx context.Context, sellerID uuid.UUID, limit int) ([]dbm.Item, error)
	RecentTransactionsByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]dbm.Transaction, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

// ---------- Row helpers ----------

type TypeCountRow struct {
	Type  string `gorm:"column:type"`
	Count int64  `gorm:"column:count"`
}

type BucketCountRow struct {
	Bucket time.Time `gorm:"column:bucket"`
	Count  int64     `gorm:"column:count"`
}

// ---------- Counts ----------

func (r *dashboardRepository) CountAccounts(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&dbm.Account{}).Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountActiveAccounts(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&dbm.Account{}).Where("is_active = true").Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountDonations(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&dbm.Donation{}).Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountDonationsByStatus(ctx context.Context, status dbm.DonationStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&dbm.Donation{}).Where("status = ?", status).Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountItems(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&dbm.Item{}).Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountItemsByStatus(ctx context.Context, status dbm.ItemStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&dbm.Item{}).Where("status = ?", status).Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountTransactions(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&dbm.Transaction{}).Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountTransactionsByStatus(ctx context.Context, status dbm.TransactionStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&dbm.Transaction{}).Where("status = ?", status).Count(&n).Error
	return n, err
}

func (r *dashboardRepository) RevenueTotal(ctx context.Context) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).
		Model(&dbm.Transaction{}).
		Select("COALESCE(SUM(amount_minor), 0)").
		Where("type = ? AND status = ?", dbm.TxnTypePurchase, dbm.TxnStatusCompleted).
		Scan(&sum).Error
	return sum, err
}

// ---------- Recent activity ----------

func (r *dashboardRepository) RecentAccounts(ctx context.Context, limit int) ([]dbm.Account, error) {
	var accounts []dbm.Account
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&accounts).Error
	return accounts, err
}

func (r *dashboardRepository) RecentDonations(ctx context.Context, limit int) ([]dbm.Donation, error) {
	var donations []dbm.Donation
	err := r.db.WithContext(ctx).Preload("Donor").Order("created_at DESC").Limit(limit).Find(&donations).Error
	return donations, err
}

func (r *dashboardRepository) RecentTransactions(ctx context.Context, limit int) ([]dbm.Transaction, error) {
	var txns []dbm.Transaction
	err := r.db.WithContext(ctx).
		Preload("Donor").
		Preload("Recipient").
		Order("created_at DESC").
		Limit(limit).
		Find(&txns).Error
	return txns, err
}

// ---------- Analytics ----------

func (r *dashboardRepository) DonationTypeBreakdown(ctx context.Context) ([]TypeCountRow, error) {
	var rows []TypeCountRow
	err := r.db.WithContext(ctx).
		Model(&dbm.Donation{}).
		Select("type, COUNT(*) AS count").
		Group("type").
		Order("count DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *dashboardRepository) NewAccountsSeries(ctx context.Context, start, end time.Time, interval string) ([]BucketCountRow, error) {
	// created_at holds unix seconds; bucket it server-side.
	var rows []BucketCountRow
	err := r.db.WithContext(ctx).
		Model(&dbm.Account{}).
		Select("date_trunc(?, to_timestamp(created_at)) AS bucket, COUNT(*) AS count", interval).
		Where("created_at BETWEEN ? AND ?", start.Unix(), end.Unix()).
		Group("bucket").
		Order("bucket ASC").
		Scan(&rows).Error
	return rows, err
}

// ---------- Per-account ----------

func (r *dashboardRepository) CountDonationsByDonor(ctx context.Context, donorID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&dbm.Donation{}).Where("donor_id = ?", donorID).Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountCompletedKnowledgeByDonor(ctx context.Context, donorID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&dbm.Donation{}).
		Where("donor_id = ? AND type = ? AND status = ?",
			donorID, dbm.DonationTypeKnowledge, dbm.DonationStatusCompleted).
		Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountItemsBySeller(ctx context.Context, sellerID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&dbm.Item{}).Where("seller_id = ?", sellerID).Count(&n).Error
	return n, err
}

func (r *dashboardRepository) RecentDonationsByDonor(ctx context.Context, donorID uuid.UUID, limit int) ([]dbm.Donation, error) {
	var donations []dbm.Donation
	err := r.db.WithContext(ctx).
		Where("donor_id = ?", donorID).
		Order("created_at DESC").
		Limit(limit).
		Find(&donations).Error
	return donations, err
}

func (r *dashboardRepository) RecentItemsBySeller(ctx context.Context, sellerID uuid.UUID, limit int) ([]dbm.Item, error) {
	var items []dbm.Item
	err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&items).Error
	return items, err
}

func (r *dashboardRepository) RecentTransactionsByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]dbm.Transaction, error) {
	var txns []dbm.Transaction
	err := r.db.WithContext(ctx).
		Where("donor_id = ? OR recipient_id = ?", accountID, accountID).
		Order("created_at DESC").
		Limit(limit).
		Find(&txns).Error
	return txns, err
}
