package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"givehub/internal/models/db_models"
)

type TransactionFilter struct {
	Type     db_models.TransactionType
	Status   db_models.TransactionStatus
	Search   string
	Page     int
	PageSize int
}

type TransactionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Transaction, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]db_models.Transaction, error)
	List(ctx context.Context, filter TransactionFilter) ([]db_models.Transaction, int64, error)
	UpdateStatus(ctx context.Context, txn *db_models.Transaction) error
	// Complete and Cancel pair the transaction status write with the
	// referenced item's compensating update inside one database
	// transaction so a failure cannot strand the two entities apart.
	Complete(ctx context.Context, txn *db_models.Transaction) error
	Cancel(ctx context.Context, txn *db_models.Transaction) error
	AddMessage(ctx context.Context, message *db_models.TransactionMessage) error
	SetRating(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error

	// Stats inputs for the account read model.
	CountCompletedPurchasesByRecipient(ctx context.Context, accountID uuid.UUID) (int64, error)
	SumCompletedAmountByDonor(ctx context.Context, accountID uuid.UUID) (int64, error)
	RatingForAccount(ctx context.Context, accountID uuid.UUID) (float64, int64, error)
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Transaction, error) {
	var txn db_models.Transaction
	err := r.db.WithContext(ctx).
		Preload("Donor").
		Preload("Recipient").
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&txn, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &txn, nil
}

func (r *transactionRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]db_models.Transaction, error) {
	var txns []db_models.Transaction
	err := r.db.WithContext(ctx).
		Preload("Donor").
		Preload("Recipient").
		Where("donor_id = ? OR recipient_id = ?", accountID, accountID).
		Order("created_at DESC").
		Find(&txns).Error
	return txns, err
}

func (r *transactionRepository) List(ctx context.Context, filter TransactionFilter) ([]db_models.Transaction, int64, error) {
	q := r.db.WithContext(ctx).Model(&db_models.Transaction{})

	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(
			`donor_id IN (SELECT id FROM accounts WHERE first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?)
			 OR recipient_id IN (SELECT id FROM accounts WHERE first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?)`,
			pattern, pattern, pattern, pattern, pattern, pattern,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var txns []db_models.Transaction
	err := q.Preload("Donor").
		Preload("Recipient").
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&txns).Error
	if err != nil {
		return nil, 0, err
	}
	return txns, total, nil
}

func (r *transactionRepository) UpdateStatus(ctx context.Context, txn *db_models.Transaction) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Transaction{}).
		Where("id = ?", txn.ID).
		Updates(map[string]interface{}{
			"status":         txn.Status,
			"completed_date": txn.CompletedDate,
			"cancelled_date": txn.CancelledDate,
		}).Error
}

func (r *transactionRepository) Complete(ctx context.Context, txn *db_models.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&db_models.Transaction{}).
			Where("id = ?", txn.ID).
			Updates(map[string]interface{}{
				"status":         txn.Status,
				"completed_date": txn.CompletedDate,
			}).Error; err != nil {
			return err
		}

		if txn.Type == db_models.TxnTypePurchase && txn.ItemID != nil {
			if err := tx.Model(&db_models.Item{}).
				Where("id = ?", *txn.ItemID).
				Updates(map[string]interface{}{
					"status":    db_models.ItemStatusSold,
					"sold_date": txn.CompletedDate,
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *transactionRepository) Cancel(ctx context.Context, txn *db_models.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&db_models.Transaction{}).
			Where("id = ?", txn.ID).
			Updates(map[string]interface{}{
				"status":         txn.Status,
				"cancelled_date": txn.CancelledDate,
			}).Error; err != nil {
			return err
		}

		if txn.Type == db_models.TxnTypePurchase && txn.ItemID != nil {
			if err := tx.Model(&db_models.Item{}).
				Where("id = ?", *txn.ItemID).
				Updates(map[string]interface{}{
					"quantity": gorm.Expr("quantity + 1"),
					"status":   db_models.ItemStatusActive,
					"buyer_id": nil,
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *transactionRepository) AddMessage(ctx context.Context, message *db_models.TransactionMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *transactionRepository) SetRating(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Transaction{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *transactionRepository) CountCompletedPurchasesByRecipient(ctx context.Context, accountID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&db_models.Transaction{}).
		Where("recipient_id = ? AND type = ? AND status = ?",
			accountID, db_models.TxnTypePurchase, db_models.TxnStatusCompleted).
		Count(&n).Error
	return n, err
}

func (r *transactionRepository) SumCompletedAmountByDonor(ctx context.Context, accountID uuid.UUID) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).
		Model(&db_models.Transaction{}).
		Select("COALESCE(SUM(amount_minor), 0)").
		Where("donor_id = ? AND status = ?", accountID, db_models.TxnStatusCompleted).
		Scan(&sum).Error
	return sum, err
}

func (r *transactionRepository) RatingForAccount(ctx context.Context, accountID uuid.UUID) (float64, int64, error) {
	// DonorRating rates the donor, RecipientRating rates the recipient;
	// combine both sides where the account is the rated party.
	var row struct {
		Sum   float64 `gorm:"column:sum"`
		Count int64   `gorm:"column:count"`
	}
	err := r.db.WithContext(ctx).
		Model(&db_models.Transaction{}).
		Select(`COALESCE(SUM(CASE WHEN donor_id = @id THEN donor_rating ELSE recipient_rating END), 0) AS sum,
			COUNT(CASE WHEN donor_id = @id THEN donor_rating ELSE recipient_rating END) AS count`,
			map[string]interface{}{"id": accountID}).
		Where("(donor_id = @id AND donor_rating IS NOT NULL) OR (recipient_id = @id AND recipient_rating IS NOT NULL)",
			map[string]interface{}{"id": accountID}).
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	if row.Count == 0 {
		return 0, 0, nil
	}
	return row.Sum / float64(row.Count), row.Count, nil
}
