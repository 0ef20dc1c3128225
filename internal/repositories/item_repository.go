package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"givehub/internal/models/db_models"
)

type ItemFilter struct {
	Category  db_models.ItemCategory
	Condition string
	Location  string
	Search    string
	IsFree    *bool
	MinPrice  int64
	MaxPrice  int64
	Status    []db_models.ItemStatus
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// errPurchaseConflict aborts the purchase transaction when the conditional
// stock decrement matches no row (not active, out of stock, or own item).
var errPurchaseConflict = errors.New("purchase precondition failed")

type ItemRepository interface {
	Create(ctx context.Context, item *db_models.Item) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Item, error)
	List(ctx context.Context, filter ItemFilter) ([]db_models.Item, int64, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]db_models.Item, error)
	ListSimilar(ctx context.Context, id uuid.UUID, category db_models.ItemCategory, limit int) ([]db_models.Item, error)
	Update(ctx context.Context, item *db_models.Item) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status db_models.ItemStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementViews(ctx context.Context, id uuid.UUID) error
	ToggleFavorite(ctx context.Context, itemID, accountID uuid.UUID) (bool, error)
	SetFeatured(ctx context.Context, id uuid.UUID, featured bool) error
	// Purchase runs the whole buy path in one database transaction: the
	// conditional quantity decrement, the pending flip at zero stock, and
	// the transaction row creation. Returns false (and writes nothing)
	// when the stock guard fails.
	Purchase(ctx context.Context, itemID, buyerID uuid.UUID, txn *db_models.Transaction) (bool, error)
}

type itemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *db_models.Item) (uuid.UUID, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return uuid.Nil, err
	}
	return item.ID, nil
}

func (r *itemRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Item, error) {
	var item db_models.Item
	err := r.db.WithContext(ctx).
		Preload("Seller").
		Preload("Buyer").
		First(&item, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

var itemSortColumns = map[string]bool{
	"created_at":  true,
	"price_minor": true,
	"views":       true,
	"title":       true,
}

func (r *itemRepository) List(ctx context.Context, filter ItemFilter) ([]db_models.Item, int64, error) {
	q := r.db.WithContext(ctx).Model(&db_models.Item{})

	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Condition != "" {
		q = q.Where("condition = ?", filter.Condition)
	}
	if filter.Location != "" {
		q = q.Where("location ILIKE ?", "%"+filter.Location+"%")
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(
			"title ILIKE ? OR description ILIKE ? OR location ILIKE ? OR ? ILIKE ANY (tags)",
			pattern, pattern, pattern, filter.Search,
		)
	}
	if filter.IsFree != nil {
		q = q.Where("is_free = ?", *filter.IsFree)
	}
	if filter.MinPrice > 0 {
		q = q.Where("price_minor >= ?", filter.MinPrice)
	}
	if filter.MaxPrice > 0 {
		q = q.Where("price_minor <= ?", filter.MaxPrice)
	}
	if len(filter.Status) > 0 {
		q = q.Where("status IN ?", filter.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []db_models.Item
	err := applySort(q, filter.SortBy, filter.SortOrder, itemSortColumns).
		Preload("Seller").
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *itemRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]db_models.Item, error) {
	var items []db_models.Item
	err := r.db.WithContext(ctx).
		Preload("Buyer").
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (r *itemRepository) ListSimilar(ctx context.Context, id uuid.UUID, category db_models.ItemCategory, limit int) ([]db_models.Item, error) {
	var items []db_models.Item
	err := r.db.WithContext(ctx).
		Preload("Seller").
		Where("id <> ? AND category = ? AND status = ?", id, category, db_models.ItemStatusActive).
		Order("created_at DESC").
		Limit(limit).
		Find(&items).Error
	return items, err
}

func (r *itemRepository) Update(ctx context.Context, item *db_models.Item) error {
	result := r.db.WithContext(ctx).Save(item)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *itemRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status db_models.ItemStatus) error {
	updates := map[string]interface{}{"status": status}
	if status == db_models.ItemStatusSold {
		updates["sold_date"] = gorm.Expr("EXTRACT(EPOCH FROM NOW())::bigint")
	}
	return r.db.WithContext(ctx).
		Model(&db_models.Item{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *itemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Delete(&db_models.Item{}, "id = ?", id).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func (r *itemRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Item{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

func (r *itemRepository) SetFeatured(ctx context.Context, id uuid.UUID, featured bool) error {
	result := r.db.WithContext(ctx).
		Model(&db_models.Item{}).
		Where("id = ?", id).
		Update("is_featured", featured)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *itemRepository) ToggleFavorite(ctx context.Context, itemID, accountID uuid.UUID) (bool, error) {
	var favorited bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing db_models.ItemFavorite
		err := tx.First(&existing, "item_id = ? AND account_id = ?", itemID, accountID).Error
		switch {
		case err == nil:
			favorited = false
			return tx.Delete(&existing).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			favorited = true
			return tx.Create(&db_models.ItemFavorite{
				ItemID:    itemID,
				AccountID: accountID,
			}).Error
		default:
			return err
		}
	})
	return favorited, err
}

func (r *itemRepository) Purchase(ctx context.Context, itemID, buyerID uuid.UUID, txn *db_models.Transaction) (bool, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&db_models.Item{}).
			Where("id = ? AND status = ? AND quantity >= 1 AND seller_id <> ?",
				itemID, db_models.ItemStatusActive, buyerID).
			Updates(map[string]interface{}{
				"quantity": gorm.Expr("quantity - 1"),
				"buyer_id": buyerID,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errPurchaseConflict
		}

		// Out of stock: park the item until the transaction settles.
		if err := tx.Model(&db_models.Item{}).
			Where("id = ? AND quantity = 0", itemID).
			Update("status", db_models.ItemStatusPending).Error; err != nil {
			return err
		}

		return tx.Create(txn).Error
	})
	if errors.Is(err, errPurchaseConflict) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
