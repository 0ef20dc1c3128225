package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"givehub/internal/models/db_models"
)

type DonationFilter struct {
	Type        db_models.DonationType
	Status      []db_models.DonationStatus
	Location    string
	Search      string
	MinQuantity int
	MaxQuantity int
	Page        int
	PageSize    int
	SortBy      string
	SortOrder   string
}

type DonationRepository interface {
	Create(ctx context.Context, donation *db_models.Donation) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Donation, error)
	List(ctx context.Context, filter DonationFilter) ([]db_models.Donation, int64, error)
	ListByDonor(ctx context.Context, donorID uuid.UUID) ([]db_models.Donation, error)
	ListSimilar(ctx context.Context, id uuid.UUID, dtype db_models.DonationType, statuses []db_models.DonationStatus, limit int) ([]db_models.Donation, error)
	Update(ctx context.Context, donation *db_models.Donation) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status db_models.DonationStatus) error
	// Reserve performs a conditional update keyed on the approved status:
	// it is the atomic guard that keeps at most one active recipient bound.
	// Returns false when another request already won.
	Reserve(ctx context.Context, id uuid.UUID, recipientID uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementViews(ctx context.Context, id uuid.UUID) error
	ToggleFavorite(ctx context.Context, donationID, accountID uuid.UUID) (bool, error)
	SetFeatured(ctx context.Context, id uuid.UUID, featured bool) error
}

type donationRepository struct {
	db *gorm.DB
}

func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &donationRepository{db: db}
}

func (r *donationRepository) Create(ctx context.Context, donation *db_models.Donation) (uuid.UUID, error) {
	if err := r.db.WithContext(ctx).Create(donation).Error; err != nil {
		return uuid.Nil, err
	}
	return donation.ID, nil
}

func (r *donationRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Donation, error) {
	var donation db_models.Donation
	err := r.db.WithContext(ctx).
		Preload("Donor").
		Preload("Recipient").
		First(&donation, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &donation, nil
}

func applySort(q *gorm.DB, sortBy, sortOrder string, allowed map[string]bool) *gorm.DB {
	if !allowed[sortBy] {
		sortBy = "created_at"
	}
	order := "DESC"
	if sortOrder == "asc" {
		order = "ASC"
	}
	return q.Order(sortBy + " " + order)
}

var donationSortColumns = map[string]bool{
	"created_at": true,
	"quantity":   true,
	"views":      true,
	"title":      true,
}

func (r *donationRepository) List(ctx context.Context, filter DonationFilter) ([]db_models.Donation, int64, error) {
	q := r.db.WithContext(ctx).Model(&db_models.Donation{})

	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if len(filter.Status) > 0 {
		q = q.Where("status IN ?", filter.Status)
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
	if filter.MinQuantity > 0 {
		q = q.Where("quantity >= ?", filter.MinQuantity)
	}
	if filter.MaxQuantity > 0 {
		q = q.Where("quantity <= ?", filter.MaxQuantity)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var donations []db_models.Donation
	err := applySort(q, filter.SortBy, filter.SortOrder, donationSortColumns).
		Preload("Donor").
		Preload("Recipient").
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&donations).Error
	if err != nil {
		return nil, 0, err
	}
	return donations, total, nil
}

func (r *donationRepository) ListByDonor(ctx context.Context, donorID uuid.UUID) ([]db_models.Donation, error) {
	var donations []db_models.Donation
	err := r.db.WithContext(ctx).
		Preload("Recipient").
		Where("donor_id = ?", donorID).
		Order("created_at DESC").
		Find(&donations).Error
	return donations, err
}

func (r *donationRepository) ListSimilar(ctx context.Context, id uuid.UUID, dtype db_models.DonationType, statuses []db_models.DonationStatus, limit int) ([]db_models.Donation, error) {
	var donations []db_models.Donation
	err := r.db.WithContext(ctx).
		Preload("Donor").
		Where("id <> ? AND type = ? AND status IN ?", id, dtype, statuses).
		Order("created_at DESC").
		Limit(limit).
		Find(&donations).Error
	return donations, err
}

func (r *donationRepository) Update(ctx context.Context, donation *db_models.Donation) error {
	result := r.db.WithContext(ctx).Save(donation)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *donationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status db_models.DonationStatus) error {
	updates := map[string]interface{}{"status": status}
	if status == db_models.DonationStatusCompleted {
		updates["completed_date"] = gorm.Expr("EXTRACT(EPOCH FROM NOW())::bigint")
	}
	return r.db.WithContext(ctx).
		Model(&db_models.Donation{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *donationRepository) Reserve(ctx context.Context, id uuid.UUID, recipientID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&db_models.Donation{}).
		Where("id = ? AND status = ?", id, db_models.DonationStatusApproved).
		Updates(map[string]interface{}{
			"status":       db_models.DonationStatusReserved,
			"recipient_id": recipientID,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *donationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Delete(&db_models.Donation{}, "id = ?", id).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func (r *donationRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Donation{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

func (r *donationRepository) SetFeatured(ctx context.Context, id uuid.UUID, featured bool) error {
	result := r.db.WithContext(ctx).
		Model(&db_models.Donation{}).
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

func (r *donationRepository) ToggleFavorite(ctx context.Context, donationID, accountID uuid.UUID) (bool, error) {
	var favorited bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing db_models.DonationFavorite
		err := tx.First(&existing, "donation_id = ? AND account_id = ?", donationID, accountID).Error
		switch {
		case err == nil:
			favorited = false
			return tx.Delete(&existing).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			favorited = true
			return tx.Create(&db_models.DonationFavorite{
				DonationID: donationID,
				AccountID:  accountID,
			}).Error
		default:
			return err
		}
	})
	return favorited, err
}
