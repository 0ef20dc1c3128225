package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"givehub/internal/models/db_models"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *db_models.Notification) error
	ListByAccount(ctx context.Context, accountID uuid.UUID, unreadOnly bool, page, pageSize int) ([]db_models.Notification, int64, error)
	CountUnread(ctx context.Context, accountID uuid.UUID) (int64, error)
	// MarkRead and Delete are scoped to the owning account; they report
	// false when no owned row matched.
	MarkRead(ctx context.Context, id, accountID uuid.UUID) (bool, error)
	MarkAllRead(ctx context.Context, accountID uuid.UUID) error
	Delete(ctx context.Context, id, accountID uuid.UUID) (bool, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *db_models.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *notificationRepository) ListByAccount(ctx context.Context, accountID uuid.UUID, unreadOnly bool, page, pageSize int) ([]db_models.Notification, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&db_models.Notification{}).
		Where("account_id = ?", accountID)
	if unreadOnly {
		q = q.Where("is_read = false")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []db_models.Notification
	err := q.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&notifications).Error
	if err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, accountID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&db_models.Notification{}).
		Where("account_id = ? AND is_read = false", accountID).
		Count(&n).Error
	return n, err
}

func (r *notificationRepository) MarkRead(ctx context.Context, id, accountID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&db_models.Notification{}).
		Where("id = ? AND account_id = ?", id, accountID).
		Update("is_read", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, accountID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Notification{}).
		Where("account_id = ? AND is_read = false", accountID).
		Update("is_read", true).Error
}

func (r *notificationRepository) Delete(ctx context.Context, id, accountID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND account_id = ?", id, accountID).
		Delete(&db_models.Notification{})
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
