package services

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"

	"givehub/internal/models/db_models"
	"givehub/internal/models/response_models"
	"givehub/internal/repositories"
	"givehub/pkg/utils"
)

type NotificationServiceInterface interface {
	// Dispatch persists a single notification for the target account.
	// It never fails the caller: persistence errors are logged and
	// swallowed so a notification failure cannot roll back or block the
	// primary operation.
	Dispatch(ctx context.Context, accountID uuid.UUID, ntype db_models.NotificationType, title, message string, data map[string]interface{})

	List(ctx context.Context, identity *Identity, unreadOnly bool, page, pageSize int) ([]response_models.NotificationResponse, int64, error)
	UnreadCount(ctx context.Context, identity *Identity) (int64, error)
	MarkRead(ctx context.Context, identity *Identity, id string) error
	MarkAllRead(ctx context.Context, identity *Identity) error
	Delete(ctx context.Context, identity *Identity, id string) error
}

type NotificationService struct {
	notificationRepo repositories.NotificationRepository
}

func NewNotificationService(notificationRepo repositories.NotificationRepository) NotificationServiceInterface {
	return &NotificationService{
		notificationRepo: notificationRepo,
	}
}

func (n *NotificationService) Dispatch(ctx context.Context, accountID uuid.UUID, ntype db_models.NotificationType, title, message string, data map[string]interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		log.Printf("notification payload marshal failed for %s: %v", accountID, err)
		payload = []byte("{}")
	}

	notification := &db_models.Notification{
		AccountID: accountID,
		Type:      ntype,
		Title:     title,
		Message:   message,
		Data:      payload,
		Priority:  db_models.NotifPriorityMedium,
	}

	if err := n.notificationRepo.Create(ctx, notification); err != nil {
		log.Printf("notification dispatch failed for %s (%s): %v", accountID, ntype, err)
	}
}

func (n *NotificationService) List(ctx context.Context, identity *Identity, unreadOnly bool, page, pageSize int) ([]response_models.NotificationResponse, int64, error) {
	if identity == nil {
		return nil, 0, utils.ErrUnauthenticated
	}
	if page < 1 {
		return nil, 0, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, 0, utils.ErrInvalidPageSize
	}

	notifications, total, err := n.notificationRepo.ListByAccount(ctx, identity.AccountID, unreadOnly, page, pageSize)
	if err != nil {
		return nil, 0, utils.ErrDatabaseError
	}

	out := make([]response_models.NotificationResponse, 0, len(notifications))
	for _, notification := range notifications {
		out = append(out, response_models.NotificationResponse{
			ID:        notification.ID.String(),
			Type:      string(notification.Type),
			Title:     notification.Title,
			Message:   notification.Message,
			Data:      notification.Data,
			IsRead:    notification.IsRead,
			Priority:  notification.Priority,
			CreatedAt: utils.FormatUnixSeconds(notification.CreatedAt),
		})
	}
	return out, total, nil
}

func (n *NotificationService) UnreadCount(ctx context.Context, identity *Identity) (int64, error) {
	if identity == nil {
		return 0, utils.ErrUnauthenticated
	}
	count, err := n.notificationRepo.CountUnread(ctx, identity.AccountID)
	if err != nil {
		return 0, utils.ErrDatabaseError
	}
	return count, nil
}

func (n *NotificationService) MarkRead(ctx context.Context, identity *Identity, id string) error {
	if identity == nil {
		return utils.ErrUnauthenticated
	}
	notificationID, err := uuid.Parse(id)
	if err != nil {
		return utils.ErrNotificationNotFound
	}

	ok, err := n.notificationRepo.MarkRead(ctx, notificationID, identity.AccountID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if !ok {
		return utils.ErrNotificationNotFound
	}
	return nil
}

func (n *NotificationService) MarkAllRead(ctx context.Context, identity *Identity) error {
	if identity == nil {
		return utils.ErrUnauthenticated
	}
	if err := n.notificationRepo.MarkAllRead(ctx, identity.AccountID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (n *NotificationService) Delete(ctx context.Context, identity *Identity, id string) error {
	if identity == nil {
		return utils.ErrUnauthenticated
	}
	notificationID, err := uuid.Parse(id)
	if err != nil {
		return utils.ErrNotificationNotFound
	}

	ok, err := n.notificationRepo.Delete(ctx, notificationID, identity.AccountID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if !ok {
		return utils.ErrNotificationNotFound
	}
	return nil
}
