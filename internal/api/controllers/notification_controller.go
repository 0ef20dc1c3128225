package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"givehub/internal/models/request_models"
	"givehub/internal/services"
	"givehub/pkg/utils"
)

type NotificationController struct {
	notificationService services.NotificationServiceInterface
}

func NewNotificationController(notificationService services.NotificationServiceInterface) *NotificationController {
	return &NotificationController{
		notificationService: notificationService,
	}
}

func (n *NotificationController) List(c *gin.Context) {
	var query request_models.ListNotificationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	notifications, total, err := n.notificationService.List(
		c.Request.Context(), identityFromContext(c), query.UnreadOnly, query.Page, query.Limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"notifications": notifications, "total": total}, "Notifications fetched successfully")
}

func (n *NotificationController) UnreadCount(c *gin.Context) {
	count, err := n.notificationService.UnreadCount(c.Request.Context(), identityFromContext(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"unread": count}, "Unread count fetched successfully")
}

func (n *NotificationController) MarkRead(c *gin.Context) {
	if err := n.notificationService.MarkRead(c.Request.Context(), identityFromContext(c), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Notification marked as read")
}

func (n *NotificationController) MarkAllRead(c *gin.Context) {
	if err := n.notificationService.MarkAllRead(c.Request.Context(), identityFromContext(c)); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "All notifications marked as read")
}

func (n *NotificationController) Delete(c *gin.Context) {
	if err := n.notificationService.Delete(c.Request.Context(), identityFromContext(c), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Notification deleted successfully")
}
