package notification_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"givehub/internal/repositories"
	"givehub/internal/services"
)

var Module = fx.Provide(
	provideNotificationService, provideNotificationRepo)

func provideNotificationRepo(db *gorm.DB) repositories.NotificationRepository {
	return repositories.NewNotificationRepository(db)
}

func provideNotificationService(notificationRepo repositories.NotificationRepository) services.NotificationServiceInterface {
	return services.NewNotificationService(notificationRepo)
}
