package item_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"givehub/internal/repositories"
	"givehub/internal/services"
)

var Module = fx.Provide(
	provideItemService, provideItemRepo)

func provideItemRepo(db *gorm.DB) repositories.ItemRepository {
	return repositories.NewItemRepository(db)
}

func provideItemService(
	itemRepo repositories.ItemRepository,
	transactionRepo repositories.TransactionRepository,
	notificationService services.NotificationServiceInterface,
) services.ItemServiceInterface {
	return services.NewItemService(itemRepo, transactionRepo, notificationService)
}
