package transaction_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"givehub/internal/repositories"
	"givehub/internal/services"
)

var Module = fx.Provide(
	provideTransactionService, provideTransactionRepo)

func provideTransactionRepo(db *gorm.DB) repositories.TransactionRepository {
	return repositories.NewTransactionRepository(db)
}

func provideTransactionService(
	transactionRepo repositories.TransactionRepository,
	notificationService services.NotificationServiceInterface,
	accountService services.AccountServiceInterface,
) services.TransactionServiceInterface {
	return services.NewTransactionService(transactionRepo, notificationService, accountService)
}
