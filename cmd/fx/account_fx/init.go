package account_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"givehub/internal/repositories"
	"givehub/internal/services"
	mem "givehub/pkg/memcache"
)

var Module = fx.Provide(
	provideAccountService, provideAccountRepo, provideDashboardRepo)

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideDashboardRepo(db *gorm.DB) repositories.DashboardRepository {
	return repositories.NewDashboardRepository(db)
}

func provideAccountService(
	accountRepo repositories.AccountRepository,
	transactionRepo repositories.TransactionRepository,
	dashboardRepo repositories.DashboardRepository,
	mailService services.IMailService,
	notificationService services.NotificationServiceInterface,
	resetTokens mem.ResetTokenStore,
) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo, transactionRepo, dashboardRepo, mailService, notificationService, resetTokens)
}
