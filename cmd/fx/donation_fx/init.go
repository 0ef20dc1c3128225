package donation_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"givehub/internal/repositories"
	"givehub/internal/services"
)

var Module = fx.Provide(
	provideDonationService, provideDonationRepo)

func provideDonationRepo(db *gorm.DB) repositories.DonationRepository {
	return repositories.NewDonationRepository(db)
}

func provideDonationService(
	donationRepo repositories.DonationRepository,
	accountRepo repositories.AccountRepository,
	notificationService services.NotificationServiceInterface,
	mailService services.IMailService,
) services.DonationServiceInterface {
	return services.NewDonationService(donationRepo, accountRepo, notificationService, mailService)
}
