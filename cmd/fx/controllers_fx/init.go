package controllers_fx

import (
	"go.uber.org/fx"

	"givehub/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewDonationController),
	fx.Provide(controllers.NewItemController),
	fx.Provide(controllers.NewTransactionController),
	fx.Provide(controllers.NewNotificationController),
	fx.Provide(controllers.NewDashboardController),
	fx.Provide(controllers.NewAdminController))
