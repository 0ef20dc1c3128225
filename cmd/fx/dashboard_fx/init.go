package dashboard_fx

import (
	"go.uber.org/fx"

	"givehub/internal/repositories"
	"givehub/internal/services"
)

var Module = fx.Provide(provideDashboardService)

func provideDashboardService(
	dashboardRepo repositories.DashboardRepository,
	accountRepo repositories.AccountRepository,
	accountService services.AccountServiceInterface,
) services.DashboardServiceInterface {
	return services.NewDashboardService(dashboardRepo, accountRepo, accountService)
}
