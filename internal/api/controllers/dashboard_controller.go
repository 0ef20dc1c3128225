package controllers

import (
	"github.com/gin-gonic/gin"

	"givehub/internal/services"
	"givehub/pkg/utils"
)

type DashboardController struct {
	dashboardService services.DashboardServiceInterface
}

func NewDashboardController(dashboardService services.DashboardServiceInterface) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
	}
}

// UserDashboard godoc
// @Summary Get the caller's activity dashboard
// @Description Recomputes the account's stats and returns them with a recent activity timeline
// @Tags Dashboard
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /dashboard [get]
func (d *DashboardController) UserDashboard(c *gin.Context) {
	dashboard, err := d.dashboardService.UserDashboard(c.Request.Context(), identityFromContext(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, dashboard, "Dashboard fetched successfully")
}
