package controllers

import (
	"github.com/gin-gonic/gin"

	"vipgate/internal/services"
	"vipgate/pkg/utils"
)

type DashboardController struct {
	dashboardService services.DashboardService
}

func NewDashboardController(dashboardService services.DashboardService) *DashboardController {
	return &DashboardController{dashboardService: dashboardService}
}

// Statistics godoc
// @Summary Aggregate statistics across the operator's bots
// @Tags Dashboard
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /dashboard/statistics [get]
func (d *DashboardController) Statistics(c *gin.Context) {
	report, err := d.dashboardService.BuildStatistics(c.Request.Context(), c.GetString("operator_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, report, "")
}

// BotSubscriptions godoc
// @Summary List the subscriptions of one bot
// @Tags Dashboard
// @Produce json
// @Param id path string true "Bot ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /bots/{id}/subscriptions [get]
func (d *DashboardController) BotSubscriptions(c *gin.Context) {
	subs, err := d.dashboardService.ListSubscriptions(c.Request.Context(), c.GetString("operator_id"), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, subs, "")
}

// BotTransactions godoc
// @Summary List the transactions of one bot
// @Tags Dashboard
// @Produce json
// @Param id path string true "Bot ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /bots/{id}/transactions [get]
func (d *DashboardController) BotTransactions(c *gin.Context) {
	txns, err := d.dashboardService.ListTransactions(c.Request.Context(), c.GetString("operator_id"), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, txns, "")
}
