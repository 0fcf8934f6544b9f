package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vipgate/internal/services"
	"vipgate/pkg/utils"
)

// SchedulerController exposes the sweep jobs over HTTP so an external
// scheduler can trigger them in addition to the built-in cron.
type SchedulerController struct {
	lifecycleService services.LifecycleService
}

func NewSchedulerController(lifecycleService services.LifecycleService) *SchedulerController {
	return &SchedulerController{lifecycleService: lifecycleService}
}

// RemoveExpired godoc
// @Summary Remove members whose subscriptions expired
// @Tags Scheduler
// @Produce json
// @Success 200 {object} response_models.RemovalReport
// @Router /remove-expired-users [post]
func (s *SchedulerController) RemoveExpired(c *gin.Context) {
	report, err := s.lifecycleService.RemoveExpired(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, report.AsRemoval())
}

// NotifyExpiring godoc
// @Summary Warn members whose subscriptions expire in three days
// @Tags Scheduler
// @Produce json
// @Success 200 {object} response_models.NotificationReport
// @Router /notify-expiring-soon [post]
func (s *SchedulerController) NotifyExpiring(c *gin.Context) {
	report, err := s.lifecycleService.NotifyExpiring(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, report.AsNotification())
}
