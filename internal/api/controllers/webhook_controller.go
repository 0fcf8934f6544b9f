package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vipgate/internal/repositories"
	"vipgate/internal/services"
	"vipgate/pkg/telegram"
	"vipgate/pkg/utils"
)

type WebhookController struct {
	botRepo       repositories.IBotRepository
	funnelService services.FunnelService
	logger        *zap.Logger
}

func NewWebhookController(
	botRepo repositories.IBotRepository,
	funnelService services.FunnelService,
	logger *zap.Logger,
) *WebhookController {
	return &WebhookController{
		botRepo:       botRepo,
		funnelService: funnelService,
		logger:        logger,
	}
}

// HandleUpdate godoc
// @Summary Receive a Telegram update for one bot
// @Description Telegram delivers updates here; the bot is selected by the bot_id query parameter
// @Tags Webhook
// @Accept json
// @Produce json
// @Param bot_id query string true "Bot ID"
// @Success 200 {object} map[string]bool
// @Router /telegram-webhook [post]
func (w *WebhookController) HandleUpdate(c *gin.Context) {
	botID := c.Query("bot_id")
	if botID == "" {
		utils.RespondError(c, http.StatusBadRequest, "bot_id is required")
		return
	}

	bot, err := w.botRepo.GetByID(c.Request.Context(), botID)
	if err != nil {
		utils.HandleServiceError(c, utils.ErrDatabaseError)
		return
	}
	if bot == nil {
		utils.RespondError(c, http.StatusNotFound, utils.ErrBotNotFound.Error())
		return
	}
	if !bot.IsActive {
		utils.RespondError(c, http.StatusForbidden, utils.ErrBotInactive.Error())
		return
	}

	var update telegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid update payload")
		return
	}

	// A handler failure still answers 200; Telegram redelivers on anything
	// else and the funnel is not safe to replay blindly.
	if err := w.funnelService.HandleUpdate(c.Request.Context(), bot, &update); err != nil {
		w.logger.Error("handle update", zap.String("bot_id", botID), zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
