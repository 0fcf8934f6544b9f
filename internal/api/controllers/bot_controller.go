package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vipgate/internal/models/request_models"
	"vipgate/internal/services"
	"vipgate/pkg/utils"
)

type BotController struct {
	botService services.BotService
}

func NewBotController(botService services.BotService) *BotController {
	return &BotController{botService: botService}
}

// Connect godoc
// @Summary Connect a Telegram bot to the operator account
// @Tags Bots
// @Accept json
// @Produce json
// @Param request body request_models.ConnectBotRequest true "Connect Bot Request"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /bots [post]
func (b *BotController) Connect(c *gin.Context) {
	var request request_models.ConnectBotRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	bot, err := b.botService.Connect(c.Request.Context(), c.GetString("operator_id"), request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, bot, "Bot connected successfully")
}

// List godoc
// @Summary List the operator's bots
// @Tags Bots
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /bots [get]
func (b *BotController) List(c *gin.Context) {
	bots, err := b.botService.List(c.Request.Context(), c.GetString("operator_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, bots, "")
}

// Get godoc
// @Summary Get one bot with its configuration
// @Tags Bots
// @Produce json
// @Param id path string true "Bot ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /bots/{id} [get]
func (b *BotController) Get(c *gin.Context) {
	bot, err := b.botService.Get(c.Request.Context(), c.GetString("operator_id"), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, bot, "")
}

// Update godoc
// @Summary Update a bot's funnel and payment configuration
// @Tags Bots
// @Accept json
// @Produce json
// @Param id path string true "Bot ID"
// @Param request body request_models.UpdateBotRequest true "Update Bot Request"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /bots/{id} [put]
func (b *BotController) Update(c *gin.Context) {
	var request request_models.UpdateBotRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	bot, err := b.botService.Update(c.Request.Context(), c.GetString("operator_id"), c.Param("id"), request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, bot, "Bot updated successfully")
}

// Delete godoc
// @Summary Disconnect and delete a bot
// @Tags Bots
// @Produce json
// @Param id path string true "Bot ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /bots/{id} [delete]
func (b *BotController) Delete(c *gin.Context) {
	if err := b.botService.Delete(c.Request.Context(), c.GetString("operator_id"), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Bot deleted successfully")
}
