package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vipgate/internal/models/request_models"
	"vipgate/internal/services"
	"vipgate/pkg/utils"
)

type PaymentController struct {
	paymentService   services.PaymentService
	provisionService services.ProvisionService
}

func NewPaymentController(
	paymentService services.PaymentService,
	provisionService services.ProvisionService,
) *PaymentController {
	return &PaymentController{
		paymentService:   paymentService,
		provisionService: provisionService,
	}
}

// GeneratePix godoc
// @Summary Create a PIX charge for a plan or package
// @Description Creates a pending transaction and requests a PIX code from the bot's payment gateway
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body request_models.GeneratePixRequest true "Generate PIX Request"
// @Success 200 {object} response_models.GeneratePixResponse
// @Router /generate-pix [post]
func (p *PaymentController) GeneratePix(c *gin.Context) {
	var request request_models.GeneratePixRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	result, err := p.paymentService.GenerateCharge(c.Request.Context(), services.ChargeInput{
		BotID:            request.BotID,
		PlanID:           request.PlanID,
		PackageID:        request.PackageID,
		TelegramUserID:   request.TelegramUserID,
		TelegramName:     request.TelegramName,
		TelegramUsername: request.TelegramUsername,
		WithBump:         request.WithBump,
	})
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ConfirmPayment godoc
// @Summary Confirm a paid transaction and provision access
// @Description Marks the transaction completed, creates the subscription and sends the invite link
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body request_models.ConfirmPaymentRequest true "Confirm Payment Request"
// @Success 200 {object} response_models.ConfirmPaymentResponse
// @Router /confirm-payment [post]
func (p *PaymentController) ConfirmPayment(c *gin.Context) {
	var request request_models.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	result, err := p.provisionService.Confirm(c.Request.Context(), request.TransactionID, request.PlanID, request.PackageID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
