package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vipgate/internal/models/request_models"
	"vipgate/internal/services"
	"vipgate/pkg/utils"
)

type OperatorController struct {
	operatorService services.OperatorService
}

func NewOperatorController(operatorService services.OperatorService) *OperatorController {
	return &OperatorController{operatorService: operatorService}
}

// SignUp godoc
// @Summary Register an operator account
// @Tags Operators
// @Accept json
// @Produce json
// @Param request body request_models.SignUpRequest true "Sign Up Request"
// @Success 200 {object} utils.APIResponse
// @Router /operators/signup [post]
func (o *OperatorController) SignUp(c *gin.Context) {
	var request request_models.SignUpRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	session, err := o.operatorService.Register(c.Request.Context(), request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, session, "Operator registered successfully")
}

// Login godoc
// @Summary Authenticate an operator
// @Tags Operators
// @Accept json
// @Produce json
// @Param request body request_models.LoginRequest true "Login Request"
// @Success 200 {object} utils.APIResponse
// @Router /operators/login [post]
func (o *OperatorController) Login(c *gin.Context) {
	var request request_models.LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	session, err := o.operatorService.Login(c.Request.Context(), request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, session, "Login successful")
}
