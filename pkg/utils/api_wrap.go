package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceID(c *gin.Context) string {
	id, _ := c.Get("trace_id")
	s, _ := id.(string)
	return s
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}

// HandleServiceError maps service sentinel errors to HTTP responses.
// Configuration errors surface as 4xx, everything else is a 500 with the
// detail kept out of the body.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrBotNotFound),
		errors.Is(err, ErrPlanNotFound),
		errors.Is(err, ErrPackageNotFound),
		errors.Is(err, ErrTransactionNotFound),
		errors.Is(err, ErrOperatorNotFound):
		RespondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrBotInactive):
		RespondError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrPaymentDisabled),
		errors.Is(err, ErrAlreadyCompleted),
		errors.Is(err, ErrTransactionExpired),
		errors.Is(err, ErrUnsupportedGateway),
		errors.Is(err, ErrInvalidRequest),
		errors.Is(err, ErrInvalidTelegramToken),
		errors.Is(err, ErrEmailAlreadyInUse):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrDatabaseError):
		log.Printf("Database error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
