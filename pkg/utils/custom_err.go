package utils

import "errors"

var (
	ErrBotNotFound          = errors.New("bot not found")
	ErrBotInactive          = errors.New("bot is not active")
	ErrPlanNotFound         = errors.New("plan not found")
	ErrPackageNotFound      = errors.New("package not found")
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrOperatorNotFound     = errors.New("operator not found")
	ErrPaymentDisabled      = errors.New("payment not enabled for this bot")
	ErrAlreadyCompleted     = errors.New("transaction already completed")
	ErrTransactionExpired   = errors.New("transaction expired")
	ErrUnsupportedGateway   = errors.New("unsupported payment gateway")
	ErrGatewayRejected      = errors.New("payment gateway rejected the charge")
	ErrGatewayUnreachable   = errors.New("payment gateway unreachable")
	ErrInvalidRequest       = errors.New("invalid request")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrEmailAlreadyInUse    = errors.New("email already in use")
	ErrInvalidTelegramToken = errors.New("invalid telegram bot token")
	ErrDatabaseError        = errors.New("database error")
)
