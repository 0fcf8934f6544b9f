package request_models

type GeneratePixRequest struct {
	BotID            string `json:"bot_id" binding:"required"`
	PlanID           string `json:"plan_id"`
	PackageID        string `json:"package_id"`
	TelegramUserID   string `json:"telegram_user_id" binding:"required"`
	TelegramName     string `json:"telegram_name" binding:"required"`
	TelegramUsername string `json:"telegram_username"`
	WithBump         bool   `json:"with_bump"`
}

type ConfirmPaymentRequest struct {
	TransactionID string `json:"transaction_id" binding:"required"`
	PlanID        string `json:"plan_id"`
	PackageID     string `json:"package_id"`
}
