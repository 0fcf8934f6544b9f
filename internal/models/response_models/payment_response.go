package response_models

type GeneratePixResponse struct {
	OK            bool    `json:"ok"`
	TransactionID string  `json:"transaction_id"`
	PixCode       string  `json:"pix_code"`
	QRCodeURL     string  `json:"qr_code_url,omitempty"`
	Amount        float64 `json:"amount"`
	ItemName      string  `json:"item_name"`
	ExpiresAt     int64   `json:"expires_at"`
}

type ConfirmPaymentResponse struct {
	OK             bool   `json:"ok"`
	SubscriptionID string `json:"subscription_id,omitempty"`
	Message        string `json:"message"`
}
