package request_models

type ConnectBotRequest struct {
	BotToken          string `json:"bot_token" binding:"required"`
	WelcomeMessage    string `json:"welcome_message" binding:"required"`
	VIPGroupID        string `json:"vip_group_id" binding:"required"`
	RegistryChannelID string `json:"registry_channel_id"`
}

// UpdateBotRequest carries the dashboard-editable configuration. Pointer
// fields distinguish "clear" from "leave unchanged" only where the column is
// itself nullable; flags always overwrite.
type UpdateBotRequest struct {
	WelcomeMessage *string `json:"welcome_message"`
	MediaURL       *string `json:"media_url"`
	MediaType      *string `json:"media_type"`
	SecondaryText  *string `json:"secondary_text"`

	CTAEnabled    *bool   `json:"cta_enabled"`
	CTAText       *string `json:"cta_text"`
	CTAButtonText *string `json:"cta_button_text"`
	CTAButtonURL  *string `json:"cta_button_url"`

	VIPGroupID        *string `json:"vip_group_id"`
	RegistryChannelID *string `json:"registry_channel_id"`
	IsActive          *bool   `json:"is_active"`

	PaymentEnabled      *bool   `json:"payment_enabled"`
	PaymentGateway      *string `json:"payment_gateway"`
	PaymentPublicToken  *string `json:"payment_public_token"`
	PaymentPrivateToken *string `json:"payment_private_token"`

	PaymentMethodMessage    *string `json:"payment_method_message"`
	PaymentMethodButtonText *string `json:"payment_method_button_text"`
	PixMainMessage          *string `json:"pix_main_message"`
	PixStatusButtonText     *string `json:"pix_status_button_text"`
	PixQRCodeButtonText     *string `json:"pix_qrcode_button_text"`

	ShowQRCodeInChat    *bool   `json:"show_qrcode_in_chat"`
	PixFormatBlockquote *bool   `json:"pix_format_blockquote"`
	PixMediaURL         *string `json:"pix_media_url"`
	PixMediaType        *string `json:"pix_media_type"`
	PixAudioURL         *string `json:"pix_audio_url"`
}
