package db_models

import (
	"github.com/google/uuid"
)

type PaymentGateway string

const (
	GatewayPushinPay   PaymentGateway = "pushinpay"
	GatewaySyncpay     PaymentGateway = "syncpay"
	GatewayMercadoPago PaymentGateway = "mercadopago"
	GatewayAsaas       PaymentGateway = "asaas"
)

// Bot is one connected Telegram credential plus the operator-authored funnel
// configuration. The webhook path treats this row as read-only; all writes
// come from the dashboard.
type Bot struct {
	BaseModel
	OperatorID uuid.UUID `gorm:"index"`

	BotToken    string `gorm:"uniqueIndex"`
	BotUsername string
	BotName     string

	WelcomeMessage string
	MediaURL       *string
	MediaType      *string // "image" | "video"
	SecondaryText  *string

	CTAEnabled    bool `gorm:"default:false"`
	CTAText       *string
	CTAButtonText *string
	CTAButtonURL  *string

	VIPGroupID        string
	VIPInviteLink     *string
	RegistryChannelID string

	// No gorm default tag: with one, Create drops an explicit false and the
	// column default resurrects the row as active. Creation paths set the
	// initial value themselves.
	IsActive       bool
	PaymentEnabled bool `gorm:"default:false"`

	PaymentGateway      PaymentGateway `gorm:"type:payment_gateway"`
	PaymentPublicToken  string
	PaymentPrivateToken string

	PaymentMethodMessage    *string
	PaymentMethodButtonText *string
	PixMainMessage          *string
	PixStatusButtonText     *string
	PixQRCodeButtonText     *string

	ShowQRCodeInChat    bool
	PixFormatBlockquote bool `gorm:"default:false"`
	PixMediaURL         *string
	PixMediaType        *string // "image" | "video"
	PixAudioURL         *string

	Plans    []Plan    `gorm:"foreignKey:BotID;constraint:OnDelete:CASCADE"`
	Packages []Package `gorm:"foreignKey:BotID;constraint:OnDelete:CASCADE"`
}
