package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type TransactionStatus string

const (
	TxnStatusPending   TransactionStatus = "PENDING"
	TxnStatusCompleted TransactionStatus = "COMPLETED"
	TxnStatusFailed    TransactionStatus = "FAILED"
	TxnStatusRefunded  TransactionStatus = "REFUNDED"
)

// Transaction records one payment attempt. Status is monotonic: PENDING may
// move to COMPLETED, FAILED or REFUNDED and never back.
type Transaction struct {
	BaseModel
	BotID          uuid.UUID  `gorm:"index"`
	PlanID         *uuid.UUID `gorm:"index"`
	PackageID      *uuid.UUID `gorm:"index"`
	SubscriptionID *uuid.UUID `gorm:"index"`

	TelegramUserID   string `gorm:"index"`
	TelegramName     string
	TelegramUsername string

	Amount float64
	Status TransactionStatus `gorm:"type:transaction_status;index"`

	PaymentGateway   PaymentGateway `gorm:"type:payment_gateway"`
	GatewayPaymentID string         `gorm:"index"`
	PixCode          string
	PixQRCode        string

	// Soft deadline for the PIX charge; confirmation past this point is
	// rejected.
	ExpiresAt int64

	Metadata datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
}
