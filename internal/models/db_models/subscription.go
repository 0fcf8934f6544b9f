package db_models

import (
	"github.com/google/uuid"
)

type SubscriptionStatus string

const (
	SubStatusActive    SubscriptionStatus = "ACTIVE"
	SubStatusExpired   SubscriptionStatus = "EXPIRED"
	SubStatusCancelled SubscriptionStatus = "CANCELLED"
)

// Subscription is a purchaser's access grant to a bot's VIP group. Created
// exclusively by the provisioning service; the lifecycle sweep is the only
// writer of the EXPIRED status.
type Subscription struct {
	BaseModel
	BotID  uuid.UUID `gorm:"index"`
	PlanID uuid.UUID `gorm:"index"`

	TelegramUserID   string `gorm:"index"`
	TelegramUsername string
	TelegramName     string

	StartDate int64              `gorm:"not null"`
	EndDate   *int64             `gorm:"index"` // nil for lifetime plans
	Status    SubscriptionStatus `gorm:"type:subscription_status;index"`

	// NotifiedAt marks the pre-expiry warning so a re-run of the
	// notify-expiring-soon job never resends it.
	NotifiedAt *int64

	PaymentID uuid.UUID `gorm:"index"`

	Bot  Bot  `gorm:"foreignKey:BotID"`
	Plan Plan `gorm:"foreignKey:PlanID"`
}
