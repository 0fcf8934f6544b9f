package db_models

import (
	"github.com/google/uuid"
)

type DurationType string

const (
	DurationDaily    DurationType = "DAILY"
	DurationWeekly   DurationType = "WEEKLY"
	DurationMonthly  DurationType = "MONTHLY"
	DurationLifetime DurationType = "LIFETIME"
)

// Plan is a recurring access grant: paying for it creates a Subscription.
type Plan struct {
	BaseModel
	BotID uuid.UUID `gorm:"index"`

	Name         string
	Description  *string
	DurationType DurationType `gorm:"type:duration_type"`
	DurationDays int          // 0 for LIFETIME
	Price        float64
	IsActive     bool

	OrderBumpEnabled     bool `gorm:"default:false"`
	OrderBumpName        *string
	OrderBumpDescription *string
	OrderBumpPrice       float64
	OrderBumpAcceptText  *string
	OrderBumpRejectText  *string
	OrderBumpMediaURL    *string
}

// IsLifetime reports whether the plan never expires.
func (p *Plan) IsLifetime() bool {
	return p.DurationType == DurationLifetime
}
