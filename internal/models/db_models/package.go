package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Package is a one-time purchase. No subscription and no group membership
// change; the deliverables payload is sent to the buyer after confirmation.
type Package struct {
	BaseModel
	BotID uuid.UUID `gorm:"index"`

	Name        string
	Description *string
	Price       float64 `gorm:"column:value"`
	IsActive    bool

	OrderBumpEnabled     bool `gorm:"default:false"`
	OrderBumpName        *string
	OrderBumpDescription *string
	OrderBumpPrice       float64
	OrderBumpMediaURL    *string

	Deliverables datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
}
