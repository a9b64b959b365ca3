package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	PlanEnabled  = "enabled"
	PlanDisabled = "disabled"
)

type PricingPlan struct {
	ID        uint                        `gorm:"primaryKey" json:"id"`
	Name      string                      `gorm:"size:255;not null" json:"name"`
	Price     float64                     `gorm:"not null;default:0" json:"price"`
	Type      string                      `gorm:"size:64" json:"type"`
	Features  datatypes.JSONSlice[string] `json:"features"`
	Status    string                      `gorm:"size:16;default:'enabled'" json:"status"`
	CreatedAt time.Time                   `json:"created_at"`
	UpdatedAt time.Time                   `json:"updated_at"`
}

func (PricingPlan) TableName() string {
	return "pricing"
}
