package models

import (
	"time"
)

type LoginTracking struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	IPAddress string    `gorm:"size:64" json:"ip_address"`
	Device    string    `gorm:"size:512" json:"device"`
	Timestamp time.Time `json:"timestamp"`
}
