package models

import (
	"time"
)

// Account statuses. Only Active accounts may log in.
const (
	StatusActive    = "Active"
	StatusSuspended = "Suspended"
	StatusBanned    = "Banned"
)

// Roles. RoleAdmin is only ever assigned by the admin bootstrap.
const (
	RoleLearner = "learner"
	RoleAdmin   = "admin"
)

type User struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"size:255;not null" json:"name"`
	Email     string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password  string     `gorm:"size:255;not null" json:"-"`
	Status    string     `gorm:"size:32;default:'Active'" json:"status"`
	Plan      string     `gorm:"size:64;default:'Free'" json:"plan"`
	Role      string     `gorm:"size:16;not null;default:'learner'" json:"role"`
	Points    int        `gorm:"default:0" json:"points"`
	LastLogin *time.Time `json:"last_login"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// IsValidStatus reports whether s is one of the account statuses.
func IsValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusSuspended, StatusBanned:
		return true
	}
	return false
}
