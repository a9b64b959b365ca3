package models

import "time"

// UserProgress is a completion fact for one task. The five key columns share a
// unique index so a duplicate insert is a no-op.
type UserProgress struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_progress_key,priority:1" json:"userId"`
	StackID   string    `gorm:"size:100;not null;uniqueIndex:idx_user_progress_key,priority:2" json:"stackId"`
	ModuleID  string    `gorm:"size:100;not null;uniqueIndex:idx_user_progress_key,priority:3" json:"moduleId"`
	Day       int       `gorm:"not null;uniqueIndex:idx_user_progress_key,priority:4" json:"day"`
	TaskIndex int       `gorm:"not null;uniqueIndex:idx_user_progress_key,priority:5" json:"taskIndex"`
	CreatedAt time.Time `json:"-"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}
