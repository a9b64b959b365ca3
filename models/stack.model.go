package models

import (
	"time"

	"gorm.io/datatypes"
)

// Stack is a course row. Details holds the serialized curriculum document and is
// decoded into StackDetails by the curriculum store.
type Stack struct {
	ID          string         `gorm:"primaryKey;size:100" json:"id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Details     datatypes.JSON `json:"details"`
	CreatedAt   time.Time      `json:"-"`
	UpdatedAt   time.Time      `json:"-"`
}

// StackDetails is the curriculum document of a stack.
type StackDetails struct {
	Image   string   `json:"image,omitempty"`
	Modules []Module `json:"modules"`
}

type Module struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	IntroVideoID string          `json:"introVideoId,omitempty"`
	Curriculum   []CurriculumDay `json:"curriculum"`
}

type CurriculumDay struct {
	Day   int    `json:"day"`
	Tasks []Task `json:"tasks"`
}

type Task struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Points      int    `json:"points,omitempty"`
	Solution    string `json:"solution,omitempty"`
}
