package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// ValidTaskStatus reports whether s is one of the enumerated task statuses.
func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

type Task struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"_id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Description string     `gorm:"type:text;not null;default:''" json:"description"`
	Status      TaskStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	DueDate     *time.Time `gorm:"index" json:"due_date"`
	ProjectID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"project"`
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
	IsDeleted   bool       `gorm:"not null;default:false" json:"is_deleted"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"-"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
