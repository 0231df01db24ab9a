package planning

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/lifetwin-backend/internal/domain/user"
)

// Task is a calendar item. Only draft application writes tasks in this service; the
// rest of task management belongs to the planner subsystem.
type Task struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	DraftID     *uuid.UUID `gorm:"type:uuid;index" json:"draft_id,omitempty"`
	Title       string     `gorm:"type:varchar(200);not null" json:"title"`
	Category    string     `gorm:"type:varchar(50);not null;default:'general'" json:"category"`
	ExpectedMin int        `gorm:"not null" json:"expected_min"`
	StartAt     time.Time  `gorm:"not null" json:"start_at"`
	EndAt       time.Time  `gorm:"not null" json:"end_at"`
	Status      string     `gorm:"type:varchar(20);not null;default:'planned'" json:"status"`
	Visibility  string     `gorm:"type:varchar(10);not null;default:'private'" json:"visibility"`
	CreatedAt   time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Task) TableName() string { return "task" }

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
