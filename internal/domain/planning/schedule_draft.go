package planning

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/lifetwin-backend/internal/domain/user"
)

const (
	DraftStatusDraft   = "draft"
	DraftStatusApplied = "applied"

	EventStatusPlanned = "planned"
)

// DraftEvent is one proposed calendar entry inside a ScheduleDraft.
type DraftEvent struct {
	Title    string    `json:"title"`
	Category string    `json:"category"`
	StartAt  time.Time `json:"start_at"`
	EndAt    time.Time `json:"end_at"`
	Note     string    `json:"note,omitempty"`
	Status   string    `json:"status"`
}

// ScheduleDraft is an editable set of events generated from what-if changes.
type ScheduleDraft struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *user.User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	PlanName  string         `gorm:"type:varchar(100);not null" json:"plan_name"`
	Events    datatypes.JSON `gorm:"type:jsonb;not null" json:"-"`
	Status    string         `gorm:"type:varchar(10);not null;default:'draft'" json:"status"`
	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (ScheduleDraft) TableName() string { return "schedule_draft" }

func (d *ScheduleDraft) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// DecodeEvents returns the stored events; unreadable payloads decode as empty.
func (d *ScheduleDraft) DecodeEvents() []DraftEvent {
	if d == nil || len(d.Events) == 0 {
		return []DraftEvent{}
	}
	var out []DraftEvent
	if err := json.Unmarshal(d.Events, &out); err != nil || out == nil {
		return []DraftEvent{}
	}
	return out
}

// EncodeEvents replaces the stored events.
func (d *ScheduleDraft) EncodeEvents(events []DraftEvent) error {
	if events == nil {
		events = []DraftEvent{}
	}
	raw, err := json.Marshal(events)
	if err != nil {
		return err
	}
	d.Events = datatypes.JSON(raw)
	return nil
}
