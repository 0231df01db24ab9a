package lifelog

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/lifetwin-backend/internal/domain/user"
)

// LogEntry is one raw observation. Value semantics depend on Type: hours for sleep and
// study, a 1-5 rating for mood, a currency amount for spend, a session count for health.
//
// Meta keeps the structured metadata verbatim as the client sent it; it is parsed
// leniently at aggregation time.
type LogEntry struct {
	ID        uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID    `gorm:"type:uuid;not null;index:idx_log_entry_user_ts,priority:1" json:"user_id"`
	User      *user.User   `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	Type      ActivityType `gorm:"type:varchar(20);not null;index" json:"type"`
	Timestamp time.Time    `gorm:"not null;index:idx_log_entry_user_ts,priority:2" json:"timestamp"`
	Value     float64      `gorm:"not null" json:"value"`
	Meta      *string      `gorm:"type:text" json:"meta,omitempty"`
	Note      *string      `gorm:"type:varchar(500)" json:"note,omitempty"`
	CreatedAt time.Time    `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (LogEntry) TableName() string { return "log_entry" }

func (e *LogEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// Metadata decodes Meta into a map. Missing or malformed metadata yields an empty map.
func (e *LogEntry) Metadata() map[string]any {
	if e == nil || e.Meta == nil || *e.Meta == "" {
		return map[string]any{}
	}
	var out map[string]any
	if err := json.Unmarshal([]byte(*e.Meta), &out); err != nil || out == nil {
		return map[string]any{}
	}
	return out
}
