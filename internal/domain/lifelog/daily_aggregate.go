package lifelog

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/lifetwin-backend/internal/domain/user"
)

// DailyAggregate is the per (user, date, type) rollup of log entries.
type DailyAggregate struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_daily_aggregate_user_date_type,priority:1" json:"user_id"`
	User        *user.User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	Date        time.Time      `gorm:"type:date;not null;uniqueIndex:idx_daily_aggregate_user_date_type,priority:2" json:"date"`
	Type        ActivityType   `gorm:"type:varchar(20);not null;uniqueIndex:idx_daily_aggregate_user_date_type,priority:3" json:"type"`
	Total       float64        `gorm:"not null;default:0" json:"total"`
	Average     float64        `gorm:"not null;default:0" json:"average"`
	Count       int            `gorm:"not null;default:0" json:"count"`
	MetaSummary datatypes.JSON `gorm:"type:jsonb" json:"meta_summary"`
	ComputedAt  time.Time      `gorm:"not null" json:"computed_at"`
}

func (DailyAggregate) TableName() string { return "daily_aggregate" }

func (a *DailyAggregate) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Summary decodes MetaSummary; unreadable summaries behave as empty.
func (a *DailyAggregate) Summary() map[string]any {
	if a == nil || len(a.MetaSummary) == 0 {
		return map[string]any{}
	}
	var out map[string]any
	if err := json.Unmarshal(a.MetaSummary, &out); err != nil || out == nil {
		return map[string]any{}
	}
	return out
}

// Field returns the named numeric aggregate field.
func (a *DailyAggregate) Field(name AggregateField) (float64, bool) {
	if a == nil {
		return 0, false
	}
	switch name {
	case FieldTotal:
		return a.Total, true
	case FieldAverage:
		return a.Average, true
	case FieldCount:
		return float64(a.Count), true
	default:
		return 0, false
	}
}

// AggregateField selects one of the numeric columns of a DailyAggregate.
type AggregateField string

const (
	FieldTotal   AggregateField = "total"
	FieldAverage AggregateField = "average"
	FieldCount   AggregateField = "count"
)
