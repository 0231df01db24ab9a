package lifelog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/lifetwin-backend/internal/domain/user"
)

// LifeScore holds the four bounded [0,100] scores of one user on one day.
type LifeScore struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_life_score_user_date,priority:1" json:"user_id"`
	User         *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	Date         time.Time  `gorm:"type:date;not null;uniqueIndex:idx_life_score_user_date,priority:2" json:"date"`
	Energy       float64    `gorm:"not null;default:0" json:"energy"`
	Mental       float64    `gorm:"not null;default:0" json:"mental"`
	Focus        float64    `gorm:"not null;default:0" json:"focus"`
	GoalProgress float64    `gorm:"not null;default:0" json:"goal_progress"`
	ComputedAt   time.Time  `gorm:"not null" json:"computed_at"`
}

func (LifeScore) TableName() string { return "life_score" }

func (s *LifeScore) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Snapshot returns the four scores as a value object.
func (s *LifeScore) Snapshot() ScoreSnapshot {
	if s == nil {
		return ScoreSnapshot{}
	}
	return ScoreSnapshot{
		Energy:       s.Energy,
		Mental:       s.Mental,
		Focus:        s.Focus,
		GoalProgress: s.GoalProgress,
	}
}

// ScoreName identifies one of the four life scores.
type ScoreName string

const (
	ScoreEnergy       ScoreName = "energy"
	ScoreMental       ScoreName = "mental"
	ScoreFocus        ScoreName = "focus"
	ScoreGoalProgress ScoreName = "goal_progress"
)

// ScoreNames is the canonical order of the four scores.
var ScoreNames = []ScoreName{ScoreEnergy, ScoreMental, ScoreFocus, ScoreGoalProgress}

// ScoreSnapshot is an ephemeral baseline/projection/delta of the four scores.
type ScoreSnapshot struct {
	Energy       float64 `json:"energy"`
	Mental       float64 `json:"mental"`
	Focus        float64 `json:"focus"`
	GoalProgress float64 `json:"goal_progress"`
}

func (s ScoreSnapshot) Get(name ScoreName) float64 {
	switch name {
	case ScoreEnergy:
		return s.Energy
	case ScoreMental:
		return s.Mental
	case ScoreFocus:
		return s.Focus
	case ScoreGoalProgress:
		return s.GoalProgress
	}
	return 0
}

func (s *ScoreSnapshot) Set(name ScoreName, v float64) {
	switch name {
	case ScoreEnergy:
		s.Energy = v
	case ScoreMental:
		s.Mental = v
	case ScoreFocus:
		s.Focus = v
	case ScoreGoalProgress:
		s.GoalProgress = v
	}
}

// Map applies fn to every field.
func (s ScoreSnapshot) Map(fn func(float64) float64) ScoreSnapshot {
	return ScoreSnapshot{
		Energy:       fn(s.Energy),
		Mental:       fn(s.Mental),
		Focus:        fn(s.Focus),
		GoalProgress: fn(s.GoalProgress),
	}
}

// NeutralSnapshot is used when no score history exists.
func NeutralSnapshot() ScoreSnapshot {
	return ScoreSnapshot{Energy: 50, Mental: 50, Focus: 50, GoalProgress: 50}
}
