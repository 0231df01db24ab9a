package domain

import (
	"github.com/yungbote/lifetwin-backend/internal/domain/lifelog"
	"github.com/yungbote/lifetwin-backend/internal/domain/planning"
	"github.com/yungbote/lifetwin-backend/internal/domain/user"
)

type User = user.User

type ActivityType = lifelog.ActivityType
type LogEntry = lifelog.LogEntry
type DailyAggregate = lifelog.DailyAggregate
type LifeScore = lifelog.LifeScore
type ScoreSnapshot = lifelog.ScoreSnapshot
type ScoreName = lifelog.ScoreName

type ScheduleDraft = planning.ScheduleDraft
type DraftEvent = planning.DraftEvent
type Task = planning.Task

const (
	ActivitySleep  = lifelog.ActivitySleep
	ActivityStudy  = lifelog.ActivityStudy
	ActivityHealth = lifelog.ActivityHealth
	ActivitySpend  = lifelog.ActivitySpend
	ActivityMood   = lifelog.ActivityMood
)

// Models lists every persisted model in migration order.
func Models() []any {
	return []any{
		&User{},
		&LogEntry{},
		&DailyAggregate{},
		&LifeScore{},
		&ScheduleDraft{},
		&Task{},
	}
}
