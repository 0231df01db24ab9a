package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/lifetwin-backend/internal/domain"
	"github.com/yungbote/lifetwin-backend/internal/domain/lifelog"
	"github.com/yungbote/lifetwin-backend/internal/platform/dbctx"
)

func SeedUser(tb testing.TB, dbc dbctx.Context, email string) *types.User {
	tb.Helper()
	u := &types.User{ID: uuid.New(), Email: email, Nickname: "tester"}
	if err := dbc.DB(mustTx(tb, dbc)).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

// SeedLog inserts one raw log entry; meta may be empty.
func SeedLog(tb testing.TB, dbc dbctx.Context, userID uuid.UUID, typ types.ActivityType, ts time.Time, value float64, meta string) *types.LogEntry {
	tb.Helper()
	e := &types.LogEntry{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      typ,
		Timestamp: ts.UTC(),
		Value:     value,
	}
	if meta != "" {
		e.Meta = &meta
	}
	if err := dbc.DB(mustTx(tb, dbc)).Create(e).Error; err != nil {
		tb.Fatalf("seed log entry: %v", err)
	}
	return e
}

// SeedScore inserts a life score row for date.
func SeedScore(tb testing.TB, dbc dbctx.Context, userID uuid.UUID, date time.Time, s types.ScoreSnapshot) *types.LifeScore {
	tb.Helper()
	row := &types.LifeScore{
		ID:           uuid.New(),
		UserID:       userID,
		Date:         date,
		Energy:       s.Energy,
		Mental:       s.Mental,
		Focus:        s.Focus,
		GoalProgress: s.GoalProgress,
		ComputedAt:   time.Now().UTC(),
	}
	if err := dbc.DB(mustTx(tb, dbc)).Create(row).Error; err != nil {
		tb.Fatalf("seed life score: %v", err)
	}
	return row
}

// Day parses a YYYY-MM-DD date or fails the test.
func Day(tb testing.TB, raw string) time.Time {
	tb.Helper()
	d, err := lifelog.ParseDate(raw)
	if err != nil {
		tb.Fatalf("parse day: %v", err)
	}
	return d
}

func mustTx(tb testing.TB, dbc dbctx.Context) *gorm.DB {
	tb.Helper()
	if dbc.Tx == nil {
		tb.Fatalf("fixtures need a dbctx from testutil.Ctx")
	}
	return dbc.Tx
}
