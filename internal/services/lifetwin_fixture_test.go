package services

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/lifetwin-backend/internal/data/repos"
	"github.com/yungbote/lifetwin-backend/internal/data/repos/testutil"
	types "github.com/yungbote/lifetwin-backend/internal/domain"
	"github.com/yungbote/lifetwin-backend/internal/modules/lifetwin/scoring"
	"github.com/yungbote/lifetwin-backend/internal/modules/lifetwin/twinny"
	"github.com/yungbote/lifetwin-backend/internal/platform/dbctx"
)

// 2026-10-19 is a Monday.
var fixedNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

type lifetwinFixture struct {
	db     *gorm.DB
	seed   dbctx.Context
	user   *types.User
	clock  Clock
	today  time.Time
	logs   LogService
	aggs   AggregateService
	scores LifeScoreService
	twinny TwinnyService
	sim    SimulationService
	plans  PlanService

	aggRepo   repos.DailyAggregateRepo
	scoreRepo repos.LifeScoreRepo
	taskRepo  repos.TaskRepo
}

func newLifetwinFixture(t *testing.T) *lifetwinFixture {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	clock := Clock{Now: func() time.Time { return fixedNow }, Location: time.UTC}

	logRepo := repos.NewLogEntryRepo(db, log)
	aggRepo := repos.NewDailyAggregateRepo(db, log)
	scoreRepo := repos.NewLifeScoreRepo(db, log)
	draftRepo := repos.NewScheduleDraftRepo(db, log)
	taskRepo := repos.NewTaskRepo(db, log)

	aggSvc := NewAggregateService(db, log, logRepo, aggRepo, clock)
	scoreSvc := NewLifeScoreService(db, log, aggSvc, aggRepo, scoreRepo, scoring.FallbackTable(), clock)

	seed := testutil.Ctx(t, db)
	return &lifetwinFixture{
		db:        db,
		seed:      seed,
		user:      testutil.SeedUser(t, seed, "twin@example.com"),
		clock:     clock,
		today:     testutil.Day(t, "2026-10-19"),
		logs:      NewLogService(db, log, logRepo, clock),
		aggs:      aggSvc,
		scores:    scoreSvc,
		twinny:    NewTwinnyService(db, log, scoreSvc, aggRepo, scoreRepo, twinny.RuleNarrator{}),
		sim:       NewSimulationService(log, scoreSvc, clock),
		plans:     NewPlanService(db, log, draftRepo, taskRepo, clock),
		aggRepo:   aggRepo,
		scoreRepo: scoreRepo,
		taskRepo:  taskRepo,
	}
}

// ctx is a plain request context; services open their own transactions.
func (f *lifetwinFixture) ctx() dbctx.Context {
	return dbctx.Context{Ctx: context.Background()}
}

func (f *lifetwinFixture) seedLog(t *testing.T, typ types.ActivityType, day string, hour int, value float64, meta string) *types.LogEntry {
	t.Helper()
	ts := testutil.Day(t, day).Add(time.Duration(hour) * time.Hour)
	return testutil.SeedLog(t, f.seed, f.user.ID, typ, ts, value, meta)
}

func (f *lifetwinFixture) count(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	if err := f.db.Model(model).Where("user_id = ?", f.user.ID).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}
