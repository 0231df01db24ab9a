package repos

import (
	"github.com/yungbote/lifetwin-backend/internal/data/repos/lifelog"
	"github.com/yungbote/lifetwin-backend/internal/data/repos/planning"
	"github.com/yungbote/lifetwin-backend/internal/data/repos/user"
)

type UserRepo = user.UserRepo

type LogEntryRepo = lifelog.LogEntryRepo
type LogFilter = lifelog.LogFilter
type DailyAggregateRepo = lifelog.DailyAggregateRepo
type LifeScoreRepo = lifelog.LifeScoreRepo

type ScheduleDraftRepo = planning.ScheduleDraftRepo
type TaskRepo = planning.TaskRepo

var (
	NewUserRepo           = user.NewUserRepo
	NewLogEntryRepo       = lifelog.NewLogEntryRepo
	NewDailyAggregateRepo = lifelog.NewDailyAggregateRepo
	NewLifeScoreRepo      = lifelog.NewLifeScoreRepo
	NewScheduleDraftRepo  = planning.NewScheduleDraftRepo
	NewTaskRepo           = planning.NewTaskRepo
)
