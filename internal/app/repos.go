package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/lifetwin-backend/internal/data/repos"
	"github.com/yungbote/lifetwin-backend/internal/platform/logger"
)

type Repos struct {
	User           repos.UserRepo
	LogEntry       repos.LogEntryRepo
	DailyAggregate repos.DailyAggregateRepo
	LifeScore      repos.LifeScoreRepo
	ScheduleDraft  repos.ScheduleDraftRepo
	Task           repos.TaskRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:           repos.NewUserRepo(db, log),
		LogEntry:       repos.NewLogEntryRepo(db, log),
		DailyAggregate: repos.NewDailyAggregateRepo(db, log),
		LifeScore:      repos.NewLifeScoreRepo(db, log),
		ScheduleDraft:  repos.NewScheduleDraftRepo(db, log),
		Task:           repos.NewTaskRepo(db, log),
	}
}
