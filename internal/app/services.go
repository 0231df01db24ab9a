package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/lifetwin-backend/internal/modules/lifetwin/scoring"
	"github.com/yungbote/lifetwin-backend/internal/platform/logger"
	"github.com/yungbote/lifetwin-backend/internal/services"
)

type Services struct {
	Clock services.Clock

	Auth services.AuthService

	Logs       services.LogService
	Aggregates services.AggregateService
	Scores     services.LifeScoreService
	Twinny     services.TwinnyService
	Simulation services.SimulationService
	Plan       services.PlanService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients) Services {
	log.Info("Wiring services...")

	clock := services.NewClock(cfg.Location)
	table := scoring.LoadTable(cfg.ScoreConfigPath, log)

	aggregates := services.NewAggregateService(db, log, repos.LogEntry, repos.DailyAggregate, clock)
	scores := services.NewLifeScoreService(db, log, aggregates, repos.DailyAggregate, repos.LifeScore, table, clock)

	return Services{
		Clock:      clock,
		Auth:       services.NewAuthService(db, log, repos.User, cfg.JWTSecretKey, cfg.AccessTokenTTL),
		Logs:       services.NewLogService(db, log, repos.LogEntry, clock),
		Aggregates: aggregates,
		Scores:     scores,
		Twinny:     services.NewTwinnyService(db, log, scores, repos.DailyAggregate, repos.LifeScore, clients.Narrator),
		Simulation: services.NewSimulationService(log, scores, clock),
		Plan:       services.NewPlanService(db, log, repos.ScheduleDraft, repos.Task, clock),
	}
}
