package app

import (
	"gorm.io/gorm"

	httpserver "github.com/yungbote/lifetwin-backend/internal/http"
	httpH "github.com/yungbote/lifetwin-backend/internal/http/handlers"
	httpMW "github.com/yungbote/lifetwin-backend/internal/http/middleware"
	"github.com/yungbote/lifetwin-backend/internal/observability"
	"github.com/yungbote/lifetwin-backend/internal/platform/logger"
)

const serviceName = "lifetwin"

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health     *httpH.HealthHandler
	Logs       *httpH.LogHandler
	LifeScores *httpH.LifeScoreHandler
	Twinny     *httpH.TwinnyHandler
	Simulation *httpH.SimulationHandler
	Plan       *httpH.PlanHandler
}

func wireHandlers(log *logger.Logger, db *gorm.DB, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:     httpH.NewHealthHandler(db),
		Logs:       httpH.NewLogHandler(log, services.Logs),
		LifeScores: httpH.NewLifeScoreHandler(log, services.Scores, services.Aggregates, services.Clock),
		Twinny:     httpH.NewTwinnyHandler(log, services.Twinny, services.Clock),
		Simulation: httpH.NewSimulationHandler(log, services.Simulation),
		Plan:       httpH.NewPlanHandler(log, services.Plan),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
}

func wireServer(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers, middleware Middleware) *httpserver.Server {
	return httpserver.NewServer(httpserver.RouterConfig{
		Log:               log,
		ServiceName:       serviceName,
		CORSOrigins:       cfg.CORSOrigins,
		Metrics:           metrics,
		AuthMiddleware:    middleware.Auth,
		HealthHandler:     handlers.Health,
		LogHandler:        handlers.Logs,
		LifeScoreHandler:  handlers.LifeScores,
		TwinnyHandler:     handlers.Twinny,
		SimulationHandler: handlers.Simulation,
		PlanHandler:       handlers.Plan,
	})
}
