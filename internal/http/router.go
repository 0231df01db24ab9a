package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/lifetwin-backend/internal/http/handlers"
	httpMW "github.com/yungbote/lifetwin-backend/internal/http/middleware"
	"github.com/yungbote/lifetwin-backend/internal/observability"
	"github.com/yungbote/lifetwin-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	ServiceName string
	CORSOrigins []string
	Metrics     *observability.Metrics

	AuthMiddleware *httpMW.AuthMiddleware

	LogHandler        *httpH.LogHandler
	LifeScoreHandler  *httpH.LifeScoreHandler
	TwinnyHandler     *httpH.TwinnyHandler
	SimulationHandler *httpH.SimulationHandler
	PlanHandler       *httpH.PlanHandler

	HealthHandler *httpH.HealthHandler
}

const healthPath = "/healthcheck"

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.RequestIDs())
	r.Use(httpMW.RequestLogger(cfg.Log, healthPath))
	r.Use(httpMW.Metrics(cfg.Metrics, healthPath))
	r.Use(httpMW.CORS(cfg.CORSOrigins))
	r.Use(gin.Recovery())

	// Health
	if cfg.HealthHandler != nil {
		r.GET(healthPath, cfg.HealthHandler.HealthCheck)
	}

	protected := r.Group("/api")
	{
		// Middleware
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Logs
		if cfg.LogHandler != nil {
			protected.POST("/logs", cfg.LogHandler.Create)
			protected.GET("/logs", cfg.LogHandler.List)
			protected.DELETE("/logs/:id", cfg.LogHandler.Delete)
		}

		// Life scores
		if cfg.LifeScoreHandler != nil {
			protected.GET("/life-scores", cfg.LifeScoreHandler.List)
			protected.GET("/life-scores/today", cfg.LifeScoreHandler.Today)
			protected.POST("/life-scores/compute", cfg.LifeScoreHandler.Compute)
			protected.GET("/life-scores/aggregates", cfg.LifeScoreHandler.Aggregates)
			protected.GET("/life-scores/baseline", cfg.LifeScoreHandler.Baseline)
		}

		// Twinny
		if cfg.TwinnyHandler != nil {
			protected.GET("/twinny/summary", cfg.TwinnyHandler.Summary)
		}

		// Simulation
		if cfg.SimulationHandler != nil {
			protected.POST("/simulation/what-if", cfg.SimulationHandler.WhatIf)
		}

		// Plan drafts
		if cfg.PlanHandler != nil {
			protected.POST("/plan/drafts", cfg.PlanHandler.CreateDraft)
			protected.GET("/plan/drafts", cfg.PlanHandler.ListDrafts)
			protected.GET("/plan/drafts/:id", cfg.PlanHandler.GetDraft)
			protected.PUT("/plan/drafts/:id", cfg.PlanHandler.UpdateDraft)
			protected.POST("/plan/drafts/:id/apply", cfg.PlanHandler.ApplyDraft)
		}
	}

	return r
}
