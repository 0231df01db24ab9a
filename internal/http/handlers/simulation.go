package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/lifetwin-backend/internal/http/response"
	"github.com/yungbote/lifetwin-backend/internal/platform/logger"
	"github.com/yungbote/lifetwin-backend/internal/services"
)

type SimulationHandler struct {
	log *logger.Logger
	sim services.SimulationService
}

func NewSimulationHandler(log *logger.Logger, sim services.SimulationService) *SimulationHandler {
	return &SimulationHandler{log: log.With("handler", "SimulationHandler"), sim: sim}
}

type whatIfRequest struct {
	Changes     changesInput `json:"changes"`
	HorizonDays int          `json:"horizon_days"`
}

// POST /api/simulation/what-if
// body: { "changes": { "sleep_hours": 1.5 }, "horizon_days": 7 }
func (h *SimulationHandler) WhatIf(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req whatIfRequest
	if !bindJSON(c, &req) {
		return
	}
	changes, err := req.Changes.parse()
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	res, err := h.sim.RunWhatIf(requestDBC(c), userID, changes, req.HorizonDays)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, res)
}
