package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/lifetwin-backend/internal/http/response"
	"github.com/yungbote/lifetwin-backend/internal/platform/logger"
	"github.com/yungbote/lifetwin-backend/internal/services"
)

type TwinnyHandler struct {
	log    *logger.Logger
	twinny services.TwinnyService
	clock  services.Clock
}

func NewTwinnyHandler(log *logger.Logger, twinny services.TwinnyService, clock services.Clock) *TwinnyHandler {
	return &TwinnyHandler{log: log.With("handler", "TwinnyHandler"), twinny: twinny, clock: clock}
}

// GET /api/twinny/summary?target_date=YYYY-MM-DD
func (h *TwinnyHandler) Summary(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	date, err := queryDateOr(c, "target_date", h.clock.Today())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	summary, err := h.twinny.GetSummary(requestDBC(c), userID, date)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, summary)
}
