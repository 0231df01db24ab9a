package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/lifetwin-backend/internal/domain/lifelog"
	"github.com/yungbote/lifetwin-backend/internal/http/response"
	"github.com/yungbote/lifetwin-backend/internal/platform/logger"
	"github.com/yungbote/lifetwin-backend/internal/services"
)

type LifeScoreHandler struct {
	log        *logger.Logger
	scores     services.LifeScoreService
	aggregates services.AggregateService
	clock      services.Clock
}

func NewLifeScoreHandler(log *logger.Logger, scores services.LifeScoreService, aggregates services.AggregateService, clock services.Clock) *LifeScoreHandler {
	return &LifeScoreHandler{
		log:        log.With("handler", "LifeScoreHandler"),
		scores:     scores,
		aggregates: aggregates,
		clock:      clock,
	}
}

// GET /api/life-scores/today
func (h *LifeScoreHandler) Today(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	score, err := h.scores.Compute(requestDBC(c), userID, h.clock.Today())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"score": score})
}

// POST /api/life-scores/compute?target_date=YYYY-MM-DD
func (h *LifeScoreHandler) Compute(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	date, err := queryDateOr(c, "target_date", h.clock.Today())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	score, err := h.scores.Compute(requestDBC(c), userID, date)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"score": score})
}

// GET /api/life-scores?date_from=&date_to=
func (h *LifeScoreHandler) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	from, to, err := queryRange(c, h.clock.Today())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	scores, err := h.scores.GetRange(requestDBC(c), userID, from, to)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"scores": scores})
}

// GET /api/life-scores/aggregates?date_from=&date_to=
func (h *LifeScoreHandler) Aggregates(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	from, to, err := queryRange(c, h.clock.Today())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	aggs, err := h.aggregates.GetRange(requestDBC(c), userID, from, to)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"aggregates": aggs})
}

// GET /api/life-scores/baseline
func (h *LifeScoreHandler) Baseline(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	today := h.clock.Today()
	snap, err := h.scores.Baseline(requestDBC(c), userID, today, services.BaselineWindowDays)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"baseline":    snap,
		"as_of":       today.Format(lifelog.DateLayout),
		"window_days": services.BaselineWindowDays,
	})
}
