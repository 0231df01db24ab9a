package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/lifetwin-backend/internal/domain/planning"
	"github.com/yungbote/lifetwin-backend/internal/http/response"
	"github.com/yungbote/lifetwin-backend/internal/modules/lifetwin/plan"
	"github.com/yungbote/lifetwin-backend/internal/platform/logger"
	"github.com/yungbote/lifetwin-backend/internal/services"
)

type PlanHandler struct {
	log  *logger.Logger
	plan services.PlanService
}

func NewPlanHandler(log *logger.Logger, plan services.PlanService) *PlanHandler {
	return &PlanHandler{log: log.With("handler", "PlanHandler"), plan: plan}
}

type createDraftRequest struct {
	PlanName    string                `json:"plan_name"`
	Changes     changesInput          `json:"changes"`
	HorizonDays int                   `json:"horizon_days"`
	Preferences plan.Preferences      `json:"preferences"`
	Events      []planning.DraftEvent `json:"events"`
}

type updateDraftRequest struct {
	Events []planning.DraftEvent `json:"events"`
}

// POST /api/plan/drafts
func (h *PlanHandler) CreateDraft(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req createDraftRequest
	if !bindJSON(c, &req) {
		return
	}
	changes, err := req.Changes.parse()
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	draft, err := h.plan.CreateDraft(requestDBC(c), userID, services.CreateDraftInput{
		PlanName:    req.PlanName,
		Changes:     changes,
		HorizonDays: req.HorizonDays,
		Preferences: req.Preferences,
		Events:      req.Events,
	})
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"draft": draft})
}

// GET /api/plan/drafts
func (h *PlanHandler) ListDrafts(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	drafts, err := h.plan.ListDrafts(requestDBC(c), userID)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"drafts": drafts})
}

// GET /api/plan/drafts/:id
func (h *PlanHandler) GetDraft(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "invalid_draft_id")
	if !ok {
		return
	}
	draft, err := h.plan.GetDraft(requestDBC(c), userID, id)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"draft": draft})
}

// PUT /api/plan/drafts/:id
// body: { "events": [ { "title", "category", "start_at", "end_at", "note", "status" } ] }
func (h *PlanHandler) UpdateDraft(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "invalid_draft_id")
	if !ok {
		return
	}
	var req updateDraftRequest
	if !bindJSON(c, &req) {
		return
	}
	draft, err := h.plan.ReplaceEvents(requestDBC(c), userID, id, req.Events)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"draft": draft})
}

// POST /api/plan/drafts/:id/apply
func (h *PlanHandler) ApplyDraft(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "invalid_draft_id")
	if !ok {
		return
	}
	res, err := h.plan.ApplyDraft(requestDBC(c), userID, id)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, res)
}
