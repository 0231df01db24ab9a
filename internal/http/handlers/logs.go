package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/lifetwin-backend/internal/http/response"
	"github.com/yungbote/lifetwin-backend/internal/platform/apierr"
	"github.com/yungbote/lifetwin-backend/internal/platform/logger"
	"github.com/yungbote/lifetwin-backend/internal/services"
)

type LogHandler struct {
	log  *logger.Logger
	logs services.LogService
}

func NewLogHandler(log *logger.Logger, logs services.LogService) *LogHandler {
	return &LogHandler{log: log.With("handler", "LogHandler"), logs: logs}
}

type createLogRequest struct {
	Type      string     `json:"type"`
	Timestamp *time.Time `json:"timestamp"`
	Value     *float64   `json:"value"`
	// Meta accepts either a JSON object or a string holding one.
	Meta json.RawMessage `json:"meta"`
	Note *string         `json:"note"`
}

// POST /api/logs
func (h *LogHandler) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req createLogRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Value == nil {
		response.RespondErr(c, apierr.BadRequest("invalid_log_value", "value is required"))
		return
	}
	meta, err := metaText(req.Meta)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	entry, err := h.logs.Create(requestDBC(c), userID, services.CreateLogInput{
		Type:      req.Type,
		Timestamp: req.Timestamp,
		Value:     *req.Value,
		Meta:      meta,
		Note:      req.Note,
	})
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"log": entry})
}

// GET /api/logs?type=&date_from=&date_to=&limit=
func (h *LogHandler) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	in := services.ListLogsInput{Type: c.Query("type")}
	var err error
	if in.DateFrom, err = queryDate(c, "date_from"); err != nil {
		response.RespondErr(c, err)
		return
	}
	if in.DateTo, err = queryDate(c, "date_to"); err != nil {
		response.RespondErr(c, err)
		return
	}
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		n, convErr := strconv.Atoi(raw)
		if convErr != nil {
			response.RespondErr(c, apierr.BadRequest("invalid_limit", "limit must be an integer"))
			return
		}
		in.Limit = n
	}
	entries, err := h.logs.List(requestDBC(c), userID, in)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"logs": entries})
}

// DELETE /api/logs/:id
func (h *LogHandler) Delete(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "invalid_log_id")
	if !ok {
		return
	}
	if err := h.logs.Delete(requestDBC(c), userID, id); err != nil {
		response.RespondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func metaText(raw json.RawMessage) (*string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, apierr.BadRequest("invalid_meta", "meta must be an object or a string")
		}
		if strings.TrimSpace(s) == "" {
			return nil, nil
		}
		return &s, nil
	case '{':
		s := string(raw)
		return &s, nil
	default:
		return nil, apierr.BadRequest("invalid_meta", "meta must be an object or a string")
	}
}
