package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/lifetwin-backend/internal/domain/lifelog"
	"github.com/yungbote/lifetwin-backend/internal/http/response"
	"github.com/yungbote/lifetwin-backend/internal/modules/lifetwin/simulation"
	"github.com/yungbote/lifetwin-backend/internal/platform/apierr"
	"github.com/yungbote/lifetwin-backend/internal/platform/ctxutil"
	"github.com/yungbote/lifetwin-backend/internal/platform/dbctx"
)

// defaultRangeDays is the listing window used when date_from is omitted.
const defaultRangeDays = 30

// requireUser writes a 401 and returns false when the request carries no caller.
func requireUser(c *gin.Context) (uuid.UUID, bool) {
	userID := ctxutil.UserID(c.Request.Context())
	if userID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return uuid.Nil, false
	}
	return userID, true
}

func requestDBC(c *gin.Context) dbctx.Context {
	return dbctx.Context{Ctx: c.Request.Context()}
}

func parseIDParam(c *gin.Context, name, code string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param(name)))
	if err != nil || id == uuid.Nil {
		response.RespondErr(c, apierr.BadRequest(code, "%s must be a uuid", name))
		return uuid.Nil, false
	}
	return id, true
}

// queryDate reads an optional YYYY-MM-DD query parameter.
func queryDate(c *gin.Context, name string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	d, err := lifelog.ParseDate(raw)
	if err != nil {
		return nil, apierr.BadRequest("invalid_date", "%s must be YYYY-MM-DD", name)
	}
	return &d, nil
}

// queryDateOr falls back to def when the parameter is absent.
func queryDateOr(c *gin.Context, name string, def time.Time) (time.Time, error) {
	d, err := queryDate(c, name)
	if err != nil {
		return time.Time{}, err
	}
	if d == nil {
		return def, nil
	}
	return *d, nil
}

// queryRange reads date_from/date_to, defaulting to the last 30 days ending today.
func queryRange(c *gin.Context, today time.Time) (time.Time, time.Time, error) {
	to, err := queryDateOr(c, "date_to", today)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	from, err := queryDateOr(c, "date_from", lifelog.WindowStart(today, defaultRangeDays))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return false
	}
	return true
}

// changesInput is a raw what-if changes object. Unknown variables are dropped before
// their values are read, so only known ones must be numbers.
type changesInput map[string]json.RawMessage

func (in changesInput) parse() (map[string]float64, error) {
	out := make(map[string]float64, len(in))
	for name, raw := range in {
		if !simulation.Known(name) {
			continue
		}
		var v float64
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, apierr.BadRequest("invalid_changes", "changes.%s must be a number", name)
		}
		out[name] = v
	}
	return out, nil
}
