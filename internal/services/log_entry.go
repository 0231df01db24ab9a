package services

import (
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/lifetwin-backend/internal/data/repos"
	types "github.com/yungbote/lifetwin-backend/internal/domain"
	"github.com/yungbote/lifetwin-backend/internal/domain/lifelog"
	"github.com/yungbote/lifetwin-backend/internal/platform/apierr"
	"github.com/yungbote/lifetwin-backend/internal/platform/dbctx"
	"github.com/yungbote/lifetwin-backend/internal/platform/logger"
)

const (
	maxNoteLength   = 500
	defaultLogLimit = 100
	maxLogLimit     = 500
)

type CreateLogInput struct {
	Type      string
	Timestamp *time.Time
	Value     float64
	Meta      *string
	Note      *string
}

// ListLogsInput filters a listing. DateFrom/DateTo are calendar days, both inclusive.
type ListLogsInput struct {
	Type     string
	DateFrom *time.Time
	DateTo   *time.Time
	Limit    int
}

type LogService interface {
	Create(dbc dbctx.Context, userID uuid.UUID, in CreateLogInput) (*types.LogEntry, error)
	List(dbc dbctx.Context, userID uuid.UUID, in ListLogsInput) ([]*types.LogEntry, error)
	Delete(dbc dbctx.Context, userID, id uuid.UUID) error
}

type logService struct {
	db      *gorm.DB
	log     *logger.Logger
	logRepo repos.LogEntryRepo
	clock   Clock
}

func NewLogService(db *gorm.DB, log *logger.Logger, logRepo repos.LogEntryRepo, clock Clock) LogService {
	return &logService{
		db:      db,
		log:     log.With("service", "LogService"),
		logRepo: logRepo,
		clock:   clock,
	}
}

func (s *logService) Create(dbc dbctx.Context, userID uuid.UUID, in CreateLogInput) (*types.LogEntry, error) {
	typ, ok := lifelog.ParseActivityType(in.Type)
	if !ok {
		return nil, apierr.BadRequest("invalid_log_type", "type must be one of sleep, study, health, spend, mood")
	}
	if math.IsNaN(in.Value) || math.IsInf(in.Value, 0) {
		return nil, apierr.BadRequest("invalid_log_value", "value must be a finite number")
	}
	if in.Note != nil && utf8.RuneCountInString(*in.Note) > maxNoteLength {
		return nil, apierr.BadRequest("note_too_long", "note must be at most %d characters", maxNoteLength)
	}
	ts := s.clock.now()
	if in.Timestamp != nil && !in.Timestamp.IsZero() {
		ts = in.Timestamp.UTC()
	}
	entry := &types.LogEntry{
		UserID:    userID,
		Type:      typ,
		Timestamp: ts,
		Value:     in.Value,
		Meta:      in.Meta,
		Note:      in.Note,
	}
	created, err := s.logRepo.Create(dbc, []*types.LogEntry{entry})
	if err != nil {
		s.log.Error("create log entry failed", "user_id", userID, "error", err)
		return nil, fmt.Errorf("create log entry: %w", err)
	}
	return created[0], nil
}

func (s *logService) List(dbc dbctx.Context, userID uuid.UUID, in ListLogsInput) ([]*types.LogEntry, error) {
	filter := repos.LogFilter{Limit: defaultLogLimit}
	if strings.TrimSpace(in.Type) != "" {
		typ, ok := lifelog.ParseActivityType(in.Type)
		if !ok {
			return nil, apierr.BadRequest("invalid_log_type", "unknown log type %q", in.Type)
		}
		filter.Type = typ
	}
	switch {
	case in.Limit > maxLogLimit:
		return nil, apierr.BadRequest("invalid_limit", "limit must be at most %d", maxLogLimit)
	case in.Limit < 0:
		return nil, apierr.BadRequest("invalid_limit", "limit must be positive")
	case in.Limit > 0:
		filter.Limit = in.Limit
	}
	if in.DateFrom != nil {
		filter.From, _ = lifelog.DayBounds(*in.DateFrom, s.clock.loc())
	}
	if in.DateTo != nil {
		_, filter.To = lifelog.DayBounds(*in.DateTo, s.clock.loc())
	}
	entries, err := s.logRepo.List(dbc, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("list log entries: %w", err)
	}
	return entries, nil
}

func (s *logService) Delete(dbc dbctx.Context, userID, id uuid.UUID) error {
	deleted, err := s.logRepo.Delete(dbc, userID, id)
	if err != nil {
		return fmt.Errorf("delete log entry: %w", err)
	}
	if !deleted {
		return apierr.New(http.StatusNotFound, "log_not_found", fmt.Errorf("log entry not found"))
	}
	return nil
}
