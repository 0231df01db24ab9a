package services

import (
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/lifetwin-backend/internal/data/repos"
	"github.com/yungbote/lifetwin-backend/internal/data/txrunner"
	types "github.com/yungbote/lifetwin-backend/internal/domain"
	"github.com/yungbote/lifetwin-backend/internal/domain/lifelog"
	"github.com/yungbote/lifetwin-backend/internal/modules/lifetwin/aggregate"
	"github.com/yungbote/lifetwin-backend/internal/platform/apierr"
	"github.com/yungbote/lifetwin-backend/internal/platform/dbctx"
	"github.com/yungbote/lifetwin-backend/internal/platform/logger"
)

type AggregateService interface {
	// BuildDaily recomputes every aggregate of userID on date from the raw logs.
	// Runs inside dbc.Tx when set, otherwise in its own transaction.
	BuildDaily(dbc dbctx.Context, userID uuid.UUID, date time.Time) ([]*types.DailyAggregate, error)
	GetRange(dbc dbctx.Context, userID uuid.UUID, from, to time.Time) ([]*types.DailyAggregate, error)
}

type aggregateService struct {
	tx      txrunner.TxRunner
	log     *logger.Logger
	logRepo repos.LogEntryRepo
	aggRepo repos.DailyAggregateRepo
	clock   Clock
}

func NewAggregateService(db *gorm.DB, log *logger.Logger, logRepo repos.LogEntryRepo, aggRepo repos.DailyAggregateRepo, clock Clock) AggregateService {
	return &aggregateService{
		tx:      txrunner.NewGormTxRunner(db),
		log:     log.With("service", "AggregateService"),
		logRepo: logRepo,
		aggRepo: aggRepo,
		clock:   clock,
	}
}

func (s *aggregateService) BuildDaily(dbc dbctx.Context, userID uuid.UUID, date time.Time) ([]*types.DailyAggregate, error) {
	date = lifelog.DateOf(date, time.UTC)
	ctx, span := startSpan(dbc.Ctx, "aggregate.build_daily", attribute.String("date", date.Format(lifelog.DateLayout)))
	dbc.Ctx = ctx

	var out []*types.DailyAggregate
	err := s.tx.InTx(dbc, func(inner dbctx.Context) error {
		var buildErr error
		out, buildErr = s.build(inner, userID, date)
		return buildErr
	})
	endSpan(span, err)
	if err != nil {
		s.log.Error("build daily aggregates failed", "user_id", userID, "date", date.Format(lifelog.DateLayout), "error", err)
		return nil, err
	}
	return out, nil
}

func (s *aggregateService) build(dbc dbctx.Context, userID uuid.UUID, date time.Time) ([]*types.DailyAggregate, error) {
	start, end := lifelog.DayBounds(date, s.clock.loc())
	entries, err := s.logRepo.ListBetween(dbc, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("load log entries: %w", err)
	}
	existing, err := s.aggRepo.GetByDate(dbc, userID, date)
	if err != nil {
		return nil, fmt.Errorf("load existing aggregates: %w", err)
	}
	current := make(map[types.ActivityType]*types.DailyAggregate, len(existing))
	for _, a := range existing {
		current[a.Type] = a
	}

	groups := aggregate.GroupByType(entries)
	keep := make([]types.ActivityType, 0, len(groups))
	changed := make([]*types.DailyAggregate, 0, len(groups))
	computedAt := s.clock.now()
	for _, g := range groups {
		keep = append(keep, g.Type)
		stats := aggregate.ComputeStats(g.Entries)
		raw, err := json.Marshal(aggregate.Summarize(g.Type, g.Entries))
		if err != nil {
			return nil, fmt.Errorf("encode %s summary: %w", g.Type, err)
		}
		next := &types.DailyAggregate{
			UserID:      userID,
			Date:        date,
			Type:        g.Type,
			Total:       stats.Total,
			Average:     stats.Average,
			Count:       stats.Count,
			MetaSummary: datatypes.JSON(raw),
			ComputedAt:  computedAt,
		}
		if sameAggregate(current[g.Type], next) {
			continue
		}
		changed = append(changed, next)
	}

	if err := s.aggRepo.DeleteStale(dbc, userID, date, keep); err != nil {
		return nil, fmt.Errorf("delete stale aggregates: %w", err)
	}
	if err := s.aggRepo.Upsert(dbc, changed); err != nil {
		return nil, fmt.Errorf("upsert aggregates: %w", err)
	}
	s.log.Debug("daily aggregates built", "user_id", userID, "date", date.Format(lifelog.DateLayout), "types", len(keep), "changed", len(changed))
	return s.aggRepo.GetByDate(dbc, userID, date)
}

// sameAggregate reports whether prev already holds next's values. Unchanged rows are
// left alone so a rebuild without new logs writes nothing.
func sameAggregate(prev, next *types.DailyAggregate) bool {
	if prev == nil || next == nil {
		return false
	}
	if prev.Total != next.Total || prev.Average != next.Average || prev.Count != next.Count {
		return false
	}
	return reflect.DeepEqual(prev.Summary(), next.Summary())
}

func (s *aggregateService) GetRange(dbc dbctx.Context, userID uuid.UUID, from, to time.Time) ([]*types.DailyAggregate, error) {
	from, to = lifelog.DateOf(from, time.UTC), lifelog.DateOf(to, time.UTC)
	if to.Before(from) {
		return nil, apierr.BadRequest("invalid_date_range", "date_from must not be after date_to")
	}
	aggs, err := s.aggRepo.GetRange(dbc, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("load aggregates: %w", err)
	}
	return aggs, nil
}
