package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/yungbote/lifetwin-backend/internal/data/repos"
	"github.com/yungbote/lifetwin-backend/internal/data/txrunner"
	types "github.com/yungbote/lifetwin-backend/internal/domain"
	"github.com/yungbote/lifetwin-backend/internal/domain/lifelog"
	"github.com/yungbote/lifetwin-backend/internal/modules/lifetwin/scoring"
	"github.com/yungbote/lifetwin-backend/internal/observability"
	"github.com/yungbote/lifetwin-backend/internal/platform/apierr"
	"github.com/yungbote/lifetwin-backend/internal/platform/dbctx"
	"github.com/yungbote/lifetwin-backend/internal/platform/logger"
)

// BaselineWindowDays is the look-back of the what-if baseline.
const BaselineWindowDays = 7

type LifeScoreService interface {
	// Compute rebuilds the day's aggregates and the four scores for date, then stores
	// them. Concurrent calls for the same user and day share one computation.
	Compute(dbc dbctx.Context, userID uuid.UUID, date time.Time) (*types.LifeScore, error)
	// Get returns the stored score for date, computing it when absent.
	Get(dbc dbctx.Context, userID uuid.UUID, date time.Time) (*types.LifeScore, error)
	GetRange(dbc dbctx.Context, userID uuid.UUID, from, to time.Time) ([]*types.LifeScore, error)
	// Baseline averages the stored scores of the windowDays days ending at asOf.
	Baseline(dbc dbctx.Context, userID uuid.UUID, asOf time.Time, windowDays int) (types.ScoreSnapshot, error)
}

type lifeScoreService struct {
	tx        txrunner.TxRunner
	log       *logger.Logger
	aggSvc    AggregateService
	aggRepo   repos.DailyAggregateRepo
	scoreRepo repos.LifeScoreRepo
	table     scoring.Table
	clock     Clock
	group     singleflight.Group
}

func NewLifeScoreService(
	db *gorm.DB,
	log *logger.Logger,
	aggSvc AggregateService,
	aggRepo repos.DailyAggregateRepo,
	scoreRepo repos.LifeScoreRepo,
	table scoring.Table,
	clock Clock,
) LifeScoreService {
	return &lifeScoreService{
		tx:        txrunner.NewGormTxRunner(db),
		log:       log.With("service", "LifeScoreService"),
		aggSvc:    aggSvc,
		aggRepo:   aggRepo,
		scoreRepo: scoreRepo,
		table:     table,
		clock:     clock,
	}
}

func (s *lifeScoreService) Compute(dbc dbctx.Context, userID uuid.UUID, date time.Time) (*types.LifeScore, error) {
	date = lifelog.DateOf(date, time.UTC)
	if dbc.Tx != nil {
		return s.compute(dbc, userID, date)
	}
	key := userID.String() + "|" + date.Format(lifelog.DateLayout)
	v, err, shared := s.group.Do(key, func() (interface{}, error) {
		start := time.Now()
		var out *types.LifeScore
		// Waiters share this call; one caller cancelling must not fail the others.
		detached := dbctx.Context{Ctx: context.WithoutCancel(ctxOrBackground(dbc.Ctx))}
		err := s.tx.InTx(detached, func(inner dbctx.Context) error {
			var computeErr error
			out, computeErr = s.compute(inner, userID, date)
			return computeErr
		})
		observability.Current().ObserveScoreCompute(err, time.Since(start))
		return out, err
	})
	if err != nil {
		s.log.Error("compute life score failed", "user_id", userID, "date", date.Format(lifelog.DateLayout), "error", err)
		return nil, err
	}
	if shared {
		s.log.Debug("life score computation shared", "user_id", userID, "date", date.Format(lifelog.DateLayout))
	}
	row := *v.(*types.LifeScore)
	return &row, nil
}

func ctxOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

func (s *lifeScoreService) compute(dbc dbctx.Context, userID uuid.UUID, date time.Time) (out *types.LifeScore, err error) {
	ctx, span := startSpan(dbc.Ctx, "life_score.compute", attribute.String("date", date.Format(lifelog.DateLayout)))
	defer func() { endSpan(span, err) }()
	dbc.Ctx = ctx

	if _, err := s.aggSvc.BuildDaily(dbc, userID, date); err != nil {
		return nil, fmt.Errorf("build aggregates: %w", err)
	}
	aggs, err := s.aggRepo.GetRange(dbc, userID, lifelog.WindowStart(date, s.table.MaxWindow()), date)
	if err != nil {
		return nil, fmt.Errorf("load score window: %w", err)
	}
	snap := scoring.ComputeAll(s.table, aggs, date)

	prev, err := s.scoreRepo.GetByDate(dbc, userID, date)
	if err != nil {
		return nil, fmt.Errorf("load stored score: %w", err)
	}
	if prev != nil && prev.Snapshot() == snap {
		return prev, nil
	}
	row := &types.LifeScore{
		UserID:       userID,
		Date:         date,
		Energy:       snap.Energy,
		Mental:       snap.Mental,
		Focus:        snap.Focus,
		GoalProgress: snap.GoalProgress,
		ComputedAt:   s.clock.now(),
	}
	if err := s.scoreRepo.Upsert(dbc, row); err != nil {
		return nil, fmt.Errorf("store life score: %w", err)
	}
	out, err = s.scoreRepo.GetByDate(dbc, userID, date)
	if err != nil {
		return nil, fmt.Errorf("reload life score: %w", err)
	}
	if out == nil {
		return nil, fmt.Errorf("life score for %s vanished after upsert", date.Format(lifelog.DateLayout))
	}
	s.log.Debug("life score computed", "user_id", userID, "date", date.Format(lifelog.DateLayout),
		"energy", out.Energy, "mental", out.Mental, "focus", out.Focus, "goal_progress", out.GoalProgress)
	return out, nil
}

func (s *lifeScoreService) Get(dbc dbctx.Context, userID uuid.UUID, date time.Time) (*types.LifeScore, error) {
	date = lifelog.DateOf(date, time.UTC)
	row, err := s.scoreRepo.GetByDate(dbc, userID, date)
	if err != nil {
		return nil, fmt.Errorf("load life score: %w", err)
	}
	if row != nil {
		return row, nil
	}
	return s.Compute(dbc, userID, date)
}

func (s *lifeScoreService) GetRange(dbc dbctx.Context, userID uuid.UUID, from, to time.Time) ([]*types.LifeScore, error) {
	from, to = lifelog.DateOf(from, time.UTC), lifelog.DateOf(to, time.UTC)
	if to.Before(from) {
		return nil, apierr.BadRequest("invalid_date_range", "date_from must not be after date_to")
	}
	rows, err := s.scoreRepo.GetRange(dbc, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("load life scores: %w", err)
	}
	return rows, nil
}

func (s *lifeScoreService) Baseline(dbc dbctx.Context, userID uuid.UUID, asOf time.Time, windowDays int) (types.ScoreSnapshot, error) {
	if windowDays < 1 {
		windowDays = BaselineWindowDays
	}
	asOf = lifelog.DateOf(asOf, time.UTC)
	rows, err := s.scoreRepo.GetRange(dbc, userID, lifelog.WindowStart(asOf, windowDays), asOf)
	if err != nil {
		return types.ScoreSnapshot{}, fmt.Errorf("load baseline window: %w", err)
	}
	return scoring.Baseline(rows), nil
}
