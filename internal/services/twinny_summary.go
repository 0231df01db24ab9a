package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/lifetwin-backend/internal/data/repos"
	types "github.com/yungbote/lifetwin-backend/internal/domain"
	"github.com/yungbote/lifetwin-backend/internal/domain/lifelog"
	"github.com/yungbote/lifetwin-backend/internal/modules/lifetwin/twinny"
	"github.com/yungbote/lifetwin-backend/internal/observability"
	"github.com/yungbote/lifetwin-backend/internal/platform/dbctx"
	"github.com/yungbote/lifetwin-backend/internal/platform/logger"
)

// TwinnySummary is the day's narrative together with the score it was built on.
type TwinnySummary struct {
	twinny.Summary
	Date   string           `json:"date"`
	Scores *types.LifeScore `json:"scores"`
}

type TwinnyService interface {
	GetSummary(dbc dbctx.Context, userID uuid.UUID, date time.Time) (*TwinnySummary, error)
}

type twinnyService struct {
	db        *gorm.DB
	log       *logger.Logger
	scoreSvc  LifeScoreService
	aggRepo   repos.DailyAggregateRepo
	scoreRepo repos.LifeScoreRepo
	narrator  twinny.Narrator
}

func NewTwinnyService(
	db *gorm.DB,
	log *logger.Logger,
	scoreSvc LifeScoreService,
	aggRepo repos.DailyAggregateRepo,
	scoreRepo repos.LifeScoreRepo,
	narrator twinny.Narrator,
) TwinnyService {
	if narrator == nil {
		narrator = twinny.RuleNarrator{}
	}
	return &twinnyService{
		db:        db,
		log:       log.With("service", "TwinnyService"),
		scoreSvc:  scoreSvc,
		aggRepo:   aggRepo,
		scoreRepo: scoreRepo,
		narrator:  narrator,
	}
}

func (s *twinnyService) GetSummary(dbc dbctx.Context, userID uuid.UUID, date time.Time) (out *TwinnySummary, err error) {
	date = lifelog.DateOf(date, time.UTC)
	ctx, span := startSpan(dbc.Ctx, "twinny.summary", attribute.String("date", date.Format(lifelog.DateLayout)))
	defer func() { endSpan(span, err) }()
	dbc.Ctx = ctx

	today, err := s.scoreSvc.Get(dbc, userID, date)
	if err != nil {
		return nil, fmt.Errorf("load today's score: %w", err)
	}

	from := lifelog.WindowStart(date, twinny.DefaultWindowDays)
	var (
		aggs   []*types.DailyAggregate
		scores []*types.LifeScore
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(windowLoaders(dbc))
	g.Go(func() error {
		var err error
		aggs, err = s.aggRepo.GetRange(dbctx.Context{Ctx: gctx, Tx: dbc.Tx}, userID, from, date)
		if err != nil {
			return fmt.Errorf("load aggregate window: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		scores, err = s.scoreRepo.GetRange(dbctx.Context{Ctx: gctx, Tx: dbc.Tx}, userID, from, date)
		if err != nil {
			return fmt.Errorf("load score window: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	in := twinny.Input{
		UserID:     userID,
		Date:       date,
		WindowDays: twinny.DefaultWindowDays,
		Today:      today.Snapshot(),
		Aggregates: aggs,
		Scores:     scores,
	}
	started := time.Now()
	summary, err := s.narrator.Narrate(ctx, in)
	if err != nil {
		// The configured narrator should already degrade; keep the day readable regardless.
		s.log.Warn("narrator failed, using rule summary", "user_id", userID, "error", err)
		summary = twinny.Generate(in)
	}
	observability.Current().ObserveNarrative(summary.Source, summary.RiskLevel, time.Since(started))
	span.SetAttributes(attribute.String("risk_level", summary.RiskLevel), attribute.String("source", summary.Source))
	return &TwinnySummary{
		Summary: summary,
		Date:    date.Format(lifelog.DateLayout),
		Scores:  today,
	}, nil
}

// windowLoaders is how many window queries may run at once. A caller transaction holds a
// single connection, which cannot serve concurrent queries.
func windowLoaders(dbc dbctx.Context) int {
	if dbc.Tx != nil {
		return 1
	}
	return 2
}
