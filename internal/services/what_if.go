package services

import (
	"math"
	"sort"
	"strconv"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/yungbote/lifetwin-backend/internal/modules/lifetwin/simulation"
	"github.com/yungbote/lifetwin-backend/internal/observability"
	"github.com/yungbote/lifetwin-backend/internal/platform/apierr"
	"github.com/yungbote/lifetwin-backend/internal/platform/dbctx"
	"github.com/yungbote/lifetwin-backend/internal/platform/logger"
)

const (
	DefaultHorizonDays = 7
	maxHorizonDays     = 365
)

type SimulationService interface {
	// RunWhatIf projects changes onto the 7-day baseline ending today.
	RunWhatIf(dbc dbctx.Context, userID uuid.UUID, changes map[string]float64, horizonDays int) (*simulation.Result, error)
}

type simulationService struct {
	log      *logger.Logger
	scoreSvc LifeScoreService
	clock    Clock
}

func NewSimulationService(log *logger.Logger, scoreSvc LifeScoreService, clock Clock) SimulationService {
	return &simulationService{
		log:      log.With("service", "SimulationService"),
		scoreSvc: scoreSvc,
		clock:    clock,
	}
}

func (s *simulationService) RunWhatIf(dbc dbctx.Context, userID uuid.UUID, changes map[string]float64, horizonDays int) (out *simulation.Result, err error) {
	horizonDays, err = normalizeHorizon(horizonDays)
	if err != nil {
		return nil, err
	}
	if err := validateChanges(changes); err != nil {
		return nil, err
	}
	ctx, span := startSpan(dbc.Ctx, "simulation.what_if", attribute.Int("horizon_days", horizonDays))
	defer func() { endSpan(span, err) }()
	dbc.Ctx = ctx

	baseline, err := s.scoreSvc.Baseline(dbc, userID, s.clock.Today(), BaselineWindowDays)
	if err != nil {
		return nil, err
	}
	res := simulation.Project(baseline, changes, horizonDays)
	observability.Current().IncWhatIf(horizonDays, len(res.Warnings) > 0)

	unknown := make([]string, 0)
	for name := range changes {
		if !simulation.Known(name) {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		s.log.Debug("ignoring unknown what-if variables", "variables", unknown)
	}
	return &res, nil
}

func normalizeHorizon(days int) (int, error) {
	switch {
	case days == 0:
		return DefaultHorizonDays, nil
	case days < 0 || days > maxHorizonDays:
		return 0, apierr.BadRequest("invalid_horizon", "horizon_days must be between 1 and %d", maxHorizonDays)
	}
	return days, nil
}

func validateChanges(changes map[string]float64) error {
	for name, v := range changes {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return apierr.BadRequest("invalid_change", "change %s must be a finite number, got %s", name, strconv.FormatFloat(v, 'g', -1, 64))
		}
	}
	return nil
}
