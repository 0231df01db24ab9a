package services

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/yungbote/lifetwin-backend/internal/data/repos"
	"github.com/yungbote/lifetwin-backend/internal/data/txrunner"
	types "github.com/yungbote/lifetwin-backend/internal/domain"
	"github.com/yungbote/lifetwin-backend/internal/domain/planning"
	"github.com/yungbote/lifetwin-backend/internal/modules/lifetwin/plan"
	"github.com/yungbote/lifetwin-backend/internal/observability"
	"github.com/yungbote/lifetwin-backend/internal/platform/apierr"
	"github.com/yungbote/lifetwin-backend/internal/platform/dbctx"
	"github.com/yungbote/lifetwin-backend/internal/platform/logger"
)

const (
	maxPlanNameLength   = 100
	maxEventTitleLength = 200
	recentDraftLimit    = 20
	defaultCategory     = "general"
)

type CreateDraftInput struct {
	PlanName    string
	Changes     map[string]float64
	HorizonDays int
	Preferences plan.Preferences
	// Events are used verbatim when Changes is empty.
	Events []planning.DraftEvent
}

// DraftView is a ScheduleDraft with its events decoded.
type DraftView struct {
	ID        uuid.UUID             `json:"id"`
	PlanName  string                `json:"plan_name"`
	Status    string                `json:"status"`
	Events    []planning.DraftEvent `json:"events"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

type ApplyResult struct {
	DraftID   uuid.UUID     `json:"draft_id"`
	TaskCount int           `json:"created_tasks"`
	Tasks     []*types.Task `json:"tasks"`
}

type PlanService interface {
	CreateDraft(dbc dbctx.Context, userID uuid.UUID, in CreateDraftInput) (*DraftView, error)
	ListDrafts(dbc dbctx.Context, userID uuid.UUID) ([]*DraftView, error)
	GetDraft(dbc dbctx.Context, userID, id uuid.UUID) (*DraftView, error)
	ReplaceEvents(dbc dbctx.Context, userID, id uuid.UUID, events []planning.DraftEvent) (*DraftView, error)
	// ApplyDraft turns every event into a Task. A draft can be applied once.
	ApplyDraft(dbc dbctx.Context, userID, id uuid.UUID) (*ApplyResult, error)
}

type planService struct {
	tx        txrunner.TxRunner
	log       *logger.Logger
	draftRepo repos.ScheduleDraftRepo
	taskRepo  repos.TaskRepo
	generator plan.Generator
	clock     Clock
}

func NewPlanService(db *gorm.DB, log *logger.Logger, draftRepo repos.ScheduleDraftRepo, taskRepo repos.TaskRepo, clock Clock) PlanService {
	return &planService{
		tx:        txrunner.NewGormTxRunner(db),
		log:       log.With("service", "PlanService"),
		draftRepo: draftRepo,
		taskRepo:  taskRepo,
		generator: plan.NewGenerator(clock.loc()),
		clock:     clock,
	}
}

func (s *planService) CreateDraft(dbc dbctx.Context, userID uuid.UUID, in CreateDraftInput) (*DraftView, error) {
	name := strings.TrimSpace(in.PlanName)
	if name == "" {
		return nil, apierr.BadRequest("invalid_plan_name", "plan_name is required")
	}
	if utf8.RuneCountInString(name) > maxPlanNameLength {
		return nil, apierr.BadRequest("invalid_plan_name", "plan_name must be at most %d characters", maxPlanNameLength)
	}

	var events []planning.DraftEvent
	if len(in.Changes) > 0 {
		horizon, err := normalizeHorizon(in.HorizonDays)
		if err != nil {
			return nil, err
		}
		if err := validateChanges(in.Changes); err != nil {
			return nil, err
		}
		_, span := startSpan(dbc.Ctx, "plan.generate", attribute.Int("horizon_days", horizon))
		events = s.generator.Generate(in.Changes, horizon, in.Preferences, s.clock.Today())
		span.SetAttributes(attribute.Int("events", len(events)))
		span.End()
	} else {
		var err error
		if events, err = normalizeEvents(in.Events); err != nil {
			return nil, err
		}
	}

	draft := &types.ScheduleDraft{UserID: userID, PlanName: name, Status: planning.DraftStatusDraft}
	if err := draft.EncodeEvents(events); err != nil {
		return nil, fmt.Errorf("encode draft events: %w", err)
	}
	created, err := s.draftRepo.Create(dbc, draft)
	if err != nil {
		s.log.Error("create schedule draft failed", "user_id", userID, "error", err)
		return nil, fmt.Errorf("create schedule draft: %w", err)
	}
	s.log.Info("schedule draft created", "user_id", userID, "draft_id", created.ID, "events", len(events))
	return draftView(created), nil
}

func (s *planService) ListDrafts(dbc dbctx.Context, userID uuid.UUID) ([]*DraftView, error) {
	drafts, err := s.draftRepo.ListRecent(dbc, userID, recentDraftLimit)
	if err != nil {
		return nil, fmt.Errorf("list schedule drafts: %w", err)
	}
	out := make([]*DraftView, 0, len(drafts))
	for _, d := range drafts {
		out = append(out, draftView(d))
	}
	return out, nil
}

func (s *planService) GetDraft(dbc dbctx.Context, userID, id uuid.UUID) (*DraftView, error) {
	d, err := s.loadDraft(dbc, userID, id)
	if err != nil {
		return nil, err
	}
	return draftView(d), nil
}

func (s *planService) ReplaceEvents(dbc dbctx.Context, userID, id uuid.UUID, events []planning.DraftEvent) (*DraftView, error) {
	events, err := normalizeEvents(events)
	if err != nil {
		return nil, err
	}
	var out *types.ScheduleDraft
	err = s.tx.InTx(dbc, func(inner dbctx.Context) error {
		d, err := s.loadDraft(inner, userID, id)
		if err != nil {
			return err
		}
		if d.Status == planning.DraftStatusApplied {
			return apierr.Conflict("draft_already_applied", "an applied draft cannot be edited")
		}
		if err := d.EncodeEvents(events); err != nil {
			return fmt.Errorf("encode draft events: %w", err)
		}
		if err := s.draftRepo.UpdateEvents(inner, userID, id, d.Events); err != nil {
			return fmt.Errorf("update draft events: %w", err)
		}
		out, err = s.loadDraft(inner, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return draftView(out), nil
}

func (s *planService) ApplyDraft(dbc dbctx.Context, userID, id uuid.UUID) (*ApplyResult, error) {
	var res *ApplyResult
	err := s.tx.InTx(dbc, func(inner dbctx.Context) error {
		d, err := s.loadDraft(inner, userID, id)
		if err != nil {
			return err
		}
		ok, err := s.draftRepo.MarkApplied(inner, userID, id)
		if err != nil {
			return fmt.Errorf("mark draft applied: %w", err)
		}
		if !ok {
			return apierr.Conflict("draft_already_applied", "draft has already been applied")
		}
		events := d.DecodeEvents()
		tasks := make([]*types.Task, 0, len(events))
		draftID := d.ID
		for _, ev := range events {
			status := ev.Status
			if status == "" {
				status = planning.EventStatusPlanned
			}
			tasks = append(tasks, &types.Task{
				UserID:      userID,
				DraftID:     &draftID,
				Title:       ev.Title,
				Category:    ev.Category,
				ExpectedMin: plan.ExpectedMinutes(ev),
				StartAt:     ev.StartAt.UTC(),
				EndAt:       ev.EndAt.UTC(),
				Status:      status,
				Visibility:  "private",
			})
		}
		created, err := s.taskRepo.Create(inner, tasks)
		if err != nil {
			return fmt.Errorf("create tasks: %w", err)
		}
		res = &ApplyResult{DraftID: draftID, TaskCount: len(created), Tasks: created}
		return nil
	})
	if err != nil {
		return nil, err
	}
	observability.Current().ObserveDraftApplied(res.TaskCount)
	s.log.Info("schedule draft applied", "user_id", userID, "draft_id", id, "tasks", res.TaskCount)
	return res, nil
}

func (s *planService) loadDraft(dbc dbctx.Context, userID, id uuid.UUID) (*types.ScheduleDraft, error) {
	d, err := s.draftRepo.GetByID(dbc, userID, id)
	if err != nil {
		return nil, fmt.Errorf("load schedule draft: %w", err)
	}
	if d == nil {
		return nil, apierr.NotFound("draft_not_found", "schedule draft not found")
	}
	return d, nil
}

func normalizeEvents(events []planning.DraftEvent) ([]planning.DraftEvent, error) {
	out := make([]planning.DraftEvent, 0, len(events))
	for i, ev := range events {
		ev.Title = strings.TrimSpace(ev.Title)
		if ev.Title == "" {
			return nil, apierr.BadRequest("invalid_event", "event %d: title is required", i)
		}
		if utf8.RuneCountInString(ev.Title) > maxEventTitleLength {
			return nil, apierr.BadRequest("invalid_event", "event %d: title must be at most %d characters", i, maxEventTitleLength)
		}
		if ev.StartAt.IsZero() || ev.EndAt.IsZero() {
			return nil, apierr.BadRequest("invalid_event", "event %d: start_at and end_at are required", i)
		}
		if ev.EndAt.Before(ev.StartAt) {
			return nil, apierr.BadRequest("invalid_event", "event %d: end_at is before start_at", i)
		}
		if strings.TrimSpace(ev.Category) == "" {
			ev.Category = defaultCategory
		}
		if strings.TrimSpace(ev.Status) == "" {
			ev.Status = planning.EventStatusPlanned
		}
		out = append(out, ev)
	}
	return out, nil
}

func draftView(d *types.ScheduleDraft) *DraftView {
	return &DraftView{
		ID:        d.ID,
		PlanName:  d.PlanName,
		Status:    d.Status,
		Events:    d.DecodeEvents(),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
