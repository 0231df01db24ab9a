package planning

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/lifetwin-backend/internal/data/repos/testutil"
	types "github.com/yungbote/lifetwin-backend/internal/domain"
	"github.com/yungbote/lifetwin-backend/internal/domain/planning"
)

func TestScheduleDraftRepo(t *testing.T) {
	db := testutil.DB(t)
	dbc := testutil.Ctx(t, db)
	repo := NewScheduleDraftRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, dbc, "drafts@example.com")
	start := testutil.Day(t, "2026-10-20").Add(9 * time.Hour)

	draft := &types.ScheduleDraft{UserID: u.ID, PlanName: "study more"}
	if err := draft.EncodeEvents([]types.DraftEvent{{
		Title:    "Study block",
		Category: "study",
		StartAt:  start,
		EndAt:    start.Add(90 * time.Minute),
		Status:   planning.EventStatusPlanned,
	}}); err != nil {
		t.Fatalf("EncodeEvents: %v", err)
	}
	if _, err := repo.Create(dbc, draft); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if draft.ID == uuid.Nil || draft.Status != planning.DraftStatusDraft {
		t.Fatalf("Create: expected id and draft status, got %+v", draft)
	}

	if err := repo.UpdateEvents(dbc, u.ID, draft.ID, datatypes.JSON(`[]`)); err != nil {
		t.Fatalf("UpdateEvents: %v", err)
	}
	got, err := repo.GetByID(dbc, u.ID, draft.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID: %+v (%v)", got, err)
	}
	if n := len(got.DecodeEvents()); n != 0 {
		t.Fatalf("expected events cleared, got %d", n)
	}

	foreign, err := repo.GetByID(dbc, uuid.New(), draft.ID)
	if err != nil || foreign != nil {
		t.Fatalf("GetByID (foreign user): expected nil, got %+v (%v)", foreign, err)
	}

	applied, err := repo.MarkApplied(dbc, u.ID, draft.ID)
	if err != nil || !applied {
		t.Fatalf("MarkApplied: expected true, got %v (%v)", applied, err)
	}
	applied, err = repo.MarkApplied(dbc, u.ID, draft.ID)
	if err != nil || applied {
		t.Fatalf("MarkApplied (again): expected false, got %v (%v)", applied, err)
	}

	list, err := repo.ListRecent(dbc, u.ID, 10)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(list) != 1 || list[0].Status != planning.DraftStatusApplied {
		t.Fatalf("ListRecent: expected one applied draft, got %+v", list)
	}
}

func TestTaskRepoOrdersByStart(t *testing.T) {
	db := testutil.DB(t)
	dbc := testutil.Ctx(t, db)
	repo := NewTaskRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, dbc, "tasks@example.com")
	base := testutil.Day(t, "2026-10-20")

	if out, err := repo.Create(dbc, nil); err != nil || len(out) != 0 {
		t.Fatalf("Create (empty): expected no-op, got %+v (%v)", out, err)
	}
	_, err := repo.Create(dbc, []*types.Task{
		{UserID: u.ID, Title: "Run", Category: "health", ExpectedMin: 30, StartAt: base.Add(18 * time.Hour), EndAt: base.Add(18*time.Hour + 30*time.Minute)},
		{UserID: u.ID, Title: "Read", Category: "study", ExpectedMin: 60, StartAt: base.Add(8 * time.Hour), EndAt: base.Add(9 * time.Hour)},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	tasks, err := repo.ListByUser(dbc, u.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(tasks) != 2 || tasks[0].Title != "Read" || tasks[1].Title != "Run" {
		t.Fatalf("expected tasks ordered by start, got %+v", tasks)
	}
	if tasks[0].Status != "planned" || tasks[0].Visibility != "private" {
		t.Fatalf("expected column defaults, got status=%q visibility=%q", tasks[0].Status, tasks[0].Visibility)
	}
}
