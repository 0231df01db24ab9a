package user

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/lifetwin-backend/internal/data/repos/testutil"
	types "github.com/yungbote/lifetwin-backend/internal/domain"
)

func TestUserRepo(t *testing.T) {
	db := testutil.DB(t)
	dbc := testutil.Ctx(t, db)

	repo := NewUserRepo(db, testutil.Logger(t))

	created, err := repo.Create(dbc, []*types.User{{Email: "userrepo@example.com", Nickname: "twin"}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 1 || created[0].ID == uuid.Nil {
		t.Fatalf("Create: expected 1 user with id, got %+v", created)
	}

	got, err := repo.GetByIDs(dbc, []uuid.UUID{created[0].ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(got) != 1 || got[0].Email != "userrepo@example.com" {
		t.Fatalf("GetByIDs: unexpected result: %+v", got)
	}

	exists, err := repo.Exists(dbc, created[0].ID)
	if err != nil || !exists {
		t.Fatalf("Exists: expected true, got %v (%v)", exists, err)
	}
	exists, err = repo.Exists(dbc, uuid.New())
	if err != nil || exists {
		t.Fatalf("Exists (missing): expected false, got %v (%v)", exists, err)
	}
}

func TestHardDeleteCascades(t *testing.T) {
	db := testutil.DB(t)
	dbc := testutil.Ctx(t, db)
	repo := NewUserRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, dbc, "cascade@example.com")
	testutil.SeedLog(t, dbc, u.ID, types.ActivitySleep, testutil.Day(t, "2026-10-19").Add(8*time.Hour), 7.5, `{"quality": 4}`)

	if err := repo.HardDelete(dbc, u.ID); err != nil {
		t.Fatalf("HardDelete: %v", err)
	}
	var n int64
	if err := db.Model(&types.LogEntry{}).Where("user_id = ?", u.ID).Count(&n).Error; err != nil {
		t.Fatalf("count logs: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected cascade delete of log entries, %d left", n)
	}
}

func TestEnsureExistsIsIdempotent(t *testing.T) {
	db := testutil.DB(t)
	dbc := testutil.Ctx(t, db)
	repo := NewUserRepo(db, testutil.Logger(t))

	id := uuid.New()
	for i := 0; i < 2; i++ {
		if err := repo.EnsureExists(dbc, &types.User{ID: id, Email: "twin@example.com"}); err != nil {
			t.Fatalf("EnsureExists #%d: %v", i+1, err)
		}
	}
	var n int64
	if err := db.Model(&types.User{}).Where("id = ?", id).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected exactly one row, got %d", n)
	}
}
