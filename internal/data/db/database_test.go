package db

import (
	"path/filepath"
	"testing"

	"github.com/yungbote/lifetwin-backend/internal/platform/logger"
)

func TestSQLiteServiceMigrates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "lifetwin.db")
	svc, err := NewDatabaseService(logger.Nop(), Config{Driver: "SQLite", SQLitePath: path})
	if err != nil {
		t.Fatalf("NewDatabaseService: %v", err)
	}
	t.Cleanup(func() { _ = svc.Close() })

	if svc.Driver() != DriverSQLite {
		t.Fatalf("driver: got %q", svc.Driver())
	}
	if err := svc.AutoMigrateAll(); err != nil {
		t.Fatalf("AutoMigrateAll: %v", err)
	}
	for _, table := range []string{"log_entry", "daily_aggregate", "life_score", "schedule_draft", "task"} {
		if !svc.DB().Migrator().HasTable(table) {
			t.Fatalf("missing table %s", table)
		}
	}
}

func TestUnsupportedDriver(t *testing.T) {
	if _, err := NewDatabaseService(logger.Nop(), Config{Driver: "mysql"}); err == nil {
		t.Fatal("expected an error for an unsupported driver")
	}
}
