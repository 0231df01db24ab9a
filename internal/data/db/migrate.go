package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/yungbote/lifetwin-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(types.Models()...)
}

// EnsureLifelogIndexes adds the Postgres-only listing indexes.
func EnsureLifelogIndexes(db *gorm.DB) error {
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_log_entry_user_type_ts
		ON log_entry (user_id, type, timestamp DESC);
	`).Error; err != nil {
		return fmt.Errorf("create idx_log_entry_user_type_ts: %w", err)
	}

	// Recent drafts listing.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_schedule_draft_user_created
		ON schedule_draft (user_id, created_at DESC);
	`).Error; err != nil {
		return fmt.Errorf("create idx_schedule_draft_user_created: %w", err)
	}

	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_task_user_start
		ON task (user_id, start_at);
	`).Error; err != nil {
		return fmt.Errorf("create idx_task_user_start: %w", err)
	}
	return nil
}

func (s *DatabaseService) AutoMigrateAll() error {
	s.log.Info("Auto migrating tables...", "driver", s.driver)
	if err := AutoMigrateAll(s.db); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	if s.driver != DriverPostgres {
		return nil
	}
	if err := EnsureLifelogIndexes(s.db); err != nil {
		s.log.Error("Lifelog index migration failed", "error", err)
		return err
	}
	return nil
}
