package lifelog

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/lifetwin-backend/internal/domain"
	"github.com/yungbote/lifetwin-backend/internal/platform/dbctx"
	"github.com/yungbote/lifetwin-backend/internal/platform/logger"
)

// LogFilter narrows a log listing. Zero values mean "no constraint".
type LogFilter struct {
	Type  types.ActivityType
	From  time.Time // inclusive instant
	To    time.Time // exclusive instant
	Limit int
}

type LogEntryRepo interface {
	Create(dbc dbctx.Context, entries []*types.LogEntry) ([]*types.LogEntry, error)
	GetByID(dbc dbctx.Context, userID, id uuid.UUID) (*types.LogEntry, error)
	ListBetween(dbc dbctx.Context, userID uuid.UUID, start, end time.Time) ([]*types.LogEntry, error)
	List(dbc dbctx.Context, userID uuid.UUID, filter LogFilter) ([]*types.LogEntry, error)
	Delete(dbc dbctx.Context, userID, id uuid.UUID) (bool, error)
}

type logEntryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLogEntryRepo(db *gorm.DB, baseLog *logger.Logger) LogEntryRepo {
	return &logEntryRepo{db: db, log: baseLog.With("repo", "LogEntryRepo")}
}

func (r *logEntryRepo) Create(dbc dbctx.Context, entries []*types.LogEntry) ([]*types.LogEntry, error) {
	if len(entries) == 0 {
		return []*types.LogEntry{}, nil
	}
	for _, e := range entries {
		if e != nil {
			e.Timestamp = e.Timestamp.UTC()
		}
	}
	if err := dbc.DB(r.db).Create(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *logEntryRepo) GetByID(dbc dbctx.Context, userID, id uuid.UUID) (*types.LogEntry, error) {
	var out types.LogEntry
	err := dbc.DB(r.db).
		Where("id = ? AND user_id = ?", id, userID).
		First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListBetween returns the user's entries with start <= timestamp < end, oldest first.
func (r *logEntryRepo) ListBetween(dbc dbctx.Context, userID uuid.UUID, start, end time.Time) ([]*types.LogEntry, error) {
	var results []*types.LogEntry
	if err := dbc.DB(r.db).
		Where("user_id = ? AND timestamp >= ? AND timestamp < ?", userID, start.UTC(), end.UTC()).
		Order("timestamp ASC").
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *logEntryRepo) List(dbc dbctx.Context, userID uuid.UUID, filter LogFilter) ([]*types.LogEntry, error) {
	q := dbc.DB(r.db).Where("user_id = ?", userID)
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if !filter.From.IsZero() {
		q = q.Where("timestamp >= ?", filter.From.UTC())
	}
	if !filter.To.IsZero() {
		q = q.Where("timestamp < ?", filter.To.UTC())
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	var results []*types.LogEntry
	if err := q.Order("timestamp DESC").Order("id DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// Delete removes an entry owned by userID and reports whether a row was removed.
func (r *logEntryRepo) Delete(dbc dbctx.Context, userID, id uuid.UUID) (bool, error) {
	res := dbc.DB(r.db).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&types.LogEntry{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
