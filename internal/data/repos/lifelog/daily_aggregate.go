package lifelog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/lifetwin-backend/internal/domain"
	"github.com/yungbote/lifetwin-backend/internal/platform/dbctx"
	"github.com/yungbote/lifetwin-backend/internal/platform/logger"
)

type DailyAggregateRepo interface {
	Upsert(dbc dbctx.Context, aggs []*types.DailyAggregate) error
	DeleteStale(dbc dbctx.Context, userID uuid.UUID, date time.Time, keep []types.ActivityType) error
	GetByDate(dbc dbctx.Context, userID uuid.UUID, date time.Time) ([]*types.DailyAggregate, error)
	GetRange(dbc dbctx.Context, userID uuid.UUID, from, to time.Time) ([]*types.DailyAggregate, error)
}

type dailyAggregateRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDailyAggregateRepo(db *gorm.DB, baseLog *logger.Logger) DailyAggregateRepo {
	return &dailyAggregateRepo{db: db, log: baseLog.With("repo", "DailyAggregateRepo")}
}

// Upsert writes aggregates keyed by (user_id, date, type). Existing rows are fully
// overwritten; ids of existing rows are kept.
func (r *dailyAggregateRepo) Upsert(dbc dbctx.Context, aggs []*types.DailyAggregate) error {
	if len(aggs) == 0 {
		return nil
	}
	return dbc.DB(r.db).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}, {Name: "type"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"total",
				"average",
				"count",
				"meta_summary",
				"computed_at",
			}),
		}).
		Create(&aggs).Error
}

// DeleteStale removes the day's aggregates whose type is not in keep.
func (r *dailyAggregateRepo) DeleteStale(dbc dbctx.Context, userID uuid.UUID, date time.Time, keep []types.ActivityType) error {
	q := dbc.DB(r.db).Where("user_id = ? AND date = ?", userID, date)
	if len(keep) > 0 {
		q = q.Where("type NOT IN ?", keep)
	}
	return q.Delete(&types.DailyAggregate{}).Error
}

func (r *dailyAggregateRepo) GetByDate(dbc dbctx.Context, userID uuid.UUID, date time.Time) ([]*types.DailyAggregate, error) {
	var results []*types.DailyAggregate
	if err := dbc.DB(r.db).
		Where("user_id = ? AND date = ?", userID, date).
		Order("type ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetRange returns aggregates with from <= date <= to, ascending by date.
func (r *dailyAggregateRepo) GetRange(dbc dbctx.Context, userID uuid.UUID, from, to time.Time) ([]*types.DailyAggregate, error) {
	var results []*types.DailyAggregate
	if err := dbc.DB(r.db).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date ASC").
		Order("type ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
