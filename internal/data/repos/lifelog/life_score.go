package lifelog

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/lifetwin-backend/internal/domain"
	"github.com/yungbote/lifetwin-backend/internal/platform/dbctx"
	"github.com/yungbote/lifetwin-backend/internal/platform/logger"
)

type LifeScoreRepo interface {
	Upsert(dbc dbctx.Context, score *types.LifeScore) error
	GetByDate(dbc dbctx.Context, userID uuid.UUID, date time.Time) (*types.LifeScore, error)
	GetRange(dbc dbctx.Context, userID uuid.UUID, from, to time.Time) ([]*types.LifeScore, error)
}

type lifeScoreRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLifeScoreRepo(db *gorm.DB, baseLog *logger.Logger) LifeScoreRepo {
	return &lifeScoreRepo{db: db, log: baseLog.With("repo", "LifeScoreRepo")}
}

func (r *lifeScoreRepo) Upsert(dbc dbctx.Context, score *types.LifeScore) error {
	if score == nil {
		return nil
	}
	return dbc.DB(r.db).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"energy",
				"mental",
				"focus",
				"goal_progress",
				"computed_at",
			}),
		}).
		Create(score).Error
}

// GetByDate returns nil, nil when no score exists for that day.
func (r *lifeScoreRepo) GetByDate(dbc dbctx.Context, userID uuid.UUID, date time.Time) (*types.LifeScore, error) {
	var out types.LifeScore
	err := dbc.DB(r.db).
		Where("user_id = ? AND date = ?", userID, date).
		First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *lifeScoreRepo) GetRange(dbc dbctx.Context, userID uuid.UUID, from, to time.Time) ([]*types.LifeScore, error) {
	var results []*types.LifeScore
	if err := dbc.DB(r.db).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
