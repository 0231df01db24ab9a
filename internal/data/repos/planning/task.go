package planning

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/lifetwin-backend/internal/domain"
	"github.com/yungbote/lifetwin-backend/internal/platform/dbctx"
	"github.com/yungbote/lifetwin-backend/internal/platform/logger"
)

type TaskRepo interface {
	Create(dbc dbctx.Context, tasks []*types.Task) ([]*types.Task, error)
	ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.Task, error)
}

type taskRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTaskRepo(db *gorm.DB, baseLog *logger.Logger) TaskRepo {
	return &taskRepo{db: db, log: baseLog.With("repo", "TaskRepo")}
}

func (r *taskRepo) Create(dbc dbctx.Context, tasks []*types.Task) ([]*types.Task, error) {
	if len(tasks) == 0 {
		return []*types.Task{}, nil
	}
	if err := dbc.DB(r.db).Create(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.Task, error) {
	var results []*types.Task
	if err := dbc.DB(r.db).
		Where("user_id = ?", userID).
		Order("start_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
