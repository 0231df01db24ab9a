package planning

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/yungbote/lifetwin-backend/internal/domain"
	"github.com/yungbote/lifetwin-backend/internal/domain/planning"
	"github.com/yungbote/lifetwin-backend/internal/platform/dbctx"
	"github.com/yungbote/lifetwin-backend/internal/platform/logger"
)

type ScheduleDraftRepo interface {
	Create(dbc dbctx.Context, draft *types.ScheduleDraft) (*types.ScheduleDraft, error)
	GetByID(dbc dbctx.Context, userID, id uuid.UUID) (*types.ScheduleDraft, error)
	ListRecent(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*types.ScheduleDraft, error)
	UpdateEvents(dbc dbctx.Context, userID, id uuid.UUID, events datatypes.JSON) error
	MarkApplied(dbc dbctx.Context, userID, id uuid.UUID) (bool, error)
}

type scheduleDraftRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewScheduleDraftRepo(db *gorm.DB, baseLog *logger.Logger) ScheduleDraftRepo {
	return &scheduleDraftRepo{db: db, log: baseLog.With("repo", "ScheduleDraftRepo")}
}

func (r *scheduleDraftRepo) Create(dbc dbctx.Context, draft *types.ScheduleDraft) (*types.ScheduleDraft, error) {
	if draft == nil {
		return nil, errors.New("nil draft")
	}
	if draft.Status == "" {
		draft.Status = planning.DraftStatusDraft
	}
	if err := dbc.DB(r.db).Create(draft).Error; err != nil {
		return nil, err
	}
	return draft, nil
}

func (r *scheduleDraftRepo) GetByID(dbc dbctx.Context, userID, id uuid.UUID) (*types.ScheduleDraft, error) {
	var out types.ScheduleDraft
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

func (r *scheduleDraftRepo) ListRecent(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*types.ScheduleDraft, error) {
	q := dbc.DB(r.db).Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var results []*types.ScheduleDraft
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *scheduleDraftRepo) UpdateEvents(dbc dbctx.Context, userID, id uuid.UUID, events datatypes.JSON) error {
	return dbc.DB(r.db).
		Model(&types.ScheduleDraft{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("events", events).Error
}

// MarkApplied flips a draft to applied. It returns false when the draft was already
// applied (or does not exist), so concurrent applies create tasks only once.
func (r *scheduleDraftRepo) MarkApplied(dbc dbctx.Context, userID, id uuid.UUID) (bool, error) {
	res := dbc.DB(r.db).
		Model(&types.ScheduleDraft{}).
		Where("id = ? AND user_id = ? AND status = ?", id, userID, planning.DraftStatusDraft).
		Update("status", planning.DraftStatusApplied)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
