package user

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/lifetwin-backend/internal/domain"
	"github.com/yungbote/lifetwin-backend/internal/platform/dbctx"
	"github.com/yungbote/lifetwin-backend/internal/platform/logger"
)

type UserRepo interface {
	Create(dbc dbctx.Context, users []*types.User) ([]*types.User, error)
	GetByIDs(dbc dbctx.Context, userIDs []uuid.UUID) ([]*types.User, error)
	Exists(dbc dbctx.Context, userID uuid.UUID) (bool, error)
	EnsureExists(dbc dbctx.Context, u *types.User) error
	HardDelete(dbc dbctx.Context, userID uuid.UUID) error
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return &userRepo{db: db, log: baseLog.With("repo", "UserRepo")}
}

func (ur *userRepo) Create(dbc dbctx.Context, users []*types.User) ([]*types.User, error) {
	if len(users) == 0 {
		return []*types.User{}, nil
	}
	if err := dbc.DB(ur.db).Create(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (ur *userRepo) GetByIDs(dbc dbctx.Context, userIDs []uuid.UUID) ([]*types.User, error) {
	var results []*types.User
	if len(userIDs) == 0 {
		return results, nil
	}
	if err := dbc.DB(ur.db).
		Where("id IN ?", userIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ur *userRepo) Exists(dbc dbctx.Context, userID uuid.UUID) (bool, error) {
	var count int64
	if err := dbc.DB(ur.db).
		Model(&types.User{}).
		Where("id = ?", userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// EnsureExists inserts u unless it collides with an existing row.
func (ur *userRepo) EnsureExists(dbc dbctx.Context, u *types.User) error {
	if u == nil || u.ID == uuid.Nil {
		return nil
	}
	return dbc.DB(ur.db).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(u).Error
}

// HardDelete removes the user row; owned rows go with it through ON DELETE CASCADE.
func (ur *userRepo) HardDelete(dbc dbctx.Context, userID uuid.UUID) error {
	return dbc.DB(ur.db).
		Unscoped().
		Where("id = ?", userID).
		Delete(&types.User{}).Error
}
