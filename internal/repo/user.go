package repo

import (
	"context"
	"errors"

	"github.com/anatoliyserebry/cryptowatchlive/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepo interface {
	EnsureExists(ctx context.Context, ownerId int64) error
	IsMuted(ctx context.Context, ownerId int64) (bool, error)
	SetMuted(ctx context.Context, ownerId int64, muted bool) error
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &userRepo{
		db: db,
	}
}

func (r *userRepo) EnsureExists(ctx context.Context, ownerId int64) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "owner_id"}},
			DoNothing: true,
		}).
		Create(&entity.User{OwnerId: ownerId}).Error
}

func (r *userRepo) IsMuted(ctx context.Context, ownerId int64) (bool, error) {
	var user entity.User
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerId).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.IsMuted, nil
}

func (r *userRepo) SetMuted(ctx context.Context, ownerId int64, muted bool) error {
	return r.db.WithContext(ctx).Model(&entity.User{}).
		Where("owner_id = ?", ownerId).
		Update("is_muted", muted).Error
}
