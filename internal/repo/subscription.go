package repo

import (
	"context"

	"github.com/anatoliyserebry/cryptowatchlive/internal/entity"
	"gorm.io/gorm"
)

type SubscriptionRepo interface {
	Create(ctx context.Context, sub entity.Subscription) (int64, error)
	FindByOwner(ctx context.Context, ownerId int64) ([]entity.Subscription, error)
	FindActive(ctx context.Context) ([]entity.Subscription, error)
	// UpdateStatus 返回 false 表示该订阅不存在或不属于该用户
	UpdateStatus(ctx context.Context, id, ownerId int64, active bool) (bool, error)
	UpdateLastEval(ctx context.Context, id int64, ok bool) error
	Delete(ctx context.Context, id, ownerId int64) (bool, error)
	DeleteByOwner(ctx context.Context, ownerId int64) (int64, error)
}

type subscriptionRepo struct {
	db *gorm.DB
}

func NewSubscriptionRepo(db *gorm.DB) SubscriptionRepo {
	return &subscriptionRepo{
		db: db,
	}
}

func (r *subscriptionRepo) Create(ctx context.Context, sub entity.Subscription) (int64, error) {
	err := r.db.WithContext(ctx).Create(&sub).Error
	if err != nil {
		return 0, err
	}
	return sub.Id, nil
}

func (r *subscriptionRepo) FindByOwner(ctx context.Context, ownerId int64) ([]entity.Subscription, error) {
	var subs []entity.Subscription
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerId).Order("id").Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *subscriptionRepo) FindActive(ctx context.Context) ([]entity.Subscription, error) {
	var subs []entity.Subscription
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *subscriptionRepo) UpdateStatus(ctx context.Context, id, ownerId int64, active bool) (bool, error) {
	res := r.db.WithContext(ctx).Model(&entity.Subscription{}).
		Where("id = ? AND owner_id = ?", id, ownerId).
		Update("is_active", active)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *subscriptionRepo) UpdateLastEval(ctx context.Context, id int64, ok bool) error {
	return r.db.WithContext(ctx).Model(&entity.Subscription{}).
		Where("id = ?", id).
		Update("last_eval", ok).Error
}

func (r *subscriptionRepo) Delete(ctx context.Context, id, ownerId int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerId).
		Delete(&entity.Subscription{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *subscriptionRepo) DeleteByOwner(ctx context.Context, ownerId int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerId).
		Delete(&entity.Subscription{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
