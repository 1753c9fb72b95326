package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/dvasylenko/fitbook/internal/model"
	"github.com/google/uuid"
)

type TrainerRepository interface {
	Create(ctx context.Context, t *model.Trainer) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Trainer, error)
	// includeInactive = true — показывать и мягко удалённых.
	List(ctx context.Context, includeInactive bool) ([]model.Trainer, error)
	ListByGym(ctx context.Context, gymID uuid.UUID) ([]model.Trainer, error)
	Count(ctx context.Context) (int64, error)
	Updates(ctx context.Context, id uuid.UUID, updates map[string]any) error
	// Мягкое удаление: is_active = false, строка остаётся.
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type GormTrainerRepository struct {
	db *gorm.DB
}

func NewGormTrainerRepository(db *gorm.DB) *GormTrainerRepository {
	return &GormTrainerRepository{db: db}
}

func (r *GormTrainerRepository) Create(ctx context.Context, t *model.Trainer) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *GormTrainerRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Trainer, error) {
	var t model.Trainer
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *GormTrainerRepository) List(ctx context.Context, includeInactive bool) ([]model.Trainer, error) {
	q := r.db.WithContext(ctx).Model(&model.Trainer{})
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}

	var trainers []model.Trainer
	if err := q.Order("created_at ASC").Find(&trainers).Error; err != nil {
		return nil, err
	}
	return trainers, nil
}

func (r *GormTrainerRepository) ListByGym(ctx context.Context, gymID uuid.UUID) ([]model.Trainer, error) {
	var trainers []model.Trainer
	err := r.db.WithContext(ctx).
		Where("gym_id = ? AND is_active = ?", gymID, true).
		Order("name ASC").
		Find(&trainers).Error
	if err != nil {
		return nil, err
	}
	return trainers, nil
}

func (r *GormTrainerRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Trainer{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *GormTrainerRepository) Updates(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&model.Trainer{}).
		Where("id = ?", id).
		Updates(updates).
		Error
}

func (r *GormTrainerRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.Trainer{}).
		Where("id = ?", id).
		Update("is_active", false).
		Error
}
