package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/dvasylenko/fitbook/internal/model"
	"github.com/google/uuid"
)

type ReviewRepository interface {
	Create(ctx context.Context, rv *model.Review) error
	ListByTrainer(ctx context.Context, trainerID uuid.UUID) ([]model.Review, error)
	AverageRating(ctx context.Context, trainerID uuid.UUID) (float64, error)
}

type GormReviewRepository struct {
	db *gorm.DB
}

func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

func (r *GormReviewRepository) Create(ctx context.Context, rv *model.Review) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

func (r *GormReviewRepository) ListByTrainer(ctx context.Context, trainerID uuid.UUID) ([]model.Review, error) {
	var list []model.Review
	err := r.db.WithContext(ctx).
		Where("trainer_id = ?", trainerID).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *GormReviewRepository) AverageRating(ctx context.Context, trainerID uuid.UUID) (float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Where("trainer_id = ?", trainerID).
		Select("AVG(rating)").
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}
