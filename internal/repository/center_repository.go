package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/dvasylenko/fitbook/internal/model"
	"github.com/google/uuid"
)

type CenterRepository interface {
	Create(ctx context.Context, c *model.FitnessCenter) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.FitnessCenter, error)
	// Первый (и обычно единственный) центр — для сидов и форм.
	First(ctx context.Context) (*model.FitnessCenter, error)
}

type GormCenterRepository struct {
	db *gorm.DB
}

func NewGormCenterRepository(db *gorm.DB) *GormCenterRepository {
	return &GormCenterRepository{db: db}
}

func (r *GormCenterRepository) Create(ctx context.Context, c *model.FitnessCenter) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *GormCenterRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.FitnessCenter, error) {
	var c model.FitnessCenter
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *GormCenterRepository) First(ctx context.Context) (*model.FitnessCenter, error) {
	var c model.FitnessCenter
	if err := r.db.WithContext(ctx).Order("name ASC").First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}
