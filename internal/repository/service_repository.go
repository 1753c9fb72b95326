package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/dvasylenko/fitbook/internal/model"
	"github.com/google/uuid"
)

// Параметры выборки каталога услуг.
type ServiceListOptions struct {
	Category        string // "" или "all" — без фильтра
	SortBy          string // "name" | "price" | "duration"
	IncludeInactive bool
}

type ServiceRepository interface {
	Create(ctx context.Context, s *model.Service) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Service, error)
	List(ctx context.Context, opts ServiceListOptions) ([]model.Service, error)
	ListByCenter(ctx context.Context, centerID uuid.UUID) ([]model.Service, error)
	Count(ctx context.Context) (int64, error)
	Updates(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type GormServiceRepository struct {
	db *gorm.DB
}

func NewGormServiceRepository(db *gorm.DB) *GormServiceRepository {
	return &GormServiceRepository{db: db}
}

func (r *GormServiceRepository) Create(ctx context.Context, s *model.Service) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *GormServiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	var s model.Service
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *GormServiceRepository) List(ctx context.Context, opts ServiceListOptions) ([]model.Service, error) {
	q := r.db.WithContext(ctx).Model(&model.Service{})

	if !opts.IncludeInactive {
		q = q.Where("is_active = ?", true)
	}
	if opts.Category != "" && opts.Category != "all" {
		q = q.Where("category = ?", opts.Category)
	}

	switch opts.SortBy {
	case "price":
		q = q.Order("price ASC")
	case "duration":
		q = q.Order("duration ASC")
	default:
		q = q.Order("name ASC")
	}

	var services []model.Service
	if err := q.Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *GormServiceRepository) ListByCenter(ctx context.Context, centerID uuid.UUID) ([]model.Service, error) {
	var services []model.Service
	err := r.db.WithContext(ctx).
		Where("center_id = ? AND is_active = ?", centerID, true).
		Order("name ASC").
		Find(&services).Error
	if err != nil {
		return nil, err
	}
	return services, nil
}

func (r *GormServiceRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Service{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *GormServiceRepository) Updates(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&model.Service{}).
		Where("id = ?", id).
		Updates(updates).
		Error
}

func (r *GormServiceRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.Service{}).
		Where("id = ?", id).
		Update("is_active", false).
		Error
}
