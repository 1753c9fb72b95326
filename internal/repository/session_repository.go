package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/dvasylenko/fitbook/internal/model"
)

type SessionRepository interface {
	Create(ctx context.Context, s *model.WebSession) error
	Get(ctx context.Context, token string) (*model.WebSession, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) error
}

type GormSessionRepository struct {
	db *gorm.DB
}

func NewGormSessionRepository(db *gorm.DB) *GormSessionRepository {
	return &GormSessionRepository{db: db}
}

func (r *GormSessionRepository) Create(ctx context.Context, s *model.WebSession) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *GormSessionRepository) Get(ctx context.Context, token string) (*model.WebSession, error) {
	var s model.WebSession
	if err := r.db.WithContext(ctx).First(&s, "token = ?", token).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *GormSessionRepository) Delete(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Delete(&model.WebSession{}, "token = ?", token).Error
}

func (r *GormSessionRepository) DeleteExpired(ctx context.Context, now time.Time) error {
	return r.db.WithContext(ctx).
		Delete(&model.WebSession{}, "expires_at <= ?", now).
		Error
}
