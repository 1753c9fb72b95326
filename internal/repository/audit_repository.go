package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/dvasylenko/fitbook/internal/model"
	"github.com/google/uuid"
)

// Журнал аудита append-only: без Update/Delete.
type AuditRepository interface {
	Append(ctx context.Context, entry *model.AuditLog) error
	// Последние записи по всем сущностям, timestamp DESC.
	ListRecent(ctx context.Context, limit int) ([]model.AuditLog, error)
	// История конкретной сущности, timestamp DESC.
	ListForEntity(ctx context.Context, entity string, entityID uuid.UUID) ([]model.AuditLog, error)
}

type GormAuditRepository struct {
	db *gorm.DB
}

func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

func (r *GormAuditRepository) Append(ctx context.Context, entry *model.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *GormAuditRepository) ListRecent(ctx context.Context, limit int) ([]model.AuditLog, error) {
	if limit <= 0 {
		limit = 100
	}

	var list []model.AuditLog
	err := r.db.WithContext(ctx).
		Order("timestamp DESC").
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *GormAuditRepository) ListForEntity(ctx context.Context, entity string, entityID uuid.UUID) ([]model.AuditLog, error) {
	var list []model.AuditLog
	err := r.db.WithContext(ctx).
		Where("entity = ? AND entity_id = ?", entity, entityID).
		Order("timestamp DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
