package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/dvasylenko/fitbook/internal/model"
	"github.com/google/uuid"
)

// Леджер append-only: интерфейс намеренно без Update/Delete.
type TransactionRepository interface {
	WithTx(tx *gorm.DB) TransactionRepository

	Append(ctx context.Context, t *model.Transaction) error
	// История пользователя, новые сверху.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Transaction, error)
}

type GormTransactionRepository struct {
	db *gorm.DB
}

func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

func (r *GormTransactionRepository) WithTx(tx *gorm.DB) TransactionRepository {
	return &GormTransactionRepository{db: tx}
}

func (r *GormTransactionRepository) Append(ctx context.Context, t *model.Transaction) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *GormTransactionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Transaction, error) {
	var list []model.Transaction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
