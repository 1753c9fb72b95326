package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/dvasylenko/fitbook/internal/model"
	"github.com/google/uuid"
)

type PaymentRepository interface {
	WithTx(tx *gorm.DB) PaymentRepository

	Create(ctx context.Context, s *model.PaymentSession) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.PaymentSession, error)

	// Перевод pending → credited. Возвращает false, если сессия уже
	// зачислена (повторное подтверждение не должно дать второй кредит).
	MarkCredited(ctx context.Context, id uuid.UUID) (bool, error)
}

type GormPaymentRepository struct {
	db *gorm.DB
}

func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

func (r *GormPaymentRepository) WithTx(tx *gorm.DB) PaymentRepository {
	return &GormPaymentRepository{db: tx}
}

func (r *GormPaymentRepository) Create(ctx context.Context, s *model.PaymentSession) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *GormPaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.PaymentSession, error) {
	var s model.PaymentSession
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *GormPaymentRepository) MarkCredited(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.PaymentSession{}).
		Where("id = ? AND status = ?", id, model.PaymentSessionStatusPending).
		Update("status", model.PaymentSessionStatusCredited)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
