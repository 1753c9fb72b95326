package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/dvasylenko/fitbook/internal/model"
	"github.com/google/uuid"
)

// Фильтры административной выборки броней.
type ReservationFilter struct {
	UserID    *uuid.UUID
	TrainerID *uuid.UUID
	ServiceID *uuid.UUID
	Date      string // нормализованная дата, "" — без фильтра
	// Поиск по логину/почте клиента, имени тренера, названию услуги.
	Query string
}

type ReservationRepository interface {
	WithTx(tx *gorm.DB) ReservationRepository

	Create(ctx context.Context, res *model.Reservation) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Reservation, error)
	// Брони пользователя, по дате и времени ASC.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Reservation, error)
	// Административная выборка с фильтрами, Preload связей.
	ListFiltered(ctx context.Context, f ReservationFilter) ([]model.Reservation, error)
	Count(ctx context.Context) (int64, error)

	// Активная бронь того же тренера на тот же слот (кроме excludeID).
	FindActiveBySlot(ctx context.Context, trainerID uuid.UUID, date, timeOfDay string, excludeID *uuid.UUID) (*model.Reservation, error)

	UpdateSlot(ctx context.Context, id uuid.UUID, date, timeOfDay string) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.ReservationStatus) error
	// Жёсткое удаление — только путь самостоятельной отмены клиентом.
	Delete(ctx context.Context, id uuid.UUID) error
}

type GormReservationRepository struct {
	db *gorm.DB
}

func NewGormReservationRepository(db *gorm.DB) *GormReservationRepository {
	return &GormReservationRepository{db: db}
}

func (r *GormReservationRepository) WithTx(tx *gorm.DB) ReservationRepository {
	return &GormReservationRepository{db: tx}
}

func (r *GormReservationRepository) Create(ctx context.Context, res *model.Reservation) error {
	return r.db.WithContext(ctx).Create(res).Error
}

func (r *GormReservationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Reservation, error) {
	var res model.Reservation
	err := r.db.WithContext(ctx).
		Preload("Trainer").
		Preload("Service").
		Preload("User").
		First(&res, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *GormReservationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Reservation, error) {
	var list []model.Reservation
	err := r.db.WithContext(ctx).
		Preload("Trainer").
		Preload("Service").
		Where("user_id = ?", userID).
		Order("date ASC, time ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *GormReservationRepository) ListFiltered(ctx context.Context, f ReservationFilter) ([]model.Reservation, error) {
	q := r.db.WithContext(ctx).
		Model(&model.Reservation{}).
		Preload("Trainer").
		Preload("Service").
		Preload("User")

	if f.UserID != nil {
		q = q.Where("reservations.user_id = ?", *f.UserID)
	}
	if f.TrainerID != nil {
		q = q.Where("reservations.trainer_id = ?", *f.TrainerID)
	}
	if f.ServiceID != nil {
		q = q.Where("reservations.service_id = ?", *f.ServiceID)
	}
	if f.Date != "" {
		q = q.Where("reservations.date = ?", f.Date)
	}

	if needle := strings.ToLower(strings.TrimSpace(f.Query)); needle != "" {
		like := "%" + needle + "%"
		q = q.
			Joins("JOIN users ON users.id = reservations.user_id").
			Joins("JOIN trainers ON trainers.id = reservations.trainer_id").
			Joins("JOIN services ON services.id = reservations.service_id").
			Where(
				"LOWER(users.login) LIKE ? OR LOWER(users.email) LIKE ? OR LOWER(trainers.name) LIKE ? OR LOWER(services.name) LIKE ?",
				like, like, like, like,
			)
	}

	var list []model.Reservation
	if err := q.Order("reservations.date ASC, reservations.time ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *GormReservationRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Reservation{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *GormReservationRepository) FindActiveBySlot(
	ctx context.Context,
	trainerID uuid.UUID,
	date, timeOfDay string,
	excludeID *uuid.UUID,
) (*model.Reservation, error) {
	q := r.db.WithContext(ctx).
		Where("trainer_id = ? AND date = ? AND time = ? AND status = ?",
			trainerID, date, timeOfDay, model.ReservationStatusActive)

	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}

	var res model.Reservation
	if err := q.First(&res).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *GormReservationRepository) UpdateSlot(ctx context.Context, id uuid.UUID, date, timeOfDay string) error {
	return r.db.WithContext(ctx).
		Model(&model.Reservation{}).
		Where("id = ?", id).
		Updates(map[string]any{"date": date, "time": timeOfDay}).
		Error
}

func (r *GormReservationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ReservationStatus) error {
	return r.db.WithContext(ctx).
		Model(&model.Reservation{}).
		Where("id = ?", id).
		Update("status", status).
		Error
}

func (r *GormReservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Reservation{}, "id = ?", id).Error
}
