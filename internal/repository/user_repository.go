package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/dvasylenko/fitbook/internal/model"
	"github.com/google/uuid"
)

type UserRepository interface {
	// Репозиторий, привязанный к транзакции tx.
	WithTx(tx *gorm.DB) UserRepository

	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByLogin(ctx context.Context, login string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Count(ctx context.Context) (int64, error)
	// Обновить профиль (login/email/phone/birth_date и т.п.).
	Updates(ctx context.Context, id uuid.UUID, updates map[string]any) error
	SetBanned(ctx context.Context, id uuid.UUID, banned bool) error

	// Условное списание: уменьшает funds только если их достаточно.
	// Возвращает false, если средств не хватило (строка не изменилась).
	TryDebitFunds(ctx context.Context, id uuid.UUID, amount int64) (bool, error)
	CreditFunds(ctx context.Context, id uuid.UUID, amount int64) error

	LogRegistration(ctx context.Context, entry *model.RegistrationLog) error
}

// Реализация на GORM.
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) WithTx(tx *gorm.DB) UserRepository {
	return &GormUserRepository{db: tx}
}

func (r *GormUserRepository) Create(ctx context.Context, u *model.User) error {
	u.Login = strings.TrimSpace(u.Login)
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *GormUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *GormUserRepository) FindByLogin(ctx context.Context, login string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("login = ?", strings.TrimSpace(login)).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *GormUserRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *GormUserRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *GormUserRepository) Updates(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Updates(updates).
		Error
}

func (r *GormUserRepository) SetBanned(ctx context.Context, id uuid.UUID, banned bool) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("is_banned", banned).
		Error
}

func (r *GormUserRepository) TryDebitFunds(ctx context.Context, id uuid.UUID, amount int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ? AND funds >= ?", id, amount).
		Update("funds", gorm.Expr("funds - ?", amount))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *GormUserRepository) CreditFunds(ctx context.Context, id uuid.UUID, amount int64) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("funds", gorm.Expr("funds + ?", amount)).
		Error
}

func (r *GormUserRepository) LogRegistration(ctx context.Context, entry *model.RegistrationLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}
