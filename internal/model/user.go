package model

import (
	"time"

	"github.com/google/uuid"
)

// users
type User struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	Login        string `gorm:"type:varchar(50);not null;uniqueIndex"`
	PasswordHash string `gorm:"type:varchar(255);not null"`

	BirthDate string `gorm:"type:varchar(10)"`
	Phone     string `gorm:"type:varchar(50)"`
	Email     string `gorm:"type:varchar(150);not null"`

	// Telegram-чат для уведомлений, 0 — не привязан.
	TelegramID int64 `gorm:"index"`

	// Баланс в центах. Меняется только через леджер.
	Funds int64 `gorm:"not null;default:0"`

	IsAdmin  bool `gorm:"not null;default:false"`
	IsBanned bool `gorm:"not null;default:false;index"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	// Навигационные поля (опционально, для Preload).
	Reservations []Reservation `gorm:"foreignKey:UserID"`
	Transactions []Transaction `gorm:"foreignKey:UserID"`
}

// registration_logs — след о каждой регистрации, пишется один раз.
type RegistrationLog struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	Login string `gorm:"type:varchar(50);not null"`
	Email string `gorm:"type:varchar(150);not null"`
	Phone string `gorm:"type:varchar(50)"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
}
