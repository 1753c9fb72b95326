package model

import (
	"time"

	"github.com/google/uuid"
)

// Статус чекаут-сессии пополнения.
type PaymentSessionStatus string

const (
	PaymentSessionStatusPending  PaymentSessionStatus = "pending"
	PaymentSessionStatusCredited PaymentSessionStatus = "credited"
)

// payment_sessions — серверная запись о каждой чекаут-сессии.
// Сумма фиксируется до редиректа к провайдеру; при подтверждении
// зачисляется только она, параметры из callback-URL не учитываются.
type PaymentSession struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	UserID uuid.UUID `gorm:"type:uuid;not null;index"`

	// Идентификатор сессии на стороне провайдера.
	ProviderRef string `gorm:"type:varchar(128);index"`

	// Сумма пополнения в центах.
	AmountCents int64 `gorm:"not null"`

	Status PaymentSessionStatus `gorm:"type:varchar(20);not null;default:'pending';index"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	User *User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}
