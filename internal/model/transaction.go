package model

import (
	"time"

	"github.com/google/uuid"
)

// Тип движения средств.
type TransactionType string

const (
	TransactionTypePayment TransactionType = "payment"
	TransactionTypeRefund  TransactionType = "refund"
	TransactionTypeTopUp   TransactionType = "topup"
)

// transactions — append-only леджер движений средств.
// Записи никогда не правятся: ошибка исправляется встречной записью
// с противоположным знаком.
type Transaction struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	UserID uuid.UUID `gorm:"type:uuid;not null;index"`

	// Знаковая сумма в центах: + пополнение/возврат, − списание.
	Amount int64 `gorm:"not null"`

	Type TransactionType `gorm:"type:varchar(20);not null;index"`

	CreatedAt time.Time `gorm:"not null;default:now();index"`

	User *User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}
