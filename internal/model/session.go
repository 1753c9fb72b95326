package model

import (
	"time"

	"github.com/google/uuid"
)

// web_sessions — серверные сессии браузерной авторизации.
// Токен выдаётся в cookie, срок жизни проверяется при каждом запросе.
type WebSession struct {
	Token string `gorm:"type:varchar(64);primaryKey"`

	UserID uuid.UUID `gorm:"type:uuid;not null;index"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	ExpiresAt time.Time `gorm:"not null;index"`

	User *User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
