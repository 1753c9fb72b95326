package model

import (
	"time"

	"github.com/google/uuid"
)

// reviews — отзывы клиентов о тренерах.
type Review struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	TrainerID uuid.UUID `gorm:"type:uuid;not null;index"`
	GymID     uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`

	// Оценка 1..5.
	Rating int `gorm:"not null"`

	Review string `gorm:"type:varchar(500)"`

	CreatedAt time.Time `gorm:"not null;default:now()"`

	Trainer *Trainer `gorm:"foreignKey:TrainerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	User    *User    `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}
