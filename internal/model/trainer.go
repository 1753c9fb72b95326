package model

import (
	"time"

	"github.com/google/uuid"
)

// trainers
type Trainer struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	Name           string `gorm:"type:varchar(255);not null"`
	Specialization string `gorm:"type:varchar(255)"`

	GymID uuid.UUID `gorm:"type:uuid;not null;index"`

	// Мягкое удаление: тренер скрывается, история броней остаётся валидной.
	IsActive bool `gorm:"not null;default:true;index"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Gym          *FitnessCenter `gorm:"foreignKey:GymID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Reservations []Reservation  `gorm:"foreignKey:TrainerID"`
}
