package model

import (
	"time"

	"github.com/google/uuid"
)

// Категории услуг каталога.
const (
	ServiceCategoryStrength = "strength"
	ServiceCategoryCardio   = "cardio"
	ServiceCategoryWellness = "wellness"
	ServiceCategoryOther    = "other"
)

// services
type Service struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	Name        string `gorm:"type:varchar(50);not null"`
	Description string `gorm:"type:varchar(255)"`

	// Длительность в минутах.
	Duration int64 `gorm:"not null"`

	// Цена в центах.
	Price int64 `gorm:"not null"`

	Category string `gorm:"type:varchar(32);not null;default:'other';index"`

	CenterID uuid.UUID `gorm:"type:uuid;index"`

	// Мягкое удаление.
	IsActive bool `gorm:"not null;default:true;index"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Center       *FitnessCenter `gorm:"foreignKey:CenterID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Reservations []Reservation  `gorm:"foreignKey:ServiceID"`
}
