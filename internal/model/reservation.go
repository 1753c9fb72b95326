package model

import (
	"time"

	"github.com/google/uuid"
)

// Персистентный статус брони.
type ReservationStatus string

const (
	ReservationStatusActive    ReservationStatus = "active"
	ReservationStatusCanceled  ReservationStatus = "canceled"
	ReservationStatusCompleted ReservationStatus = "completed"
)

// reservations
//
// Дата и время хранятся строками в нормализованном виде
// ("2006-01-02" и "15:04"); легаси-формат "02.01.2006" принимается
// на входе и нормализуется до записи.
type Reservation struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	TrainerID uuid.UUID `gorm:"type:uuid;not null;index;index:idx_active_trainer_slot,unique,where:status = 'active'"`
	ServiceID uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`

	Date string `gorm:"type:varchar(10);not null;index:idx_active_trainer_slot,unique,where:status = 'active'"`
	Time string `gorm:"type:varchar(5);not null;index:idx_active_trainer_slot,unique,where:status = 'active'"`

	Status ReservationStatus `gorm:"type:varchar(20);not null;default:'active';index"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Trainer *Trainer `gorm:"foreignKey:TrainerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Service *Service `gorm:"foreignKey:ServiceID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	User    *User    `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}
