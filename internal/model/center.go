package model

import "github.com/google/uuid"

// fitness_centers
type FitnessCenter struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	Name     string `gorm:"type:varchar(100);not null"`
	Address  string `gorm:"type:varchar(255);not null"`
	Contacts string `gorm:"type:varchar(100);not null"`

	Trainers []Trainer `gorm:"foreignKey:GymID"`
	Services []Service `gorm:"foreignKey:CenterID"`
}
