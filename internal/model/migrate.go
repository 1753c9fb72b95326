package model

import "gorm.io/gorm"

// AutoMigrate выполняет миграцию всех сущностей приложения.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&FitnessCenter{},
		&User{},
		&RegistrationLog{},
		&Trainer{},
		&Service{},
		&Reservation{},
		&Transaction{},
		&AuditLog{},
		&Review{},
		&WebSession{},
		&PaymentSession{},
	)
}
