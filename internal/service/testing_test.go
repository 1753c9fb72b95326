package service

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/dvasylenko/fitbook/internal/model"
	"github.com/dvasylenko/fitbook/internal/repository"
)

// newTestDB поднимает sqlite в памяти со схемой, эквивалентной
// боевой (sqlite-friendly: без gen_random_uuid, id всегда задаётся
// в коде). Частичный уникальный индекс по активным броням создаётся
// как в postgres.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	schema := []string{
		`CREATE TABLE fitness_centers (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			address TEXT NOT NULL,
			contacts TEXT NOT NULL
		);`,
		`CREATE TABLE users (
			id TEXT PRIMARY KEY,
			login TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			birth_date TEXT,
			phone TEXT,
			email TEXT NOT NULL DEFAULT '',
			telegram_id INTEGER NOT NULL DEFAULT 0,
			funds INTEGER NOT NULL DEFAULT 0,
			is_admin INTEGER NOT NULL DEFAULT 0,
			is_banned INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE registration_logs (
			id TEXT PRIMARY KEY,
			login TEXT NOT NULL,
			email TEXT NOT NULL DEFAULT '',
			phone TEXT,
			created_at DATETIME
		);`,
		`CREATE TABLE trainers (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			specialization TEXT,
			gym_id TEXT NOT NULL,
			is_active INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE services (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			duration INTEGER NOT NULL,
			price INTEGER NOT NULL,
			category TEXT NOT NULL DEFAULT 'other',
			center_id TEXT,
			is_active INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE reservations (
			id TEXT PRIMARY KEY,
			trainer_id TEXT NOT NULL,
			service_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			date TEXT NOT NULL,
			time TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'active',
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE UNIQUE INDEX idx_active_trainer_slot
			ON reservations(trainer_id, date, time)
			WHERE status = 'active';`,
		`CREATE TABLE transactions (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			amount INTEGER NOT NULL,
			type TEXT NOT NULL,
			created_at DATETIME
		);`,
		`CREATE TABLE audit_logs (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			action TEXT NOT NULL,
			entity TEXT NOT NULL,
			entity_id TEXT,
			details TEXT,
			timestamp DATETIME
		);`,
		`CREATE TABLE reviews (
			id TEXT PRIMARY KEY,
			trainer_id TEXT NOT NULL,
			gym_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			rating INTEGER NOT NULL,
			review TEXT,
			created_at DATETIME
		);`,
		`CREATE TABLE web_sessions (
			token TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			created_at DATETIME,
			expires_at DATETIME NOT NULL
		);`,
		`CREATE TABLE payment_sessions (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			provider_ref TEXT,
			amount_cents INTEGER NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			created_at DATETIME,
			updated_at DATETIME
		);`,
	}
	for _, stmt := range schema {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}

	return db
}

// fixture — сквозной набор сущностей для сценарных тестов.
type fixture struct {
	db *gorm.DB

	user    *model.User
	trainer *model.Trainer
	service *model.Service
}

func newFixture(t *testing.T, db *gorm.DB, funds, price int64) *fixture {
	t.Helper()

	center := &model.FitnessCenter{ID: uuid.New(), Name: "gym", Address: "addr", Contacts: "phone"}
	if err := db.Create(center).Error; err != nil {
		t.Fatalf("seed center: %v", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Login:        "client-" + uuid.NewString()[:8],
		PasswordHash: "x",
		Email:        "client@example.com",
		Funds:        funds,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	trainer := &model.Trainer{ID: uuid.New(), Name: "coach", GymID: center.ID, IsActive: true}
	if err := db.Create(trainer).Error; err != nil {
		t.Fatalf("seed trainer: %v", err)
	}

	svc := &model.Service{
		ID:       uuid.New(),
		Name:     "personal training",
		Duration: 60,
		Price:    price,
		Category: model.ServiceCategoryStrength,
		CenterID: center.ID,
		IsActive: true,
	}
	if err := db.Create(svc).Error; err != nil {
		t.Fatalf("seed service: %v", err)
	}

	return &fixture{db: db, user: user, trainer: trainer, service: svc}
}

func newBookingService(db *gorm.DB) *BookingService {
	users := repository.NewGormUserRepository(db)
	trainers := repository.NewGormTrainerRepository(db)
	services := repository.NewGormServiceRepository(db)
	reservations := repository.NewGormReservationRepository(db)
	transactions := repository.NewGormTransactionRepository(db)
	audits := repository.NewGormAuditRepository(db)

	ledger := NewLedger(users, transactions)
	audit := NewAuditRecorder(audits)

	return NewBookingService(db, reservations, users, trainers, services, ledger, audit, nil)
}

func userFunds(t *testing.T, db *gorm.DB, id uuid.UUID) int64 {
	t.Helper()

	var u model.User
	if err := db.First(&u, "id = ?", id).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	return u.Funds
}

func userTransactions(t *testing.T, db *gorm.DB, id uuid.UUID) []model.Transaction {
	t.Helper()

	var list []model.Transaction
	if err := db.Where("user_id = ?", id).Order("created_at ASC").Find(&list).Error; err != nil {
		t.Fatalf("load transactions: %v", err)
	}
	return list
}

func auditEntries(t *testing.T, db *gorm.DB, entity string, entityID uuid.UUID) []model.AuditLog {
	t.Helper()

	var list []model.AuditLog
	if err := db.Where("entity = ? AND entity_id = ?", entity, entityID).Find(&list).Error; err != nil {
		t.Fatalf("load audit: %v", err)
	}
	return list
}
