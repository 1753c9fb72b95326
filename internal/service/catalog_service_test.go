package service

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/dvasylenko/fitbook/internal/model"
	"github.com/dvasylenko/fitbook/internal/repository"
	"github.com/google/uuid"
)

func newCatalogSvc(db *gorm.DB) *CatalogService {
	return NewCatalogService(
		repository.NewGormCenterRepository(db),
		repository.NewGormTrainerRepository(db),
		repository.NewGormServiceRepository(db),
		repository.NewGormReviewRepository(db),
		NewAuditRecorder(repository.NewGormAuditRepository(db)),
	)
}

func TestCatalogService_DeactivateHidesFromCatalog(t *testing.T) {
	db := newTestDB(t)
	f := newFixture(t, db, 0, 4000)
	svc := newCatalogSvc(db)
	admin := uuid.New()

	if err := svc.DeactivateService(context.Background(), admin, f.service.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	list, err := svc.ListServices(context.Background(), repository.ServiceListOptions{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, s := range list {
		if s.ID == f.service.ID {
			t.Fatalf("deactivated service still in catalog")
		}
	}

	// Строка осталась: история броней на неё продолжает ссылаться.
	var stored model.Service
	if err := db.First(&stored, "id = ?", f.service.ID).Error; err != nil {
		t.Fatalf("load service: %v", err)
	}
	if stored.IsActive {
		t.Fatalf("expected is_active=false")
	}

	entries := auditEntries(t, db, "service", f.service.ID)
	if len(entries) != 1 || entries[0].Action != model.AuditActionDeactivate {
		t.Fatalf("expected deactivate audit entry, got %v", entries)
	}
}

func TestCatalogService_CreateAndUpdateService(t *testing.T) {
	db := newTestDB(t)
	f := newFixture(t, db, 0, 4000)
	svc := newCatalogSvc(db)
	admin := uuid.New()

	created, err := svc.CreateService(context.Background(), admin, ServiceInput{
		Name:     "yoga",
		Duration: 45,
		Price:    3000,
		CenterID: f.service.CenterID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Category != model.ServiceCategoryOther {
		t.Fatalf("expected default category, got %q", created.Category)
	}

	updated, err := svc.UpdateService(context.Background(), admin, created.ID, map[string]any{"price": int64(3500)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Price != 3500 {
		t.Fatalf("expected price 3500, got %d", updated.Price)
	}

	entries := auditEntries(t, db, "service", created.ID)
	if len(entries) != 2 {
		t.Fatalf("expected create+update audit entries, got %d", len(entries))
	}
}

func TestCatalogService_TrainerLifecycle(t *testing.T) {
	db := newTestDB(t)
	f := newFixture(t, db, 0, 4000)
	svc := newCatalogSvc(db)
	admin := uuid.New()

	trainer, err := svc.CreateTrainer(context.Background(), admin, TrainerInput{
		Name:  "new coach",
		GymID: f.trainer.GymID,
	})
	if err != nil {
		t.Fatalf("create trainer: %v", err)
	}

	if err := svc.DeactivateTrainer(context.Background(), admin, trainer.ID); err != nil {
		t.Fatalf("deactivate trainer: %v", err)
	}

	active, err := svc.ListTrainers(context.Background(), false)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	for _, tr := range active {
		if tr.ID == trainer.ID {
			t.Fatalf("deactivated trainer still listed")
		}
	}

	all, err := svc.ListTrainers(context.Background(), true)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	found := false
	for _, tr := range all {
		if tr.ID == trainer.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected deactivated trainer in full list")
	}
}

func TestCatalogService_CreateTrainer_UnknownGym(t *testing.T) {
	db := newTestDB(t)
	newFixture(t, db, 0, 4000)
	svc := newCatalogSvc(db)

	_, err := svc.CreateTrainer(context.Background(), uuid.New(), TrainerInput{Name: "x", GymID: uuid.New()})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCatalogService_Reviews(t *testing.T) {
	db := newTestDB(t)
	f := newFixture(t, db, 0, 4000)
	svc := newCatalogSvc(db)

	if _, err := svc.AddReview(context.Background(), f.user.ID, f.trainer.ID, 0, "bad"); !errors.Is(err, ErrBadAmount) {
		t.Fatalf("expected rating bounds check, got %v", err)
	}
	if _, err := svc.AddReview(context.Background(), f.user.ID, f.trainer.ID, 6, "too good"); !errors.Is(err, ErrBadAmount) {
		t.Fatalf("expected rating bounds check, got %v", err)
	}

	if _, err := svc.AddReview(context.Background(), f.user.ID, f.trainer.ID, 5, "great"); err != nil {
		t.Fatalf("add review: %v", err)
	}
	if _, err := svc.AddReview(context.Background(), f.user.ID, f.trainer.ID, 3, "ok"); err != nil {
		t.Fatalf("add review: %v", err)
	}

	profile, err := svc.GetTrainerProfile(context.Background(), f.trainer.ID)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if len(profile.Reviews) != 2 {
		t.Fatalf("expected 2 reviews, got %d", len(profile.Reviews))
	}
	if profile.Rating != 4 {
		t.Fatalf("expected average rating 4, got %v", profile.Rating)
	}
}

func TestCatalogService_EnsureDefaultCenter(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogSvc(db)

	first, err := svc.EnsureDefaultCenter(context.Background())
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}

	second, err := svc.EnsureDefaultCenter(context.Background())
	if err != nil {
		t.Fatalf("ensure again: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected idempotent seed, got %s and %s", first.ID, second.ID)
	}
}
