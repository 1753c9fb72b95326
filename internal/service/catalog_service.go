package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/dvasylenko/fitbook/internal/model"
	"github.com/dvasylenko/fitbook/internal/repository"
	"github.com/google/uuid"
)

// CatalogService — каталог услуг и тренеров плюс административный
// CRUD над ними. Удаление всегда мягкое; каждое административное
// изменение аудируется.
type CatalogService struct {
	centers  repository.CenterRepository
	trainers repository.TrainerRepository
	services repository.ServiceRepository
	reviews  repository.ReviewRepository

	audit *AuditRecorder
}

func NewCatalogService(
	centers repository.CenterRepository,
	trainers repository.TrainerRepository,
	services repository.ServiceRepository,
	reviews repository.ReviewRepository,
	audit *AuditRecorder,
) *CatalogService {
	return &CatalogService{
		centers:  centers,
		trainers: trainers,
		services: services,
		reviews:  reviews,
		audit:    audit,
	}
}

// ListServices — каталог с фильтром по категории и сортировкой.
func (s *CatalogService) ListServices(ctx context.Context, opts repository.ServiceListOptions) ([]model.Service, error) {
	return s.services.List(ctx, opts)
}

func (s *CatalogService) GetService(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	svc, err := s.services.GetByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}
	return svc, nil
}

// ServiceTrainers — тренеры зала, к которому привязана услуга.
func (s *CatalogService) ServiceTrainers(ctx context.Context, serviceID uuid.UUID) ([]model.Trainer, error) {
	svc, err := s.services.GetByID(ctx, serviceID)
	if err != nil {
		return nil, asNotFound(err)
	}
	return s.trainers.ListByGym(ctx, svc.CenterID)
}

func (s *CatalogService) ListTrainers(ctx context.Context, includeInactive bool) ([]model.Trainer, error) {
	return s.trainers.List(ctx, includeInactive)
}

// Профиль тренера: услуги его зала, отзывы, средняя оценка.
type TrainerProfile struct {
	Trainer  model.Trainer
	Services []model.Service
	Reviews  []model.Review
	Rating   float64
}

func (s *CatalogService) GetTrainerProfile(ctx context.Context, id uuid.UUID) (*TrainerProfile, error) {
	trainer, err := s.trainers.GetByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}

	services, err := s.services.ListByCenter(ctx, trainer.GymID)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviews.ListByTrainer(ctx, id)
	if err != nil {
		return nil, err
	}
	rating, err := s.reviews.AverageRating(ctx, id)
	if err != nil {
		return nil, err
	}

	return &TrainerProfile{
		Trainer:  *trainer,
		Services: services,
		Reviews:  reviews,
		Rating:   rating,
	}, nil
}

// AddReview — отзыв клиента о тренере (rating 1..5).
func (s *CatalogService) AddReview(ctx context.Context, userID, trainerID uuid.UUID, rating int, text string) (*model.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrBadAmount
	}

	trainer, err := s.trainers.GetByID(ctx, trainerID)
	if err != nil {
		return nil, asNotFound(err)
	}

	rv := &model.Review{
		ID:        uuid.New(),
		TrainerID: trainerID,
		GymID:     trainer.GymID,
		UserID:    userID,
		Rating:    rating,
		Review:    text,
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

type ServiceInput struct {
	Name        string
	Description string
	Duration    int64
	Price       int64
	Category    string
	CenterID    uuid.UUID
}

// CreateService — административное создание услуги.
func (s *CatalogService) CreateService(ctx context.Context, actorID uuid.UUID, in ServiceInput) (*model.Service, error) {
	if in.Category == "" {
		in.Category = model.ServiceCategoryOther
	}

	svc := &model.Service{
		ID:          uuid.New(),
		Name:        in.Name,
		Description: in.Description,
		Duration:    in.Duration,
		Price:       in.Price,
		Category:    in.Category,
		CenterID:    in.CenterID,
		IsActive:    true,
	}
	if err := s.services.Create(ctx, svc); err != nil {
		return nil, err
	}

	s.record(ctx, actorID, model.AuditActionCreate, "service", svc.ID)
	return svc, nil
}

func (s *CatalogService) UpdateService(ctx context.Context, actorID, id uuid.UUID, updates map[string]any) (*model.Service, error) {
	if _, err := s.services.GetByID(ctx, id); err != nil {
		return nil, asNotFound(err)
	}
	if err := s.services.Updates(ctx, id, updates); err != nil {
		return nil, err
	}

	s.record(ctx, actorID, model.AuditActionUpdate, "service", id)
	return s.services.GetByID(ctx, id)
}

// DeactivateService — мягкое удаление услуги.
func (s *CatalogService) DeactivateService(ctx context.Context, actorID, id uuid.UUID) error {
	if _, err := s.services.GetByID(ctx, id); err != nil {
		return asNotFound(err)
	}
	if err := s.services.Deactivate(ctx, id); err != nil {
		return err
	}

	s.record(ctx, actorID, model.AuditActionDeactivate, "service", id)
	return nil
}

type TrainerInput struct {
	Name           string
	Specialization string
	GymID          uuid.UUID
}

func (s *CatalogService) CreateTrainer(ctx context.Context, actorID uuid.UUID, in TrainerInput) (*model.Trainer, error) {
	if _, err := s.centers.GetByID(ctx, in.GymID); err != nil {
		return nil, asNotFound(err)
	}

	t := &model.Trainer{
		ID:             uuid.New(),
		Name:           in.Name,
		Specialization: in.Specialization,
		GymID:          in.GymID,
		IsActive:       true,
	}
	if err := s.trainers.Create(ctx, t); err != nil {
		return nil, err
	}

	s.record(ctx, actorID, model.AuditActionCreate, "trainer", t.ID)
	return t, nil
}

func (s *CatalogService) UpdateTrainer(ctx context.Context, actorID, id uuid.UUID, updates map[string]any) (*model.Trainer, error) {
	if _, err := s.trainers.GetByID(ctx, id); err != nil {
		return nil, asNotFound(err)
	}
	if err := s.trainers.Updates(ctx, id, updates); err != nil {
		return nil, err
	}

	s.record(ctx, actorID, model.AuditActionUpdate, "trainer", id)
	return s.trainers.GetByID(ctx, id)
}

// DeactivateTrainer — мягкое удаление тренера.
func (s *CatalogService) DeactivateTrainer(ctx context.Context, actorID, id uuid.UUID) error {
	if _, err := s.trainers.GetByID(ctx, id); err != nil {
		return asNotFound(err)
	}
	if err := s.trainers.Deactivate(ctx, id); err != nil {
		return err
	}

	s.record(ctx, actorID, model.AuditActionDeactivate, "trainer", id)
	return nil
}

// EnsureDefaultCenter возвращает первый фитнес-центр, создавая его
// при пустой базе (сид для форм и тренеров).
func (s *CatalogService) EnsureDefaultCenter(ctx context.Context) (*model.FitnessCenter, error) {
	c, err := s.centers.First(ctx)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	c = &model.FitnessCenter{
		ID:       uuid.New(),
		Name:     "PowerHouse Gym",
		Address:  "123 Fitness St, NY",
		Contacts: "+1 555 123 456",
	}
	if err := s.centers.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CatalogService) record(ctx context.Context, actorID uuid.UUID, action model.AuditAction, entity string, id uuid.UUID) {
	if s.audit == nil {
		return
	}
	entityID := id
	if err := s.audit.Record(ctx, actorID, action, entity, &entityID, nil); err != nil {
		// Изменение уже закоммичено; потерю записи аудита только логируем.
		logAuditFailure(action, entity, err)
	}
}
