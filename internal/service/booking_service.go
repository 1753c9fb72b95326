package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/dvasylenko/fitbook/internal/booking"
	"github.com/dvasylenko/fitbook/internal/model"
	"github.com/dvasylenko/fitbook/internal/notify"
	"github.com/dvasylenko/fitbook/internal/repository"
	"github.com/google/uuid"
)

// Actor — кто выполняет операцию над бронью.
type Actor struct {
	ID      uuid.UUID
	IsAdmin bool
}

// Исход отмены. Пути намеренно разные: клиент отменяет со
// возвратом средств и удалением строки, администратор — мягко,
// без движения средств, с записью в аудит.
type CancelOutcome string

const (
	OutcomeDeleted      CancelOutcome = "deleted"
	OutcomeSoftCanceled CancelOutcome = "soft_canceled"
)

// Бронь с вычисленным отображаемым статусом.
type ReservationView struct {
	model.Reservation
	UIStatus booking.DisplayStatus
}

// Брони пользователя, сгруппированные для кабинета.
type GroupedReservations struct {
	Today    []ReservationView
	Upcoming []ReservationView
	Past     []ReservationView
	Canceled []ReservationView
}

// BookingService — жизненный цикл брони: создание, перенос,
// отмена/восстановление, выборки. Денежные эффекты идут через
// леджер в одной транзакции с изменением брони.
type BookingService struct {
	db *gorm.DB

	reservations repository.ReservationRepository
	users        repository.UserRepository
	trainers     repository.TrainerRepository
	services     repository.ServiceRepository

	ledger     *Ledger
	audit      *AuditRecorder
	dispatcher *notify.Dispatcher

	now func() time.Time
}

func NewBookingService(
	db *gorm.DB,
	reservations repository.ReservationRepository,
	users repository.UserRepository,
	trainers repository.TrainerRepository,
	services repository.ServiceRepository,
	ledger *Ledger,
	audit *AuditRecorder,
	dispatcher *notify.Dispatcher,
) *BookingService {
	return &BookingService{
		db:           db,
		reservations: reservations,
		users:        users,
		trainers:     trainers,
		services:     services,
		ledger:       ledger,
		audit:        audit,
		dispatcher:   dispatcher,
		now:          time.Now,
	}
}

// Create бронирует слот: вставка брони и списание цены услуги —
// одна транзакция БД. Слот нормализуется до записи (парсинг
// принимает и легаси-формат даты). Занятый слот — ErrSlotTaken,
// нехватка средств — ErrInsufficientFunds, транзакция целиком
// откатывается.
func (s *BookingService) Create(
	ctx context.Context,
	userID, serviceID, trainerID uuid.UUID,
	rawDate, rawTime string,
) (*model.Reservation, error) {
	slot, err := booking.ParseSlot(rawDate, rawTime)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, asNotFound(err)
	}
	if user.IsBanned {
		return nil, ErrUserBanned
	}

	trainer, err := s.trainers.GetByID(ctx, trainerID)
	if err != nil {
		return nil, asNotFound(err)
	}
	svc, err := s.services.GetByID(ctx, serviceID)
	if err != nil {
		return nil, asNotFound(err)
	}
	if !trainer.IsActive || !svc.IsActive {
		return nil, ErrNotFound
	}

	res := &model.Reservation{
		ID:        uuid.New(),
		TrainerID: trainerID,
		ServiceID: serviceID,
		UserID:    userID,
		Date:      slot.Date,
		Time:      slot.Time,
		Status:    model.ReservationStatusActive,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.reservations.WithTx(tx).Create(ctx, res); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrSlotTaken
			}
			return err
		}
		return s.ledger.Debit(ctx, tx, userID, svc.Price, model.TransactionTypePayment)
	})
	if err != nil {
		return nil, err
	}

	s.publish(notify.Message{
		Kind:           notify.KindBookingConfirmed,
		RecipientEmail: user.Email,
		RecipientName:  user.Login,
		TelegramID:     user.TelegramID,
		Payload: map[string]string{
			"service": svc.Name,
			"trainer": trainer.Name,
			"slot":    booking.FormatSlotForUser(slot.Date, slot.Time, s.now().Location()),
		},
	})

	return res, nil
}

// Reschedule переносит бронь на новый слот. Занятый другим клиентом
// слот того же тренера — ErrSlotTaken, бронь остаётся нетронутой.
// Административный перенос попадает в аудит, клиентский — нет.
func (s *BookingService) Reschedule(
	ctx context.Context,
	reservationID uuid.UUID,
	actor Actor,
	rawDate, rawTime string,
) (*model.Reservation, error) {
	res, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return nil, asNotFound(err)
	}
	if !actor.IsAdmin && res.UserID != actor.ID {
		return nil, ErrNotFound
	}

	slot, err := booking.ParseSlot(rawDate, rawTime)
	if err != nil {
		return nil, err
	}

	// check-then-act; частичный уникальный индекс по активным броням
	// подстрахует от гонки на записи.
	_, err = s.reservations.FindActiveBySlot(ctx, res.TrainerID, slot.Date, slot.Time, &res.ID)
	if err == nil {
		return nil, ErrSlotTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	oldDate, oldTime := res.Date, res.Time
	if err := s.reservations.UpdateSlot(ctx, reservationID, slot.Date, slot.Time); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}
	res.Date, res.Time = slot.Date, slot.Time

	if actor.IsAdmin {
		s.recordAudit(ctx, actor.ID, model.AuditActionReschedule, "reservation", res.ID, map[string]any{
			"from": fmt.Sprintf("%s %s", oldDate, oldTime),
			"to":   fmt.Sprintf("%s %s", slot.Date, slot.Time),
		})
	}

	if res.User != nil {
		s.publish(notify.Message{
			Kind:           notify.KindBookingUpdated,
			RecipientEmail: res.User.Email,
			RecipientName:  res.User.Login,
			TelegramID:     res.User.TelegramID,
			Payload: map[string]string{
				"slot": booking.FormatSlotForUser(slot.Date, slot.Time, s.now().Location()),
			},
		})
	}

	return res, nil
}

// CancelSelf — самостоятельная отмена клиентом: возврат цены услуги
// на баланс (запись refund в леджере) и жёсткое удаление строки —
// одной транзакцией.
func (s *BookingService) CancelSelf(ctx context.Context, reservationID, userID uuid.UUID) (CancelOutcome, error) {
	res, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return "", asNotFound(err)
	}
	if res.UserID != userID {
		// Чужая бронь для клиента неотличима от несуществующей.
		return "", ErrNotFound
	}
	if res.Service == nil {
		return "", fmt.Errorf("reservation %s: service not resolved", reservationID)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.ledger.Credit(ctx, tx, userID, res.Service.Price, model.TransactionTypeRefund); err != nil {
			return err
		}
		return s.reservations.WithTx(tx).Delete(ctx, reservationID)
	})
	if err != nil {
		return "", err
	}

	if res.User != nil {
		s.publish(notify.Message{
			Kind:           notify.KindBookingCanceled,
			RecipientEmail: res.User.Email,
			RecipientName:  res.User.Login,
			TelegramID:     res.User.TelegramID,
		})
	}

	return OutcomeDeleted, nil
}

// CancelByAdmin — административная отмена: строка остаётся со
// статусом canceled, средства не трогаются, действие аудируется.
func (s *BookingService) CancelByAdmin(ctx context.Context, reservationID, actorID uuid.UUID) (CancelOutcome, error) {
	res, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return "", asNotFound(err)
	}

	if err := s.reservations.UpdateStatus(ctx, reservationID, model.ReservationStatusCanceled); err != nil {
		return "", err
	}

	s.recordAudit(ctx, actorID, model.AuditActionCancel, "reservation", res.ID, nil)

	if res.User != nil {
		s.publish(notify.Message{
			Kind:           notify.KindBookingCanceled,
			RecipientEmail: res.User.Email,
			RecipientName:  res.User.Login,
			TelegramID:     res.User.TelegramID,
		})
	}

	return OutcomeSoftCanceled, nil
}

// Restore возвращает административно отменённую бронь в active.
// Средства не трогаются: административная отмена их и не трогала.
func (s *BookingService) Restore(ctx context.Context, reservationID, actorID uuid.UUID) (*model.Reservation, error) {
	res, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return nil, asNotFound(err)
	}

	// За время отмены слот мог занять другой клиент.
	_, err = s.reservations.FindActiveBySlot(ctx, res.TrainerID, res.Date, res.Time, &res.ID)
	if err == nil {
		return nil, ErrSlotTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := s.reservations.UpdateStatus(ctx, reservationID, model.ReservationStatusActive); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}
	res.Status = model.ReservationStatusActive

	s.recordAudit(ctx, actorID, model.AuditActionRestore, "reservation", res.ID, nil)

	if res.User != nil {
		s.publish(notify.Message{
			Kind:           notify.KindBookingRestored,
			RecipientEmail: res.User.Email,
			RecipientName:  res.User.Login,
			TelegramID:     res.User.TelegramID,
			Payload: map[string]string{
				"slot": booking.FormatSlotForUser(res.Date, res.Time, s.now().Location()),
			},
		})
	}

	return res, nil
}

// Get возвращает бронь со связями.
func (s *BookingService) Get(ctx context.Context, reservationID uuid.UUID) (*model.Reservation, error) {
	res, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return nil, asNotFound(err)
	}
	return res, nil
}

// ListForUser группирует брони пользователя по отображаемому статусу.
func (s *BookingService) ListForUser(ctx context.Context, userID uuid.UUID) (GroupedReservations, error) {
	list, err := s.reservations.ListByUser(ctx, userID)
	if err != nil {
		return GroupedReservations{}, err
	}

	now := s.now()
	var g GroupedReservations
	for _, r := range list {
		v := ReservationView{Reservation: r, UIStatus: booking.DeriveDisplayStatus(string(r.Status), r.Date, r.Time, now)}
		switch v.UIStatus {
		case booking.DisplayCanceled:
			g.Canceled = append(g.Canceled, v)
		case booking.DisplayToday:
			g.Today = append(g.Today, v)
		case booking.DisplayPast:
			g.Past = append(g.Past, v)
		default:
			g.Upcoming = append(g.Upcoming, v)
		}
	}
	return g, nil
}

// ListForAdmin — административная выборка: фильтры хранилища,
// фильтр по вычисленному статусу и пагинация поверх.
func (s *BookingService) ListForAdmin(
	ctx context.Context,
	f repository.ReservationFilter,
	uiStatus string,
	page, pageSize int,
) (booking.Page[ReservationView], error) {
	list, err := s.reservations.ListFiltered(ctx, f)
	if err != nil {
		return booking.Page[ReservationView]{}, err
	}

	now := s.now()
	views := make([]ReservationView, 0, len(list))
	for _, r := range list {
		v := ReservationView{Reservation: r, UIStatus: booking.DeriveDisplayStatus(string(r.Status), r.Date, r.Time, now)}
		if uiStatus == "" || uiStatus == "all" || string(v.UIStatus) == uiStatus {
			views = append(views, v)
		}
	}

	return booking.Paginate(views, page, pageSize), nil
}

func (s *BookingService) publish(msg notify.Message) {
	if s.dispatcher != nil {
		s.dispatcher.Publish(msg)
	}
}

func (s *BookingService) recordAudit(
	ctx context.Context,
	actorID uuid.UUID,
	action model.AuditAction,
	entity string,
	entityID uuid.UUID,
	details map[string]any,
) {
	if s.audit == nil {
		return
	}
	id := entityID
	if err := s.audit.Record(ctx, actorID, action, entity, &id, details); err != nil {
		logAuditFailure(action, entity, err)
	}
}
