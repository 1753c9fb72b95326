package server

import (
	"encoding/json"
	"time"

	"github.com/dvasylenko/fitbook/internal/model"
	"github.com/dvasylenko/fitbook/internal/service"
	"github.com/google/uuid"
)

// Ответные структуры. Модели наружу не отдаются: у пользователя есть
// хэш пароля, у броней — лишние навигационные поля.

type userView struct {
	ID         uuid.UUID `json:"id"`
	Login      string    `json:"login"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	BirthDate  string    `json:"birth_date,omitempty"`
	FundsCents int64     `json:"funds_cents"`
	IsAdmin    bool      `json:"is_admin"`
	IsBanned   bool      `json:"is_banned"`
	CreatedAt  time.Time `json:"created_at"`
}

func toUserView(u *model.User) userView {
	return userView{
		ID:         u.ID,
		Login:      u.Login,
		Email:      u.Email,
		Phone:      u.Phone,
		BirthDate:  u.BirthDate,
		FundsCents: u.Funds,
		IsAdmin:    u.IsAdmin,
		IsBanned:   u.IsBanned,
		CreatedAt:  u.CreatedAt,
	}
}

type serviceView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	DurationMin int64     `json:"duration_min"`
	PriceCents  int64     `json:"price_cents"`
	Category    string    `json:"category"`
	IsActive    bool      `json:"is_active"`
}

func toServiceView(s *model.Service) serviceView {
	return serviceView{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		DurationMin: s.Duration,
		PriceCents:  s.Price,
		Category:    s.Category,
		IsActive:    s.IsActive,
	}
}

func toServiceViews(list []model.Service) []serviceView {
	out := make([]serviceView, 0, len(list))
	for i := range list {
		out = append(out, toServiceView(&list[i]))
	}
	return out
}

type trainerView struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Specialization string    `json:"specialization,omitempty"`
	GymID          uuid.UUID `json:"gym_id"`
	IsActive       bool      `json:"is_active"`
}

func toTrainerView(t *model.Trainer) trainerView {
	return trainerView{
		ID:             t.ID,
		Name:           t.Name,
		Specialization: t.Specialization,
		GymID:          t.GymID,
		IsActive:       t.IsActive,
	}
}

func toTrainerViews(list []model.Trainer) []trainerView {
	out := make([]trainerView, 0, len(list))
	for i := range list {
		out = append(out, toTrainerView(&list[i]))
	}
	return out
}

type reviewView struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toReviewViews(list []model.Review) []reviewView {
	out := make([]reviewView, 0, len(list))
	for _, rv := range list {
		out = append(out, reviewView{
			ID:        rv.ID,
			UserID:    rv.UserID,
			Rating:    rv.Rating,
			Text:      rv.Review,
			CreatedAt: rv.CreatedAt,
		})
	}
	return out
}

type reservationView struct {
	ID       uuid.UUID `json:"id"`
	Date     string    `json:"date"`
	Time     string    `json:"time"`
	Status   string    `json:"status"`
	UIStatus string    `json:"ui_status,omitempty"`

	Trainer *trainerView `json:"trainer,omitempty"`
	Service *serviceView `json:"service,omitempty"`
	// Заполняется только в административных выборках.
	User *userView `json:"user,omitempty"`
}

func toReservationView(r *model.Reservation, uiStatus string, withUser bool) reservationView {
	v := reservationView{
		ID:       r.ID,
		Date:     r.Date,
		Time:     r.Time,
		Status:   string(r.Status),
		UIStatus: uiStatus,
	}
	if r.Trainer != nil {
		tv := toTrainerView(r.Trainer)
		v.Trainer = &tv
	}
	if r.Service != nil {
		sv := toServiceView(r.Service)
		v.Service = &sv
	}
	if withUser && r.User != nil {
		uv := toUserView(r.User)
		v.User = &uv
	}
	return v
}

func toGroupedViews(list []service.ReservationView, withUser bool) []reservationView {
	out := make([]reservationView, 0, len(list))
	for i := range list {
		out = append(out, toReservationView(&list[i].Reservation, string(list[i].UIStatus), withUser))
	}
	return out
}

type transactionView struct {
	ID          uuid.UUID `json:"id"`
	AmountCents int64     `json:"amount_cents"`
	Type        string    `json:"type"`
	CreatedAt   time.Time `json:"created_at"`
}

func toTransactionViews(list []model.Transaction) []transactionView {
	out := make([]transactionView, 0, len(list))
	for _, t := range list {
		out = append(out, transactionView{
			ID:          t.ID,
			AmountCents: t.Amount,
			Type:        string(t.Type),
			CreatedAt:   t.CreatedAt,
		})
	}
	return out
}

type auditView struct {
	ID        uuid.UUID       `json:"id"`
	ActorID   uuid.UUID       `json:"actor_id"`
	Action    string          `json:"action"`
	Entity    string          `json:"entity"`
	EntityID  *uuid.UUID      `json:"entity_id,omitempty"`
	Details   json.RawMessage `json:"details,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

func toAuditViews(list []model.AuditLog) []auditView {
	out := make([]auditView, 0, len(list))
	for _, e := range list {
		out = append(out, auditView{
			ID:        e.ID,
			ActorID:   e.UserID,
			Action:    string(e.Action),
			Entity:    e.Entity,
			EntityID:  e.EntityID,
			Details:   json.RawMessage(e.Details),
			Timestamp: e.Timestamp,
		})
	}
	return out
}
