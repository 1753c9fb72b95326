package service

import (
	"context"
	"sort"
	"time"

	"github.com/dvasylenko/fitbook/internal/booking"
	"github.com/dvasylenko/fitbook/internal/model"
	"github.com/dvasylenko/fitbook/internal/repository"
	"github.com/google/uuid"
)

// Счётчики для административной панели.
type AdminStats struct {
	Users        int64
	Trainers     int64
	Services     int64
	Reservations int64
}

// Сводка личного кабинета.
type UserDashboard struct {
	TotalReservations     int
	CompletedReservations int
	CanceledReservations  int
	// Суммарно потрачено на брони, в центах.
	TotalSpent int64

	Next   *ReservationView
	Recent []ReservationView

	// Брони по дням за последнюю неделю (для графика).
	ChartLabels []string
	ChartValues []int

	Recommendations []string
}

// DashboardService — read-only проекции для кабинета и админки.
type DashboardService struct {
	users        repository.UserRepository
	trainers     repository.TrainerRepository
	services     repository.ServiceRepository
	reservations repository.ReservationRepository

	now func() time.Time
}

func NewDashboardService(
	users repository.UserRepository,
	trainers repository.TrainerRepository,
	services repository.ServiceRepository,
	reservations repository.ReservationRepository,
) *DashboardService {
	return &DashboardService{
		users:        users,
		trainers:     trainers,
		services:     services,
		reservations: reservations,
		now:          time.Now,
	}
}

func (s *DashboardService) AdminStats(ctx context.Context) (AdminStats, error) {
	var stats AdminStats
	var err error

	if stats.Users, err = s.users.Count(ctx); err != nil {
		return AdminStats{}, err
	}
	if stats.Trainers, err = s.trainers.Count(ctx); err != nil {
		return AdminStats{}, err
	}
	if stats.Services, err = s.services.Count(ctx); err != nil {
		return AdminStats{}, err
	}
	if stats.Reservations, err = s.reservations.Count(ctx); err != nil {
		return AdminStats{}, err
	}

	return stats, nil
}

// UserSummary собирает сводку кабинета: счётчики, ближайшая бронь,
// последние три, недельный график и рекомендации.
func (s *DashboardService) UserSummary(ctx context.Context, userID uuid.UUID) (UserDashboard, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return UserDashboard{}, asNotFound(err)
	}

	list, err := s.reservations.ListByUser(ctx, userID)
	if err != nil {
		return UserDashboard{}, err
	}

	now := s.now()
	d := UserDashboard{TotalReservations: len(list)}

	views := make([]ReservationView, 0, len(list))
	var upcoming []ReservationView

	for _, r := range list {
		v := ReservationView{Reservation: r, UIStatus: booking.DeriveDisplayStatus(string(r.Status), r.Date, r.Time, now)}
		views = append(views, v)

		switch v.UIStatus {
		case booking.DisplayCanceled:
			d.CanceledReservations++
		case booking.DisplayPast:
			d.CompletedReservations++
		default:
			upcoming = append(upcoming, v)
		}

		if r.Service != nil {
			d.TotalSpent += r.Service.Price
		}
	}

	if len(upcoming) > 0 {
		next := upcoming[0]
		nextAt, _ := booking.SlotTime(next.Date, next.Time, now.Location())
		for _, v := range upcoming[1:] {
			at, err := booking.SlotTime(v.Date, v.Time, now.Location())
			if err != nil {
				continue
			}
			if at.Before(nextAt) {
				next, nextAt = v, at
			}
		}
		d.Next = &next
	}

	// Последние три по дате-времени, новые сверху.
	sorted := make([]ReservationView, len(views))
	copy(sorted, views)
	sort.Slice(sorted, func(i, j int) bool {
		a, errA := booking.SlotTime(sorted[i].Date, sorted[i].Time, now.Location())
		b, errB := booking.SlotTime(sorted[j].Date, sorted[j].Time, now.Location())
		if errA != nil || errB != nil {
			return errB != nil && errA == nil
		}
		return a.After(b)
	})
	if len(sorted) > 3 {
		sorted = sorted[:3]
	}
	d.Recent = sorted

	// График: количество броней по дням за последние 7 суток.
	start := now.AddDate(0, 0, -6)
	counts := map[string]int{}
	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i).Format(booking.DateLayout)
		d.ChartLabels = append(d.ChartLabels, day)
		counts[day] = 0
	}
	for _, r := range list {
		if _, ok := counts[r.Date]; ok {
			counts[r.Date]++
		}
	}
	for _, label := range d.ChartLabels {
		d.ChartValues = append(d.ChartValues, counts[label])
	}

	d.Recommendations = recommendations(user, d, len(upcoming))

	return d, nil
}

func recommendations(user *model.User, d UserDashboard, upcoming int) []string {
	var recs []string

	if upcoming == 0 {
		recs = append(recs, "You have no upcoming sessions. Book a new training.")
	}
	if user.Funds < 2000 {
		recs = append(recs, "Your balance is getting low.")
	}
	if d.TotalReservations >= 5 && d.CompletedReservations == d.TotalReservations {
		recs = append(recs, "Great consistency!")
	}

	if len(recs) == 0 {
		recs = append(recs, "Keep it up! Explore new services.")
	}
	return recs
}
