package server

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dvasylenko/fitbook/internal/service"
)

// Server связывает сервисный слой с HTTP-маршрутами.
type Server struct {
	identity  *service.IdentityService
	bookings  *service.BookingService
	catalog   *service.CatalogService
	payments  *service.PaymentService
	dashboard *service.DashboardService
	ledger    *service.Ledger
	audit     *service.AuditRecorder

	sessionTTL time.Duration
}

func New(
	identity *service.IdentityService,
	bookings *service.BookingService,
	catalog *service.CatalogService,
	payments *service.PaymentService,
	dashboard *service.DashboardService,
	ledger *service.Ledger,
	audit *service.AuditRecorder,
	sessionTTL time.Duration,
) *Server {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &Server{
		identity:   identity,
		bookings:   bookings,
		catalog:    catalog,
		payments:   payments,
		dashboard:  dashboard,
		ledger:     ledger,
		audit:      audit,
		sessionTTL: sessionTTL,
	}
}

// Router собирает маршруты и middleware.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/logout", s.handleLogout)

		// Каталог открыт без авторизации.
		r.Get("/services", s.handleListServices)
		r.Get("/services/{id}", s.handleGetService)
		r.Get("/services/{id}/trainers", s.handleServiceTrainers)
		r.Get("/trainers", s.handleListTrainers)
		r.Get("/trainers/{id}", s.handleTrainerProfile)

		// Личный кабинет.
		r.Group(func(r chi.Router) {
			r.Use(s.requireUser)

			r.Post("/services/{id}/book", s.handleBook)
			r.Post("/trainers/{id}/reviews", s.handleAddReview)

			r.Get("/reservations", s.handleMyReservations)
			r.Post("/reservations/{id}/reschedule", s.handleRescheduleSelf)
			r.Post("/reservations/{id}/cancel", s.handleCancelSelf)

			r.Get("/profile", s.handleProfile)
			r.Put("/profile", s.handleUpdateProfile)
			r.Post("/profile/password", s.handleChangePassword)
			r.Get("/profile/dashboard", s.handleUserDashboard)
			r.Get("/profile/transactions", s.handleTransactions)
			r.Post("/profile/topup", s.handleStartTopUp)
			r.Get("/profile/topup/confirm", s.handleConfirmTopUp)
		})

		// Админка.
		r.Route("/admin", func(r chi.Router) {
			r.Use(s.requireUser, s.requireAdmin)

			r.Get("/stats", s.handleAdminStats)

			r.Post("/services", s.handleCreateService)
			r.Put("/services/{id}", s.handleUpdateService)
			r.Delete("/services/{id}", s.handleDeactivateService)

			r.Post("/trainers", s.handleCreateTrainer)
			r.Put("/trainers/{id}", s.handleUpdateTrainer)
			r.Delete("/trainers/{id}", s.handleDeactivateTrainer)

			r.Get("/reservations", s.handleAdminReservations)
			r.Get("/reservations/{id}", s.handleAdminGetReservation)
			r.Get("/reservations/{id}/log", s.handleReservationLog)
			r.Post("/reservations/{id}/reschedule", s.handleRescheduleAdmin)
			r.Post("/reservations/{id}/cancel", s.handleCancelAdmin)
			r.Post("/reservations/{id}/restore", s.handleRestore)

			r.Get("/users", s.handleListUsers)
			r.Post("/users/{id}/ban", s.handleBanUser)
			r.Post("/users/{id}/unban", s.handleUnbanUser)
			r.Post("/users/{id}/topup", s.handleManualTopUp)

			r.Get("/audit", s.handleAuditLog)
		})
	})

	return r
}
