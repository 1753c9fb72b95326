package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dvasylenko/fitbook/internal/config"
	"github.com/dvasylenko/fitbook/internal/db"
	"github.com/dvasylenko/fitbook/internal/model"
	"github.com/dvasylenko/fitbook/internal/notify"
	"github.com/dvasylenko/fitbook/internal/payments"
	"github.com/dvasylenko/fitbook/internal/repository"
	"github.com/dvasylenko/fitbook/internal/server"
	"github.com/dvasylenko/fitbook/internal/service"
)

func main() {
	// 1. Конфиг из env.
	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		log.Fatalf("load db config: %v", err)
	}
	appCfg := config.LoadAppConfig()

	// 2. Подключаемся к БД через GORM.
	gormDB, err := db.NewGormDB(dbCfg)
	if err != nil {
		log.Fatalf("init db: %v", err)
	}

	// 3. Миграции моделей.
	if err := model.AutoMigrate(gormDB); err != nil {
		log.Fatalf("auto migrate: %v", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("sql DB: %v", err)
	}
	defer sqlDB.Close()

	// 4. Репозитории (реализации на GORM).
	userRepo := repository.NewGormUserRepository(gormDB)
	centerRepo := repository.NewGormCenterRepository(gormDB)
	trainerRepo := repository.NewGormTrainerRepository(gormDB)
	serviceRepo := repository.NewGormServiceRepository(gormDB)
	reservationRepo := repository.NewGormReservationRepository(gormDB)
	transactionRepo := repository.NewGormTransactionRepository(gormDB)
	auditRepo := repository.NewGormAuditRepository(gormDB)
	reviewRepo := repository.NewGormReviewRepository(gormDB)
	sessionRepo := repository.NewGormSessionRepository(gormDB)
	paymentRepo := repository.NewGormPaymentRepository(gormDB)

	// 5. Очередь уведомлений: email всегда, telegram по наличию токена.
	var notifiers []notify.Notifier
	if appCfg.ResendAPIKey != "" {
		notifiers = append(notifiers, notify.NewEmailNotifier(appCfg.ResendAPIKey, appCfg.EmailFrom, appCfg.AdminEmail))
	}
	if appCfg.TelegramToken != "" {
		tg, err := notify.NewTelegramNotifier(appCfg.TelegramToken)
		if err != nil {
			log.Fatalf("init telegram notifier: %v", err)
		}
		notifiers = append(notifiers, tg)
	}
	dispatcher := notify.NewDispatcher(appCfg.NotifyQueueSize, notifiers...)
	defer dispatcher.Close()

	// 6. Сервисный слой.
	ledger := service.NewLedger(userRepo, transactionRepo)
	audit := service.NewAuditRecorder(auditRepo)

	bookingSvc := service.NewBookingService(gormDB, reservationRepo, userRepo, trainerRepo, serviceRepo, ledger, audit, dispatcher)
	identitySvc := service.NewIdentityService(userRepo, sessionRepo, audit, dispatcher, appCfg.SessionTTL, appCfg.BaseURL+"/login")
	catalogSvc := service.NewCatalogService(centerRepo, trainerRepo, serviceRepo, reviewRepo, audit)
	paymentSvc := service.NewPaymentService(gormDB, paymentRepo, ledger, payments.NewDevProvider(), appCfg.BaseURL)
	dashboardSvc := service.NewDashboardService(userRepo, trainerRepo, serviceRepo, reservationRepo)

	// 7. Сидируем дефолтный фитнес-центр.
	if _, err := catalogSvc.EnsureDefaultCenter(context.Background()); err != nil {
		log.Fatalf("seed fitness center: %v", err)
	}

	// 8. HTTP-сервер.
	srv := server.New(identitySvc, bookingSvc, catalogSvc, paymentSvc, dashboardSvc, ledger, audit, appCfg.SessionTTL)
	httpServer := &http.Server{
		Addr:         appCfg.HTTPAddr,
		Handler:      srv.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Printf("fitbook HTTP server listening on %s", appCfg.HTTPAddr)

	// 9. Запускаем сервер в горутине.
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http serve: %v", err)
		}
	}()

	// 10. Фоновая чистка просроченных сессий.
	cleanupCtx, cancelCleanup := context.WithCancel(context.Background())
	defer cancelCleanup()
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-cleanupCtx.Done():
				return
			case <-ticker.C:
				if err := identitySvc.PurgeExpiredSessions(cleanupCtx); err != nil {
					log.Printf("purge sessions: %v", err)
				}
			}
		}
	}()

	// 11. Грейсфул-шатдаун по сигналу.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
