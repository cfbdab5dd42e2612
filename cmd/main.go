package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelReservationHandler "github.com/katiabooking/KB-BookingService/internal/api/handlers/cancel_reservation"
	checkConflictHandler "github.com/katiabooking/KB-BookingService/internal/api/handlers/check_conflict"
	confirmHoldHandler "github.com/katiabooking/KB-BookingService/internal/api/handlers/confirm_hold"
	createReservationHandler "github.com/katiabooking/KB-BookingService/internal/api/handlers/create_reservation"
	deleteSalonPolicyHandler "github.com/katiabooking/KB-BookingService/internal/api/handlers/delete_salon_policy"
	getAvailableMastersHandler "github.com/katiabooking/KB-BookingService/internal/api/handlers/get_available_masters"
	getAvailableSlotsHandler "github.com/katiabooking/KB-BookingService/internal/api/handlers/get_available_slots"
	getReservationHandler "github.com/katiabooking/KB-BookingService/internal/api/handlers/get_reservation"
	getSalonPoliciesHandler "github.com/katiabooking/KB-BookingService/internal/api/handlers/get_salon_policies"
	getSalonPolicyHandler "github.com/katiabooking/KB-BookingService/internal/api/handlers/get_salon_policy"
	getSalonReservationsHandler "github.com/katiabooking/KB-BookingService/internal/api/handlers/get_salon_reservations"
	getUserReservationsHandler "github.com/katiabooking/KB-BookingService/internal/api/handlers/get_user_reservations"
	suggestAlternativesHandler "github.com/katiabooking/KB-BookingService/internal/api/handlers/suggest_alternatives"
	updateSalonPolicyHandler "github.com/katiabooking/KB-BookingService/internal/api/handlers/update_salon_policy"
	"github.com/katiabooking/KB-BookingService/internal/api/middleware"
	"github.com/katiabooking/KB-BookingService/internal/config"
	"github.com/katiabooking/KB-BookingService/internal/domain"
	calendarRepo "github.com/katiabooking/KB-BookingService/internal/infra/storage/calendar"
	"github.com/katiabooking/KB-BookingService/internal/infra/storage/calendarmem"
	"github.com/katiabooking/KB-BookingService/internal/infra/storage/calendarredis"
	policyRepo "github.com/katiabooking/KB-BookingService/internal/infra/storage/policy"
	payServiceClient "github.com/katiabooking/KB-BookingService/internal/integrations/payservice"
	staffServiceClient "github.com/katiabooking/KB-BookingService/internal/integrations/staffservice"
	policyService "github.com/katiabooking/KB-BookingService/internal/service/policy"
	reservationsService "github.com/katiabooking/KB-BookingService/internal/service/reservations"
	cancelBookingUC "github.com/katiabooking/KB-BookingService/internal/usecase/cancel_booking"
	checkConflictUC "github.com/katiabooking/KB-BookingService/internal/usecase/check_conflict"
	confirmHoldUC "github.com/katiabooking/KB-BookingService/internal/usecase/confirm_hold"
	getAvailableMastersUC "github.com/katiabooking/KB-BookingService/internal/usecase/get_available_masters"
	getAvailableSlotsUC "github.com/katiabooking/KB-BookingService/internal/usecase/get_available_slots"
	reserveSlotUC "github.com/katiabooking/KB-BookingService/internal/usecase/reserve_slot"
	suggestAlternativesUC "github.com/katiabooking/KB-BookingService/internal/usecase/suggest_alternatives"
	"github.com/katiabooking/KB-BookingService/pkg/logger"
	"github.com/katiabooking/KB-BookingService/pkg/metrics"
	"github.com/katiabooking/KB-BookingService/pkg/txmanager"
)

// CalendarStore общий интерфейс трех бэкендов календаря
type CalendarStore interface {
	Get(ctx context.Context, masterID int64, date time.Time) ([]*domain.ReservationRecord, error)
	Update(
		ctx context.Context,
		masterID int64,
		date time.Time,
		fn func(recs []*domain.ReservationRecord) ([]*domain.ReservationRecord, error),
	) error
	GetByID(ctx context.Context, id string) (*domain.ReservationRecord, error)
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting KB-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем интеграционных клиентов
	staffClient := staffServiceClient.NewClient(
		cfg.StaffService.URL,
		time.Duration(cfg.StaffService.Timeout)*time.Second,
		log,
	)
	payClient := payServiceClient.NewClient(
		cfg.PayService.URL,
		time.Duration(cfg.PayService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (StaffService=%s timeout=%ds, PayService=%s timeout=%ds)",
		cfg.StaffService.URL, cfg.StaffService.Timeout, cfg.PayService.URL, cfg.PayService.Timeout)

	// Инициализируем репозитории
	txMgr := txmanager.NewTransactionManager(db)
	calendarRepository := calendarRepo.NewRepository(db, txMgr)
	policyRepository := policyRepo.NewRepository(db)

	// Выбираем бэкенд календарей. Чтения и запись горячего пути идут через
	// него; листинги и политики всегда живут в postgres
	var calendarStore CalendarStore
	switch cfg.Storage.CalendarBackend {
	case "postgres":
		calendarStore = calendarRepository
	case "redis":
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		defer redisClient.Close()
		calendarStore = calendarredis.NewStore(redisClient)
	case "memory":
		calendarStore = calendarmem.NewStore()
	default:
		log.Fatal("Unknown calendar backend: %s", cfg.Storage.CalendarBackend)
	}
	log.Info("Calendar backend: %s", cfg.Storage.CalendarBackend)

	// Инициализируем сервисы
	reservationsSvc := reservationsService.NewService(calendarRepository, staffClient, log)
	policySvc := policyService.NewService(policyRepository, staffClient, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(calendarStore, policyRepository, staffClient, log)
	getAvailableMastersUseCase := getAvailableMastersUC.NewUseCase(calendarStore, staffClient, log)
	checkConflictUseCase := checkConflictUC.NewUseCase(calendarStore, staffClient, log)
	suggestAlternativesUseCase := suggestAlternativesUC.NewUseCase(calendarStore, policyRepository, staffClient, log)
	reserveSlotUseCase := reserveSlotUC.NewUseCase(calendarStore, policyRepository, staffClient, log)
	confirmHoldUseCase := confirmHoldUC.NewUseCase(calendarStore, log)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(calendarStore, policyRepository, payClient, log)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAvailableMasters := getAvailableMastersHandler.NewHandler(getAvailableMastersUseCase, log)
	checkConflict := checkConflictHandler.NewHandler(checkConflictUseCase, log)
	suggestAlternatives := suggestAlternativesHandler.NewHandler(suggestAlternativesUseCase, log)
	createReservation := createReservationHandler.NewHandler(reserveSlotUseCase, log)
	confirmHold := confirmHoldHandler.NewHandler(confirmHoldUseCase, log)
	cancelReservation := cancelReservationHandler.NewHandler(cancelBookingUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationsSvc, log)
	getSalonReservations := getSalonReservationsHandler.NewHandler(reservationsSvc, log)
	getSalonPolicy := getSalonPolicyHandler.NewHandler(policySvc, log)
	updateSalonPolicy := updateSalonPolicyHandler.NewHandler(policySvc, log)
	getSalonPolicies := getSalonPoliciesHandler.NewHandler(policySvc, log)
	deleteSalonPolicy := deleteSalonPolicyHandler.NewHandler(policySvc, log)

	if cfg.Metrics.Enabled {
		createReservation.WithMetrics(metricsCollector)
		confirmHold.WithMetrics(metricsCollector)
		cancelReservation.WithMetrics(metricsCollector)
	}

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты мастера на дату
	api.HandleFunc("/masters/{masterId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Свободные мастера салона на точный интервал
	api.HandleFunc("/salons/{salonId}/available-masters",
		getAvailableMasters.Handle).Methods(http.MethodGet)

	// Проверка занятости точного интервала
	api.HandleFunc("/masters/{masterId}/check-conflict",
		checkConflict.Handle).Methods(http.MethodPost)

	// Подбор альтернатив занятому интервалу
	api.HandleFunc("/masters/{masterId}/suggest-alternatives",
		suggestAlternatives.Handle).Methods(http.MethodPost)

	// Действующая политика салона/мастера
	api.HandleFunc("/salons/{salonId}/policy",
		getSalonPolicy.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)
	if cfg.RateLimit.Enabled {
		protected.Use(middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		log.Info("Rate limit middleware enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// --- Резервирование ---
	// Создание холда или подтвержденной записи
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Подтверждение холда
	protected.HandleFunc("/reservations/{holdId}/confirm", confirmHold.Handle).Methods(http.MethodPost)

	// Отмена записи с возвратом депозита
	protected.HandleFunc("/reservations/{id}/cancel", cancelReservation.Handle).Methods(http.MethodPost)

	// Запись по ID
	protected.HandleFunc("/reservations/{id}", getReservation.Handle).Methods(http.MethodGet)

	// История записей клиента
	protected.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)

	// --- Управление салоном (для сотрудников) ---
	// Записи салона с фильтрацией
	protected.HandleFunc("/salons/{salonId}/reservations", getSalonReservations.Handle).Methods(http.MethodGet)

	// Управление политиками салона/мастеров
	protected.HandleFunc("/salons/{salonId}/policies", getSalonPolicies.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/salons/{salonId}/policy", updateSalonPolicy.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/salons/{salonId}/policy", deleteSalonPolicy.Handle).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
