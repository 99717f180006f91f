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

	cancelAppointmentHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/create_appointment"
	deleteAppointmentHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/delete_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_available_slots"
	getBusinessSettingsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_business_settings"
	getMonthCalendarHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_month_calendar"
	listAppointmentsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/list_appointments"
	rescheduleAppointmentHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/reschedule_appointment"
	updateAppointmentStatusHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/update_appointment_status"
	updateBusinessSettingsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/update_business_settings"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/config"
	settingsCache "github.com/m04kA/SMC-SchedulingService/internal/infra/cache/settings"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	settingsRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/settings"
	appointmentsService "github.com/m04kA/SMC-SchedulingService/internal/service/appointments"
	settingsService "github.com/m04kA/SMC-SchedulingService/internal/service/settings"
	cancelAppointmentUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/cancel_appointment"
	createAppointmentUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
	getMonthCalendarUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_month_calendar"
	rescheduleAppointmentUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/reschedule_appointment"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		configPath = v
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-SchedulingService...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены), nil-коллектор ничего не пишет
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

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

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	// Инициализируем репозитории и transaction manager
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	var settingsStore settingsService.SettingsRepository = settingsRepo.NewRepository(wrappedDB)

	// Кешируем настройки в Redis (если включено)
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is unavailable at %s, settings will be read from database: %v", cfg.Redis.Addr, err)
		}
		cancelPing()

		settingsStore = settingsCache.NewCache(settingsStore, rdb, cfg.Redis.TTL(), log)
		log.Info("Settings cache enabled (addr=%s, ttl=%s)", cfg.Redis.Addr, cfg.Redis.TTL())
	}

	// Инициализируем сервисы
	settingsSvc := settingsService.NewService(
		settingsStore,
		txMgr,
		cfg.Booking.DefaultRules.BookingRules(0),
		log,
	)
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		settingsSvc,
		txMgr,
		log,
	)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		settingsSvc,
		txMgr,
		metricsCollector,
		cfg.Booking.MaxWriteRetries,
		log,
	)

	rescheduleAppointmentUseCase := rescheduleAppointmentUC.NewUseCase(
		appointmentRepository,
		settingsSvc,
		txMgr,
		metricsCollector,
		cfg.Booking.MaxWriteRetries,
		log,
	)

	cancelAppointmentUseCase := cancelAppointmentUC.NewUseCase(
		appointmentRepository,
		settingsSvc,
		txMgr,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		settingsSvc,
		cfg.Booking.SlotStepMinutes,
		log,
	)

	getMonthCalendarUseCase := getMonthCalendarUC.NewUseCase(
		appointmentRepository,
		settingsSvc,
		log,
	)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(rescheduleAppointmentUseCase, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(cancelAppointmentUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getMonthCalendar := getMonthCalendarHandler.NewHandler(getMonthCalendarUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentsSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentsSvc, log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(appointmentsSvc, log)
	getBusinessSettings := getBusinessSettingsHandler.NewHandler(settingsSvc, log)
	updateBusinessSettings := updateBusinessSettingsHandler.NewHandler(settingsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без заголовка бизнеса)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PROTECTED ROUTES (требуют X-Business-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Tenant)

	// --- Запись на приём ---
	// Создание приёма, ограничено по частоте на бизнес (если включено)
	var createHandler http.Handler = http.HandlerFunc(createAppointment.Handle)
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
		createHandler = limiter.Middleware(createHandler)
		log.Info("Rate limit enabled for appointment creation (rpm=%d, burst=%d)",
			cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	}
	protected.Handle("/businesses/{businessId}/appointments", createHandler).Methods(http.MethodPost)

	// Список приёмов бизнеса
	protected.HandleFunc("/businesses/{businessId}/appointments", listAppointments.Handle).Methods(http.MethodGet)

	// Свободные слоты на дату
	protected.HandleFunc("/businesses/{businessId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Месячный календарь
	protected.HandleFunc("/businesses/{businessId}/calendar", getMonthCalendar.Handle).Methods(http.MethodGet)

	// --- Настройки бизнеса ---
	protected.HandleFunc("/businesses/{businessId}/settings", getBusinessSettings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/businesses/{businessId}/settings", updateBusinessSettings.Handle).Methods(http.MethodPut)

	// --- Отдельный приём ---
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Перенос приёма
	protected.HandleFunc("/appointments/{appointmentId}", rescheduleAppointment.Handle).Methods(http.MethodPut)

	// Отмена приёма
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// Смена статуса (completed, no_show, confirmed)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)

	// Удаление приёма
	protected.HandleFunc("/appointments/{appointmentId}", deleteAppointment.Handle).Methods(http.MethodDelete)

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

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

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
