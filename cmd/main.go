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
	_ "time/tzdata"

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelAppointmentHandler "github.com/marcolino21/gurfa-appointment-hub-sub001/internal/api/handlers/cancel_appointment"
	checkAvailabilityHandler "github.com/marcolino21/gurfa-appointment-hub-sub001/internal/api/handlers/check_availability"
	createAppointmentHandler "github.com/marcolino21/gurfa-appointment-hub-sub001/internal/api/handlers/create_appointment"
	exportCalendarHandler "github.com/marcolino21/gurfa-appointment-hub-sub001/internal/api/handlers/export_calendar"
	getAppointmentHandler "github.com/marcolino21/gurfa-appointment-hub-sub001/internal/api/handlers/get_appointment"
	getSalonPolicyHandler "github.com/marcolino21/gurfa-appointment-hub-sub001/internal/api/handlers/get_salon_policy"
	getTimeOptionsHandler "github.com/marcolino21/gurfa-appointment-hub-sub001/internal/api/handlers/get_time_options"
	listAppointmentsHandler "github.com/marcolino21/gurfa-appointment-hub-sub001/internal/api/handlers/list_appointments"
	listSalonPoliciesHandler "github.com/marcolino21/gurfa-appointment-hub-sub001/internal/api/handlers/list_salon_policies"
	moveAppointmentHandler "github.com/marcolino21/gurfa-appointment-hub-sub001/internal/api/handlers/move_appointment"
	resetSalonPolicyHandler "github.com/marcolino21/gurfa-appointment-hub-sub001/internal/api/handlers/reset_salon_policy"
	rescheduleAppointmentHandler "github.com/marcolino21/gurfa-appointment-hub-sub001/internal/api/handlers/reschedule_appointment"
	resizeAppointmentHandler "github.com/marcolino21/gurfa-appointment-hub-sub001/internal/api/handlers/resize_appointment"
	updateAppointmentStatusHandler "github.com/marcolino21/gurfa-appointment-hub-sub001/internal/api/handlers/update_appointment_status"
	updateSalonPolicyHandler "github.com/marcolino21/gurfa-appointment-hub-sub001/internal/api/handlers/update_salon_policy"
	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/api/middleware"
	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/config"
	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/domain"
	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/infra/events"
	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/infra/notify"
	appointmentRepo "github.com/marcolino21/gurfa-appointment-hub-sub001/internal/infra/storage/appointment"
	policyRepo "github.com/marcolino21/gurfa-appointment-hub-sub001/internal/infra/storage/policy"
	appointmentsService "github.com/marcolino21/gurfa-appointment-hub-sub001/internal/service/appointments"
	policyService "github.com/marcolino21/gurfa-appointment-hub-sub001/internal/service/policy"
	checkAvailabilityUC "github.com/marcolino21/gurfa-appointment-hub-sub001/internal/usecase/check_availability"
	createAppointmentUC "github.com/marcolino21/gurfa-appointment-hub-sub001/internal/usecase/create_appointment"
	exportCalendarUC "github.com/marcolino21/gurfa-appointment-hub-sub001/internal/usecase/export_calendar"
	getTimeOptionsUC "github.com/marcolino21/gurfa-appointment-hub-sub001/internal/usecase/get_time_options"
	moveAppointmentUC "github.com/marcolino21/gurfa-appointment-hub-sub001/internal/usecase/move_appointment"
	rescheduleAppointmentUC "github.com/marcolino21/gurfa-appointment-hub-sub001/internal/usecase/reschedule_appointment"
	resizeAppointmentUC "github.com/marcolino21/gurfa-appointment-hub-sub001/internal/usecase/resize_appointment"
	"github.com/marcolino21/gurfa-appointment-hub-sub001/pkg/dbmetrics"
	"github.com/marcolino21/gurfa-appointment-hub-sub001/pkg/logger"
	"github.com/marcolino21/gurfa-appointment-hub-sub001/pkg/metrics"
	"github.com/marcolino21/gurfa-appointment-hub-sub001/pkg/txmanager"
)

// eventPublisher общий интерфейс Kafka и лог-паблишера
type eventPublisher interface {
	Publish(ctx context.Context, event domain.AppointmentEvent) error
	Close() error
}

// noticeSender общий интерфейс Redis и лог-нотификатора
type noticeSender interface {
	Notify(ctx context.Context, msg notify.Message) error
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

	log.Info("Starting appointment-service...")
	log.Info("Configuration loaded from config.toml")

	location, err := cfg.Scheduling.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.Scheduling.Timezone, err)
	}
	log.Info("Scheduling timezone: %s", location)

	// Инициализируем метрики (если включены)
	// nil *metrics.Metrics безопасен: все методы проверяют получателя
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

	// Репозитории работают с *sql.DB напрямую или через обёртку с метриками
	var executor dbmetrics.DBExecutor = db
	if cfg.Metrics.Enabled {
		executor = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	}

	appointmentRepository := appointmentRepo.NewRepository(executor)
	policyRepository := policyRepo.NewRepository(executor)
	txMgr := txmanager.NewTransactionManager(executor)

	// Публикация событий: Kafka или лог
	var publisher eventPublisher
	if cfg.Kafka.Enabled {
		publisher = events.NewKafkaPublisher(
			cfg.Kafka.Brokers,
			cfg.Kafka.Topic,
			time.Duration(cfg.Kafka.WriteTimeout)*time.Second,
		)
		log.Info("Kafka publisher initialized (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	} else {
		publisher = events.NewLogPublisher(log)
		log.Info("Kafka disabled, events are written to log")
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error("Failed to close event publisher: %v", err)
		}
	}()

	// Уведомления календарю: Redis pub/sub или лог
	var notifier noticeSender
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() { _ = rdb.Close() }()

		pingCtx, pingCancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis ping failed, notices may be lost: %v", err)
		}
		pingCancel()

		notifier = notify.NewRedisNotifier(rdb, cfg.Redis.ChannelPrefix)
		log.Info("Redis notifier initialized (addr=%s, prefix=%s)", cfg.Redis.Addr, cfg.Redis.ChannelPrefix)
	} else {
		notifier = notify.NewLogNotifier(log)
		log.Info("Redis disabled, notices are written to log")
	}

	// Инициализируем сервисы
	policySvc := policyService.NewService(policyRepository, txMgr, cfg.Scheduling.Policy(), log)
	appointmentSvc := appointmentsService.NewService(appointmentRepository, publisher, txMgr, log)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		policySvc,
		txMgr,
		publisher,
		notifier,
		metricsCollector,
		location,
		log,
	)
	rescheduleAppointmentUseCase := rescheduleAppointmentUC.NewUseCase(
		appointmentRepository,
		policySvc,
		txMgr,
		publisher,
		notifier,
		metricsCollector,
		location,
		log,
	)
	moveAppointmentUseCase := moveAppointmentUC.NewUseCase(
		appointmentRepository,
		policySvc,
		txMgr,
		publisher,
		notifier,
		metricsCollector,
		location,
		log,
	)
	resizeAppointmentUseCase := resizeAppointmentUC.NewUseCase(
		appointmentRepository,
		policySvc,
		txMgr,
		publisher,
		notifier,
		metricsCollector,
		location,
		log,
	)
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		appointmentRepository,
		policySvc,
		txMgr,
		metricsCollector,
		location,
		log,
	)
	getTimeOptionsUseCase := getTimeOptionsUC.NewUseCase(policySvc, log)
	exportCalendarUseCase := exportCalendarUC.NewUseCase(appointmentRepository, txMgr, cfg.Scheduling.CalendarDomain, log)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(rescheduleAppointmentUseCase, log)
	moveAppointment := moveAppointmentHandler.NewHandler(moveAppointmentUseCase, log)
	resizeAppointment := resizeAppointmentHandler.NewHandler(resizeAppointmentUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	getTimeOptions := getTimeOptionsHandler.NewHandler(getTimeOptionsUseCase, log)
	exportCalendar := exportCalendarHandler.NewHandler(exportCalendarUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentSvc, log)
	getSalonPolicy := getSalonPolicyHandler.NewHandler(policySvc, log)
	listSalonPolicies := listSalonPoliciesHandler.NewHandler(policySvc, log)
	updateSalonPolicy := updateSalonPolicyHandler.NewHandler(policySvc, log)
	resetSalonPolicy := resetSalonPolicyHandler.NewHandler(policySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Проверка свободного интервала (подсветка при наведении в календаре)
	api.HandleFunc("/salons/{salonId}/availability", checkAvailability.Handle).Methods(http.MethodGet)

	// Варианты времени и длительности для формы записи
	api.HandleFunc("/salons/{salonId}/time-options", getTimeOptions.Handle).Methods(http.MethodGet)

	// Действующая политика расписания
	api.HandleFunc("/salons/{salonId}/policy", getSalonPolicy.Handle).Methods(http.MethodGet)

	// Выгрузка календаря сотрудника
	api.HandleFunc("/salons/{salonId}/resources/{resourceId}/calendar.ics",
		exportCalendar.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	protected.HandleFunc("/salons/{salonId}/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/salons/{salonId}/appointments", listAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/salons/{salonId}/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Перенос через форму
	protected.HandleFunc("/salons/{salonId}/appointments/{appointmentId}/schedule",
		rescheduleAppointment.Handle).Methods(http.MethodPut)

	// Перетаскивание и растягивание в календаре
	protected.HandleFunc("/salons/{salonId}/appointments/{appointmentId}/move",
		moveAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/salons/{salonId}/appointments/{appointmentId}/resize",
		resizeAppointment.Handle).Methods(http.MethodPost)

	// Статусы
	protected.HandleFunc("/salons/{salonId}/appointments/{appointmentId}/cancel",
		cancelAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/salons/{salonId}/appointments/{appointmentId}/status",
		updateAppointmentStatus.Handle).Methods(http.MethodPatch)

	// --- Политики расписания (для администраторов салона) ---
	protected.HandleFunc("/salons/{salonId}/policies", listSalonPolicies.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/salons/{salonId}/policy", updateSalonPolicy.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/salons/{salonId}/policy", resetSalonPolicy.Handle).Methods(http.MethodDelete)

	// CORS для веб-календаря и восстановление после паники
	handler := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins(cfg.Server.AllowedOrigins),
		gorillaHandlers.AllowedMethods([]string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions,
		}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", middleware.HeaderUserID}),
	)(r)
	handler = gorillaHandlers.RecoveryHandler(gorillaHandlers.RecoveryLogger(log))(handler)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
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
