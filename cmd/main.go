package main

import (
	"context"
	"database/sql"
	"errors"
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

	cancelBookingHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_available_slots"
	getReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_reservation"
	handleWebhookHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/handle_webhook"
	healthHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/health"
	listAttemptsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/list_attempts"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/availability"
	"github.com/m04kA/SMC-ReservationService/internal/config"
	snapshotCache "github.com/m04kA/SMC-ReservationService/internal/infra/cache/snapshot"
	attemptRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/attempt"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/hacomono"
	attemptsService "github.com/m04kA/SMC-ReservationService/internal/service/attempts"
	snapshotService "github.com/m04kA/SMC-ReservationService/internal/service/snapshot"
	cancelBookingUC "github.com/m04kA/SMC-ReservationService/internal/usecase/cancel_booking"
	createBookingUC "github.com/m04kA/SMC-ReservationService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-ReservationService/internal/usecase/get_available_slots"
	handleWebhookUC "github.com/m04kA/SMC-ReservationService/internal/usecase/handle_webhook"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.toml"
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

	log.Info("Starting SMC-ReservationService...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := time.LoadLocation(cfg.Hacomono.Location)
	if err != nil {
		log.Fatal("Failed to load location %s: %v", cfg.Hacomono.Location, err)
	}

	// Инициализируем метрики (если включены); nil-метрики ничего не пишут
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных журнала
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

	if cfg.Metrics.Enabled {
		go dbmetrics.CollectPoolStats(db, metricsCollector, dbmetrics.DefaultCollectInterval, stopMetricsCh)
		log.Info("Database pool metrics collection started")
	}

	// Подключаемся к Redis; без него сервис работает, читая платформу напрямую
	rdb := redis.NewClient(&redis.Options{
		Addr:        cfg.Redis.Addr,
		Password:    cfg.Redis.Password,
		DB:          cfg.Redis.DB,
		DialTimeout: time.Duration(cfg.Redis.DialTimeout) * time.Second,
	})
	defer rdb.Close()

	cache := snapshotCache.NewCache(rdb, cfg.Snapshot.KeyPrefix, cfg.Snapshot.TTL())
	pingCtx, pingCancel := context.WithTimeout(context.Background(), time.Duration(cfg.Redis.DialTimeout)*time.Second)
	if err := cache.Ping(pingCtx); err != nil {
		log.Warn("Redis is unavailable at %s, snapshots will not be cached: %v", cfg.Redis.Addr, err)
	} else {
		log.Info("Successfully connected to Redis (addr=%s, ttl=%s)", cfg.Redis.Addr, cache.TTL())
	}
	pingCancel()

	// Инициализируем клиента платформы
	upstream := hacomono.NewClient(hacomono.Config{
		BaseURL:      cfg.Hacomono.APIBaseURL(),
		TokenURL:     cfg.Hacomono.TokenURL(),
		ClientID:     cfg.Hacomono.ClientID,
		ClientSecret: cfg.Hacomono.ClientSecret,
		AccessToken:  cfg.Hacomono.AccessToken,
		RefreshToken: cfg.Hacomono.RefreshToken,
		Timeout:      time.Duration(cfg.Hacomono.Timeout) * time.Second,
		ReadRPS:      cfg.Hacomono.ReadRPS,
		WriteRPS:     cfg.Hacomono.WriteRPS,
		Location:     location,
	}, metricsCollector, log)
	classifier := hacomono.NewRejectionClassifier(cfg.Hacomono.RejectionKinds)
	log.Info("hacomono client initialized (base=%s, timeout=%ds, read_rps=%.1f, write_rps=%.1f)",
		cfg.Hacomono.APIBaseURL(), cfg.Hacomono.Timeout, cfg.Hacomono.ReadRPS, cfg.Hacomono.WriteRPS)

	// Инициализируем репозитории и сервисы
	attemptRepository := attemptRepo.NewRepository(db)
	snapshots := snapshotService.NewService(upstream, cache, metricsCollector, log)
	attemptsSvc := attemptsService.NewService(attemptRepository, location, log)

	// Две точки оценки: календарь всегда проверяет оборудование,
	// бронирование может пропустить проверку по конфигу
	previewEvaluator := availability.NewEvaluator(availability.Options{
		MinLead:    cfg.Booking.MinLead(),
		MaxHorizon: cfg.Booking.MaxHorizon(),
	}, nil)
	bookingResolver := availability.NewResolver(availability.NewEvaluator(availability.Options{
		MinLead:           cfg.Booking.MinLead(),
		MaxHorizon:        cfg.Booking.MaxHorizon(),
		SkipResourceCheck: cfg.Booking.SkipResourceCheck,
	}, nil))

	displayOpen, displayClose, err := cfg.Booking.DisplayWindow()
	if err != nil {
		log.Fatal("Invalid display window: %v", err)
	}

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		snapshots,
		previewEvaluator,
		metricsCollector,
		getAvailableSlotsUC.Options{
			MaxDays: cfg.Booking.MaxPreviewDays,
			Window:  availability.Window{StartMinute: displayOpen, EndMinute: displayClose},
		},
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		snapshots,
		bookingResolver,
		upstream,
		classifier,
		attemptRepository,
		cache,
		metricsCollector,
		createBookingUC.Options{
			FreshSnapshot: cfg.Booking.FreshSnapshot,
			TicketID:      cfg.Hacomono.TicketID,
			SendMail:      cfg.Booking.SendMail,
		},
		log,
	)

	cancelBookingUseCase := cancelBookingUC.NewUseCase(upstream, attemptRepository, cache, metricsCollector, log)
	handleWebhookUseCase := handleWebhookUC.NewUseCase(cache, log)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, location, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, location, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	getReservation := getReservationHandler.NewHandler(attemptsSvc, log)
	listAttempts := listAttemptsHandler.NewHandler(attemptsSvc, location, log)
	handleWebhook := handleWebhookHandler.NewHandler(handleWebhookUseCase, log)
	health := healthHandler.NewHandler(map[string]healthHandler.Checker{
		"database": healthHandler.CheckerFunc(db.PingContext),
		"cache":    cache,
	}, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Календарь доступности ---
	api.HandleFunc("/rooms/{roomId}/programs/{programId}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	api.HandleFunc("/reservations", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/reservations/{reservationId}", getReservation.HandleByReservation).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{reservationId}/cancel", cancelBooking.Handle).Methods(http.MethodPost)

	// --- Журнал попыток ---
	api.HandleFunc("/attempts/{attemptId}", getReservation.HandleByAttempt).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{roomId}/attempts", listAttempts.Handle).Methods(http.MethodGet)

	// --- Webhook платформы (общий секрет) ---
	webhooks := api.PathPrefix("/webhooks").Subrouter()
	webhooks.Use(middleware.WebhookToken(cfg.Webhook.Secret, log))
	webhooks.HandleFunc("/hacomono", handleWebhook.Handle).Methods(http.MethodPost)

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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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
