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
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	checkCoverageHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/check_coverage"
	getCalendarHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_calendar"
	queryAvailabilityHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/query_availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/config"
	rosterCache "github.com/m04kA/SMC-AvailabilityService/internal/infra/cache/roster"
	bookingRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/booking"
	teamRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/team"
	scheduleServiceClient "github.com/m04kA/SMC-AvailabilityService/internal/integrations/scheduleservice"
	checkCoverageUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/check_coverage"
	queryAvailabilityUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/query_availability"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
)

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

	log.Info("Starting SMC-AvailabilityService...")
	log.Info("Configuration loaded from config.toml (schedule=%s, coverage=%s)",
		cfg.Sources.Schedule, cfg.Sources.Coverage)

	calendar, err := cfg.WorkingCalendar()
	if err != nil {
		log.Fatal("Invalid working calendar: %v", err)
	}
	log.Info("Working calendar: %s-%s, salon step=%dm, horizon=%dd, search=%dd, tz=%s",
		calendar.OpenTime, calendar.CloseTime, calendar.SalonGranularityMinutes, calendar.HorizonDays,
		calendar.SearchDays(), calendar.Location)

	// Инициализируем метрики (если включены)
	var (
		metricsCollector *metrics.Metrics
		queryRecorder    queryAvailabilityUC.MetricsRecorder
		cacheObserver    rosterCache.Observer
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		queryRecorder = metricsCollector
		cacheObserver = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных (нужна для postgres расписания и списка команд)
	var executor dbmetrics.DBExecutor
	if cfg.NeedsDatabase() {
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		if cfg.Metrics.Enabled {
			executor = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
			log.Info("Database metrics collection started")
		} else {
			executor = db
		}
	}

	// Клиент сервиса расписаний
	var scheduleClient *scheduleServiceClient.Client
	if cfg.NeedsScheduleService() {
		scheduleClient = scheduleServiceClient.NewClient(
			cfg.ScheduleService.URL,
			time.Duration(cfg.ScheduleService.Timeout)*time.Second,
			log,
		).WithRateLimit(cfg.ScheduleService.RateLimitRPS, cfg.ScheduleService.RateLimitBurst)
		log.Info("Integration client initialized (ScheduleService=%s timeout=%ds)",
			cfg.ScheduleService.URL, cfg.ScheduleService.Timeout)
	}

	// Источник расписания
	var scheduleProvider availability.ScheduleProvider
	switch cfg.Sources.Schedule {
	case config.SourceRemote:
		scheduleProvider = scheduleClient
	default:
		scheduleProvider = bookingRepo.NewRepository(executor, cfg.Database.LocationTolDeg)
	}

	// Источник покрытия
	var coverageSource availability.CoverageSource
	switch cfg.Sources.Coverage {
	case config.SourceRemote:
		coverageSource = scheduleClient
	default:
		var roster availability.TeamRoster = teamRepo.NewRepository(executor)

		if cfg.Redis.Enabled {
			redisClient := redis.NewClient(&redis.Options{
				Addr:     cfg.Redis.Addr,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			})
			defer redisClient.Close()

			pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			if err := redisClient.Ping(pingCtx).Err(); err != nil {
				// Кэш необязателен: при недоступности Redis команды читаются из БД
				log.Warn("Redis ping failed (addr=%s): %v", cfg.Redis.Addr, err)
			} else {
				log.Info("Successfully connected to Redis (addr=%s)", cfg.Redis.Addr)
			}
			cancel()

			roster = rosterCache.NewCache(roster, redisClient, cfg.RosterTTL(), cacheObserver, log).
				WithKey(cfg.Redis.RosterKey)
		}

		coverageSource = availability.NewRosterCoverage(roster)
	}

	// Поиск ближайшего слота
	searcher := availability.NewSearcher(scheduleProvider, calendar, cfg.Calendar.FetchConcurrency)

	// Инициализируем use cases
	queryAvailabilityUseCase := queryAvailabilityUC.NewUseCase(
		coverageSource,
		scheduleProvider,
		searcher,
		calendar,
		queryRecorder,
		log,
	)
	checkCoverageUseCase := checkCoverageUC.NewUseCase(coverageSource, log)

	// Инициализируем handlers
	queryAvailability := queryAvailabilityHandler.NewHandler(queryAvailabilityUseCase, log)
	checkCoverage := checkCoverageHandler.NewHandler(checkCoverageUseCase, log)
	getCalendar := getCalendarHandler.NewHandler(calendar, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(handlers.NotFound)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recover(log))
	r.Use(middleware.AccessLog(log))

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Свободные слоты: без даты - ближайший, с датой - весь день
	api.HandleFunc("/availability", queryAvailability.Handle).Methods(http.MethodGet)

	// Проверка зоны обслуживания
	api.HandleFunc("/coverage", checkCoverage.Handle).Methods(http.MethodGet)

	// Часы работы и сетки слотов по категориям
	api.HandleFunc("/calendar", getCalendar.Handle).Methods(http.MethodGet)

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
