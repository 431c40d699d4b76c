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

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelBookingHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_booking"
	getCatalogHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_catalog"
	listBookingsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/list_bookings"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/config"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/bookingevents"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/googlecalendar"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling"
	bookingsService "github.com/m04kA/SMC-AppointmentService/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-AppointmentService/internal/service/catalog"
	createBookingUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

const (
	configPath         = "config.toml"
	rateLimitKeyPrefix = "rl:appointments"
	limiterCleanup     = time.Minute
	limiterIdle        = 10 * time.Minute
)

func main() {
	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Logger
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-AppointmentService...")
	log.Info("Configuration loaded from %s", configPath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Scheduling rules and catalog, immutable for the process lifetime
	loc, err := cfg.Location()
	if err != nil {
		log.Fatal("Failed to load time zone: %v", err)
	}
	catalog, err := cfg.BuildCatalog()
	if err != nil {
		log.Fatal("Failed to build catalog: %v", err)
	}
	shiftCalendar, err := cfg.ShiftCalendar()
	if err != nil {
		log.Fatal("Failed to build shift calendar: %v", err)
	}
	calculator := scheduling.NewCalculator(shiftCalendar, cfg.SlotGranularity())
	validator := scheduling.NewValidator(shiftCalendar)
	log.Info("Scheduling configured: zone=%s, shifts=%d, services=%d, employees=%d, step=%s",
		loc, len(shiftCalendar.Windows()), len(catalog.Services()), len(catalog.Employees()), calculator.Granularity())

	// Metrics (optional); nil collector disables every observation
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Database
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)

	pingCtx, cancelPing := context.WithTimeout(ctx, 5*time.Second)
	err = wrappedDB.PingContext(pingCtx)
	cancelPing()
	if err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Integrations
	calendarClient, err := googlecalendar.NewClient(ctx, googlecalendar.Config{
		CalendarID:      cfg.GoogleCalendar.CalendarID,
		CredentialsJSON: cfg.GoogleCalendar.CredentialsJSON,
		CredentialsFile: cfg.GoogleCalendar.CredentialsFile,
		AttendeeDomain:  cfg.GoogleCalendar.AttendeeDomain,
		Timeout:         time.Duration(cfg.GoogleCalendar.Timeout) * time.Second,
	}, loc, log)
	if err != nil {
		log.Fatal("Failed to initialize Google Calendar client: %v", err)
	}
	calendarClient.WithMetrics(metricsCollector)

	publisher := bookingevents.NewPublisher(bookingevents.Config{
		Brokers:      cfg.Events.Brokers,
		Topic:        cfg.Events.Topic,
		WriteTimeout: time.Duration(cfg.Events.WriteTimeout) * time.Second,
	}, log)
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error("Failed to close booking events publisher: %v", err)
		}
	}()

	// Services and use cases
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		catalog,
		shiftCalendar,
		loc,
		calendarClient,
		publisher,
		log,
	).WithMetrics(metricsCollector)

	catalogSvc := catalogService.NewService(catalog, shiftCalendar, calculator.Granularity())

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		catalog,
		shiftCalendar,
		validator,
		txMgr,
		calendarClient,
		publisher,
		log,
		cfg.Scheduling.MaxCreateAttempts,
	).WithMetrics(metricsCollector)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		catalog,
		shiftCalendar,
		calculator,
		log,
	)

	// Handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, loc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getCatalog := getCatalogHandler.NewHandler(catalogSvc, log)

	// Router
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public booking routes, rate limited per client
	public := api.PathPrefix("").Subrouter()
	if cfg.RateLimit.Enabled {
		proxies, err := middleware.NewTrustedProxies(cfg.RateLimit.TrustedProxies)
		if err != nil {
			log.Fatal("Failed to parse trusted proxies: %v", err)
		}
		limiter, closeLimiter, err := newLimiter(ctx, cfg, log)
		if err != nil {
			log.Fatal("Failed to initialize rate limiter: %v", err)
		}
		defer closeLimiter()
		public.Use(middleware.RateLimit(limiter, proxies, log))
	}
	public.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	public.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Catalog and administration
	api.HandleFunc("/catalog", getCatalog.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Wait for SIGINT/SIGTERM
	<-ctx.Done()
	log.Info("Shutting down server...")

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

// newLimiter picks the Redis limiter when an address is configured and the in-process one otherwise
func newLimiter(ctx context.Context, cfg *config.Config, log *logger.Logger) (middleware.Limiter, func(), error) {
	settings := middleware.RateLimitSettings{
		Requests:  cfg.RateLimit.Requests,
		Window:    cfg.RateLimit.Window(),
		Burst:     cfg.RateLimit.Burst,
		KeyPrefix: rateLimitKeyPrefix,
	}

	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		closeRedis := func() {
			if err := rdb.Close(); err != nil {
				log.Error("Failed to close Redis client: %v", err)
			}
		}

		limiter, err := middleware.NewRedisLimiter(rdb, settings)
		if err != nil {
			closeRedis()
			return nil, nil, err
		}

		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis at %s is not reachable yet, rate limiting fails open until it is: %v", cfg.Redis.Addr, err)
		}

		log.Info("Rate limiting via Redis at %s: %d requests per %s", cfg.Redis.Addr, settings.Requests, settings.Window)
		return limiter, closeRedis, nil
	}

	limiter, err := middleware.NewLocalLimiter(settings)
	if err != nil {
		return nil, nil, err
	}
	go limiter.Cleanup(ctx, limiterCleanup, limiterIdle)

	log.Info("Rate limiting in process: %d requests per %s, burst %d", settings.Requests, settings.Window, settings.Burst)
	return limiter, func() {}, nil
}
