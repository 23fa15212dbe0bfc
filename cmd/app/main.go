package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/flightbooking/api"
	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/api/health_api"
	"github.com/Domenick1991/flightbooking/internal/bootstrap"
	"github.com/Domenick1991/flightbooking/internal/cache"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/Domenick1991/flightbooking/internal/logger"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/Domenick1991/flightbooking/internal/service/booking"
	"github.com/Domenick1991/flightbooking/internal/service/flights"
	"github.com/Domenick1991/flightbooking/internal/service/passengers"
	"github.com/gin-gonic/gin"
	"google.golang.org/grpc/health"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	if os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.New("info").Error("load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := repository.Connect(ctx, cfg.Database)
	if err != nil {
		log.Error("database unavailable", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.Database.Migrate {
		if err := repository.Migrate(ctx, pool, log); err != nil {
			log.Error("migrate database", "error", err)
			os.Exit(1)
		}
	}

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.FlightsCacheTTL)*time.Second)
	defer redisCache.Close()

	producer := kafka.NewProducer(cfg.Kafka.Brokers, log, cfg.Kafka.BookingEventsTopic, cfg.Kafka.NotificationsTopic)
	defer producer.Close()
	if err := producer.CheckConnection(ctx); err != nil {
		log.Warn("kafka unavailable, booking events will be dropped until it recovers", "error", err)
	}

	flightRepo := repository.NewFlightRepository(pool)
	passengerRepo := repository.NewPassengerRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)

	flightService := flights.NewFlightService(flightRepo, redisCache, log, cfg.Booking.MaxPageSize)
	passengerService := passengers.NewPassengerService(passengerRepo, log, cfg.Booking.MaxPageSize)
	bookingService := booking.NewBookingService(
		bookingRepo,
		flightRepo,
		passengerRepo,
		redisCache,
		producer,
		log,
		booking.WithReferenceAttempts(cfg.Booking.ReferenceAttempts),
		booking.WithMaxPageSize(cfg.Booking.MaxPageSize),
	)

	healthSrv := health.NewServer()
	watcher := health_api.NewWatcher(healthSrv, time.Duration(cfg.GRPC.HealthIntervalSeconds)*time.Second, log,
		map[string]health_api.Pinger{
			"postgres": pool,
			"redis":    redisCache,
		})
	go watcher.Run(ctx)

	router := api.NewRouter(cfg.HTTP, log, flightService, passengerService, bookingService)
	if err := bootstrap.Run(ctx, cfg, log, router, healthSrv); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	log.Info("server exited gracefully")
}
