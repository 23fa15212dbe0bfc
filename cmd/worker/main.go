package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/email"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/Domenick1991/flightbooking/internal/logger"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/Domenick1991/flightbooking/internal/service/flights"
	"github.com/Domenick1991/flightbooking/internal/service/notifications"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
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

	flightRepo := repository.NewFlightRepository(pool)
	passengerRepo := repository.NewPassengerRepository(pool)
	flightService := flights.NewFlightService(flightRepo, nil, log, cfg.Booking.MaxPageSize)
	notifier := notifications.NewNotificationService(flightRepo, passengerRepo, email.NewSender(log), log)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic, log)
	defer consumer.Close()

	go func() {
		err := consumer.Consume(ctx, func(ctx context.Context, _, value []byte) error {
			return notifier.HandleMessage(ctx, value)
		})
		if err != nil {
			log.Error("consumer stopped", "error", err)
			stop()
		}
	}()
	log.Info("worker started", "topic", cfg.Kafka.NotificationsTopic, "group", cfg.Kafka.GroupID)

	auditTicker := time.NewTicker(time.Duration(cfg.Worker.InventoryAuditMinutes) * time.Minute)
	defer auditTicker.Stop()

	for {
		select {
		case <-auditTicker.C:
			drift, err := flightService.AuditInventory(ctx)
			if err != nil {
				log.Error("inventory audit failed", "error", err)
				continue
			}
			log.Info("inventory audit finished", "drifted_flights", len(drift))
		case <-ctx.Done():
			log.Info("worker shutting down")
			return
		}
	}
}
