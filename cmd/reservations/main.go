package main

import (
	"reservationmanager/internal/reservations/cache"
	"reservationmanager/internal/reservations/events"
	"reservationmanager/internal/reservations/handler"
	"reservationmanager/internal/reservations/repository"
	"reservationmanager/internal/reservations/service"
	"reservationmanager/internal/reservations/validator"
	"reservationmanager/pkg/app"
	"reservationmanager/pkg/config"
	"reservationmanager/pkg/kafka"
	kafkaconfig "reservationmanager/pkg/kafka/config"
	kafkamiddleware "reservationmanager/pkg/kafka/middleware"
)

const ServiceName = "reservations"

func main() {
	cfg := config.Load(ServiceName)

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}

	cfg.LogConfiguration()
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Reservations service")
	reservationService := initServices(cfg)

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, handler.NewReservationHandler(reservationService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.ReservationService {
	reservationValidator := validator.NewReservationValidator(
		cfg.Log,
		cfg.MaxAdvanceDays,
		cfg.MinStayDays,
		cfg.MaxStayDays,
	)
	reservationRepo := repository.NewMongoReservationRepository(cfg)
	lockRepo := repository.NewReservationLockRepository(cfg)

	reservationService := service.NewReservationService(
		reservationRepo,
		lockRepo,
		reservationValidator,
		initCache(cfg),
		initEvents(cfg),
		cfg,
	)

	cfg.Log.Info("Reservation service initialized", "database", cfg.MongoDatabaseName)
	return reservationService
}

// initCache prefers Redis when an address is configured and falls back to the
// in-process cache otherwise, so a single-node deployment needs no extra infra.
func initCache(cfg *config.Config) cache.ReservationCache {
	if cfg.RedisAddr == "" {
		cfg.Log.Info("Redis not configured, using in-memory reservation cache")
		return cache.NewMemory()
	}

	cfg.SetRedis()
	return cache.NewRedis(cfg.Client.Redis, cfg.CacheTTL, cfg.Log)
}

// initEvents wires the Kafka producer when an events topic is configured;
// otherwise lifecycle events are dropped.
func initEvents(cfg *config.Config) events.ReservationEvents {
	if cfg.EventsTopic == "" {
		cfg.Log.Info("Events topic not configured, reservation events disabled")
		return events.NewNopEvents()
	}

	kafkaCfg, err := kafkaconfig.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}

	producer, err := kafka.NewProducer(kafkaCfg, cfg.EventsTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafkamiddleware.ProducerLogging(cfg.Log))
	return events.NewKafkaEvents(producer, cfg.Log)
}
