package main

import (
	"context"

	"salonbook/internal/bookings/backup"
	"salonbook/internal/bookings/handler"
	"salonbook/internal/bookings/repository"
	"salonbook/internal/bookings/service"
	"salonbook/internal/bookings/validator"
	"salonbook/internal/notify"
	"salonbook/pkg/app"
	"salonbook/pkg/config"
	"salonbook/pkg/kafka"
	kafka_config "salonbook/pkg/kafka/config"
	kafka_middleware "salonbook/pkg/kafka/middleware"
	"salonbook/pkg/middleware"

	"github.com/redis/go-redis/v9"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}
	cfg.LogConfiguration()

	cfg.Log.Info("Starting Bookings service")
	ctx := context.Background()
	serverApp := app.NewApplication(cfg)

	store, err := repository.New(ctx, cfg)
	if err != nil {
		cfg.Log.Fatal("Failed to open booking store", "backend", cfg.StoreBackend, "error", err)
	}

	sink, closeSink := initSink(cfg)
	dispatcher := notify.NewDispatcher(sink, cfg.Log, cfg.NotifyRatePerSec, cfg.NotifyQueueSize)
	bookingService := service.NewBookingService(
		store,
		validator.NewBookingValidator(cfg.Log),
		dispatcher,
		cfg,
	)
	cfg.Log.Info("Booking service initialized", "store_backend", cfg.StoreBackend)

	serverApp.SetApp(
		handler.NewBookingHandler(bookingService, cfg.Log),
		handler.NewHealthHandler(store, cfg.Log),
		initIdempotencyStore(ctx, cfg, serverApp),
	)

	initBackups(cfg, store, serverApp)

	serverApp.OnShutdown("notification dispatcher", dispatcher.Stop)
	if closeSink != nil {
		serverApp.OnShutdown("kafka producer", closeSink)
	}
	serverApp.OnShutdown("booking store", func(context.Context) error { return store.Close() })
	serverApp.Run()
}

// initSink publishes booking events to Kafka when brokers are configured and
// otherwise notifies staff directly from this process.
func initSink(cfg *config.Config) (notify.Sink, app.ShutdownFunc) {
	if !cfg.KafkaEnabled() {
		sink := notify.ChannelsFromConfig(cfg)
		cfg.Log.Info("Notifications delivered in-process", "channels", sink.Len())
		return sink, nil
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.Log, cfg.BookingEventsTopic, cfg.BookingEventsDLQ)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
	producer.Use(kafka_middleware.MetricsProducerMiddleware())

	cfg.Log.Info("Booking events published to Kafka", "topic", cfg.BookingEventsTopic)
	return notify.NewEventSink(producer, ServiceName), func(context.Context) error { return producer.Close() }
}

func initIdempotencyStore(ctx context.Context, cfg *config.Config, serverApp *app.Application) middleware.IdempotencyStore {
	if !cfg.RedisEnabled() {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ReadTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		cfg.Log.Fatal("Failed to connect to Redis", "addr", cfg.RedisAddr, "error", err)
	}

	serverApp.OnShutdown("redis", func(context.Context) error { return client.Close() })
	cfg.Log.Info("Idempotency keys stored in Redis", "addr", cfg.RedisAddr)
	return middleware.NewRedisIdempotencyStore(client, cfg.IdempotencyTTL, cfg.Log)
}

func initBackups(cfg *config.Config, store repository.BookingStore, serverApp *app.Application) {
	if !cfg.BackupEnabled() {
		return
	}

	source, ok := store.(repository.Snapshotter)
	if !ok {
		cfg.Log.Warn("Booking store does not support snapshots, backups disabled", "backend", cfg.StoreBackend)
		return
	}

	backups := backup.NewService(source, cfg)
	if err := backups.Start(); err != nil {
		cfg.Log.Fatal("Failed to start backup scheduler", "error", err)
	}
	serverApp.OnShutdown("backup scheduler", backups.Stop)
}
