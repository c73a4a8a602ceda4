package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"salonbook/internal/notify"
	"salonbook/pkg/config"
	"salonbook/pkg/kafka"
	kafka_config "salonbook/pkg/kafka/config"
	kafka_middleware "salonbook/pkg/kafka/middleware"
	"salonbook/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const ServiceName = "notifier"

// The notifier consumes booking.created events and sends the staff summary
// over email/SMS. Messages that keep failing are parked on the DLQ topic.
func main() {
	cfg := config.Load(ServiceName)
	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}
	if !cfg.KafkaEnabled() {
		cfg.Log.Fatal("KAFKA_BROKERS must be set for the notifier")
	}
	cfg.LogConfiguration()

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	sink := notify.ChannelsFromConfig(cfg)
	consumer, err := kafka.NewConsumer(
		kafkaCfg,
		cfg.Log,
		cfg.BookingEventsTopic,
		cfg.NotifierGroupID,
		cfg.BookingEventsDLQ,
		notify.NewBookingEventHandler(sink),
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}
	consumer.Use(kafka_middleware.LoggingConsumerMiddleware(cfg.Log))
	consumer.Use(kafka_middleware.MetricsConsumerMiddleware())

	metrics.Register()
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			cfg.Log.Error("Metrics server failed", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg.Log.Info("Starting notifier",
		"topic", cfg.BookingEventsTopic,
		"group_id", cfg.NotifierGroupID,
		"channels", sink.Len(),
	)
	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		cfg.Log.Error("Consumer stopped", "error", err)
	}

	cfg.Log.Info("Shutting down notifier")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		cfg.Log.Error("Metrics server shutdown failed", "error", err)
	}
	if err := consumer.Close(); err != nil {
		cfg.Log.Error("Failed to close Kafka consumer", "error", err)
	}
	cfg.Log.Info("Notifier stopped")
}
