package kafka_middleware

import (
	"context"
	"time"

	"salonbook/pkg/kafka"
	"salonbook/pkg/metrics"
)

const (
	directionPublish = "publish"
	directionConsume = "consume"
)

func MetricsProducerMiddleware() kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		start := time.Now()
		err := next(ctx, msg)
		metrics.ObserveKafkaMessage(msg.Topic, directionPublish, err, time.Since(start))
		return err
	}
}

func MetricsConsumerMiddleware() kafka.ConsumerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next kafka.MessageHandler) error {
		start := time.Now()
		err := next(ctx, msg)
		metrics.ObserveKafkaMessage(msg.Topic, directionConsume, err, time.Since(start))
		return err
	}
}
