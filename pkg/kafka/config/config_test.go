package kafka_config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(EnvKafkaBrokers, "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Brokers)
	assert.Equal(t, int64(-2), cfg.ConsumerStartOffset)
	assert.Equal(t, DefaultProducerCompression, cfg.ProducerCompression)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv(EnvKafkaBrokers, " k1:9092, ,k2:9092 ")
	t.Setenv(EnvKafkaConsumerMaxRetries, "5")
	t.Setenv(EnvKafkaConsumerRetryBackoff, "250ms")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Brokers)
	assert.Equal(t, 5, cfg.ConsumerMaxRetries)
	assert.Equal(t, 250*time.Millisecond, cfg.ConsumerRetryBackoff)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv(EnvKafkaProducerCompression, "brotli")
	t.Setenv(EnvKafkaProducerRequireAcks, "7")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1. ProducerCompression")
	assert.Contains(t, err.Error(), "2. ProducerRequireAcks")
}
