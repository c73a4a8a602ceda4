package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "salonbook"

const (
	ResultAdmitted    = "admitted"
	ResultConflict    = "conflict"
	ResultInvalid     = "invalid"
	ResultError       = "error"
	ResultAvailable   = "available"
	ResultUnavailable = "unavailable"

	StatusSent    = "sent"
	StatusFailed  = "failed"
	StatusDropped = "dropped"
)

var (
	once sync.Once

	bookingsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_requests_total",
			Help:      "Count of booking submissions by result.",
		},
		[]string{"result"},
	)

	availabilityChecks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "availability_checks_total",
			Help:      "Count of availability checks by result.",
		},
		[]string{"result"},
	)

	notifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Count of booking notifications by channel and status.",
		},
		[]string{"channel", "status"},
	)

	notifyQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "notify_queue_depth",
			Help:      "Notifications waiting to be delivered.",
		},
	)

	kafkaMessages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_messages_total",
			Help:      "Kafka messages by topic, direction and status.",
		},
		[]string{"topic", "direction", "status"},
	)

	kafkaDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "kafka_message_duration_seconds",
			Help:      "Time spent publishing or handling a Kafka message.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"topic", "direction"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method, route and status code.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "route", "status"},
	)
)

// Register registers metrics with the default registry (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			bookingsCreated,
			availabilityChecks,
			notifications,
			notifyQueueDepth,
			kafkaMessages,
			kafkaDuration,
			httpDuration,
		)
	})
}

func IncBookingRequest(result string) {
	bookingsCreated.WithLabelValues(result).Inc()
}

func IncAvailabilityCheck(result string) {
	availabilityChecks.WithLabelValues(result).Inc()
}

func IncNotification(channel, status string) {
	notifications.WithLabelValues(channel, status).Inc()
}

func SetNotifyQueueDepth(n int) {
	notifyQueueDepth.Set(float64(n))
}

func ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

func ObserveKafkaMessage(topic, direction string, err error, elapsed time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	kafkaMessages.WithLabelValues(topic, direction, status).Inc()
	kafkaDuration.WithLabelValues(topic, direction).Observe(elapsed.Seconds())
}
