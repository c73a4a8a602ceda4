package notify

import (
	"context"
	"sync"
	"time"

	"salonbook/pkg/logger"
	"salonbook/pkg/metrics"
	"salonbook/pkg/model"

	"golang.org/x/time/rate"
)

const deliverTimeout = 30 * time.Second

// Dispatcher hands admitted bookings to a Sink on a background worker so the
// booking request never waits on SMTP, Twilio or Kafka. Deliveries are
// throttled by a token bucket.
type Dispatcher struct {
	sink    Sink
	log     *logger.Logger
	limiter *rate.Limiter
	queue   chan model.Booking

	mu      sync.RWMutex
	stopped bool
	done    chan struct{}
}

func NewDispatcher(sink Sink, log *logger.Logger, ratePerSec float64, queueSize int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 1
	}
	burst := int(ratePerSec)
	if burst < 1 {
		burst = 1
	}

	d := &Dispatcher{
		sink:    sink,
		log:     log,
		limiter: rate.NewLimiter(rate.Limit(ratePerSec), burst),
		queue:   make(chan model.Booking, queueSize),
		done:    make(chan struct{}),
	}
	go d.run()
	return d
}

// Enqueue schedules a notification for booking without blocking. It reports
// false when the queue is full or the dispatcher has stopped; the booking is
// then not notified.
func (d *Dispatcher) Enqueue(booking model.Booking) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		metrics.IncNotification("dispatcher", metrics.StatusDropped)
		d.log.Warn("Notification dropped, dispatcher stopped", "booking_id", booking.ID)
		return false
	}

	select {
	case d.queue <- booking:
		metrics.SetNotifyQueueDepth(len(d.queue))
		return true
	default:
		metrics.IncNotification("dispatcher", metrics.StatusDropped)
		d.log.Warn("Notification dropped, queue full",
			"booking_id", booking.ID,
			"queue_size", cap(d.queue),
		)
		return false
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)

	for booking := range d.queue {
		metrics.SetNotifyQueueDepth(len(d.queue))
		d.deliver(booking)
	}
}

func (d *Dispatcher) deliver(booking model.Booking) {
	ctx, cancel := context.WithTimeout(context.Background(), deliverTimeout)
	defer cancel()

	if err := d.limiter.Wait(ctx); err != nil {
		d.log.Error("Notification rate limiter wait failed", "booking_id", booking.ID, "error", err)
		return
	}

	if err := d.sink.Deliver(ctx, booking); err != nil {
		d.log.Error("Booking notification failed", "booking_id", booking.ID, "error", err)
		return
	}
	d.log.Debug("Booking notification delivered", "booking_id", booking.ID)
}

// Stop refuses new work and waits for queued notifications to drain or for
// ctx to expire.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.stopped {
		d.stopped = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
