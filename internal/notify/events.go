package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"salonbook/pkg/kafka"
	"salonbook/pkg/model"
)

const (
	EventBookingCreated = "booking.created"
	eventSchemaVersion  = "1"
)

type BookingCreatedEvent struct {
	Booking model.Booking `json:"booking"`
}

type Publisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// EventSink publishes admitted bookings to Kafka instead of notifying staff
// directly; the notifier worker consumes them.
type EventSink struct {
	publisher Publisher
	source    string
}

func NewEventSink(publisher Publisher, source string) *EventSink {
	return &EventSink{publisher: publisher, source: source}
}

func (s *EventSink) Deliver(ctx context.Context, booking model.Booking) error {
	payload, err := json.Marshal(BookingCreatedEvent{Booking: booking})
	if err != nil {
		return fmt.Errorf("encode booking event: %w", err)
	}

	msg := kafka.NewMessage().
		WithKey(booking.ID).
		WithRawValue(payload).
		WithEventType(EventBookingCreated).
		WithSchemaVersion(eventSchemaVersion).
		WithSource(s.source).
		Build()

	return s.publisher.Publish(ctx, msg)
}

// NewBookingEventHandler returns the consumer handler that turns booking
// events back into channel notifications. Undecodable events are permanent
// failures; delivery failures are retried.
func NewBookingEventHandler(sink Sink) kafka.MessageHandler {
	return func(ctx context.Context, msg kafka.Message) error {
		if eventType := msg.GetEventType(); eventType != EventBookingCreated {
			return kafka.NewPermanentError(fmt.Sprintf("unexpected event type %q", eventType), kafka.ErrInvalidMessage)
		}

		var event BookingCreatedEvent
		if err := msg.DecodeValue(&event); err != nil {
			return kafka.NewPermanentError("deserialization failed", err)
		}
		if event.Booking.ID == "" {
			return kafka.NewPermanentError("booking event without id", kafka.ErrInvalidMessage)
		}

		if err := sink.Deliver(ctx, event.Booking); err != nil {
			return kafka.NewTransientError("notification delivery failed", err)
		}
		return nil
	}
}
