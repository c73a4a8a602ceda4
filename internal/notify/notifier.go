package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"salonbook/pkg/logger"
	"salonbook/pkg/metrics"
	"salonbook/pkg/model"
)

const Subject = "New Salon Booking"

// Notifier delivers one human-readable message over a single channel.
type Notifier interface {
	Notify(ctx context.Context, subject, body string) error
}

// Sink receives admitted bookings from the dispatcher.
type Sink interface {
	Deliver(ctx context.Context, booking model.Booking) error
}

// FormatBooking renders the summary sent to salon staff.
func FormatBooking(b model.Booking) string {
	var sb strings.Builder
	sb.WriteString("New booking:\n")
	fmt.Fprintf(&sb, "Name: %s\n", b.Name)
	fmt.Fprintf(&sb, "Phone: %s\n", b.Phone)
	fmt.Fprintf(&sb, "Email: %s\n", orDash(b.Email))
	fmt.Fprintf(&sb, "Service: %s\n", b.Service)
	fmt.Fprintf(&sb, "Staff: %s\n", b.Staff)
	fmt.Fprintf(&sb, "Date: %s\n", b.Date)
	fmt.Fprintf(&sb, "Time: %s\n", b.Time)
	fmt.Fprintf(&sb, "Notes: %s\n", orDash(b.Notes))
	return sb.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

type channel struct {
	name     string
	notifier Notifier
}

// ChannelSink formats a booking once and sends it through every configured
// channel. A failing channel does not stop the others.
type ChannelSink struct {
	channels []channel
	log      *logger.Logger
}

func NewChannelSink(log *logger.Logger) *ChannelSink {
	return &ChannelSink{log: log}
}

func (s *ChannelSink) Add(name string, n Notifier) *ChannelSink {
	s.channels = append(s.channels, channel{name: name, notifier: n})
	return s
}

func (s *ChannelSink) Len() int {
	return len(s.channels)
}

func (s *ChannelSink) Deliver(ctx context.Context, booking model.Booking) error {
	body := FormatBooking(booking)

	var errs []error
	for _, ch := range s.channels {
		if err := ch.notifier.Notify(ctx, Subject, body); err != nil {
			metrics.IncNotification(ch.name, metrics.StatusFailed)
			s.log.Error("Failed to send booking notification",
				"channel", ch.name,
				"booking_id", booking.ID,
				"error", err,
			)
			errs = append(errs, fmt.Errorf("%s: %w", ch.name, err))
			continue
		}
		metrics.IncNotification(ch.name, metrics.StatusSent)
	}
	return errors.Join(errs...)
}
