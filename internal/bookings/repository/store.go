package repository

import (
	"context"
	"fmt"
	"time"

	"salonbook/pkg/config"
	"salonbook/pkg/model"
)

// BookingStore owns the authoritative, append-only sequence of bookings.
//
// Implementations must keep at most one booking per slot: Append returns
// bookingserrors.ErrSlotTaken instead of storing a second booking for a slot
// that is already occupied.
type BookingStore interface {
	// LoadAll returns every booking in insertion order.
	LoadAll(ctx context.Context) ([]model.Booking, error)
	// HasConflict reports whether a booking already occupies the slot.
	HasConflict(ctx context.Context, slot model.Slot) (bool, error)
	// Append persists one booking at the end of the sequence. On failure the
	// store is left exactly as it was before the call.
	Append(ctx context.Context, booking model.Booking) error
	Ping(ctx context.Context) error
	Close() error
}

// Snapshotter is implemented by stores that can serialise their whole
// collection, which is what the backup job copies.
type Snapshotter interface {
	Snapshot() ([]byte, error)
}

// New opens the store selected by cfg.StoreBackend.
func New(ctx context.Context, cfg *config.Config) (BookingStore, error) {
	switch cfg.StoreBackend {
	case config.BackendFile:
		return NewFileStore(cfg)
	case config.BackendMemory:
		return NewMemoryStore(), nil
	case config.BackendSQLite:
		return NewSQLiteStore(ctx, cfg)
	case config.BackendPostgres:
		return NewPostgresStore(ctx, cfg)
	case config.BackendMongo:
		return NewMongoStore(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

// withTimeout bounds ctx by timeout unless the caller already set a tighter
// deadline.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if hasDeadline && time.Until(deadline) < timeout {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, timeout)
}
