package repository

import (
	"context"
	"encoding/json"
	"sync"

	bookingserrors "salonbook/internal/bookings/errors"
	"salonbook/pkg/model"
)

// slotIndex is the in-memory representation shared by the memory and file
// stores: the ordered sequence plus a set of occupied slot keys.
type slotIndex struct {
	bookings []model.Booking
	occupied map[string]struct{}
}

func newSlotIndex(bookings []model.Booking) slotIndex {
	idx := slotIndex{
		bookings: bookings,
		occupied: make(map[string]struct{}, len(bookings)),
	}
	for _, b := range bookings {
		idx.occupied[b.Slot().Key()] = struct{}{}
	}
	return idx
}

func (idx *slotIndex) has(slot model.Slot) bool {
	_, ok := idx.occupied[slot.Key()]
	return ok
}

func (idx *slotIndex) snapshot() []model.Booking {
	out := make([]model.Booking, len(idx.bookings))
	copy(out, idx.bookings)
	return out
}

// with returns the sequence that would result from appending b, without
// modifying idx.
func (idx *slotIndex) with(b model.Booking) []model.Booking {
	next := make([]model.Booking, len(idx.bookings), len(idx.bookings)+1)
	copy(next, idx.bookings)
	return append(next, b)
}

func (idx *slotIndex) commit(next []model.Booking, b model.Booking) {
	idx.bookings = next
	idx.occupied[b.Slot().Key()] = struct{}{}
}

// MemoryStore keeps bookings in process memory only.
type MemoryStore struct {
	mu     sync.RWMutex
	idx    slotIndex
	closed bool
}

func NewMemoryStore(seed ...model.Booking) *MemoryStore {
	bookings := make([]model.Booking, len(seed))
	copy(bookings, seed)
	return &MemoryStore{idx: newSlotIndex(bookings)}
}

func (s *MemoryStore) LoadAll(_ context.Context) ([]model.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, bookingserrors.ErrStoreClosed
	}
	return s.idx.snapshot(), nil
}

func (s *MemoryStore) HasConflict(_ context.Context, slot model.Slot) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false, bookingserrors.ErrStoreClosed
	}
	return s.idx.has(slot), nil
}

func (s *MemoryStore) Append(_ context.Context, booking model.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return bookingserrors.ErrStoreClosed
	}
	if s.idx.has(booking.Slot()) {
		return bookingserrors.ErrSlotTaken
	}
	s.idx.commit(s.idx.with(booking), booking)
	return nil
}

func (s *MemoryStore) Snapshot() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return encodeSnapshot(s.idx.bookings)
}

func (s *MemoryStore) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return bookingserrors.ErrStoreClosed
	}
	return nil
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// encodeSnapshot renders bookings the way the file store persists them: a
// JSON array indented with two spaces, never null.
func encodeSnapshot(bookings []model.Booking) ([]byte, error) {
	if bookings == nil {
		bookings = []model.Booking{}
	}
	return json.MarshalIndent(bookings, "", "  ")
}
