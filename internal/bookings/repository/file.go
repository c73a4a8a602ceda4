package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	bookingserrors "salonbook/internal/bookings/errors"
	"salonbook/pkg/config"
	"salonbook/pkg/logger"
	"salonbook/pkg/model"
)

const emptySnapshot = "[]"

// FileStore persists the whole booking collection as one JSON array. The
// in-memory copy is authoritative while the process runs; the file is
// rewritten in full on every successful Append.
type FileStore struct {
	path string
	log  *logger.Logger

	mu     sync.RWMutex
	idx    slotIndex
	closed bool

	// writeFile is replaced in tests to simulate a failing disk.
	writeFile func(path string, data []byte) error
}

func NewFileStore(cfg *config.Config) (*FileStore, error) {
	s := &FileStore{
		path:      cfg.DataFile,
		log:       cfg.Log,
		writeFile: atomicWriteFile,
	}

	bookings, err := s.read()
	if err != nil {
		return nil, err
	}
	s.idx = newSlotIndex(bookings)

	s.log.Info("File booking store opened", "path", s.path, "bookings", len(bookings))
	return s, nil
}

// read loads the snapshot from disk, creating it as an empty array when it
// does not exist yet. A snapshot that cannot be parsed is moved aside and the
// store starts empty so the service stays available.
func (s *FileStore) read() ([]model.Booking, error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return nil, fmt.Errorf("%w: create data directory: %v", bookingserrors.ErrStorageRead, err)
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := s.writeFile(s.path, []byte(emptySnapshot)); err != nil {
			return nil, fmt.Errorf("%w: initialise %s: %v", bookingserrors.ErrStorageWrite, s.path, err)
		}
		return []model.Booking{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", bookingserrors.ErrStorageRead, err)
	}

	var bookings []model.Booking
	if err := json.Unmarshal(data, &bookings); err != nil {
		quarantine := fmt.Sprintf("%s.corrupt-%s", s.path, time.Now().UTC().Format("20060102T150405"))
		if renameErr := os.Rename(s.path, quarantine); renameErr != nil {
			s.log.Error("Failed to move corrupt booking file aside", "path", s.path, "error", renameErr)
		}
		s.log.Warn("Booking file is corrupt, starting with an empty store",
			"path", s.path,
			"moved_to", quarantine,
			"error", err,
		)
		return []model.Booking{}, nil
	}
	if bookings == nil {
		bookings = []model.Booking{}
	}
	return bookings, nil
}

func (s *FileStore) LoadAll(_ context.Context) ([]model.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, bookingserrors.ErrStoreClosed
	}
	return s.idx.snapshot(), nil
}

func (s *FileStore) HasConflict(_ context.Context, slot model.Slot) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false, bookingserrors.ErrStoreClosed
	}
	return s.idx.has(slot), nil
}

func (s *FileStore) Append(_ context.Context, booking model.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return bookingserrors.ErrStoreClosed
	}
	if s.idx.has(booking.Slot()) {
		return bookingserrors.ErrSlotTaken
	}

	next := s.idx.with(booking)
	data, err := encodeSnapshot(next)
	if err != nil {
		return fmt.Errorf("%w: encode snapshot: %v", bookingserrors.ErrStorageWrite, err)
	}
	if err := s.writeFile(s.path, data); err != nil {
		return fmt.Errorf("%w: %v", bookingserrors.ErrStorageWrite, err)
	}

	s.idx.commit(next, booking)
	return nil
}

func (s *FileStore) Snapshot() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return encodeSnapshot(s.idx.bookings)
}

func (s *FileStore) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return bookingserrors.ErrStoreClosed
	}
	if _, err := os.Stat(s.path); err != nil {
		return fmt.Errorf("%w: %v", bookingserrors.ErrStorageRead, err)
	}
	return nil
}

func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// atomicWriteFile writes data to a temporary file in the target directory and
// renames it over path, so readers never observe a partially written
// snapshot.
func atomicWriteFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// no-op after a successful rename
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
