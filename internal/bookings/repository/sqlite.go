package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bookingserrors "salonbook/internal/bookings/errors"
	"salonbook/pkg/config"
	"salonbook/pkg/logger"
	"salonbook/pkg/model"

	"github.com/mattn/go-sqlite3"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS bookings (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL UNIQUE,
	created_at TEXT NOT NULL,
	name TEXT NOT NULL,
	phone TEXT NOT NULL,
	email TEXT NOT NULL DEFAULT '',
	service TEXT NOT NULL,
	staff TEXT NOT NULL,
	date TEXT NOT NULL,
	time TEXT NOT NULL,
	notes TEXT NOT NULL DEFAULT '',
	UNIQUE (date, time, staff)
)`

type SQLiteStore struct {
	db  *sql.DB
	cfg *config.Config
	log *logger.Logger
}

func NewSQLiteStore(ctx context.Context, cfg *config.Config) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dsn := cfg.SQLitePath + "?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// a single writer keeps sqlite from returning SQLITE_BUSY under load
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db, cfg: cfg, log: cfg.Log}

	initCtx, cancel := withTimeout(ctx, cfg.WriteTimeout)
	defer cancel()

	if err := db.PingContext(initCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.ExecContext(initCtx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bookings table: %w", err)
	}

	store.log.Info("SQLite booking store opened", "path", cfg.SQLitePath)
	return store, nil
}

func (s *SQLiteStore) LoadAll(ctx context.Context) ([]model.Booking, error) {
	ctx, cancel := withTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `SELECT id, created_at, name, phone, email, service, staff, date, time, notes
		FROM bookings ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", bookingserrors.ErrStorageRead, err)
	}
	defer rows.Close()

	bookings := []model.Booking{}
	for rows.Next() {
		var (
			b         model.Booking
			createdAt string
		)
		if err := rows.Scan(&b.ID, &createdAt, &b.Name, &b.Phone, &b.Email, &b.Service, &b.Staff, &b.Date, &b.Time, &b.Notes); err != nil {
			return nil, fmt.Errorf("%w: %v", bookingserrors.ErrStorageRead, err)
		}
		if b.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("%w: booking %s has invalid created_at: %v", bookingserrors.ErrStorageRead, b.ID, err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", bookingserrors.ErrStorageRead, err)
	}

	return bookings, nil
}

func (s *SQLiteStore) HasConflict(ctx context.Context, slot model.Slot) (bool, error) {
	ctx, cancel := withTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM bookings WHERE date = ? AND time = ? AND staff = ? LIMIT 1`,
		slot.Date, slot.Time, slot.Staff,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %v", bookingserrors.ErrStorageRead, err)
	}
	return true, nil
}

func (s *SQLiteStore) Append(ctx context.Context, booking model.Booking) error {
	ctx, cancel := withTimeout(ctx, s.cfg.WriteTimeout)
	defer cancel()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO bookings (id, created_at, name, phone, email, service, staff, date, time, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		booking.ID,
		booking.CreatedAt.UTC().Format(time.RFC3339Nano),
		booking.Name,
		booking.Phone,
		booking.Email,
		booking.Service,
		booking.Staff,
		booking.Date,
		booking.Time,
		booking.Notes,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return bookingserrors.ErrSlotTaken
		}
		return fmt.Errorf("%w: %v", bookingserrors.ErrStorageWrite, err)
	}
	return nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
