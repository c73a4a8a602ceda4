package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingserrors "salonbook/internal/bookings/errors"
	"salonbook/pkg/config"
	"salonbook/pkg/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// bookingRow is the relational shape of a booking. Seq preserves insertion
// order; the slot columns carry a composite unique index.
type bookingRow struct {
	Seq       int64     `gorm:"primaryKey;autoIncrement"`
	BookingID string    `gorm:"column:booking_id;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime:false;not null"`
	Name      string    `gorm:"not null"`
	Phone     string    `gorm:"not null"`
	Email     string
	Service   string `gorm:"not null"`
	Staff     string `gorm:"uniqueIndex:idx_bookings_slot;not null"`
	Date      string `gorm:"uniqueIndex:idx_bookings_slot;not null"`
	Time      string `gorm:"column:slot_time;uniqueIndex:idx_bookings_slot;not null"`
	Notes     string
}

func (bookingRow) TableName() string { return "bookings" }

func toRow(b model.Booking) bookingRow {
	return bookingRow{
		BookingID: b.ID,
		CreatedAt: b.CreatedAt.UTC(),
		Name:      b.Name,
		Phone:     b.Phone,
		Email:     b.Email,
		Service:   b.Service,
		Staff:     b.Staff,
		Date:      b.Date,
		Time:      b.Time,
		Notes:     b.Notes,
	}
}

func (r bookingRow) toModel() model.Booking {
	return model.Booking{
		ID:        r.BookingID,
		CreatedAt: r.CreatedAt.UTC(),
		Name:      r.Name,
		Phone:     r.Phone,
		Email:     r.Email,
		Service:   r.Service,
		Staff:     r.Staff,
		Date:      r.Date,
		Time:      r.Time,
		Notes:     r.Notes,
	}
}

type PostgresStore struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewPostgresStore(ctx context.Context, cfg *config.Config) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Discard,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	initCtx, cancel := withTimeout(ctx, cfg.WriteTimeout)
	defer cancel()

	if err := db.WithContext(initCtx).AutoMigrate(&bookingRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate bookings table: %w", err)
	}

	cfg.Log.Info("Postgres booking store opened")
	return &PostgresStore{db: db, cfg: cfg}, nil
}

func (s *PostgresStore) LoadAll(ctx context.Context) ([]model.Booking, error) {
	ctx, cancel := withTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	var rows []bookingRow
	if err := s.db.WithContext(ctx).Order("seq").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", bookingserrors.ErrStorageRead, err)
	}

	bookings := make([]model.Booking, 0, len(rows))
	for _, row := range rows {
		bookings = append(bookings, row.toModel())
	}
	return bookings, nil
}

func (s *PostgresStore) HasConflict(ctx context.Context, slot model.Slot) (bool, error) {
	ctx, cancel := withTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	var count int64
	err := s.db.WithContext(ctx).
		Model(&bookingRow{}).
		Where("date = ? AND slot_time = ? AND staff = ?", slot.Date, slot.Time, slot.Staff).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("%w: %v", bookingserrors.ErrStorageRead, err)
	}
	return count > 0, nil
}

func (s *PostgresStore) Append(ctx context.Context, booking model.Booking) error {
	ctx, cancel := withTimeout(ctx, s.cfg.WriteTimeout)
	defer cancel()

	row := toRow(booking)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return bookingserrors.ErrSlotTaken
		}
		return fmt.Errorf("%w: %v", bookingserrors.ErrStorageWrite, err)
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	ctx, cancel := withTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
