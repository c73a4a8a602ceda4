package service

import (
	"context"
	"errors"
	"sync"
	"time"

	bookingserrors "salonbook/internal/bookings/errors"
	"salonbook/internal/bookings/repository"
	"salonbook/internal/bookings/validator"
	"salonbook/pkg/config"
	apperrors "salonbook/pkg/errors"
	"salonbook/pkg/metrics"
	"salonbook/pkg/model"
	"salonbook/pkg/sanitizer"

	"github.com/google/uuid"
)

const (
	msgMissingSlot     = "Missing date, time, or staff"
	msgMissingFields   = "Missing required fields"
	msgSlotUnavailable = "Slot unavailable for that staff member"
)

type BookingService interface {
	GetAll(ctx context.Context) ([]model.Booking, error)
	CheckAvailability(ctx context.Context, date, time, staff string) (bool, error)
	Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error)
}

// Enqueuer accepts admitted bookings for out-of-band notification. Enqueue
// must not block.
type Enqueuer interface {
	Enqueue(booking model.Booking) bool
}

type bookingService struct {
	repo      repository.BookingStore
	validator *validator.BookingValidator
	notifier  Enqueuer
	cfg       *config.Config

	// admitMu makes conflict check plus append one step for this process.
	admitMu sync.Mutex

	now   func() time.Time
	newID func() string
}

func NewBookingService(
	repo repository.BookingStore,
	validator *validator.BookingValidator,
	notifier Enqueuer,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		validator: validator,
		notifier:  notifier,
		cfg:       cfg,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

func (s *bookingService) GetAll(ctx context.Context) ([]model.Booking, error) {
	bookings, err := s.repo.LoadAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings", "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	if bookings == nil {
		bookings = []model.Booking{}
	}
	return bookings, nil
}

func (s *bookingService) CheckAvailability(ctx context.Context, date, tm, staff string) (bool, error) {
	req := &model.AvailabilityRequest{Date: date, Time: tm, Staff: staff}
	if err := s.validator.ValidateAvailability(req); err != nil {
		metrics.IncAvailabilityCheck(metrics.ResultInvalid)
		return false, apperrors.InvalidInput(msgMissingSlot)
	}

	taken, err := s.repo.HasConflict(ctx, req.Slot())
	if err != nil {
		metrics.IncAvailabilityCheck(metrics.ResultError)
		s.cfg.Log.Error("Failed to check slot availability",
			"date", date,
			"time", tm,
			"staff", staff,
			"error", err,
		)
		return false, apperrors.Internal("Failed to check availability", err)
	}

	if taken {
		metrics.IncAvailabilityCheck(metrics.ResultUnavailable)
	} else {
		metrics.IncAvailabilityCheck(metrics.ResultAvailable)
	}
	return !taken, nil
}

func (s *bookingService) Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
	if req == nil {
		metrics.IncBookingRequest(metrics.ResultInvalid)
		return nil, apperrors.InvalidInput(msgMissingFields)
	}

	s.sanitize(req)
	if err := s.validate(req); err != nil {
		metrics.IncBookingRequest(metrics.ResultInvalid)
		return nil, err
	}

	booking, err := s.admit(ctx, req)
	if err != nil {
		return nil, err
	}

	metrics.IncBookingRequest(metrics.ResultAdmitted)
	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"staff", booking.Staff,
		"date", booking.Date,
		"time", booking.Time,
	)

	if s.notifier != nil {
		s.notifier.Enqueue(*booking)
	}
	return booking, nil
}

// admit runs the conflict check and the append under admitMu. The lock is
// released before Create hands the booking to the notifier.
func (s *bookingService) admit(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
	s.admitMu.Lock()
	defer s.admitMu.Unlock()

	taken, err := s.repo.HasConflict(ctx, req.Slot())
	if err != nil {
		metrics.IncBookingRequest(metrics.ResultError)
		s.cfg.Log.Error("Failed to check slot before booking", "error", err)
		return nil, apperrors.Internal("Failed to create booking", err)
	}
	if taken {
		return nil, s.rejectConflict(req)
	}

	booking := s.build(req)
	if err := s.repo.Append(ctx, booking); err != nil {
		if errors.Is(err, bookingserrors.ErrSlotTaken) {
			return nil, s.rejectConflict(req)
		}
		metrics.IncBookingRequest(metrics.ResultError)
		s.cfg.Log.Error("Failed to persist booking", "id", booking.ID, "error", err)
		return nil, apperrors.Internal("Failed to create booking", err)
	}
	return &booking, nil
}

func (s *bookingService) rejectConflict(req *model.BookingRequest) error {
	metrics.IncBookingRequest(metrics.ResultConflict)
	s.cfg.Log.Info("Booking rejected, slot taken",
		"staff", req.Staff,
		"date", req.Date,
		"time", req.Time,
	)
	return apperrors.Conflict(msgSlotUnavailable)
}

func (s *bookingService) build(req *model.BookingRequest) model.Booking {
	return model.Booking{
		ID:        s.newID(),
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		Service:   req.Service,
		Staff:     req.Staff,
		Date:      req.Date,
		Time:      req.Time,
		Notes:     req.Notes,
	}
}

// --- Helpers ---

func (s *bookingService) sanitize(req *model.BookingRequest) {
	req.Name = sanitizer.SanitizeName(req.Name)
	req.Service = sanitizer.SanitizeService(req.Service)
	req.Notes = sanitizer.SanitizeNotes(req.Notes)
}

func (s *bookingService) validate(req *model.BookingRequest) error {
	err := s.validator.Validate(req)
	if err == nil {
		return nil
	}

	s.cfg.Log.Warn("Booking validation failed", "error", err)
	appErr := apperrors.InvalidInput(msgMissingFields)
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		appErr = appErr.WithDetails(map[string]any{"fields": fieldErrs.Fields()})
	}
	return appErr
}
