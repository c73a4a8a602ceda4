package model

import (
	"encoding/json"
	"time"
)

// CreatedAtLayout is the wire form of createdAt: UTC with milliseconds.
const CreatedAtLayout = "2006-01-02T15:04:05.000Z"

type Booking struct {
	ID        string    `json:"id" bson:"_id"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	Name      string    `json:"name" bson:"name"`
	Phone     string    `json:"phone" bson:"phone"`
	Email     string    `json:"email" bson:"email"`
	Service   string    `json:"service" bson:"service"`
	Staff     string    `json:"staff" bson:"staff"`
	Date      string    `json:"date" bson:"date"`
	Time      string    `json:"time" bson:"time"`
	Notes     string    `json:"notes" bson:"notes"`
}

// Slot returns the (date, time, staff) triple the booking occupies.
func (b Booking) Slot() Slot {
	return Slot{Date: b.Date, Time: b.Time, Staff: b.Staff}
}

type BookingRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Email   string `json:"email,omitempty" validate:"omitempty"`
	Service string `json:"service" validate:"required"`
	Staff   string `json:"staff" validate:"required"`
	Date    string `json:"date" validate:"required"`
	Time    string `json:"time" validate:"required"`
	Notes   string `json:"notes,omitempty" validate:"omitempty"`
}

// bookingWire fixes the JSON field order and carries createdAt as raw text.
type bookingWire struct {
	ID        string          `json:"id"`
	CreatedAt json.RawMessage `json:"createdAt"`
	Name      string          `json:"name"`
	Phone     string          `json:"phone"`
	Email     string          `json:"email"`
	Service   string          `json:"service"`
	Staff     string          `json:"staff"`
	Date      string          `json:"date"`
	Time      string          `json:"time"`
	Notes     string          `json:"notes"`
}

func (b Booking) MarshalJSON() ([]byte, error) {
	createdAt, err := json.Marshal(b.CreatedAt.UTC().Format(CreatedAtLayout))
	if err != nil {
		return nil, err
	}
	return json.Marshal(bookingWire{
		ID:        b.ID,
		CreatedAt: createdAt,
		Name:      b.Name,
		Phone:     b.Phone,
		Email:     b.Email,
		Service:   b.Service,
		Staff:     b.Staff,
		Date:      b.Date,
		Time:      b.Time,
		Notes:     b.Notes,
	})
}

// UnmarshalJSON accepts any RFC 3339 createdAt. A missing or unparsable
// createdAt decodes as the zero time instead of failing the record.
func (b *Booking) UnmarshalJSON(data []byte) error {
	var w bookingWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*b = Booking{
		ID:        w.ID,
		CreatedAt: parseCreatedAt(w.CreatedAt),
		Name:      w.Name,
		Phone:     w.Phone,
		Email:     w.Email,
		Service:   w.Service,
		Staff:     w.Staff,
		Date:      w.Date,
		Time:      w.Time,
		Notes:     w.Notes,
	}
	return nil
}

func parseCreatedAt(raw json.RawMessage) time.Time {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

func (r BookingRequest) Slot() Slot {
	return Slot{Date: r.Date, Time: r.Time, Staff: r.Staff}
}

type AvailabilityRequest struct {
	Date  string `json:"date" validate:"required"`
	Time  string `json:"time" validate:"required"`
	Staff string `json:"staff" validate:"required"`
}

func (r AvailabilityRequest) Slot() Slot {
	return Slot{Date: r.Date, Time: r.Time, Staff: r.Staff}
}
