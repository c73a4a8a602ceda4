package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	bookingserrors "salonbook/internal/bookings/errors"
	"salonbook/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBooking(id, date, tm, staff string) model.Booking {
	return model.Booking{
		ID:        id,
		CreatedAt: time.Date(2024, 5, 20, 9, 30, 0, 0, time.UTC),
		Name:      "Ann",
		Phone:     "555",
		Service:   "Cut",
		Staff:     staff,
		Date:      date,
		Time:      tm,
	}
}

func TestMemoryStore_AppendAndLoadAll(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	all, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	first := sampleBooking("b1", "2024-06-01", "10:00", "Bo")
	second := sampleBooking("b2", "2024-06-01", "11:00", "Bo")
	require.NoError(t, store.Append(ctx, first))
	require.NoError(t, store.Append(ctx, second))

	all, err = store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Booking{first, second}, all)
}

func TestMemoryStore_HasConflict(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(sampleBooking("b1", "2024-06-01", "10:00", "Bo"))

	tests := []struct {
		name string
		slot model.Slot
		want bool
	}{
		{"same slot", model.Slot{Date: "2024-06-01", Time: "10:00", Staff: "Bo"}, true},
		{"different time", model.Slot{Date: "2024-06-01", Time: "11:00", Staff: "Bo"}, false},
		{"different staff", model.Slot{Date: "2024-06-01", Time: "10:00", Staff: "Cy"}, false},
		{"different date", model.Slot{Date: "2024-06-02", Time: "10:00", Staff: "Bo"}, false},
		{"case differs", model.Slot{Date: "2024-06-01", Time: "10:00", Staff: "bo"}, false},
		{"padded time", model.Slot{Date: "2024-06-01", Time: "10:00 ", Staff: "Bo"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.HasConflict(ctx, tt.slot)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMemoryStore_AppendRejectsTakenSlot(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Append(ctx, sampleBooking("b1", "2024-06-01", "10:00", "Bo")))
	err := store.Append(ctx, sampleBooking("b2", "2024-06-01", "10:00", "Bo"))
	assert.ErrorIs(t, err, bookingserrors.ErrSlotTaken)

	all, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Equal(t, "b1", all[0].ID)
}

func TestMemoryStore_LoadAllReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(sampleBooking("b1", "2024-06-01", "10:00", "Bo"))

	all, err := store.LoadAll(ctx)
	require.NoError(t, err)
	all[0].Name = "Mallory"

	again, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ann", again[0].Name)
}

func TestMemoryStore_Closed(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Close())

	_, err := store.LoadAll(ctx)
	assert.ErrorIs(t, err, bookingserrors.ErrStoreClosed)
	assert.ErrorIs(t, store.Append(ctx, sampleBooking("b1", "d", "t", "s")), bookingserrors.ErrStoreClosed)
	assert.ErrorIs(t, store.Ping(ctx), bookingserrors.ErrStoreClosed)
}

func TestMemoryStore_Snapshot(t *testing.T) {
	store := NewMemoryStore()
	data, err := store.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	booking := sampleBooking("b1", "2024-06-01", "10:00", "Bo")
	require.NoError(t, store.Append(context.Background(), booking))

	data, err = store.Snapshot()
	require.NoError(t, err)

	var decoded []model.Booking
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, []model.Booking{booking}, decoded)
}
