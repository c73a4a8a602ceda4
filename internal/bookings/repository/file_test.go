package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	bookingserrors "salonbook/internal/bookings/errors"
	"salonbook/pkg/config"
	"salonbook/pkg/logger"
	"salonbook/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		StoreBackend: config.BackendFile,
		DataFile:     filepath.Join(t.TempDir(), "data", "bookings.json"),
		Log:          logger.NewNop(),
	}
}

func TestFileStore_InitialisesMissingFile(t *testing.T) {
	cfg := newFileConfig(t)

	store, err := NewFileStore(cfg)
	require.NoError(t, err)
	defer store.Close()

	data, err := os.ReadFile(cfg.DataFile)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	all, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.NoError(t, store.Ping(context.Background()))
}

func TestFileStore_CorruptFileLoadsEmpty(t *testing.T) {
	cfg := newFileConfig(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(cfg.DataFile), 0o755))
	require.NoError(t, os.WriteFile(cfg.DataFile, []byte("{not json"), 0o644))

	store, err := NewFileStore(cfg)
	require.NoError(t, err)

	all, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)

	entries, err := os.ReadDir(filepath.Dir(cfg.DataFile))
	require.NoError(t, err)
	var quarantined bool
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "bookings.json.corrupt-") {
			quarantined = true
		}
	}
	assert.True(t, quarantined, "corrupt file should be moved aside")

	// the store keeps working after recovering
	require.NoError(t, store.Append(context.Background(), sampleBooking("b1", "2024-06-01", "10:00", "Bo")))
}

func TestFileStore_NullFileLoadsEmpty(t *testing.T) {
	cfg := newFileConfig(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(cfg.DataFile), 0o755))
	require.NoError(t, os.WriteFile(cfg.DataFile, []byte("null"), 0o644))

	store, err := NewFileStore(cfg)
	require.NoError(t, err)

	all, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestFileStore_KeepsRecordsWithBadCreatedAt(t *testing.T) {
	cfg := newFileConfig(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(cfg.DataFile), 0o755))
	existing := `[
  {"id":"b1","createdAt":"2024-06-01T10:00:00.000Z","name":"Ann","phone":"555","email":"","service":"Cut","staff":"Bo","date":"2024-06-01","time":"10:00","notes":""},
  {"id":"b2","createdAt":"not a time","name":"Cy","phone":"556","email":"","service":"Colour","staff":"Bo","date":"2024-06-01","time":"11:00","notes":""}
]`
	require.NoError(t, os.WriteFile(cfg.DataFile, []byte(existing), 0o644))

	store, err := NewFileStore(cfg)
	require.NoError(t, err)

	all, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "b1", all[0].ID)
	assert.Equal(t, "b2", all[1].ID)
	assert.True(t, all[1].CreatedAt.IsZero())

	taken, err := store.HasConflict(context.Background(), model.Slot{Date: "2024-06-01", Time: "11:00", Staff: "Bo"})
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestFileStore_WritesMillisecondCreatedAt(t *testing.T) {
	cfg := newFileConfig(t)
	store, err := NewFileStore(cfg)
	require.NoError(t, err)
	require.NoError(t, store.Append(context.Background(), sampleBooking("b1", "2024-06-01", "10:00", "Bo")))

	data, err := os.ReadFile(cfg.DataFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"createdAt": "2024-05-20T09:30:00.000Z"`)
}

func TestFileStore_ReopenReturnsSameSequence(t *testing.T) {
	ctx := context.Background()
	cfg := newFileConfig(t)

	store, err := NewFileStore(cfg)
	require.NoError(t, err)

	want := []model.Booking{
		sampleBooking("b1", "2024-06-01", "10:00", "Bo"),
		sampleBooking("b2", "2024-06-01", "10:00", "Cy"),
		sampleBooking("b3", "2024-06-02", "09:00", "Bo"),
	}
	for _, b := range want {
		require.NoError(t, store.Append(ctx, b))
	}
	require.NoError(t, store.Close())

	reopened, err := NewFileStore(cfg)
	require.NoError(t, err)

	got, err := reopened.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	conflict, err := reopened.HasConflict(ctx, model.Slot{Date: "2024-06-01", Time: "10:00", Staff: "Cy"})
	require.NoError(t, err)
	assert.True(t, conflict)
}

func TestFileStore_FailedWriteLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	cfg := newFileConfig(t)

	store, err := NewFileStore(cfg)
	require.NoError(t, err)
	require.NoError(t, store.Append(ctx, sampleBooking("b1", "2024-06-01", "10:00", "Bo")))

	store.writeFile = func(string, []byte) error {
		return errors.New("disk full")
	}

	failed := sampleBooking("b2", "2024-06-01", "11:00", "Bo")
	err = store.Append(ctx, failed)
	require.Error(t, err)
	assert.ErrorIs(t, err, bookingserrors.ErrStorageWrite)

	all, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	conflict, err := store.HasConflict(ctx, failed.Slot())
	require.NoError(t, err)
	assert.False(t, conflict, "slot of a failed append must stay free")

	store.writeFile = atomicWriteFile
	require.NoError(t, store.Append(ctx, failed))
}

func TestFileStore_AppendRejectsTakenSlot(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(newFileConfig(t))
	require.NoError(t, err)

	require.NoError(t, store.Append(ctx, sampleBooking("b1", "2024-06-01", "10:00", "Bo")))
	assert.ErrorIs(t, store.Append(ctx, sampleBooking("b2", "2024-06-01", "10:00", "Bo")), bookingserrors.ErrSlotTaken)
}

func TestFileStore_PersistsIndentedArray(t *testing.T) {
	cfg := newFileConfig(t)
	store, err := NewFileStore(cfg)
	require.NoError(t, err)
	require.NoError(t, store.Append(context.Background(), sampleBooking("b1", "2024-06-01", "10:00", "Bo")))

	data, err := os.ReadFile(cfg.DataFile)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "[\n  {\n    \"id\": \"b1\""), string(data))

	snapshot, err := store.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, string(data), string(snapshot))
}

func TestFileStore_UnreadablePath(t *testing.T) {
	cfg := newFileConfig(t)
	// a directory where the file should be
	require.NoError(t, os.MkdirAll(cfg.DataFile, 0o755))

	_, err := NewFileStore(cfg)
	assert.ErrorIs(t, err, bookingserrors.ErrStorageRead)
}
