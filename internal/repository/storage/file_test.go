package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// sampleAlarms returns alarms covering every persisted field.
func sampleAlarms() []domain.Alarm {
	return []domain.Alarm{
		{
			ID:                "workday",
			Hour:              6,
			Minute:            45,
			Days:              []time.Weekday{time.Monday, time.Tuesday, time.Friday},
			IsPrimarySchedule: true,
			Active:            true,
		},
		{
			ID:     "every-day",
			Hour:   22,
			Minute: 0,
		},
	}
}

// TestFileRepository_NotFound verifies loads return ErrNotFound for missing files.
func TestFileRepository_NotFound(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	repo := NewFileRepository(filepath.Join(dir, "alarms.yaml"), filepath.Join(dir, "state.yaml"))

	alarms, err := repo.LoadAlarms(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
	require.Nil(t, alarms)

	_, err = repo.LoadSettings(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
}

// TestFileRepository_SaveLoad_Roundtrip ensures saves followed by loads return equal values.
func TestFileRepository_SaveLoad_Roundtrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	alarmsPath := filepath.Join(dir, "alarms.yaml")
	repo := NewFileRepository(alarmsPath, filepath.Join(dir, "state.yaml"))
	ctx := context.Background()

	want := sampleAlarms()
	require.NoError(t, repo.SaveAlarms(ctx, want))

	got, err := repo.LoadAlarms(ctx)
	require.NoError(t, err)
	require.Equal(t, want, got)

	settings := domain.Settings{IsPrimarySchedule: false, IsGlobalOn: true}
	require.NoError(t, repo.SaveSettings(ctx, settings))

	loaded, err := repo.LoadSettings(ctx)
	require.NoError(t, err)
	require.Equal(t, settings, loaded)

	// Human-readable weekday names on disk, no temporary leftovers.
	contents, err := os.ReadFile(alarmsPath)
	require.NoError(t, err)
	require.Contains(t, string(contents), "[mon, tue, fri]")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
}

// TestFileRepository_RejectsCorruptFile reports invalid content as a persistence error.
func TestFileRepository_RejectsCorruptFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	alarmsPath := filepath.Join(dir, "alarms.yaml")
	repo := NewFileRepository(alarmsPath, filepath.Join(dir, "state.yaml"))

	require.NoError(t, os.WriteFile(alarmsPath, []byte("alarms:\n  - id: x\n    hour: 25\n"), 0o600))

	_, err := repo.LoadAlarms(context.Background())
	require.ErrorIs(t, err, domain.ErrPersistence)
	require.ErrorIs(t, err, domain.ErrValidation)

	require.NoError(t, os.WriteFile(alarmsPath, []byte("alarms: {"), 0o600))

	_, err = repo.LoadAlarms(context.Background())
	require.ErrorIs(t, err, domain.ErrPersistence)
}

// TestFileRepository_RejectsDuplicateIDs refuses a file listing the same id twice.
func TestFileRepository_RejectsDuplicateIDs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	alarmsPath := filepath.Join(dir, "alarms.yaml")
	repo := NewFileRepository(alarmsPath, filepath.Join(dir, "state.yaml"))

	content := "alarms:\n  - id: a\n    hour: 7\n  - id: b\n    hour: 8\n  - id: a\n    hour: 9\n"
	require.NoError(t, os.WriteFile(alarmsPath, []byte(content), 0o600))

	_, err := repo.LoadAlarms(context.Background())
	require.ErrorIs(t, err, domain.ErrPersistence)
	require.ErrorIs(t, err, domain.ErrValidation)

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "id", validationErr.Field)
	require.Contains(t, err.Error(), `duplicate id "a"`)
}

// TestFileRepository_WriteFailure surfaces an unwritable directory as a persistence error.
func TestFileRepository_WriteFailure(t *testing.T) {
	t.Parallel()

	missingDir := filepath.Join(t.TempDir(), "missing")
	repo := NewFileRepository(filepath.Join(missingDir, "alarms.yaml"), filepath.Join(missingDir, "state.yaml"))

	err := repo.SaveAlarms(context.Background(), sampleAlarms())
	require.ErrorIs(t, err, domain.ErrPersistence)

	err = repo.SaveSettings(context.Background(), domain.DefaultSettings())
	require.ErrorIs(t, err, domain.ErrPersistence)
}
