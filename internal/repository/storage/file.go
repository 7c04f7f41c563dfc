package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/alarm-clock/internal/config"
	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// FileRepository persists alarms and settings to two YAML files.
// Every write goes to a temporary file in the same directory which then
// replaces the target, so readers never see a partially written file.
type FileRepository struct {
	// alarmsPath is the filesystem location of the alarms file.
	alarmsPath string
	// settingsPath is the filesystem location of the settings file.
	settingsPath string
	// mu serializes access to both files.
	mu sync.Mutex
}

// NewFileRepository creates a repository that reads/writes YAML at the provided paths.
func NewFileRepository(alarmsPath, settingsPath string) *FileRepository {
	return &FileRepository{
		alarmsPath:   filepath.Clean(alarmsPath),
		settingsPath: filepath.Clean(settingsPath),
	}
}

// LoadAlarms reads the alarm list from disk.
func (r *FileRepository) LoadAlarms(_ context.Context) ([]domain.Alarm, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var document alarmsDocument
	if err := readYAML(r.alarmsPath, &document); err != nil {
		return nil, err
	}

	alarms, err := fromRecords(document.Alarms)
	if err != nil {
		return nil, fmt.Errorf("%w: decode alarms file: %w", domain.ErrPersistence, err)
	}

	return alarms, nil
}

// SaveAlarms replaces the alarm list on disk.
func (r *FileRepository) SaveAlarms(_ context.Context, alarms []domain.Alarm) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return writeYAML(r.alarmsPath, &alarmsDocument{Alarms: toRecords(alarms)})
}

// LoadSettings reads the global flags from disk.
func (r *FileRepository) LoadSettings(_ context.Context) (domain.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var record settingsRecord
	if err := readYAML(r.settingsPath, &record); err != nil {
		return domain.Settings{}, err
	}

	return fromSettingsRecord(record), nil
}

// SaveSettings replaces the global flags on disk.
func (r *FileRepository) SaveSettings(_ context.Context, settings domain.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record := toSettingsRecord(settings)

	return writeYAML(r.settingsPath, &record)
}

// readYAML decodes a file, reporting a missing file as ErrNotFound.
func readYAML(path string, out any) error {
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotFound
		}

		return fmt.Errorf("%w: read %s: %w", domain.ErrPersistence, path, err)
	}

	if err = yaml.Unmarshal(contents, out); err != nil {
		return fmt.Errorf("%w: decode %s: %w", domain.ErrPersistence, path, err)
	}

	return nil
}

// writeYAML encodes the value and atomically replaces the file.
func writeYAML(path string, value any) (err error) {
	data, err := yaml.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", domain.ErrPersistence, path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temporary file: %w", domain.ErrPersistence, err)
	}

	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()

		return fmt.Errorf("%w: write %s: %w", domain.ErrPersistence, tmp.Name(), err)
	}

	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()

		return fmt.Errorf("%w: sync %s: %w", domain.ErrPersistence, tmp.Name(), err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", domain.ErrPersistence, tmp.Name(), err)
	}

	if err = os.Chmod(tmp.Name(), config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("%w: chmod %s: %w", domain.ErrPersistence, tmp.Name(), err)
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: replace %s: %w", domain.ErrPersistence, path, err)
	}

	return nil
}
