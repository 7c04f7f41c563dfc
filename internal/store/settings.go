package store

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
)

// SettingsSaver persists the global flags.
type SettingsSaver interface {
	SaveSettings(ctx context.Context, settings domain.Settings) error
}

// SettingsStore holds the process-wide schedule selector and kill switch.
// Setters persist before returning and roll back on failure.
type SettingsStore struct {
	// saver writes every change; nil keeps settings in memory only.
	saver SettingsSaver
	// settings is the current in-memory value.
	settings domain.Settings
	// mu protects settings and orders writes to saver.
	mu sync.RWMutex
}

// NewSettingsStore creates a store with the initial value and persistence backend.
func NewSettingsStore(initial domain.Settings, saver SettingsSaver) *SettingsStore {
	return &SettingsStore{
		saver:    saver,
		settings: initial,
	}
}

// Get returns a snapshot of both flags.
func (s *SettingsStore) Get() domain.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.settings
}

// IsPrimarySchedule reports whether the primary alarm group is selected.
func (s *SettingsStore) IsPrimarySchedule() bool {
	return s.Get().IsPrimarySchedule
}

// IsGlobalOn reports whether alarms may fire at all.
func (s *SettingsStore) IsGlobalOn() bool {
	return s.Get().IsGlobalOn
}

// SetIsPrimarySchedule selects the primary or the alternate alarm group.
func (s *SettingsStore) SetIsPrimarySchedule(ctx context.Context, isPrimary bool) error {
	return s.update(ctx, func(settings *domain.Settings) {
		settings.IsPrimarySchedule = isPrimary
	})
}

// SetIsGlobalOn flips the master switch.
func (s *SettingsStore) SetIsGlobalOn(ctx context.Context, isGlobalOn bool) error {
	return s.update(ctx, func(settings *domain.Settings) {
		settings.IsGlobalOn = isGlobalOn
	})
}

// update applies the change, persists it and restores the prior value on failure.
func (s *SettingsStore) update(ctx context.Context, apply func(*domain.Settings)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.settings
	apply(&s.settings)

	if s.saver == nil {
		return nil
	}

	if err := s.saver.SaveSettings(ctx, s.settings); err != nil {
		s.settings = previous

		logger.ErrorKV(ctx, "Failed to persist settings, rolled back", "error", err)

		return fmt.Errorf("persist settings: %w", domain.Persistence(err))
	}

	logger.InfoKV(ctx, "Settings updated",
		"is_primary_schedule", s.settings.IsPrimarySchedule,
		"is_global_on", s.settings.IsGlobalOn)

	return nil
}
