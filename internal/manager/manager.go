package manager

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
	"github.com/oshokin/alarm-clock/internal/playback"
	"github.com/oshokin/alarm-clock/internal/store"
)

// AlarmSaver persists the whole alarm list.
type AlarmSaver interface {
	SaveAlarms(ctx context.Context, alarms []domain.Alarm) error
}

// Scheduler is the part of the timing loop the facade talks to.
// Recompute must update Next before it returns.
type Scheduler interface {
	Recompute(ctx context.Context)
	Next() domain.FireEvent
}

// RemoveResult reports a partially successful removal.
type RemoveResult struct {
	// NotFound lists the requested ids that did not exist.
	NotFound []string
}

// AllFound reports whether every requested id existed.
func (r RemoveResult) AllFound() bool {
	return len(r.NotFound) == 0
}

// Manager coordinates the stores, persistence, playback and the scheduler.
type Manager struct {
	alarms    *store.AlarmStore
	settings  *store.SettingsStore
	saver     AlarmSaver
	playback  *playback.Controller
	scheduler Scheduler

	// mu serializes mutations so store, persisted file and schedule change together.
	mu sync.Mutex
}

// New wires the facade. A nil saver keeps alarms in memory only.
func New(
	alarms *store.AlarmStore,
	settings *store.SettingsStore,
	saver AlarmSaver,
	controller *playback.Controller,
	scheduler Scheduler,
) *Manager {
	return &Manager{
		alarms:    alarms,
		settings:  settings,
		saver:     saver,
		playback:  controller,
		scheduler: scheduler,
	}
}

// GetAlarms returns every alarm in insertion order.
func (m *Manager) GetAlarms(_ context.Context) []domain.Alarm {
	return m.alarms.GetAll()
}

// SetAlarm creates or replaces an alarm, persists the list and reschedules.
func (m *Manager) SetAlarm(ctx context.Context, alarm domain.Alarm) error {
	if err := alarm.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := m.alarms.GetAll()

	if err := m.alarms.Upsert(alarm); err != nil {
		return err
	}

	if err := m.persist(ctx, snapshot); err != nil {
		return err
	}

	m.scheduler.Recompute(ctx)

	logger.InfoKV(ctx, "Alarm saved",
		"alarm_id", alarm.ID,
		"time", fmt.Sprintf("%02d:%02d", alarm.Hour, alarm.Minute),
		"days", domain.WeekdayNames(alarm.Days),
		"is_primary_schedule", alarm.IsPrimarySchedule,
		"active", alarm.Active)

	return nil
}

// RemoveAlarms deletes the listed alarms. Missing ids do not abort the
// removal of the others; they are reported in the result.
func (m *Manager) RemoveAlarms(ctx context.Context, ids []string) (RemoveResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := m.alarms.GetAll()
	notFound := m.alarms.Remove(ids)

	// Nothing to persist when every id was missing.
	if m.alarms.Len() != len(snapshot) {
		if err := m.persist(ctx, snapshot); err != nil {
			return RemoveResult{}, err
		}

		m.scheduler.Recompute(ctx)
	}

	logger.InfoKV(ctx, "Alarms removed",
		"requested", len(ids),
		"removed", len(snapshot)-m.alarms.Len(),
		"not_found", notFound)

	return RemoveResult{NotFound: notFound}, nil
}

// IsPrimarySchedule reports the selected alarm group.
func (m *Manager) IsPrimarySchedule(_ context.Context) bool {
	return m.settings.IsPrimarySchedule()
}

// SetPrimarySchedule selects the alarm group and reschedules.
func (m *Manager) SetPrimarySchedule(ctx context.Context, isPrimary bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.settings.SetIsPrimarySchedule(ctx, isPrimary); err != nil {
		return err
	}

	m.scheduler.Recompute(ctx)

	return nil
}

// IsGlobalOn reports the master switch.
func (m *Manager) IsGlobalOn(_ context.Context) bool {
	return m.settings.IsGlobalOn()
}

// SetGlobalOn flips the master switch and reschedules.
func (m *Manager) SetGlobalOn(ctx context.Context, isGlobalOn bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.settings.SetIsGlobalOn(ctx, isGlobalOn); err != nil {
		return err
	}

	m.scheduler.Recompute(ctx)

	return nil
}

// Play starts the alarm sound on user request.
func (m *Manager) Play(ctx context.Context) error {
	return m.playback.ManualPlay(ctx)
}

// Stop silences the alarm sound on user request.
func (m *Manager) Stop(ctx context.Context) error {
	return m.playback.ManualStop(ctx)
}

// IsPlaying reports whether the alarm sound is playing.
func (m *Manager) IsPlaying(_ context.Context) bool {
	return m.playback.IsPlaying()
}

// NextFire returns the alarm the scheduler is currently waiting for.
func (m *Manager) NextFire(_ context.Context) domain.FireEvent {
	return m.scheduler.Next()
}

// persist writes the current alarm list and restores the snapshot on failure.
func (m *Manager) persist(ctx context.Context, snapshot []domain.Alarm) error {
	if m.saver == nil {
		return nil
	}

	if err := m.saver.SaveAlarms(ctx, m.alarms.GetAll()); err != nil {
		m.alarms.Replace(snapshot)

		logger.ErrorKV(ctx, "Failed to persist alarms, rolled back", "error", err)

		return fmt.Errorf("persist alarms: %w", domain.Persistence(err))
	}

	return nil
}
