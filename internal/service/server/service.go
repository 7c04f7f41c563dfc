package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
	"github.com/oshokin/alarm-clock/internal/manager"
	"github.com/oshokin/alarm-clock/internal/playback"
	repo "github.com/oshokin/alarm-clock/internal/repository/storage"
	"github.com/oshokin/alarm-clock/internal/scheduler"
	"github.com/oshokin/alarm-clock/internal/store"
)

// service bundles the running components of the alarm clock.
// It is unexported to keep the transport decoupled from the wiring.
type service struct {
	// manager is the facade handed to the transport.
	manager *manager.Manager
	// scheduler runs the timing loop.
	scheduler *scheduler.Scheduler
	// playback drives the sound.
	playback *playback.Controller
}

// serviceOptions tunes the components built by newService.
type serviceOptions struct {
	// location is the wall clock alarms are evaluated in.
	location *time.Location
	// maxDuration stops playback automatically; zero disables.
	maxDuration time.Duration
	// clock replaces the wall clock in tests.
	clock func() time.Time
}

// newService loads persisted state from the repository and wires the stores,
// playback controller, scheduler and manager together.
func newService(
	ctx context.Context,
	repository repo.Repository,
	player playback.Player,
	opts serviceOptions,
) (*service, error) {
	alarms, err := repository.LoadAlarms(ctx)
	switch {
	case err == nil:
	case errors.Is(err, repo.ErrNotFound):
		// Start without alarms.
		alarms = nil
	default:
		return nil, fmt.Errorf("load alarms: %w", err)
	}

	settings, err := repository.LoadSettings(ctx)
	switch {
	case err == nil:
	case errors.Is(err, repo.ErrNotFound):
		settings = domain.DefaultSettings()
	default:
		return nil, fmt.Errorf("load settings: %w", err)
	}

	alarmStore := store.NewAlarmStore(alarms)
	settingsStore := store.NewSettingsStore(settings, repository)
	controller := playback.New(player, playback.WithMaxDuration(opts.maxDuration))

	schedulerOpts := []scheduler.Option{scheduler.WithLocation(opts.location)}
	if opts.clock != nil {
		schedulerOpts = append(schedulerOpts, scheduler.WithClock(opts.clock))
	}

	timing := scheduler.New(alarmStore, settingsStore, controller, schedulerOpts...)

	logger.InfoKV(ctx, "State loaded",
		"alarms", alarmStore.Len(),
		"is_primary_schedule", settings.IsPrimarySchedule,
		"is_global_on", settings.IsGlobalOn)

	return &service{
		manager:   manager.New(alarmStore, settingsStore, repository, controller, timing),
		scheduler: timing,
		playback:  controller,
	}, nil
}
