package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
)

// DefaultRetryInterval is the delay before a failed evaluation is retried.
const DefaultRetryInterval = time.Second

// AlarmSource provides the current alarm definitions.
type AlarmSource interface {
	GetAll() []domain.Alarm
}

// SettingsSource provides the current global flags.
type SettingsSource interface {
	Get() domain.Settings
}

// Trigger is the playback side driven by the timing loop.
type Trigger interface {
	Trigger(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock replaces the wall clock. The returned time's location is the one
// alarms are evaluated in.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation evaluates alarms on the system clock in the given location.
func WithLocation(loc *time.Location) Option {
	return func(s *Scheduler) {
		if loc != nil {
			s.now = func() time.Time {
				return time.Now().In(loc)
			}
		}
	}
}

// WithRetryInterval sets the delay before a failed evaluation is retried.
func WithRetryInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.retryInterval = d
		}
	}
}

// Scheduler decides when alarms fire and triggers playback.
// It holds no alarm data of its own apart from the pending FireEvent, which
// is rebuilt from the sources on every wake.
type Scheduler struct {
	// alarms and settings are read fresh on every wake.
	alarms   AlarmSource
	settings SettingsSource
	// trigger starts and stops playback.
	trigger Trigger
	// now reads the wall clock.
	now func() time.Time
	// retryInterval is the delay after a failed evaluation.
	retryInterval time.Duration
	// wake carries reschedule requests; capacity one so requests coalesce.
	wake chan struct{}

	// mu protects next and reached, and serializes recomputations.
	mu sync.Mutex
	// next is the pending fire event.
	next domain.FireEvent
	// reached holds fire instants that a recomputation replaced before the
	// loop could fire them.
	reached []time.Time
}

// New creates a scheduler. Call Run to start the timing loop.
func New(alarms AlarmSource, settings SettingsSource, trigger Trigger, opts ...Option) *Scheduler {
	s := &Scheduler{
		alarms:        alarms,
		settings:      settings,
		trigger:       trigger,
		now:           time.Now,
		retryInterval: DefaultRetryInterval,
		wake:          make(chan struct{}, 1),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Reschedule asks the timing loop to recompute immediately. It never blocks.
func (s *Scheduler) Reschedule() {
	select {
	case s.wake <- struct{}{}:
	default:
		// A wake-up is already pending.
	}
}

// Recompute rebuilds the pending event on the caller's goroutine, then wakes
// the timing loop to re-arm its timer. Next reflects the current alarms and
// settings as soon as it returns.
func (s *Scheduler) Recompute(ctx context.Context) {
	defer s.Reschedule()

	defer func() {
		if r := recover(); r != nil {
			logger.ErrorKV(ctx, "Recomputation failed, deferring to the timing loop", "error", fmt.Sprint(r))
		}
	}()

	s.advance(s.now(), false)
}

// Next returns the pending fire event; its zero value means nothing is scheduled.
func (s *Scheduler) Next() domain.FireEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.next.Clone()
}

// Run is the timing loop. It blocks until ctx is canceled, then stops
// playback so the sound never outlives the scheduler.
func (s *Scheduler) Run(ctx context.Context) error {
	ctx = logger.WithName(ctx, "scheduler")

	timer := time.NewTimer(time.Hour)
	timer.Stop()

	defer timer.Stop()
	defer s.shutdown(ctx)

	logger.Info(ctx, "Scheduler started")

	for {
		if wait, armed := s.evaluate(ctx); armed {
			timer.Reset(wait)
		}

		select {
		case <-ctx.Done():
			logger.Info(ctx, "Scheduler stopping")
			return nil
		case <-s.wake:
			logger.Debug(ctx, "Reschedule requested")
		case <-timer.C:
		}

		timer.Stop()
	}
}

// evaluate fires whatever is due at the pending instant and computes the next
// wake-up. armed is false when nothing is eligible and the loop should only
// wait for a reschedule.
func (s *Scheduler) evaluate(ctx context.Context) (wait time.Duration, armed bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.ErrorKV(ctx, "Evaluation failed, retrying",
				"error", fmt.Sprint(r),
				"retry_in", s.retryInterval.String())

			wait, armed = s.retryInterval, true
		}
	}()

	now := s.now()
	alarms, settings, due, next := s.advance(now, true)

	for _, at := range due {
		s.fire(ctx, at, domain.DueAt(alarms, settings, at))
	}

	if next.IsZero() {
		logger.DebugKV(ctx, "No eligible alarms", "is_global_on", settings.IsGlobalOn, "alarms", len(alarms))
		return 0, false
	}

	logger.DebugKV(ctx, "Next alarm scheduled", "at", next.At, "alarm_ids", next.AlarmIDs)

	// Wake up at the day boundary as well, so clock changes are picked up at least daily.
	deadline := next.At
	if midnight := nextMidnight(now); midnight.Before(deadline) {
		deadline = midnight
	}

	return deadline.Sub(now), true
}

// advance reads the sources and stores the next event computed from now.
// Fire instants reached by now are returned when take is set, otherwise they
// are kept for the timing loop.
func (s *Scheduler) advance(now time.Time, take bool) (
	alarms []domain.Alarm,
	settings domain.Settings,
	due []time.Time,
	next domain.FireEvent,
) {
	s.mu.Lock()
	defer s.mu.Unlock()

	alarms = s.alarms.GetAll()
	settings = s.settings.Get()

	due = s.reached
	if !s.next.IsZero() && !now.Before(s.next.At) {
		due = append(due, s.next.At)
	}

	next = domain.NextEvent(alarms, settings, now)
	s.next = next

	if !take {
		s.reached = due
		return alarms, settings, nil, next.Clone()
	}

	s.reached = nil

	return alarms, settings, due, next.Clone()
}

// fire triggers playback once per due alarm; the controller collapses repeats.
func (s *Scheduler) fire(ctx context.Context, at time.Time, due []string) {
	if len(due) == 0 {
		logger.DebugKV(ctx, "Pending alarm no longer eligible", "at", at)
		return
	}

	for _, id := range due {
		alarmCtx := logger.WithKV(ctx, "alarm_id", id)

		logger.InfoKV(alarmCtx, "Alarm due", "at", at)

		if err := s.trigger.Trigger(alarmCtx); err != nil {
			logger.ErrorKV(alarmCtx, "Trigger failed", "error", err)
		}
	}
}

// shutdown stops playback with a context that outlives the canceled loop.
func (s *Scheduler) shutdown(ctx context.Context) {
	if err := s.trigger.Stop(context.WithoutCancel(ctx)); err != nil {
		logger.ErrorKV(ctx, "Failed to stop playback on shutdown", "error", err)
	}

	s.mu.Lock()
	s.next = domain.FireEvent{}
	s.reached = nil
	s.mu.Unlock()

	logger.Info(ctx, "Scheduler stopped")
}

// nextMidnight returns the start of the day after now, in now's location.
func nextMidnight(now time.Time) time.Time {
	year, month, day := now.Date()

	return time.Date(year, month, day+1, 0, 0, 0, 0, now.Location())
}
