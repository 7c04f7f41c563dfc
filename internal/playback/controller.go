package playback

import (
	"context"
	"fmt"
	"sync"
	"time"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
)

// State is the playback state of the alarm sound.
type State int

const (
	// Idle means no alarm sound is playing.
	Idle State = iota
	// Playing means the alarm sound was started and not yet stopped.
	Playing
)

// String implements fmt.Stringer.
func (s State) String() string {
	if s == Playing {
		return "playing"
	}

	return "idle"
}

// Player is the audio primitive driven by the controller.
type Player interface {
	Play(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Option configures a Controller.
type Option func(*Controller)

// WithMaxDuration stops playback automatically after the given duration.
// Zero or negative durations disable the timeout.
func WithMaxDuration(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.maxDuration = d
		}
	}
}

// Controller owns the process-wide playback state.
// The state reflects the requested transition even when the player fails.
type Controller struct {
	// player is the audio primitive.
	player Player
	// maxDuration is the auto-stop timeout, zero when disabled.
	maxDuration time.Duration
	// state is the current playback state.
	state State
	// session increments on every Idle->Playing transition; it lets an
	// expired timer recognise that it belongs to an earlier session.
	session uint64
	// timer is the pending auto-stop, if any.
	timer *time.Timer
	// mu serializes every transition.
	mu sync.Mutex
}

// New creates an idle controller around the player.
func New(player Player, opts ...Option) *Controller {
	c := &Controller{
		player: player,
		state:  Idle,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Trigger moves Idle to Playing and starts the player. Triggering while
// already playing does nothing, so simultaneous alarms collapse into one sound.
func (c *Controller) Trigger(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == Playing {
		logger.Debug(ctx, "Alarm already playing, trigger ignored")
		return nil
	}

	c.state = Playing
	c.session++
	c.armTimeout(c.session)

	logger.InfoKV(ctx, "Alarm playback started", "session", c.session)

	if err := c.player.Play(ctx); err != nil {
		logger.ErrorKV(ctx, "Audio player failed to start", "error", err)

		return fmt.Errorf("%w: play: %w", domain.ErrPlayback, err)
	}

	return nil
}

// Stop moves Playing to Idle and stops the player. Stopping while idle does nothing.
func (c *Controller) Stop(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.stopLocked(ctx)
}

// ManualPlay is a user-initiated Trigger.
func (c *Controller) ManualPlay(ctx context.Context) error {
	return c.Trigger(logger.WithKV(ctx, "source", "manual"))
}

// ManualStop is a user-initiated Stop.
func (c *Controller) ManualStop(ctx context.Context) error {
	return c.Stop(logger.WithKV(ctx, "source", "manual"))
}

// State returns the current playback state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// IsPlaying reports whether the state is Playing.
func (c *Controller) IsPlaying() bool {
	return c.State() == Playing
}

func (c *Controller) stopLocked(ctx context.Context) error {
	if c.state == Idle {
		return nil
	}

	c.state = Idle

	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}

	logger.InfoKV(ctx, "Alarm playback stopped", "session", c.session)

	if err := c.player.Stop(ctx); err != nil {
		logger.ErrorKV(ctx, "Audio player failed to stop", "error", err)

		return fmt.Errorf("%w: stop: %w", domain.ErrPlayback, err)
	}

	return nil
}

// armTimeout schedules the auto-stop for the given session.
func (c *Controller) armTimeout(session uint64) {
	if c.maxDuration <= 0 {
		return
	}

	ctx := logger.WithName(context.Background(), "playback-timeout")

	c.timer = time.AfterFunc(c.maxDuration, func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		if c.session != session || c.state != Playing {
			return
		}

		logger.InfoKV(ctx, "Maximum playback duration reached", "max_duration", c.maxDuration.String())

		if err := c.stopLocked(ctx); err != nil {
			logger.ErrorKV(ctx, "Auto-stop failed", "error", err)
		}
	})
}
