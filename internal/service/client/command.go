package client

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/logger"
	"github.com/oshokin/alarm-clock/internal/service/common"
)

// Options configures how the control client reaches the server.
type Options struct {
	// ConfigPath to YAML settings file, defaults to standard filename if empty.
	ConfigPath string

	// ServerAddress overrides server address from config when specified.
	ServerAddress string

	// Retry repeats the action while the server is unreachable.
	Retry bool

	// Out receives the action's output; stdout when nil.
	Out io.Writer
}

// Action is one control operation against a connected client.
type Action func(ctx context.Context, client *common.Client, out io.Writer) error

// defaultRetryInterval defines retry delay while the server is unreachable.
const defaultRetryInterval = 1 * time.Second

// Run connects to the server and performs the action.
func Run(ctx context.Context, opts *Options, action Action) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "alarm-clock-ctl")

	// Load settings from configuration file.
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	if err := logger.Configure(cfg.LogLevel); err != nil {
		return err
	}

	// Use server address from options if provided, otherwise use config.
	serverAddress := cfg.ServerAddress
	if opts.ServerAddress != "" {
		serverAddress = opts.ServerAddress
	}

	// Identify current user and hostname for audit logging.
	actor, err := common.DetectActor()
	if err != nil {
		return err
	}

	// Connect to alarm server with timeout from config.
	client, err := common.Dial(ctx, serverAddress,
		common.WithCallTimeout(cfg.Timeout),
		common.WithActor(actor))
	if err != nil {
		return err
	}

	// Close connection on function exit.
	defer func() {
		_ = client.Close()
	}()

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	logger.DebugKV(ctx, "Connected", "server_address", serverAddress, "actor", actor.String())

	if !opts.Retry {
		return action(ctx, client, out)
	}

	return retry(ctx, defaultRetryInterval, func() error {
		return action(ctx, client, out)
	})
}

// retry runs attempt until it succeeds, fails permanently or ctx is canceled.
// Only an unreachable server is retried.
func retry(ctx context.Context, interval time.Duration, attempt func() error) error {
	// Attempt immediately before starting retry loop.
	err := attempt()
	if !isTransient(err) {
		return err
	}

	// Setup retry timer for subsequent attempts.
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Retry loop until success or cancellation.
	for {
		logger.WarnKV(ctx, "Server unavailable, retrying", "error", err, "retry_in", interval.String())

		select {
		case <-ctx.Done():
			return errors.Join(ctx.Err(), err)
		case <-ticker.C:
			err = attempt()
			if !isTransient(err) {
				return err
			}
		}
	}
}

// isTransient reports whether err means the server could not be reached in time.
func isTransient(err error) bool {
	if err == nil {
		return false
	}

	switch status.Code(err) {
	case codes.Unavailable, codes.DeadlineExceeded:
		return true
	default:
		return false
	}
}
