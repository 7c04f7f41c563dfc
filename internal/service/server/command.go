package server

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/go-redis/redis/v8"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	api "github.com/oshokin/alarm-clock/internal/api/grpc/alarm"
	"github.com/oshokin/alarm-clock/internal/audio"
	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/logger"
	"github.com/oshokin/alarm-clock/internal/playback"
	repository "github.com/oshokin/alarm-clock/internal/repository/storage"
	"github.com/oshokin/alarm-clock/internal/version"
)

// Options controls the alarm-clock-server process and configuration.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// ListenAddress provides an optional listen address override for the gRPC server.
	ListenAddress string
	// LogLevel overrides the configured log level when set.
	LogLevel string
}

// ErrNoServerAddress indicates missing server configuration.
var ErrNoServerAddress = errors.New("no server address configured")

// Run starts the timing loop and the gRPC server and blocks until context is
// canceled or one of them fails.
// Loads configuration first, then determines listen address from config or override.
//
//nolint:funlen // Sequential wiring of the process.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "alarm-clock-server")

	// Load configuration first to get server settings.
	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	logLevel := settings.LogLevel
	if opts.LogLevel != "" {
		logLevel = opts.LogLevel
	}

	if err := logger.Configure(logLevel); err != nil {
		return err
	}

	location, err := settings.LoadLocation()
	if err != nil {
		return err
	}

	// Determine listen address: CLI argument overrides config port extraction.
	listenAddress, err := resolveListenAddress(settings.ServerAddress, opts.ListenAddress)
	if err != nil {
		return fmt.Errorf("resolve listen address: %w", err)
	}

	// Initialize the persistence backend for alarms and settings.
	repo, closeRepo, err := openRepository(ctx, &settings.Storage)
	if err != nil {
		return err
	}

	defer closeRepo()

	player, err := openPlayer(ctx, &settings.Sound)
	if err != nil {
		return err
	}

	if err = prepareOutput(ctx, player); err != nil {
		return err
	}

	svc, err := newService(ctx, repo, player, serviceOptions{
		location:    location,
		maxDuration: settings.Sound.MaxDuration,
	})
	if err != nil {
		return fmt.Errorf("initialise service: %w", err)
	}

	// Setup TCP listener for gRPC server.
	lc := net.ListenConfig{}

	lis, err := lc.Listen(ctx, "tcp", listenAddress)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", listenAddress, err)
	}

	// Create and configure gRPC server with alarm service.
	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(api.UnaryLoggingInterceptor(ctx)))
	api.RegisterAlarmClockServer(grpcServer, api.NewServer(svc.manager))

	logger.InfoKV(ctx, "Alarm clock server listening",
		"listen_address", listenAddress,
		"location", location.String(),
		"storage", settings.Storage.Backend,
		"version", version.Short())

	group, groupCtx := errgroup.WithContext(ctx)
	schedulerDone := make(chan struct{})

	group.Go(func() error {
		defer close(schedulerDone)

		return svc.scheduler.Run(groupCtx)
	})

	group.Go(func() error {
		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("serve gRPC: %w", err)
		}

		return nil
	})

	// The timing loop stops playback first, then the transport drains.
	group.Go(func() error {
		<-groupCtx.Done()
		<-schedulerDone

		logger.Info(ctx, "Shutting down gRPC server")
		grpcServer.GracefulStop()

		return nil
	})

	if err := group.Wait(); err != nil {
		return err
	}

	logger.Info(ctx, "Alarm clock server stopped")

	return nil
}

// openRepository builds the configured persistence backend and its cleanup.
func openRepository(ctx context.Context, storage *config.Storage) (repository.Repository, func(), error) {
	switch storage.Backend {
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     storage.RedisAddress,
			Password: storage.RedisPassword,
			DB:       storage.RedisDB,
		})

		closeClient := func() {
			if err := client.Close(); err != nil {
				logger.ErrorKV(ctx, "Failed to close redis client", "error", err)
			}
		}

		repo := repository.NewRedisRepository(client, storage.RedisKeyPrefix)
		if err := repo.Ping(ctx); err != nil {
			closeClient()
			return nil, nil, err
		}

		logger.InfoKV(ctx, "Using redis storage", "address", storage.RedisAddress, "db", storage.RedisDB)

		return repo, closeClient, nil
	default:
		logger.InfoKV(ctx, "Using file storage",
			"alarms_file", storage.AlarmsFile,
			"settings_file", storage.SettingsFile)

		return repository.NewFileRepository(storage.AlarmsFile, storage.SettingsFile), func() {}, nil
	}
}

// outputOpener is implemented by players that hold a device which is slow to
// become ready.
type outputOpener interface {
	Open(ctx context.Context) error
}

// prepareOutput opens the audio device up front so the first alarm does not
// wait on the hardware while playback is locked.
func prepareOutput(ctx context.Context, player playback.Player) error {
	opener, ok := player.(outputOpener)
	if !ok {
		return nil
	}

	if err := opener.Open(ctx); err != nil {
		return fmt.Errorf("open audio output: %w", err)
	}

	return nil
}

// openPlayer picks the audio output for the configured sound.
func openPlayer(ctx context.Context, sound *config.Sound) (playback.Player, error) {
	if !sound.Enabled {
		logger.Info(ctx, "Sound output disabled, alarms will only be logged")
		return audio.Silent{}, nil
	}

	if sound.File == "" {
		return audio.NewPlayer(audio.Beep(audio.DefaultSampleRate, audio.DefaultFrequency)), nil
	}

	clip, err := audio.LoadWAV(sound.File)
	if err != nil {
		return nil, err
	}

	logger.InfoKV(ctx, "Alarm sound loaded", "file", sound.File, "duration", clip.Duration().String())

	return audio.NewPlayer(clip), nil
}

// resolveListenAddress determines the listen address for the gRPC server.
// If override is provided, uses it directly. Otherwise extracts port from configAddr.
// Returns appropriate listen address (e.g., ":8080" for port-only binding).
func resolveListenAddress(configAddr, override string) (string, error) {
	// Use override address if provided (e.g., ":9090", "0.0.0.0:8080").
	if override != "" {
		return override, nil
	}

	// Extract port from config address (e.g., "server.example.com:8080" -> ":8080").
	if configAddr == "" {
		return "", ErrNoServerAddress
	}

	// Parse the address to extract port.
	_, port, err := net.SplitHostPort(configAddr)
	if err != nil {
		return "", fmt.Errorf("invalid server address format %q: %w", configAddr, err)
	}

	// Return port-only listen address to bind on all interfaces.
	return ":" + port, nil
}
