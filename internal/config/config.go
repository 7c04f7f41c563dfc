package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/alarm-clock/internal/logger"
)

// Config holds the settings shared by the alarm clock binaries.
type Config struct {
	// ServerAddress is the gRPC address clients dial; the server binds its port.
	ServerAddress string `yaml:"server_addr"`
	// Timeout is the duration for client RPC calls.
	Timeout time.Duration `yaml:"timeout"`
	// Location is the IANA name of the wall clock alarms are evaluated in.
	Location string `yaml:"location"`
	// LogLevel is the minimum level of emitted log entries.
	LogLevel string `yaml:"log_level"`
	// Storage selects and configures the persistence backend.
	Storage Storage `yaml:"storage"`
	// Sound configures alarm playback.
	Sound Sound `yaml:"sound"`
}

// Storage configures where alarms and settings are persisted.
type Storage struct {
	// Backend is either BackendFile or BackendRedis.
	Backend string `yaml:"backend"`
	// AlarmsFile is the YAML file holding alarm definitions.
	AlarmsFile string `yaml:"alarms_file"`
	// SettingsFile is the YAML file holding the global flags.
	SettingsFile string `yaml:"settings_file"`
	// RedisAddress is the host:port of the Redis server.
	RedisAddress string `yaml:"redis_addr"`
	// RedisPassword authenticates against Redis when set.
	RedisPassword string `yaml:"redis_password"`
	// RedisDB is the logical Redis database number.
	RedisDB int `yaml:"redis_db"`
	// RedisKeyPrefix namespaces every key written to Redis.
	RedisKeyPrefix string `yaml:"redis_key_prefix"`
}

// Sound configures the alarm sound.
type Sound struct {
	// Enabled switches the audio device on; when false playback is only logged.
	Enabled bool `yaml:"enabled"`
	// File is an optional WAV file; a generated beep is used when empty.
	File string `yaml:"file"`
	// MaxDuration stops playback automatically; zero plays until stopped.
	MaxDuration time.Duration `yaml:"max_duration"`
}

const (
	// DefaultConfigFilename is the default filename for connection settings.
	DefaultConfigFilename = "alarm-clock-settings.yaml"

	// DefaultAlarmsFilename is the default filename for persisted alarms.
	DefaultAlarmsFilename = "alarm-clock-alarms.yaml"

	// DefaultSettingsFilename is the default filename for persisted global flags.
	DefaultSettingsFilename = "alarm-clock-state.yaml"

	// DefaultTimeout is the default duration for network operations.
	DefaultTimeout = 5 * time.Second

	// DefaultLocation evaluates alarms on the host's local clock.
	DefaultLocation = "Local"

	// DefaultRedisKeyPrefix namespaces Redis keys.
	DefaultRedisKeyPrefix = "alarm-clock:"

	// DefaultFilePermissions is the default file permission for config and data files.
	DefaultFilePermissions = 0o600

	// BackendFile persists to YAML files.
	BackendFile = "file"

	// BackendRedis persists to Redis.
	BackendRedis = "redis"
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errServerSocketRequired is returned when server address is missing.
	errServerSocketRequired = errors.New("server address must be provided")
	// errUnknownBackend is returned for an unsupported storage backend.
	errUnknownBackend = errors.New("unknown storage backend")
	// errRedisAddressRequired is returned when the redis backend has no address.
	errRedisAddressRequired = errors.New("redis address must be provided")
	// errNegativeDuration is returned when a duration setting is below zero.
	errNegativeDuration = errors.New("duration must not be negative")
)

// Load reads configuration from the provided path and validates essential fields.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(contents, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Default returns a configuration with every optional field filled in.
// Sound is enabled unless the file says otherwise.
func Default() *Config {
	return &Config{
		Timeout:  DefaultTimeout,
		Location: DefaultLocation,
		LogLevel: "info",
		Storage: Storage{
			Backend:        BackendFile,
			AlarmsFile:     DefaultAlarmsFilename,
			SettingsFile:   DefaultSettingsFilename,
			RedisKeyPrefix: DefaultRedisKeyPrefix,
		},
		Sound: Sound{
			Enabled: true,
		},
	}
}

// Validate checks the provided settings for required fields and formatting.
//
//nolint:cyclop // Flat list of independent checks.
func Validate(settings *Config) error {
	if settings == nil {
		return errConfigIsNotSet
	}

	if settings.ServerAddress == "" {
		return errServerSocketRequired
	}

	if _, err := net.ResolveTCPAddr("tcp", settings.ServerAddress); err != nil {
		return fmt.Errorf("invalid server socket: %w", err)
	}

	// Set default timeout if not specified.
	if settings.Timeout <= 0 {
		settings.Timeout = DefaultTimeout
	}

	if settings.Location == "" {
		settings.Location = DefaultLocation
	}

	if _, err := settings.LoadLocation(); err != nil {
		return err
	}

	if _, ok := logger.ParseLogLevel(settings.LogLevel); !ok {
		return fmt.Errorf("invalid log level %q", settings.LogLevel)
	}

	if settings.Sound.MaxDuration < 0 {
		return fmt.Errorf("sound max_duration: %w", errNegativeDuration)
	}

	return validateStorage(&settings.Storage)
}

// LoadLocation resolves the configured wall clock location.
func (c *Config) LoadLocation() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Location)
	if err != nil {
		return nil, fmt.Errorf("invalid location %q: %w", c.Location, err)
	}

	return loc, nil
}

// validateStorage fills storage defaults and checks backend-specific fields.
func validateStorage(storage *Storage) error {
	if storage.Backend == "" {
		storage.Backend = BackendFile
	}

	switch storage.Backend {
	case BackendFile:
		if storage.AlarmsFile == "" {
			storage.AlarmsFile = DefaultAlarmsFilename
		}

		if storage.SettingsFile == "" {
			storage.SettingsFile = DefaultSettingsFilename
		}
	case BackendRedis:
		if storage.RedisAddress == "" {
			return errRedisAddressRequired
		}

		if storage.RedisKeyPrefix == "" {
			storage.RedisKeyPrefix = DefaultRedisKeyPrefix
		}
	default:
		return fmt.Errorf("%w: %q", errUnknownBackend, storage.Backend)
	}

	return nil
}
