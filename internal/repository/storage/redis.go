package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
)

const (
	alarmsKey   = "alarms"
	settingsKey = "settings"
)

// RedisRepository persists alarms and settings as JSON values in Redis.
// A single SET replaces the whole value, which keeps writes atomic.
type RedisRepository struct {
	client *redis.Client
	prefix string
}

// NewRedisRepository creates a repository on top of an existing client.
func NewRedisRepository(client *redis.Client, prefix string) *RedisRepository {
	return &RedisRepository{
		client: client,
		prefix: prefix,
	}
}

// Ping checks that the Redis server is reachable.
func (r *RedisRepository) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: ping redis: %w", domain.ErrPersistence, err)
	}

	return nil
}

// LoadAlarms reads the alarm list.
func (r *RedisRepository) LoadAlarms(ctx context.Context) ([]domain.Alarm, error) {
	var records []alarmRecord
	if err := r.get(ctx, alarmsKey, &records); err != nil {
		return nil, err
	}

	alarms, err := fromRecords(records)
	if err != nil {
		return nil, fmt.Errorf("%w: decode alarms: %w", domain.ErrPersistence, err)
	}

	return alarms, nil
}

// SaveAlarms replaces the alarm list.
func (r *RedisRepository) SaveAlarms(ctx context.Context, alarms []domain.Alarm) error {
	return r.set(ctx, alarmsKey, toRecords(alarms))
}

// LoadSettings reads the global flags.
func (r *RedisRepository) LoadSettings(ctx context.Context) (domain.Settings, error) {
	var record settingsRecord
	if err := r.get(ctx, settingsKey, &record); err != nil {
		return domain.Settings{}, err
	}

	return fromSettingsRecord(record), nil
}

// SaveSettings replaces the global flags.
func (r *RedisRepository) SaveSettings(ctx context.Context, settings domain.Settings) error {
	return r.set(ctx, settingsKey, toSettingsRecord(settings))
}

func (r *RedisRepository) get(ctx context.Context, key string, out any) error {
	data, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}

		return fmt.Errorf("%w: get %s: %w", domain.ErrPersistence, r.prefix+key, err)
	}

	if err = json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decode %s: %w", domain.ErrPersistence, r.prefix+key, err)
	}

	return nil
}

func (r *RedisRepository) set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", domain.ErrPersistence, r.prefix+key, err)
	}

	if err = r.client.Set(ctx, r.prefix+key, data, 0).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %w", domain.ErrPersistence, r.prefix+key, err)
	}

	return nil
}
