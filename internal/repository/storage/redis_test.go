package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// newTestRedis starts an in-process Redis and returns a repository on top of it.
func newTestRedis(t *testing.T) (*miniredis.Miniredis, *RedisRepository) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})

	t.Cleanup(func() {
		_ = client.Close()
	})

	return server, NewRedisRepository(client, "test:")
}

// TestRedisRepository_NotFound verifies loads return ErrNotFound for missing keys.
func TestRedisRepository_NotFound(t *testing.T) {
	t.Parallel()

	_, repo := newTestRedis(t)
	require.NoError(t, repo.Ping(context.Background()))

	_, err := repo.LoadAlarms(context.Background())
	require.ErrorIs(t, err, ErrNotFound)

	_, err = repo.LoadSettings(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
}

// TestRedisRepository_SaveLoad_Roundtrip ensures values survive a write and read under the prefix.
func TestRedisRepository_SaveLoad_Roundtrip(t *testing.T) {
	t.Parallel()

	server, repo := newTestRedis(t)
	ctx := context.Background()

	want := sampleAlarms()
	require.NoError(t, repo.SaveAlarms(ctx, want))

	got, err := repo.LoadAlarms(ctx)
	require.NoError(t, err)
	require.Equal(t, want, got)

	settings := domain.Settings{IsPrimarySchedule: true, IsGlobalOn: false}
	require.NoError(t, repo.SaveSettings(ctx, settings))

	loaded, err := repo.LoadSettings(ctx)
	require.NoError(t, err)
	require.Equal(t, settings, loaded)

	require.True(t, server.Exists("test:alarms"))
	require.True(t, server.Exists("test:settings"))
}

// TestRedisRepository_RejectsDuplicateIDs refuses a stored list with a repeated id.
func TestRedisRepository_RejectsDuplicateIDs(t *testing.T) {
	t.Parallel()

	server, repo := newTestRedis(t)
	require.NoError(t, server.Set("test:alarms", `[{"id":"a","hour":7},{"id":"a","hour":8}]`))

	_, err := repo.LoadAlarms(context.Background())
	require.ErrorIs(t, err, domain.ErrPersistence)
	require.ErrorIs(t, err, domain.ErrValidation)
}

// TestRedisRepository_Unavailable maps connection failures to persistence errors.
func TestRedisRepository_Unavailable(t *testing.T) {
	t.Parallel()

	server, repo := newTestRedis(t)
	server.Close()

	ctx := context.Background()

	require.ErrorIs(t, repo.Ping(ctx), domain.ErrPersistence)
	require.ErrorIs(t, repo.SaveAlarms(ctx, sampleAlarms()), domain.ErrPersistence)

	_, err := repo.LoadSettings(ctx)
	require.ErrorIs(t, err, domain.ErrPersistence)
}
