//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	api "github.com/oshokin/alarm-clock/internal/api/grpc/alarm"
	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/manager"
	"github.com/oshokin/alarm-clock/internal/playback"
	"github.com/oshokin/alarm-clock/internal/store"
)

// nopPlayer satisfies playback.Player without touching audio hardware.
type nopPlayer struct{}

func (nopPlayer) Play(context.Context) error { return nil }
func (nopPlayer) Stop(context.Context) error { return nil }

// staticScheduler never runs; it reports a fixed next event.
type staticScheduler struct{ next domain.FireEvent }

func (staticScheduler) Recompute(context.Context) {}

func (s staticScheduler) Next() domain.FireEvent { return s.next }

// startServer serves an in-memory manager over bufconn and returns a client for it.
func startServer(t *testing.T, next domain.FireEvent) *Client {
	t.Helper()

	alarms := store.NewAlarmStore(nil)
	settings := store.NewSettingsStore(domain.DefaultSettings(), nil)
	m := manager.New(alarms, settings, nil, playback.New(nopPlayer{}), staticScheduler{next: next})

	listener := bufconn.Listen(1 << 20)
	server := grpc.NewServer(grpc.UnaryInterceptor(api.UnaryLoggingInterceptor(context.Background())))
	api.RegisterAlarmClockServer(server, api.NewServer(m))

	go func() {
		_ = server.Serve(listener)
	}()

	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)

	t.Cleanup(func() { _ = conn.Close() })

	return NewClient(conn,
		WithCallTimeout(3*time.Second),
		WithActor(&domain.Actor{Hostname: "test-hostname", Username: "test-user"}))
}

// TestDial_ValidatesAddress verifies that Dial rejects empty addresses.
func TestDial_ValidatesAddress(t *testing.T) {
	t.Parallel()

	c, err := Dial(context.Background(), "")
	require.Error(t, err)
	require.Nil(t, c)
}

// TestClient_callContext checks timeout vs cancel-only behavior of callContext.
func TestClient_callContext(t *testing.T) {
	t.Parallel()

	c := &Client{
		callTimeout: 0,
	}

	ctx, cancel := c.callContext(context.Background())
	cancel()

	require.NotNil(t, ctx)

	c.callTimeout = 10 * time.Millisecond

	ctx, cancel = c.callContext(context.Background())
	defer cancel()

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	require.WithinDuration(t, time.Now().Add(10*time.Millisecond), deadline, 30*time.Millisecond)
}

// TestClient_Roundtrip drives every client method against a real manager.
func TestClient_Roundtrip(t *testing.T) {
	t.Parallel()

	next := domain.FireEvent{
		At:       time.Date(2024, time.January, 1, 7, 0, 0, 0, time.UTC),
		AlarmIDs: []string{"wake"},
	}
	c := startServer(t, next)
	ctx := context.Background()

	alarm := domain.Alarm{
		ID:                "wake",
		Hour:              7,
		Minute:            0,
		Days:              []time.Weekday{time.Monday, time.Tuesday},
		IsPrimarySchedule: true,
		Active:            true,
	}

	saved, err := c.SetAlarm(ctx, alarm)
	require.NoError(t, err)
	require.Equal(t, alarm, saved)

	alarms, err := c.ListAlarms(ctx)
	require.NoError(t, err)
	require.Equal(t, []domain.Alarm{alarm}, alarms)

	reply, err := c.RemoveAlarms(ctx, []string{"wake", "ghost"})
	require.NoError(t, err)
	require.False(t, reply.Success)
	require.Equal(t, []string{"ghost"}, reply.NotFound)

	alarms, err = c.ListAlarms(ctx)
	require.NoError(t, err)
	require.Empty(t, alarms)

	isPrimary, err := c.SetPrimarySchedule(ctx, false)
	require.NoError(t, err)
	require.False(t, isPrimary)

	isPrimary, err = c.IsPrimarySchedule(ctx)
	require.NoError(t, err)
	require.False(t, isPrimary)

	isGlobalOn, err := c.SetGlobalOn(ctx, false)
	require.NoError(t, err)
	require.False(t, isGlobalOn)

	isGlobalOn, err = c.IsGlobalOn(ctx)
	require.NoError(t, err)
	require.False(t, isGlobalOn)

	playing, err := c.PlayAlarm(ctx)
	require.NoError(t, err)
	require.True(t, playing)

	playing, err = c.IsPlaying(ctx)
	require.NoError(t, err)
	require.True(t, playing)

	playing, err = c.StopAlarm(ctx)
	require.NoError(t, err)
	require.False(t, playing)

	event, err := c.NextFire(ctx)
	require.NoError(t, err)
	require.True(t, next.At.Equal(event.At))
	require.Equal(t, next.AlarmIDs, event.AlarmIDs)

	require.NoError(t, c.Close())
}

// TestClient_SetAlarmValidation rejects invalid alarms before calling the server.
func TestClient_SetAlarmValidation(t *testing.T) {
	t.Parallel()

	c := startServer(t, domain.FireEvent{})

	_, err := c.SetAlarm(context.Background(), domain.Alarm{ID: "a", Hour: 24})
	require.ErrorIs(t, err, domain.ErrValidation)

	var validation *domain.ValidationError
	require.ErrorAs(t, err, &validation)
	require.Equal(t, "hour", validation.Field)
}

// TestClient_ServerRejectsIncompletePayload maps missing fields to InvalidArgument.
func TestClient_ServerRejectsIncompletePayload(t *testing.T) {
	t.Parallel()

	c := startServer(t, domain.FireEvent{})

	payload := api.AlarmToStruct(domain.Alarm{ID: "a", Hour: 6})
	delete(payload.Fields, "days")

	err := c.invoke(context.Background(), api.SetAlarmMethod, payload, api.AlarmToStruct(domain.Alarm{}))
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}
