//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	api "github.com/oshokin/alarm-clock/internal/api/grpc/alarm"
	"github.com/oshokin/alarm-clock/internal/config"
	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// Client wraps the gRPC AlarmClockService with typed helpers.
type Client struct {
	// conn is the underlying gRPC connection to the alarm server.
	conn grpc.ClientConnInterface
	// closer releases conn; nil for borrowed connections.
	closer func() error

	// actor is attached to every call as request metadata.
	actor *domain.Actor
	// callTimeout is the default timeout for individual RPC calls.
	callTimeout time.Duration
}

// Option configures client behaviour.
type Option func(*Client)

// WithCallTimeout sets a default timeout for service calls.
func WithCallTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.callTimeout = timeout
		}
	}
}

// WithActor identifies the caller in the server's audit log.
func WithActor(actor *domain.Actor) Option {
	return func(c *Client) {
		c.actor = actor.Clone()
	}
}

// errAddressRequired is returned when a required address value is missing.
var errAddressRequired = errors.New("address must be provided")

// Dial establishes a gRPC connection to the alarm server.
// Note: this uses insecure transport credentials; deploy on a trusted network
// or terminate TLS in a proxy until native TLS is added.
func Dial(_ context.Context, address string, opts ...Option) (*Client, error) {
	if address == "" {
		return nil, errAddressRequired
	}

	// Use the non-context NewClient API recommended by grpc-go
	// (DialContext is deprecated as of grpc-go v1.60+).
	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dial alarm server: %w", err)
	}

	client := NewClient(conn, opts...)
	client.closer = conn.Close

	return client, nil
}

// NewClient wraps an existing connection. Close does not close it.
func NewClient(conn grpc.ClientConnInterface, opts ...Option) *Client {
	client := &Client{
		conn:        conn,
		callTimeout: config.DefaultTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	if c == nil || c.closer == nil {
		return nil
	}

	return c.closer()
}

// ListAlarms returns every alarm in insertion order.
func (c *Client) ListAlarms(ctx context.Context) ([]domain.Alarm, error) {
	response := new(structpb.ListValue)
	if err := c.invoke(ctx, api.ListAlarmsMethod, new(emptypb.Empty), response); err != nil {
		return nil, fmt.Errorf("list alarms: %w", err)
	}

	alarms, err := api.AlarmsFromList(response)
	if err != nil {
		return nil, fmt.Errorf("decode alarms: %w", err)
	}

	return alarms, nil
}

// SetAlarm creates or replaces an alarm.
func (c *Client) SetAlarm(ctx context.Context, alarm domain.Alarm) (domain.Alarm, error) {
	if err := alarm.Validate(); err != nil {
		return domain.Alarm{}, err
	}

	response := new(structpb.Struct)
	if err := c.invoke(ctx, api.SetAlarmMethod, api.AlarmToStruct(alarm), response); err != nil {
		return domain.Alarm{}, fmt.Errorf("set alarm: %w", err)
	}

	saved, err := api.AlarmFromStruct(response)
	if err != nil {
		return domain.Alarm{}, fmt.Errorf("decode alarm: %w", err)
	}

	return saved, nil
}

// RemoveAlarms deletes alarms by id.
func (c *Client) RemoveAlarms(ctx context.Context, ids []string) (api.RemoveReply, error) {
	response := new(structpb.Struct)
	if err := c.invoke(ctx, api.RemoveAlarmsMethod, api.IDsToStruct(ids), response); err != nil {
		return api.RemoveReply{}, fmt.Errorf("remove alarms: %w", err)
	}

	reply, err := api.RemoveReplyFromStruct(response)
	if err != nil {
		return api.RemoveReply{}, fmt.Errorf("decode remove reply: %w", err)
	}

	return reply, nil
}

// PlayAlarm starts the alarm sound and returns whether it is playing.
func (c *Client) PlayAlarm(ctx context.Context) (bool, error) {
	return c.getBool(ctx, api.PlayAlarmMethod, "play alarm")
}

// StopAlarm stops the alarm sound and returns whether it is playing.
func (c *Client) StopAlarm(ctx context.Context) (bool, error) {
	return c.getBool(ctx, api.StopAlarmMethod, "stop alarm")
}

// IsPlaying reports whether the alarm sound is playing.
func (c *Client) IsPlaying(ctx context.Context) (bool, error) {
	return c.getBool(ctx, api.GetPlaybackStateMethod, "get playback state")
}

// IsPrimarySchedule reports the selected schedule group.
func (c *Client) IsPrimarySchedule(ctx context.Context) (bool, error) {
	return c.getBool(ctx, api.GetScheduleMethod, "get schedule")
}

// SetPrimarySchedule selects the schedule group.
func (c *Client) SetPrimarySchedule(ctx context.Context, isPrimary bool) (bool, error) {
	return c.setBool(ctx, api.SetScheduleMethod, isPrimary, "set schedule")
}

// IsGlobalOn reports the master switch.
func (c *Client) IsGlobalOn(ctx context.Context) (bool, error) {
	return c.getBool(ctx, api.GetGlobalStatusMethod, "get global status")
}

// SetGlobalOn flips the master switch.
func (c *Client) SetGlobalOn(ctx context.Context, isGlobalOn bool) (bool, error) {
	return c.setBool(ctx, api.SetGlobalStatusMethod, isGlobalOn, "set global status")
}

// NextFire returns the alarm the server is waiting for.
func (c *Client) NextFire(ctx context.Context) (domain.FireEvent, error) {
	response := new(structpb.Struct)
	if err := c.invoke(ctx, api.GetNextFireMethod, new(emptypb.Empty), response); err != nil {
		return domain.FireEvent{}, fmt.Errorf("get next fire: %w", err)
	}

	event, err := api.FireEventFromStruct(response)
	if err != nil {
		return domain.FireEvent{}, fmt.Errorf("decode next fire: %w", err)
	}

	return event, nil
}

func (c *Client) getBool(ctx context.Context, method, operation string) (bool, error) {
	response := new(wrapperspb.BoolValue)
	if err := c.invoke(ctx, method, new(emptypb.Empty), response); err != nil {
		return false, fmt.Errorf("%s: %w", operation, err)
	}

	return response.GetValue(), nil
}

func (c *Client) setBool(ctx context.Context, method string, value bool, operation string) (bool, error) {
	response := new(wrapperspb.BoolValue)
	if err := c.invoke(ctx, method, wrapperspb.Bool(value), response); err != nil {
		return false, fmt.Errorf("%s: %w", operation, err)
	}

	return response.GetValue(), nil
}

// invoke performs a unary call with the call timeout and actor metadata applied.
func (c *Client) invoke(ctx context.Context, method string, request, response any) error {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	return c.conn.Invoke(api.AppendActor(callCtx, c.actor), method, request, response)
}

// callContext returns a context with the client's call timeout if configured,
// otherwise a cancellable child context without a deadline.
func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, c.callTimeout)
}
