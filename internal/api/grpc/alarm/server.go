package alarm

import (
	"context"

	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
	"github.com/oshokin/alarm-clock/internal/manager"
)

// Service abstracts the business operations the transport layer depends on.
type Service interface {
	GetAlarms(ctx context.Context) []domain.Alarm
	SetAlarm(ctx context.Context, alarm domain.Alarm) error
	RemoveAlarms(ctx context.Context, ids []string) (manager.RemoveResult, error)
	IsPrimarySchedule(ctx context.Context) bool
	SetPrimarySchedule(ctx context.Context, isPrimary bool) error
	IsGlobalOn(ctx context.Context) bool
	SetGlobalOn(ctx context.Context, isGlobalOn bool) error
	Play(ctx context.Context) error
	Stop(ctx context.Context) error
	IsPlaying(ctx context.Context) bool
	NextFire(ctx context.Context) domain.FireEvent
}

// Server implements AlarmClockServer on top of a Service.
type Server struct {
	// service provides the business logic for alarm operations.
	service Service
}

var _ AlarmClockServer = (*Server)(nil)

// NewServer wires the provided service implementation into a gRPC handler.
func NewServer(service Service) *Server {
	return &Server{
		service: service,
	}
}

// ListAlarms returns every alarm in insertion order.
func (s *Server) ListAlarms(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	return AlarmsToList(s.service.GetAlarms(ctx)), nil
}

// SetAlarm validates the payload and upserts the alarm.
func (s *Server) SetAlarm(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	alarm, err := AlarmFromStruct(req)
	if err != nil {
		return nil, toStatus(ctx, err)
	}

	if err := s.service.SetAlarm(ctx, alarm); err != nil {
		return nil, toStatus(ctx, err)
	}

	return AlarmToStruct(alarm), nil
}

// RemoveAlarms deletes alarms by id and reports which were missing.
func (s *Server) RemoveAlarms(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	ids, err := IDsFromStruct(req)
	if err != nil {
		return nil, toStatus(ctx, err)
	}

	result, err := s.service.RemoveAlarms(ctx, ids)
	if err != nil {
		return nil, toStatus(ctx, err)
	}

	return RemoveReplyToStruct(result.NotFound), nil
}

// PlayAlarm starts the alarm sound and returns the playing state.
func (s *Server) PlayAlarm(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.BoolValue, error) {
	if err := s.service.Play(ctx); err != nil {
		return nil, toStatus(ctx, err)
	}

	return wrapperspb.Bool(s.service.IsPlaying(ctx)), nil
}

// StopAlarm stops the alarm sound and returns the playing state.
func (s *Server) StopAlarm(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.BoolValue, error) {
	if err := s.service.Stop(ctx); err != nil {
		return nil, toStatus(ctx, err)
	}

	return wrapperspb.Bool(s.service.IsPlaying(ctx)), nil
}

// GetPlaybackState reports whether the alarm sound is playing.
func (s *Server) GetPlaybackState(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.BoolValue, error) {
	return wrapperspb.Bool(s.service.IsPlaying(ctx)), nil
}

// GetSchedule reports whether the primary schedule is selected.
func (s *Server) GetSchedule(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.BoolValue, error) {
	return wrapperspb.Bool(s.service.IsPrimarySchedule(ctx)), nil
}

// SetSchedule selects the primary or alternate schedule.
func (s *Server) SetSchedule(ctx context.Context, req *wrapperspb.BoolValue) (*wrapperspb.BoolValue, error) {
	if err := s.service.SetPrimarySchedule(ctx, req.GetValue()); err != nil {
		return nil, toStatus(ctx, err)
	}

	logger.InfoKV(ctx, "Schedule changed", "is_primary_schedule", req.GetValue())

	return wrapperspb.Bool(s.service.IsPrimarySchedule(ctx)), nil
}

// GetGlobalStatus reports the master switch.
func (s *Server) GetGlobalStatus(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.BoolValue, error) {
	return wrapperspb.Bool(s.service.IsGlobalOn(ctx)), nil
}

// SetGlobalStatus flips the master switch.
func (s *Server) SetGlobalStatus(ctx context.Context, req *wrapperspb.BoolValue) (*wrapperspb.BoolValue, error) {
	if err := s.service.SetGlobalOn(ctx, req.GetValue()); err != nil {
		return nil, toStatus(ctx, err)
	}

	logger.InfoKV(ctx, "Global status changed", "is_global_on", req.GetValue())

	return wrapperspb.Bool(s.service.IsGlobalOn(ctx)), nil
}

// GetNextFire reports the alarm the scheduler is waiting for.
func (s *Server) GetNextFire(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return FireEventToStruct(s.service.NextFire(ctx)), nil
}
