package alarm

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "alarmclock.v1.AlarmClockService"

// Full method names, as used by clients with grpc.ClientConn.Invoke.
const (
	ListAlarmsMethod       = "/" + ServiceName + "/ListAlarms"
	SetAlarmMethod         = "/" + ServiceName + "/SetAlarm"
	RemoveAlarmsMethod     = "/" + ServiceName + "/RemoveAlarms"
	PlayAlarmMethod        = "/" + ServiceName + "/PlayAlarm"
	StopAlarmMethod        = "/" + ServiceName + "/StopAlarm"
	GetPlaybackStateMethod = "/" + ServiceName + "/GetPlaybackState"
	GetScheduleMethod      = "/" + ServiceName + "/GetSchedule"
	SetScheduleMethod      = "/" + ServiceName + "/SetSchedule"
	GetGlobalStatusMethod  = "/" + ServiceName + "/GetGlobalStatus"
	SetGlobalStatusMethod  = "/" + ServiceName + "/SetGlobalStatus"
	GetNextFireMethod      = "/" + ServiceName + "/GetNextFire"
)

// AlarmClockServer is the server API for the alarm clock service.
type AlarmClockServer interface {
	ListAlarms(ctx context.Context, req *emptypb.Empty) (*structpb.ListValue, error)
	SetAlarm(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	RemoveAlarms(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	PlayAlarm(ctx context.Context, req *emptypb.Empty) (*wrapperspb.BoolValue, error)
	StopAlarm(ctx context.Context, req *emptypb.Empty) (*wrapperspb.BoolValue, error)
	GetPlaybackState(ctx context.Context, req *emptypb.Empty) (*wrapperspb.BoolValue, error)
	GetSchedule(ctx context.Context, req *emptypb.Empty) (*wrapperspb.BoolValue, error)
	SetSchedule(ctx context.Context, req *wrapperspb.BoolValue) (*wrapperspb.BoolValue, error)
	GetGlobalStatus(ctx context.Context, req *emptypb.Empty) (*wrapperspb.BoolValue, error)
	SetGlobalStatus(ctx context.Context, req *wrapperspb.BoolValue) (*wrapperspb.BoolValue, error)
	GetNextFire(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
}

// ServiceDesc describes the alarm clock service for grpc.Server.RegisterService.
//
//nolint:gochecknoglobals // Mirrors generated gRPC service descriptors.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AlarmClockServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListAlarms", Handler: unaryHandler(ListAlarmsMethod, AlarmClockServer.ListAlarms)},
		{MethodName: "SetAlarm", Handler: unaryHandler(SetAlarmMethod, AlarmClockServer.SetAlarm)},
		{MethodName: "RemoveAlarms", Handler: unaryHandler(RemoveAlarmsMethod, AlarmClockServer.RemoveAlarms)},
		{MethodName: "PlayAlarm", Handler: unaryHandler(PlayAlarmMethod, AlarmClockServer.PlayAlarm)},
		{MethodName: "StopAlarm", Handler: unaryHandler(StopAlarmMethod, AlarmClockServer.StopAlarm)},
		{MethodName: "GetPlaybackState", Handler: unaryHandler(GetPlaybackStateMethod, AlarmClockServer.GetPlaybackState)},
		{MethodName: "GetSchedule", Handler: unaryHandler(GetScheduleMethod, AlarmClockServer.GetSchedule)},
		{MethodName: "SetSchedule", Handler: unaryHandler(SetScheduleMethod, AlarmClockServer.SetSchedule)},
		{MethodName: "GetGlobalStatus", Handler: unaryHandler(GetGlobalStatusMethod, AlarmClockServer.GetGlobalStatus)},
		{MethodName: "SetGlobalStatus", Handler: unaryHandler(SetGlobalStatusMethod, AlarmClockServer.SetGlobalStatus)},
		{MethodName: "GetNextFire", Handler: unaryHandler(GetNextFireMethod, AlarmClockServer.GetNextFire)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "alarmclock/v1/alarm_clock.proto",
}

// RegisterAlarmClockServer registers the implementation with a gRPC server.
func RegisterAlarmClockServer(registrar grpc.ServiceRegistrar, srv AlarmClockServer) {
	registrar.RegisterService(&ServiceDesc, srv)
}

// unaryHandler adapts a typed method to grpc.MethodHandler, decoding the
// request and running the interceptor chain the way generated code does.
func unaryHandler[Req any, Resp any](
	fullMethod string,
	call func(AlarmClockServer, context.Context, *Req) (Resp, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}

		server, _ := srv.(AlarmClockServer)

		if interceptor == nil {
			return call(server, ctx, in)
		}

		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}

		handler := func(ctx context.Context, req any) (any, error) {
			typed, _ := req.(*Req)
			return call(server, ctx, typed)
		}

		return interceptor(ctx, in, info, handler)
	}
}
