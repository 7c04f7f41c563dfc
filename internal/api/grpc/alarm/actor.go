package alarm

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
)

// Metadata keys carrying the calling actor.
const (
	HostnameMetadataKey = "x-actor-hostname"
	UsernameMetadataKey = "x-actor-username"
)

// AppendActor attaches the actor to outgoing request metadata.
func AppendActor(ctx context.Context, actor *domain.Actor) context.Context {
	if actor == nil {
		return ctx
	}

	return metadata.AppendToOutgoingContext(ctx,
		HostnameMetadataKey, actor.Hostname,
		UsernameMetadataKey, actor.Username)
}

// ActorFromIncoming extracts the actor from incoming request metadata.
// It returns nil when the caller did not identify itself.
func ActorFromIncoming(ctx context.Context) *domain.Actor {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return nil
	}

	actor := &domain.Actor{
		Hostname: first(md.Get(HostnameMetadataKey)),
		Username: first(md.Get(UsernameMetadataKey)),
	}

	if actor.Hostname == "" && actor.Username == "" {
		return nil
	}

	return actor
}

// UnaryLoggingInterceptor scopes the request logger with the method and actor
// and logs every completed call.
func UnaryLoggingInterceptor(base context.Context) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		ctx = logger.ToContext(ctx, logger.FromContext(base))
		ctx = logger.WithKV(ctx, "method", info.FullMethod, "actor", ActorFromIncoming(ctx).String())

		started := time.Now()
		resp, err := handler(ctx, req)

		logger.DebugKV(ctx, "Request handled",
			"code", status.Code(err).String(),
			"duration", time.Since(started).String())

		return resp, err
	}
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}

	return values[0]
}
