package alarm

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
)

// toStatus maps domain errors to gRPC status errors.
// Internal details of persistence and playback failures stay in the server log.
func toStatus(ctx context.Context, err error) error {
	var validation *domain.ValidationError

	switch {
	case errors.As(err, &validation):
		return status.Error(codes.InvalidArgument, validation.Error())
	case errors.Is(err, domain.ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, domain.ErrPersistence):
		logger.ErrorKV(ctx, "Request failed", "error", err)
		return status.Error(codes.Internal, "unable to persist state")
	case errors.Is(err, domain.ErrPlayback):
		logger.ErrorKV(ctx, "Request failed", "error", err)
		return status.Error(codes.Unavailable, "audio playback failed")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		logger.ErrorKV(ctx, "Request failed", "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}
