package service

import (
	"context"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// errorCodeToGRPCCode mirrors NewErrorCodeToStatusCodeMaps for the gRPC surface.
var errorCodeToGRPCCode = map[string]codes.Code{
	ErrBadParameter:                 codes.InvalidArgument,
	ErrEntityNotFound:               codes.NotFound,
	ErrNotFound:                     codes.NotFound,
	ErrInternalServerError:          codes.Internal,
	ErrNoInstances:                  codes.Unavailable,
	ErrRegistryUnavailable:          codes.Unavailable,
	ErrServiceUnreachable:           codes.Unavailable,
	ErrConfiguration:                codes.Internal,
	ErrAuthenticationInfrastructure: codes.Internal,
	ErrInvalidCredentials:           codes.Unauthenticated,
}

// MyErrorToGRPCUnaryInterceptor returns a unary server interceptor that maps MyError results to gRPC statuses
// and logs them with the method name.
func MyErrorToGRPCUnaryInterceptor(logger log.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err != nil {
			level.Info(logger).Log(
				"msg", "unary handler error",
				"method", info.FullMethod,
				"err", err,
			)
			err = myErrorToGRPC(err)
		}
		return resp, err
	}
}

// myErrorToGRPC: nil stays nil; a gRPC status other than Unknown is returned as-is;
// a MyError gets the mapped code and its public message; anything else is Internal.
func myErrorToGRPC(err error) error {
	if err == nil {
		return nil
	}
	if s, ok := status.FromError(err); ok && s.Code() != codes.Unknown {
		return s.Err()
	}
	myErr := ToMyError(err)
	if myErr == nil {
		return status.Error(codes.Internal, "an internal server error has occurred")
	}
	code, ok := errorCodeToGRPCCode[myErr.Code]
	if !ok {
		code = codes.Internal
	}
	return status.Error(code, myErr.Message)
}
