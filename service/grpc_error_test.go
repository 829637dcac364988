package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestMyErrorToGRPC_nil(t *testing.T) {
	assert.NoError(t, myErrorToGRPC(nil))
}

func TestMyErrorToGRPC_Codes(t *testing.T) {
	tests := []struct {
		err      error
		wantCode codes.Code
		wantMsg  string
	}{
		{err: NewBadParameterError("bad", nil), wantCode: codes.InvalidArgument, wantMsg: "bad"},
		{err: NewEntityNotFoundError("gone", nil), wantCode: codes.NotFound, wantMsg: "gone"},
		{err: NewInvalidCredentialsError(MsgInvalidToken, errors.New("secret detail")), wantCode: codes.Unauthenticated, wantMsg: MsgInvalidToken},
		{err: NewServiceUnreachableError("down", nil), wantCode: codes.Unavailable, wantMsg: "down"},
		{err: NewConfigurationError("no id", nil), wantCode: codes.Internal, wantMsg: "no id"},
		{err: fmt.Errorf("wrapped: %w", NewRegistryUnavailableError("registry", nil)), wantCode: codes.Unavailable, wantMsg: "registry"},
		{err: NewMyError("custom", "odd", nil), wantCode: codes.Internal, wantMsg: "odd"},
		{err: errors.New("plain"), wantCode: codes.Internal, wantMsg: "an internal server error has occurred"},
		{err: status.Error(codes.PermissionDenied, "nope"), wantCode: codes.PermissionDenied, wantMsg: "nope"},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			s, ok := status.FromError(myErrorToGRPC(tt.err))
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, s.Code())
			assert.Equal(t, tt.wantMsg, s.Message())
		})
	}
}

func TestMyErrorToGRPCUnaryInterceptor(t *testing.T) {
	interceptor := MyErrorToGRPCUnaryInterceptor(log.NewNopLogger())
	info := &grpc.UnaryServerInfo{FullMethod: "/svc/Method"}

	resp, err := interceptor(context.Background(), "req", info, func(ctx context.Context, req any) (any, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp)

	_, err = interceptor(context.Background(), "req", info, func(ctx context.Context, req any) (any, error) {
		return nil, NewInvalidCredentialsError("denied", nil)
	})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}
