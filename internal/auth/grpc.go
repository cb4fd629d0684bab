package auth

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// UnaryServerInterceptor аутентифицирует вызовы методов с префиксом servicePrefix
// (например "/calendar.v1.CalendarService/"); остальные (health, reflection) пропускает.
func UnaryServerInterceptor(v *Verifier, servicePrefix string) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if !strings.HasPrefix(info.FullMethod, servicePrefix) {
			return handler(ctx, req)
		}

		var header string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if vals := md.Get("authorization"); len(vals) > 0 {
				header = vals[0]
			}
		}

		caller, err := v.Authenticate(ctx, header)
		if err != nil {
			if errors.Is(err, ErrMissingToken) || errors.Is(err, ErrInvalidToken) {
				return nil, status.Error(codes.Unauthenticated, err.Error())
			}
			return nil, status.Error(codes.Internal, "authenticate caller")
		}
		return handler(WithCaller(ctx, caller), req)
	}
}
