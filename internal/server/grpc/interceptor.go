package grpc

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/accounts/internal/api"
	"github.com/dmitrijs2005/accounts/internal/common"
	"github.com/dmitrijs2005/accounts/internal/server/auth"
	"github.com/dmitrijs2005/accounts/internal/server/metrics"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// protectedMethods require a valid bearer token.
var protectedMethods = map[string]bool{
	api.MethodGetProfile:    true,
	api.MethodUpdateProfile: true,
	api.MethodDeleteAccount: true,
	api.MethodLogout:        true,
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	if !protectedMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	var header string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values := md.Get(common.AuthorizationHeaderName)
		if len(values) > 0 {
			header = values[0]
		}
	}

	token := common.BearerToken(header)
	if token == "" {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	claims, err := s.tokens.Verify(token)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			s.logger.Info(ctx, "token expired", "method", info.FullMethod)
		} else {
			s.logger.Warn(ctx, "invalid token", "method", info.FullMethod)
		}
		return nil, status.Error(codes.Unauthenticated, common.ErrorUnauthorized.Error())
	}

	return handler(auth.ContextWithClaims(ctx, claims), req)
}

// observeInterceptor records one metric sample per call.
func (s *GRPCServer) observeInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	if s.metrics != nil {
		s.metrics.ObserveRequest("grpc", methodName(info.FullMethod), outcome(status.Code(err)), time.Since(start))
	}
	return resp, err
}

func methodName(fullMethod string) string {
	return fullMethod[strings.LastIndex(fullMethod, "/")+1:]
}

func outcome(c codes.Code) string {
	switch c {
	case codes.OK:
		return metrics.OutcomeOK
	case codes.InvalidArgument:
		return metrics.OutcomeInvalid
	case codes.Unauthenticated:
		return metrics.OutcomeUnauthorized
	case codes.PermissionDenied:
		return metrics.OutcomeForbidden
	default:
		return metrics.OutcomeError
	}
}
