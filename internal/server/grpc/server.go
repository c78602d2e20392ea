// Package grpc exposes the account service over gRPC using the JSON codec
// from package api.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/accounts/internal/api"
	"github.com/dmitrijs2005/accounts/internal/logging"
	"github.com/dmitrijs2005/accounts/internal/server/auth"
	"github.com/dmitrijs2005/accounts/internal/server/metrics"
	"github.com/dmitrijs2005/accounts/internal/server/services"
	"google.golang.org/grpc"
)

// AccountService is the subset of services.AccountService the server calls.
type AccountService interface {
	Register(ctx context.Context, email, password string) (*services.Session, error)
	Authenticate(ctx context.Context, email, password string) (*services.Session, error)
	GetProfile(ctx context.Context, accountID string) (*services.Profile, error)
	UpdateProfile(ctx context.Context, accountID string, email, password *string) (*services.Profile, error)
	DeleteAccount(ctx context.Context, callerID, targetID string) error
	Logout(ctx context.Context, accountID string) error
}

type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

type GRPCServer struct {
	address  string
	accounts AccountService
	tokens   TokenVerifier
	metrics  *metrics.Metrics
	logger   logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, svc AccountService, tokens TokenVerifier, m *metrics.Metrics) *GRPCServer {
	return &GRPCServer{
		address:  a,
		logger:   l.With("module", "grpc_server"),
		accounts: svc,
		tokens:   tokens,
		metrics:  m,
	}
}

// newServer builds a grpc.Server with the interceptor chain and the account
// service registered.
func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.observeInterceptor, s.accessTokenInterceptor))
	api.RegisterAccountServiceServer(srv, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
