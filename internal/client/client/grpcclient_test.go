package client

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/dmitrijs2005/accounts/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type fakeServer struct {
	auth       []string
	lastDelete *api.DeleteAccountRequest
	lastUpdate *api.UpdateProfileRequest
	err        error
	pingStatus string
}

func (f *fakeServer) record(ctx context.Context) {
	md, _ := metadata.FromIncomingContext(ctx)
	f.auth = append(f.auth, md.Get("authorization")...)
}

func (f *fakeServer) Register(ctx context.Context, r *api.RegisterRequest) (*api.RegisterResponse, error) {
	f.record(ctx)
	if f.err != nil {
		return nil, f.err
	}
	return &api.RegisterResponse{ID: "id-1", Email: r.Email, Token: "reg-token"}, nil
}

func (f *fakeServer) Login(ctx context.Context, r *api.LoginRequest) (*api.LoginResponse, error) {
	f.record(ctx)
	if f.err != nil {
		return nil, f.err
	}
	return &api.LoginResponse{Token: "login-token", User: api.Account{ID: "id-1", Email: r.Email}}, nil
}

func (f *fakeServer) GetProfile(ctx context.Context, _ *api.GetProfileRequest) (*api.Account, error) {
	f.record(ctx)
	if f.err != nil {
		return nil, f.err
	}
	return &api.Account{ID: "id-1", Email: "a@x.com"}, nil
}

func (f *fakeServer) UpdateProfile(ctx context.Context, r *api.UpdateProfileRequest) (*api.Account, error) {
	f.record(ctx)
	f.lastUpdate = r
	if f.err != nil {
		return nil, f.err
	}
	return &api.Account{ID: "id-1", Email: "b@x.com"}, nil
}

func (f *fakeServer) DeleteAccount(ctx context.Context, r *api.DeleteAccountRequest) (*api.MessageResponse, error) {
	f.record(ctx)
	f.lastDelete = r
	if f.err != nil {
		return nil, f.err
	}
	return &api.MessageResponse{Message: "deleted"}, nil
}

func (f *fakeServer) Logout(ctx context.Context, _ *api.LogoutRequest) (*api.MessageResponse, error) {
	f.record(ctx)
	if f.err != nil {
		return nil, f.err
	}
	return &api.MessageResponse{Message: "logged out"}, nil
}

func (f *fakeServer) Ping(ctx context.Context, _ *api.PingRequest) (*api.PingResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &api.PingResponse{Status: f.pingStatus}, nil
}

func newTestClient(t *testing.T, srv api.AccountServiceServer) *GRPCClient {
	t.Helper()
	lis := bufconn.Listen(1 << 16)
	s := grpc.NewServer()
	api.RegisterAccountServiceServer(s, srv)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	c, err := NewGRPCClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestGRPCClient_TokenFlow(t *testing.T) {
	srv := &fakeServer{pingStatus: "OK"}
	c := newTestClient(t, srv)
	ctx := context.Background()

	require.NoError(t, c.Ping(ctx))
	assert.Empty(t, srv.auth, "no header without a token")

	reg, err := c.Register(ctx, "a@x.com", "Passw0rd")
	require.NoError(t, err)
	assert.Equal(t, "id-1", reg.ID)
	assert.Equal(t, "reg-token", c.Token())

	_, err = c.Login(ctx, "a@x.com", "Passw0rd")
	require.NoError(t, err)
	assert.Equal(t, "login-token", c.Token())

	acc, err := c.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", acc.Email)

	email := "b@x.com"
	acc, err = c.UpdateProfile(ctx, &email, nil)
	require.NoError(t, err)
	assert.Equal(t, "b@x.com", acc.Email)
	require.NotNil(t, srv.lastUpdate.Email)
	assert.Nil(t, srv.lastUpdate.Password)

	require.NoError(t, c.Logout(ctx))
	assert.Empty(t, c.Token())

	assert.Equal(t, []string{
		"Bearer reg-token",
		"Bearer login-token", "Bearer login-token", "Bearer login-token",
	}, srv.auth)
}

func TestGRPCClient_DeleteDropsToken(t *testing.T) {
	srv := &fakeServer{}
	c := newTestClient(t, srv)
	c.SetToken("tok")

	require.NoError(t, c.DeleteAccount(context.Background(), ""))
	assert.Equal(t, "", srv.lastDelete.ID)
	assert.Empty(t, c.Token())
}

func TestGRPCClient_LogoutDropsTokenOnError(t *testing.T) {
	srv := &fakeServer{err: status.Error(codes.Unauthenticated, "unauthorized")}
	c := newTestClient(t, srv)
	c.SetToken("tok")

	err := c.Logout(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, c.Token())
}

func TestGRPCClient_PingNotOK(t *testing.T) {
	c := newTestClient(t, &fakeServer{pingStatus: "DEGRADED"})
	assert.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)
}

func TestMapError(t *testing.T) {
	c := &GRPCClient{}

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"unauthenticated", status.Error(codes.Unauthenticated, "unauthorized"), ErrUnauthorized},
		{"permission denied", status.Error(codes.PermissionDenied, "forbidden"), ErrForbidden},
		{"invalid argument", status.Error(codes.InvalidArgument, "registration failed"), ErrRejected},
		{"unavailable", status.Error(codes.Unavailable, "down"), ErrUnavailable},
		{"deadline", status.Error(codes.DeadlineExceeded, "slow"), ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, c.mapError(tt.in), tt.want)
		})
	}

	assert.NoError(t, c.mapError(nil))

	err := c.mapError(status.Error(codes.InvalidArgument, "registration failed"))
	assert.Contains(t, err.Error(), "registration failed")

	err = c.mapError(status.Error(codes.Internal, "internal error"))
	assert.False(t, errors.Is(err, ErrRejected))
	assert.Contains(t, err.Error(), "rpc error")
}
