package api

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "accounts.v1.AccountService"

// Full method names, as seen by interceptors.
const (
	MethodRegister      = "/" + ServiceName + "/Register"
	MethodLogin         = "/" + ServiceName + "/Login"
	MethodGetProfile    = "/" + ServiceName + "/GetProfile"
	MethodUpdateProfile = "/" + ServiceName + "/UpdateProfile"
	MethodDeleteAccount = "/" + ServiceName + "/DeleteAccount"
	MethodLogout        = "/" + ServiceName + "/Logout"
	MethodPing          = "/" + ServiceName + "/Ping"
)

// AccountServiceServer is implemented by the gRPC server.
type AccountServiceServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	GetProfile(context.Context, *GetProfileRequest) (*Account, error)
	UpdateProfile(context.Context, *UpdateProfileRequest) (*Account, error)
	DeleteAccount(context.Context, *DeleteAccountRequest) (*MessageResponse, error)
	Logout(context.Context, *LogoutRequest) (*MessageResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
}

// unary builds a method descriptor that decodes Req, runs the interceptor
// chain and dispatches to call.
func unary[Req any, Resp any](name string, call func(AccountServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	fullMethod := "/" + ServiceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(AccountServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(AccountServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var AccountServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AccountServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Register", AccountServiceServer.Register),
		unary("Login", AccountServiceServer.Login),
		unary("GetProfile", AccountServiceServer.GetProfile),
		unary("UpdateProfile", AccountServiceServer.UpdateProfile),
		unary("DeleteAccount", AccountServiceServer.DeleteAccount),
		unary("Logout", AccountServiceServer.Logout),
		unary("Ping", AccountServiceServer.Ping),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "accounts/v1/accounts.json",
}

func RegisterAccountServiceServer(s grpc.ServiceRegistrar, srv AccountServiceServer) {
	s.RegisterService(&AccountServiceDesc, srv)
}

// AccountServiceClient is the typed client side of AccountService.
type AccountServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAccountServiceClient(cc grpc.ClientConnInterface) *AccountServiceClient {
	return &AccountServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts ...grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AccountServiceClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c.cc, MethodRegister, in, opts...)
}

func (c *AccountServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, MethodLogin, in, opts...)
}

func (c *AccountServiceClient) GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*Account, error) {
	return invoke[Account](ctx, c.cc, MethodGetProfile, in, opts...)
}

func (c *AccountServiceClient) UpdateProfile(ctx context.Context, in *UpdateProfileRequest, opts ...grpc.CallOption) (*Account, error) {
	return invoke[Account](ctx, c.cc, MethodUpdateProfile, in, opts...)
}

func (c *AccountServiceClient) DeleteAccount(ctx context.Context, in *DeleteAccountRequest, opts ...grpc.CallOption) (*MessageResponse, error) {
	return invoke[MessageResponse](ctx, c.cc, MethodDeleteAccount, in, opts...)
}

func (c *AccountServiceClient) Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*MessageResponse, error) {
	return invoke[MessageResponse](ctx, c.cc, MethodLogout, in, opts...)
}

func (c *AccountServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts...)
}
