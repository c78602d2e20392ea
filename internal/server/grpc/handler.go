package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/accounts/internal/api"
	"github.com/dmitrijs2005/accounts/internal/common"
	"github.com/dmitrijs2005/accounts/internal/server/auth"
	"github.com/dmitrijs2005/accounts/internal/server/validation"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) Register(ctx context.Context, req *api.RegisterRequest) (*api.RegisterResponse, error) {

	if err := validation.Check(validation.Registration{Email: req.Email, Password: req.Password}); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	result, err := s.accounts.Register(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrEmailTaken) {
			s.logger.Info(ctx, "Registration rejected", "reason", "email taken")
			return nil, status.Error(codes.InvalidArgument, "registration failed")
		}
		return nil, s.internal(ctx, "Register", err)
	}

	s.logger.Info(ctx, "Registered", "account_id", result.ID)
	return &api.RegisterResponse{ID: result.ID, Email: result.Email, Token: result.Token}, nil

}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.LoginResponse, error) {

	if err := validation.Check(validation.Login{Email: req.Email, Password: req.Password}); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	result, err := s.accounts.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			return nil, status.Error(codes.Unauthenticated, common.ErrorUnauthorized.Error())
		}
		return nil, s.internal(ctx, "Login", err)
	}

	return &api.LoginResponse{
		Token: result.Token,
		User:  api.Account{ID: result.ID, Email: result.Email},
	}, nil

}

func (s *GRPCServer) GetProfile(ctx context.Context, req *api.GetProfileRequest) (*api.Account, error) {

	claims, err := claimsFrom(ctx)
	if err != nil {
		return nil, err
	}

	p, err := s.accounts.GetProfile(ctx, claims.AccountID)
	if err != nil {
		return nil, s.protectedError(ctx, "GetProfile", err)
	}

	return &api.Account{ID: p.ID, Email: p.Email}, nil

}

func (s *GRPCServer) UpdateProfile(ctx context.Context, req *api.UpdateProfileRequest) (*api.Account, error) {

	claims, err := claimsFrom(ctx)
	if err != nil {
		return nil, err
	}

	if err := validation.Check(validation.Update{Email: req.Email, Password: req.Password}); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	p, err := s.accounts.UpdateProfile(ctx, claims.AccountID, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrEmailTaken) {
			return nil, status.Error(codes.InvalidArgument, "update failed")
		}
		return nil, s.protectedError(ctx, "UpdateProfile", err)
	}

	return &api.Account{ID: p.ID, Email: p.Email}, nil

}

func (s *GRPCServer) DeleteAccount(ctx context.Context, req *api.DeleteAccountRequest) (*api.MessageResponse, error) {

	claims, err := claimsFrom(ctx)
	if err != nil {
		return nil, err
	}

	target := req.ID
	if target == "" {
		target = claims.AccountID
	}

	if err := s.accounts.DeleteAccount(ctx, claims.AccountID, target); err != nil {
		if errors.Is(err, common.ErrForbidden) {
			s.logger.Warn(ctx, "Delete of another account refused", "account_id", claims.AccountID)
			return nil, status.Error(codes.PermissionDenied, "forbidden")
		}
		return nil, s.protectedError(ctx, "DeleteAccount", err)
	}

	s.logger.Info(ctx, "Account deleted", "account_id", target)
	return &api.MessageResponse{Message: "account deleted"}, nil

}

func (s *GRPCServer) Logout(ctx context.Context, req *api.LogoutRequest) (*api.MessageResponse, error) {

	claims, err := claimsFrom(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.accounts.Logout(ctx, claims.AccountID); err != nil {
		return nil, s.internal(ctx, "Logout", err)
	}

	return &api.MessageResponse{Message: "logged out"}, nil

}

func (s *GRPCServer) Ping(ctx context.Context, req *api.PingRequest) (*api.PingResponse, error) {

	return &api.PingResponse{Status: "OK"}, nil

}

func claimsFrom(ctx context.Context) (*auth.Claims, error) {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, common.ErrorUnauthorized.Error())
	}
	return claims, nil
}

// protectedError maps failures of calls made on behalf of a token holder.
// A vanished account means the token no longer names anyone.
func (s *GRPCServer) protectedError(ctx context.Context, method string, err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return status.Error(codes.Unauthenticated, common.ErrorUnauthorized.Error())
	}
	return s.internal(ctx, method, err)
}

func (s *GRPCServer) internal(ctx context.Context, method string, err error) error {
	s.logger.Error(ctx, "request failed", "method", method, "error", err)
	return status.Error(codes.Internal, "internal error")
}
