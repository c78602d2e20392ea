// Package client is the gRPC client for the account service.
//
// GRPCClient holds one connection and the current session token. A unary
// interceptor attaches the token as "authorization: Bearer <jwt>" to every
// call made while a token is set, and status codes are mapped to the
// sentinel errors in errors.go so callers can match them with errors.Is:
// ErrUnavailable, ErrUnauthorized, ErrForbidden and ErrRejected.
package client
