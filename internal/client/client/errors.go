package client

import "errors"

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	// ErrRejected wraps the server's message for requests it refused as
	// invalid, e.g. "registration failed".
	ErrRejected = errors.New("request rejected")
)
