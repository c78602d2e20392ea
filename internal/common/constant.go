package common

// AuthorizationHeaderName is the gRPC metadata / HTTP header carrying the
// session token as "Bearer <token>".
const AuthorizationHeaderName = "authorization"

// BearerPrefix precedes the token inside the authorization header.
const BearerPrefix = "Bearer "
