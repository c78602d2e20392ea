// Package api defines the wire contract of accounts.v1.AccountService: the
// request and response messages, the gRPC service descriptor and a typed
// client. Messages travel as JSON through the codec registered in codec.go.
package api

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Account struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type LoginResponse struct {
	Token string  `json:"token"`
	User  Account `json:"user"`
}

type GetProfileRequest struct{}

type UpdateProfileRequest struct {
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

type DeleteAccountRequest struct {
	ID string `json:"id"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type LogoutRequest struct{}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}
