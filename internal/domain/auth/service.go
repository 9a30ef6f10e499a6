package auth

import "context"

// AuthService authenticates the administrator account.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
}
