package auth

import (
	"context"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	// Logout revokes the token carried in ctx by the authenticator middleware.
	Logout(ctx context.Context) error
}
