package auth

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/motorph/payroll-backend-go/internal/config"
	"github.com/motorph/payroll-backend-go/internal/domain/auth"
	"github.com/motorph/payroll-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	jwt.Service
	credentials config.AuthConfig
}

func NewAuthService(jwtService jwt.Service, credentials config.AuthConfig) auth.AuthService {
	return &AuthServiceImpl{
		Service:     jwtService,
		credentials: credentials,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	usernameOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(a.credentials.AdminUsername)) == 1
	passwordErr := bcrypt.CompareHashAndPassword([]byte(a.credentials.AdminPasswordHash), []byte(req.Password))
	if !usernameOK || passwordErr != nil {
		slog.Warn("failed login attempt", "username", req.Username)
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := a.Service.GenerateAccessToken(req.Username)
	if err != nil {
		return auth.TokenResponse{}, err
	}
	return auth.TokenResponse{
		AccessToken:          token,
		AccessTokenExpiresIn: expiresAt,
		TokenType:            "Bearer",
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context) error {
	token, _, err := jwtauth.FromContext(ctx)
	if err != nil || token == nil {
		return auth.ErrInvalidToken
	}
	expiresAt := token.Expiration()
	if expiresAt.IsZero() {
		expiresAt = time.Now().Add(24 * time.Hour)
	}
	a.Service.RevokeToken(token.JwtID(), expiresAt.Unix())
	return nil
}
