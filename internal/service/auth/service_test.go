package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pointage-hq/pointage-backend-go/internal/config"
	"github.com/pointage-hq/pointage-backend-go/internal/domain/auth"
	"github.com/pointage-hq/pointage-backend-go/internal/pkg/jwt"
)

func newService(t *testing.T, password string) auth.AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := config.AdminConfig{Username: "admin", PasswordHash: string(hash)}
	return NewAuthService(cfg, jwt.NewJWTService("test-secret", "1h"))
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, "s3cret")

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := svc.Login(ctx, auth.LoginRequest{Username: "admin", Password: "s3cret"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Positive(t, resp.ExpiresAt)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, auth.LoginRequest{Username: "admin", Password: "wrong"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("wrong username", func(t *testing.T) {
		_, err := svc.Login(ctx, auth.LoginRequest{Username: "root", Password: "s3cret"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := svc.Login(ctx, auth.LoginRequest{})
		assert.Error(t, err)
	})
}
