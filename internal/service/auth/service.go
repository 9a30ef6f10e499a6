package auth

import (
	"context"
	"crypto/subtle"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/pointage-hq/pointage-backend-go/internal/config"
	"github.com/pointage-hq/pointage-backend-go/internal/domain/auth"
	"github.com/pointage-hq/pointage-backend-go/internal/pkg/jwt"
)

type authService struct {
	cfg        config.AdminConfig
	jwtService jwt.Service
}

func NewAuthService(cfg config.AdminConfig, jwtService jwt.Service) auth.AuthService {
	return &authService{
		cfg:        cfg,
		jwtService: jwtService,
	}
}

// Login checks the submitted credentials against the configured administrator
// account. The password is verified against a bcrypt hash; there are no
// per-employee accounts, employees punch by badge ID alone.
func (s *authService) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	usernameMatch := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.cfg.Username)) == 1
	passwordErr := bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(req.Password))
	if !usernameMatch || passwordErr != nil {
		slog.Warn("Failed admin login attempt", "username", req.Username)
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(req.Username)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	slog.Info("Admin logged in", "username", req.Username)

	return auth.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}
