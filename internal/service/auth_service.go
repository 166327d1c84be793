package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/makeup-booking/internal/auth"
	"github.com/spec-kit/makeup-booking/internal/config"
	"github.com/spec-kit/makeup-booking/internal/domain"
	"github.com/spec-kit/makeup-booking/internal/repository"
	apperrors "github.com/spec-kit/makeup-booking/pkg/util"
)

// AuthService coordinates login and principal resolution.
type AuthService struct {
	users    repository.UserRepository
	tokenMgr *auth.TokenManager
	now      func() time.Time
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:    users,
		tokenMgr: auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		now:      time.Now,
	}
}

// Login authenticates an account and issues a token. An elapsed suspension
// is cleared here so the returned user reflects current booking rights.
func (s *AuthService) Login(ctx context.Context, account, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByAccount(ctx, account)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid account or password")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid account or password")
	}

	if user.MaybeExpireSuspension(s.now()) {
		if err := s.users.Update(ctx, user); err != nil {
			return nil, "", time.Time{}, err
		}
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
