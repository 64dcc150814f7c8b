// Package services holds the application services that sit between the HTTP
// handlers and the domain repositories.
package services

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/seogenix/backend/internal/auth"
	"github.com/seogenix/backend/internal/config"
	"github.com/seogenix/backend/internal/domain/plan"
	"github.com/seogenix/backend/internal/domain/user"
	apperrors "github.com/seogenix/backend/internal/pkg/errors"
	"github.com/seogenix/backend/internal/pkg/logger"
)

// AuthService registers accounts and issues session tokens.
type AuthService struct {
	users  user.Repository
	cfg    config.AuthConfig
	logger *logger.Logger
}

func NewAuthService(users user.Repository, cfg config.AuthConfig, log *logger.Logger) *AuthService {
	return &AuthService{users: users, cfg: cfg, logger: log}
}

// Register creates an account on the free tier and returns it with a token
// pair.
func (s *AuthService) Register(ctx context.Context, email, password, fullName string) (*user.User, auth.TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if existing, err := s.users.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, auth.TokenPair{}, apperrors.Conflict("an account with this email already exists")
	} else if err != nil && !apperrors.IsNotFound(err) {
		return nil, auth.TokenPair{}, apperrors.DatabaseError("failed to check existing account", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BCryptCost)
	if err != nil {
		return nil, auth.TokenPair{}, apperrors.Internal("failed to hash password", err)
	}

	u := &user.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     fullName,
		Tier:         plan.TierFree,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, auth.TokenPair{}, apperrors.DatabaseError("failed to create account", err)
	}
	s.logger.WithFields(map[string]interface{}{"user_id": u.ID}).Info("Account registered")

	tokens, err := s.mint(u)
	if err != nil {
		return nil, auth.TokenPair{}, err
	}
	return u, tokens, nil
}

// Login verifies credentials and returns the account with a token pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (*user.User, auth.TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, auth.TokenPair{}, apperrors.Unauthorized("invalid email or password")
		}
		return nil, auth.TokenPair{}, apperrors.DatabaseError("failed to look up account", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, auth.TokenPair{}, apperrors.Unauthorized("invalid email or password")
	}

	tokens, err := s.mint(u)
	if err != nil {
		return nil, auth.TokenPair{}, err
	}
	return u, tokens, nil
}

// Refresh exchanges a valid refresh token for a new pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (auth.TokenPair, error) {
	claims, err := auth.ParseClaims(refreshToken, s.cfg.JWTSecret)
	if err != nil {
		return auth.TokenPair{}, apperrors.Unauthorized("invalid or expired refresh token")
	}
	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return auth.TokenPair{}, apperrors.Unauthorized("account no longer exists")
	}
	return s.mint(u)
}

func (s *AuthService) mint(u *user.User) (auth.TokenPair, error) {
	tokens, err := auth.MintTokens(u.ID, u.Email, s.cfg.JWTSecret, s.cfg.AccessTokenExpiry, s.cfg.RefreshTokenExpiry)
	if err != nil {
		return auth.TokenPair{}, apperrors.Internal("failed to sign tokens", err)
	}
	return tokens, nil
}
