// This file implements AuthService: registration, credential verification
// and the access/refresh token flows built on top of the token codec and
// RefreshTokenService.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pentalign/backend/internal/common"
	"github.com/pentalign/backend/internal/cryptox"
	"github.com/pentalign/backend/internal/server/auth"
	"github.com/pentalign/backend/internal/server/config"
	"github.com/pentalign/backend/internal/server/models"
	"github.com/pentalign/backend/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService provides authentication-related operations:
//   - Register: create users and mint tokens
//   - Login: verify credentials and mint tokens
//   - Refresh: exchange a live refresh token for a new access token
//   - Logout: invalidate the caller's refresh tokens
type AuthService struct {
	db        *sql.DB
	repos     repomanager.RepositoryManager
	codec     *auth.Codec
	hasher    cryptox.PasswordHasher
	refresh   *RefreshTokenService
	accessTTL time.Duration
}

// NewAuthService constructs an AuthService using repositories, the token
// codec, the injected password hasher and server config.
func NewAuthService(db *sql.DB, repos repomanager.RepositoryManager, codec *auth.Codec,
	hasher cryptox.PasswordHasher, refresh *RefreshTokenService, cfg *config.Config) *AuthService {
	return &AuthService{
		db:        db,
		repos:     repos,
		codec:     codec,
		hasher:    hasher,
		refresh:   refresh,
		accessTTL: cfg.AccessTokenValidityDuration,
	}
}

// Register creates a new user and returns a fresh token pair. Duplicate
// usernames and emails fail with common.ErrorUsernameTaken and
// common.ErrorEmailTaken respectively.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*TokenPair, error) {
	repo := s.repos.Users(s.db)

	taken, err := repo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("error checking username: %w", err)
	}
	if taken {
		return nil, common.ErrorUsernameTaken
	}

	taken, err = repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error checking email: %w", err)
	}
	if taken {
		return nil, common.ErrorEmailTaken
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user, err := repo.Create(ctx, &models.User{Username: username, Email: email, PasswordHash: hash})
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return s.issuePair(ctx, user)
}

// Login verifies the username/password pair and, on success, returns a new
// token pair. An unknown username and a wrong password are indistinguishable
// to the caller: both fail with common.ErrorUnauthorized.
func (s *AuthService) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	user, err := s.repos.Users(s.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, common.ErrorUnauthorized
	}

	return s.issuePair(ctx, user)
}

// Refresh validates the presented refresh token and mints a new access
// token. The refresh token value is returned unchanged; it is only rotated
// on login and registration. An unknown value fails with
// common.ErrorUnauthorized, an expired one with
// common.ErrRefreshTokenExpired (and is deleted).
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	token, err := s.refresh.Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}

	if err := s.refresh.CheckNotExpired(ctx, token); err != nil {
		return nil, err
	}

	user, err := s.repos.Users(s.db).GetByID(ctx, token.UserID)
	if err != nil {
		return nil, fmt.Errorf("error resolving token owner: %w", err)
	}

	access, err := s.codec.Issue(user.Username, s.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("error issuing access token: %w", err)
	}

	return &TokenPair{AccessToken: access, RefreshToken: token.Token}, nil
}

// Logout deletes every refresh token owned by userID. Outstanding access
// tokens stay valid until expiry; only the refresh flow is blocked.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	return s.refresh.DeleteAllForUser(ctx, userID)
}

// UserByUsername loads the principal record for the request-authentication
// gate.
func (s *AuthService) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.repos.Users(s.db).GetByUsername(ctx, username)
}

func (s *AuthService) issuePair(ctx context.Context, user *models.User) (*TokenPair, error) {
	access, err := s.codec.Issue(user.Username, s.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("error issuing access token: %w", err)
	}

	token, err := s.refresh.Create(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("error issuing refresh token: %w", err)
	}

	return &TokenPair{AccessToken: access, RefreshToken: token.Token}, nil
}
