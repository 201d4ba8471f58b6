// Package services contains server-side business logic. This file implements
// RefreshTokenService: the lifecycle of persisted refresh tokens
// (create/supersede, lookup, lazy expiry, logout).
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pentalign/backend/internal/common"
	"github.com/pentalign/backend/internal/dbx"
	"github.com/pentalign/backend/internal/server/auth"
	"github.com/pentalign/backend/internal/server/models"
	"github.com/pentalign/backend/internal/server/repositories/repomanager"
)

// RefreshTokenService manages the per-user refresh-token state machine:
// NONE -> ACTIVE -> (EXPIRED | SUPERSEDED) -> NONE. At most one token per
// user is live at any time.
type RefreshTokenService struct {
	db       *sql.DB
	repos    repomanager.RepositoryManager
	validity time.Duration
	clock    auth.Clock
}

// NewRefreshTokenService constructs a RefreshTokenService. A nil clock
// falls back to auth.SystemClock.
func NewRefreshTokenService(db *sql.DB, repos repomanager.RepositoryManager, validity time.Duration, clock auth.Clock) *RefreshTokenService {
	if clock == nil {
		clock = auth.SystemClock{}
	}
	return &RefreshTokenService{db: db, repos: repos, validity: validity, clock: clock}
}

// Create issues a fresh opaque refresh token for userID, superseding any
// existing tokens for that user. The delete and insert run in one storage
// transaction; combined with the one-row-per-user constraint this keeps
// exactly one live token per user even under concurrent logins.
// Fails with common.ErrorNotFound when userID does not resolve.
func (s *RefreshTokenService) Create(ctx context.Context, userID string) (*models.RefreshToken, error) {
	if _, err := s.repos.Users(s.db).GetByID(ctx, userID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error resolving user: %w", err)
	}

	token := &models.RefreshToken{
		UserID:  userID,
		Token:   uuid.NewString(),
		Expires: s.clock.Now().Add(s.validity),
	}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.RefreshTokens(tx)
		if err := repo.DeleteAllForUser(ctx, userID); err != nil {
			return fmt.Errorf("error superseding refresh tokens: %w", err)
		}
		return repo.Create(ctx, userID, token.Token, token.Expires)
	}); err != nil {
		return nil, err
	}

	return token, nil
}

// Find looks up a refresh token by its opaque value. Pure lookup, no
// mutation; returns common.ErrorNotFound when the token is absent.
func (s *RefreshTokenService) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	return s.repos.RefreshTokens(s.db).Find(ctx, token)
}

// CheckNotExpired verifies the token is still live. An expired token is
// deleted as a side effect and common.ErrRefreshTokenExpired is returned;
// this lazy deletion on presentation is the only expiry sweep.
func (s *RefreshTokenService) CheckNotExpired(ctx context.Context, token *models.RefreshToken) error {
	if token.Expires.After(s.clock.Now()) {
		return nil
	}
	if err := s.repos.RefreshTokens(s.db).Delete(ctx, token.Token); err != nil {
		return fmt.Errorf("error deleting expired refresh token: %w", err)
	}
	return common.ErrRefreshTokenExpired
}

// DeleteAllForUser removes every refresh token owned by userID. Explicit
// logout / session-invalidation hook.
func (s *RefreshTokenService) DeleteAllForUser(ctx context.Context, userID string) error {
	return s.repos.RefreshTokens(s.db).DeleteAllForUser(ctx, userID)
}
