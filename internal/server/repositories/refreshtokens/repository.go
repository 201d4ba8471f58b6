// Package refreshtokens declares the server-side repository contract for
// managing refresh tokens in persistent storage.
package refreshtokens

import (
	"context"
	"time"

	"github.com/pentalign/backend/internal/server/models"
)

// Repository defines operations for issuing, retrieving, and revoking
// refresh tokens. The store is the sole authority for token state; callers
// never cache a row beyond a single operation.
type Repository interface {
	// Create stores a new refresh token for userID with the given absolute
	// expiry time.
	Create(ctx context.Context, userID string, token string, expires time.Time) error

	// Find looks up a refresh token by its opaque token string.
	// Implementations return a not-found error when the token is absent.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete removes a refresh token by its token string. Deleting a
	// non-existent token is not an error.
	Delete(ctx context.Context, token string) error

	// DeleteAllForUser removes every refresh token owned by userID.
	DeleteAllForUser(ctx context.Context, userID string) error
}
