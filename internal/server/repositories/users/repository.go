// Package users declares the server-side repository contract for the
// credential store: principal records keyed by username.
package users

import (
	"context"

	"github.com/pentalign/backend/internal/server/models"
)

// Repository defines operations for creating and looking up user records.
type Repository interface {
	// Create stores a new user and returns it with its assigned ID.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByUsername returns the user with the given username.
	// Implementations return a not-found error when the user is absent.
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// GetByID returns the user with the given ID.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// ExistsByUsername reports whether a user with the username exists.
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// ExistsByEmail reports whether a user with the email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
