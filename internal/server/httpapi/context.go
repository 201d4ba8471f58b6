// Package httpapi exposes the authentication service over HTTP and houses
// the per-request authentication gate.
package httpapi

import (
	"context"

	"github.com/pentalign/backend/internal/server/models"
)

type ctxKey string

const principalKey ctxKey = "principal"

// ContextWithPrincipal returns a child context carrying the authenticated
// principal for the remainder of the request pipeline.
func ContextWithPrincipal(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, principalKey, user)
}

// PrincipalFromContext returns the principal the authentication gate
// attached, if any. The second return is false for unauthenticated requests.
func PrincipalFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(principalKey).(*models.User)
	return user, ok
}
