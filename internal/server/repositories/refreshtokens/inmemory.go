package refreshtokens

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/pentalign/backend/internal/common"
	"github.com/pentalign/backend/internal/server/models"
)

// InMemoryRepository is a mutex-guarded Repository used by tests and local
// development. The lock stands in for the storage-layer atomicity a real
// database provides, so the single-active-token invariant holds under
// concurrent logins.
type InMemoryRepository struct {
	mu     sync.Mutex
	nextID int
	tokens map[string]*models.RefreshToken // keyed by opaque token value
}

// NewInMemoryRepository constructs an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{tokens: make(map[string]*models.RefreshToken)}
}

// Create stores a token for userID, replacing any existing one. The
// replace-under-lock mirrors the one-row-per-user constraint of the
// PostgreSQL table.
func (r *InMemoryRepository) Create(ctx context.Context, userID string, token string, expires time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for value, rt := range r.tokens {
		if rt.UserID == userID {
			delete(r.tokens, value)
		}
	}

	r.nextID++
	r.tokens[token] = &models.RefreshToken{
		ID:        strconv.Itoa(r.nextID),
		UserID:    userID,
		Token:     token,
		Expires:   expires,
		CreatedAt: time.Now(),
	}
	return nil
}

func (r *InMemoryRepository) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rt, ok := r.tokens[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	copied := *rt
	return &copied, nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.tokens, token)
	return nil
}

func (r *InMemoryRepository) DeleteAllForUser(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for value, rt := range r.tokens {
		if rt.UserID == userID {
			delete(r.tokens, value)
		}
	}
	return nil
}

// CountForUser returns the number of stored tokens owned by userID.
func (r *InMemoryRepository) CountForUser(userID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, rt := range r.tokens {
		if rt.UserID == userID {
			n++
		}
	}
	return n
}
