package httpapi

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pentalign/backend/internal/common"
	"github.com/pentalign/backend/internal/cryptox"
	"github.com/pentalign/backend/internal/dbx"
	"github.com/pentalign/backend/internal/logging"
	"github.com/pentalign/backend/internal/server/auth"
	"github.com/pentalign/backend/internal/server/config"
	"github.com/pentalign/backend/internal/server/models"
	refreshtokensrepo "github.com/pentalign/backend/internal/server/repositories/refreshtokens"
	"github.com/pentalign/backend/internal/server/repositories/repomanager"
	usersrepo "github.com/pentalign/backend/internal/server/repositories/users"
	"github.com/pentalign/backend/internal/server/services"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// memUsersRepo is a stateful in-memory credential store for handler tests.
type memUsersRepo struct {
	mu         sync.Mutex
	seq        int
	byID       map[string]*models.User
	byUsername map[string]*models.User
	byEmail    map[string]*models.User
}

func newMemUsersRepo() *memUsersRepo {
	return &memUsersRepo{
		byID:       make(map[string]*models.User),
		byUsername: make(map[string]*models.User),
		byEmail:    make(map[string]*models.User),
	}
}

func (m *memUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	u.ID = "u-" + strconv.Itoa(m.seq)
	u.RegisteredAt = time.Now()
	m.byID[u.ID] = u
	m.byUsername[u.Username] = u
	m.byEmail[u.Email] = u
	return u, nil
}

func (m *memUsersRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byUsername[username]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (m *memUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[id]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (m *memUsersRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.byUsername[username]
	return ok, nil
}

func (m *memUsersRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.byEmail[email]
	return ok, nil
}

func (m *memUsersRepo) delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[id]; ok {
		delete(m.byUsername, u.Username)
		delete(m.byEmail, u.Email)
		delete(m.byID, id)
	}
}

type memRepoManager struct {
	u *memUsersRepo
	r *refreshtokensrepo.InMemoryRepository
}

func (m *memRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *memRepoManager) Users(db dbx.DBTX) usersrepo.Repository      { return m.u }
func (m *memRepoManager) RefreshTokens(db dbx.DBTX) refreshtokensrepo.Repository {
	return m.r
}

var _ repomanager.RepositoryManager = (*memRepoManager)(nil)

type testEnv struct {
	server *Server
	users  *memUsersRepo
	tokens *refreshtokensrepo.InMemoryRepository
	codec  *auth.Codec
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	mock.MatchExpectationsInOrder(false)
	for i := 0; i < 32; i++ {
		mock.ExpectBegin()
		mock.ExpectCommit()
	}

	rm := &memRepoManager{u: newMemUsersRepo(), r: refreshtokensrepo.NewInMemoryRepository()}

	cfg := &config.Config{
		SecretKey:                    testSecret,
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 24 * time.Hour,
	}

	codec, err := auth.NewCodec(cfg.SecretKey, nil)
	if err != nil {
		t.Fatalf("NewCodec error: %v", err)
	}

	refresh := services.NewRefreshTokenService(db, rm, cfg.RefreshTokenValidityDuration, nil)
	authService := services.NewAuthService(db, rm, codec, cryptox.NewBcryptHasher(4), refresh, cfg)

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)))
	srv := NewServer(":0", logger, authService, codec)

	return &testEnv{server: srv, users: rm.u, tokens: rm.r, codec: codec}
}

func (e *testEnv) anExpiredToken(t *testing.T, username string) string {
	t.Helper()
	past := time.Now().Add(-2 * time.Hour)
	expired, err := auth.NewCodec(testSecret, staleClock{t: past})
	if err != nil {
		t.Fatalf("NewCodec error: %v", err)
	}
	tok, err := expired.Issue(username, time.Hour)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	return tok
}

type staleClock struct{ t time.Time }

func (c staleClock) Now() time.Time { return c.t }

