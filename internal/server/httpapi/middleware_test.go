package httpapi

import (
	"net/http"
	"testing"

	"github.com/pentalign/backend/internal/common"
)

// getMe issues a GET /api/users/me with the given access token header value
// (empty string means no header) and returns the recorded status code.
func getMe(t *testing.T, h http.Handler, token string) int {
	t.Helper()
	headers := map[string]string{}
	if token != "" {
		headers[common.AccessTokenHeaderName] = token
	}
	rec := doJSON(t, h, http.MethodGet, "/api/users/me", "", headers)
	return rec.Code
}

func TestGate_MissingHeader(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	h := env.server.Handler()
	registerAlice(t, h)

	if got := getMe(t, h, ""); got != http.StatusUnauthorized {
		t.Errorf("status without header = %d, want %d", got, http.StatusUnauthorized)
	}
}

func TestGate_GarbageToken(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	h := env.server.Handler()
	registerAlice(t, h)

	for _, tok := range []string{"not-a-jwt", "a.b.c", "   "} {
		if got := getMe(t, h, tok); got != http.StatusUnauthorized {
			t.Errorf("status with token %q = %d, want %d", tok, got, http.StatusUnauthorized)
		}
	}
}

func TestGate_ExpiredToken(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	h := env.server.Handler()
	registerAlice(t, h)

	if got := getMe(t, h, env.anExpiredToken(t, "alice")); got != http.StatusUnauthorized {
		t.Errorf("status with expired token = %d, want %d", got, http.StatusUnauthorized)
	}
}

func TestGate_DeletedUser(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	h := env.server.Handler()
	pair := registerAlice(t, h)

	if got := getMe(t, h, pair.AccessToken); got != http.StatusOK {
		t.Fatalf("status before deletion = %d, want %d", got, http.StatusOK)
	}

	env.users.delete("u-1")

	if got := getMe(t, h, pair.AccessToken); got != http.StatusUnauthorized {
		t.Errorf("status after deletion = %d, want %d", got, http.StatusUnauthorized)
	}
}

func TestGate_ValidToken(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	h := env.server.Handler()
	pair := registerAlice(t, h)

	if got := getMe(t, h, pair.AccessToken); got != http.StatusOK {
		t.Errorf("status with valid token = %d, want %d", got, http.StatusOK)
	}
}
