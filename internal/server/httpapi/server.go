package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/pentalign/backend/internal/logging"
	"github.com/pentalign/backend/internal/server/auth"
	"github.com/pentalign/backend/internal/server/services"
)

// Server serves the authentication API and applies the authentication gate
// to every request.
type Server struct {
	address string
	logger  logging.Logger
	auth    *services.AuthService
	codec   *auth.Codec
}

// NewServer constructs an HTTP server bound to the given address.
func NewServer(address string, l logging.Logger, as *services.AuthService, codec *auth.Codec) *Server {
	return &Server{
		address: address,
		logger:  l.With("module", "httpapi"),
		auth:    as,
		codec:   codec,
	}
}

// Handler builds the route table wrapped in the authentication gate.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/auth/refresh", s.handleRefresh)
	mux.HandleFunc("POST /api/auth/logout", s.handleLogout)
	mux.HandleFunc("GET /api/users/me", s.handleMe)

	return s.authenticate(mux)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "error during shutdown", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
