// Package session holds the only cross-screen shared state: the
// authenticated user. Many components read it; writes happen solely through
// the login/logout/refresh flows here, one at a time.
package session

import (
	"context"
	"log/slog"
	"sync"

	"futsalku-client/internal/api/request"
	"futsalku-client/internal/api/response"
	"futsalku-client/internal/pkg/errs"
)

// AuthAPI is the slice of the REST client the store needs.
type AuthAPI interface {
	Login(ctx context.Context, req request.LoginRequest) (*response.User, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*response.User, error)
}

type Store struct {
	api    AuthAPI
	logger *slog.Logger

	mu   sync.RWMutex
	user *response.User
}

func NewStore(api AuthAPI, logger *slog.Logger) *Store {
	return &Store{api: api, logger: logger}
}

func (s *Store) Login(ctx context.Context, email, password string) (*response.User, error) {
	user, err := s.api.Login(ctx, request.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	s.logger.Info("logged in", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// Logout drops the local session unconditionally. The server call may fail
// on a dead connection, but the client must not keep acting logged in.
func (s *Store) Logout(ctx context.Context) error {
	err := s.api.Logout(ctx)

	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("logout call failed, local session dropped anyway", "error", err)
		return err
	}
	return nil
}

// Refresh re-reads the current user from the server (the getMe flow). An
// unauthorized answer means the session cookie died; the local user is
// cleared so role-gated screens redirect.
func (s *Store) Refresh(ctx context.Context) (*response.User, error) {
	user, err := s.api.Me(ctx)
	if err != nil {
		if errs.Is(err, errs.ErrUnauthorized) {
			s.mu.Lock()
			s.user = nil
			s.mu.Unlock()
			return nil, errs.Mark(err, errs.ErrNotLoggedIn)
		}
		return nil, err
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return user, nil
}

func (s *Store) Current() (response.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return response.User{}, false
	}
	return *s.user, true
}

func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.user.IsAdmin()
}

// RequireAdmin gates the back-office screens. A role mismatch is a redirect
// condition for the caller, not an inline error.
func (s *Store) RequireAdmin() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch {
	case s.user == nil:
		return errs.ErrNotLoggedIn
	case !s.user.IsAdmin():
		return errs.ErrForbidden
	}
	return nil
}
