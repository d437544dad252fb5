// Package store holds the console's two state containers: the auth session
// and the admin resource collections. Both are owned by the composition root
// and hand out immutable snapshots; consumers subscribe for change
// notifications instead of sharing mutable state.
package store

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/panelworks/admin-console/internal/core/domain"
	"github.com/panelworks/admin-console/internal/core/ports"
)

// AuthSnapshot is an immutable view of the session state.
type AuthSnapshot struct {
	User    *domain.AuthUser
	Loading bool
	Err     string
}

// AuthStore tracks the authenticated user. It is unauthenticated until a
// login or signup succeeds, and returns to that state on logout or when any
// backend call answers 401.
type AuthStore struct {
	mu       sync.Mutex
	user     *domain.AuthUser
	loading  bool
	err      string
	redirect bool

	api  ports.AuthAPI
	log  zerolog.Logger
	subs map[int]func(AuthSnapshot)
	next int
}

func NewAuthStore(api ports.AuthAPI, log zerolog.Logger) *AuthStore {
	return &AuthStore{
		api:  api,
		log:  log,
		subs: make(map[int]func(AuthSnapshot)),
	}
}

// Login authenticates against the backend and stores the decoded identity.
// On failure the error message is recorded and the user stays unset.
func (s *AuthStore) Login(ctx context.Context, email, password string) error {
	s.set(func() {
		s.loading = true
		s.err = ""
	})

	user, err := s.api.Login(ctx, email, password)
	if err != nil {
		msg := errorMessage(err, "failed to login")
		s.set(func() {
			s.loading = false
			s.err = msg
		})
		s.log.Warn().Err(err).Str("email", email).Msg("login failed")
		return err
	}

	s.set(func() {
		s.user = user
		s.loading = false
	})
	s.log.Info().Str("user_id", user.ID).Str("role_id", user.RoleID).Msg("login succeeded")
	return nil
}

// Signup creates an account and authenticates it in one step.
func (s *AuthStore) Signup(ctx context.Context, email, password, name string, isAdmin bool) error {
	s.set(func() {
		s.loading = true
		s.err = ""
	})

	user, err := s.api.Signup(ctx, ports.SignupInput{
		Email:    email,
		Password: password,
		Name:     name,
		IsAdmin:  isAdmin,
	})
	if err != nil {
		msg := errorMessage(err, "failed to create account")
		s.set(func() {
			s.loading = false
			s.err = msg
		})
		s.log.Warn().Err(err).Str("email", email).Msg("signup failed")
		return err
	}

	s.set(func() {
		s.user = user
		s.loading = false
	})
	return nil
}

// Logout discards the stored token and the in-memory session synchronously.
// There is no server round-trip.
func (s *AuthStore) Logout() {
	if err := s.api.Logout(); err != nil {
		s.log.Warn().Err(err).Msg("clearing stored token failed")
	}
	s.set(func() {
		s.user = nil
		s.err = ""
	})
}

// Expire is the 401 hook: it drops the session and flags a forced navigation
// to the root path, which the view surface consumes exactly once.
func (s *AuthStore) Expire() {
	s.set(func() {
		s.user = nil
		s.redirect = true
	})
	s.log.Warn().Msg("session expired, forcing navigation to root")
}

// ConsumeRedirect reports whether a forced navigation is pending and clears
// the flag.
func (s *AuthStore) ConsumeRedirect() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	pending := s.redirect
	s.redirect = false
	return pending
}

// Snapshot returns a copy of the current session state.
func (s *AuthStore) Snapshot() AuthSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers fn for change notifications and returns its
// unsubscribe function. fn runs outside the store lock.
func (s *AuthStore) Subscribe(fn func(AuthSnapshot)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next
	s.next++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *AuthStore) snapshotLocked() AuthSnapshot {
	snap := AuthSnapshot{Loading: s.loading, Err: s.err}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}

// set applies a mutation under the lock, then notifies subscribers with the
// resulting snapshot outside of it.
func (s *AuthStore) set(mutate func()) {
	s.mu.Lock()
	mutate()
	snap := s.snapshotLocked()
	subs := make([]func(AuthSnapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

// errorMessage prefers the backend-supplied message and falls back to the
// given generic string when the failure carried none. Transport errors and
// token decode failures both land on the fallback, so a malformed token
// surfaces like any other failed login.
func errorMessage(err error, fallback string) string {
	var se *domain.ServerError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return fallback
}
