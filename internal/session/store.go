// Package session holds the single authenticated administrator session for
// the console process and its durable credential persistence.
package session

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/louisbranch/assetdeck/internal/api"
	"github.com/louisbranch/assetdeck/internal/assets"
	apperrors "github.com/louisbranch/assetdeck/internal/platform/errors"
)

// Authenticator performs the remote login call. *api.Client satisfies it.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (api.LoginResult, error)
}

// Store owns the process-wide session state. It is mutated only by Restore,
// Login and Logout, and the loading flag makes those mutually exclusive: a
// second Login while one is outstanding is rejected rather than interleaved.
type Store struct {
	auth    Authenticator
	storage CredentialStorage
	now     func() time.Time

	mu      sync.Mutex
	loading bool
	current *assets.Session
}

// New creates a session store. Storage is required; auth may be nil for
// consumers that only restore and read.
func New(auth Authenticator, storage CredentialStorage) *Store {
	return &Store{
		auth:    auth,
		storage: storage,
		now:     time.Now,
	}
}

// Loading reports whether a login or restore is in flight. Consumers must
// not render protected content while true.
func (s *Store) Loading() bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Current returns a copy of the active session, or nil when unauthenticated.
func (s *Store) Current() *assets.Session {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	copied := *s.current
	return &copied
}

// Token returns the active bearer token. It satisfies api.TokenSource; an
// empty return means the next request goes out unauthenticated.
func (s *Store) Token() string {
	if s == nil {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

// Restore rebuilds the session from persisted credentials. It never touches
// the network: missing, partial or unparseable credentials clear the
// persisted remnants and leave the session empty.
func (s *Store) Restore(ctx context.Context) error {
	if s == nil || s.storage == nil {
		return apperrors.New(apperrors.CodeStorageFailure, "credential storage is not configured")
	}
	if err := s.begin(); err != nil {
		return err
	}
	defer s.finish()

	creds, found, err := s.storage.Load(ctx)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeStorageFailure, "load persisted credentials", err)
	}
	if !found {
		return nil
	}

	var user assets.User
	if strings.TrimSpace(creds.Token) == "" || json.Unmarshal(creds.ProfileJSON, &user) != nil {
		_ = s.storage.Clear(ctx)
		return nil
	}
	if tokenExpired(creds.Token, s.now()) {
		_ = s.storage.Clear(ctx)
		return nil
	}

	s.mu.Lock()
	s.current = &assets.Session{User: user, Token: creds.Token, CreatedAt: s.now()}
	s.mu.Unlock()
	return nil
}

// Login exchanges credentials for a session, persisting the token and
// profile on success. Failures leave both the session and the persisted
// state untouched; no partial token is ever written.
func (s *Store) Login(ctx context.Context, email, password string) (bool, error) {
	if s == nil || s.auth == nil || s.storage == nil {
		return false, apperrors.New(apperrors.CodeUnknown, "session store is not configured")
	}
	if err := s.begin(); err != nil {
		return false, err
	}
	defer s.finish()

	result, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return false, err
	}
	if strings.TrimSpace(result.Token) == "" {
		return false, apperrors.New(apperrors.CodeAuthInvalidCredentials, "login response carried no token")
	}

	user := userFromToken(result.Token, email)
	profile, err := json.Marshal(user)
	if err != nil {
		return false, apperrors.Wrap(apperrors.CodeUnknown, "encode user profile", err)
	}
	if err := s.storage.Save(ctx, Credentials{Token: result.Token, ProfileJSON: profile}); err != nil {
		return false, apperrors.Wrap(apperrors.CodeStorageFailure, "persist credentials", err)
	}

	s.mu.Lock()
	s.current = &assets.Session{User: user, Token: result.Token, CreatedAt: s.now()}
	s.mu.Unlock()
	return true, nil
}

// Logout clears the persisted credentials and empties the session. No
// server-side invalidation call is made, so it works offline.
func (s *Store) Logout(ctx context.Context) error {
	if s == nil || s.storage == nil {
		return apperrors.New(apperrors.CodeStorageFailure, "credential storage is not configured")
	}
	if err := s.begin(); err != nil {
		return err
	}
	defer s.finish()

	err := s.storage.Clear(ctx)
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	if err != nil {
		return apperrors.Wrap(apperrors.CodeStorageFailure, "clear persisted credentials", err)
	}
	return nil
}

func (s *Store) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading {
		return apperrors.New(apperrors.CodeAuthLoginInFlight, "a session operation is already in progress")
	}
	s.loading = true
	return nil
}

func (s *Store) finish() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

// tokenExpired reports whether token is a JWT whose exp claim has passed.
// Opaque tokens carry no client-readable expiry and are kept; the server
// rejects them if stale.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	expiry, err := claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return false
	}
	return expiry.Before(now)
}

// userFromToken derives the administrator profile from JWT claims when the
// token carries them, with stable fallbacks for opaque tokens.
func userFromToken(token, email string) assets.User {
	user := assets.User{ID: "admin", Email: email, DisplayName: "Administrator"}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return user
	}
	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		user.ID = sub
	}
	if claimed, ok := claims["email"].(string); ok && claimed != "" {
		user.Email = claimed
	}
	if name, ok := claims["name"].(string); ok && name != "" {
		user.DisplayName = name
	}
	return user
}
