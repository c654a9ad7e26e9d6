// Package session holds the authenticated session of the dashboard: the
// bearer token and the profile of the signed-in user. The token is mirrored
// to local storage so a restarted client can resume.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/myadmin/internal/client/models"
	"github.com/dmitrijs2005/myadmin/internal/client/repositories/localstore"
	"github.com/dmitrijs2005/myadmin/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

type State int

const (
	Anonymous State = iota
	Authenticating
	Authenticated
)

func (s State) String() string {
	switch s {
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// Session is safe for concurrent use; in-flight requests read the token
// while the auth flow writes it.
type Session struct {
	mu     sync.RWMutex
	store  localstore.Repository
	token  string
	user   *models.User
	state  State
	nowFn  func() time.Time
	parser *jwt.Parser
}

func New(store localstore.Repository) *Session {
	return &Session{
		store:  store,
		nowFn:  time.Now,
		parser: jwt.NewParser(),
	}
}

// Restore loads the persisted token. The user stays unknown until the
// profile is fetched.
func (s *Session) Restore(ctx context.Context) error {
	token, err := s.store.Get(ctx, common.TokenKey)
	if errors.Is(err, common.ErrorNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("restore token: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// IsAuthenticated holds iff both a token and a user are present.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user != nil
}

func (s *Session) BeginAuth() {
	s.mu.Lock()
	s.state = Authenticating
	s.mu.Unlock()
}

// SetToken stores token in memory and in local storage.
func (s *Session) SetToken(ctx context.Context, token string) error {
	if err := s.store.Set(ctx, common.TokenKey, token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

func (s *Session) SetUser(u *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
	if u != nil && s.token != "" {
		s.state = Authenticated
	}
}

// Clear drops token and user and removes the persisted token. The in-memory
// state is cleared even when local storage fails.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.state = Anonymous
	s.mu.Unlock()

	if err := s.store.Delete(ctx, common.TokenKey); err != nil {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}

// Expired reports whether the token is a JWT whose exp lies in the past.
// Opaque tokens never expire client-side.
func (s *Session) Expired() bool {
	token := s.Token()
	if token == "" {
		return false
	}

	claims := jwt.MapClaims{}
	if _, _, err := s.parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !exp.After(s.nowFn())
}
