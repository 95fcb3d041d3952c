package auth

import (
	"context"
	"fmt"
	"sync"

	"github.com/pageza/cookbook/backend/internal/types"
)

// Authenticator is the remote side of a session.
type Authenticator interface {
	Register(ctx context.Context, email, password string) (*types.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*types.AuthResponse, error)
	Logout(ctx context.Context, token string) error
}

// Snapshot is the session state observed by subscribers. User is nil when
// signed out.
type Snapshot struct {
	Token string             `json:"token"`
	User  *types.CurrentUser `json:"user"`
}

// SignedIn reports whether the snapshot carries a user.
func (s Snapshot) SignedIn() bool {
	return s.User != nil && s.Token != ""
}

// Session holds the current-user snapshot of a client and notifies
// subscribers on every change.
type Session struct {
	auth Authenticator

	mu     sync.RWMutex
	state  Snapshot
	nextID int
	subs   map[int]func(Snapshot)
}

// NewSession creates a signed-out session.
func NewSession(auth Authenticator) *Session {
	return &Session{auth: auth, subs: make(map[int]func(Snapshot))}
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySnapshot(s.state)
}

// CurrentUser implements favorites.CurrentUserSource.
func (s *Session) CurrentUser(context.Context) (types.CurrentUser, bool) {
	snap := s.Snapshot()
	if !snap.SignedIn() {
		return types.CurrentUser{}, false
	}
	return *snap.User, true
}

// Token is the bearer token of the signed-in user, empty when signed out.
func (s *Session) Token() string {
	return s.Snapshot().Token
}

// Subscribe registers fn for state changes and immediately delivers the
// current state. The returned func unsubscribes.
func (s *Session) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	snap := copySnapshot(s.state)
	s.mu.Unlock()

	fn(snap)
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Restore replaces the state, e.g. with a snapshot loaded from disk.
func (s *Session) Restore(snap Snapshot) {
	s.set(snap)
}

// Register creates an account and signs in.
func (s *Session) Register(ctx context.Context, email, password string) error {
	resp, err := s.auth.Register(ctx, email, password)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	s.signIn(resp)
	return nil
}

// Login signs in with existing credentials.
func (s *Session) Login(ctx context.Context, email, password string) error {
	resp, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	s.signIn(resp)
	return nil
}

// Logout signs out locally even when the remote call fails; the remote error
// is still returned.
func (s *Session) Logout(ctx context.Context) error {
	token := s.Token()
	var err error
	if token != "" {
		err = s.auth.Logout(ctx, token)
	}
	s.set(Snapshot{})
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (s *Session) signIn(resp *types.AuthResponse) {
	user := resp.User
	s.set(Snapshot{Token: resp.Token, User: &user})
}

func (s *Session) set(snap Snapshot) {
	s.mu.Lock()
	s.state = copySnapshot(snap)
	subs := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(copySnapshot(snap))
	}
}

func copySnapshot(s Snapshot) Snapshot {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}
