package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"eventers-marketplace-client/codec"
	"eventers-marketplace-client/logger"
	"eventers-marketplace-client/model"
)

var (
	ErrNoSession = errors.New("You need to log in first")
	ErrForbidden = errors.New("You do not have access to this page")
)

type Session struct {
	Token     string     `json:"token"`
	User      model.User `json:"user"`
	StartedAt time.Time  `json:"startedAt"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// Manager owns the logged-in state of the CLI. It is created once, loaded
// from disk, and passed to whatever needs the token or the current user.
type Manager struct {
	mu      sync.RWMutex
	path    string
	codec   *codec.Codec
	current *Session
	now     func() time.Time
}

// NewManager persists to path. When secret is empty the session file is
// stored as plain JSON readable only by the owner.
func NewManager(path, secret string) (*Manager, error) {
	p, err := expandHome(path)
	if err != nil {
		return nil, fmt.Errorf("newManager: %w", err)
	}
	m := &Manager{path: p, now: time.Now}
	if secret != "" {
		m.codec, err = codec.New(secret)
		if err != nil {
			return nil, fmt.Errorf("newManager: %w", err)
		}
	}
	return m, nil
}

func expandHome(path string) (string, error) {
	if path == "" || !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error resolving home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

func (m *Manager) Path() string {
	return m.path
}

// Load restores a persisted session. A missing file is not an error; an
// expired or unreadable one is discarded.
func (m *Manager) Load(ctx context.Context) error {
	if m.path == "" {
		return nil
	}
	raw, err := os.ReadFile(m.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load: error reading session file: %w", err)
	}

	var s Session
	if err := m.decode(raw, &s); err != nil {
		logger.Warnf(ctx, "load: discarding unreadable session: %v", err)
		return m.remove()
	}
	if s.expired(m.now()) {
		logger.Infof(ctx, "session for %s expired", s.User.Email)
		return m.remove()
	}

	m.mu.Lock()
	m.current = &s
	m.mu.Unlock()
	return nil
}

// Begin starts a session from a successful login or OTP verification.
func (m *Manager) Begin(ctx context.Context, auth model.Auth) error {
	if auth.Token == "" {
		return errors.New("begin: empty token")
	}
	s := Session{Token: auth.Token, User: auth.User, StartedAt: m.now().UTC()}
	exp, ok, err := tokenExpiry(auth.Token)
	if err != nil {
		logger.Debugf(ctx, "begin: token has no readable claims: %v", err)
	} else if ok {
		s.ExpiresAt = &exp
	}
	if s.User.ID == "" {
		s.User.ID = tokenSubject(auth.Token)
	}

	m.mu.Lock()
	m.current = &s
	m.mu.Unlock()

	if err := m.persist(s); err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	logger.Infof(ctx, "session started for %s", s.User.Email)
	return nil
}

// End tears the session down and removes its file.
func (m *Manager) End(ctx context.Context) error {
	m.mu.Lock()
	had := m.current != nil
	m.current = nil
	m.mu.Unlock()

	if err := m.remove(); err != nil {
		return fmt.Errorf("end: %w", err)
	}
	if had {
		logger.Info(ctx, "session ended")
	}
	return nil
}

// UpdateUser refreshes the cached user after a profile change.
func (m *Manager) UpdateUser(u model.User) error {
	m.mu.Lock()
	if m.current == nil {
		m.mu.Unlock()
		return ErrNoSession
	}
	m.current.User = u
	s := *m.current
	m.mu.Unlock()
	return m.persist(s)
}

func (m *Manager) Current() (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil || m.current.expired(m.now()) {
		return Session{}, false
	}
	return *m.current, true
}

func (m *Manager) User() (model.User, bool) {
	s, ok := m.Current()
	return s.User, ok
}

// Token implements the client's token source. No session yields an empty
// token and the request goes out unauthenticated.
func (m *Manager) Token(context.Context) (string, error) {
	s, ok := m.Current()
	if !ok {
		return "", nil
	}
	return s.Token, nil
}

// RequireRole returns the current user when it holds one of roles. With no
// roles any logged-in user passes.
func (m *Manager) RequireRole(roles ...model.Role) (model.User, error) {
	u, ok := m.User()
	if !ok {
		return model.User{}, ErrNoSession
	}
	if len(roles) == 0 {
		return u, nil
	}
	for _, r := range roles {
		if u.Role == r {
			return u, nil
		}
	}
	return model.User{}, ErrForbidden
}

func (s Session) expired(now time.Time) bool {
	return s.ExpiresAt != nil && !now.Before(*s.ExpiresAt)
}

func (m *Manager) persist(s Session) error {
	if m.path == "" {
		return nil
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("persist: error encoding session: %w", err)
	}
	if m.codec != nil {
		sealed, err := m.codec.Seal(raw)
		if err != nil {
			return fmt.Errorf("persist: %w", err)
		}
		raw = []byte(sealed)
	}
	if err := os.MkdirAll(filepath.Dir(m.path), 0o700); err != nil {
		return fmt.Errorf("persist: error creating session directory: %w", err)
	}
	if err := os.WriteFile(m.path, raw, 0o600); err != nil {
		return fmt.Errorf("persist: error writing session file: %w", err)
	}
	return nil
}

func (m *Manager) decode(raw []byte, s *Session) error {
	if m.codec != nil {
		opened, err := m.codec.Open(strings.TrimSpace(string(raw)))
		if err != nil {
			return err
		}
		raw = opened
	}
	return json.Unmarshal(raw, s)
}

func (m *Manager) remove() error {
	if m.path == "" {
		return nil
	}
	if err := os.Remove(m.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("error removing session file: %w", err)
	}
	return nil
}
