// Package auth keeps the signed-in reader of the CLI client and persists it
// between runs.
package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"github.com/Innovatorone/InnoBOOKweb/internal/logger"
	"github.com/Innovatorone/InnoBOOKweb/internal/model"
)

// Authenticator exchanges credentials for an access token.
type Authenticator interface {
	Login(ctx context.Context, phone, password string) (model.LoginResult, error)
	SignUp(ctx context.Context, params model.SignUpParams) (model.LoginResult, error)
}

// sessionFile is the on-disk form of a session.
type sessionFile struct {
	UserID      string    `toml:"user_id"`
	AccessToken string    `toml:"access_token"`
	Name        string    `toml:"name"`
	Phone       string    `toml:"phone"`
	Plan        string    `toml:"plan"`
	SavedAt     time.Time `toml:"saved_at"`
}

// Session holds the current identity and its access token. Identity changes
// are published to subscribers, newest value wins.
type Session struct {
	path   string
	logger *logger.Logger
	now    func() time.Time

	mu     sync.RWMutex
	user   model.User
	token  string
	subs   []chan uuid.UUID
	closed bool
}

// NewSession creates a signed-out session persisted at path. An empty path
// keeps the session in memory only.
func NewSession(path string, logger *logger.Logger) *Session {
	return &Session{
		path:   path,
		logger: logger,
		now:    time.Now,
	}
}

// Identity returns the signed-in user id or uuid.Nil.
func (s *Session) Identity() uuid.UUID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.ID
}

// Token returns the access token of the signed-in user.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the signed-in user.
func (s *Session) User() model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Restore loads a previously saved session. A missing file leaves the
// session signed out; an unreadable one is removed.
func (s *Session) Restore() error {
	if s.path == "" {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read session file: %w", err)
	}

	var file sessionFile
	user, token, err := decode(data, &file)
	if err != nil {
		s.logger.Warn("Session: discarding corrupt session file", "path", s.path, "error", err)
		if rmErr := os.Remove(s.path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			return fmt.Errorf("failed to remove corrupt session file: %w", rmErr)
		}
		return nil
	}

	s.set(user, token)
	s.logger.Debug("Session: restored", "user_id", user.ID, "saved_at", file.SavedAt)
	return nil
}

func decode(data []byte, file *sessionFile) (model.User, string, error) {
	if err := toml.Unmarshal(data, file); err != nil {
		return model.User{}, "", err
	}
	id, err := uuid.Parse(file.UserID)
	if err != nil {
		return model.User{}, "", fmt.Errorf("invalid user id: %w", err)
	}
	if id == uuid.Nil || strings.TrimSpace(file.AccessToken) == "" {
		return model.User{}, "", errors.New("session is incomplete")
	}
	return model.User{ID: id, Name: file.Name, Phone: file.Phone, Plan: file.Plan}, file.AccessToken, nil
}

// Login signs in through a and persists the result.
func (s *Session) Login(ctx context.Context, a Authenticator, phone, password string) (model.User, error) {
	res, err := a.Login(ctx, phone, password)
	if err != nil {
		return model.User{}, err
	}
	return s.start(res)
}

// SignUp registers through a and persists the result.
func (s *Session) SignUp(ctx context.Context, a Authenticator, params model.SignUpParams) (model.User, error) {
	res, err := a.SignUp(ctx, params)
	if err != nil {
		return model.User{}, err
	}
	return s.start(res)
}

func (s *Session) start(res model.LoginResult) (model.User, error) {
	if res.User.ID == uuid.Nil || res.AccessToken == "" {
		return model.User{}, model.ErrUnauthorized
	}
	if err := s.save(res.User, res.AccessToken); err != nil {
		return model.User{}, err
	}
	s.set(res.User, res.AccessToken)
	s.logger.Info("Session: signed in", "user_id", res.User.ID)
	return res.User, nil
}

// Logout forgets the signed-in user and removes the session file.
func (s *Session) Logout() error {
	if s.path != "" {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove session file: %w", err)
		}
	}
	prev := s.Identity()
	s.set(model.User{}, "")
	if prev != uuid.Nil {
		s.logger.Info("Session: signed out", "user_id", prev)
	}
	return nil
}

// Subscribe returns a channel that receives the current identity right away
// and every later change. A slow reader only sees the latest identity.
func (s *Session) Subscribe() <-chan uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan uuid.UUID, 1)
	if s.closed {
		close(ch)
		return ch
	}
	ch <- s.user.ID
	s.subs = append(s.subs, ch)
	return ch
}

// Close closes every subscription channel.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for _, ch := range s.subs {
		close(ch)
	}
	s.subs = nil
}

func (s *Session) set(user model.User, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := s.user.ID != user.ID
	s.user = user
	s.token = token
	if !changed {
		return
	}
	for _, ch := range s.subs {
		publish(ch, user.ID)
	}
}

// publish replaces any unread value in ch with identity.
func publish(ch chan uuid.UUID, identity uuid.UUID) {
	select {
	case <-ch:
	default:
	}
	ch <- identity
}

// save writes the session atomically with owner-only permissions.
func (s *Session) save(user model.User, token string) error {
	if s.path == "" {
		return nil
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*.toml")
	if err != nil {
		return fmt.Errorf("failed to create session file: %w", err)
	}
	defer os.Remove(tmp.Name())

	file := sessionFile{
		UserID:      user.ID.String(),
		AccessToken: token,
		Name:        user.Name,
		Phone:       user.Phone,
		Plan:        user.Plan,
		SavedAt:     s.now().UTC(),
	}
	if err := toml.NewEncoder(tmp).Encode(file); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		return fmt.Errorf("failed to set session file permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to save session file: %w", err)
	}
	return nil
}
