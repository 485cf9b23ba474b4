package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/bartdebruin-tp/matchmaker/internal/dependencies/clock"
	"github.com/bartdebruin-tp/matchmaker/internal/dependencies/ident"
	"github.com/bartdebruin-tp/matchmaker/internal/model"
	"github.com/bartdebruin-tp/matchmaker/internal/remote"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrEmailExists        = errors.New("email already registered")
)

// Session represents an authenticated session
type Session struct {
	Token     string
	UserID    model.UserID
	Email     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Service handles accounts and session management. The process serves a
// single operator at a time: the most recently established session is the
// identity the stores see through the Provider interface.
type Service struct {
	remote remote.Store
	clock  clock.Clock
	ident  ident.Generator
	logger *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
	current  string // token of the live session, empty when signed out

	sessionDuration time.Duration
}

// Config holds configuration for the auth service
type Config struct {
	SessionDuration time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 24 * time.Hour,
	}
}

// New creates a new auth service
func New(remote remote.Store, clk clock.Clock, idg ident.Generator, cfg Config, logger *slog.Logger) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	return &Service{
		remote:          remote,
		clock:           clk,
		ident:           idg,
		logger:          logger,
		sessions:        make(map[string]*Session),
		sessionDuration: cfg.SessionDuration,
	}
}

// Ensure Service implements Provider
var _ Provider = (*Service)(nil)

// Register creates an account and signs it in
func (s *Service) Register(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	_, err := s.remote.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailExists
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := model.User{
		ID:           model.UserID(s.ident.NewID()),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.clock.Now(),
	}

	if err := s.remote.InsertUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", slog.String("user_id", string(user.ID)))
	return s.createSession(user)
}

// Login verifies credentials and establishes a session
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.remote.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.createSession(user)
}

// Logout invalidates a session token
func (s *Service) Logout(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	if s.current == token {
		s.current = ""
	}
}

// ValidateSession returns the session for a token if it is still valid
func (s *Service) ValidateSession(token string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrInvalidSession
	}

	if s.clock.Now().After(session.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		if s.current == token {
			s.current = ""
		}
		s.mu.Unlock()
		return nil, ErrInvalidSession
	}

	return session, nil
}

// CurrentUserID returns the identity of the live session, if any
func (s *Service) CurrentUserID() (model.UserID, bool) {
	s.mu.RLock()
	token := s.current
	s.mu.RUnlock()

	if token == "" {
		return "", false
	}

	session, err := s.ValidateSession(token)
	if err != nil {
		return "", false
	}
	return session.UserID, true
}

// createSession issues a token and makes the session current
func (s *Service) createSession(user model.User) (*Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	session := &Session{
		Token:     token,
		UserID:    user.ID,
		Email:     user.Email,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
	}

	s.mu.Lock()
	s.sessions[token] = session
	s.current = token
	s.mu.Unlock()

	return session, nil
}

// generateToken creates a cryptographically random session token
func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
