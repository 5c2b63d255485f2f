package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/vanguardgg/sitecms/internal/dependencies/clock"
	"github.com/vanguardgg/sitecms/internal/model"
	"github.com/vanguardgg/sitecms/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")
)

// Config holds configuration for the auth service
type Config struct {
	SessionDuration time.Duration
	// Secret signs session tokens; changing it logs everyone out
	Secret string
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 24 * time.Hour,
	}
}

// Service handles admin authentication and session management
type Service struct {
	admins   storage.AdminStorage
	sessions storage.SessionStorage
	clock    clock.Clock
	cfg      Config
	logger   *slog.Logger
}

// New creates a new auth Service
func New(admins storage.AdminStorage, sessions storage.SessionStorage, clock clock.Clock, cfg Config, logger *slog.Logger) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	return &Service{
		admins:   admins,
		sessions: sessions,
		clock:    clock,
		cfg:      cfg,
		logger:   logger,
	}
}

// SessionDuration is how long a new session stays valid
func (s *Service) SessionDuration() time.Duration {
	return s.cfg.SessionDuration
}

// Login checks the credentials and stores a new session. The returned token
// is what goes in the session cookie.
func (s *Service) Login(ctx context.Context, username, password string) (*model.Session, string, error) {
	if username == "" || password == "" {
		return nil, "", ErrInvalidCredentials
	}

	admin, err := s.admins.GetAdminByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrAdminNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	now := s.clock.Now()
	session := &model.Session{
		ID:        uuid.NewString(),
		AdminID:   admin.ID,
		Username:  admin.Username,
		Role:      admin.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.SessionDuration),
	}
	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return nil, "", err
	}

	s.logger.Info("admin logged in", slog.String("username", admin.Username))
	return session, s.sign(session.ID), nil
}

// ValidateSession resolves a cookie token to its live session
func (s *Service) ValidateSession(ctx context.Context, token string) (*model.Session, error) {
	id, ok := s.verify(token)
	if !ok {
		return nil, ErrInvalidSession
	}

	session, err := s.sessions.GetSession(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}

	if session.Expired(s.clock.Now()) {
		if err := s.sessions.DeleteSession(ctx, id); err != nil {
			s.logger.Warn("failed to delete expired session", slog.String("error", err.Error()))
		}
		return nil, ErrInvalidSession
	}

	return session, nil
}

// Logout removes the session behind a token. Unknown or forged tokens are
// ignored.
func (s *Service) Logout(ctx context.Context, token string) error {
	id, ok := s.verify(token)
	if !ok {
		return nil
	}
	return s.sessions.DeleteSession(ctx, id)
}

// CreateAdmin hashes the password and stores a new administrator
func (s *Service) CreateAdmin(ctx context.Context, username, password, role string) (*model.Admin, error) {
	if username == "" {
		return nil, model.NewValidationError("username", "is required")
	}
	if password == "" {
		return nil, model.NewValidationError("password", "is required")
	}
	if role == "" {
		role = model.DefaultAdminRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin := &model.Admin{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    s.clock.Now(),
	}
	if err := s.admins.CreateAdmin(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// EnsureDefaultAdmin creates the configured administrator when no admin
// exists yet. It reports whether one was created.
func (s *Service) EnsureDefaultAdmin(ctx context.Context, username, password, role string) (bool, error) {
	count, err := s.admins.CountAdmins(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	admin, err := s.CreateAdmin(ctx, username, password, role)
	if err != nil {
		// Another instance seeded first
		if errors.Is(err, model.ErrUsernameTaken) {
			return false, nil
		}
		return false, err
	}

	s.logger.Warn("default admin created; change this password",
		slog.String("username", admin.Username),
		slog.String("password", password),
	)
	return true, nil
}

// sign returns "<id>.<signature>"
func (s *Service) sign(id string) string {
	return id + "." + s.signature(id)
}

// verify checks a token's signature and returns the session id it carries
func (s *Service) verify(token string) (string, bool) {
	id, sig, ok := strings.Cut(token, ".")
	if !ok || id == "" {
		return "", false
	}
	expected := s.signature(id)
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return "", false
	}
	return id, true
}

func (s *Service) signature(id string) string {
	mac := hmac.New(sha256.New, []byte(s.cfg.Secret))
	mac.Write([]byte(id))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
