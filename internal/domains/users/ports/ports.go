package ports

import (
	"context"
	"errors"

	"github.com/sustentabag/business-dashboard/internal/domains/users/domain"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionNotFound    = errors.New("session not found or expired")
)

// Backend is the outbound port to the marketplace auth endpoints.
type Backend interface {
	Login(ctx context.Context, email, password string) (*domain.Grant, error)
	Register(ctx context.Context, reg domain.Registration) (*domain.Grant, error)
}

// SessionStore persists dashboard sessions.
type SessionStore interface {
	Save(ctx context.Context, session *domain.Session) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
	// PurgeExpired removes expired sessions and returns their ids.
	PurgeExpired(ctx context.Context) ([]string, error)
}

// SessionListener is notified when a session ends, so per-session resources
// (order caches) can be discarded.
type SessionListener interface {
	SessionEnded(sessionID string)
}

// LoginResult bundles the signed dashboard token with its session.
type LoginResult struct {
	Token   string
	Session *domain.Session
}

// Service exposes the auth/session use cases to adapters.
type Service interface {
	Login(ctx context.Context, creds domain.Credentials) (*LoginResult, error)
	Register(ctx context.Context, reg domain.Registration) (*LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	Authenticate(ctx context.Context, token string) (*domain.Session, error)
}
