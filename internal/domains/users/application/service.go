package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	client "github.com/sustentabag/business-dashboard/internal/clients/http/sustentabag"
	"github.com/sustentabag/business-dashboard/internal/domains/users/domain"
	"github.com/sustentabag/business-dashboard/internal/domains/users/ports"
)

var (
	ErrTokenInvalid = errors.New("session token is invalid")
	ErrTokenExpired = errors.New("session token has expired")
)

// DefaultSessionTTL bounds a dashboard session when no TTL is configured.
const DefaultSessionTTL = 24 * time.Hour

// Service owns dashboard sessions: it exchanges merchant credentials for a
// backend grant, stores the session, and signs/validates the JWT the browser
// holds.
type Service struct {
	backend   ports.Backend
	sessions  ports.SessionStore
	secret    []byte
	ttl       time.Duration
	listeners []ports.SessionListener
	logger    *slog.Logger
	now       func() time.Time
}

// Option configures the Service.
type Option func(*Service)

// WithTTL overrides the session lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithListener registers a session-end listener.
func WithListener(l ports.SessionListener) Option {
	return func(s *Service) {
		if l != nil {
			s.listeners = append(s.listeners, l)
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService builds the session service.
func NewService(backend ports.Backend, sessions ports.SessionStore, secret string, opts ...Option) *Service {
	s := &Service{
		backend:  backend,
		sessions: sessions,
		secret:   []byte(secret),
		ttl:      DefaultSessionTTL,
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Login validates credentials, obtains a backend grant and opens a session.
func (s *Service) Login(ctx context.Context, creds domain.Credentials) (*ports.LoginResult, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	grant, err := s.backend.Login(ctx, creds.Email, creds.Password)
	if err != nil {
		return nil, mapAuthError(err)
	}
	return s.openSession(ctx, grant)
}

// Register creates the merchant account and opens a session from the
// resulting grant, so a fresh registration lands logged in.
func (s *Service) Register(ctx context.Context, reg domain.Registration) (*ports.LoginResult, error) {
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	grant, err := s.backend.Register(ctx, reg)
	if err != nil {
		return nil, mapAuthError(err)
	}
	return s.openSession(ctx, grant)
}

func (s *Service) openSession(ctx context.Context, grant *domain.Grant) (*ports.LoginResult, error) {
	now := s.now()
	session := &domain.Session{
		ID:         uuid.NewString(),
		Token:      grant.Token,
		UserID:     grant.UserID,
		Email:      grant.Email,
		BusinessID: grant.BusinessID,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.ttl),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	signed, err := s.signToken(session, now)
	if err != nil {
		return nil, err
	}
	if s.logger != nil {
		s.logger.LogAttrs(ctx, slog.LevelInfo, "session opened",
			slog.String("session.id", session.ID),
			slog.Int64("business.id", session.BusinessID))
	}
	return &ports.LoginResult{Token: signed, Session: session}, nil
}

// Logout ends the session and notifies listeners.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return err
	}
	s.notifyEnded(sessionID)
	return nil
}

// Authenticate resolves a signed dashboard token to its live session.
func (s *Service) Authenticate(ctx context.Context, token string) (*domain.Session, error) {
	sessionID, err := s.parseToken(token)
	if err != nil {
		return nil, err
	}
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Expired(s.now()) {
		_ = s.sessions.Delete(ctx, sessionID)
		s.notifyEnded(sessionID)
		return nil, ports.ErrSessionNotFound
	}
	return session, nil
}

// StartPurging runs the expired-session sweep until ctx is cancelled.
func (s *Service) StartPurging(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				ended, err := s.sessions.PurgeExpired(ctx)
				if err != nil {
					if s.logger != nil {
						s.logger.LogAttrs(ctx, slog.LevelWarn, "session purge failed", slog.String("error", err.Error()))
					}
					continue
				}
				for _, id := range ended {
					s.notifyEnded(id)
				}
				if len(ended) > 0 && s.logger != nil {
					s.logger.LogAttrs(ctx, slog.LevelInfo, "purged expired sessions", slog.Int("count", len(ended)))
				}
			}
		}
	}()
}

func (s *Service) notifyEnded(sessionID string) {
	for _, l := range s.listeners {
		l.SessionEnded(sessionID)
	}
}

func (s *Service) signToken(session *domain.Session, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   session.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

func (s *Service) parseToken(raw string) (string, error) {
	parsed, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return "", ErrTokenInvalid
	}
	return claims.Subject, nil
}

// mapAuthError turns a backend rejection of credentials into the typed
// invalid-credentials error; everything else passes through unchanged.
func mapAuthError(err error) error {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) &&
		(apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden) {
		return ports.ErrInvalidCredentials
	}
	return err
}

var _ ports.Service = (*Service)(nil)
