package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	usersdomain "github.com/sustentabag/business-dashboard/internal/domains/users/domain"
	usersports "github.com/sustentabag/business-dashboard/internal/domains/users/ports"
)

const tracerName = "github.com/sustentabag/business-dashboard/internal/domains/users/adapters/observability/service"

// Service decorates the session service with tracing, logging, and metrics.
// Credentials and tokens are never recorded; only session and business ids.
type Service struct {
	inner   usersports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core session service.
func New(inner usersports.Service, opts ...Option) usersports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) Login(ctx context.Context, creds usersdomain.Credentials) (*usersports.LoginResult, error) {
	ctx, span := s.tracer.Start(ctx, "SessionService.Login")
	defer span.End()

	result, err := s.inner.Login(ctx, creds)
	if err != nil {
		s.metrics.recordLogin(ctx, false)
		return nil, s.handleError(ctx, span, err, "login failed")
	}
	s.metrics.recordLogin(ctx, true)
	span.SetAttributes(attribute.Int64("business.id", result.Session.BusinessID))
	s.logInfo(ctx, "merchant logged in",
		slog.String("session.id", result.Session.ID),
		slog.Int64("business.id", result.Session.BusinessID))
	return result, nil
}

func (s *Service) Register(ctx context.Context, reg usersdomain.Registration) (*usersports.LoginResult, error) {
	ctx, span := s.tracer.Start(ctx, "SessionService.Register")
	defer span.End()

	result, err := s.inner.Register(ctx, reg)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "registration failed")
	}
	span.SetAttributes(attribute.Int64("business.id", result.Session.BusinessID))
	s.logInfo(ctx, "merchant registered",
		slog.String("session.id", result.Session.ID),
		slog.Int64("business.id", result.Session.BusinessID))
	return result, nil
}

func (s *Service) Logout(ctx context.Context, sessionID string) error {
	ctx, span := s.tracer.Start(ctx, "SessionService.Logout",
		trace.WithAttributes(attribute.String("session.id", sessionID)))
	defer span.End()

	if err := s.inner.Logout(ctx, sessionID); err != nil {
		return s.handleError(ctx, span, err, "logout failed", slog.String("session.id", sessionID))
	}
	s.logInfo(ctx, "session ended", slog.String("session.id", sessionID))
	return nil
}

func (s *Service) Authenticate(ctx context.Context, token string) (*usersdomain.Session, error) {
	ctx, span := s.tracer.Start(ctx, "SessionService.Authenticate")
	defer span.End()

	session, err := s.inner.Authenticate(ctx, token)
	if err != nil {
		s.metrics.recordRejectedToken(ctx)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.String("session.id", session.ID))
	return session, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelWarn, msg, attrs...)
	}
	return err
}

type serviceMetrics struct {
	logins         metric.Int64Counter
	rejectedTokens metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	logins, _ := m.Int64Counter("sessions.service.logins", metric.WithDescription("Number of login attempts"))
	rejected, _ := m.Int64Counter("sessions.service.rejected_tokens", metric.WithDescription("Number of rejected session tokens"))
	return serviceMetrics{logins: logins, rejectedTokens: rejected}
}

func (m serviceMetrics) recordLogin(ctx context.Context, success bool) {
	if m.logins != nil {
		m.logins.Add(ctx, 1, metric.WithAttributes(attribute.Bool("login.success", success)))
	}
}

func (m serviceMetrics) recordRejectedToken(ctx context.Context) {
	if m.rejectedTokens != nil {
		m.rejectedTokens.Add(ctx, 1)
	}
}

var _ usersports.Service = (*Service)(nil)
