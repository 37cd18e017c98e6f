package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	ordersdomain "github.com/sustentabag/business-dashboard/internal/domains/orders/domain"
	ordersports "github.com/sustentabag/business-dashboard/internal/domains/orders/ports"
)

const tracerName = "github.com/sustentabag/business-dashboard/internal/domains/orders/adapters/observability/service"

// Service decorates the orders service with tracing, logging, and metrics.
type Service struct {
	inner   ordersports.Service
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

// New wraps the core orders service.
func New(inner ordersports.Service, opts ...Option) ordersports.Service {
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

func (s *Service) List(ctx context.Context, query ordersports.ListQuery) (*ordersports.Page, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.List",
		trace.WithAttributes(
			attribute.String("orders.tab", query.Tab),
			attribute.String("orders.date_range", string(query.DateRange)),
			attribute.Int("orders.page", query.Page),
		))
	defer span.End()

	result, err := s.inner.List(ctx, query)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders")
	}
	s.metrics.recordListed(ctx, result.TotalMatched)
	span.SetAttributes(attribute.Int("orders.matched", result.TotalMatched))
	s.logInfo(ctx, "orders listed",
		slog.Int("matched", result.TotalMatched),
		slog.Int("page", result.Page),
		slog.Int("total_pages", result.TotalPages))
	return result, nil
}

func (s *Service) Get(ctx context.Context, id string) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.Get",
		trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	result, err := s.inner.Get(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.String("order.id", id))
	}
	return result, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id string, status ordersdomain.Status) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.UpdateStatus",
		trace.WithAttributes(
			attribute.String("order.id", id),
			attribute.String("order.status", string(status)),
		))
	defer span.End()

	s.logInfo(ctx, "updating order status", slog.String("order.id", id), slog.String("status", string(status)))
	result, err := s.inner.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update order status",
			slog.String("order.id", id), slog.String("status", string(status)))
	}
	s.metrics.recordTransition(ctx, result.Status)
	s.logInfo(ctx, "order status updated", slog.String("order.id", id), slog.String("status", string(result.Status)))
	return result, nil
}

func (s *Service) Statistics(ctx context.Context) (ordersdomain.Statistics, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.Statistics")
	defer span.End()

	result, err := s.inner.Statistics(ctx)
	if err != nil {
		return ordersdomain.Statistics{}, s.handleError(ctx, span, err, "failed to compute statistics")
	}
	span.SetAttributes(attribute.Int("orders.total", result.Total))
	return result, nil
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
		s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

type serviceMetrics struct {
	ordersListed      metric.Int64Counter
	statusTransitions metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	listed, _ := m.Int64Counter("orders.service.listed", metric.WithDescription("Number of order list requests"))
	transitions, _ := m.Int64Counter("orders.service.status_transitions", metric.WithDescription("Number of order status transitions"))
	return serviceMetrics{ordersListed: listed, statusTransitions: transitions}
}

func (m serviceMetrics) recordListed(ctx context.Context, matched int) {
	if m.ordersListed != nil {
		m.ordersListed.Add(ctx, 1, metric.WithAttributes(attribute.Int("orders.matched", matched)))
	}
}

func (m serviceMetrics) recordTransition(ctx context.Context, status ordersdomain.Status) {
	if m.statusTransitions != nil {
		m.statusTransitions.Add(ctx, 1, metric.WithAttributes(attribute.String("order.status", string(status))))
	}
}

var _ ordersports.Service = (*Service)(nil)
