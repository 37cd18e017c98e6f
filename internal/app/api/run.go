package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	client "github.com/sustentabag/business-dashboard/internal/clients/http/sustentabag"
	platformobservability "github.com/sustentabag/business-dashboard/internal/platform/observability"

	bagshttp "github.com/sustentabag/business-dashboard/internal/domains/bags/adapters/http"
	bagsapp "github.com/sustentabag/business-dashboard/internal/domains/bags/application"
	bagsports "github.com/sustentabag/business-dashboard/internal/domains/bags/ports"

	businesshttp "github.com/sustentabag/business-dashboard/internal/domains/business/adapters/http"
	businessapp "github.com/sustentabag/business-dashboard/internal/domains/business/application"
	businessports "github.com/sustentabag/business-dashboard/internal/domains/business/ports"

	ordershttp "github.com/sustentabag/business-dashboard/internal/domains/orders/adapters/http"
	ordersobs "github.com/sustentabag/business-dashboard/internal/domains/orders/adapters/observability"
	ordersapp "github.com/sustentabag/business-dashboard/internal/domains/orders/application"
	ordersports "github.com/sustentabag/business-dashboard/internal/domains/orders/ports"

	userhttp "github.com/sustentabag/business-dashboard/internal/domains/users/adapters/http"
	usermemory "github.com/sustentabag/business-dashboard/internal/domains/users/adapters/memory"
	userobs "github.com/sustentabag/business-dashboard/internal/domains/users/adapters/observability"
	userapp "github.com/sustentabag/business-dashboard/internal/domains/users/application"
	usersdomain "github.com/sustentabag/business-dashboard/internal/domains/users/domain"

	bagsexternal "github.com/sustentabag/business-dashboard/internal/domains/bags/adapters/external/sustentabag"
	businessexternal "github.com/sustentabag/business-dashboard/internal/domains/business/adapters/external/sustentabag"
	ordersexternal "github.com/sustentabag/business-dashboard/internal/domains/orders/adapters/external/sustentabag"
	userexternal "github.com/sustentabag/business-dashboard/internal/domains/users/adapters/external/sustentabag"
)

// registryEvictor discards a session's order cache when the session ends.
type registryEvictor struct {
	registry *ordersapp.Registry
}

func (e registryEvictor) SessionEnded(sessionID string) {
	e.registry.Evict(sessionID)
}

// Run boots the merchant dashboard HTTP API with observability, the
// marketplace client, and per-session order caches wired.
func Run(ctx context.Context) error {
	const serviceName = "sustentabag-dashboard"
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	instruments, shutdown, err := platformobservability.Init(ctx, serviceName, cfg.Environment)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	marketplace, err := client.New(cfg.BackendBaseURL, &http.Client{Timeout: 15 * time.Second})
	if err != nil {
		return fmt.Errorf("failed to build marketplace client: %w", err)
	}

	registry := ordersapp.NewRegistry(func(token string, businessID int64) ordersports.Backend {
		return ordersexternal.NewBackend(marketplace, token, businessID)
	})

	coreUserService := userapp.NewService(
		userexternal.NewBackend(marketplace),
		usermemory.NewSessionStore(),
		cfg.SessionSecret,
		userapp.WithTTL(cfg.SessionTTL),
		userapp.WithListener(registryEvictor{registry: registry}),
		userapp.WithLogger(logger),
	)
	coreUserService.StartPurging(ctx, cfg.SessionPurgeInterval)
	userService := userobs.New(
		coreUserService,
		userobs.WithLogger(logger),
		userobs.WithTracer(instruments.Tracer("internal.users.application")),
		userobs.WithMeter(instruments.Meter("internal.users.application")),
	)

	tracer := instruments.Tracer("internal.orders.application")
	meter := instruments.Meter("internal.orders.application")
	orderServices := func(session *usersdomain.Session) ordersports.Service {
		repo := registry.For(session.ID, session.Token, session.BusinessID)
		return ordersobs.New(
			ordersapp.NewService(repo),
			ordersobs.WithLogger(logger),
			ordersobs.WithTracer(tracer),
			ordersobs.WithMeter(meter),
		)
	}
	bagServices := func(session *usersdomain.Session) bagsports.Service {
		return bagsapp.NewService(bagsexternal.NewBackend(marketplace, session.Token, session.BusinessID))
	}
	businessServices := func(session *usersdomain.Session) businessports.Service {
		return businessapp.NewService(businessexternal.NewBackend(marketplace, session.Token, session.BusinessID))
	}

	router := NewRouter(Handlers{
		Users:    userhttp.NewAPI(userService),
		Orders:   ordershttp.NewAPI(orderServices),
		Bags:     bagshttp.NewAPI(bagServices),
		Business: businesshttp.NewAPI(businessServices),
		Auth:     userhttp.RequireSession(userService),
	}, serviceName)

	addr := ":" + cfg.Port
	logger.Info("dashboard API listening",
		slog.String("addr", addr),
		slog.String("backend", cfg.BackendBaseURL),
	)
	if err := router.Run(addr); err != nil {
		logger.Error("dashboard API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}
