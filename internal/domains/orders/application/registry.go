package application

import (
	"sync"

	"github.com/sustentabag/business-dashboard/internal/domains/orders/ports"
)

// BackendFactory binds the shared marketplace client to one session's bearer
// token and business id.
type BackendFactory func(token string, businessID int64) ports.Backend

// Registry owns one Repository per dashboard session. Caches are created when
// a session first touches orders and discarded at logout or session expiry, so
// order data never leaks across tenants.
type Registry struct {
	factory BackendFactory
	opts    []RepositoryOption

	mu    sync.Mutex
	repos map[string]*Repository
}

// NewRegistry builds an empty registry.
func NewRegistry(factory BackendFactory, opts ...RepositoryOption) *Registry {
	return &Registry{
		factory: factory,
		opts:    opts,
		repos:   map[string]*Repository{},
	}
}

// For returns the session's repository, creating it on first use.
func (g *Registry) For(sessionID, token string, businessID int64) *Repository {
	g.mu.Lock()
	defer g.mu.Unlock()
	repo, ok := g.repos[sessionID]
	if !ok {
		repo = NewRepository(g.factory(token, businessID), g.opts...)
		g.repos[sessionID] = repo
	}
	return repo
}

// Evict drops the session's repository, if any.
func (g *Registry) Evict(sessionID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.repos, sessionID)
}
