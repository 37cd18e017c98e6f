package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sustentabag/business-dashboard/internal/domains/orders/domain"
	"github.com/sustentabag/business-dashboard/internal/domains/orders/ports"
)

// Repository is the session-scoped order cache: the single source of truth for
// the orders of one business, fetched from the marketplace backend and held in
// memory for synchronous reads. Only its own methods mutate the cache.
type Repository struct {
	backend ports.Backend
	now     func() time.Time

	mu    sync.RWMutex
	cache []domain.Order
	index map[string]int
	stats domain.Statistics

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// RepositoryOption configures a Repository.
type RepositoryOption func(*Repository)

// WithClock overrides the wall clock used to stamp history entries.
func WithClock(now func() time.Time) RepositoryOption {
	return func(r *Repository) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRepository builds an empty repository bound to one business session.
func NewRepository(backend ports.Backend, opts ...RepositoryOption) *Repository {
	r := &Repository{
		backend: backend,
		now:     time.Now,
		index:   map[string]int{},
		locks:   map[string]*sync.Mutex{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Refresh replaces the entire cache with the backend's current order set and
// recomputes statistics. On any fetch failure the cache degrades to empty so
// stale data is never displayed as current.
func (r *Repository) Refresh(ctx context.Context) ([]domain.Order, error) {
	orders, err := r.backend.ListOrders(ctx)
	if err != nil {
		r.replace(nil)
		return nil, fmt.Errorf("fetch orders: %w", err)
	}
	deduped := make([]domain.Order, 0, len(orders))
	seen := make(map[string]struct{}, len(orders))
	for _, o := range orders {
		if _, dup := seen[o.ID]; dup {
			continue
		}
		seen[o.ID] = struct{}{}
		deduped = append(deduped, o)
	}
	r.replace(deduped)
	return r.All(), nil
}

func (r *Repository) replace(orders []domain.Order) {
	index := make(map[string]int, len(orders))
	for i, o := range orders {
		index[o.ID] = i
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = orders
	r.index = index
	r.stats = domain.ComputeStatistics(orders)
}

// All returns a copy of the cached orders in fetch order.
func (r *Repository) All() []domain.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Order, len(r.cache))
	copy(out, r.cache)
	return out
}

// ByID returns a copy of the cached order or ports.ErrNotFound.
func (r *Repository) ByID(id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.index[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := r.cache[i]
	return &clone, nil
}

// ByStatus returns copies of the cached orders with the given status.
func (r *Repository) ByStatus(status domain.Status) []domain.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Order, 0)
	for _, o := range r.cache {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out
}

// Statistics returns the aggregates derived at the last cache change.
func (r *Repository) Statistics() domain.Statistics {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.stats
}

// UpdateStatus transitions one order. The remote backend is the authority: the
// cache entry is only mutated, the history entry appended, and statistics
// recomputed after the backend confirms the update. Mutations on the same id
// are serialized to avoid lost updates.
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Order, error) {
	lock := r.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	current, err := r.ByID(id)
	if err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	if !current.Status.CanTransition(status) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrIllegalTransition, current.Status, status)
	}

	if err := r.backend.UpdateOrderStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("update order %s: %w", id, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.index[id]
	if !ok {
		// Cache was replaced while the remote call was in flight.
		return nil, ports.ErrNotFound
	}
	if err := r.cache[i].Transition(status, r.now()); err != nil {
		return nil, err
	}
	r.stats = domain.ComputeStatistics(r.cache)
	clone := r.cache[i]
	return &clone, nil
}

func (r *Repository) lockFor(id string) *sync.Mutex {
	r.locksMu.Lock()
	defer r.locksMu.Unlock()
	lock, ok := r.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[id] = lock
	}
	return lock
}

var _ ports.Repository = (*Repository)(nil)
