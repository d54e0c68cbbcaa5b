package fixtures

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mmcdole/matchday/internal/domain"
)

// View is the fixture browser state for one league or team page.
// It owns its cache; nothing is shared between views.
type View struct {
	parent   domain.Parent
	cache    *Cache
	resolver *Resolver
	logger   *slog.Logger
	now      func() time.Time

	mu     sync.RWMutex
	meta   *domain.ParentMetadata
	seeded bool
	closed bool
}

// Option configures a View
type Option func(*View)

// WithLogger sets the view's logger
func WithLogger(logger *slog.Logger) Option {
	return func(v *View) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// WithClock overrides the clock used to drop past months
func WithClock(now func() time.Time) Option {
	return func(v *View) {
		if now != nil {
			v.now = now
		}
	}
}

// NewView creates an empty view for parent, fetching misses with fetch
func NewView(parent domain.Parent, fetch FetchFunc, opts ...Option) *View {
	v := &View{
		parent: parent,
		cache:  NewCache(),
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	v.resolver = NewResolver(v.cache, fetch, v.logger)
	return v
}

func (v *View) Parent() domain.Parent { return v.parent }

// SeedInitial installs the unfiltered collection under "all".
// Only the first call has an effect; it never overwrites fetched data.
func (v *View) SeedInitial(data []domain.Fixture) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed || v.parent.ID == "" || v.seeded {
		return false
	}
	v.seeded = true

	ok := v.cache.Seed(v.parent.ID, AllKey(), data)
	if ok {
		v.logger.Debug("seeded fixtures", "parentID", v.parent.ID, "count", len(data))
	}
	return ok
}

// SetMetadata attaches authoritative month metadata
func (v *View) SetMetadata(meta *domain.ParentMetadata) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.meta = meta
}

// Resolve returns the fixtures for state, fetching if the key is not cached
func (v *View) Resolve(ctx context.Context, state FilterState) Result {
	return v.resolver.Resolve(ctx, v.parentID(), state)
}

// Lookup returns the cached fixtures for state without blocking
func (v *View) Lookup(state FilterState) (Result, bool) {
	return v.resolver.Lookup(v.parentID(), state)
}

// Options derives the month and venue menus from the cached collections
func (v *View) Options(state FilterState) Options {
	v.mu.RLock()
	meta := v.meta
	v.mu.RUnlock()
	return DeriveOptions(v.cache, v.parentID(), state, meta, v.now())
}

// Close discards the view's cache. A closed view resolves to nothing.
func (v *View) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return
	}
	v.closed = true
	v.resolver.Forget(v.parent.ID)
	v.cache.Discard(v.parent.ID)
	v.logger.Debug("closed fixture view", "parentID", v.parent.ID)
}

// parentID returns "" once the view is closed
func (v *View) parentID() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.closed {
		return ""
	}
	return v.parent.ID
}
