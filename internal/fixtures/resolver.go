package fixtures

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mmcdole/matchday/internal/domain"
	"golang.org/x/sync/singleflight"
)

// fetchTimeout bounds a shared fetch once it no longer follows any caller
const fetchTimeout = 2 * time.Minute

// Result is what the presentation layer renders for one filter state
type Result struct {
	Key       Key
	Data      []domain.Fixture
	IsLoading bool  // a fetch for Key is outstanding
	Err       error // last fetch for Key failed
	FromCache bool

	// Loaded and Total report paging progress while IsLoading
	Loaded int
	Total  int
}

// ErrorMessage returns the error text, or "" when there is none
func (r Result) ErrorMessage() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

type loadProgress struct {
	loaded int
	total  int
}

// Resolver decides whether a filter state is served from the cache or needs a
// remote fetch, and writes fetched collections back under the key that was
// requested.
type Resolver struct {
	cache  *Cache
	fetch  FetchFunc
	logger *slog.Logger

	group singleflight.Group

	mu       sync.Mutex
	inflight map[entryKey]loadProgress
	failures map[entryKey]error
	retired  map[string]bool
}

// NewResolver creates a resolver over cache using fetch for misses
func NewResolver(cache *Cache, fetch FetchFunc, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		cache:    cache,
		fetch:    fetch,
		logger:   logger,
		inflight: make(map[entryKey]loadProgress),
		failures: make(map[entryKey]error),
		retired:  make(map[string]bool),
	}
}

// Resolve returns the fixtures for state, fetching at most once per key.
// It blocks until the fetch finishes or ctx is done. A caller giving up does
// not cancel the fetch for anyone else waiting on the same key.
func (r *Resolver) Resolve(ctx context.Context, parentID string, state FilterState) Result {
	key := BuildKey(state)
	if parentID == "" {
		return Result{Key: key, Data: []domain.Fixture{}}
	}

	if data, ok := r.cache.Get(parentID, key); ok {
		r.logger.Debug("cache hit", "parentID", parentID, "key", key.String(), "count", len(data))
		return Result{Key: key, Data: ApplyPredicate(data, state), FromCache: true}
	}

	data, err := r.fetchKey(ctx, parentID, key)
	if err != nil {
		return Result{Key: key, Err: err}
	}
	return Result{Key: key, Data: ApplyPredicate(data, state)}
}

// Lookup is the cache-only counterpart of Resolve and never blocks.
// The boolean is false when the state still needs a Resolve; in that case the
// result reports whether a fetch is in flight or the last one failed.
func (r *Resolver) Lookup(parentID string, state FilterState) (Result, bool) {
	key := BuildKey(state)
	if parentID == "" {
		return Result{Key: key, Data: []domain.Fixture{}}, true
	}

	if data, ok := r.cache.Get(parentID, key); ok {
		return Result{Key: key, Data: ApplyPredicate(data, state), FromCache: true}, true
	}

	ek := entryKey{parentID, key}
	r.mu.Lock()
	defer r.mu.Unlock()

	p, loading := r.inflight[ek]
	return Result{
		Key:       key,
		IsLoading: loading,
		Err:       r.failures[ek],
		Loaded:    p.loaded,
		Total:     p.total,
	}, false
}

// Forget drops the bookkeeping for a parent. Fetches still running for it
// finish without writing to the cache.
func (r *Resolver) Forget(parentID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.retired[parentID] = true
	for ek := range r.inflight {
		if ek.parentID == parentID {
			delete(r.inflight, ek)
		}
	}
	for ek := range r.failures {
		if ek.parentID == parentID {
			delete(r.failures, ek)
		}
	}
}

func (r *Resolver) fetchKey(ctx context.Context, parentID string, key Key) ([]domain.Fixture, error) {
	ek := entryKey{parentID, key}

	// Concurrent resolves of one key share a single request
	ch := r.group.DoChan(parentID+"\x00"+key.String(), func() (interface{}, error) {
		return r.load(context.WithoutCancel(ctx), ek)
	})

	select {
	case <-ctx.Done():
		r.logger.Debug("stopped waiting for fixtures", "parentID", parentID, "key", key.String(), "error", ctx.Err())
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, fmt.Errorf("loading %s fixtures: %w", key, res.Err)
		}
		return cloneFixtures(res.Val.([]domain.Fixture)), nil
	}
}

// load performs the remote fetch for ek and records its outcome
func (r *Resolver) load(ctx context.Context, ek entryKey) ([]domain.Fixture, error) {
	if data, ok := r.cache.Get(ek.parentID, ek.key); ok {
		return data, nil
	}
	if !r.begin(ek) {
		return []domain.Fixture{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()
	ctx = WithProgress(ctx, func(loaded, total int) { r.setProgress(ek, loaded, total) })

	r.logger.Debug("cache miss, fetching", "parentID", ek.parentID, "key", ek.key.String())
	data, err := r.fetch(ctx, ek.parentID, ek.key.Query())
	if err != nil {
		r.logger.Error("failed to fetch fixtures", "error", err, "parentID", ek.parentID, "key", ek.key.String())
		r.finish(ek, nil, err)
		return nil, err
	}
	if data == nil {
		data = []domain.Fixture{}
	}
	r.finish(ek, data, nil)
	r.logger.Info("fetched fixtures", "parentID", ek.parentID, "key", ek.key.String(), "count", len(data))
	return data, nil
}

// begin marks ek in flight. It reports false once the parent is retired.
func (r *Resolver) begin(ek entryKey) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.retired[ek.parentID] {
		return false
	}
	r.inflight[ek] = loadProgress{}
	delete(r.failures, ek)
	return true
}

func (r *Resolver) setProgress(ek entryKey, loaded, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.inflight[ek]; ok {
		r.inflight[ek] = loadProgress{loaded: loaded, total: total}
	}
}

// finish clears the in-flight mark and stores the outcome. The cache write
// happens under mu so it cannot land after Forget.
func (r *Resolver) finish(ek entryKey, data []domain.Fixture, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.inflight, ek)
	if r.retired[ek.parentID] {
		return
	}
	if err != nil {
		r.failures[ek] = err
		return
	}
	r.cache.Put(ek.parentID, ek.key, data)
}
