package fixtures

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mmcdole/matchday/internal/domain"
)

// fakeFetcher records calls and serves canned collections per query
type fakeFetcher struct {
	mu       sync.Mutex
	calls    []domain.FixtureQuery
	data     map[domain.FixtureQuery][]domain.Fixture
	failures map[domain.FixtureQuery]error
	count    atomic.Int32
	gate     chan struct{} // when non-nil, fetches block until closed
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		data:     make(map[domain.FixtureQuery][]domain.Fixture),
		failures: make(map[domain.FixtureQuery]error),
	}
}

func (f *fakeFetcher) Fetch(ctx context.Context, parentID string, q domain.FixtureQuery) ([]domain.Fixture, error) {
	f.count.Add(1)
	f.mu.Lock()
	f.calls = append(f.calls, q)
	gate := f.gate
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failures[q]; ok {
		return nil, err
	}
	return f.data[q], nil
}

func (f *fakeFetcher) Calls() []domain.FixtureQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.FixtureQuery(nil), f.calls...)
}

var errBackend = errors.New("backend returned 500")

func fixture(id, date, venueID string) domain.Fixture {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	f := domain.Fixture{
		ID:       id,
		StartsAt: t,
		HomeTeam: domain.TeamRef{ID: "home-" + id, Name: "Home " + id},
		AwayTeam: domain.TeamRef{ID: "away-" + id, Name: "Away " + id},
	}
	if venueID != "" {
		f.Venue = &domain.VenueRef{ID: venueID, Name: "Venue " + venueID}
	}
	return f
}

func ids(data []domain.Fixture) []string {
	out := make([]string, len(data))
	for i, f := range data {
		out[i] = f.ID
	}
	return out
}
