package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/matchday/internal/domain"
	"github.com/mmcdole/matchday/internal/fixtures"
	"github.com/mmcdole/matchday/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	epl     = domain.Parent{Kind: domain.ParentLeague, ID: "l1", Slug: "premier-league", Name: "Premier League"}
	novMid  = time.Date(2025, 11, 15, 12, 0, 0, 0, time.UTC)
	emirate = &domain.VenueRef{ID: "v1", Name: "Emirates Stadium"}
	anfield = &domain.VenueRef{ID: "v2", Name: "Anfield"}
)

func game(id string, at time.Time, venue *domain.VenueRef) domain.Fixture {
	return domain.Fixture{ID: id, StartsAt: at, Venue: venue, HomeTeam: domain.TeamRef{Name: "Home " + id}, AwayTeam: domain.TeamRef{Name: "Away " + id}}
}

var (
	g1 = game("g1", time.Date(2025, 11, 22, 15, 0, 0, 0, time.UTC), emirate)
	g2 = game("g2", time.Date(2025, 12, 6, 15, 0, 0, 0, time.UTC), anfield)
	g3 = game("g3", time.Date(2025, 12, 26, 20, 0, 0, 0, time.UTC), emirate)
)

// stubFetch serves fixed collections per query and counts calls
type stubFetch struct {
	mu    sync.Mutex
	data  map[domain.FixtureQuery][]domain.Fixture
	err   error
	calls []domain.FixtureQuery
}

func (s *stubFetch) fetch(_ context.Context, _ string, q domain.FixtureQuery) ([]domain.Fixture, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, q)
	if s.err != nil {
		return nil, s.err
	}
	return s.data[q], nil
}

func (s *stubFetch) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func newTestView(stub *stubFetch) *fixtures.View {
	view := fixtures.NewView(epl, stub.fetch,
		fixtures.WithLogger(logging.NullLogger()),
		fixtures.WithClock(func() time.Time { return novMid }),
	)
	view.SeedInitial([]domain.Fixture{g1, g2, g3})
	view.SetMetadata(&domain.ParentMetadata{Months: []domain.MonthKey{"2025-11", "2025-12"}})
	return view
}

func resolvedIDs(b *Browser) []string {
	var ids []string
	for _, f := range b.Result().Data {
		ids = append(ids, f.ID)
	}
	return ids
}

func runResolve(t *testing.T, b *Browser, cmd tea.Cmd) bool {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(FixturesResolvedMsg)
	require.True(t, ok, "expected FixturesResolvedMsg")
	return b.HandleResolved(msg)
}

func TestBrowserShowsSeedWithoutFetch(t *testing.T) {
	stub := &stubFetch{}
	b := NewBrowser(newTestView(stub))

	assert.Nil(t, b.Refresh())
	assert.False(t, b.IsLoading())
	assert.Equal(t, []string{"g1", "g2", "g3"}, resolvedIDs(b))
	assert.Zero(t, stub.Calls())
}

func TestBrowserMonthFetchesOnceThenServesFromCache(t *testing.T) {
	stub := &stubFetch{data: map[domain.FixtureQuery][]domain.Fixture{
		{Month: "2025-11"}: {g1},
	}}
	b := NewBrowser(newTestView(stub))
	b.Refresh()

	cmd := b.CycleMonth(1)
	assert.Equal(t, domain.MonthKey("2025-11"), b.State().Month)
	assert.True(t, b.IsLoading())
	assert.True(t, runResolve(t, b, cmd))
	assert.False(t, b.IsLoading())
	assert.Equal(t, []string{"g1"}, resolvedIDs(b))

	// back to "any month" is served from the seed
	assert.Nil(t, b.CycleMonth(-1))
	assert.False(t, b.State().HasMonth())
	assert.Len(t, b.Result().Data, 3)

	// and November again from the cache
	assert.Nil(t, b.CycleMonth(1))
	assert.Equal(t, []string{"g1"}, resolvedIDs(b))
	assert.Equal(t, 1, stub.Calls())
}

func TestBrowserMonthAndVenueFilterLocally(t *testing.T) {
	stub := &stubFetch{data: map[domain.FixtureQuery][]domain.Fixture{
		{Month: "2025-12"}: {g2, g3},
	}}
	b := NewBrowser(newTestView(stub))
	b.Refresh()

	cmd := b.CycleMonth(-1) // wraps to the last month
	assert.Equal(t, domain.MonthKey("2025-12"), b.State().Month)
	runResolve(t, b, cmd)

	// venue options come from the seed: Emirates first, Anfield second
	assert.Nil(t, b.CycleVenue(1))
	assert.Equal(t, "v1", b.State().VenueID)
	assert.Equal(t, []string{"g3"}, resolvedIDs(b))

	assert.Nil(t, b.CycleVenue(1))
	assert.Equal(t, "v2", b.State().VenueID)
	assert.Equal(t, []string{"g2"}, resolvedIDs(b))
	assert.Equal(t, 1, stub.Calls())
}

func TestBrowserIgnoresStaleResponse(t *testing.T) {
	stub := &stubFetch{data: map[domain.FixtureQuery][]domain.Fixture{
		{Month: "2025-11"}: {g1},
	}}
	b := NewBrowser(newTestView(stub))
	b.Refresh()

	stale := b.CycleMonth(1)
	assert.Nil(t, b.ClearFilters())

	assert.False(t, runResolve(t, b, stale))
	assert.Len(t, b.Result().Data, 3, "display still shows the unfiltered set")

	// the stale response was cached under its own key
	assert.Nil(t, b.CycleMonth(1))
	assert.Equal(t, []string{"g1"}, resolvedIDs(b))
}

func TestBrowserIgnoresOtherParent(t *testing.T) {
	b := NewBrowser(newTestView(&stubFetch{}))
	b.Refresh()

	assert.False(t, b.HandleResolved(FixturesResolvedMsg{ParentID: "someone-else"}))
}

func TestBrowserFailureAndRetry(t *testing.T) {
	stub := &stubFetch{err: errors.New("boom")}
	b := NewBrowser(newTestView(stub))
	b.SetSize(80, 20)
	b.Refresh()

	cmd := b.CycleMonth(1)
	assert.True(t, runResolve(t, b, cmd))
	require.Error(t, b.Result().Err)
	assert.Contains(t, b.View(""), "Could not load fixtures")

	stub.err = nil
	retry := b.Refresh()
	require.NotNil(t, retry, "failed keys are retried")
	runResolve(t, b, retry)
	assert.NoError(t, b.Result().Err)
	assert.Equal(t, 2, stub.Calls())
}

func TestBrowserEmptyState(t *testing.T) {
	stub := &stubFetch{data: map[domain.FixtureQuery][]domain.Fixture{}}
	b := NewBrowser(newTestView(stub))
	b.SetSize(80, 20)
	b.Refresh()

	cmd := b.CycleMonth(1)
	runResolve(t, b, cmd)

	assert.Empty(t, b.Result().Data)
	assert.Contains(t, b.View(""), "No fixtures match these filters.")
}

func TestBrowserLoadingView(t *testing.T) {
	b := NewBrowser(newTestView(&stubFetch{}))
	b.SetSize(80, 20)
	b.Refresh()

	b.CycleMonth(1)
	assert.Contains(t, b.View("*"), "* Loading fixtures...")
	assert.Contains(t, b.View("*"), "month: Nov 2025")
}

// pagedRepo serves one page immediately and holds the rest until gate closes
type pagedRepo struct {
	gate chan struct{}
}

func (r *pagedRepo) GetFixtures(ctx context.Context, _ domain.ParentKind, _ string, _ domain.FixtureQuery, page, _ int) ([]domain.Fixture, int, error) {
	if page == 1 {
		return []domain.Fixture{g1}, 3, nil
	}
	select {
	case <-r.gate:
	case <-ctx.Done():
		return nil, 0, ctx.Err()
	}
	return []domain.Fixture{g2, g3}, 3, nil
}

func (r *pagedRepo) GetParentPage(context.Context, domain.ParentKind, string) (*domain.ParentPage, error) {
	return nil, nil
}

func (r *pagedRepo) GetParentMetadata(context.Context, domain.ParentKind, string) (*domain.ParentMetadata, error) {
	return nil, nil
}

func TestBrowserLoadingShowsPagingProgress(t *testing.T) {
	repo := &pagedRepo{gate: make(chan struct{})}
	view := fixtures.NewView(epl, fixtures.PagedFetch(repo, domain.ParentLeague, 1),
		fixtures.WithLogger(logging.NullLogger()),
	)
	b := NewBrowser(view)
	b.SetSize(80, 20)

	cmd := b.Refresh()
	require.NotNil(t, cmd)
	done := make(chan tea.Msg)
	go func() { done <- cmd() }()

	require.Eventually(t, func() bool {
		return strings.Contains(b.View("*"), "Loading fixtures... 1/3")
	}, time.Second, 5*time.Millisecond)

	close(repo.gate)
	msg := (<-done).(FixturesResolvedMsg)
	assert.True(t, b.HandleResolved(msg))
	assert.Equal(t, []string{"g1", "g2", "g3"}, resolvedIDs(b))
}

func TestCycle(t *testing.T) {
	tests := []struct {
		n, idx, dir, want int
	}{
		{3, -1, 1, 0},
		{3, 0, 1, 1},
		{3, 2, 1, -1},
		{3, -1, -1, 2},
		{3, 0, -1, -1},
		{0, -1, 1, -1},
		{0, -1, -1, -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cycle(tt.n, tt.idx, tt.dir), "cycle(%d, %d, %d)", tt.n, tt.idx, tt.dir)
	}
}
