package fixtures

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mmcdole/matchday/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var league = domain.Parent{Kind: domain.ParentLeague, ID: "league-1", Slug: "premier-league", Name: "Premier League"}

func TestViewSeedInitialOnce(t *testing.T) {
	f := newFakeFetcher()
	v := NewView(league, f.Fetch)

	assert.True(t, v.SeedInitial([]domain.Fixture{fixture("first", "2025-11-20", "A")}))
	assert.False(t, v.SeedInitial([]domain.Fixture{fixture("second", "2025-11-20", "A")}))

	res := v.Resolve(context.Background(), FilterState{})
	require.NoError(t, res.Err)
	assert.Equal(t, []string{"first"}, ids(res.Data))
	assert.Empty(t, f.Calls())
}

func TestViewOptionsUseMetadataAndClock(t *testing.T) {
	f := newFakeFetcher()
	v := NewView(league, f.Fetch, WithClock(func() time.Time { return midNovember }))
	v.SeedInitial([]domain.Fixture{fixture("1", "2025-10-01", "A"), fixture("2", "2025-11-20", "B")})

	opts := v.Options(FilterState{})
	assert.Equal(t, []domain.MonthKey{"2025-11"}, opts.Months)
	assert.Len(t, opts.Venues, 2)

	v.SetMetadata(&domain.ParentMetadata{Months: []domain.MonthKey{"2026-03"}})
	assert.Equal(t, []domain.MonthKey{"2026-03"}, v.Options(FilterState{}).Months)
}

func TestViewCloseDiscardsCache(t *testing.T) {
	f := newFakeFetcher()
	v := NewView(league, f.Fetch)
	v.SeedInitial([]domain.Fixture{fixture("1", "2025-11-20", "A")})

	v.Close()
	v.Close()

	res := v.Resolve(context.Background(), FilterState{Month: "2025-11"})
	assert.Empty(t, res.Data)
	assert.NoError(t, res.Err)
	assert.Empty(t, f.Calls())
	assert.False(t, v.SeedInitial([]domain.Fixture{fixture("2", "2025-11-20", "A")}))
	assert.Empty(t, v.Options(FilterState{}).Venues)
}

func TestViewCloseDuringFetchSkipsCacheWrite(t *testing.T) {
	f := newFakeFetcher()
	f.gate = make(chan struct{})
	f.data[domain.FixtureQuery{Month: "2025-12"}] = []domain.Fixture{fixture("1", "2025-12-20", "A")}
	v := NewView(league, f.Fetch)

	done := make(chan Result)
	go func() { done <- v.Resolve(context.Background(), FilterState{Month: "2025-12"}) }()
	require.Eventually(t, func() bool { return f.count.Load() == 1 }, time.Second, 5*time.Millisecond)

	v.Close()
	close(f.gate)
	<-done

	assert.Zero(t, v.cache.Len())
	_, ok := v.resolver.Lookup(league.ID, FilterState{Month: "2025-12"})
	assert.False(t, ok)
}

func TestViewWithoutParentID(t *testing.T) {
	f := newFakeFetcher()
	v := NewView(domain.Parent{Kind: domain.ParentTeam}, f.Fetch)

	assert.False(t, v.SeedInitial([]domain.Fixture{fixture("1", "2025-11-20", "A")}))
	res := v.Resolve(context.Background(), FilterState{VenueID: "A"})
	assert.Empty(t, res.Data)
	assert.Empty(t, f.Calls())
}

// fakeRepo implements domain.FixtureRepository for Opener and PagedFetch tests
type fakeRepo struct {
	pages    [][]domain.Fixture
	total    int
	page     *domain.ParentPage
	pageErr  error
	meta     *domain.ParentMetadata
	metaErr  error
	requests []int
}

func (r *fakeRepo) GetFixtures(ctx context.Context, kind domain.ParentKind, parentID string, q domain.FixtureQuery, page, limit int) ([]domain.Fixture, int, error) {
	r.requests = append(r.requests, page)
	if page-1 >= len(r.pages) {
		return nil, r.total, nil
	}
	return r.pages[page-1], r.total, nil
}

func (r *fakeRepo) GetParentPage(ctx context.Context, kind domain.ParentKind, slug string) (*domain.ParentPage, error) {
	return r.page, r.pageErr
}

func (r *fakeRepo) GetParentMetadata(ctx context.Context, kind domain.ParentKind, idOrSlug string) (*domain.ParentMetadata, error) {
	return r.meta, r.metaErr
}

func TestPagedFetchWalksAllPages(t *testing.T) {
	repo := &fakeRepo{
		pages: [][]domain.Fixture{
			{fixture("1", "2025-11-01", "A"), fixture("2", "2025-11-02", "A")},
			{fixture("3", "2025-11-03", "A")},
		},
		total: 3,
	}
	var progress [][2]int
	ctx := WithProgress(context.Background(), func(loaded, total int) {
		progress = append(progress, [2]int{loaded, total})
	})

	data, err := PagedFetch(repo, domain.ParentLeague, 2)(ctx, "league-1", domain.FixtureQuery{})

	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, ids(data))
	assert.Equal(t, []int{1, 2}, repo.requests)
	assert.Equal(t, [][2]int{{2, 3}, {3, 3}}, progress)
}

func TestPagedFetchStopsOnCancel(t *testing.T) {
	repo := &fakeRepo{total: 10}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := PagedFetch(repo, domain.ParentTeam, 5)(ctx, "team-1", domain.FixtureQuery{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, repo.requests)
}

func TestOpenerSeedsFromPage(t *testing.T) {
	repo := &fakeRepo{
		page: &domain.ParentPage{
			Parent:   domain.Parent{ID: "team-7", Slug: "arsenal", Name: "Arsenal"},
			Fixtures: []domain.Fixture{fixture("1", "2025-11-20", "A")},
		},
		meta: &domain.ParentMetadata{Months: []domain.MonthKey{"2025-11"}},
	}
	o := NewOpener(repo, 50, nil, WithClock(func() time.Time { return midNovember }))

	v, err := o.Open(context.Background(), domain.ParentTeam, "arsenal")
	require.NoError(t, err)

	assert.Equal(t, domain.ParentTeam, v.Parent().Kind)
	res, ok := v.Lookup(FilterState{})
	require.True(t, ok)
	assert.Equal(t, []string{"1"}, ids(res.Data))
	assert.Equal(t, []domain.MonthKey{"2025-11"}, v.Options(FilterState{}).Months)
	assert.Empty(t, repo.requests)
}

func TestOpenerToleratesMetadataFailure(t *testing.T) {
	repo := &fakeRepo{
		page:    &domain.ParentPage{Parent: domain.Parent{ID: "league-1"}},
		metaErr: errors.New("metadata unavailable"),
	}

	v, err := NewOpener(repo, 50, nil).Open(context.Background(), domain.ParentLeague, "pl")
	require.NoError(t, err)
	assert.Equal(t, "league-1", v.Parent().ID)
}

func TestOpenerFailsOnPageError(t *testing.T) {
	repo := &fakeRepo{pageErr: domain.ErrParentNotFound}

	_, err := NewOpener(repo, 50, nil).Open(context.Background(), domain.ParentLeague, "nope")
	assert.ErrorIs(t, err, domain.ErrParentNotFound)
}
