package fixtures

import (
	"testing"

	"github.com/mmcdole/matchday/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheSeedIsIdempotent(t *testing.T) {
	c := NewCache()
	first := []domain.Fixture{fixture("1", "2025-11-20", "A")}
	second := []domain.Fixture{fixture("2", "2025-12-01", "B")}

	assert.True(t, c.Seed("league-1", AllKey(), first))
	assert.False(t, c.Seed("league-1", AllKey(), second))

	got, ok := c.Get("league-1", AllKey())
	require.True(t, ok)
	assert.Equal(t, []string{"1"}, ids(got))
}

func TestCacheSeedDoesNotOverwritePut(t *testing.T) {
	c := NewCache()
	c.Put("league-1", AllKey(), []domain.Fixture{fixture("fresh", "2025-11-20", "A")})

	assert.False(t, c.Seed("league-1", AllKey(), []domain.Fixture{fixture("stale", "2025-11-20", "A")}))

	got, _ := c.Get("league-1", AllKey())
	assert.Equal(t, []string{"fresh"}, ids(got))
}

func TestCacheScopesByParent(t *testing.T) {
	c := NewCache()
	c.Put("league-1", MonthKey("2025-11"), []domain.Fixture{fixture("1", "2025-11-20", "A")})

	_, ok := c.Get("team-9", MonthKey("2025-11"))
	assert.False(t, ok)

	c.Put("team-9", MonthKey("2025-11"), nil)
	got, ok := c.Get("team-9", MonthKey("2025-11"))
	require.True(t, ok, "an empty result is still a cache entry")
	assert.Empty(t, got)
	assert.Equal(t, 2, c.Len())
}

func TestCacheEntriesAreImmutable(t *testing.T) {
	c := NewCache()
	data := []domain.Fixture{fixture("1", "2025-11-20", "A")}
	c.Put("p", AllKey(), data)

	data[0].ID = "mutated"
	got, _ := c.Get("p", AllKey())
	got[0].ID = "mutated-again"

	again, _ := c.Get("p", AllKey())
	assert.Equal(t, []string{"1"}, ids(again))
}

func TestCacheCopiesVenueAndLeagueRefs(t *testing.T) {
	c := NewCache()
	f := fixture("1", "2025-11-20", "A")
	f.League = &domain.LeagueRef{ID: "l1", Name: "Premier League"}
	c.Put("p", AllKey(), []domain.Fixture{f})

	f.Venue.Name = "changed by caller"
	got, _ := c.Get("p", AllKey())
	got[0].Venue.Name = "changed by reader"
	got[0].League.Name = "changed by reader"

	again, _ := c.Get("p", AllKey())
	require.NotNil(t, again[0].Venue)
	require.NotNil(t, again[0].League)
	assert.Equal(t, "Venue A", again[0].Venue.Name)
	assert.Equal(t, "Premier League", again[0].League.Name)
}

func TestCacheKeysAndDiscard(t *testing.T) {
	c := NewCache()
	c.Put("p", AllKey(), nil)
	c.Put("p", VenueKey("A"), nil)
	c.Put("p", AllKey(), nil)
	c.Put("other", AllKey(), nil)

	assert.Equal(t, []Key{AllKey(), VenueKey("A")}, c.Keys("p"))

	c.Discard("p")
	assert.Empty(t, c.Keys("p"))
	_, ok := c.Get("p", AllKey())
	assert.False(t, ok)
	_, ok = c.Get("other", AllKey())
	assert.True(t, ok)
}
