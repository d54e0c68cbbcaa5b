package fixtures

import (
	"slices"
	"time"

	"github.com/mmcdole/matchday/internal/domain"
)

// Options are the selectable values offered by the month and venue menus
type Options struct {
	Months []domain.MonthKey
	Venues []domain.VenueSummary
}

// DeriveOptions computes the filter menus from whatever is cached for
// parentID. Nothing is fetched and nothing is stored.
//
// Venues come from the "all" entry when it is cached. Without it, the active
// key's entry is scanned first and every other cached entry after it, so a
// venue seen under a different month is still offered.
//
// Months come from meta when it lists any, otherwise from fixture dates.
// Either way months before now's month are dropped and the rest are sorted.
func DeriveOptions(cache *Cache, parentID string, state FilterState, meta *domain.ParentMetadata, now time.Time) Options {
	opts := Options{Months: []domain.MonthKey{}, Venues: []domain.VenueSummary{}}
	if cache == nil || parentID == "" {
		return opts
	}

	sets := venueSources(cache, parentID, BuildKey(state))
	opts.Venues = collectVenues(sets)

	var months []domain.MonthKey
	if meta != nil && len(meta.Months) > 0 {
		months = meta.Months
	} else {
		months = collectMonths(monthSources(cache, parentID))
	}
	opts.Months = upcomingMonths(months, domain.MonthOf(now))

	return opts
}

func venueSources(cache *Cache, parentID string, active Key) [][]domain.Fixture {
	if all, ok := cache.Get(parentID, AllKey()); ok {
		return [][]domain.Fixture{all}
	}

	var sets [][]domain.Fixture
	if data, ok := cache.Get(parentID, active); ok {
		sets = append(sets, data)
	}
	for _, k := range cache.Keys(parentID) {
		if k == active {
			continue
		}
		if data, ok := cache.Get(parentID, k); ok {
			sets = append(sets, data)
		}
	}
	return sets
}

func monthSources(cache *Cache, parentID string) [][]domain.Fixture {
	if all, ok := cache.Get(parentID, AllKey()); ok {
		return [][]domain.Fixture{all}
	}
	var sets [][]domain.Fixture
	for _, k := range cache.Keys(parentID) {
		if data, ok := cache.Get(parentID, k); ok {
			sets = append(sets, data)
		}
	}
	return sets
}

func collectVenues(sets [][]domain.Fixture) []domain.VenueSummary {
	seen := make(map[string]bool)
	venues := []domain.VenueSummary{}
	for _, set := range sets {
		for _, f := range set {
			if f.Venue == nil || f.Venue.ID == "" || seen[f.Venue.ID] {
				continue
			}
			seen[f.Venue.ID] = true
			venues = append(venues, domain.VenueSummary{
				ID:   f.Venue.ID,
				Name: f.Venue.Name,
				City: f.Venue.City,
			})
		}
	}
	return venues
}

func collectMonths(sets [][]domain.Fixture) []domain.MonthKey {
	var months []domain.MonthKey
	for _, set := range sets {
		for _, f := range set {
			if f.StartsAt.IsZero() {
				continue
			}
			months = append(months, f.Month())
		}
	}
	return months
}

// upcomingMonths keeps months >= current, deduplicated and sorted ascending
func upcomingMonths(months []domain.MonthKey, current domain.MonthKey) []domain.MonthKey {
	out := []domain.MonthKey{}
	seen := make(map[domain.MonthKey]bool)
	for _, m := range months {
		if !m.Valid() || m.Before(current) || seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	slices.Sort(out)
	return out
}
