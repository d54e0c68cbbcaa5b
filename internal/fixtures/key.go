package fixtures

import "github.com/mmcdole/matchday/internal/domain"

// KeyKind is the fetch granularity a cache entry was produced at
type KeyKind int

const (
	KindAll KeyKind = iota
	KindVenue
	KindMonth
)

func (k KeyKind) String() string {
	switch k {
	case KindAll:
		return "all"
	case KindVenue:
		return "venue"
	case KindMonth:
		return "month"
	default:
		return "unknown"
	}
}

// Key identifies a cached result set within one parent.
// Construct with AllKey, VenueKey, MonthKey or BuildKey.
type Key struct {
	kind  KeyKind
	value string
}

func AllKey() Key                    { return Key{kind: KindAll} }
func VenueKey(venueID string) Key    { return Key{kind: KindVenue, value: venueID} }
func MonthKey(m domain.MonthKey) Key { return Key{kind: KindMonth, value: string(m)} }
func (k Key) Kind() KeyKind          { return k.kind }
func (k Key) Value() string          { return k.value }
func (k Key) IsAll() bool            { return k.kind == KindAll }

// BuildKey maps a filter state to the granularity it is fetched at.
// Month wins over venue: month+venue is cached by month and the venue is
// applied by ApplyPredicate.
func BuildKey(state FilterState) Key {
	switch {
	case state.HasMonth():
		return MonthKey(state.Month)
	case state.HasVenue():
		return VenueKey(state.VenueID)
	default:
		return AllKey()
	}
}

// String returns the canonical form: "all", "venue:{id}" or "month:{YYYY-MM}"
func (k Key) String() string {
	if k.kind == KindAll {
		return "all"
	}
	return k.kind.String() + ":" + k.value
}

// Query returns the backend parameters for this key's granularity
func (k Key) Query() domain.FixtureQuery {
	switch k.kind {
	case KindMonth:
		return domain.FixtureQuery{Month: domain.MonthKey(k.value)}
	case KindVenue:
		return domain.FixtureQuery{VenueID: k.value}
	default:
		return domain.FixtureQuery{}
	}
}
