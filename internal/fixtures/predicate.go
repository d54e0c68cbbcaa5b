package fixtures

import "github.com/mmcdole/matchday/internal/domain"

// ApplyPredicate narrows a resolved result set by venue when both a month and
// a venue are selected. For every other state the resolved set already matches
// exactly and is returned unchanged.
func ApplyPredicate(data []domain.Fixture, state FilterState) []domain.Fixture {
	if !state.HasMonth() || !state.HasVenue() {
		return data
	}

	out := make([]domain.Fixture, 0, len(data))
	for _, f := range data {
		if f.VenueID() == state.VenueID {
			out = append(out, f)
		}
	}
	return out
}
