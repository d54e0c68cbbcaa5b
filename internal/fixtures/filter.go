package fixtures

import "github.com/mmcdole/matchday/internal/domain"

// FilterState holds the two independently selectable filter dimensions.
// An empty field means "not set".
type FilterState struct {
	Month   domain.MonthKey
	VenueID string
}

func (f FilterState) IsZero() bool   { return f.Month == "" && f.VenueID == "" }
func (f FilterState) HasMonth() bool { return f.Month != "" }
func (f FilterState) HasVenue() bool { return f.VenueID != "" }

// WithMonth replaces the month and leaves the venue untouched
func (f FilterState) WithMonth(m domain.MonthKey) FilterState {
	f.Month = m
	return f
}

// WithVenue replaces the venue and leaves the month untouched
func (f FilterState) WithVenue(venueID string) FilterState {
	f.VenueID = venueID
	return f
}

func (f FilterState) ClearMonth() FilterState { return f.WithMonth("") }
func (f FilterState) ClearVenue() FilterState { return f.WithVenue("") }
