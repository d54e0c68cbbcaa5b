package domain

import (
	"fmt"
	"time"
)

// TeamRef is a lightweight reference to a team taking part in a fixture
type TeamRef struct {
	ID   string
	Name string
	Slug string
}

// VenueRef is a reference to the stadium a fixture is played at
type VenueRef struct {
	ID   string
	Name string
	City string
}

// LeagueRef is a reference to the competition a fixture belongs to
type LeagueRef struct {
	ID   string
	Name string
	Slug string
}

// VenueSummary is a selectable venue in the filter menu
type VenueSummary struct {
	ID   string
	Name string
	City string
}

// Fixture is a single scheduled match with its ticket offer summary
type Fixture struct {
	ID         string
	Name       string    // Optional event name ("Derby Day"), empty for regular matches
	StartsAt   time.Time // Kick-off time
	HomeTeam   TeamRef
	AwayTeam   TeamRef
	Venue      *VenueRef  // nil when the venue is not announced
	League     *LeagueRef // nil for friendlies
	OfferCount int        // Number of ticket offers across providers
	MinPrice   float64    // Lowest offer price, 0 if no offers
	Currency   string     // ISO currency code for MinPrice
}

// Month returns the month the fixture is played in
func (f Fixture) Month() MonthKey {
	return MonthOf(f.StartsAt)
}

// VenueID returns the venue id or "" if none
func (f Fixture) VenueID() string {
	if f.Venue == nil {
		return ""
	}
	return f.Venue.ID
}

// Title returns "Home vs Away", or the event name if the teams are unknown
func (f Fixture) Title() string {
	if f.HomeTeam.Name == "" && f.AwayTeam.Name == "" {
		return f.Name
	}
	return fmt.Sprintf("%s vs %s", f.HomeTeam.Name, f.AwayTeam.Name)
}

// PriceLabel returns a short price summary for list display
func (f Fixture) PriceLabel() string {
	if f.OfferCount == 0 {
		return "no offers"
	}
	offers := "offers"
	if f.OfferCount == 1 {
		offers = "offer"
	}
	return fmt.Sprintf("from %.2f %s · %d %s", f.MinPrice, f.Currency, f.OfferCount, offers)
}

// FixtureQuery narrows a fixture collection fetch.
// At most one of Month and VenueID is sent to the backend.
type FixtureQuery struct {
	Month   MonthKey
	VenueID string
}
