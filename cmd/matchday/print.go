package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mmcdole/matchday/internal/domain"
	"github.com/mmcdole/matchday/internal/fixtures"
	"github.com/mmcdole/matchday/internal/tui/styles"
)

// printFixtures writes a parent's fixtures as a bordered table
func printFixtures(w io.Writer, parent domain.Parent, state fixtures.FilterState, data []domain.Fixture) error {
	heading := parent.DisplayName()
	if state.HasMonth() {
		heading += " · " + state.Month.Label()
	}
	if state.HasVenue() {
		heading += " · venue " + state.VenueID
	}
	if _, err := fmt.Fprintln(w, styles.TitleStyle.Render(heading)); err != nil {
		return err
	}

	if len(data) == 0 {
		_, err := fmt.Fprintln(w, styles.DimStyle.Render("No fixtures match these filters."))
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.DimStyle).
		Headers("Date", "Fixture", "Venue", "Offers", "From")

	for _, f := range data {
		t.Row(fixtureRow(f)...)
	}

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func fixtureRow(f domain.Fixture) []string {
	when := "TBC"
	if !f.StartsAt.IsZero() {
		when = f.StartsAt.Local().Format("Mon 02 Jan 2006 15:04")
	}
	venue := ""
	if f.Venue != nil {
		venue = f.Venue.Name
		if f.Venue.City != "" {
			venue += ", " + f.Venue.City
		}
	}
	from := "-"
	if f.OfferCount > 0 {
		from = fmt.Sprintf("%.2f %s", f.MinPrice, f.Currency)
	}
	return []string{when, f.Title(), venue, strconv.Itoa(f.OfferCount), from}
}
