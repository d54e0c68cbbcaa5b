package marketplace

import (
	"log/slog"
	"time"

	"github.com/mmcdole/matchday/internal/domain"
)

// MapFixtures converts fixture DTOs to domain fixtures.
// Fixtures with an unparseable kick-off time keep a zero StartsAt.
func MapFixtures(dtos []FixtureDTO, logger *slog.Logger) []domain.Fixture {
	fixtures := make([]domain.Fixture, 0, len(dtos))
	for _, d := range dtos {
		f, err := mapFixture(d)
		if err != nil && logger != nil {
			logger.Warn("unparseable fixture date", "fixtureID", d.ID, "startsAt", d.StartsAt, "error", err)
		}
		fixtures = append(fixtures, f)
	}
	return fixtures
}

func mapFixture(d FixtureDTO) (domain.Fixture, error) {
	f := domain.Fixture{
		ID:         d.ID,
		Name:       d.Name,
		HomeTeam:   domain.TeamRef{ID: d.HomeTeam.ID, Name: d.HomeTeam.Name, Slug: d.HomeTeam.Slug},
		AwayTeam:   domain.TeamRef{ID: d.AwayTeam.ID, Name: d.AwayTeam.Name, Slug: d.AwayTeam.Slug},
		OfferCount: d.OfferCount,
		MinPrice:   d.MinPrice,
		Currency:   d.Currency,
	}

	if d.Venue != nil && d.Venue.ID != "" {
		f.Venue = &domain.VenueRef{ID: d.Venue.ID, Name: d.Venue.Name, City: d.Venue.City}
	}
	if d.League != nil && d.League.ID != "" {
		f.League = &domain.LeagueRef{ID: d.League.ID, Name: d.League.Name, Slug: d.League.Slug}
	}

	if d.StartsAt == "" {
		return f, nil
	}
	t, err := time.Parse(time.RFC3339, d.StartsAt)
	if err != nil {
		return f, err
	}
	f.StartsAt = t
	return f, nil
}

// MapParents converts directory DTOs to domain parents of kind
func MapParents(dtos []ParentDTO, kind domain.ParentKind) []domain.Parent {
	parents := make([]domain.Parent, 0, len(dtos))
	for _, d := range dtos {
		if d.ID == "" {
			continue
		}
		parents = append(parents, mapParent(d, kind))
	}
	return parents
}

func mapParent(d ParentDTO, kind domain.ParentKind) domain.Parent {
	return domain.Parent{
		Kind:    kind,
		ID:      d.ID,
		Slug:    d.Slug,
		Name:    d.Name,
		Country: d.Country,
	}
}

// MapMetadata converts month metadata, dropping malformed months
func MapMetadata(d MetadataDTO) *domain.ParentMetadata {
	meta := &domain.ParentMetadata{Months: make([]domain.MonthKey, 0, len(d.Months))}
	for _, s := range d.Months {
		m, err := domain.ParseMonth(s)
		if err != nil {
			continue
		}
		meta.Months = append(meta.Months, m)
	}
	return meta
}
