package domain

// ParentKind distinguishes the entities that own a fixture collection
type ParentKind string

const (
	ParentLeague ParentKind = "league"
	ParentTeam   ParentKind = "team"
)

// Valid reports whether k is a known parent kind
func (k ParentKind) Valid() bool {
	return k == ParentLeague || k == ParentTeam
}

// Plural returns the REST collection segment ("leagues", "teams")
func (k ParentKind) Plural() string {
	return string(k) + "s"
}

// Parent is a league or team whose fixtures can be browsed
type Parent struct {
	Kind    ParentKind // league or team
	ID      string     // Backend identifier, required for any fixture fetch
	Slug    string     // URL slug used by page endpoints
	Name    string     // Display name
	Country string     // Optional country/region label
}

// DisplayName returns the name, falling back to the slug
func (p Parent) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Slug
}

// ParentMetadata carries authoritative data about a parent's fixture calendar.
type ParentMetadata struct {
	Months []MonthKey // Months with scheduled fixtures, may be empty
}

// ParentPage is the initial unfiltered payload for a parent: the parent itself
// plus its full fixture collection. It seeds the "all" cache entry.
type ParentPage struct {
	Parent   Parent
	Fixtures []Fixture
}
