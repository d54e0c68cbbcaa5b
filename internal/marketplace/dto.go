package marketplace

// PageMeta describes the pagination window of a list response
type PageMeta struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// FixtureList is the response for /api/{kind}s/{id}/fixtures
type FixtureList struct {
	Data []FixtureDTO `json:"data"`
	Meta PageMeta     `json:"meta"`
}

// ParentList is the response for /api/leagues and /api/teams
type ParentList struct {
	Data []ParentDTO `json:"data"`
}

// ParentPageDTO is the response for /api/{kind}s/{slug}
type ParentPageDTO struct {
	Parent   ParentDTO    `json:"parent"`
	Fixtures []FixtureDTO `json:"fixtures"`
}

// MetadataDTO is the response for /api/{kind}s/{idOrSlug}/metadata
type MetadataDTO struct {
	Months []string `json:"months,omitempty"`
}

// ParentDTO represents a league or team
type ParentDTO struct {
	ID      string `json:"id"`
	Slug    string `json:"slug"`
	Name    string `json:"name"`
	Country string `json:"country,omitempty"`
}

// TeamDTO is a team reference embedded in a fixture
type TeamDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

// VenueDTO is a venue reference embedded in a fixture
type VenueDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	City string `json:"city,omitempty"`
}

// LeagueDTO is a league reference embedded in a fixture
type LeagueDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

// FixtureDTO represents a scheduled match with its offer summary
type FixtureDTO struct {
	ID         string     `json:"id"`
	Name       string     `json:"name,omitempty"`
	StartsAt   string     `json:"startsAt"` // RFC 3339
	HomeTeam   TeamDTO    `json:"homeTeam"`
	AwayTeam   TeamDTO    `json:"awayTeam"`
	Venue      *VenueDTO  `json:"venue,omitempty"`
	League     *LeagueDTO `json:"league,omitempty"`
	OfferCount int        `json:"offerCount"`
	MinPrice   float64    `json:"minPrice,omitempty"`
	Currency   string     `json:"currency,omitempty"`
}

// errorResponse is the backend's error envelope
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
