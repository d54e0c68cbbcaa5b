// Package fixtures resolves filtered fixture listings for one league or team.
//
// A View owns a Cache scoped to a single parent entity. The unfiltered "all"
// entry is seeded once from the parent page payload; month-only and
// venue-only selections are fetched narrowly and cached under their own key.
// When both a month and a venue are selected the collection is fetched (or
// reused) by month and the venue is applied client-side, so switching venue
// inside a month never costs a round trip.
package fixtures
