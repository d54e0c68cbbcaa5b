package domain

import "time"

// Store handles the local directory cache (BoltDB + memory).
// Fixture collections are never stored here; they live in a view-scoped cache.
type Store interface {
	// === Directory ===
	GetParents(kind ParentKind) ([]Parent, bool)
	SaveParents(kind ParentKind, parents []Parent, fetchedAt time.Time) error

	// IsFresh reports whether the directory for kind was fetched within maxAge of now
	IsFresh(kind ParentKind, maxAge time.Duration, now time.Time) bool

	// === Recently opened parents (most recent first) ===
	GetRecent() []Parent
	TouchRecent(p Parent, limit int) error

	// === Invalidation ===
	InvalidateDirectory()
	InvalidateAll()

	Close() error
}
