package domain

import "context"

// FixtureRepository: network operations for fixture collections
// (implemented by the marketplace client)
type FixtureRepository interface {
	// GetFixtures returns one page of a parent's fixtures narrowed by q.
	// Returns (items, total, error) for pagination support.
	GetFixtures(ctx context.Context, kind ParentKind, parentID string, q FixtureQuery, page, limit int) ([]Fixture, int, error)

	// GetParentPage returns the parent and its full unfiltered collection
	GetParentPage(ctx context.Context, kind ParentKind, slug string) (*ParentPage, error)

	// GetParentMetadata returns authoritative month metadata for a parent
	GetParentMetadata(ctx context.Context, kind ParentKind, idOrSlug string) (*ParentMetadata, error)
}

// DirectoryRepository: network operations for the leagues/teams directory
type DirectoryRepository interface {
	GetParents(ctx context.Context, kind ParentKind) ([]Parent, error)
}

// DirectoryQueries: Synchronous, cache-only reads.
// All methods return instantly. NEVER block on network.
type DirectoryQueries interface {
	CachedParents(kind ParentKind) ([]Parent, bool)
	Recent() []Parent
}

// DirectoryCommands: operations that may hit network.
// Must be called from tea.Cmd functions, never from View().
type DirectoryCommands interface {
	FetchParents(ctx context.Context, kind ParentKind) ([]Parent, error)
	SyncParents(ctx context.Context, kind ParentKind) (SyncResult, error)
	RecordVisit(p Parent)
	InvalidateAll()
}

// SyncResult summarizes what happened during a directory sync.
type SyncResult struct {
	Kind      ParentKind
	FromCache bool // true if cache was fresh (no network fetch)
	Count     int
}
