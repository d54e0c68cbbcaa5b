package directory

import "github.com/mmcdole/matchday/internal/domain"

// Queries provides synchronous, cache-only reads.
// Implements domain.DirectoryQueries.
type Queries struct {
	store domain.Store
}

// NewQueries creates a new Queries instance.
func NewQueries(store domain.Store) *Queries {
	return &Queries{store: store}
}

func (q *Queries) CachedParents(kind domain.ParentKind) ([]domain.Parent, bool) {
	return q.store.GetParents(kind)
}

func (q *Queries) Recent() []domain.Parent {
	return q.store.GetRecent()
}

// All returns recent parents first, then leagues, then teams, without
// repeating a parent already listed.
func (q *Queries) All() []domain.Parent {
	type id struct {
		kind domain.ParentKind
		id   string
	}
	seen := make(map[id]bool)
	var out []domain.Parent

	add := func(parents []domain.Parent) {
		for _, p := range parents {
			k := id{p.Kind, p.ID}
			if seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, p)
		}
	}

	add(q.store.GetRecent())
	for _, kind := range []domain.ParentKind{domain.ParentLeague, domain.ParentTeam} {
		if parents, ok := q.store.GetParents(kind); ok {
			add(parents)
		}
	}
	if out == nil {
		out = []domain.Parent{}
	}
	return out
}
