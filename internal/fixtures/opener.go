package fixtures

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmcdole/matchday/internal/domain"
	"golang.org/x/sync/errgroup"
)

// Opener builds seeded views from the marketplace backend
type Opener struct {
	repo     domain.FixtureRepository
	pageSize int
	logger   *slog.Logger
	opts     []Option
}

// NewOpener creates an opener. opts are applied to every view it opens.
func NewOpener(repo domain.FixtureRepository, pageSize int, logger *slog.Logger, opts ...Option) *Opener {
	if logger == nil {
		logger = slog.Default()
	}
	return &Opener{repo: repo, pageSize: pageSize, logger: logger, opts: opts}
}

// Open loads the parent page and its month metadata concurrently, then returns
// a view seeded with the page's unfiltered fixtures. Metadata is optional: a
// failure there is logged and months are derived from fixture dates instead.
func (o *Opener) Open(ctx context.Context, kind domain.ParentKind, slug string) (*View, error) {
	var (
		page *domain.ParentPage
		meta *domain.ParentMetadata
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := o.repo.GetParentPage(gctx, kind, slug)
		if err != nil {
			return fmt.Errorf("loading %s %q: %w", kind, slug, err)
		}
		page = p
		return nil
	})
	g.Go(func() error {
		m, err := o.repo.GetParentMetadata(gctx, kind, slug)
		if err != nil {
			o.logger.Warn("failed to load parent metadata", "error", err, "kind", kind, "slug", slug)
			return nil
		}
		meta = m
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	parent := page.Parent
	if parent.Kind == "" {
		parent.Kind = kind
	}

	opts := append([]Option{WithLogger(o.logger)}, o.opts...)
	view := NewView(parent, PagedFetch(o.repo, kind, o.pageSize), opts...)
	view.SeedInitial(page.Fixtures)
	if meta != nil {
		view.SetMetadata(meta)
	}

	o.logger.Info("opened fixture view", "kind", kind, "parentID", parent.ID, "seeded", len(page.Fixtures))
	return view, nil
}
