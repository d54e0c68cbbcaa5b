package directory

import (
	"context"
	"log/slog"
	"time"

	"github.com/mmcdole/matchday/internal/domain"
)

const (
	defaultMaxAge      = 24 * time.Hour
	defaultRecentLimit = 10
)

// Commands provides operations that hit network.
// Implements domain.DirectoryCommands.
type Commands struct {
	repo        domain.DirectoryRepository
	store       domain.Store
	maxAge      time.Duration
	recentLimit int
	now         func() time.Time
	logger      *slog.Logger
}

// NewCommands creates a new Commands instance. A non-positive maxAge or
// recentLimit selects the default.
func NewCommands(repo domain.DirectoryRepository, store domain.Store, maxAge time.Duration, recentLimit int, logger *slog.Logger) *Commands {
	if logger == nil {
		logger = slog.Default()
	}
	if maxAge <= 0 {
		maxAge = defaultMaxAge
	}
	if recentLimit <= 0 {
		recentLimit = defaultRecentLimit
	}
	return &Commands{
		repo:        repo,
		store:       store,
		maxAge:      maxAge,
		recentLimit: recentLimit,
		now:         time.Now,
		logger:      logger,
	}
}

// FetchParents always goes to the network and refreshes the store
func (c *Commands) FetchParents(ctx context.Context, kind domain.ParentKind) ([]domain.Parent, error) {
	parents, err := c.repo.GetParents(ctx, kind)
	if err != nil {
		c.logger.Error("failed to fetch parents", "error", err, "kind", kind)
		return nil, err
	}
	if err := c.store.SaveParents(kind, parents, c.now()); err != nil {
		c.logger.Error("failed to save parents", "error", err, "kind", kind)
	}
	c.logger.Debug("fetched parents", "kind", kind, "count", len(parents))
	return parents, nil
}

// SyncParents fetches the directory for kind unless the stored copy is fresh
func (c *Commands) SyncParents(ctx context.Context, kind domain.ParentKind) (domain.SyncResult, error) {
	if c.store.IsFresh(kind, c.maxAge, c.now()) {
		if parents, ok := c.store.GetParents(kind); ok {
			c.logger.Debug("directory fresh", "kind", kind, "count", len(parents))
			return domain.SyncResult{Kind: kind, FromCache: true, Count: len(parents)}, nil
		}
	}

	c.logger.Debug("directory stale, fetching", "kind", kind)
	parents, err := c.FetchParents(ctx, kind)
	if err != nil {
		return domain.SyncResult{}, err
	}
	return domain.SyncResult{Kind: kind, Count: len(parents)}, nil
}

// RecordVisit moves p to the front of the recent list
func (c *Commands) RecordVisit(p domain.Parent) {
	if p.ID == "" {
		return
	}
	if err := c.store.TouchRecent(p, c.recentLimit); err != nil {
		c.logger.Error("failed to record visit", "error", err, "parentID", p.ID)
	}
}

func (c *Commands) InvalidateAll() {
	c.store.InvalidateAll()
	c.logger.Info("invalidated all cache")
}
