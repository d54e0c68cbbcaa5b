package fixtures

import (
	"context"

	"github.com/mmcdole/matchday/internal/domain"
)

const defaultPageSize = 100

// FetchFunc loads a parent's full fixture collection narrowed by q.
// League and team views supply different implementations.
type FetchFunc func(ctx context.Context, parentID string, q domain.FixtureQuery) ([]domain.Fixture, error)

// PagedFetch adapts the repository's paged endpoint into a FetchFunc that
// walks every page. Progress goes to the reporter installed with WithProgress.
func PagedFetch(repo domain.FixtureRepository, kind domain.ParentKind, pageSize int) FetchFunc {
	return func(ctx context.Context, parentID string, q domain.FixtureQuery) ([]domain.Fixture, error) {
		return fetchAll(ctx,
			func(ctx context.Context, page, limit int) ([]domain.Fixture, int, error) {
				return repo.GetFixtures(ctx, kind, parentID, q, page, limit)
			},
			pageSize,
			progressFrom(ctx),
		)
	}
}

// fetchAll is a generic pagination helper. Pages are 1-based.
func fetchAll[T any](
	ctx context.Context,
	fetch func(ctx context.Context, page, limit int) ([]T, int, error),
	pageSize int,
	onProgress domain.ProgressFunc,
) ([]T, error) {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	all := []T{}
	page := 1

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		items, total, err := fetch(ctx, page, pageSize)
		if err != nil {
			return nil, err
		}

		all = append(all, items...)

		if onProgress != nil {
			onProgress(len(all), total)
		}

		if len(all) >= total || len(items) == 0 {
			break
		}
		page++
	}

	return all, nil
}
