package fixtures

import (
	"context"

	"github.com/mmcdole/matchday/internal/domain"
)

type progressKey struct{}

// WithProgress returns a context whose paged fetches report to fn
func WithProgress(ctx context.Context, fn domain.ProgressFunc) context.Context {
	return context.WithValue(ctx, progressKey{}, fn)
}

// progressFrom returns the reporter installed by WithProgress, or nil
func progressFrom(ctx context.Context) domain.ProgressFunc {
	fn, _ := ctx.Value(progressKey{}).(domain.ProgressFunc)
	return fn
}
