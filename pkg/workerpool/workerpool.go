// Package workerpool provides bounded concurrent processing utilities.
package workerpool

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Map applies fn to every item using at most workerCount goroutines and
// returns the results in item order. The first error cancels the context
// handed to the remaining calls, invokes onCancel once and is returned.
func Map[T, R any](
	ctx context.Context,
	workerCount int,
	items []T,
	fn func(context.Context, T) (R, error),
	onCancel func(),
) ([]R, error) {
	if workerCount < 1 {
		workerCount = 1
	}
	results := make([]R, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount)

	var once sync.Once
	cancelled := func() {
		if onCancel != nil {
			once.Do(onCancel)
		}
	}

	for i, item := range items {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := fn(gctx, item)
			if err != nil {
				cancelled()
				return err
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
