package optics

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// batchQuery runs query for every object on up to workers goroutines
// (workers <= 0 means unlimited). results[i] belongs to objs[i]. The first
// failing query cancels the remaining ones.
func batchQuery[T RealVector](ctx context.Context, objs []T, workers int, query func(T) ([]QueryResult, error)) ([][]QueryResult, error) {
	results := make([][]QueryResult, len(objs))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, o := range objs {
		i, o := i, o
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if isNilRecord(o) {
				return fmt.Errorf("optics: query %d: %w", i, ErrNilRecord)
			}
			r, err := query(o)
			if err != nil {
				return fmt.Errorf("optics: query for object %d: %w", o.ID(), err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// prefetchNeighborhoods runs the epsilon range query of every object in
// parallel. Since the index is only read, each worker shares the read lock.
func prefetchNeighborhoods[T RealVector](idx SpatialIndex[T], objects []T, epsilon DoubleDistance, df SpatialDistanceFunction[T], workers int) ([][]QueryResult, error) {
	return batchQuery(context.Background(), objects, workers, func(o T) ([]QueryResult, error) {
		return idx.RangeQuery(o, epsilon, df)
	})
}
