package optics

import (
	"context"
	"fmt"
)

// coreDistance returns the distance to the minPts-th entry of neighbors,
// which must be sorted ascending and include the query object itself.
// Returns InfiniteDistance when there are fewer than minPts neighbors.
func coreDistance(neighbors []QueryResult, minPts int) DoubleDistance {
	if minPts < 1 || len(neighbors) < minPts {
		return InfiniteDistance
	}
	return neighbors[minPts-1].Distance
}

// CoreDistances computes the core distance of every object: the distance to
// its minPts-th nearest neighbor (the object itself included) when that
// distance is at most epsilon, InfiniteDistance otherwise. The objects must
// be indexed in idx. Queries run on up to workers goroutines (workers <= 0
// means unlimited).
//
// The returned slice has length len(objects), aligned with objects.
func CoreDistances[T RealVector](ctx context.Context, idx SpatialIndex[T], objects []T, minPts int, epsilon DoubleDistance, df SpatialDistanceFunction[T], workers int) ([]DoubleDistance, error) {
	if minPts < 1 {
		return nil, fmt.Errorf("optics: MinPts must be >= 1, got %d", minPts)
	}
	neighbors, err := batchQuery(ctx, objects, workers, func(o T) ([]QueryResult, error) {
		return idx.KNNQuery(o, minPts, df)
	})
	if err != nil {
		return nil, err
	}

	core := make([]DoubleDistance, len(objects))
	for i, nb := range neighbors {
		core[i] = coreDistance(nb, minPts)
		if core[i] > epsilon {
			core[i] = InfiniteDistance
		}
	}
	return core, nil
}
