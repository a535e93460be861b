package optics

import (
	"cmp"
	"container/heap"
	"context"
	"fmt"
	"math"
	"slices"
)

// RangeQuery returns every record within epsilon of obj under df, ordered
// by ascending distance and then ascending id. Subtrees whose box lies
// farther than epsilon are skipped.
func (t *RTree[T]) RangeQuery(obj T, epsilon DoubleDistance, df SpatialDistanceFunction[T]) ([]QueryResult, error) {
	if math.IsNaN(float64(epsilon)) || epsilon < 0 {
		return nil, fmt.Errorf("%w, got %v", ErrInvalidEpsilon, epsilon)
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	res, err := t.rangeQuery(obj, epsilon, df)
	t.log.LogSearch("range", len(res), err)
	return res, err
}

func (t *RTree[T]) rangeQuery(obj T, epsilon DoubleDistance, df SpatialDistanceFunction[T]) ([]QueryResult, error) {
	if err := t.checkVector(obj); err != nil {
		return nil, err
	}
	results := []QueryResult{}
	if t.root.NumEntries() == 0 {
		t.touch()
		return results, nil
	}

	stack := []*rtreeNode[T]{t.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		t.touch()

		if n.leaf {
			for _, o := range n.objects {
				if d := df.Distance(obj, o); d <= epsilon {
					results = append(results, QueryResult{ID: o.ID(), Distance: d})
				}
			}
			continue
		}
		for _, c := range n.children {
			if df.MinDist(c.mbr, obj) <= epsilon {
				stack = append(stack, c)
			}
		}
	}

	slices.SortFunc(results, compareResults)
	return results, nil
}

// KNNQuery returns the k records closest to obj under df, ordered by
// ascending distance and then ascending id. Nodes are visited best-first
// by their box lower bound; the search stops once the next node cannot
// beat the current k-th neighbor. k <= 0 fails with ErrInvalidK.
func (t *RTree[T]) KNNQuery(obj T, k int, df SpatialDistanceFunction[T]) ([]QueryResult, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidK, k)
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	res, err := t.knnQuery(obj, k, df)
	t.log.LogSearch("knn", len(res), err)
	return res, err
}

func (t *RTree[T]) knnQuery(obj T, k int, df SpatialDistanceFunction[T]) ([]QueryResult, error) {
	if err := t.checkVector(obj); err != nil {
		return nil, err
	}
	if t.root.NumEntries() == 0 {
		t.touch()
		return []QueryResult{}, nil
	}

	best := &knnHeap{}
	frontier := &nodeHeap[T]{}
	heap.Push(frontier, nodeItem[T]{node: t.root, dist: df.MinDist(t.root.mbr, obj)})

	for frontier.Len() > 0 {
		item := heap.Pop(frontier).(nodeItem[T])
		if best.Len() == k && item.dist > (*best)[0].Distance {
			break
		}
		t.touch()

		n := item.node
		if n.leaf {
			for _, o := range n.objects {
				cand := QueryResult{ID: o.ID(), Distance: df.Distance(obj, o)}
				if best.Len() < k {
					heap.Push(best, cand)
				} else if compareResults(cand, (*best)[0]) < 0 {
					(*best)[0] = cand
					heap.Fix(best, 0)
				}
			}
			continue
		}
		for _, c := range n.children {
			d := df.MinDist(c.mbr, obj)
			if best.Len() < k || d <= (*best)[0].Distance {
				heap.Push(frontier, nodeItem[T]{node: c, dist: d})
			}
		}
	}

	// Extract results sorted by distance (ascending).
	results := make([]QueryResult, best.Len())
	for i := len(results) - 1; i >= 0; i-- {
		results[i] = heap.Pop(best).(QueryResult)
	}
	return results, nil
}

// BatchKNNQuery runs KNNQuery for every object using up to workers
// goroutines (workers <= 0 means unlimited). results[i] belongs to objs[i].
func (t *RTree[T]) BatchKNNQuery(ctx context.Context, objs []T, k int, df SpatialDistanceFunction[T], workers int) ([][]QueryResult, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidK, k)
	}
	return batchQuery(ctx, objs, workers, func(o T) ([]QueryResult, error) {
		return t.KNNQuery(o, k, df)
	})
}

// BatchRangeQuery runs RangeQuery for every object using up to workers
// goroutines (workers <= 0 means unlimited). results[i] belongs to objs[i].
func (t *RTree[T]) BatchRangeQuery(ctx context.Context, objs []T, epsilon DoubleDistance, df SpatialDistanceFunction[T], workers int) ([][]QueryResult, error) {
	return batchQuery(ctx, objs, workers, func(o T) ([]QueryResult, error) {
		return t.RangeQuery(o, epsilon, df)
	})
}

// compareResults orders query results by distance, then id.
func compareResults(a, b QueryResult) int {
	if c := a.Distance.Compare(b.Distance); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// --- max-heap for KNN results ---

// knnHeap is a max-heap of QueryResult (worst candidate on top) used as a
// bounded priority queue for KNN queries.
type knnHeap []QueryResult

func (h knnHeap) Len() int            { return len(h) }
func (h knnHeap) Less(i, j int) bool  { return compareResults(h[i], h[j]) > 0 } // max-heap
func (h knnHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *knnHeap) Push(x interface{}) { *h = append(*h, x.(QueryResult)) }
func (h *knnHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// --- min-heap of nodes keyed by box lower bound ---

type nodeItem[T RealVector] struct {
	node *rtreeNode[T]
	dist DoubleDistance
}

type nodeHeap[T RealVector] []nodeItem[T]

func (h nodeHeap[T]) Len() int            { return len(h) }
func (h nodeHeap[T]) Less(i, j int) bool  { return h[i].dist < h[j].dist }
func (h nodeHeap[T]) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap[T]) Push(x interface{}) { *h = append(*h, x.(nodeItem[T])) }
func (h *nodeHeap[T]) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
