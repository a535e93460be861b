package optics

import (
	"fmt"
	"math"
	"slices"
)

// BulkLoad builds an R-tree over objects in one pass instead of inserting
// them one by one. Records are put in spatial order by recursive median
// splits on the dimension of greatest spread, then packed evenly into
// leaves; directory levels are packed the same way over child box centers
// until a single root remains.
//
// Every leaf sits at the same depth and every non-root node holds between
// MinEntries and MaxEntries entries, so the result behaves like any other
// RTree under later inserts and deletes. Invalid records or duplicate ids
// fail the whole load.
func BulkLoad[T RealVector](cfg IndexConfig, objects []T) (*RTree[T], error) {
	t, err := NewRTree[T](cfg)
	if err != nil {
		return nil, err
	}
	if len(objects) == 0 {
		return t, nil
	}

	for i, o := range objects {
		if err := t.checkVector(o); err != nil {
			return nil, fmt.Errorf("optics: bulk load record %d: %w", i, err)
		}
		if t.dims == 0 {
			t.dims = len(o.Values())
		}
		if !t.ids.CheckedAdd(uint32(o.ID())) {
			return nil, fmt.Errorf("optics: bulk load record %d: %w: %d", i, ErrDuplicateID, o.ID())
		}
	}

	ordered := slices.Clone(objects)
	kdOrder(ordered, t.dims, t.cfg.MaxEntries, func(o T) []float64 { return o.Values() })

	// The empty leaf created by NewRTree is replaced.
	delete(t.nodes, t.root.id)

	var level []*rtreeNode[T]
	for _, part := range evenChunks(len(ordered), t.cfg.MaxEntries) {
		leaf := t.newNode(true)
		leaf.objects = slices.Clone(ordered[part[0]:part[1]])
		leaf.recomputeMBR()
		t.touch()
		level = append(level, leaf)
	}

	for len(level) > 1 {
		kdOrder(level, t.dims, t.cfg.MaxEntries, func(n *rtreeNode[T]) []float64 { return n.mbr.Center() })
		var parents []*rtreeNode[T]
		for _, part := range evenChunks(len(level), t.cfg.MaxEntries) {
			dir := t.newNode(false)
			dir.children = slices.Clone(level[part[0]:part[1]])
			for _, c := range dir.children {
				c.parent = dir
			}
			dir.recomputeMBR()
			t.touch()
			parents = append(parents, dir)
		}
		level = parents
	}

	t.root = level[0]
	t.root.parent = nil
	t.log.Debug("bulk load completed", "records", len(objects), "nodes", len(t.nodes))
	return t, nil
}

// evenChunks splits n items into ceil(n/size) contiguous [start, end)
// ranges whose lengths differ by at most one.
func evenChunks(n, size int) [][2]int {
	c := (n + size - 1) / size
	base, extra := n/c, n%c
	chunks := make([][2]int, 0, c)
	start := 0
	for i := 0; i < c; i++ {
		l := base
		if i < extra {
			l++
		}
		chunks = append(chunks, [2]int{start, start + l})
		start += l
	}
	return chunks
}

// kdOrder reorders items so that spatially close items end up adjacent.
// A range larger than leafSize is sorted by the dimension with the
// greatest spread and split at the median; both halves are ordered
// recursively.
func kdOrder[E any](items []E, dims, leafSize int, coord func(E) []float64) {
	if len(items) <= leafSize {
		return
	}

	// Find dimension with greatest spread.
	splitDim := 0
	maxSpread := -1.0
	for d := 0; d < dims; d++ {
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, it := range items {
			v := coord(it)[d]
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		if spread := hi - lo; spread > maxSpread {
			maxSpread = spread
			splitDim = d
		}
	}

	// Sort by the split dimension and split at the median.
	slices.SortStableFunc(items, func(a, b E) int {
		ca, cb := coord(a)[splitDim], coord(b)[splitDim]
		switch {
		case ca < cb:
			return -1
		case ca > cb:
			return 1
		default:
			return 0
		}
	})
	mid := len(items) / 2
	kdOrder(items[:mid], dims, leafSize, coord)
	kdOrder(items[mid:], dims, leafSize, coord)
}
