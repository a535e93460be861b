package optics

import (
	"fmt"
	"math"
)

// Insert adds o to the index. It fails with an *ErrDimensionMismatch for
// wrong dimensionality, ErrEmptyVector for empty records and ErrDuplicateID
// when a record with the same id is already indexed. A failed insert leaves
// the tree untouched. A nil record fails with ErrNilRecord.
func (t *RTree[T]) Insert(o T) error {
	if isNilRecord(o) {
		t.log.Error("insert failed", "error", ErrNilRecord)
		return ErrNilRecord
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	err := t.insert(o)
	t.log.LogInsert(o.ID(), o.Dimensionality(), err)
	return err
}

func (t *RTree[T]) insert(o T) error {
	if err := t.checkVector(o); err != nil {
		return err
	}
	if t.ids.Contains(uint32(o.ID())) {
		return fmt.Errorf("%w: %d", ErrDuplicateID, o.ID())
	}
	if t.dims == 0 {
		t.dims = len(o.Values())
	}
	t.insertObject(o)
	t.ids.Add(uint32(o.ID()))
	return nil
}

// insertObject places o in a leaf and repairs the path up to the root.
func (t *RTree[T]) insertObject(o T) {
	v := o.Values()
	leaf := t.chooseLeaf(HyperBoundingBox{Min: v, Max: v})
	leaf.objects = append(leaf.objects, o)
	t.touch()

	var split *rtreeNode[T]
	if len(leaf.objects) > t.cfg.MaxEntries {
		split = t.splitNode(leaf)
	}
	t.adjustTree(leaf, split)
}

// chooseLeaf descends from the root, at each level following the child
// whose box needs the least enlargement to cover box. Ties go to the
// smaller volume, then the smaller margin.
func (t *RTree[T]) chooseLeaf(box HyperBoundingBox) *rtreeNode[T] {
	n := t.root
	for {
		t.touch()
		if n.leaf {
			return n
		}
		best := n.children[0]
		bestEnl := best.mbr.Enlargement(box)
		for _, c := range n.children[1:] {
			enl := c.mbr.Enlargement(box)
			switch {
			case enl < bestEnl:
				best, bestEnl = c, enl
			case enl == bestEnl:
				cv, bv := c.mbr.Volume(), best.mbr.Volume()
				if cv < bv || (cv == bv && c.mbr.Margin() < best.mbr.Margin()) {
					best = c
				}
			}
		}
		n = best
	}
}

// adjustTree walks from n to the root, refreshing bounding boxes and
// installing the sibling nn produced by a split. A split of the root grows
// the tree by one level.
func (t *RTree[T]) adjustTree(n, nn *rtreeNode[T]) {
	for {
		n.recomputeMBR()
		if n == t.root {
			if nn != nil {
				t.growRoot(n, nn)
			}
			return
		}

		parent := n.parent
		var pp *rtreeNode[T]
		if nn != nil {
			nn.parent = parent
			parent.children = append(parent.children, nn)
			if len(parent.children) > t.cfg.MaxEntries {
				pp = t.splitNode(parent)
			}
		}
		t.touch()
		n, nn = parent, pp
	}
}

func (t *RTree[T]) growRoot(a, b *rtreeNode[T]) {
	root := t.newNode(false)
	root.children = []*rtreeNode[T]{a, b}
	a.parent = root
	b.parent = root
	root.recomputeMBR()
	t.root = root
	t.touch()
	t.log.Debug("root grown", "root", root.id)
}

// splitNode divides the entries of an overfull node between n and a new
// sibling, which is returned. The sibling is not yet linked to a parent.
func (t *RTree[T]) splitNode(n *rtreeNode[T]) *rtreeNode[T] {
	cnt := n.NumEntries()
	boxes := make([]HyperBoundingBox, cnt)
	for i := range boxes {
		boxes[i] = n.entryBox(i)
	}
	groupA, groupB := quadraticSplit(boxes, t.cfg.MinEntries)

	nn := t.newNode(n.leaf)
	if n.leaf {
		objects := n.objects
		n.objects = make([]T, 0, t.cfg.MaxEntries+1)
		for _, i := range groupA {
			n.objects = append(n.objects, objects[i])
		}
		nn.objects = make([]T, 0, t.cfg.MaxEntries+1)
		for _, i := range groupB {
			nn.objects = append(nn.objects, objects[i])
		}
	} else {
		children := n.children
		n.children = make([]*rtreeNode[T], 0, t.cfg.MaxEntries+1)
		for _, i := range groupA {
			n.children = append(n.children, children[i])
		}
		nn.children = make([]*rtreeNode[T], 0, t.cfg.MaxEntries+1)
		for _, i := range groupB {
			c := children[i]
			c.parent = nn
			nn.children = append(nn.children, c)
		}
	}
	n.recomputeMBR()
	nn.recomputeMBR()
	t.touch()
	t.touch()
	t.log.LogSplit(n.id, nn.id, n.leaf)
	return nn
}

// quadraticSplit partitions entry boxes into two groups of at least
// minEntries each using Guttman's quadratic algorithm. It returns entry
// positions for both groups.
func quadraticSplit(boxes []HyperBoundingBox, minEntries int) (a, b []int) {
	s1, s2 := pickSeeds(boxes)
	a = []int{s1}
	b = []int{s2}
	boxA := boxes[s1].Clone()
	boxB := boxes[s2].Clone()

	remaining := make([]int, 0, len(boxes)-2)
	for i := range boxes {
		if i != s1 && i != s2 {
			remaining = append(remaining, i)
		}
	}

	for len(remaining) > 0 {
		// Hand everything left to a group that would otherwise underflow.
		if len(a)+len(remaining) <= minEntries {
			return append(a, remaining...), b
		}
		if len(b)+len(remaining) <= minEntries {
			return a, append(b, remaining...)
		}

		// pickNext: the entry with the strongest preference for one group.
		next, maxDiff := 0, -1.0
		for pos, i := range remaining {
			diff := math.Abs(boxA.Enlargement(boxes[i]) - boxB.Enlargement(boxes[i]))
			if diff > maxDiff {
				next, maxDiff = pos, diff
			}
		}
		i := remaining[next]
		remaining = append(remaining[:next], remaining[next+1:]...)

		enlA, enlB := boxA.Enlargement(boxes[i]), boxB.Enlargement(boxes[i])
		toA := enlA < enlB
		if enlA == enlB {
			va, vb := boxA.Volume(), boxB.Volume()
			toA = va < vb || (va == vb && len(a) <= len(b))
		}
		if toA {
			a = append(a, i)
			boxA.extend(boxes[i])
		} else {
			b = append(b, i)
			boxB.extend(boxes[i])
		}
	}
	return a, b
}

// pickSeeds returns the pair of entries wasting the most volume when put in
// the same group. Ties, common for point entries, go to the pair whose
// combined box has the larger margin.
func pickSeeds(boxes []HyperBoundingBox) (int, int) {
	s1, s2 := 0, 1
	bestWaste, bestMargin := math.Inf(-1), math.Inf(-1)
	for i := 0; i < len(boxes); i++ {
		for j := i + 1; j < len(boxes); j++ {
			u := boxes[i].Union(boxes[j])
			waste := u.Volume() - boxes[i].Volume() - boxes[j].Volume()
			margin := u.Margin()
			if waste > bestWaste || (waste == bestWaste && margin > bestMargin) {
				s1, s2 = i, j
				bestWaste, bestMargin = waste, margin
			}
		}
	}
	return s1, s2
}
