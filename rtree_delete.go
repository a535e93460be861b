package optics

// Delete removes the record whose id equals o.ID() and reports whether it
// was present. Deleting an absent or nil record is not an error.
func (t *RTree[T]) Delete(o T) bool {
	if isNilRecord(o) {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	found := t.delete(o)
	t.log.LogDelete(o.ID(), found)
	return found
}

func (t *RTree[T]) delete(o T) bool {
	id := o.ID()
	if !t.ids.Contains(uint32(id)) {
		return false
	}

	leaf, pos := t.findLeaf(t.root, o)
	if leaf == nil {
		// o's coordinates differ from the stored record; fall back to a
		// full scan by id.
		leaf, pos = t.findLeafByID(t.root, id)
	}
	if leaf == nil {
		return false
	}

	leaf.objects = append(leaf.objects[:pos], leaf.objects[pos+1:]...)
	t.touch()
	t.ids.Remove(uint32(id))
	t.condenseTree(leaf)
	return true
}

// findLeaf searches the subtrees whose boxes contain o's coordinates.
func (t *RTree[T]) findLeaf(n *rtreeNode[T], o T) (*rtreeNode[T], int) {
	t.touch()
	if n.leaf {
		for i, obj := range n.objects {
			if obj.ID() == o.ID() {
				return n, i
			}
		}
		return nil, -1
	}
	p := o.Values()
	for _, c := range n.children {
		if !c.mbr.ContainsPoint(p) {
			continue
		}
		if leaf, pos := t.findLeaf(c, o); leaf != nil {
			return leaf, pos
		}
	}
	return nil, -1
}

func (t *RTree[T]) findLeafByID(n *rtreeNode[T], id DBID) (*rtreeNode[T], int) {
	t.touch()
	if n.leaf {
		for i, obj := range n.objects {
			if obj.ID() == id {
				return n, i
			}
		}
		return nil, -1
	}
	for _, c := range n.children {
		if leaf, pos := t.findLeafByID(c, id); leaf != nil {
			return leaf, pos
		}
	}
	return nil, -1
}

// condenseTree walks from leaf to the root. Underfull nodes on the way are
// detached and their records reinserted; the others get fresh boxes.
func (t *RTree[T]) condenseTree(leaf *rtreeNode[T]) {
	var orphans []T
	n := leaf
	for n != t.root {
		parent := n.parent
		if n.NumEntries() < t.cfg.MinEntries {
			for i, c := range parent.children {
				if c == n {
					parent.children = append(parent.children[:i], parent.children[i+1:]...)
					break
				}
			}
			orphans = t.detach(n, orphans)
		} else {
			n.recomputeMBR()
		}
		t.touch()
		n = parent
	}
	t.root.recomputeMBR()
	t.shrinkRoot()

	if len(orphans) > 0 {
		t.log.Debug("reinserting orphaned records", "count", len(orphans))
	}
	for _, o := range orphans {
		t.insertObject(o)
	}
}

// detach unregisters every node below and including n, appending the
// records it held to dst.
func (t *RTree[T]) detach(n *rtreeNode[T], dst []T) []T {
	delete(t.nodes, n.id)
	n.parent = nil
	if n.leaf {
		return append(dst, n.objects...)
	}
	for _, c := range n.children {
		dst = t.detach(c, dst)
	}
	return dst
}

// shrinkRoot removes directory roots with a single child.
func (t *RTree[T]) shrinkRoot() {
	for !t.root.leaf && len(t.root.children) == 1 {
		old := t.root
		t.root = old.children[0]
		t.root.parent = nil
		delete(t.nodes, old.id)
		t.log.Debug("root shrunk", "old_root", old.id, "root", t.root.id)
	}
	if !t.root.leaf && len(t.root.children) == 0 {
		t.root.leaf = true
		t.root.children = nil
		t.root.mbr = HyperBoundingBox{}
	}
}
