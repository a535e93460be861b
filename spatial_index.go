package optics

// QueryResult is a single hit of a range or k-NN query.
type QueryResult struct {
	ID       DBID
	Distance DoubleDistance
}

// Entry is an element of a spatial node: either a directory entry pointing
// at a child node, or a leaf entry holding an indexed record.
type Entry interface {
	// IsLeafEntry reports whether the entry holds a record.
	IsLeafEntry() bool

	// ID returns the child node id for directory entries and the record id
	// (as int) for leaf entries.
	ID() int

	// MBR returns the entry's bounding box. Leaf entries have a degenerate
	// box around their record.
	MBR() HyperBoundingBox
}

// SpatialNode is a read-only view of one tree node.
type SpatialNode interface {
	// ID returns the node id, valid until the node is removed from the tree.
	ID() int

	// IsLeaf reports whether the node holds records rather than child nodes.
	IsLeaf() bool

	// NumEntries returns the number of entries in the node.
	NumEntries() int

	// Entry returns the i-th entry, 0 <= i < NumEntries().
	Entry(i int) Entry

	// MBR returns the bounding box of all entries in the node.
	MBR() HyperBoundingBox
}

// SpatialIndex is a tree-backed index over vector records supporting
// insertion, deletion, range and k-nearest neighbor queries. Query results
// are ordered by ascending distance, ties broken by ascending id.
type SpatialIndex[T RealVector] interface {
	// Insert adds o. A dimensionality mismatch or a duplicate id is reported
	// as an error and leaves the index unchanged.
	Insert(o T) error

	// Delete removes the record with o's id and reports whether it was present.
	Delete(o T) bool

	// RangeQuery returns every record within epsilon of obj.
	RangeQuery(obj T, epsilon DoubleDistance, df SpatialDistanceFunction[T]) ([]QueryResult, error)

	// KNNQuery returns the k records closest to obj, or all of them when
	// fewer than k are indexed.
	KNNQuery(obj T, k int, df SpatialDistanceFunction[T]) ([]QueryResult, error)

	// IOAccess returns the number of node pages touched since creation.
	IOAccess() int64

	// Root returns the root node.
	Root() SpatialNode

	// Node returns the node with the given id if it is part of the tree.
	Node(id int) (SpatialNode, bool)

	// LeafNodes returns every node that has no children.
	LeafNodes() []SpatialNode

	// RootEntry returns the directory entry denoting the root.
	RootEntry() Entry
}
