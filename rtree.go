package optics

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/RoaringBitmap/roaring/v2"
)

// IndexConfig controls R-tree node capacity and dimensionality.
// Start with [DefaultIndexConfig] and override the fields you need.
type IndexConfig struct {
	// Dimensionality fixes the number of coordinates of every record.
	// 0 adopts the dimensionality of the first inserted record. Default: 0.
	Dimensionality int

	// MinEntries is the fill threshold below which a non-root node is
	// dissolved on delete and its records reinserted.
	// Must be >= 1 and <= MaxEntries/2. Default: 3.
	MinEntries int

	// MaxEntries is the node capacity; inserting into a full node splits it.
	// Must be >= 2. Default: 8.
	MaxEntries int

	// Logger receives debug output for splits, condensing and queries.
	// Default: NoopLogger().
	Logger *Logger
}

// DefaultIndexConfig returns an IndexConfig with reasonable defaults.
func DefaultIndexConfig() IndexConfig {
	return IndexConfig{
		MinEntries: 3,
		MaxEntries: 8,
	}
}

func applyIndexDefaults(cfg *IndexConfig) {
	if cfg.MaxEntries == 0 {
		cfg.MaxEntries = 8
	}
	if cfg.MinEntries == 0 {
		cfg.MinEntries = max(1, cfg.MaxEntries*2/5)
	}
	if cfg.Logger == nil {
		cfg.Logger = NoopLogger()
	}
}

func validateIndexConfig(cfg *IndexConfig) error {
	if cfg.MaxEntries < 2 {
		return fmt.Errorf("optics: MaxEntries must be >= 2, got %d", cfg.MaxEntries)
	}
	if cfg.MinEntries < 1 || cfg.MinEntries > cfg.MaxEntries/2 {
		return fmt.Errorf("optics: MinEntries must be in [1, MaxEntries/2] = [1, %d], got %d", cfg.MaxEntries/2, cfg.MinEntries)
	}
	if cfg.Dimensionality < 0 {
		return fmt.Errorf("optics: Dimensionality must be >= 0, got %d", cfg.Dimensionality)
	}
	return nil
}

// rtreeNode is one page of the tree. Leaf nodes hold records in objects;
// directory nodes hold child pages in children.
type rtreeNode[T RealVector] struct {
	id       int
	leaf     bool
	parent   *rtreeNode[T]
	mbr      HyperBoundingBox
	children []*rtreeNode[T]
	objects  []T
}

func (n *rtreeNode[T]) ID() int               { return n.id }
func (n *rtreeNode[T]) IsLeaf() bool          { return n.leaf }
func (n *rtreeNode[T]) MBR() HyperBoundingBox { return n.mbr.Clone() }

func (n *rtreeNode[T]) NumEntries() int {
	if n.leaf {
		return len(n.objects)
	}
	return len(n.children)
}

func (n *rtreeNode[T]) Entry(i int) Entry {
	if n.leaf {
		return leafEntry[T]{obj: n.objects[i]}
	}
	c := n.children[i]
	return directoryEntry{id: c.id, mbr: c.mbr.Clone()}
}

// entryBox returns the bounding box of the i-th entry without copying.
func (n *rtreeNode[T]) entryBox(i int) HyperBoundingBox {
	if n.leaf {
		v := n.objects[i].Values()
		return HyperBoundingBox{Min: v, Max: v}
	}
	return n.children[i].mbr
}

// recomputeMBR rebuilds the node's bounding box from its entries.
func (n *rtreeNode[T]) recomputeMBR() {
	cnt := n.NumEntries()
	if cnt == 0 {
		n.mbr = HyperBoundingBox{}
		return
	}
	mbr := n.entryBox(0).Clone()
	for i := 1; i < cnt; i++ {
		mbr.extend(n.entryBox(i))
	}
	n.mbr = mbr
}

type leafEntry[T RealVector] struct {
	obj T
}

func (e leafEntry[T]) IsLeafEntry() bool     { return true }
func (e leafEntry[T]) ID() int               { return int(e.obj.ID()) }
func (e leafEntry[T]) MBR() HyperBoundingBox { return pointBox(e.obj.Values()) }

type directoryEntry struct {
	id  int
	mbr HyperBoundingBox
}

func (e directoryEntry) IsLeafEntry() bool     { return false }
func (e directoryEntry) ID() int               { return e.id }
func (e directoryEntry) MBR() HyperBoundingBox { return e.mbr }

// RTree is an in-memory R-tree implementing SpatialIndex. Inserts use
// least-enlargement subtree choice and quadratic splits; deletes condense
// underfull nodes by reinserting their records.
//
// Mutations are exclusive; queries share a read lock and may run in
// parallel. The IO-access counter is atomic.
type RTree[T RealVector] struct {
	mu       sync.RWMutex
	cfg      IndexConfig
	dims     int
	root     *rtreeNode[T]
	nodes    map[int]*rtreeNode[T]
	nextID   int
	ids      *roaring.Bitmap // ids of indexed records
	ioAccess atomic.Int64
	log      *Logger
}

var _ SpatialIndex[*DoubleVector] = (*RTree[*DoubleVector])(nil)

// NewRTree creates an empty R-tree. Returns an error if cfg is invalid.
func NewRTree[T RealVector](cfg IndexConfig) (*RTree[T], error) {
	applyIndexDefaults(&cfg)
	if err := validateIndexConfig(&cfg); err != nil {
		return nil, err
	}
	t := &RTree[T]{
		cfg:   cfg,
		dims:  cfg.Dimensionality,
		nodes: make(map[int]*rtreeNode[T]),
		ids:   roaring.New(),
		log:   cfg.Logger,
	}
	t.root = t.newNode(true)
	return t, nil
}

// newNode allocates a node with a fresh id and registers it.
func (t *RTree[T]) newNode(leaf bool) *rtreeNode[T] {
	n := &rtreeNode[T]{id: t.nextID, leaf: leaf}
	t.nextID++
	t.nodes[n.id] = n
	return n
}

// touch counts one node page access.
func (t *RTree[T]) touch() { t.ioAccess.Add(1) }

// checkVector validates o against the index dimensionality.
func (t *RTree[T]) checkVector(o T) error {
	if isNilRecord(o) {
		return ErrNilRecord
	}
	v := o.Values()
	if len(v) == 0 {
		return ErrEmptyVector
	}
	if t.dims != 0 && len(v) != t.dims {
		return &ErrDimensionMismatch{Expected: t.dims, Actual: len(v)}
	}
	for i, x := range v {
		if math.IsNaN(x) {
			return fmt.Errorf("optics: record %d has NaN coordinate at dimension %d", o.ID(), i)
		}
	}
	return nil
}

// IOAccess returns the number of node pages touched by inserts, deletes and
// queries since the index was created. It never decreases.
func (t *RTree[T]) IOAccess() int64 { return t.ioAccess.Load() }

// Root returns the root node. An empty index has an empty leaf root.
func (t *RTree[T]) Root() SpatialNode {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.root
}

// Node returns the node with the given id. Ids of nodes removed by splits
// of the root, condensing or root shrinking are no longer found.
func (t *RTree[T]) Node(id int) (SpatialNode, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n, ok := t.nodes[id]
	if !ok {
		return nil, false
	}
	return n, true
}

// LeafNodes returns all leaf nodes in depth-first order.
func (t *RTree[T]) LeafNodes() []SpatialNode {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var leaves []SpatialNode
	var walk func(n *rtreeNode[T])
	walk = func(n *rtreeNode[T]) {
		if n.leaf {
			leaves = append(leaves, n)
			return
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(t.root)
	return leaves
}

// RootEntry returns the directory entry denoting the root node.
func (t *RTree[T]) RootEntry() Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return directoryEntry{id: t.root.id, mbr: t.root.mbr.Clone()}
}

// Len returns the number of indexed records.
func (t *RTree[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return int(t.ids.GetCardinality())
}

// Contains reports whether a record with the given id is indexed.
func (t *RTree[T]) Contains(id DBID) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.ids.Contains(uint32(id))
}

// Dimensionality returns the record dimensionality, or 0 if it has not been
// fixed yet.
func (t *RTree[T]) Dimensionality() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.dims
}

// Height returns the number of levels, 1 for a tree that is a single leaf.
func (t *RTree[T]) Height() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	h := 1
	for n := t.root; !n.leaf; n = n.children[0] {
		h++
	}
	return h
}
