package optics

import "container/heap"

// UpdatableHeap is a min-heap of cluster order entries that supports
// decrease-key by object id. It never holds two entries with the same id.
// The zero value is not usable; call NewUpdatableHeap.
type UpdatableHeap struct {
	items entryHeap
}

// NewUpdatableHeap creates an empty heap.
func NewUpdatableHeap() *UpdatableHeap {
	return &UpdatableHeap{items: entryHeap{pos: make(map[DBID]int)}}
}

// Len returns the number of entries.
func (h *UpdatableHeap) Len() int { return len(h.items.entries) }

// Offer inserts e, or, if an entry with the same id is present and e sorts
// before it, moves the stored entry to e's reachability and predecessor.
// It reports whether the heap changed. The stored entry stays the same
// pointer so callers holding it observe the update.
func (h *UpdatableHeap) Offer(e *ClusterOrderEntry) bool {
	i, ok := h.items.pos[e.ID()]
	if !ok {
		heap.Push(&h.items, e)
		return true
	}
	cur := h.items.entries[i]
	if e.Compare(cur) >= 0 {
		return false
	}
	cur.reachability = e.reachability
	cur.predecessorID = e.predecessorID
	cur.hasPredecessor = e.hasPredecessor
	heap.Fix(&h.items, i)
	return true
}

// Peek returns the minimum entry without removing it.
func (h *UpdatableHeap) Peek() (*ClusterOrderEntry, bool) {
	if len(h.items.entries) == 0 {
		return nil, false
	}
	return h.items.entries[0], true
}

// Pop removes and returns the minimum entry.
func (h *UpdatableHeap) Pop() (*ClusterOrderEntry, bool) {
	if len(h.items.entries) == 0 {
		return nil, false
	}
	return heap.Pop(&h.items).(*ClusterOrderEntry), true
}

// Get returns the stored entry for id.
func (h *UpdatableHeap) Get(id DBID) (*ClusterOrderEntry, bool) {
	i, ok := h.items.pos[id]
	if !ok {
		return nil, false
	}
	return h.items.entries[i], true
}

// Contains reports whether an entry for id is queued.
func (h *UpdatableHeap) Contains(id DBID) bool {
	_, ok := h.items.pos[id]
	return ok
}

// entryHeap implements heap.Interface and keeps pos in sync with the slot
// of every entry.
type entryHeap struct {
	entries []*ClusterOrderEntry
	pos     map[DBID]int
}

func (h entryHeap) Len() int           { return len(h.entries) }
func (h entryHeap) Less(i, j int) bool { return h.entries[i].Compare(h.entries[j]) < 0 }

func (h entryHeap) Swap(i, j int) {
	h.entries[i], h.entries[j] = h.entries[j], h.entries[i]
	h.pos[h.entries[i].ID()] = i
	h.pos[h.entries[j].ID()] = j
}

func (h *entryHeap) Push(x interface{}) {
	e := x.(*ClusterOrderEntry)
	h.pos[e.ID()] = len(h.entries)
	h.entries = append(h.entries, e)
}

func (h *entryHeap) Pop() interface{} {
	old := h.entries
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	h.entries = old[:n-1]
	delete(h.pos, e.ID())
	return e
}
