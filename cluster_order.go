package optics

import (
	"cmp"
	"fmt"
	"math"
)

// ClusterOrderEntry is one element of a cluster order: an object, the
// object it was reached from, and its reachability distance.
//
// Entries are ordered by ascending reachability, ties broken by descending
// object id. Equality is by object id only: an UpdatableHeap finds an
// entry by id and lowers its reachability in place.
type ClusterOrderEntry struct {
	objectID       DBID
	predecessorID  DBID
	hasPredecessor bool
	reachability   DoubleDistance
}

// NewClusterOrderEntry creates an entry reached from predecessorID.
// A NaN reachability fails with ErrNaNReachability.
func NewClusterOrderEntry(objectID, predecessorID DBID, reachability DoubleDistance) (*ClusterOrderEntry, error) {
	if math.IsNaN(float64(reachability)) {
		return nil, fmt.Errorf("%w: object %d", ErrNaNReachability, objectID)
	}
	return &ClusterOrderEntry{
		objectID:       objectID,
		predecessorID:  predecessorID,
		hasPredecessor: true,
		reachability:   reachability,
	}, nil
}

// NewSeedEntry creates an entry without predecessor, starting a new run of
// the cluster order.
func NewSeedEntry(objectID DBID, reachability DoubleDistance) (*ClusterOrderEntry, error) {
	if math.IsNaN(float64(reachability)) {
		return nil, fmt.Errorf("%w: object %d", ErrNaNReachability, objectID)
	}
	return &ClusterOrderEntry{objectID: objectID, reachability: reachability}, nil
}

// ID returns the object id of this entry.
func (e *ClusterOrderEntry) ID() DBID { return e.objectID }

// PredecessorID returns the id of the entry's predecessor; ok is false for
// seed entries.
func (e *ClusterOrderEntry) PredecessorID() (id DBID, ok bool) {
	return e.predecessorID, e.hasPredecessor
}

// Reachability returns the reachability distance of this entry.
func (e *ClusterOrderEntry) Reachability() DoubleDistance { return e.reachability }

// Compare orders by reachability ascending and, on equal reachability, by
// object id descending.
func (e *ClusterOrderEntry) Compare(o *ClusterOrderEntry) int {
	if c := e.reachability.Compare(o.reachability); c != 0 {
		return c
	}
	return -cmp.Compare(e.objectID, o.objectID)
}

// Equal reports whether both entries refer to the same object, regardless
// of predecessor and reachability.
func (e *ClusterOrderEntry) Equal(o *ClusterOrderEntry) bool {
	if e == o {
		return true
	}
	if o == nil || e == nil {
		return false
	}
	return e.objectID == o.objectID
}

func (e *ClusterOrderEntry) String() string {
	pred := "null"
	if e.hasPredecessor {
		pred = fmt.Sprint(e.predecessorID)
	}
	return fmt.Sprintf("%d(%s,%s)", e.objectID, pred, e.reachability)
}

// ClusterOrder is the result of an OPTICS run: all objects in visiting
// order, with the core distance each had when it was expanded.
type ClusterOrder struct {
	Entries []*ClusterOrderEntry

	// CoreDistances[i] is the core distance of Entries[i]'s object;
	// InfiniteDistance when its neighborhood had fewer than MinPts objects.
	CoreDistances []DoubleDistance
}

func (c *ClusterOrder) add(e *ClusterOrderEntry, core DoubleDistance) {
	c.Entries = append(c.Entries, e)
	c.CoreDistances = append(c.CoreDistances, core)
}

// Len returns the number of entries.
func (c *ClusterOrder) Len() int { return len(c.Entries) }

// IDs returns the object ids in cluster order.
func (c *ClusterOrder) IDs() []DBID {
	ids := make([]DBID, len(c.Entries))
	for i, e := range c.Entries {
		ids[i] = e.ID()
	}
	return ids
}

// Reachabilities returns the reachability plot values in cluster order.
func (c *ClusterOrder) Reachabilities() []DoubleDistance {
	r := make([]DoubleDistance, len(c.Entries))
	for i, e := range c.Entries {
		r[i] = e.Reachability()
	}
	return r
}

// ExtractDBSCAN derives the flat DBSCAN clustering for epsPrime (which
// should not exceed the OPTICS epsilon) from the cluster order. Clusters
// are numbered from 0 in order of appearance; noise is -1.
//
// An object whose reachability exceeds epsPrime starts a new cluster if it
// is a core object at epsPrime and is noise otherwise. Any other object
// joins the current cluster.
func (c *ClusterOrder) ExtractDBSCAN(epsPrime DoubleDistance) map[DBID]int {
	labels := make(map[DBID]int, len(c.Entries))
	cluster := -1
	for i, e := range c.Entries {
		if e.Reachability() > epsPrime {
			if c.CoreDistances[i] <= epsPrime {
				cluster++
				labels[e.ID()] = cluster
			} else {
				labels[e.ID()] = -1
			}
			continue
		}
		labels[e.ID()] = cluster
	}
	return labels
}
