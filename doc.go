// Package optics implements a dynamic R-tree spatial index and the
// cluster-order machinery used by OPTICS-style density-based clustering.
//
// The index stores fixed-dimension vectors and answers range and k-nearest
// neighbor queries with branch-and-bound pruning over node bounding boxes.
// Every node page touched by an insert, delete or query is counted by the
// index's IO-access counter.
//
// Basic usage:
//
//	idx, err := optics.NewRTree[*optics.DoubleVector](optics.DefaultIndexConfig())
//	v, _ := optics.NewDoubleVector(1, []float64{0, 0})
//	err = idx.Insert(v)
//	df := optics.NewSpatialDistance[*optics.DoubleVector](optics.EuclideanMetric{})
//	neighbors, err := idx.KNNQuery(v, 5, df)
//
// Cluster ordering:
//
//	cfg := optics.DefaultConfig()
//	cfg.Epsilon = 2.5
//	cfg.MinPts = 4
//	order, err := optics.OPTICS(idx, vectors, cfg)
//	labels := order.ExtractDBSCAN(1.0)
//	// labels[id] is the cluster for object id (-1 = noise)
//
// # Concurrency
//
// Mutations (Insert, Delete) take the index's write lock; queries take the
// read lock and may run concurrently with each other. The IO-access counter
// is updated atomically. Node views returned by Root, Node and LeafNodes are
// snapshots of live tree nodes and must not be held across mutations.
//
// # Cluster order entries
//
// A ClusterOrderEntry is ordered by ascending reachability and, on ties, by
// descending object id. Equality is by object id alone so an UpdatableHeap
// can lower an entry's reachability in place.
package optics
