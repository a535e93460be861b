package optics

import (
	"fmt"
	"math"

	"github.com/bits-and-blooms/bitset"
)

// Config controls OPTICS cluster ordering.
// Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// Epsilon is the neighborhood radius. Smaller values make range queries
	// cheaper but leave more objects with undefined core distance.
	// 0 means unbounded. Must be >= 0. Default: +Inf.
	Epsilon DoubleDistance

	// MinPts is the number of objects (the object itself included) an
	// epsilon-neighborhood needs for its center to be a core object.
	// Must be >= 1. Default: 5.
	MinPts int

	// Metric is the distance function used for neighborhood queries.
	// Built-in: EuclideanMetric, ManhattanMetric, CosineMetric, ChebyshevMetric,
	// MinkowskiMetric. Use DistanceFunc to wrap a custom function.
	// Default: EuclideanMetric.
	Metric DistanceMetric

	// Workers > 1 runs all epsilon range queries up front on that many
	// goroutines; the ordering itself stays sequential and the result is
	// identical. Prefetching keeps every neighborhood in memory. Default: 1.
	Workers int

	// Logger receives run summaries. Default: NoopLogger().
	Logger *Logger
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		Epsilon: InfiniteDistance,
		MinPts:  5,
		Metric:  EuclideanMetric{},
		Workers: 1,
	}
}

// applyDefaults fills in zero-valued config fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.Epsilon == 0 {
		cfg.Epsilon = InfiniteDistance
	}
	if cfg.MinPts == 0 {
		cfg.MinPts = 5
	}
	if cfg.Metric == nil {
		cfg.Metric = EuclideanMetric{}
	}
	if cfg.Workers == 0 {
		cfg.Workers = 1
	}
	if cfg.Logger == nil {
		cfg.Logger = NoopLogger()
	}
}

// validateConfig checks that cfg fields are valid and returns a descriptive error if not.
func validateConfig(cfg *Config) error {
	if math.IsNaN(float64(cfg.Epsilon)) || cfg.Epsilon < 0 {
		return fmt.Errorf("optics: Epsilon must be >= 0, got %v", cfg.Epsilon)
	}
	if cfg.MinPts < 1 {
		return fmt.Errorf("optics: MinPts must be >= 1, got %d", cfg.MinPts)
	}
	if cfg.Workers < 1 {
		return fmt.Errorf("optics: Workers must be >= 1, got %d", cfg.Workers)
	}
	return nil
}

// OPTICS computes the cluster order of objects, which must be exactly the
// records indexed in idx. Objects are expanded in slice order whenever
// they have not been reached yet, each starting a new run seeded with
// infinite reachability. Returns an error if the config is invalid,
// objects contain duplicate ids, or a query fails.
func OPTICS[T RealVector](idx SpatialIndex[T], objects []T, cfg Config) (*ClusterOrder, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	pos := make(map[DBID]int, len(objects))
	for i, o := range objects {
		if isNilRecord(o) {
			return nil, fmt.Errorf("optics: object %d: %w", i, ErrNilRecord)
		}
		if _, dup := pos[o.ID()]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, o.ID())
		}
		pos[o.ID()] = i
	}

	cfg.Logger.Info("cluster order started",
		"objects", len(objects),
		"epsilon", cfg.Epsilon.Float64(),
		"min_pts", cfg.MinPts,
	)

	r := &opticsRun[T]{
		idx:       idx,
		objects:   objects,
		pos:       pos,
		cfg:       cfg,
		df:        NewSpatialDistance[T](cfg.Metric),
		processed: bitset.New(uint(len(objects))),
		order: &ClusterOrder{
			Entries:       make([]*ClusterOrderEntry, 0, len(objects)),
			CoreDistances: make([]DoubleDistance, 0, len(objects)),
		},
	}

	if cfg.Workers > 1 {
		nb, err := prefetchNeighborhoods(idx, objects, cfg.Epsilon, r.df, cfg.Workers)
		if err != nil {
			return nil, err
		}
		r.prefetched = nb
	}

	runs := 0
	for i := range objects {
		if r.processed.Test(uint(i)) {
			continue
		}
		runs++
		if err := r.expandClusterOrder(i); err != nil {
			return nil, err
		}
	}

	cfg.Logger.LogClusterOrder(r.order.Len(), runs, idx.IOAccess())
	return r.order, nil
}

// opticsRun holds the traversal state of one OPTICS invocation.
type opticsRun[T RealVector] struct {
	idx        SpatialIndex[T]
	objects    []T
	pos        map[DBID]int // object id -> position in objects
	cfg        Config
	df         SpatialDistanceFunction[T]
	processed  *bitset.BitSet // by position in objects
	prefetched [][]QueryResult
	order      *ClusterOrder
}

// expandClusterOrder emits every object density-reachable from
// objects[start] in reachability order.
func (r *opticsRun[T]) expandClusterOrder(start int) error {
	seeds := NewUpdatableHeap()
	seed, err := NewSeedEntry(r.objects[start].ID(), InfiniteDistance)
	if err != nil {
		return err
	}
	seeds.Offer(seed)

	for seeds.Len() > 0 {
		cur, _ := seeds.Pop()
		p := r.pos[cur.ID()]
		r.processed.Set(uint(p))

		neighbors, err := r.neighborhood(p)
		if err != nil {
			return err
		}
		core := coreDistance(neighbors, r.cfg.MinPts)
		r.order.add(cur, core)
		if core.IsInfinite() {
			continue
		}

		for _, nb := range neighbors {
			np, ok := r.pos[nb.ID]
			if !ok {
				return fmt.Errorf("optics: index returned object %d which is not in the input", nb.ID)
			}
			if r.processed.Test(uint(np)) {
				continue
			}
			e, err := NewClusterOrderEntry(nb.ID, cur.ID(), ReachabilityDistance(core, nb.Distance))
			if err != nil {
				return err
			}
			seeds.Offer(e)
		}
	}
	return nil
}

func (r *opticsRun[T]) neighborhood(p int) ([]QueryResult, error) {
	if r.prefetched != nil {
		return r.prefetched[p], nil
	}
	return r.idx.RangeQuery(r.objects[p], r.cfg.Epsilon, r.df)
}
