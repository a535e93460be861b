package optics

import (
	"cmp"
	"math"
	"strconv"

	"gonum.org/v1/gonum/floats"
)

// DoubleDistance is a typed distance value. Reachabilities and query results
// carry this type rather than a bare float64.
type DoubleDistance float64

// InfiniteDistance is the undefined reachability / core distance.
var InfiniteDistance = DoubleDistance(math.Inf(1))

// Compare returns -1, 0 or +1 as d is less than, equal to or greater than o.
func (d DoubleDistance) Compare(o DoubleDistance) int { return cmp.Compare(d, o) }

// IsInfinite reports whether d is +Inf.
func (d DoubleDistance) IsInfinite() bool { return math.IsInf(float64(d), 1) }

// Float64 returns d as a plain float64.
func (d DoubleDistance) Float64() float64 { return float64(d) }

func (d DoubleDistance) String() string {
	return strconv.FormatFloat(float64(d), 'g', -1, 64)
}

// DistanceMetric computes distances between raw coordinate slices, plus a
// lower bound on the distance from a point to anything inside a box. The
// bound drives subtree pruning in the R-tree, so it must never exceed the
// true distance to any point in the box. The Lp metrics measure to the
// nearest point of the box with the same computation as Distance, so the
// bound for a single-point box equals the distance to that point exactly.
type DistanceMetric interface {
	Distance(a, b []float64) float64
	MinDist(box HyperBoundingBox, p []float64) float64
}

// DistanceFunc adapts a plain function into a DistanceMetric.
// MinDist returns 0, which is always a valid bound but disables pruning.
type DistanceFunc func(a, b []float64) float64

func (f DistanceFunc) Distance(a, b []float64) float64                 { return f(a, b) }
func (f DistanceFunc) MinDist(_ HyperBoundingBox, _ []float64) float64 { return 0 }

// EuclideanMetric computes the Euclidean (L2) distance.
type EuclideanMetric struct{}

func (EuclideanMetric) Distance(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}

func (EuclideanMetric) MinDist(box HyperBoundingBox, p []float64) float64 {
	return floats.Distance(p, box.nearest(p), 2)
}

// ManhattanMetric computes the Manhattan (L1 / city-block) distance.
type ManhattanMetric struct{}

func (ManhattanMetric) Distance(a, b []float64) float64 {
	return floats.Distance(a, b, 1)
}

func (ManhattanMetric) MinDist(box HyperBoundingBox, p []float64) float64 {
	return floats.Distance(p, box.nearest(p), 1)
}

// CosineMetric computes the cosine distance: 1 - cosine_similarity.
// For two zero vectors, the result is NaN (0/0). Cosine distance has no
// useful box bound, so queries with it visit every node.
type CosineMetric struct{}

func (CosineMetric) Distance(a, b []float64) float64 {
	return 1.0 - floats.Dot(a, b)/(floats.Norm(a, 2)*floats.Norm(b, 2))
}

func (CosineMetric) MinDist(_ HyperBoundingBox, _ []float64) float64 { return 0 }

// ChebyshevMetric computes the Chebyshev (L-infinity) distance.
type ChebyshevMetric struct{}

func (ChebyshevMetric) Distance(a, b []float64) float64 {
	return floats.Distance(a, b, math.Inf(1))
}

func (ChebyshevMetric) MinDist(box HyperBoundingBox, p []float64) float64 {
	return floats.Distance(p, box.nearest(p), math.Inf(1))
}

// MinkowskiMetric computes the Minkowski distance parameterized by P.
// P must be >= 1. Panics if P < 1.
type MinkowskiMetric struct {
	P float64
}

func (m MinkowskiMetric) Distance(a, b []float64) float64 {
	m.check()
	return floats.Distance(a, b, m.P)
}

func (m MinkowskiMetric) MinDist(box HyperBoundingBox, p []float64) float64 {
	m.check()
	return floats.Distance(p, box.nearest(p), m.P)
}

func (m MinkowskiMetric) check() {
	if m.P < 1 {
		panic("MinkowskiMetric: P must be >= 1")
	}
}

// SpatialDistanceFunction measures distances between indexed records and
// provides the box lower bound used to prune index subtrees.
type SpatialDistanceFunction[T RealVector] interface {
	Distance(a, b T) DoubleDistance
	MinDist(box HyperBoundingBox, o T) DoubleDistance
}

// spatialDistance adapts a DistanceMetric to SpatialDistanceFunction.
type spatialDistance[T RealVector] struct {
	metric DistanceMetric
}

// NewSpatialDistance wraps metric for use with a SpatialIndex over T.
// A nil metric defaults to EuclideanMetric.
func NewSpatialDistance[T RealVector](metric DistanceMetric) SpatialDistanceFunction[T] {
	if metric == nil {
		metric = EuclideanMetric{}
	}
	return spatialDistance[T]{metric: metric}
}

func (s spatialDistance[T]) Distance(a, b T) DoubleDistance {
	return DoubleDistance(s.metric.Distance(a.Values(), b.Values()))
}

func (s spatialDistance[T]) MinDist(box HyperBoundingBox, o T) DoubleDistance {
	return DoubleDistance(s.metric.MinDist(box, o.Values()))
}
