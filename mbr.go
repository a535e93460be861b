package optics

import "math"

// HyperBoundingBox is an axis-aligned bounding box in any number of
// dimensions. Min[i] <= Max[i] holds for every dimension of a valid box.
type HyperBoundingBox struct {
	Min, Max []float64
}

// pointBox returns the degenerate box covering a single point.
func pointBox(p []float64) HyperBoundingBox {
	lo := make([]float64, len(p))
	hi := make([]float64, len(p))
	copy(lo, p)
	copy(hi, p)
	return HyperBoundingBox{Min: lo, Max: hi}
}

// Dimensionality returns the number of dimensions of the box.
func (b HyperBoundingBox) Dimensionality() int { return len(b.Min) }

// Clone returns a deep copy of b.
func (b HyperBoundingBox) Clone() HyperBoundingBox {
	lo := make([]float64, len(b.Min))
	hi := make([]float64, len(b.Max))
	copy(lo, b.Min)
	copy(hi, b.Max)
	return HyperBoundingBox{Min: lo, Max: hi}
}

// Union returns the smallest box enclosing both b and o.
func (b HyperBoundingBox) Union(o HyperBoundingBox) HyperBoundingBox {
	if len(b.Min) == 0 {
		return o.Clone()
	}
	u := b.Clone()
	u.extend(o)
	return u
}

// extend grows b in place to enclose o.
func (b *HyperBoundingBox) extend(o HyperBoundingBox) {
	for i := range b.Min {
		b.Min[i] = math.Min(b.Min[i], o.Min[i])
		b.Max[i] = math.Max(b.Max[i], o.Max[i])
	}
}

// Volume returns the product of the side lengths.
func (b HyperBoundingBox) Volume() float64 {
	if len(b.Min) == 0 {
		return 0
	}
	v := 1.0
	for i := range b.Min {
		v *= b.Max[i] - b.Min[i]
	}
	return v
}

// Margin returns the sum of the side lengths.
func (b HyperBoundingBox) Margin() float64 {
	var m float64
	for i := range b.Min {
		m += b.Max[i] - b.Min[i]
	}
	return m
}

// Enlargement returns how much b's volume grows when extended to cover o.
func (b HyperBoundingBox) Enlargement(o HyperBoundingBox) float64 {
	return b.Union(o).Volume() - b.Volume()
}

// ContainsPoint reports whether p lies inside b (boundaries included).
func (b HyperBoundingBox) ContainsPoint(p []float64) bool {
	if len(p) != len(b.Min) {
		return false
	}
	for i, v := range p {
		if v < b.Min[i] || v > b.Max[i] {
			return false
		}
	}
	return true
}

// Center returns the midpoint of b.
func (b HyperBoundingBox) Center() []float64 {
	c := make([]float64, len(b.Min))
	for i := range b.Min {
		c[i] = (b.Min[i] + b.Max[i]) / 2
	}
	return c
}

// Equal reports whether both boxes have identical bounds.
func (b HyperBoundingBox) Equal(o HyperBoundingBox) bool {
	if len(b.Min) != len(o.Min) {
		return false
	}
	for i := range b.Min {
		if b.Min[i] != o.Min[i] || b.Max[i] != o.Max[i] {
			return false
		}
	}
	return true
}

// nearest returns the point of b closest to p: p clamped to [Min, Max] in
// every dimension.
func (b HyperBoundingBox) nearest(p []float64) []float64 {
	c := make([]float64, len(p))
	for j, v := range p {
		c[j] = min(max(v, b.Min[j]), b.Max[j])
	}
	return c
}
