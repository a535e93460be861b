package optics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHyperBoundingBox_UnionVolumeMargin(t *testing.T) {
	a := HyperBoundingBox{Min: []float64{0, 0}, Max: []float64{1, 2}}
	b := HyperBoundingBox{Min: []float64{2, -1}, Max: []float64{3, 0}}

	u := a.Union(b)
	assert.Equal(t, []float64{0, -1}, u.Min)
	assert.Equal(t, []float64{3, 2}, u.Max)
	assert.Equal(t, 9.0, u.Volume())
	assert.Equal(t, 6.0, u.Margin())
	assert.Equal(t, 7.0, a.Enlargement(b))

	// Union must not alias its inputs.
	u.Min[0] = -100
	assert.Equal(t, 0.0, a.Min[0])
}

func TestHyperBoundingBox_UnionWithEmpty(t *testing.T) {
	b := HyperBoundingBox{Min: []float64{1, 1}, Max: []float64{2, 2}}
	u := HyperBoundingBox{}.Union(b)
	assert.True(t, u.Equal(b))
	assert.Zero(t, HyperBoundingBox{}.Volume())
}

func TestHyperBoundingBox_ContainsPoint(t *testing.T) {
	b := HyperBoundingBox{Min: []float64{0, 0}, Max: []float64{1, 1}}
	assert.True(t, b.ContainsPoint([]float64{0, 1}))
	assert.True(t, b.ContainsPoint([]float64{0.5, 0.5}))
	assert.False(t, b.ContainsPoint([]float64{1.0001, 0.5}))
	assert.False(t, b.ContainsPoint([]float64{0.5}))
}

func TestHyperBoundingBox_CenterAndPointBox(t *testing.T) {
	b := HyperBoundingBox{Min: []float64{0, -2}, Max: []float64{4, 2}}
	assert.Equal(t, []float64{2, 0}, b.Center())

	p := []float64{3, 7}
	pb := pointBox(p)
	assert.Zero(t, pb.Volume())
	p[0] = 99
	assert.Equal(t, 3.0, pb.Min[0], "pointBox must copy its input")
}

func TestNewDoubleVector(t *testing.T) {
	v, err := NewDoubleVector(7, []float64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, DBID(7), v.ID())
	assert.Equal(t, 3, v.Dimensionality())
	assert.Equal(t, "7[1 2 3]", v.String())

	_, err = NewDoubleVector(1, nil)
	assert.ErrorIs(t, err, ErrEmptyVector)

	_, err = NewDoubleVector(1, []float64{1, math.NaN()})
	assert.Error(t, err)
}
