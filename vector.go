package optics

import (
	"fmt"
	"math"
	"reflect"
)

// DBID identifies a record. Ids are totally ordered, which the cluster
// order tie-break relies on.
type DBID uint32

// RealVector is a fixed-dimension numeric record that can be indexed.
type RealVector interface {
	// ID returns the record's unique identifier.
	ID() DBID

	// Dimensionality returns the number of coordinates.
	Dimensionality() int

	// Values returns the coordinates. Callers must not modify the slice.
	Values() []float64
}

// DoubleVector is the default RealVector implementation.
type DoubleVector struct {
	id     DBID
	values []float64
}

// NewDoubleVector copies values into a new vector with the given id.
// Empty vectors and NaN coordinates are rejected.
func NewDoubleVector(id DBID, values []float64) (*DoubleVector, error) {
	if len(values) == 0 {
		return nil, ErrEmptyVector
	}
	for i, v := range values {
		if math.IsNaN(v) {
			return nil, fmt.Errorf("optics: vector %d has NaN coordinate at dimension %d", id, i)
		}
	}
	cp := make([]float64, len(values))
	copy(cp, values)
	return &DoubleVector{id: id, values: cp}, nil
}

func (v *DoubleVector) ID() DBID            { return v.id }
func (v *DoubleVector) Dimensionality() int { return len(v.values) }
func (v *DoubleVector) Values() []float64   { return v.values }

func (v *DoubleVector) String() string {
	return fmt.Sprintf("%d%v", v.id, v.values)
}

// isNilRecord reports whether o is a nil interface or a nil pointer-like
// value, on which RealVector methods cannot be called.
func isNilRecord[T RealVector](o T) bool {
	v := reflect.ValueOf(o)
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
