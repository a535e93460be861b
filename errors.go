package optics

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("optics: k must be positive")

	// ErrDuplicateID is returned when a record with the same id is already indexed.
	ErrDuplicateID = errors.New("optics: duplicate object id")

	// ErrNaNReachability is returned when a cluster order entry is built with a NaN reachability.
	ErrNaNReachability = errors.New("optics: reachability must not be NaN")

	// ErrEmptyVector is returned for vectors with no coordinates.
	ErrEmptyVector = errors.New("optics: vector has no coordinates")

	// ErrNilRecord is returned when a nil record is inserted, queried or clustered.
	ErrNilRecord = errors.New("optics: nil record")

	// ErrInvalidEpsilon is returned when a range threshold is NaN or negative.
	ErrInvalidEpsilon = errors.New("optics: epsilon must be a non-negative number")
)

// ErrDimensionMismatch indicates a vector/index dimensionality mismatch.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("optics: dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}
