package skeleton

import (
	"math"

	"github.com/pkg/errors"
)

// ContractError marks a precondition violation raised synchronously at the
// boundary of Apply: these are programmer errors, not recoverable runtime
// conditions, so Apply panics with one rather than returning an error
// value.
type ContractError struct {
	cause error
}

func (e *ContractError) Error() string { return e.cause.Error() }
func (e *ContractError) Unwrap() error { return e.cause }

func newContractError(format string, args ...interface{}) *ContractError {
	return &ContractError{cause: errors.Errorf(format, args...)}
}

// validatePolygon checks that polygon is a list of at least 3 distinct,
// finite 2D points. It does not check that the polygon is simple
// (non-self-intersecting) or that it is wound counter-clockwise.
func validatePolygon(polygon []Vector2) error {
	if len(polygon) < 3 {
		return newContractError("straight skeleton requires at least 3 vertices, got %d", len(polygon))
	}

	for i, p := range polygon {
		if p.IsInvalid() {
			return newContractError("vertex %d has a non-finite coordinate: %+v", i, p)
		}
	}

	n := len(polygon)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if polygon[i] == polygon[j] {
				return newContractError("vertex %d and %d are not distinct: %+v", i, j, polygon[i])
			}
		}
	}

	return nil
}

// validateConfig checks that Distance is not +Inf: the caller cannot ask
// the wavefront to grow forever, only to shrink to full collapse (-Inf,
// internally bounded by the polygon's bounding-box diagonal).
func validateConfig(cfg Config) error {
	if math.IsInf(float64(cfg.Distance), 1) {
		return newContractError("cannot grow a polygon to +Inf; only full shrink (-Inf) is supported")
	}
	return nil
}
