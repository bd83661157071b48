// Package orient implements the orientation predicate for points on the
// unit sphere.
//
// Sign is evaluated in two tiers: a float64 triple product that is trusted
// whenever its magnitude exceeds a conservative error bound, and an exact
// evaluation with arbitrary-precision arithmetic otherwise. The result for a
// given triple never depends on which tier produced it.
package orient

import (
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
)

// Direction is the orientation of an ordered triple of points.
type Direction int

const (
	Clockwise        Direction = -1
	Indeterminate    Direction = 0
	CounterClockwise Direction = 1
)

func (d Direction) String() string {
	switch d {
	case Clockwise:
		return "Clockwise"
	case CounterClockwise:
		return "CounterClockwise"
	}
	return "Indeterminate"
}

const dblEpsilon = 2.220446049250313e-16

// maxDeterminantError bounds the absolute error of (a×b)·c for unit length
// inputs computed in float64.
const maxDeterminantError = 1.8274 * dblEpsilon

// Sign reports whether c lies to the left (CounterClockwise) or to the right
// (Clockwise) of the great circle edge from a to b. It returns Indeterminate
// only if the three points are exactly collinear, which includes the case of
// duplicate points.
//
// Sign(a, b, c) == -Sign(b, a, c) and
// Sign(a, b, c) == Sign(b, c, a) == Sign(c, a, b).
func Sign(a, b, c s2.Point) Direction {
	if d := triageSign(a, b, c); d != Indeterminate {
		return d
	}
	return exactSign(a, b, c)
}

// triageSign returns the sign of the float64 determinant if it is
// trustworthy and Indeterminate otherwise.
func triageSign(a, b, c s2.Point) Direction {
	det := a.Cross(b.Vector).Dot(c.Vector)
	if det > maxDeterminantError {
		return CounterClockwise
	}
	if det < -maxDeterminantError {
		return Clockwise
	}
	return Indeterminate
}

// exactSign evaluates the determinant without rounding.
func exactSign(a, b, c s2.Point) Direction {
	xa := r3.PreciseVectorFromVector(a.Vector)
	xb := r3.PreciseVectorFromVector(b.Vector)
	xc := r3.PreciseVectorFromVector(c.Vector)
	return Direction(xa.Cross(xb).Dot(xc).Sign())
}
