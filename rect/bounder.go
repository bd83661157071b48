// Package rect computes latitude-longitude bounding rectangles for chains
// of great circle edges.
package rect

import (
	"math"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

const dblEpsilon = 2.220446049250313e-16

var validLat = r1.Interval{Lo: -math.Pi / 2, Hi: math.Pi / 2}

// Bounder computes a bounding rectangle that contains all edges of a
// vertex chain v0, v1, v2, ... The bound of an edge may exceed the bound of
// its endpoints, for example when the edge passes close to a pole. All
// vertices must be unit length.
//
// The result is conservative: every point P for which a loop built on the
// chain reports containment has its computed LatLng inside RectBound().
type Bounder struct {
	a     s2.Point
	aLL   s2.LatLng
	bound s2.Rect
}

// NewBounder returns an empty bounder.
func NewBounder() *Bounder {
	return &Bounder{bound: s2.EmptyRect()}
}

// AddPoint adds the edge from the previously added vertex to b.
func (r *Bounder) AddPoint(b s2.Point) {
	bLL := s2.LatLngFromPoint(b)
	if r.bound.IsEmpty() {
		r.a, r.aLL = b, bLL
		r.bound = r.bound.AddPoint(bLL)
		return
	}

	// N = 2 (A x B), evaluated in a form that stays accurate when A and B
	// are close together.
	n := r.a.Sub(b.Vector).Cross(r.a.Add(b.Vector))
	nNorm := n.Norm()
	if nNorm < 1.91346e-15 {
		if r.a.Dot(b.Vector) < 0 {
			// nearly antipodal, the edge may go in any direction
			r.bound = s2.FullRect()
		} else {
			// nearly identical, the endpoint bound is sufficient after padding
			r.bound = r.bound.Union(s2.RectFromLatLng(r.aLL).AddPoint(bLL))
		}
		r.a, r.aLL = b, bLL
		return
	}

	lngAB := s1.EmptyInterval().AddPoint(r.aLL.Lng.Radians()).AddPoint(bLL.Lng.Radians())
	if lngAB.Length() >= math.Pi-2*dblEpsilon {
		// nearly opposite meridians, the edge may pass either side of a pole
		lngAB = s1.FullInterval()
	}

	latAB := r1.IntervalFromPoint(r.aLL.Lat.Radians()).AddPoint(bLL.Lat.Radians())

	// The extreme latitudes of the great circle are attained in the plane
	// through N and the Z axis. AB attains one in its interior only if it
	// crosses that plane, which is tested by projecting A and B onto the
	// plane's normal M.
	m := n.Cross(r3.Vector{Z: 1})
	mA := m.Dot(r.a.Vector)
	mB := m.Dot(b.Vector)
	mError := 6.06638e-16*nNorm + 6.83174e-31

	if mA*mB < 0 || math.Abs(mA) <= mError || math.Abs(mB) <= mError {
		// 3ε here, the remaining 2ε are added by RectBound.
		maxLat := math.Min(
			math.Atan2(math.Sqrt(n.X*n.X+n.Y*n.Y), math.Abs(n.Z))+3*dblEpsilon,
			math.Pi/2,
		)

		// Bound the bulge relative to the endpoint latitudes too, which keeps
		// the result tight for short edges.
		latBudget := 2 * math.Asin(0.5*r.a.Sub(b.Vector).Norm()*math.Sin(maxLat))
		maxDelta := 0.5*(latBudget-latAB.Length()) + dblEpsilon

		if mA <= mError && mB >= -mError {
			latAB.Hi = math.Min(maxLat, latAB.Hi+maxDelta)
		}
		if mB <= mError && mA >= -mError {
			latAB.Lo = math.Max(-maxLat, latAB.Lo-maxDelta)
		}
	}

	r.a, r.aLL = b, bLL
	r.bound = r.bound.Union(s2.Rect{Lat: latAB, Lng: lngAB})
}

// RectBound returns the bound of all edges added so far, padded for the
// error of latitude computations and closed at the poles.
func (r *Bounder) RectBound() s2.Rect {
	return Expanded(r.bound, 2*dblEpsilon, 0).PolarClosure()
}

// Expanded grows bound by latMargin radians on each side in latitude,
// clamped to the valid range, and by lngMargin radians on each side in
// longitude. Negative margins shrink it.
func Expanded(bound s2.Rect, latMargin, lngMargin float64) s2.Rect {
	lat := bound.Lat.Expanded(latMargin)
	lng := bound.Lng.Expanded(lngMargin)
	if lat.IsEmpty() || lng.IsEmpty() {
		return s2.EmptyRect()
	}
	return s2.Rect{Lat: lat.Intersection(validLat), Lng: lng}
}
