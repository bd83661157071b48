package rect

import (
	"math"

	"github.com/golang/geo/s2"
)

// ExpandForSubregions expands a bound returned by Bounder.RectBound so that
// it contains the bounds of all subregions of the original region. Bounds
// are not exact, so a loop B contained by loop A may have a slightly larger
// bound than A.
//
// The full rectangle is returned whenever the bound may contain two nearly
// antipodal points, since an edge between such points may go anywhere.
func ExpandForSubregions(bound s2.Rect) s2.Rect {
	if bound.IsEmpty() {
		return bound
	}

	// lngGap is a lower bound on the longitudinal distance between the bound
	// and its reflection through the origin.
	lngGap := math.Max(0, math.Pi-bound.Lng.Length()-2.5*dblEpsilon)

	// minAbsLat is the distance to the equator, zero or negative when the
	// bound straddles it. The gaps measure the distance to each pole.
	minAbsLat := math.Max(bound.Lat.Lo, -bound.Lat.Hi)
	latGapSouth := math.Pi/2 + bound.Lat.Lo
	latGapNorth := math.Pi/2 - bound.Lat.Hi

	// The thresholds are sqrt(2) * 4.309ε (plus rounding allowances) under
	// Euclidean approximations of the minimum distance between the bound and
	// its reflection.
	switch {
	case minAbsLat >= 0:
		if 2*minAbsLat+lngGap < 1.354e-15 {
			return s2.FullRect()
		}
	case lngGap >= math.Pi/2:
		if latGapSouth+latGapNorth < 1.687e-15 {
			return s2.FullRect()
		}
	default:
		if math.Max(latGapSouth, latGapNorth)*lngGap < 1.765e-15 {
			return s2.FullRect()
		}
	}

	// Latitude errors of the bound and of a subregion may go in opposite
	// directions, so the 4.8ε bound is doubled. Subregion edges spanning
	// nearly π in longitude get a full longitude bound.
	lngExpansion := 0.0
	if lngGap <= 0 {
		lngExpansion = math.Pi
	}
	return Expanded(bound, 9*dblEpsilon, lngExpansion).PolarClosure()
}
