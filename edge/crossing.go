// Package edge tests great circle edges on the unit sphere for crossings.
package edge

import (
	"github.com/bsm/spherekit/orient"
	"github.com/golang/geo/s2"
)

// Crossing is the result of testing two edges for a crossing.
type Crossing int

const (
	// Cross means the edges cross at a point interior to both edges.
	Cross Crossing = iota
	// MaybeCross means the edges share a vertex, or one of the vertices lies
	// exactly on the great circle of the other edge such that the edges
	// touch or overlap. EdgeOrVertexCrossing resolves it to a boolean.
	MaybeCross
	// DoNotCross means the edges do not intersect.
	DoNotCross
)

func (c Crossing) String() string {
	switch c {
	case Cross:
		return "Cross"
	case MaybeCross:
		return "MaybeCross"
	}
	return "DoNotCross"
}

// CrossingSign reports whether edge AB crosses edge CD. See Crosser for
// the exact semantics.
func CrossingSign(a, b, c, d s2.Point) Crossing {
	crosser := NewChainCrosser(a, b, c)
	return crosser.ChainCrossingSign(d)
}

// EdgeOrVertexCrossing is like CrossingSign, but resolves MaybeCross with
// the tie-break rule described on Crosser.EdgeOrVertexCrossing. It can be
// used to implement point-in-polygon tests by counting crossings.
func EdgeOrVertexCrossing(a, b, c, d s2.Point) bool {
	switch CrossingSign(a, b, c, d) {
	case DoNotCross:
		return false
	case Cross:
		return true
	}
	return tieBreak(a, b, c, d)
}

// VertexCrossing reports whether two edges that share at least one vertex
// "cross" in the sense required for point containment: every point on a
// loop boundary must be inside exactly one of the two loops on either side
// of it. If the edges share a vertex V, the edge that lies further
// counter-clockwise around V, starting from the fixed reference direction
// V.Ortho(), is considered to cross the other.
//
// Results are undefined unless the edges share a vertex. Degenerate edges
// (a == b or c == d) never cross.
func VertexCrossing(a, b, c, d s2.Point) bool {
	if a == b || c == d {
		return false
	}

	switch {
	case a == d:
		return orient.OrderedCCW(s2.Point{Vector: a.Ortho()}, c, b, a)
	case b == c:
		return orient.OrderedCCW(s2.Point{Vector: b.Ortho()}, d, a, b)
	case a == c:
		return orient.OrderedCCW(s2.Point{Vector: a.Ortho()}, d, b, a)
	case b == d:
		return orient.OrderedCCW(s2.Point{Vector: b.Ortho()}, c, a, b)
	}
	return false
}

// SimpleCrossing reports whether AB crosses CD at a point interior to both
// edges using plain float64 arithmetic. It is not robust near degenerate
// configurations and exists for cheap pre-filters and diagnostics.
func SimpleCrossing(a, b, c, d s2.Point) bool {
	ab := a.Cross(b.Vector)
	acb := -ab.Dot(c.Vector)
	bda := ab.Dot(d.Vector)
	if acb*bda <= 0 {
		return false
	}

	cd := c.Cross(d.Vector)
	cbd := -cd.Dot(b.Vector)
	dac := cd.Dot(a.Vector)
	return acb*cbd > 0 && acb*dac > 0
}

// tieBreak resolves a MaybeCross outcome. Shared vertices are handled by
// VertexCrossing, everything else by repeating the crossing test with the
// symbolically perturbed predicate, under which no four distinct points are
// degenerate.
func tieBreak(a, b, c, d s2.Point) bool {
	if a == b || c == d {
		return false
	}
	if a == c || a == d || b == c || b == d {
		return VertexCrossing(a, b, c, d)
	}

	acb := -orient.RobustSign(a, b, c)
	if bda := orient.RobustSign(a, b, d); bda != acb {
		return false
	}
	if cbd := -orient.RobustSign(c, d, b); cbd != acb {
		return false
	}
	return orient.RobustSign(c, d, a) == acb
}

// classify combines the four orientations ACB, BDA, CBD and DAC. The edges
// cross iff all four are equal and determinate. A disagreement between
// determinate values rules a crossing out regardless of how any degenerate
// value might be perturbed.
func classify(dirs ...orient.Direction) Crossing {
	want, degenerate := orient.Indeterminate, false
	for _, d := range dirs {
		if d == orient.Indeterminate {
			degenerate = true
		} else if want == orient.Indeterminate {
			want = d
		} else if d != want {
			return DoNotCross
		}
	}
	if degenerate {
		return MaybeCross
	}
	return Cross
}
