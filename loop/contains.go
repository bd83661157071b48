package loop

import (
	"github.com/bsm/spherekit/edge"
	"github.com/golang/geo/s2"
)

// Contains reports whether the region of l contains the region of o.
func (l *Loop) Contains(o *Loop) bool {
	// A contains B requires that
	//  (1) the boundaries do not cross except at shared vertices,
	//  (2) the local edge order at every shared vertex implies containment,
	//  (3) without shared vertices, A contains a vertex of B and B does not
	//      contain a vertex of A. The last part detects two loops whose
	//      union is the whole sphere.
	if !l.subregionBound.Contains(o.bound) {
		return false
	}
	if l.isEmptyOrFull() || o.isEmptyOrFull() {
		return l.IsFull() || o.IsEmpty()
	}

	if !l.ContainsPoint(o.Vertex(0)) && l.findVertex(o.Vertex(0)) < 0 {
		return false
	}

	var wp containsWedge
	if l.boundariesCrossing(o, &wp) || wp.doesntContain {
		return false
	}

	if l.bound.Union(o.bound).IsFull() {
		if o.ContainsPoint(l.Vertex(0)) && o.findVertex(l.Vertex(0)) < 0 {
			return false
		}
	}
	return true
}

// Intersects reports whether the regions of l and o have any points in
// common.
func (l *Loop) Intersects(o *Loop) bool {
	if !l.bound.Intersects(o.bound) {
		return false
	}
	if l.isEmptyOrFull() || o.isEmptyOrFull() {
		return !l.IsEmpty() && !o.IsEmpty()
	}

	// boundariesCrossing iterates over the edges of its argument and prunes
	// the receiver's, so the receiver should be the larger loop.
	a, b := l, o
	if len(b.vertices) > len(a.vertices) {
		a, b = b, a
	}

	if a.ContainsPoint(b.Vertex(0)) && a.findVertex(b.Vertex(0)) < 0 {
		return true
	}

	var wp intersectsWedge
	if a.boundariesCrossing(b, &wp) || wp.intersects {
		return true
	}

	// The boundaries do not cross and A contains no vertex of B, so they
	// only intersect if B contains A. Bounds are inexact, a nested loop is
	// only guaranteed to be within the subregion bound.
	if b.subregionBound.Contains(a.bound) {
		if b.ContainsPoint(a.Vertex(0)) && b.findVertex(a.Vertex(0)) < 0 {
			return true
		}
	}
	return false
}

// ContainsNested reports whether l contains o, given that the loops do not
// share any edges and that either one contains the other or they are
// disjoint. This holds for the loops of a valid polygon.
func (l *Loop) ContainsNested(o *Loop) bool {
	if !l.subregionBound.Contains(o.bound) {
		return false
	}
	if l.isEmptyOrFull() || o.isEmptyOrFull() {
		return l.IsFull() || o.IsEmpty()
	}

	m := l.findVertex(o.Vertex(1))
	if m < 0 {
		return l.ContainsPoint(o.Vertex(1))
	}
	return edge.WedgeContains(l.Vertex(m-1), l.Vertex(m), l.Vertex(m+1), o.Vertex(0), o.Vertex(2))
}

// ContainsCell reports whether the loop contains the cell.
func (l *Loop) ContainsCell(cell s2.Cell) bool {
	if !l.bound.ContainsPoint(cell.Center()) {
		return false
	}
	return l.Contains(FromCell(cell))
}

// IntersectsCell reports whether the loop intersects the cell.
func (l *Loop) IntersectsCell(cell s2.Cell) bool {
	if !l.bound.Intersects(cell.RectBound()) {
		return false
	}
	return l.Intersects(FromCell(cell))
}

// findVertex returns an index i in [1, n] with Vertex(i) == p, or -1.
func (l *Loop) findVertex(p s2.Point) int {
	for i := 1; i <= len(l.vertices); i++ {
		if l.Vertex(i) == p {
			return i
		}
	}
	return -1
}

// --------------------------------------------------------------------

// wedgeProcessor inspects the wedges around vertices shared by two loops.
// It returns true once the outcome of the calling relation is known.
type wedgeProcessor interface {
	processWedge(a0, ab1, a2, b0, b2 s2.Point) bool
}

type intersectsWedge struct{ intersects bool }

func (p *intersectsWedge) processWedge(a0, ab1, a2, b0, b2 s2.Point) bool {
	p.intersects = edge.WedgeIntersects(a0, ab1, a2, b0, b2)
	return p.intersects
}

type containsWedge struct{ doesntContain bool }

func (p *containsWedge) processWedge(a0, ab1, a2, b0, b2 s2.Point) bool {
	p.doesntContain = !edge.WedgeContains(a0, ab1, a2, b0, b2)
	return p.doesntContain
}

// boundariesCrossing tests all edges of o against the edges of l. It
// returns true if any pair crosses. Shared vertices are passed to wp, and
// false is returned as soon as wp reports a result.
//
// Edges that touch without sharing a vertex are resolved with the same
// tie-break as point containment.
func (l *Loop) boundariesCrossing(o *Loop, wp wedgeProcessor) bool {
	for j := 0; j < len(o.vertices); j++ {
		b0, b1 := o.Vertex(j), o.Vertex(j+1)
		crosser := edge.NewCrosser(b0, b1)

		prev := -2
		for _, i := range l.candidateEdges(b0, b1) {
			a0, a1 := l.Vertex(i), l.Vertex(i+1)
			if prev != i-1 {
				crosser.RestartAt(a0)
			}
			prev = i

			switch crosser.ChainCrossingSign(a1) {
			case edge.DoNotCross:
				continue
			case edge.Cross:
				return true
			}

			switch {
			case a1 == b1:
				// each shared vertex is visited once, as the end of both edges
				if wp.processWedge(a0, a1, l.Vertex(i+2), b0, o.Vertex(j+2)) {
					return false
				}
			case a0 == b0 || a0 == b1 || a1 == b0:
			default:
				if edge.EdgeOrVertexCrossing(b0, b1, a0, a1) {
					return true
				}
			}
		}
	}
	return false
}
