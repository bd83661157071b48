package edge

import (
	"math"

	"github.com/bsm/spherekit/orient"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
)

const dblEpsilon = 2.220446049250313e-16

// tangentError bounds the error of the tangent rejection test: the dot
// products of C and D with the outward tangents at A and B.
var tangentError = (1.5 + 1/math.Sqrt(3)) * dblEpsilon

// maxDeterminantError bounds the absolute error of (A×B)·D for unit length
// inputs computed in float64.
const maxDeterminantError = 1.8274 * dblEpsilon

// Crosser tests a fixed edge AB against a sequence of edges. It is
// efficient both for testing many unrelated edges against AB and for
// walking a chain of connected edges C0C1, C1C2, ... where the orientation
// of the shared vertex is reused from the previous step.
//
// A Crosser is not safe for concurrent use.
type Crosser struct {
	a, b s2.Point
	aXb  r3.Vector // A×B, not normalized

	// outward-facing tangents at A and B
	aTangent r3.Vector
	bTangent r3.Vector

	// the current chain vertex and the orientation of (A, C, B)
	c   s2.Point
	acb orient.Direction
}

// NewCrosser returns a Crosser for the fixed edge AB.
func NewCrosser(a, b s2.Point) *Crosser {
	norm := a.PointCross(b)
	return &Crosser{
		a:        a,
		b:        b,
		aXb:      a.Cross(b.Vector),
		aTangent: a.Cross(norm.Vector),
		bTangent: norm.Cross(b.Vector),
	}
}

// NewChainCrosser returns a Crosser for the fixed edge AB, positioned at
// chain vertex C.
func NewChainCrosser(a, b, c s2.Point) *Crosser {
	e := NewCrosser(a, b)
	e.RestartAt(c)
	return e
}

// A returns the first vertex of the fixed edge.
func (e *Crosser) A() s2.Point { return e.a }

// B returns the second vertex of the fixed edge.
func (e *Crosser) B() s2.Point { return e.b }

// C returns the current chain vertex.
func (e *Crosser) C() s2.Point { return e.c }

// RestartAt moves the chain to vertex C.
func (e *Crosser) RestartAt(c s2.Point) {
	e.c = c
	e.acb = -orient.Sign(e.a, e.b, c)
}

// CrossingSign tests edge CD against AB:
//
//   - Cross if the edges cross at a point interior to both edges.
//   - DoNotCross if they do not intersect, including when either edge is
//     degenerate.
//   - MaybeCross if they share a vertex or touch without crossing, such as
//     when a vertex of one edge lies exactly on the other edge.
//
// The result is symmetric: swapping AB with CD, or reversing either edge,
// yields the same outcome.
func (e *Crosser) CrossingSign(c, d s2.Point) Crossing {
	if c != e.c {
		e.RestartAt(c)
	}
	return e.ChainCrossingSign(d)
}

// ChainCrossingSign tests the edge from the current chain vertex to D
// against AB and advances the chain to D. The result is identical to
// CrossingSign(C(), d).
func (e *Crosser) ChainCrossingSign(d s2.Point) Crossing {
	// A crossing requires ACB and BDA to agree. When they disagree and are
	// both determinate, the result is settled without further work.
	bda := e.sign(d)
	if e.acb == -bda && bda != orient.Indeterminate {
		e.c, e.acb = d, -bda
		return DoNotCross
	}
	return e.crossingSign(d, bda)
}

// EdgeOrVertexCrossing is like CrossingSign, but resolves MaybeCross with
// the tie-break rule: edges sharing a vertex defer to VertexCrossing,
// otherwise the crossing test is repeated with the symbolically perturbed
// orientation predicate. Points on a loop boundary are thereby assigned to
// exactly one side.
func (e *Crosser) EdgeOrVertexCrossing(c, d s2.Point) bool {
	if c != e.c {
		e.RestartAt(c)
	}
	return e.EdgeOrVertexChainCrossing(d)
}

// EdgeOrVertexChainCrossing is like ChainCrossingSign, but resolves
// MaybeCross as EdgeOrVertexCrossing does.
func (e *Crosser) EdgeOrVertexChainCrossing(d s2.Point) bool {
	c := e.c
	switch e.ChainCrossingSign(d) {
	case DoNotCross:
		return false
	case Cross:
		return true
	}
	return tieBreak(e.a, e.b, c, d)
}

// sign returns orient.Sign(A, B, d), reusing A×B when the float64
// determinant is conclusive.
func (e *Crosser) sign(d s2.Point) orient.Direction {
	det := e.aXb.Dot(d.Vector)
	if det > maxDeterminantError {
		return orient.CounterClockwise
	}
	if det < -maxDeterminantError {
		return orient.Clockwise
	}
	return orient.Sign(e.a, e.b, d)
}

func (e *Crosser) crossingSign(d s2.Point, bda orient.Direction) Crossing {
	c := e.c
	defer func() {
		e.c, e.acb = d, -bda
	}()

	// Both C and D beyond the outward tangent at A or at B means that CD
	// lies entirely in a half-space that AB does not reach.
	if (c.Dot(e.aTangent) > tangentError && d.Dot(e.aTangent) > tangentError) ||
		(c.Dot(e.bTangent) > tangentError && d.Dot(e.bTangent) > tangentError) {
		return DoNotCross
	}

	if e.a == c || e.a == d || e.b == c || e.b == d {
		return MaybeCross
	}
	if e.a == e.b || c == d {
		return DoNotCross
	}

	cbd := -orient.Sign(c, d, e.b)
	dac := orient.Sign(c, d, e.a)
	return classify(e.acb, bda, cbd, dac)
}
