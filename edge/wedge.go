package edge

import (
	"github.com/bsm/spherekit/orient"
	"github.com/golang/geo/s2"
)

// WedgeContains reports whether the wedge A = (a0, ab1, a2) contains the
// wedge B = (b0, ab1, b2). Both wedges share the apex ab1 and their
// interiors lie to the left of the edge chains.
//
// For A to contain B the counter-clockwise edge order around ab1 must be
// a2 b2 b0 a0.
func WedgeContains(a0, ab1, a2, b0, b2 s2.Point) bool {
	return orient.OrderedCCW(a2, b2, b0, ab1) && orient.OrderedCCW(b0, a0, a2, ab1)
}

// WedgeIntersects reports whether the wedges A = (a0, ab1, a2) and
// B = (b0, ab1, b2) have interior points in common.
//
// For A not to intersect B the counter-clockwise edge order around ab1 must
// be a0 b2 b0 a2. The conditions are negated rather than reversed so that
// coincident edges are handled correctly.
func WedgeIntersects(a0, ab1, a2, b0, b2 s2.Point) bool {
	return !(orient.OrderedCCW(a0, b2, b0, ab1) && orient.OrderedCCW(b0, a2, a0, ab1))
}
