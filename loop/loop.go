// Package loop implements simple spherical polygons.
//
// A Loop is a closed chain of great circle edges with the interior on the
// left side, so a small clockwise chain describes a loop covering nearly
// the whole sphere. Loops are validated and their cached fields computed
// once at construction. Afterwards they are read-only, apart from the
// nesting depth which may be assigned once by an owning polygon, and can be
// shared across goroutines.
//
// Point containment follows a semi-open boundary model: when the sphere is
// divided into loops that share edges, every point belongs to exactly one of
// them.
package loop

import (
	"errors"
	"math"

	"github.com/bsm/spherekit/edge"
	"github.com/bsm/spherekit/orient"
	"github.com/bsm/spherekit/rect"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

var errDepthAssigned = errors.New("loop: depth already assigned")

var (
	emptyVertex = s2.Point{Vector: r3.Vector{Z: 1}}
	fullVertex  = s2.Point{Vector: r3.Vector{Z: -1}}

	northPole = s2.Point{Vector: r3.Vector{Z: 1}}
	southPole = s2.Point{Vector: r3.Vector{Z: -1}}
)

// Loop is a validated simple spherical polygon.
type Loop struct {
	vertices []s2.Point

	// originInside reports whether s2.OriginPoint() is inside the loop.
	originInside bool

	// bound contains every point the loop contains. subregionBound contains
	// the bound of every loop this loop contains.
	bound          s2.Rect
	subregionBound s2.Rect

	depth    int
	depthSet bool

	index *edgeIndex
}

// New validates the vertices and builds a loop. The vertices are copied.
// On failure, the error is a *ValidationError.
func New(vertices []s2.Point) (*Loop, error) {
	l := newLoop(vertices)
	if err := l.validate(); err != nil {
		return nil, err
	}
	l.init()
	return l, nil
}

// Empty returns the loop that contains no points.
func Empty() *Loop {
	l := newLoop([]s2.Point{emptyVertex})
	l.init()
	return l
}

// Full returns the loop that contains all points.
func Full() *Loop {
	l := newLoop([]s2.Point{fullVertex})
	l.init()
	return l
}

// FromCell returns a loop with the four vertices of the cell.
func FromCell(cell s2.Cell) *Loop {
	vs := make([]s2.Point, 4)
	for i := range vs {
		vs[i] = cell.Vertex(i)
	}

	l := newLoop(vs)
	l.init()
	return l
}

func newLoop(vertices []s2.Point) *Loop {
	vs := make([]s2.Point, len(vertices))
	copy(vs, vertices)
	return &Loop{vertices: vs, index: new(edgeIndex)}
}

// NumVertices returns the number of vertices.
func (l *Loop) NumVertices() int { return len(l.vertices) }

// Vertex returns the i-th vertex. Indices wrap around in both directions.
func (l *Loop) Vertex(i int) s2.Point {
	n := len(l.vertices)
	if i %= n; i < 0 {
		i += n
	}
	return l.vertices[i]
}

// Vertices returns a copy of the vertices.
func (l *Loop) Vertices() []s2.Point {
	vs := make([]s2.Point, len(l.vertices))
	copy(vs, l.vertices)
	return vs
}

// NumEdges returns the number of edges, zero for the empty and full loops.
func (l *Loop) NumEdges() int {
	if l.isEmptyOrFull() {
		return 0
	}
	return len(l.vertices)
}

// Edge returns the i-th edge.
func (l *Loop) Edge(i int) s2.Edge {
	return s2.Edge{V0: l.Vertex(i), V1: l.Vertex(i + 1)}
}

// IsEmpty reports whether this is the empty loop.
func (l *Loop) IsEmpty() bool { return l.isEmptyOrFull() && !l.originInside }

// IsFull reports whether this is the full loop.
func (l *Loop) IsFull() bool { return l.isEmptyOrFull() && l.originInside }

func (l *Loop) isEmptyOrFull() bool { return len(l.vertices) == 1 }

// OriginInside reports whether s2.OriginPoint() is inside the loop.
func (l *Loop) OriginInside() bool { return l.originInside }

// Bound returns a bounding rectangle that contains all points contained by
// the loop.
func (l *Loop) Bound() s2.Rect { return l.bound }

// SubregionBound returns a bounding rectangle that contains the bound of
// every loop contained by this loop.
func (l *Loop) SubregionBound() s2.Rect { return l.subregionBound }

// Depth returns the nesting depth of the loop within its polygon.
func (l *Loop) Depth() int { return l.depth }

// HasDepth reports whether the depth has been assigned.
func (l *Loop) HasDepth() bool { return l.depthSet }

// SetDepth assigns the nesting depth. It may only be called once.
func (l *Loop) SetDepth(depth int) error {
	if l.depthSet {
		return errDepthAssigned
	}
	l.depth, l.depthSet = depth, true
	return nil
}

// IsHole reports whether the loop is a hole of its polygon, i.e. whether
// its depth is odd.
func (l *Loop) IsHole() bool { return l.depth&1 != 0 }

// Sign returns -1 for holes and +1 otherwise.
func (l *Loop) Sign() int {
	if l.IsHole() {
		return -1
	}
	return 1
}

// ContainsPoint reports whether the loop contains p.
func (l *Loop) ContainsPoint(p s2.Point) bool {
	if !l.bound.ContainsPoint(p) {
		return false
	}
	if l.isEmptyOrFull() {
		return l.originInside
	}

	inside := l.originInside
	crosser := edge.NewChainCrosser(s2.OriginPoint(), p, l.Vertex(0))
	for i := 1; i <= len(l.vertices); i++ {
		if crosser.EdgeOrVertexChainCrossing(l.Vertex(i)) {
			inside = !inside
		}
	}
	return inside
}

// init computes the cached fields of a loop with valid vertices.
func (l *Loop) init() {
	if l.isEmptyOrFull() {
		l.originInside = l.vertices[0].Z < 0
		if l.originInside {
			l.bound = s2.FullRect()
		} else {
			l.bound = s2.EmptyRect()
		}
		l.subregionBound = l.bound
		return
	}

	// ContainsPoint checks the bound first, so it must be set to something
	// that contains all points until the real bound is known.
	l.bound = s2.FullRect()
	l.initOriginInside()
	l.initBound()
}

// initOriginInside guesses that the origin is outside and verifies the
// guess against the containment of vertex 1. Vertex B with neighbours A and
// C is inside iff the fixed direction Ortho(B) lies within the wedge ABC.
func (l *Loop) initOriginInside() {
	l.originInside = false

	v1 := l.Vertex(1)
	v1Inside := orient.OrderedCCW(s2.Point{Vector: v1.Ortho()}, l.Vertex(0), l.Vertex(2), v1)
	if v1Inside != l.ContainsPoint(v1) {
		l.originInside = true
	}
}

// initBound bounds all edges and closes the bound over contained poles.
func (l *Loop) initBound() {
	bounder := rect.NewBounder()
	for i := 0; i <= len(l.vertices); i++ {
		bounder.AddPoint(l.Vertex(i))
	}
	b := bounder.RectBound()

	if l.ContainsPoint(northPole) {
		b.Lat.Hi = math.Pi / 2
		b.Lng = s1.FullInterval()
	}
	// A loop containing the south pole either contains the north pole too
	// or wraps around the sphere, both leave a full longitude range.
	if b.Lng.IsFull() && l.ContainsPoint(southPole) {
		b.Lat.Lo = -math.Pi / 2
	}

	l.bound = b
	l.subregionBound = rect.ExpandForSubregions(b)
}
