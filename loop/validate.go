package loop

import (
	"fmt"

	"github.com/bsm/spherekit/edge"
	"github.com/bsm/spherekit/orient"
	"github.com/golang/geo/s2"
)

// ValidationKind classifies a ValidationError.
type ValidationKind int

const (
	NotUnitLength ValidationKind = iota + 1
	TooFewVertices
	DuplicateVertex
	AntipodalEdge
	SelfIntersection
)

func (k ValidationKind) String() string {
	switch k {
	case NotUnitLength:
		return "not unit length"
	case TooFewVertices:
		return "too few vertices"
	case DuplicateVertex:
		return "duplicate vertex"
	case AntipodalEdge:
		return "antipodal edge"
	case SelfIntersection:
		return "self intersection"
	}
	return "unknown"
}

// ValidationError is returned by New for vertex chains that do not form a
// valid loop. Index and Other refer to the offending vertices or edges,
// Other is -1 where only one is involved.
type ValidationError struct {
	Kind  ValidationKind
	Index int
	Other int
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case NotUnitLength:
		return fmt.Sprintf("loop: vertex %d is not unit length", e.Index)
	case TooFewVertices:
		return fmt.Sprintf("loop: too few vertices (%d)", e.Index)
	case DuplicateVertex:
		return fmt.Sprintf("loop: vertices %d and %d are identical", e.Other, e.Index)
	case AntipodalEdge:
		return fmt.Sprintf("loop: vertices %d and %d are antipodal", e.Index, e.Other)
	case SelfIntersection:
		return fmt.Sprintf("loop: edges %d and %d cross", e.Index, e.Other)
	}
	return fmt.Sprintf("loop: invalid (%v)", e.Kind)
}

func (l *Loop) validate() error {
	vs := l.vertices
	for i, v := range vs {
		if !v.IsUnit() {
			return &ValidationError{Kind: NotUnitLength, Index: i, Other: -1}
		}
	}

	switch n := len(vs); {
	case n == 1:
		if vs[0] != emptyVertex && vs[0] != fullVertex {
			return &ValidationError{Kind: TooFewVertices, Index: n, Other: -1}
		}
		return nil
	case n < 3:
		return &ValidationError{Kind: TooFewVertices, Index: n, Other: -1}
	}

	seen := make(map[s2.Point]int, len(vs))
	for i, v := range vs {
		if j, ok := seen[v]; ok {
			return &ValidationError{Kind: DuplicateVertex, Index: i, Other: j}
		}
		seen[v] = i
	}

	n := len(vs)
	for i := 0; i < n; i++ {
		a, b := l.Vertex(i), l.Vertex(i+1)
		if a.Vector == b.Mul(-1) {
			return &ValidationError{Kind: AntipodalEdge, Index: i, Other: (i + 1) % n}
		}
		if foldsBack(a, b, l.Vertex(i+2)) {
			return &ValidationError{Kind: SelfIntersection, Index: i, Other: (i + 1) % n}
		}
	}

	if n > indexThreshold {
		return l.validateIndexed()
	}
	return l.validateBruteForce()
}

// foldsBack reports whether edge BC doubles back over edge AB.
func foldsBack(a, b, c s2.Point) bool {
	if orient.Sign(a, b, c) != orient.Indeterminate {
		return false
	}
	// tangent at B pointing towards A
	t := a.Sub(b.Mul(a.Dot(b.Vector)))
	return c.Dot(t) > 0
}

func (l *Loop) validateBruteForce() error {
	n := len(l.vertices)
	for i := 0; i < n; i++ {
		crosser := edge.NewCrosser(l.Vertex(i), l.Vertex(i+1))
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue
			}
			if crosser.CrossingSign(l.Vertex(j), l.Vertex(j+1)) != edge.DoNotCross {
				return &ValidationError{Kind: SelfIntersection, Index: i, Other: j}
			}
		}
	}
	return nil
}

func (l *Loop) validateIndexed() error {
	n := len(l.vertices)
	for i := 0; i < n; i++ {
		a, b := l.Vertex(i), l.Vertex(i+1)
		crosser := edge.NewCrosser(a, b)
		for _, j := range l.index.candidates(l.vertices, a, b) {
			if j <= i+1 || (i == 0 && j == n-1) {
				continue
			}
			if crosser.CrossingSign(l.Vertex(j), l.Vertex(j+1)) != edge.DoNotCross {
				return &ValidationError{Kind: SelfIntersection, Index: i, Other: j}
			}
		}
	}
	return nil
}
