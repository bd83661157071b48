package geo

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/bsm/spherekit/loop"
	"github.com/golang/geo/s2"
)

var errInvalidPolygon = errors.New("geo: invalid polygon encoding")

// Polygon is a set of non-overlapping loops, analogous to
// multipolygons in OSM. Loops at an even depth are shells,
// loops at an odd depth are holes. A point is inside the
// polygon if an odd number of loops contain it.
type Polygon []*loop.Loop

// NewPolygon groups loops into a polygon and assigns the depth
// of each loop as the number of other loops containing it.
// Loop boundaries must not cross. Each loop can only be part
// of a single polygon.
func NewPolygon(loops ...*loop.Loop) (Polygon, error) {
	seen := make(map[*loop.Loop]int, len(loops))
	for i, l := range loops {
		if j, ok := seen[l]; ok {
			return nil, fmt.Errorf("geo: loops %d and %d are the same", j, i)
		}
		if l.HasDepth() {
			return nil, fmt.Errorf("geo: loop %d: already part of a polygon", i)
		}
		seen[l] = i
	}

	depths := make([]int, len(loops))
	for i, a := range loops {
		for j := i + 1; j < len(loops); j++ {
			b := loops[j]

			switch {
			case a.Contains(b):
				depths[j]++
			case b.Contains(a):
				depths[i]++
			case a.Intersects(b):
				return nil, fmt.Errorf("geo: loops %d and %d overlap", i, j)
			}
		}
	}

	for i, l := range loops {
		_ = l.SetDepth(depths[i]) // unassigned, checked above
	}
	return Polygon(loops), nil
}

// ContainsPoint reports whether the polygon contains the point.
func (p Polygon) ContainsPoint(pt s2.Point) bool {
	inside := false
	for _, l := range p {
		if l.ContainsPoint(pt) {
			inside = !inside
		}
	}
	return inside
}

// Shells returns the loops at an even depth.
func (p Polygon) Shells() []*loop.Loop {
	var res []*loop.Loop
	for _, l := range p {
		if !l.IsHole() {
			res = append(res, l)
		}
	}
	return res
}

// Holes returns the loops at an odd depth.
func (p Polygon) Holes() []*loop.Loop {
	var res []*loop.Loop
	for _, l := range p {
		if l.IsHole() {
			res = append(res, l)
		}
	}
	return res
}

// Bound returns the union of the shell bounds.
func (p Polygon) Bound() s2.Rect {
	bound := s2.EmptyRect()
	for _, l := range p.Shells() {
		bound = bound.Union(l.Bound())
	}
	return bound
}

// Cells returns all cells that approximately fit p.
func (p Polygon) Cells(maxLevel int) s2.CellUnion {
	var acc s2.CellUnion
	for _, l := range p.Shells() {
		// TODO: drop cells fully contained by a hole
		acc = FitLoop(l, acc, maxLevel)
	}

	acc.Normalize()
	return acc
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (p Polygon) MarshalBinary() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := binWrite(buf, uint32(len(p))); err != nil {
		return nil, err
	}

	for _, l := range p {
		bin, err := l.MarshalBinary()
		if err != nil {
			return nil, err
		}
		if err := binWrite(buf, uint32(len(bin))); err != nil {
			return nil, err
		}
		if _, err := buf.Write(bin); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
// Loop depths are restored from the encoding.
func (p *Polygon) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)

	var n uint32
	if err := binRead(r, &n); err != nil {
		return errInvalidPolygon
	}
	if int(n) > r.Len() {
		return errInvalidPolygon
	}

	loops := make(Polygon, 0, int(n))
	for i := 0; i < int(n); i++ {
		var sz uint32
		if err := binRead(r, &sz); err != nil {
			return errInvalidPolygon
		}
		if int(sz) > r.Len() {
			return errInvalidPolygon
		}

		bin := make([]byte, int(sz))
		if _, err := r.Read(bin); err != nil {
			return errInvalidPolygon
		}

		l := new(loop.Loop)
		if err := l.UnmarshalBinary(bin); err != nil {
			return err
		}
		loops = append(loops, l)
	}
	if r.Len() != 0 {
		return errInvalidPolygon
	}

	*p = loops
	return nil
}
