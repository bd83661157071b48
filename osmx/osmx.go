// Package osmx builds polygons from OpenStreetMap XML relations
package osmx

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/bsm/spherekit/loop"
	osm "github.com/glaslos/go-osm"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

var (
	errInvalidWay = errors.New("osmx: cannot build loop from an invalid way")
	errOpenWay    = errors.New("osmx: cannot build loop from an open way")
)

// joinMode describes how one node chain is attached to another.
//
//	w: a b c
//	o: d e f
//
//	appendChain   => a b c d e f
//	prependChain  => d e f a b c
//	reverseSelf   => c b a d e f
//	appendReverse => a b c f e d
type joinMode uint8

const (
	appendChain joinMode = iota + 1
	prependChain
	reverseSelf
	appendReverse
)

// way is a chain of relation member nodes with a common role. The chain is
// closed when it starts and ends on the same node.
type way struct {
	role  string
	nodes []*osm.Node
}

func (w *way) head() *osm.Node { return w.nodes[0] }
func (w *way) tail() *osm.Node { return w.nodes[len(w.nodes)-1] }

func (w *way) closed() bool { return w.head().ID == w.tail().ID }

func (w *way) valid() bool {
	return len(w.nodes) > 1 && (w.role == "outer" || w.role == "inner")
}

// link returns the mode that joins o onto w across a shared end node, or 0.
func (w *way) link(o *way) joinMode {
	switch {
	case w.tail().ID == o.head().ID:
		return appendChain
	case w.head().ID == o.tail().ID:
		return prependChain
	case w.head().ID == o.head().ID:
		return reverseSelf
	case w.tail().ID == o.tail().ID:
		return appendReverse
	}
	return 0
}

// gap returns the shortest distance between the ends of w and o and the
// mode that bridges it.
func (w *way) gap(o *way) (s1.Angle, joinMode) {
	ends := [...]struct {
		a, b *osm.Node
		mode joinMode
	}{
		{w.tail(), o.head(), appendChain},
		{w.head(), o.tail(), prependChain},
		{w.head(), o.head(), reverseSelf},
		{w.tail(), o.tail(), appendReverse},
	}

	min, mode := s1.InfAngle(), joinMode(0)
	for _, e := range ends {
		if d := nodePoint(e.a).Distance(nodePoint(e.b)); d < min {
			min, mode = d, e.mode
		}
	}
	return min, mode
}

// splice joins o onto w. With shared set, the junction node is present in
// both chains and kept once.
func (w *way) splice(o *way, mode joinMode, shared bool) {
	front, back := w.nodes, o.nodes
	switch mode {
	case prependChain:
		front, back = o.nodes, w.nodes
	case reverseSelf:
		front = reversed(w.nodes)
	case appendReverse:
		back = reversed(o.nodes)
	}
	if shared {
		back = back[1:]
	}

	nodes := make([]*osm.Node, 0, len(front)+len(back))
	nodes = append(nodes, front...)
	w.nodes = append(nodes, back...)
}

// close appends the head node to open chains.
func (w *way) close() {
	if !w.closed() {
		w.nodes = append(w.nodes, w.head())
	}
}

// points returns the distinct vertices of a closed chain.
func (w *way) points() []s2.Point {
	pts := make([]s2.Point, 0, len(w.nodes)-1)
	for _, nd := range w.nodes[1:] {
		pt := nodePoint(nd)
		if n := len(pts); n != 0 && pts[n-1] == pt {
			continue
		}
		pts = append(pts, pt)
	}
	if n := len(pts); n > 1 && pts[0] == pts[n-1] {
		pts = pts[:n-1]
	}
	return pts
}

// loop builds a loop from the closed chain. The chain is oriented to enclose
// the smaller region, a bound covering half the sphere means the nodes were
// listed clockwise.
func (w *way) loop() (*loop.Loop, error) {
	if !w.valid() {
		return nil, errInvalidWay
	}
	if !w.closed() {
		return nil, errOpenWay
	}

	pts := w.points()
	lp, err := loop.New(pts)
	if err == nil && lp.Bound().Area() >= 2*math.Pi {
		slices.Reverse(pts)
		lp, err = loop.New(pts)
	}
	if err != nil {
		return nil, fmt.Errorf("osmx: %w", err)
	}
	return lp, nil
}

func nodePoint(nd *osm.Node) s2.Point {
	return s2.PointFromLatLng(s2.LatLngFromDegrees(nd.Lat, nd.Lng))
}

func reversed(nodes []*osm.Node) []*osm.Node {
	res := slices.Clone(nodes)
	slices.Reverse(res)
	return res
}

// --------------------------------------------------------------------

type ways []*way

// assemble joins ways into closed chains, first across shared end nodes,
// then by bridging the closest open ends. Destructive.
func (s ways) assemble() ways {
	for i, w := range s {
		if w != nil {
			s.joinShared(w, i+1)
		}
	}
	s = s.compact()

	for i, w := range s {
		if w != nil && !w.closed() {
			s.joinNearest(w, i+1)
		}
	}
	s = s.compact()

	for _, w := range s {
		w.close()
	}
	return s
}

func (s ways) compact() ways {
	res := s[:0]
	for _, w := range s {
		if w != nil {
			res = append(res, w)
		}
	}
	return res
}

// joinShared absorbs all ways after off that share an end node with w.
func (s ways) joinShared(w *way, off int) {
	for joined := true; joined; {
		joined = false
		for i := off; i < len(s); i++ {
			x := s[i]
			if x == nil || x.role != w.role {
				continue
			}
			if mode := w.link(x); mode != 0 {
				w.splice(x, mode, true)
				s[i] = nil
				joined = true
			}
		}
	}
}

// joinNearest repeatedly absorbs the open way after off whose ends are
// closest to the ends of w.
func (s ways) joinNearest(w *way, off int) {
	for {
		pos, mode, min := -1, joinMode(0), s1.InfAngle()
		for i := off; i < len(s); i++ {
			x := s[i]
			if x == nil || x.role != w.role || x.closed() {
				continue
			}
			if d, m := w.gap(x); d < min {
				pos, mode, min = i, m, d
			}
		}
		if pos < 0 {
			return
		}

		w.splice(s[pos], mode, false)
		s[pos] = nil
	}
}
