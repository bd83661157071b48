package loop

import (
	"sort"
	"sync"

	"github.com/bsm/spherekit/rect"
	"github.com/golang/geo/s2"
)

// indexThreshold is the number of vertices above which edge pairs are
// pruned through an edge index instead of being enumerated.
const indexThreshold = 64

// coverMargin pads edge bounds in radians, so that the bounds of edges
// sharing a point overlap in more than that point.
const coverMargin = 1e-12

// edgeIndex maps each edge to the cells covering its bound. Edges that share
// a point are covered by two cells where one contains the other. It is built
// at most once, on first use.
type edgeIndex struct {
	once    sync.Once
	level   int
	entries []cellEdge // sorted by cell, then edge
}

type cellEdge struct {
	cell s2.CellID
	edge int
}

func (x *edgeIndex) build(vertices []s2.Point) {
	x.once.Do(func() {
		n := len(vertices)

		var total float64
		for i := 0; i < n; i++ {
			total += vertices[i].Distance(vertices[(i+1)%n]).Radians()
		}
		x.level = s2.AvgEdgeMetric.ClosestLevel(total / float64(n))

		for i := 0; i < n; i++ {
			for _, cellID := range x.cover(vertices[i], vertices[(i+1)%n]) {
				x.entries = append(x.entries, cellEdge{cell: cellID, edge: i})
			}
		}
		sort.Slice(x.entries, func(i, j int) bool {
			a, b := x.entries[i], x.entries[j]
			if a.cell != b.cell {
				return a.cell < b.cell
			}
			return a.edge < b.edge
		})
	})
}

// cover returns the cells covering the bound of edge AB.
func (x *edgeIndex) cover(a, b s2.Point) s2.CellUnion {
	rb := rect.NewBounder()
	rb.AddPoint(a)
	rb.AddPoint(b)

	rc := &s2.RegionCoverer{MaxLevel: x.level, MaxCells: 4, LevelMod: 1}
	return rc.Covering(rect.Expanded(rb.RectBound(), coverMargin, coverMargin))
}

// candidates returns the ascending IDs of edges that may intersect AB. Edge
// i runs from vertex i to vertex i+1.
func (x *edgeIndex) candidates(vertices []s2.Point, a, b s2.Point) []int {
	x.build(vertices)

	var ids []int
	for _, cellID := range x.cover(a, b) {
		// edges covered by the cell or its descendants
		lo, hi := cellID.RangeMin(), cellID.RangeMax()
		for i := x.search(lo); i < len(x.entries) && x.entries[i].cell <= hi; i++ {
			ids = append(ids, x.entries[i].edge)
		}

		// edges covered by its ancestors
		for level := cellID.Level() - 1; level >= 0; level-- {
			parent := cellID.Parent(level)
			for i := x.search(parent); i < len(x.entries) && x.entries[i].cell == parent; i++ {
				ids = append(ids, x.entries[i].edge)
			}
		}
	}

	sort.Ints(ids)
	return dedupInts(ids)
}

// search returns the position of the first entry with a cell >= cellID.
func (x *edgeIndex) search(cellID s2.CellID) int {
	return sort.Search(len(x.entries), func(i int) bool { return x.entries[i].cell >= cellID })
}

func dedupInts(ids []int) []int {
	if len(ids) == 0 {
		return ids
	}

	res := ids[:1]
	for _, id := range ids[1:] {
		if id != res[len(res)-1] {
			res = append(res, id)
		}
	}
	return res
}

// candidateEdges returns the edges of l that may intersect AB.
func (l *Loop) candidateEdges(a, b s2.Point) []int {
	if len(l.vertices) > indexThreshold {
		return l.index.candidates(l.vertices, a, b)
	}

	ids := make([]int, len(l.vertices))
	for i := range ids {
		ids[i] = i
	}
	return ids
}
