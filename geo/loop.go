package geo

import (
	"github.com/bsm/spherekit/loop"
	"github.com/golang/geo/s2"
)

// Overlap describes how a loop and a cell relate.
type Overlap uint8

const (
	OverlapNone Overlap = iota
	OverlapPartial
	OverlapContainsCell
	OverlapContainedByCell
)

func (o Overlap) String() string {
	switch o {
	case OverlapPartial:
		return "partial"
	case OverlapContainsCell:
		return "contains cell"
	case OverlapContainedByCell:
		return "contained by cell"
	}
	return "none"
}

// LoopOverlap returns the overlap between the loop and a cell.
func LoopOverlap(l *loop.Loop, cell s2.Cell) Overlap {
	if l.ContainsCell(cell) {
		return OverlapContainsCell
	} else if !l.IntersectsCell(cell) {
		return OverlapNone
	} else if loop.FromCell(cell).Contains(l) {
		return OverlapContainedByCell
	}
	return OverlapPartial
}

// FitLoop returns an un-normalised CellUnion approximating
// the surface covered by the loop, with the smallest
// cell being maxLevel.
func FitLoop(l *loop.Loop, acc s2.CellUnion, maxLevel int) s2.CellUnion {
	FitLoopDo(l, maxLevel, func(cellID s2.CellID) bool {
		acc = append(acc, cellID)
		return true
	})
	return acc
}

// FitLoopDo iterates over the cells covering a loop, with the smallest
// cell being maxLevel. Return false in the iterator to stop the loop.
func FitLoopDo(l *loop.Loop, maxLevel int, fn func(s2.CellID) bool) {
	for i := 0; i < 6; i++ {
		cellID := s2.CellIDFromFace(i)
		if nxt := fitLoopDo(l, cellID, maxLevel, fn); !nxt {
			return
		}
	}
}

func fitLoopDo(l *loop.Loop, cellID s2.CellID, maxLevel int, fn func(s2.CellID) bool) bool {
	cell := s2.CellFromCellID(cellID)

	if l.ContainsCell(cell) {
		return fn(cellID)
	} else if l.IntersectsCell(cell) {
		if cell.Level() >= maxLevel {
			return fn(cellID)
		}
		for _, childID := range cellID.Children() {
			if !fitLoopDo(l, childID, maxLevel, fn) {
				return false
			}
		}
	}
	return true
}
