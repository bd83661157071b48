package index

import (
	"encoding/binary"
	"sort"

	"github.com/bsm/spherekit/loop"
	"github.com/golang/geo/s2"
	"github.com/golang/snappy"
	"github.com/pkg/errors"
)

// Reader represents a reader on top of key-value stores.
type Reader struct {
	store              StoreReader
	minLevel, maxLevel int
}

// NewReader opens a new index reader.
func NewReader(store StoreReader) (*Reader, error) {
	meta, err := store.Get(metaKey)
	if err != nil {
		return nil, err
	} else if meta == nil {
		return nil, errMissingMeta
	} else if len(meta) != 2 || meta[0] > meta[1] || meta[1] > s2.MaxLevel {
		return nil, errBadMeta
	}

	return &Reader{
		store:    store,
		minLevel: int(meta[0]),
		maxLevel: int(meta[1]),
	}, nil
}

// Lookup returns the sorted IDs of all loops containing the point.
func (r *Reader) Lookup(p s2.Point) ([]uint64, error) {
	var res []uint64

	leaf := s2.CellFromPoint(p).ID()
	seen := make(map[uint64]struct{})
	for level := r.minLevel; level <= r.maxLevel; level++ {
		ids, err := r.candidates(leaf.Parent(level))
		if err != nil {
			return nil, err
		}

		for _, id := range ids {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}

			l, err := r.Loop(id)
			if err != nil {
				return nil, err
			}
			if l.ContainsPoint(p) {
				res = append(res, id)
			}
		}
	}

	sort.Slice(res, func(i, j int) bool { return res[i] < res[j] })
	return res, nil
}

// candidates returns the IDs of loops that may intersect the cell.
func (r *Reader) candidates(cellID s2.CellID) ([]uint64, error) {
	val, err := r.store.Get(cellKey(cellID))
	if err != nil || val == nil {
		return nil, err
	}

	var ids []uint64
	var prev uint64
	for len(val) != 0 {
		delta, n := binary.Uvarint(val)
		if n <= 0 {
			return nil, errBadEntry
		}
		prev += delta
		ids = append(ids, prev)
		val = val[n:]
	}
	return ids, nil
}

// Loop retrieves a loop by ID.
func (r *Reader) Loop(id uint64) (*loop.Loop, error) {
	val, err := r.store.Get(loopKey(id))
	if err != nil {
		return nil, err
	} else if len(val) == 0 {
		return nil, errLoopNotFound
	}

	bin := val[1:]
	switch Compression(val[0]) {
	case SnappyCompression:
		if bin, err = snappy.Decode(nil, bin); err != nil {
			return nil, errors.Wrapf(err, "index: decode loop %d", id)
		}
	case NoCompression:
	default:
		return nil, errors.Errorf("index: bad compression for loop %d", id)
	}

	l := new(loop.Loop)
	if err := l.UnmarshalBinary(bin); err != nil {
		return nil, errors.Wrapf(err, "index: decode loop %d", id)
	}
	return l, nil
}

// Close closes the underlying store.
func (r *Reader) Close() error {
	return r.store.Close()
}
