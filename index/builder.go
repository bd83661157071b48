package index

import (
	"encoding/binary"
	"io"

	"github.com/bsm/spherekit/geo"
	"github.com/bsm/spherekit/loop"
	"github.com/golang/geo/s2"
	"github.com/golang/snappy"
	"github.com/pkg/errors"
)

// Builder builds a new index. Loops can be added in any order.
type Builder struct {
	store  StoreWriter
	opts   *Options
	sorter *sorter

	snp []byte // snappy buffer
	tmp []byte // scratch buffer
}

// NewBuilder wraps a store writer. The store is closed by Close.
func NewBuilder(store StoreWriter, o *Options) *Builder {
	o = o.norm()
	return &Builder{
		store:  store,
		opts:   o,
		sorter: newSorter(o.TempDir),
		tmp:    make([]byte, 8),
	}
}

// Add adds a loop to the index. IDs must be unique.
func (b *Builder) Add(id uint64, l *loop.Loop) error {
	if b.sorter == nil {
		return errClosed
	}

	bin, err := l.MarshalBinary()
	if err != nil {
		return err
	}

	val := make([]byte, 1, 1+len(bin))
	val[0] = byte(b.opts.Compression)
	if b.opts.Compression == SnappyCompression {
		b.snp = snappy.Encode(b.snp[:cap(b.snp)], bin)
		val = append(val, b.snp...)
	} else {
		val = append(val, bin...)
	}
	if err := b.sorter.Append(loopKey(id), val); err != nil {
		return err
	}

	binary.BigEndian.PutUint64(b.tmp, id)
	geo.FitLoopDo(l, b.opts.MaxLevel, func(cellID s2.CellID) bool {
		err = b.appendCell(cellID, b.tmp)
		return err == nil
	})
	return err
}

func (b *Builder) appendCell(cellID s2.CellID, id []byte) error {
	if cellID.Level() >= b.opts.MinLevel {
		return b.sorter.Append(cellKey(cellID), id)
	}

	end := cellID.ChildEndAtLevel(b.opts.MinLevel)
	for c := cellID.ChildBeginAtLevel(b.opts.MinLevel); c != end; c = c.Next() {
		if err := b.sorter.Append(cellKey(c), id); err != nil {
			return err
		}
	}
	return nil
}

// Close sorts all entries, writes them to the store and closes it.
func (b *Builder) Close() error {
	if b.sorter == nil {
		return errClosed
	}

	err := b.flush()
	if e := b.sorter.Close(); e != nil && err == nil {
		err = e
	}
	if e := b.store.Close(); e != nil && err == nil {
		err = e
	}
	b.sorter = nil
	return err
}

func (b *Builder) flush() error {
	iter, err := b.sorter.Sort()
	if err != nil {
		return errors.Wrap(err, "index: sort entries")
	}
	defer iter.Close()

	var buf []byte
	for {
		key, vals, err := iter.NextEntry()
		if err == io.EOF {
			break
		} else if err != nil {
			return errors.Wrap(err, "index: sort entries")
		}

		switch key[0] {
		case prefixCell:
			buf = appendIDs(buf[:0], vals)
		case prefixLoop:
			if len(vals) != 1 {
				return errors.Errorf("index: duplicate loop ID %d", binary.BigEndian.Uint64(key[1:]))
			}
			buf = append(buf[:0], vals[0]...)
		}

		if err := b.store.Put(key, buf); err != nil {
			return err
		}
	}

	return b.store.Put(metaKey, []byte{byte(b.opts.MinLevel), byte(b.opts.MaxLevel)})
}

// appendIDs delta-encodes sorted big-endian IDs, skipping duplicates.
func appendIDs(dst []byte, vals [][]byte) []byte {
	var prev uint64
	for i, v := range vals {
		id := binary.BigEndian.Uint64(v)
		if i > 0 && id == prev {
			continue
		}
		dst = binary.AppendUvarint(dst, id-prev)
		prev = id
	}
	return dst
}
