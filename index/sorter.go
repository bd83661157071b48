package index

import (
	"bytes"
	"io"

	"github.com/bsm/extsort"
)

// sorter pre-sorts entries to avoid out-of-order puts.
type sorter struct {
	x *extsort.Sorter
	t []byte
}

func newSorter(dir string) *sorter {
	return &sorter{
		x: extsort.New(&extsort.Options{WorkDir: dir}),
	}
}

// Append appends an entry, key must be keyLen bytes long.
func (s *sorter) Append(key, data []byte) error {
	if sz := keyLen + len(data); sz <= cap(s.t) {
		s.t = s.t[:sz]
	} else {
		s.t = make([]byte, sz)
	}

	copy(s.t[0:], key)
	copy(s.t[keyLen:], data)
	return s.x.Append(s.t)
}

// Sort sorts appended values and returns an iterator.
func (s *sorter) Sort() (*sorterIterator, error) {
	iter, err := s.x.Sort()
	if err != nil {
		return nil, err
	}
	return &sorterIterator{it: iter}, nil
}

// Close closes the sorter and releases all resources.
func (s *sorter) Close() error {
	return s.x.Close()
}

// sorterIterator iterates over sorted results, grouped by key.
type sorterIterator struct {
	it *extsort.Iterator

	key     []byte
	pending []byte // first value of the next entry
}

// NextEntry reads the next key and its values in ascending order. This
// function will return io.EOF if no more entries can be read.
func (i *sorterIterator) NextEntry() ([]byte, [][]byte, error) {
	var vals [][]byte
	key := i.key
	if i.pending != nil {
		vals = append(vals, i.pending)
		i.pending = nil
	}

	for i.it.Next() {
		raw := i.it.Data()
		if vals != nil && !bytes.Equal(raw[:keyLen], key) {
			i.key = clone(raw[:keyLen])
			i.pending = clone(raw[keyLen:])
			return key, vals, nil
		}
		if vals == nil {
			key = clone(raw[:keyLen])
		}
		vals = append(vals, clone(raw[keyLen:]))
	}

	if err := i.it.Err(); err != nil {
		return nil, nil, err
	}
	if vals != nil {
		return key, vals, nil
	}
	return nil, nil, io.EOF
}

// Close closes iterator and releases resources.
func (i *sorterIterator) Close() error {
	return i.it.Close()
}

func clone(b []byte) []byte {
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
