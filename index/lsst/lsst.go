// Package lsst stores an index in a single syndtr/goleveldb SST file.
package lsst

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/bsm/spherekit/index"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/table"
)

// DefaultOptions apply when nil options are passed. A lookup probes one cell
// key per level and most of them are absent, tables therefore carry a bloom
// filter. Readers must use the same filter as the writer.
var DefaultOptions = &opt.Options{
	Filter:    filter.NewBloomFilter(10),
	BlockSize: 16 * opt.KiB,
}

func norm(o *opt.Options) *opt.Options {
	if o == nil {
		return DefaultOptions
	}
	return o
}

type reader struct {
	tr   *table.Reader
	file io.Closer
}

// OpenFile opens an index file.
func OpenFile(fname string, o *opt.Options) (index.StoreReader, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}

	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	r, err := open(f, fi.Size(), o)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	r.file = f
	return r, nil
}

// Open opens an index table of the given size. The caller keeps ownership
// of ra.
func Open(ra io.ReaderAt, size int64, o *opt.Options) (index.StoreReader, error) {
	r, err := open(ra, size, o)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// readerAt hides Close, table.Reader.Release closes readers that have one.
type readerAt struct{ io.ReaderAt }

func open(ra io.ReaderAt, size int64, o *opt.Options) (*reader, error) {
	fd := storage.FileDesc{Type: storage.TypeTable}
	tr, err := table.NewReader(readerAt{ReaderAt: ra}, size, fd, nil, nil, norm(o))
	if err != nil {
		return nil, err
	}
	return &reader{tr: tr}, nil
}

// Get returns nil for missing keys. Unlike table.Reader.Get, the lookup is
// short-circuited by the filter block.
func (r *reader) Get(key []byte) ([]byte, error) {
	rkey, val, err := r.tr.Find(key, true, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	if !bytes.Equal(rkey, key) {
		return nil, nil
	}
	return val, nil
}

func (r *reader) Close() error {
	r.tr.Release()
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// --------------------------------------------------------------------

type writer struct {
	tw   *table.Writer
	file io.Closer
}

// CreateFile creates an index file, which is closed with the writer.
func CreateFile(fname string, o *opt.Options) (index.StoreWriter, error) {
	f, err := os.Create(fname)
	if err != nil {
		return nil, err
	}
	return &writer{tw: table.NewWriter(f, norm(o)), file: f}, nil
}

// Create writes an index table to w.
func Create(w io.Writer, o *opt.Options) (index.StoreWriter, error) {
	return &writer{tw: table.NewWriter(w, norm(o))}, nil
}

func (w *writer) Put(key, value []byte) error {
	return w.tw.Append(key, value)
}

func (w *writer) Close() error {
	err := w.tw.Close()
	if w.file != nil {
		if e := w.file.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}
