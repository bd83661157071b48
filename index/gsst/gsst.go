// Package gsst stores an index in a single golang/leveldb table file.
package gsst

import (
	"os"

	"github.com/bsm/spherekit/index"
	"github.com/golang/leveldb/bloom"
	"github.com/golang/leveldb/db"
	"github.com/golang/leveldb/table"
)

// DefaultOptions apply when nil options are passed. Tables carry a bloom
// filter for the absent cell keys probed by lookups, readers must use the
// same policy as the writer.
var DefaultOptions = &db.Options{
	FilterPolicy: bloom.FilterPolicy(10),
}

func norm(o *db.Options) *db.Options {
	if o == nil {
		return DefaultOptions
	}
	return o
}

type reader struct{ tr *table.Reader }

// Open opens an index file. The file is closed with the reader.
func Open(fname string, o *db.Options) (index.StoreReader, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	return &reader{tr: table.NewReader(f, norm(o))}, nil
}

// Get returns nil for missing keys.
func (r *reader) Get(key []byte) ([]byte, error) {
	val, err := r.tr.Get(key, nil)
	if err == db.ErrNotFound {
		return nil, nil
	}
	return val, err
}

func (r *reader) Close() error { return r.tr.Close() }

// --------------------------------------------------------------------

type writer struct{ tw *table.Writer }

// Create creates an index file. The file is closed with the writer.
func Create(fname string, o *db.Options) (index.StoreWriter, error) {
	f, err := os.Create(fname)
	if err != nil {
		return nil, err
	}
	return &writer{tw: table.NewWriter(f, norm(o))}, nil
}

func (w *writer) Put(key, value []byte) error {
	return w.tw.Set(key, value, nil)
}

func (w *writer) Close() error { return w.tw.Close() }
