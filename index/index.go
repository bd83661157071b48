/*
Package index contains a "write-once, read-only" index of loops on top of
sorted key-value stores.

All keys are 9 bytes long, a single-byte prefix followed by a big-endian
uint64. Keys are written in ascending order, as required by SST tables.

    Cell entries:
    +-----+----------------+----------------------------------------+
    | 'c' | cell ID (8)    | loop IDs (uvarint, delta encoded)      |
    +-----+----------------+----------------------------------------+

    Loop entries:
    +-----+----------------+-----------------------+-----------------+
    | 'l' | loop ID (8)    | compression (1 byte)  | encoded loop    |
    +-----+----------------+-----------------------+-----------------+

A single meta entry with key 'm' stores the indexed cell level range.
*/
package index

import (
	"encoding/binary"
	"errors"

	"github.com/golang/geo/s2"
)

var (
	errClosed       = errors.New("index: is closed")
	errMissingMeta  = errors.New("index: missing meta entry")
	errBadMeta      = errors.New("index: bad meta entry")
	errBadEntry     = errors.New("index: bad cell entry")
	errLoopNotFound = errors.New("index: loop not found")
)

const keyLen = 9

const (
	prefixCell = 'c'
	prefixLoop = 'l'
	prefixMeta = 'm'
)

var metaKey = []byte{prefixMeta}

func cellKey(cellID s2.CellID) []byte { return makeKey(prefixCell, uint64(cellID)) }
func loopKey(id uint64) []byte        { return makeKey(prefixLoop, id) }

func makeKey(prefix byte, n uint64) []byte {
	key := make([]byte, keyLen)
	key[0] = prefix
	binary.BigEndian.PutUint64(key[1:], n)
	return key
}

// --------------------------------------------------------------------

type Compression byte

func (c Compression) isValid() bool {
	return c >= NoCompression && c <= unknownCompression
}

const (
	NoCompression Compression = iota + 1
	SnappyCompression
	unknownCompression
)

type Options struct {
	// The coarsest cell level to index. Must be > 0. Default: 4.
	MinLevel int

	// The finest cell level to index. Must be <= 30. Default: 16.
	MaxLevel int

	// The compression algorithm to use for loops. Default: SnappyCompression.
	Compression Compression

	// An optional temporary directory, used for sorting. Default: os.TempDir()
	TempDir string
}

func (o *Options) norm() *Options {
	var oo Options
	if o != nil {
		oo = *o
	}

	if oo.MaxLevel < 1 || oo.MaxLevel > s2.MaxLevel {
		oo.MaxLevel = 16
	}
	if oo.MinLevel < 1 {
		oo.MinLevel = 4
	}
	if oo.MinLevel > oo.MaxLevel {
		oo.MinLevel = oo.MaxLevel
	}
	if !oo.Compression.isValid() {
		oo.Compression = SnappyCompression
	}
	return &oo
}
