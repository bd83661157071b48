package loop

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
)

const encodingVersion = 1

const flagDepthSet = 1 << 0

var errInvalidEncoding = errors.New("loop: invalid encoding")

// MarshalBinary implements encoding.BinaryMarshaler.
//
// Layout: version (1 byte), flags (1 byte), vertex count (uvarint), x/y/z
// of each vertex (float64, little endian), depth (varint).
func (l *Loop) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 0, 2+2*binary.MaxVarintLen64+24*len(l.vertices))

	var flags byte
	if l.depthSet {
		flags |= flagDepthSet
	}
	buf = append(buf, encodingVersion, flags)
	buf = binary.AppendUvarint(buf, uint64(len(l.vertices)))
	for _, v := range l.vertices {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v.X))
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v.Y))
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v.Z))
	}
	buf = binary.AppendVarint(buf, int64(l.depth))
	return buf, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. The decoded
// vertices are validated like in New.
func (l *Loop) UnmarshalBinary(data []byte) error {
	if len(data) < 2 {
		return errInvalidEncoding
	}
	if data[0] != encodingVersion {
		return fmt.Errorf("loop: unsupported encoding version %d", data[0])
	}
	flags := data[1]
	data = data[2:]

	n, sz := binary.Uvarint(data)
	if sz <= 0 {
		return errInvalidEncoding
	}
	if data = data[sz:]; n > uint64(len(data)/24) {
		return errInvalidEncoding
	}

	vs := make([]s2.Point, int(n))
	for i := range vs {
		vs[i] = s2.Point{Vector: r3.Vector{
			X: math.Float64frombits(binary.LittleEndian.Uint64(data[0:])),
			Y: math.Float64frombits(binary.LittleEndian.Uint64(data[8:])),
			Z: math.Float64frombits(binary.LittleEndian.Uint64(data[16:])),
		}}
		data = data[24:]
	}

	depth, sz := binary.Varint(data)
	if sz <= 0 {
		return errInvalidEncoding
	}

	nl, err := New(vs)
	if err != nil {
		return err
	}
	nl.depth = int(depth)
	nl.depthSet = flags&flagDepthSet != 0

	*l = *nl
	return nil
}
