// Package geo groups loops into polygons and approximates them with cells.
package geo

import (
	"encoding/binary"
	"io"
)

func binWrite(w io.Writer, v interface{}) error {
	return binary.Write(w, binary.LittleEndian, v)
}

func binRead(r io.Reader, v interface{}) error {
	return binary.Read(r, binary.LittleEndian, v)
}
