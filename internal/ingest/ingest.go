// Package ingest reads the two companion binary files that feed the
// BSP builder: a packed vertex array and a packed triangle-index
// array, following the same base-name-plus-extension convention and
// fixed-width little-endian decoding the mesh format uses throughout
// this module.
package ingest

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/callykitten99/BSP/internal/geom"
	"github.com/callykitten99/BSP/internal/pools"
)

// ErrShortRead is returned when a companion file's size is not an
// exact multiple of its record width.
var ErrShortRead = errors.New("ingest: file size is not a multiple of the record width")

const (
	vertRecordBytes = 12 // 3 x float32
	faceRecordBytes = 6  // 3 x uint16
)

// The .VTX/.IDX format fixes its byte order to little-endian, matching
// the original tool's "host byte order" on the x86 machines it targeted.
// A big-endian host would silently misread every mesh; this module has
// no byte-order-detection or config override for it.

// Load reads base+".VTX" and base+".IDX", decodes them into a fresh
// Pools, and runs pools.Check to drop any triangle referencing an
// out-of-range vertex. base may include or omit an extension; any
// existing extension is stripped before ".VTX"/".IDX" is appended.
func Load(base string, logf func(format string, args ...any)) (*pools.Pools, error) {
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	verts, err := loadVerts(stem + ".VTX")
	if err != nil {
		return nil, fmt.Errorf("ingest: loading vertices: %w", err)
	}
	faces, err := loadFaces(stem + ".IDX")
	if err != nil {
		return nil, fmt.Errorf("ingest: loading faces: %w", err)
	}

	p := &pools.Pools{
		Verts:  verts,
		Faces:  faces,
		Planes: make([]geom.Plane, len(faces)),
	}

	if err := p.Check(logf); err != nil {
		return nil, fmt.Errorf("ingest: checking faces: %w", err)
	}

	return p, nil
}

func loadVerts(path string) ([]geom.Vertex, error) {
	body, err := readWhole(path)
	if err != nil {
		return nil, err
	}
	if len(body)%vertRecordBytes != 0 {
		return nil, fmt.Errorf("%w: %s is %d bytes", ErrShortRead, path, len(body))
	}

	n := len(body) / vertRecordBytes
	verts := make([]geom.Vertex, n)
	for i := 0; i < n; i++ {
		off := i * vertRecordBytes
		verts[i] = geom.Vertex{
			X: decodeFloat32(body[off : off+4]),
			Y: decodeFloat32(body[off+4 : off+8]),
			Z: decodeFloat32(body[off+8 : off+12]),
		}
	}
	return verts, nil
}

func loadFaces(path string) ([]geom.Face, error) {
	body, err := readWhole(path)
	if err != nil {
		return nil, err
	}
	if len(body)%faceRecordBytes != 0 {
		return nil, fmt.Errorf("%w: %s is %d bytes", ErrShortRead, path, len(body))
	}

	n := len(body) / faceRecordBytes
	faces := make([]geom.Face, n)
	for i := 0; i < n; i++ {
		off := i * faceRecordBytes
		faces[i] = geom.Face{I: [3]uint16{
			binary.LittleEndian.Uint16(body[off : off+2]),
			binary.LittleEndian.Uint16(body[off+2 : off+4]),
			binary.LittleEndian.Uint16(body[off+4 : off+6]),
		}}
	}
	return faces, nil
}

func readWhole(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	buf := make([]byte, info.Size())
	if _, err := io.ReadFull(f, buf); err != nil {
		return nil, fmt.Errorf("short read on %s: %w", path, err)
	}
	return buf, nil
}

func decodeFloat32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
