// Package pools implements the growable, index-addressed arenas that back
// the BSP builder: a vertex pool, a face pool, and a plane pool kept
// index-parallel with the face pool. Every cross-reference into these
// arenas is a 16-bit index rather than a pointer, because face insertion
// and deletion shift array elements in place — see FaceInsert/FaceDel below.
package pools

import (
	"errors"
	"fmt"

	"github.com/callykitten99/BSP/internal/geom"
)

// NoIndex is the sentinel meaning "no such entry". Freshly allocated
// arenas are conceptually filled with 0xFF so that any index left
// uninitialized reads as this sentinel.
const NoIndex uint16 = 0xFFFF

// MaxEntries is the hard cap on both the vertex and the face pool,
// imposed by the 16-bit index width.
const MaxEntries = 0xFFFF

var (
	// ErrCapacityExceeded is returned when an arena would need to grow
	// past MaxEntries to satisfy a request.
	ErrCapacityExceeded = errors.New("pools: capacity exceeded (16-bit index limit)")
	// ErrOutOfRange is returned for an index or position outside the
	// arena's current occupied range.
	ErrOutOfRange = errors.New("pools: index out of range")
	// ErrNilPool is returned when an operation is attempted against a
	// pool that hasn't been allocated.
	ErrNilPool = errors.New("pools: not allocated")
)

// DelFlags selects which of the index-parallel arrays a delete/shift
// touches. Faces and Planes are normally shifted together; DelFlags
// exists for the rare operations (none, currently) that touch only one.
type DelFlags uint8

const (
	DelFace DelFlags = 1 << iota
	DelPlane
)

// Pools holds the three synchronized arrays backing the mesh: vertex
// positions, triangle index triples, and their cached supporting planes.
// Faces and Planes are always the same length outside of the atomic
// insert/delete helpers below.
type Pools struct {
	Verts  []geom.Vertex
	Faces  []geom.Face
	Planes []geom.Plane
}

// Alloc resets and reserves space for nv vertices and nf faces.
func Alloc(nv, nf int) (*Pools, error) {
	if nv < 0 || nf < 0 || nv > MaxEntries || nf > MaxEntries {
		return nil, ErrCapacityExceeded
	}
	return &Pools{
		Verts:  make([]geom.Vertex, nv),
		Faces:  make([]geom.Face, nf),
		Planes: make([]geom.Plane, nf),
	}, nil
}

// NumVerts reports the current vertex count.
func (p *Pools) NumVerts() int { return len(p.Verts) }

// NumFaces reports the current face count (equal to the plane count).
func (p *Pools) NumFaces() int { return len(p.Faces) }

// VertDeclare pre-reserves headroom so that num subsequent VertAdd calls
// are guaranteed not to exceed the 16-bit index cap. Go slices grow
// their own backing array transparently, so this exists to preserve the
// pool's stated contract (no silent cap overrun) rather than to protect
// raw pointers the way the original C implementation needed to.
func (p *Pools) VertDeclare(num int) error {
	if p == nil {
		return ErrNilPool
	}
	if len(p.Verts)+num > MaxEntries {
		return fmt.Errorf("%w: vertex pool would grow to %d", ErrCapacityExceeded, len(p.Verts)+num)
	}
	return nil
}

// FaceDeclare pre-reserves headroom so that num subsequent face
// inserts are guaranteed not to exceed the 16-bit index cap.
func (p *Pools) FaceDeclare(num int) error {
	if p == nil {
		return ErrNilPool
	}
	if len(p.Faces)+num > MaxEntries {
		return fmt.Errorf("%w: face pool would grow to %d", ErrCapacityExceeded, len(p.Faces)+num)
	}
	return nil
}

// VertAdd appends a vertex, returning its new index, or NoIndex if the
// pool is at capacity.
func (p *Pools) VertAdd(v geom.Vertex) (uint16, error) {
	if p == nil {
		return NoIndex, ErrNilPool
	}
	if len(p.Verts) >= MaxEntries {
		return NoIndex, ErrCapacityExceeded
	}
	p.Verts = append(p.Verts, v)
	return uint16(len(p.Verts) - 1), nil
}

// FaceInsert inserts a face (and its plane) at pos, shifting
// [pos, n_faces) right by one in both Faces and Planes. If plane is
// nil, the plane is derived from f and the current vertex pool.
func (p *Pools) FaceInsert(f geom.Face, plane *geom.Plane, pos uint16) error {
	if p == nil {
		return ErrNilPool
	}
	if int(pos) > len(p.Faces) {
		return fmt.Errorf("%w: insert position %d > face count %d", ErrOutOfRange, pos, len(p.Faces))
	}
	if len(p.Faces) >= MaxEntries {
		return ErrCapacityExceeded
	}

	var pl geom.Plane
	if plane != nil {
		pl = *plane
	} else {
		pl, _ = geom.PlaneFromFace(p.Verts, f)
	}

	p.Faces = append(p.Faces, geom.Face{})
	copy(p.Faces[pos+1:], p.Faces[pos:len(p.Faces)-1])
	p.Faces[pos] = f

	p.Planes = append(p.Planes, geom.Plane{})
	copy(p.Planes[pos+1:], p.Planes[pos:len(p.Planes)-1])
	p.Planes[pos] = pl

	return nil
}

// FaceDel deletes the face at i, left-shifting [i+1, n_faces) by one in
// whichever of {Faces, Planes} flags selects. Used only to purge
// degenerate or out-of-range faces during ingestion.
func (p *Pools) FaceDel(i int, flags DelFlags) error {
	if p == nil {
		return ErrNilPool
	}
	if i < 0 || i >= len(p.Faces) {
		return ErrOutOfRange
	}

	if flags&DelFace != 0 {
		p.Faces = append(p.Faces[:i], p.Faces[i+1:]...)
	}
	if flags&DelPlane != 0 {
		p.Planes = append(p.Planes[:i], p.Planes[i+1:]...)
	}
	return nil
}

// Check walks every face and deletes any whose vertex indices exceed the
// vertex pool, logging the index of each face it drops.
func (p *Pools) Check(logf func(format string, args ...any)) error {
	if p == nil {
		return ErrNilPool
	}
	nv := len(p.Verts)

	for i := 0; i < len(p.Faces); {
		f := p.Faces[i]
		if int(f.I[0]) >= nv || int(f.I[1]) >= nv || int(f.I[2]) >= nv {
			if logf != nil {
				logf("face %d references an out-of-range vertex and will be deleted", i)
			}
			if err := p.FaceDel(i, DelFace|DelPlane); err != nil {
				return err
			}
			continue
		}
		i++
	}
	return nil
}

// MakePlanes (re)populates Planes[i] from Faces[i], deleting any face
// that turns out to be degenerate (zero area).
func (p *Pools) MakePlanes(logf func(format string, args ...any)) error {
	if p == nil {
		return ErrNilPool
	}
	if len(p.Verts) == 0 || len(p.Faces) == 0 {
		return fmt.Errorf("%w: empty pool", ErrNilPool)
	}

	for i := 0; i < len(p.Faces); {
		pl, ok := geom.PlaneFromFace(p.Verts, p.Faces[i])
		if !ok {
			if logf != nil {
				logf("face %d does not form a plane and will be deleted", i)
			}
			if err := p.FaceDel(i, DelFace|DelPlane); err != nil {
				return err
			}
			continue
		}
		p.Planes[i] = pl
		i++
	}
	return nil
}
