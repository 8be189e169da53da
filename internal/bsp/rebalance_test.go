package bsp

import (
	"testing"

	"github.com/callykitten99/BSP/internal/geom"
	"github.com/callykitten99/BSP/internal/pools"
	"github.com/stretchr/testify/assert"
)

// tagged builds a throwaway face/plane pair carrying a unique marker in
// I[0]/D so a move's effect on slot contents can be read back without
// needing real geometry — these four moves only ever shuffle array
// elements, they never look at the geometry they carry.
func tagged(n int) *pools.Pools {
	faces := make([]geom.Face, n)
	planes := make([]geom.Plane, n)
	for i := 0; i < n; i++ {
		faces[i] = geom.Face{I: [3]uint16{uint16(i), uint16(i), uint16(i)}}
		planes[i] = geom.Plane{D: float32(i)}
	}
	return &pools.Pools{Faces: faces, Planes: planes}
}

func tags(p *pools.Pools) []uint16 {
	out := make([]uint16, len(p.Faces))
	for i, f := range p.Faces {
		out[i] = f.I[0]
	}
	return out
}

func TestMoveRightSimpleSwapsAdjacentSlot(t *testing.T) {
	p := tagged(3)
	moveRightSimple(p, 1, 0) // pivot at 1, elem at 0, adjacent: a direct swap
	assert.Equal(t, []uint16{1, 0, 2}, tags(p))
	assert.Equal(t, float32(1), p.Planes[0].D)
}

func TestMoveLeftSimpleSwapsAdjacentSlot(t *testing.T) {
	p := tagged(3)
	moveLeftSimple(p, 1, 2)
	assert.Equal(t, []uint16{0, 2, 1}, tags(p))
}

func TestMoveRightShiftsBandAndPreservesMultiset(t *testing.T) {
	p := tagged(6)
	before := append([]uint16(nil), tags(p)...)

	moveRight(p, 2, 3, 0) // band [2,3], elem 0 joins the right side
	after := tags(p)

	assert.ElementsMatch(t, before, after, "a shuffle must not lose or duplicate a face")
	assert.Equal(t, uint16(0), after[3], "elem's tag now sits just right of the shifted band [1,2]")
}

func TestMoveLeftShiftsBandAndPreservesMultiset(t *testing.T) {
	p := tagged(6)
	before := append([]uint16(nil), tags(p)...)

	moveLeft(p, 2, 3, 5) // band [2,3], elem 5 joins the left side
	after := tags(p)

	assert.ElementsMatch(t, before, after)
	assert.Equal(t, uint16(5), after[2], "elem's tag now sits just left of the shifted band [3,4]")
}

func TestMoveCoincidentFoldsNeighborIntoBand(t *testing.T) {
	p := tagged(5)
	before := append([]uint16(nil), tags(p)...)

	moveCoincident(p, 2, 2, 3) // elem is already the band's right neighbour: a no-op fold
	assert.Equal(t, before, tags(p))

	p2 := tagged(5)
	moveCoincident(p2, 2, 2, 4)
	after := tags(p2)
	assert.ElementsMatch(t, []uint16{0, 1, 2, 3, 4}, after)
	assert.Equal(t, uint16(4), after[3], "elem now sits in the band's adjacent slot")
}
