package bsp

import (
	"testing"

	"github.com/callykitten99/BSP/internal/geom"
	"github.com/callykitten99/BSP/internal/pools"
)

func mustPool(t *testing.T, verts []geom.Vertex, faces []geom.Face) *pools.Pools {
	t.Helper()
	p := &pools.Pools{
		Verts:  verts,
		Faces:  faces,
		Planes: make([]geom.Plane, len(faces)),
	}
	if err := p.MakePlanes(nil); err != nil {
		t.Fatalf("MakePlanes: %v", err)
	}
	return p
}

func v(x, y, z float32) geom.Vertex { return geom.Vertex{X: x, Y: y, Z: z} }

func f(a, b, c uint16) geom.Face { return geom.Face{I: [3]uint16{a, b, c}} }
