package bsp

import (
	"github.com/callykitten99/BSP/internal/geom"
	"github.com/callykitten99/BSP/internal/pools"
)

// scoreRange classifies every face in [l, r) against the plane at
// planeAt, tagging each face's Planes[i].Rel as a side effect (nothing
// in this module reads the tags back), and returns the intersection count and the
// |left - right| imbalance over the range.
func scoreRange(p *pools.Pools, l, planeAt, r int) (ints, bal int) {
	plane := p.Planes[planeAt]
	verts := p.Verts
	faces := p.Faces

	balSigned := 0
	for i := l; i < r; i++ {
		var neg, pos bool

		d := geom.DistanceToPlane(plane, verts[faces[i].I[0]])
		switch {
		case d <= -geom.Eps:
			neg = true
		case d >= geom.Eps:
			pos = true
		}

		d = geom.DistanceToPlane(plane, verts[faces[i].I[1]])
		switch {
		case d <= -geom.Eps:
			neg = true
		case d >= geom.Eps:
			pos = true
		}

		if neg && pos {
			ints++
			p.Planes[i].Rel = geom.RelIntersect
			continue
		}

		d = geom.DistanceToPlane(plane, verts[faces[i].I[2]])
		switch {
		case d <= -geom.Eps:
			neg = true
		case d >= geom.Eps:
			pos = true
		}

		switch {
		case neg && pos:
			ints++
			p.Planes[i].Rel = geom.RelIntersect
		case neg:
			balSigned--
			p.Planes[i].Rel = geom.RelLeft
		case pos:
			balSigned++
			p.Planes[i].Rel = geom.RelRight
		default:
			p.Planes[i].Rel = geom.RelCoincide
		}
	}

	if balSigned < 0 {
		balSigned = -balSigned
	}
	return ints, balSigned
}

// pivotScore combines a candidate's imbalance and intersection count
// into a single comparable score: intersections cost 8x an imbalance
// unit, since each intersection forces a clip.
func pivotScore(ints, bal int) int {
	return bal + ints*8
}
