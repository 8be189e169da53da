package bsp

import (
	"github.com/callykitten99/BSP/internal/geom"
	"github.com/callykitten99/BSP/internal/pools"
)

// Classify computes the three-way relationship of a face against a
// plane, using the fixed absolute tolerance geom.Eps on each vertex's
// signed distance. A vertex is "neg" if d <= -Eps, "pos" if d >= +Eps,
// and otherwise lies on the plane. Any pair of vertices straddling the
// plane (one neg, one pos) is an immediate INTERSECT; the third vertex
// is only consulted once the first two agree.
func Classify(p geom.Plane, f geom.Face, verts []geom.Vertex) geom.Rel {
	var neg, pos bool

	d := geom.DistanceToPlane(p, verts[f.I[0]])
	switch {
	case d <= -geom.Eps:
		neg = true
	case d >= geom.Eps:
		pos = true
	}

	d = geom.DistanceToPlane(p, verts[f.I[1]])
	switch {
	case d <= -geom.Eps:
		neg = true
	case d >= geom.Eps:
		pos = true
	}

	if neg && pos {
		return geom.RelIntersect
	}

	d = geom.DistanceToPlane(p, verts[f.I[2]])
	switch {
	case d <= -geom.Eps:
		neg = true
	case d >= geom.Eps:
		pos = true
	}

	switch {
	case neg && pos:
		return geom.RelIntersect
	case neg:
		return geom.RelLeft
	case pos:
		return geom.RelRight
	default:
		return geom.RelCoincide
	}
}

// classifyAt is a convenience wrapper classifying faces[i] against the
// plane at planes[planeAt].
func classifyAt(p *pools.Pools, planeAt, i uint16) geom.Rel {
	return Classify(p.Planes[planeAt], p.Faces[i], p.Verts)
}
