package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Rel classifies a triangle (or vertex) against a plane.
type Rel int

const (
	RelLeft Rel = iota
	RelRight
	RelIntersect
	RelCoincide
)

func (r Rel) String() string {
	switch r {
	case RelLeft:
		return "LEFT"
	case RelRight:
		return "RIGHT"
	case RelIntersect:
		return "INTERSECT"
	case RelCoincide:
		return "COINCIDE"
	default:
		return "UNKNOWN"
	}
}

// Eps is the absolute classification tolerance applied to signed
// distances from a plane: single-precision FLT_EPSILON by default. It is
// adequate for the coordinate scales (O(1)-O(100)) this builder targets,
// not universally robust, and is a var rather than a const so a CLI
// config can override it for meshes at a different scale.
var Eps float32 = 1.1920929e-7

// Plane is a Hessian-normal-form plane: unit normal M and signed
// distance D from the origin, such that a point p lies on the plane iff
// M . p == D. Rel is a transient classification tag, populated by the
// pivot scorer for use by diagnostics.
type Plane struct {
	M   Vertex
	D   float32
	Rel Rel
}

// DistanceToPlane returns the signed distance from p to the plane,
// computed in double precision via mgl64.Vec3 and rounded to single.
func DistanceToPlane(p Plane, v Vertex) float32 {
	vv := mgl64.Vec3{float64(v.X), float64(v.Y), float64(v.Z)}
	mm := mgl64.Vec3{float64(p.M.X), float64(p.M.Y), float64(p.M.Z)}
	return float32(vv.Dot(mm) - float64(p.D))
}

// PlaneFromFace derives the supporting Hessian-normal-form plane of a
// face. Faces are wound clockwise front-facing, so the two edges taken
// are v[i2]-v[i0] and v[i1]-v[i0] (index order 0, 2, 1). Returns false
// for a degenerate (zero-area) face; the caller is responsible for
// dropping it.
//
// The edges and their cross product are computed in mgl64.Vec3, not
// mgl32.Vec3: the degeneracy check below tests the cross product's own
// magnitude, and a near-degenerate (thin or near-collinear) face loses
// the cancellation bits that check depends on if the cross product
// itself is rounded to float32 before the check runs. Only the
// normalized result is narrowed back to the Vertex's float32 storage.
func PlaneFromFace(verts []Vertex, f Face) (Plane, bool) {
	v0 := verts[f.I[0]]
	v1 := verts[f.I[2]]
	v2 := verts[f.I[1]]

	p0 := mgl64.Vec3{float64(v0.X), float64(v0.Y), float64(v0.Z)}
	p1 := mgl64.Vec3{float64(v1.X), float64(v1.Y), float64(v1.Z)}
	p2 := mgl64.Vec3{float64(v2.X), float64(v2.Y), float64(v2.Z)}

	e0 := p1.Sub(p0)
	e1 := p2.Sub(p0)
	n := e0.Cross(e1)

	mag := n.Dot(n)
	if mag < doubleEps {
		return Plane{}, false
	}
	n = n.Mul(1 / math.Sqrt(mag))

	d := n.Dot(p0)

	return Plane{
		M: Vertex{float32(n.X()), float32(n.Y()), float32(n.Z())},
		D: float32(d),
	}, true
}

// doubleEps mirrors DBL_EPSILON from the original C source: the
// tolerance against which a face's cross-product magnitude is checked
// for degeneracy, in double precision ahead of the single-precision
// plane it produces.
const doubleEps = 2.220446049250313e-16

// RayPlaneIntersect intersects the segment (l0, l1) against the plane,
// returning the intersection point and true, or false if the segment is
// parallel to the plane (|m.l| < doubleEps). The caller is responsible
// for ensuring the interpolation parameter lies in [0, 1]; in clip
// contexts this is guaranteed by the sign classification that selected
// this edge for splitting. Computed in mgl64.Vec3 for the same
// cancellation-sensitivity reason as PlaneFromFace: ldN can be small
// for a near-grazing edge, and the parallel check needs the precision
// mgl32.Vec3 can't give it.
func RayPlaneIntersect(p Plane, l0, l1 Vertex) (Vertex, bool) {
	pl0 := mgl64.Vec3{float64(l0.X), float64(l0.Y), float64(l0.Z)}
	pl1 := mgl64.Vec3{float64(l1.X), float64(l1.Y), float64(l1.Z)}
	m := mgl64.Vec3{float64(p.M.X), float64(p.M.Y), float64(p.M.Z)}

	l := pl1.Sub(pl0)
	ldN := l.Dot(m)
	if math.Abs(ldN) < doubleEps {
		return Vertex{}, false
	}

	l0dN := float64(p.D) - pl0.Dot(m)
	a := l0dN / ldN

	result := pl0.Add(l.Mul(a))
	return Vertex{float32(result.X()), float32(result.Y()), float32(result.Z())}, true
}
