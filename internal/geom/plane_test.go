package geom

import "testing"

func TestPlaneFromFaceAxisAligned(t *testing.T) {
	verts := []Vertex{
		{0, 0, 0},
		{1, 0, 0},
		{0, 0, 1},
	}
	f := Face{I: [3]uint16{0, 1, 2}}

	p, ok := PlaneFromFace(verts, f)
	if !ok {
		t.Fatal("expected a valid plane from a non-degenerate face")
	}

	if p.M.Y <= 0 {
		t.Errorf("expected an upward-facing normal for this winding, got %+v", p.M)
	}

	for _, v := range verts {
		d := DistanceToPlane(p, v)
		if d < -Eps || d > Eps {
			t.Errorf("vertex %+v should lie on its own face's plane, got distance %v", v, d)
		}
	}
}

func TestPlaneFromFaceDegenerate(t *testing.T) {
	verts := []Vertex{
		{0, 0, 0},
		{1, 0, 0},
		{2, 0, 0},
	}
	f := Face{I: [3]uint16{0, 1, 2}}

	if _, ok := PlaneFromFace(verts, f); ok {
		t.Error("expected a degenerate (collinear) face to be rejected")
	}
}

func TestDistanceToPlaneSign(t *testing.T) {
	p := Plane{M: Vertex{0, 1, 0}, D: 0}

	if d := DistanceToPlane(p, Vertex{0, 5, 0}); d <= 0 {
		t.Errorf("expected a positive distance above the plane, got %v", d)
	}
	if d := DistanceToPlane(p, Vertex{0, -5, 0}); d >= 0 {
		t.Errorf("expected a negative distance below the plane, got %v", d)
	}
	if d := DistanceToPlane(p, Vertex{3, 0, -2}); d < -Eps || d > Eps {
		t.Errorf("expected a near-zero distance on the plane, got %v", d)
	}
}

func TestRayPlaneIntersect(t *testing.T) {
	p := Plane{M: Vertex{0, 1, 0}, D: 0}

	hit, ok := RayPlaneIntersect(p, Vertex{0, -1, 0}, Vertex{0, 1, 0})
	if !ok {
		t.Fatal("expected an intersection for a segment crossing the plane")
	}
	if hit.Y < -Eps || hit.Y > Eps {
		t.Errorf("expected the crossing point at y=0, got %+v", hit)
	}

	if _, ok := RayPlaneIntersect(p, Vertex{0, 1, 0}, Vertex{1, 1, 0}); ok {
		t.Error("expected no intersection for a segment parallel to the plane")
	}
}
