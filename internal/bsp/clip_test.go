package bsp

import (
	"testing"

	"github.com/callykitten99/BSP/internal/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestClipFaceSplitsStraddlingTriangle drives clipFace directly against a
// triangle with one vertex on one side of the pivot plane and two on the
// other, the same straddling geometry the builder-level test exercises
// through the full recursive partition.
func TestClipFaceSplitsStraddlingTriangle(t *testing.T) {
	p := mustPool(t, []geom.Vertex{
		v(0, 0, 0), v(1, 0, 0), v(0, 1, 0),
		v(0.2, 0.2, -1), v(0.2, 0.2, 1), v(0.8, 0.2, 1),
	}, []geom.Face{f(0, 1, 2), f(3, 4, 5)})

	win := &window{L: 0, R: 2, PL: 0, PR: 0}
	clips := 0

	advance, clipped, err := clipFace(win, p, 1, 0, &clips)
	require.NoError(t, err)
	assert.True(t, clipped)
	// One vertex (index 3) is ahead of the pivot plane and two (4, 5) are
	// behind: a full two-edge split, inserting both replacement triangles.
	assert.Equal(t, 2, clips)
	assert.Equal(t, 2, advance)

	assert.Equal(t, 2+clips, p.NumFaces(), "clipping grows the face pool by one face per inserted piece")

	// The pivot itself shifted from index 0 to win.PL as the two inserts
	// made room ahead of it; every other face must now classify cleanly
	// to one side of its plane instead of straddling it.
	pivotPlane := p.Planes[win.PL]
	for i := 0; i < p.NumFaces(); i++ {
		if i >= win.PL && i <= win.PR {
			continue
		}
		rel := Classify(pivotPlane, p.Faces[i], p.Verts)
		assert.NotEqual(t, geom.RelIntersect, rel, "face %d should no longer straddle the pivot plane", i)
	}
}

// TestClipFaceRejectsPivotBandFace guards the ErrPivotClipped invariant:
// clipping is never attempted against a face already inside the pivot's
// own coplanar band.
func TestClipFaceRejectsPivotBandFace(t *testing.T) {
	p := mustPool(t, []geom.Vertex{
		v(0, 0, 0), v(1, 0, 0), v(0, 1, 0),
	}, []geom.Face{f(0, 1, 2)})

	win := &window{L: 0, R: 1, PL: 0, PR: 0}
	clips := 0

	_, _, err := clipFace(win, p, 0, 0, &clips)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPivotClipped)
}
