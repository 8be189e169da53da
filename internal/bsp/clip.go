package bsp

import (
	"errors"
	"fmt"

	"github.com/callykitten99/BSP/internal/geom"
	"github.com/callykitten99/BSP/internal/pools"
)

// ErrPivotClipped is returned when clipFace is asked to split a face
// that already lies inside the pivot band itself — a bug in the caller,
// never a legitimate input.
var ErrPivotClipped = errors.New("bsp: attempted to clip a face inside the pivot band")

// ErrParallelEdge is returned when an edge expected to cross the
// clipping plane (by the sign classification that selected it) turns
// out to be numerically parallel to it. Should not happen given that
// classification; surfaced as an error rather than silently ignored.
var ErrParallelEdge = errors.New("bsp: edge/plane intersection unexpectedly parallel")

// window is the traversal state of the recursive builder: the
// half-open sub-range [L, R) currently being partitioned, with the
// already-placed coplanar band [PL, PR] in the middle.
type window struct {
	L, R, PL, PR int
}

func rotateCW(idx *[3]uint16, val *[3]geom.Vertex, dist *[3]float32) {
	i, v, d := *idx, *val, *dist
	idx[0], idx[1], idx[2] = i[2], i[0], i[1]
	val[0], val[1], val[2] = v[2], v[0], v[1]
	dist[0], dist[1], dist[2] = d[2], d[0], d[1]
}

func rotateCCW(idx *[3]uint16, val *[3]geom.Vertex, dist *[3]float32) {
	i, v, d := *idx, *val, *dist
	idx[0], idx[1], idx[2] = i[1], i[2], i[0]
	val[0], val[1], val[2] = v[1], v[2], v[0]
	dist[0], dist[1], dist[2] = d[1], d[2], d[0]
}

// clipFace splits the intersecting triangle at faceI against the plane
// at planes[clipperI] into 2 or 3 sub-triangles, replacing faceI in
// place with the sub-triangle that stays on its current side of the
// pivot band and inserting the rest either right after faceI or
// adjacent to the band. advance reports how many extra indices the
// caller's scan loop must skip, since new faces are inserted between
// the scan position and the next element. Returns clipped=false (no
// error) if faceI's signed distances to the plane show that it does not
// straddle it after all.
func clipFace(win *window, p *pools.Pools, faceI, clipperI int, clips *int) (advance int, clipped bool, err error) {
	if faceI >= p.NumFaces() || clipperI >= p.NumFaces() {
		return 0, false, fmt.Errorf("%w: face %d or clipper %d out of range", pools.ErrOutOfRange, faceI, clipperI)
	}
	if faceI >= win.PL && faceI <= win.PR {
		return 0, false, ErrPivotClipped
	}

	if err := p.VertDeclare(2); err != nil {
		return 0, false, fmt.Errorf("bsp: clip could not reserve vertex headroom: %w", err)
	}
	if err := p.FaceDeclare(2); err != nil {
		return 0, false, fmt.Errorf("bsp: clip could not reserve face headroom: %w", err)
	}

	clipper := p.Planes[clipperI]
	in := p.Faces[faceI]
	// Every sub-triangle this call produces is coplanar with faceI's own
	// original supporting plane. Capture it by value now: faceI's slot in
	// Planes shifts as soon as the first FaceInsert below moves array
	// elements, so a pointer re-taken at each call site would hand later
	// inserts whatever had slid into that slot instead of the plane they
	// actually belong to.
	origPlane := p.Planes[faceI]

	idx := [3]uint16{in.I[0], in.I[1], in.I[2]}
	val := [3]geom.Vertex{p.Verts[idx[0]], p.Verts[idx[1]], p.Verts[idx[2]]}
	dist := [3]float32{
		geom.DistanceToPlane(clipper, val[0]),
		geom.DistanceToPlane(clipper, val[1]),
		geom.DistanceToPlane(clipper, val[2]),
	}

	var two, leftLight bool

	switch {
	case dist[0] <= -geom.Eps: // v0 behind
		switch {
		case dist[1] <= -geom.Eps: // v0, v1 behind
			two = true
			if dist[2] < geom.Eps {
				return 0, false, nil // v2 behind or touching: whole face behind
			}
			rotateCW(&idx, &val, &dist) // v2 ahead -> bring to front
		case dist[1] >= geom.Eps: // v0 behind, v1 ahead
			switch {
			case dist[2] <= -geom.Eps: // v0,v2 behind, v1 ahead
				two = true
				rotateCCW(&idx, &val, &dist)
			case dist[2] >= geom.Eps: // v0 behind, v1,v2 ahead
				two = true
				leftLight = true
				// perfect ordering already
			default: // v0 behind, v1 ahead, v2 on plane
				rotateCW(&idx, &val, &dist)
				leftLight = true
			}
		default: // v0 behind, v1 on plane
			if dist[2] < geom.Eps {
				return 0, false, nil // v2 behind or touching: whole face behind
			}
			rotateCCW(&idx, &val, &dist) // v2 ahead
		}
	case dist[0] >= geom.Eps: // p < v0
		switch {
		case dist[1] >= geom.Eps: // v0, v1 ahead
			two = true
			if dist[2] > -geom.Eps {
				return 0, false, nil // v2 ahead or touching: whole face ahead
			}
			leftLight = true
			rotateCW(&idx, &val, &dist)
		case dist[1] <= -geom.Eps: // v1 behind, v0 ahead
			switch {
			case dist[2] <= -geom.Eps: // v1,v2 behind, v0 ahead
				two = true
				// perfect ordering already
			case dist[2] >= geom.Eps: // v1 behind, v0,v2 ahead
				two = true
				leftLight = true
				rotateCCW(&idx, &val, &dist)
			default: // v1 behind, v0 ahead, v2 on plane
				rotateCW(&idx, &val, &dist)
			}
		default: // v1 on plane, v0 ahead
			if dist[2] > -geom.Eps {
				return 0, false, nil // v2 ahead or touching: whole face ahead
			}
			leftLight = true
			rotateCCW(&idx, &val, &dist)
		}
	default: // v0 on plane
		switch {
		case dist[1] <= -geom.Eps: // v1 behind
			if dist[2] < geom.Eps {
				return 0, false, nil // v2 behind or touching: whole face behind
			}
			leftLight = true
		case dist[1] >= geom.Eps: // v1 ahead
			if dist[2] > -geom.Eps {
				return 0, false, nil // v2 ahead or touching: whole face ahead
			}
		default:
			return 0, false, nil // v1 also on plane: no real intersection
		}
	}

	vi := func(k int) uint16 { return idx[k] }

	if two {
		ev0p, ok := geom.RayPlaneIntersect(clipper, val[0], val[1])
		if !ok {
			return 0, false, ErrParallelEdge
		}
		ev1p, ok := geom.RayPlaneIntersect(clipper, val[0], val[2])
		if !ok {
			return 0, false, ErrParallelEdge
		}
		ev0, err := p.VertAdd(ev0p)
		if err != nil {
			return 0, false, fmt.Errorf("bsp: clip vertex allocation: %w", err)
		}
		ev1, err := p.VertAdd(ev1p)
		if err != nil {
			return 0, false, fmt.Errorf("bsp: clip vertex allocation: %w", err)
		}

		switch {
		case faceI > win.PR:
			if leftLight {
				p.Faces[faceI] = geom.Face{I: [3]uint16{ev0, vi(1), vi(2)}}
				if err := p.FaceInsert(geom.Face{I: [3]uint16{vi(2), ev1, ev0}}, &origPlane, uint16(faceI+1)); err != nil {
					return advance, false, err
				}
				*clips++
				win.R++
				advance++
				if err := p.FaceInsert(geom.Face{I: [3]uint16{vi(0), ev0, ev1}}, &origPlane, uint16(win.PL)); err != nil {
					return advance, false, err
				}
				*clips++
				win.PL++
				win.PR++
				win.R++
				advance++
			} else {
				p.Faces[faceI] = geom.Face{I: [3]uint16{vi(0), ev0, ev1}}
				if err := p.FaceInsert(geom.Face{I: [3]uint16{ev0, vi(1), vi(2)}}, &origPlane, uint16(win.PL)); err != nil {
					return advance, false, err
				}
				*clips++
				win.PL++
				win.PR++
				win.R++
				advance++
				if err := p.FaceInsert(geom.Face{I: [3]uint16{vi(2), ev1, ev0}}, &origPlane, uint16(win.PL)); err != nil {
					return advance, false, err
				}
				*clips++
				win.PL++
				win.PR++
				win.R++
				advance++
			}
		case faceI < win.PL:
			if leftLight {
				p.Faces[faceI] = geom.Face{I: [3]uint16{vi(0), ev0, ev1}}
				if err := p.FaceInsert(geom.Face{I: [3]uint16{ev0, vi(1), vi(2)}}, &origPlane, uint16(win.PR+1)); err != nil {
					return advance, false, err
				}
				*clips++
				win.R++
				if err := p.FaceInsert(geom.Face{I: [3]uint16{vi(2), ev1, ev0}}, &origPlane, uint16(win.PR+1)); err != nil {
					return advance, false, err
				}
				*clips++
				win.R++
			} else {
				p.Faces[faceI] = geom.Face{I: [3]uint16{ev0, vi(1), vi(2)}}
				if err := p.FaceInsert(geom.Face{I: [3]uint16{vi(0), ev0, ev1}}, &origPlane, uint16(win.PR+1)); err != nil {
					return advance, false, err
				}
				*clips++
				win.R++
				if err := p.FaceInsert(geom.Face{I: [3]uint16{vi(2), ev1, ev0}}, &origPlane, uint16(win.PL)); err != nil {
					return advance, false, err
				}
				*clips++
				win.R++
				win.PL++
				win.PR++
			}
		default:
			return 0, false, ErrPivotClipped
		}
	} else {
		evp, ok := geom.RayPlaneIntersect(clipper, val[1], val[2])
		if !ok {
			return 0, false, ErrParallelEdge
		}
		ev, err := p.VertAdd(evp)
		if err != nil {
			return 0, false, fmt.Errorf("bsp: clip vertex allocation: %w", err)
		}

		switch {
		case faceI > win.PR:
			var nf geom.Face
			if leftLight {
				p.Faces[faceI] = geom.Face{I: [3]uint16{vi(0), ev, vi(2)}}
				nf = geom.Face{I: [3]uint16{vi(0), vi(1), ev}}
			} else {
				p.Faces[faceI] = geom.Face{I: [3]uint16{vi(0), vi(1), ev}}
				nf = geom.Face{I: [3]uint16{vi(0), ev, vi(2)}}
			}
			if err := p.FaceInsert(nf, &origPlane, uint16(win.PL)); err != nil {
				return advance, false, err
			}
			*clips++
			win.PL++
			win.PR++
			win.R++
			advance++
		case faceI < win.PL:
			var nf geom.Face
			if leftLight {
				p.Faces[faceI] = geom.Face{I: [3]uint16{vi(0), vi(1), ev}}
				nf = geom.Face{I: [3]uint16{vi(0), ev, vi(2)}}
			} else {
				p.Faces[faceI] = geom.Face{I: [3]uint16{vi(0), ev, vi(2)}}
				nf = geom.Face{I: [3]uint16{vi(0), vi(1), ev}}
			}
			if err := p.FaceInsert(nf, &origPlane, uint16(win.PR+1)); err != nil {
				return advance, false, err
			}
			*clips++
			win.R++
		default:
			return 0, false, ErrPivotClipped
		}
	}

	return advance, true, nil
}
