package bsp

import (
	"fmt"

	"github.com/callykitten99/BSP/internal/geom"
	"github.com/callykitten99/BSP/internal/pools"
)

// Violation describes one broken invariant found by Verify, numbered
// to match spec §8's enumeration (1-7). The round-trip property is not
// checked by Verify; RoundTrip returns the traversal for callers to
// compare.
type Violation struct {
	Invariant int
	Detail    string
}

func (v Violation) Error() string {
	return fmt.Sprintf("invariant %d: %s", v.Invariant, v.Detail)
}

// Verify walks the finished pool and tree checking every invariant
// from spec §8. It returns every violation found rather than stopping
// at the first, since a --verify run should report everything wrong
// with a build in one pass.
func Verify(p *pools.Pools, s *Store, root uint16, reportedClips, initialFaces, initialVerts int) []Violation {
	var out []Violation

	if len(p.Faces) != len(p.Planes) {
		out = append(out, Violation{1, fmt.Sprintf("%d faces but %d planes", len(p.Faces), len(p.Planes))})
	} else {
		for i, f := range p.Faces {
			pl, ok := geom.PlaneFromFace(p.Verts, f)
			if !ok {
				continue // degenerate faces should already be gone; MakePlanes would have dropped it
			}
			if !planesClose(pl, p.Planes[i]) {
				out = append(out, Violation{1, fmt.Sprintf("face %d's cached plane diverges from its geometry", i)})
			}
		}
	}

	visited := make(map[uint16]bool)
	var walk func(id uint16, parent uint16)
	walk = func(id uint16, parent uint16) {
		if id == NoIndex {
			return
		}
		if int(id) >= len(s.Nodes) {
			out = append(out, Violation{6, fmt.Sprintf("node %d out of range", id)})
			return
		}
		if visited[id] {
			out = append(out, Violation{6, fmt.Sprintf("node %d revisited: cycle in tree", id)})
			return
		}
		visited[id] = true

		n := s.Nodes[id]
		if n.Parent != parent {
			out = append(out, Violation{6, fmt.Sprintf("node %d has parent %d, expected %d", id, n.Parent, parent)})
		}

		if int(n.PL) >= len(p.Faces) || int(n.PR) >= len(p.Faces) || n.PL > n.PR {
			out = append(out, Violation{2, fmt.Sprintf("node %d has invalid band [%d,%d]", id, n.PL, n.PR)})
			return
		}

		plane := p.Planes[n.PL]
		for i := n.PL; i <= n.PR; i++ {
			if Classify(plane, p.Faces[i], p.Verts) != geom.RelCoincide {
				out = append(out, Violation{2, fmt.Sprintf("node %d band face %d is not coincident with its own plane", id, i)})
			}
		}

		checkSide := func(childID uint16, wantNonPositive bool) {
			if childID == NoIndex {
				return
			}
			faces := collectSubtreeFaces(s, p, childID)
			for _, i := range faces {
				rel := Classify(plane, p.Faces[i], p.Verts)
				switch rel {
				case geom.RelIntersect:
					out = append(out, Violation{3, fmt.Sprintf("face %d under node %d straddles the parent plane", i, id)})
				case geom.RelRight:
					if wantNonPositive {
						out = append(out, Violation{3, fmt.Sprintf("face %d under left child of node %d is on the positive side", i, id)})
					}
				case geom.RelLeft:
					if !wantNonPositive {
						out = append(out, Violation{3, fmt.Sprintf("face %d under right child of node %d is on the negative side", i, id)})
					}
				}
			}
		}
		checkSide(n.Left, true)
		checkSide(n.Right, false)

		walk(n.Left, id)
		walk(n.Right, id)
	}
	walk(root, NoIndex)

	if root != NoIndex && int(root) < len(s.Nodes) {
		for id := range s.Nodes {
			if !visited[uint16(id)] {
				out = append(out, Violation{6, fmt.Sprintf("node %d is not reachable from the root", id)})
			}
		}
	}

	if len(p.Faces) < initialFaces {
		out = append(out, Violation{4, fmt.Sprintf("face count shrank from %d to %d", initialFaces, len(p.Faces))})
	} else if len(p.Faces)-initialFaces != reportedClips {
		out = append(out, Violation{4, fmt.Sprintf("face growth %d does not match reported clips %d", len(p.Faces)-initialFaces, reportedClips)})
	}

	// Invariant 5: vertex count only grows. No code path in this package
	// reorders or deletes Verts entries once VertAdd has appended them -
	// clipping only ever appends new intersection vertices - so a count
	// check is sufficient to catch a regression that violated that.
	if len(p.Verts) < initialVerts {
		out = append(out, Violation{5, fmt.Sprintf("vertex count shrank from %d to %d", initialVerts, len(p.Verts))})
	}

	if len(p.Faces) > pools.MaxEntries || len(p.Verts) > pools.MaxEntries || len(s.Nodes) > pools.MaxEntries {
		out = append(out, Violation{7, "an arena exceeded the 65535-entry cap"})
	}

	return out
}

// collectSubtreeFaces returns every face index covered by the subtree
// rooted at id, in left-band-right order (the same order RoundTrip
// uses), for invariant checks that need to inspect every face a
// subtree owns.
func collectSubtreeFaces(s *Store, p *pools.Pools, id uint16) []int {
	if id == NoIndex || int(id) >= len(s.Nodes) {
		return nil
	}
	n := s.Nodes[id]
	var out []int
	out = append(out, collectSubtreeFaces(s, p, n.Left)...)
	for i := int(n.PL); i <= int(n.PR); i++ {
		out = append(out, i)
	}
	out = append(out, collectSubtreeFaces(s, p, n.Right)...)
	return out
}

// RoundTrip returns the face indices in the order an in-order
// (left, band, right) traversal of the tree visits them: spec §8
// requires this to reproduce the final post-clip face pool exactly,
// in face-index order (which, by the pool's own shifting invariant,
// is already index-contiguous per band).
func RoundTrip(s *Store, p *pools.Pools, root uint16) []int {
	return collectSubtreeFaces(s, p, root)
}

func planesClose(a, b geom.Plane) bool {
	const tol = 1e-3
	return absf(a.M.X-b.M.X) < tol && absf(a.M.Y-b.M.Y) < tol &&
		absf(a.M.Z-b.M.Z) < tol && absf(a.D-b.D) < tol
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
