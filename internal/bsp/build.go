package bsp

import (
	"fmt"

	"github.com/callykitten99/BSP/internal/geom"
	"github.com/callykitten99/BSP/internal/pools"
)

// Builder drives the recursive partition that turns a flat triangle
// pool into a BSP tree, accumulating the same three counters the
// original tool reports: how many in-place swaps the rebalancer
// performed, how deep the recursion went, and how many new polygons
// clipping introduced.
type Builder struct {
	Pools *pools.Pools
	Tree  *Store

	Swaps  int
	RDepth int
	Clips  int

	// MaxDepth aborts the build if recursion would exceed it, guarding
	// against runaway recursion on degenerate or cyclic input. Zero means
	// unbounded.
	MaxDepth int
}

// NewBuilder wraps an already-populated, plane-annotated pool.
func NewBuilder(p *pools.Pools) *Builder {
	return &Builder{Pools: p, Tree: NewStore()}
}

// partition rearranges faces[win.L:win.R) around the single pivot face
// already recorded in win.PL (== win.PR on entry) so that everything
// left of the (possibly now-wider) coplanar band classifies LEFT of the
// pivot's plane and everything right classifies RIGHT, folding coplanar
// faces into the band and clipping any face that straddles the plane
// into pieces that land cleanly on one side. Returns the allocated
// node's id.
func (b *Builder) partition(win *window) (uint16, error) {
	p := b.Pools

	for i := win.L; i < win.PL; i++ {
		rel := Classify(p.Planes[win.PL], p.Faces[i], p.Verts)
		switch rel {
		case geom.RelLeft:
			// already on the correct side

		case geom.RelRight:
			moveRight(p, win.PL, win.PR, i)
			b.Swaps++
			win.PL--
			win.PR--
			i--

		case geom.RelIntersect:
			advance, clipped, err := clipFace(win, p, i, win.PL, &b.Clips)
			if err != nil {
				return NoIndex, fmt.Errorf("bsp: partition clip at face %d: %w", i, err)
			}
			if clipped {
				i += advance
			}

		case geom.RelCoincide:
			moveCoincident(p, win.PL, win.PR, i)
			b.Swaps++
			win.PL--
			i--
		}
	}

	for i := win.PR + 1; i < win.R; i++ {
		rel := Classify(p.Planes[win.PL], p.Faces[i], p.Verts)
		switch rel {
		case geom.RelLeft:
			moveLeft(p, win.PL, win.PR, i)
			b.Swaps++
			win.PL++
			win.PR++
			if win.PR+1 < i {
				i--
			}

		case geom.RelRight:
			// already on the correct side

		case geom.RelIntersect:
			advance, clipped, err := clipFace(win, p, i, win.PL, &b.Clips)
			if err != nil {
				return NoIndex, fmt.Errorf("bsp: partition clip at face %d: %w", i, err)
			}
			if clipped {
				i += advance
			}

		case geom.RelCoincide:
			moveCoincident(p, win.PL, win.PR, i)
			b.Swaps++
			win.PR++
			if win.PR+1 < i {
				i--
			}
		}
	}

	return b.Tree.New(uint16(win.PL), uint16(win.PR))
}

// iter picks the best pivot in [win.L, win.R), partitions around it,
// allocates the node, and recurses into both halves, writing the final
// window back through win before returning.
//
// Clipping performed anywhere within a subtree can insert faces,
// growing the index range that subtree occupies. Since faces to the
// right of a subtree shift up whenever it grows, that growth must be
// measured from the recursive call's own, possibly-widened window (not
// the range handed to it) and folded into the parent's window before
// the sibling half is processed; growth in the left half also moves the
// node's stored band. win is therefore passed by pointer and
// each recursive call mutates its own argument in place, mirroring the
// original C implementation's in/out clip_pivot parameter.
func (b *Builder) iter(win *window, depth int) (uint16, error) {
	if win.L >= win.R {
		return NoIndex, nil
	}
	if depth > b.RDepth {
		b.RDepth = depth
	}
	if b.MaxDepth > 0 && depth > b.MaxDepth {
		return NoIndex, fmt.Errorf("bsp: recursion depth exceeded %d", b.MaxDepth)
	}

	p := b.Pools
	cp := *win

	best := cp.L
	bestInts, bestBal := scoreRange(p, cp.L, cp.L, cp.R)
	bestScore := pivotScore(bestInts, bestBal)

	for i := cp.L + 1; i < cp.R; i++ {
		ints, bal := scoreRange(p, cp.L, i, cp.R)
		score := pivotScore(ints, bal)
		if score < bestScore || (score == bestScore && ints < bestInts) {
			best = i
			bestInts = ints
			bestBal = bal
			bestScore = score
			if bestBal == 0 && bestInts == 0 {
				break
			}
		}
	}

	// Re-tag Rel for the winning candidate: the scan above overwrote the
	// tags with whichever candidate it tried last.
	scoreRange(p, cp.L, best, cp.R)

	cp.PL, cp.PR = best, best
	id, err := b.partition(&cp)
	if err != nil {
		return NoIndex, err
	}

	left := window{L: cp.L, R: cp.PL}
	leftID, err := b.iter(&left, depth+1)
	if err != nil {
		return NoIndex, err
	}
	b.Tree.InsertLeft(id, leftID)

	grow := left.R - cp.PL
	cp.PL += grow
	cp.PR += grow
	cp.R += grow
	if grow > 0 {
		b.Tree.Nodes[id].PL = uint16(cp.PL)
		b.Tree.Nodes[id].PR = uint16(cp.PR)
	}

	right := window{L: cp.PR + 1, R: cp.R}
	rightID, err := b.iter(&right, depth+1)
	if err != nil {
		return NoIndex, err
	}
	b.Tree.InsertRight(id, rightID)

	// Faces inserted by the right subtree land after the band, so only R moves.
	grow = right.R - cp.R
	cp.R += grow

	*win = cp
	return id, nil
}

// Stats summarizes one Begin() run for console diagnostics.
type Stats struct {
	Swaps, RDepth, Clips int
	Root                 uint16
}

// Begin resets the builder's counters and constructs the whole tree
// over the entire face pool, returning its root node id and the run's
// stats.
func (b *Builder) Begin() (Stats, error) {
	p := b.Pools
	if p == nil || len(p.Verts) == 0 || len(p.Faces) == 0 {
		return Stats{}, fmt.Errorf("bsp: cannot build over an empty pool")
	}

	b.Swaps = 0
	b.RDepth = 0
	b.Clips = 0
	b.Tree = NewStore()

	root, err := b.iter(&window{L: 0, R: p.NumFaces()}, 1)
	if err != nil {
		return Stats{}, err
	}

	return Stats{Swaps: b.Swaps, RDepth: b.RDepth, Clips: b.Clips, Root: root}, nil
}
