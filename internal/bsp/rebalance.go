package bsp

import "github.com/callykitten99/BSP/internal/pools"

// The four in-place moves below all swap the same positions in Faces
// and Planes in lockstep, preserving the partition invariant
//
//	[ l ... pl .. pr ... r )
//	  left    pivot   right
//
// Indices are plain ints here (rather than the original's unsigned
// short) so that the pl-1/pr+1 neighbour arithmetic below can't wrap
// around; every index is still within the 16-bit face-pool cap by
// construction, since the pool itself never exceeds pools.MaxEntries
// entries.

// moveRightSimple rotates the triangle at elem (elem < pivot) past a
// single-element pivot to the right: elem's triangle takes the pivot's
// slot, the pivot's left neighbour takes elem's old slot, and the pivot
// ends up in the neighbour's old slot. When elem == pivot-1 this is a
// direct swap.
func moveRightSimple(p *pools.Pools, pivot, elem int) {
	fSwap := p.Faces[pivot]
	pSwap := p.Planes[pivot]

	p.Faces[pivot] = p.Faces[elem]
	p.Planes[pivot] = p.Planes[elem]

	if pivot-1 != elem {
		p.Faces[elem] = p.Faces[pivot-1]
		p.Planes[elem] = p.Planes[pivot-1]

		p.Faces[pivot-1] = fSwap
		p.Planes[pivot-1] = pSwap
	} else {
		p.Faces[elem] = fSwap
		p.Planes[elem] = pSwap
	}
}

// moveLeftSimple is the mirror of moveRightSimple for elem > pivot.
func moveLeftSimple(p *pools.Pools, pivot, elem int) {
	fSwap := p.Faces[pivot]
	pSwap := p.Planes[pivot]

	p.Faces[pivot] = p.Faces[elem]
	p.Planes[pivot] = p.Planes[elem]

	if pivot+1 != elem {
		p.Faces[elem] = p.Faces[pivot+1]
		p.Planes[elem] = p.Planes[pivot+1]

		p.Faces[pivot+1] = fSwap
		p.Planes[pivot+1] = pSwap
	} else {
		p.Faces[elem] = fSwap
		p.Planes[elem] = pSwap
	}
}

// moveLeft moves elem (elem > pivotR) to the left side of the band,
// sliding the whole [pivotL, pivotR] band right by one. Callers must
// adjust pivotL and pivotR by +1 afterward (the band shifts toward
// elem's original side). Delegates to moveLeftSimple for a
// single-element band.
func moveLeft(p *pools.Pools, pivotL, pivotR, elem int) {
	if pivotL == pivotR {
		moveLeftSimple(p, pivotL, elem)
		return
	}
	if pivotL > pivotR {
		pivotL, pivotR = pivotR, pivotL
	}

	fSwap := p.Faces[pivotR+1]
	pSwap := p.Planes[pivotR+1]

	copy(p.Faces[pivotL+1:pivotR+2], p.Faces[pivotL:pivotR+1])
	copy(p.Planes[pivotL+1:pivotR+2], p.Planes[pivotL:pivotR+1])

	if pivotR+1 != elem {
		p.Faces[pivotL] = p.Faces[elem]
		p.Planes[pivotL] = p.Planes[elem]

		p.Faces[elem] = fSwap
		p.Planes[elem] = pSwap
	} else {
		p.Faces[pivotL] = fSwap
		p.Planes[pivotL] = pSwap
	}
}

// moveRight moves elem (elem < pivotL) to the right side of the band,
// sliding the whole [pivotL, pivotR] band left by one. Callers must
// adjust pivotL and pivotR by -1 afterward. Delegates to
// moveRightSimple for a single-element band.
func moveRight(p *pools.Pools, pivotL, pivotR, elem int) {
	if pivotL == pivotR {
		moveRightSimple(p, pivotL, elem)
		return
	}
	if pivotL > pivotR {
		pivotL, pivotR = pivotR, pivotL
	}

	fSwap := p.Faces[pivotL-1]
	pSwap := p.Planes[pivotL-1]

	copy(p.Faces[pivotL-1:pivotR], p.Faces[pivotL:pivotR+1])
	copy(p.Planes[pivotL-1:pivotR], p.Planes[pivotL:pivotR+1])

	if pivotL-1 != elem {
		p.Faces[pivotR] = p.Faces[elem]
		p.Planes[pivotR] = p.Planes[elem]

		p.Faces[elem] = fSwap
		p.Planes[elem] = pSwap
	} else {
		p.Faces[pivotR] = fSwap
		p.Planes[pivotR] = pSwap
	}
}

// moveCoincident folds elem into the pivot band [pivotL, pivotR]. For
// elem below pivotL the band slides left by one and elem fills the
// vacated slot at pivotR (caller decrements pivotL); for elem above
// pivotR, elem is swapped into pivotR+1 (caller increments pivotR).
func moveCoincident(p *pools.Pools, pivotL, pivotR, elem int) {
	if pivotL > pivotR {
		pivotL, pivotR = pivotR, pivotL
	}

	switch {
	case elem < pivotL:
		fSwap := p.Faces[pivotL-1]
		pSwap := p.Planes[pivotL-1]

		copy(p.Faces[pivotL-1:pivotR], p.Faces[pivotL:pivotR+1])
		copy(p.Planes[pivotL-1:pivotR], p.Planes[pivotL:pivotR+1])

		if elem == pivotL-1 {
			p.Faces[pivotR] = fSwap
			p.Planes[pivotR] = pSwap
		} else {
			p.Faces[pivotR] = p.Faces[elem]
			p.Planes[pivotR] = p.Planes[elem]

			p.Faces[elem] = fSwap
			p.Planes[elem] = pSwap
		}

	case elem > pivotR:
		if elem == pivotR+1 {
			return
		}

		fSwap := p.Faces[pivotR+1]
		pSwap := p.Planes[pivotR+1]

		p.Faces[pivotR+1] = p.Faces[elem]
		p.Planes[pivotR+1] = p.Planes[elem]

		p.Faces[elem] = fSwap
		p.Planes[elem] = pSwap

	default:
		// elem already inside the band: nothing to do.
	}
}
