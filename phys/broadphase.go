package phys

import (
	"math"

	"github.com/jakecoffman/cp"
)

// DefaultCellSize is the spatial hash cell size used when a World is built
// without an explicit one. It should be on the order of the largest common
// shape extent; too small and large bodies span many cells, too large and
// the hash degenerates toward all-pairs.
const DefaultCellSize = 64.0

type cellKey struct {
	x, y int32
}

type bodyPair struct {
	a, b *Body
}

// spatialHash is the broad phase: a uniform grid over body AABBs keyed by
// cell coordinate. A body is inserted into every cell its AABB touches, so
// any two bodies with truly overlapping AABBs share at least one cell —
// the candidate set has no false negatives. False positives (shared cell,
// disjoint AABBs) are filtered by the caller.
type spatialHash struct {
	cellSize float64
	cells    map[cellKey][]*Body
}

func newSpatialHash(cellSize float64) *spatialHash {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &spatialHash{
		cellSize: cellSize,
		cells:    make(map[cellKey][]*Body),
	}
}

func (h *spatialHash) cellRange(bb cp.BB) (x0, y0, x1, y1 int32) {
	x0 = int32(math.Floor(bb.L / h.cellSize))
	y0 = int32(math.Floor(bb.B / h.cellSize))
	x1 = int32(math.Floor(bb.R / h.cellSize))
	y1 = int32(math.Floor(bb.T / h.cellSize))
	return x0, y0, x1, y1
}

func (h *spatialHash) insert(b *Body) {
	x0, y0, x1, y1 := h.cellRange(b.BB())
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			key := cellKey{x, y}
			h.cells[key] = append(h.cells[key], b)
		}
	}
}

func (h *spatialHash) remove(b *Body) {
	x0, y0, x1, y1 := h.cellRange(b.BB())
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			key := cellKey{x, y}
			bodies := h.cells[key]
			for i, other := range bodies {
				if other == b {
					h.cells[key] = append(bodies[:i], bodies[i+1:]...)
					break
				}
			}
			if len(h.cells[key]) == 0 {
				delete(h.cells, key)
			}
		}
	}
}

// rebuild re-indexes all bodies from scratch. Cheaper than incremental
// updates when most bodies move every step.
func (h *spatialHash) rebuild(bodies []*Body) {
	clear(h.cells)
	for _, b := range bodies {
		h.insert(b)
	}
}

// pairs appends every unordered candidate pair sharing at least one cell,
// deduplicated across cells, to dst and returns it. Output order follows
// map iteration and is not stable; the caller sorts before resolving.
func (h *spatialHash) pairs(dst []bodyPair, seen map[[2]uint64]struct{}) []bodyPair {
	clear(seen)
	for _, bodies := range h.cells {
		for i := 0; i < len(bodies); i++ {
			for j := i + 1; j < len(bodies); j++ {
				a, b := bodies[i], bodies[j]
				if a.id > b.id {
					a, b = b, a
				}
				key := [2]uint64{a.id, b.id}
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				dst = append(dst, bodyPair{a: a, b: b})
			}
		}
	}
	return dst
}
