package phys

import (
	"math/rand"
	"testing"

	"github.com/jakecoffman/cp"
)

// TestBroadPhaseCompleteness checks the no-false-negatives property: every
// pair of bodies with truly intersecting AABBs must appear in the candidate
// set, for several cell sizes relative to body size.
func TestBroadPhaseCompleteness(t *testing.T) {
	cellSizes := []float64{16, 64, 256}
	for _, cellSize := range cellSizes {
		rng := rand.New(rand.NewSource(42))
		bodies := make([]*Body, 0, 80)
		for i := 0; i < 80; i++ {
			var b *Body
			if i%2 == 0 {
				b = NewBody(&Circle{Radius: 2 + rng.Float64()*30})
			} else {
				b = NewBody(&Box{Width: 4 + rng.Float64()*60, Height: 4 + rng.Float64()*60})
			}
			b.Position = cp.Vector{X: rng.Float64()*800 - 400, Y: rng.Float64()*800 - 400}
			b.id = uint64(i + 1)
			bodies = append(bodies, b)
		}

		h := newSpatialHash(cellSize)
		h.rebuild(bodies)
		candidates := make(map[[2]uint64]struct{})
		for _, p := range h.pairs(nil, make(map[[2]uint64]struct{})) {
			candidates[[2]uint64{p.a.id, p.b.id}] = struct{}{}
		}

		truth := 0
		for i := 0; i < len(bodies); i++ {
			for j := i + 1; j < len(bodies); j++ {
				if !bodies[i].BB().Intersects(bodies[j].BB()) {
					continue
				}
				truth++
				key := [2]uint64{bodies[i].id, bodies[j].id}
				if _, ok := candidates[key]; !ok {
					t.Fatalf("cellSize %v: pair (%d,%d) with intersecting AABBs missing from candidates", cellSize, key[0], key[1])
				}
			}
		}
		if truth == 0 {
			t.Fatalf("cellSize %v: degenerate test, no intersecting pairs generated", cellSize)
		}
	}
}

func TestSpatialHashPairsDeduplicated(t *testing.T) {
	// A large body spans many cells next to another large body; the shared
	// pair must be reported once.
	a := NewBody(&Box{Width: 300, Height: 300})
	a.id = 1
	b := NewBody(&Box{Width: 300, Height: 300})
	b.Position = cp.Vector{X: 100, Y: 100}
	b.id = 2

	h := newSpatialHash(32)
	h.rebuild([]*Body{a, b})
	pairs := h.pairs(nil, make(map[[2]uint64]struct{}))
	if len(pairs) != 1 {
		t.Fatalf("expected 1 deduplicated pair, got %d", len(pairs))
	}
}

func TestSpatialHashRemove(t *testing.T) {
	a := NewBody(&Circle{Radius: 10})
	a.id = 1
	b := NewBody(&Circle{Radius: 10})
	b.Position = cp.Vector{X: 5, Y: 0}
	b.id = 2

	h := newSpatialHash(64)
	h.insert(a)
	h.insert(b)
	h.remove(a)
	pairs := h.pairs(nil, make(map[[2]uint64]struct{}))
	if len(pairs) != 0 {
		t.Fatalf("expected no pairs after removal, got %d", len(pairs))
	}
}
