package phys

import (
	"errors"
	"sort"

	"github.com/jakecoffman/cp"
)

var (
	// ErrBodyPresent is returned by AddBody for a body already registered
	// with a world. Double-adds are programming errors, not runtime states.
	ErrBodyPresent = errors.New("phys: body already in a world")
	// ErrBodyMissing is returned by RemoveBody for a body not registered
	// with this world.
	ErrBodyMissing = errors.New("phys: body not in this world")
)

// CollisionHandlerFunc receives a resolved contact between two bodies whose
// types matched the handler's registration. The normal points from a to b.
type CollisionHandlerFunc func(a, b *Body, contact Contact)

type handlerKey struct {
	a, b cp.CollisionType
}

// World owns the set of active bodies and the broad-phase index over them.
// All methods are single-threaded: Step is driven once per frame by the
// scene update loop and everything runs on the calling goroutine.
type World struct {
	// Gravity is added to every dynamic body's velocity each step.
	Gravity cp.Vector

	bodies   []*Body
	index    map[*Body]int
	grid     *spatialHash
	handlers map[handlerKey]CollisionHandlerFunc

	// Scratch buffers reused across steps.
	candidates []bodyPair
	seen       map[[2]uint64]struct{}

	// Body-set mutations requested from collision handlers mid-step are
	// deferred until the step completes.
	stepping      bool
	deferredAdds  []*Body
	deferredDrops []*Body

	nextID uint64
}

// NewWorld creates an empty world with the given broad-phase cell size.
// A non-positive cellSize falls back to DefaultCellSize.
func NewWorld(cellSize float64) *World {
	return &World{
		index:    make(map[*Body]int),
		grid:     newSpatialHash(cellSize),
		handlers: make(map[handlerKey]CollisionHandlerFunc),
		seen:     make(map[[2]uint64]struct{}),
	}
}

// OnCollision registers a handler for contacts between bodies of the two
// given types, in either order. Registering the same pair twice replaces
// the previous handler.
func (w *World) OnCollision(typeA, typeB cp.CollisionType, fn CollisionHandlerFunc) {
	w.handlers[handlerKey{a: typeA, b: typeB}] = fn
}

// AddBody registers body with the world and the broad-phase index. Called
// from a collision handler during Step, the add is applied after the step
// completes. Adding a body that already belongs to a world is an error.
func (w *World) AddBody(body *Body) error {
	if body.world != nil {
		return ErrBodyPresent
	}
	if w.stepping {
		body.world = w
		w.deferredAdds = append(w.deferredAdds, body)
		return nil
	}
	w.insert(body)
	return nil
}

// RemoveBody unregisters body from the world and the broad-phase index.
// Called from a collision handler during Step, the removal is applied after
// the step completes. Removing a body the world does not own is an error.
func (w *World) RemoveBody(body *Body) error {
	if body.world != w {
		return ErrBodyMissing
	}
	if w.stepping {
		w.deferredDrops = append(w.deferredDrops, body)
		return nil
	}
	w.drop(body)
	return nil
}

// Bodies returns the registered bodies in insertion order. The slice is
// owned by the world; callers must not mutate it.
func (w *World) Bodies() []*Body {
	return w.bodies
}

func (w *World) insert(body *Body) {
	w.nextID++
	body.id = w.nextID
	body.world = w
	w.index[body] = len(w.bodies)
	w.bodies = append(w.bodies, body)
	w.grid.insert(body)
}

func (w *World) drop(body *Body) {
	i, ok := w.index[body]
	if !ok {
		return
	}
	w.grid.remove(body)
	copy(w.bodies[i:], w.bodies[i+1:])
	w.bodies = w.bodies[:len(w.bodies)-1]
	for j := i; j < len(w.bodies); j++ {
		w.index[w.bodies[j]] = j
	}
	delete(w.index, body)
	body.world = nil
}

// Step advances the simulation by dt seconds: integrate velocities,
// rebuild the broad-phase index, gather candidate pairs, filter them, and
// resolve each surviving pair. Collision handlers fire synchronously from
// inside the step.
func (w *World) Step(dt float64) {
	if w == nil || dt <= 0 {
		return
	}
	w.stepping = true

	for _, b := range w.bodies {
		if b.Static {
			continue
		}
		b.Velocity = b.Velocity.Add(w.Gravity.Mult(dt))
		b.Position = b.Position.Add(b.Velocity.Mult(dt))
	}

	w.grid.rebuild(w.bodies)

	w.candidates = w.grid.pairs(w.candidates[:0], w.seen)
	sort.Slice(w.candidates, func(i, j int) bool {
		if w.candidates[i].a.id != w.candidates[j].a.id {
			return w.candidates[i].a.id < w.candidates[j].a.id
		}
		return w.candidates[i].b.id < w.candidates[j].b.id
	})

	for _, pair := range w.candidates {
		a, b := pair.a, pair.b
		if a.Static && b.Static {
			continue
		}
		if !canCollide(a, b) {
			continue
		}
		if !a.BB().Intersects(b.BB()) {
			continue
		}
		contact, ok := Overlap(a, b)
		if !ok {
			continue
		}
		resolve(a, b, contact)
		w.dispatch(a, b, contact)
	}

	w.stepping = false
	w.flushDeferred()
}

func (w *World) dispatch(a, b *Body, contact Contact) {
	if fn, ok := w.handlers[handlerKey{a: a.Type, b: b.Type}]; ok {
		fn(a, b, contact)
	} else if fn, ok := w.handlers[handlerKey{a: b.Type, b: a.Type}]; ok {
		fn(b, a, contact.flipped())
	}
	a.notify(b, contact)
	b.notify(a, contact.flipped())
}

func (w *World) flushDeferred() {
	for _, b := range w.deferredAdds {
		b.world = nil
		w.insert(b)
	}
	w.deferredAdds = w.deferredAdds[:0]
	for _, b := range w.deferredDrops {
		w.drop(b)
	}
	w.deferredDrops = w.deferredDrops[:0]
}
