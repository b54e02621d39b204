package phys

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Shape kind names recognized by NewShape options.
const (
	KindCircle  = "Circle"
	KindBox     = "Box"
	KindPolygon = "Polygon"
)

// MinBoxSize is the extent used for a Box when neither explicit dimensions
// nor a visual bound are available.
const MinBoxSize = 8.0

// Shape is pure geometry with no position or identity of its own. A Body
// places a Shape in the world; shapes are immutable after construction and
// shared by pointer, never copied per body.
type Shape interface {
	// BB returns the world-space bounding box of the shape placed at pos
	// with the given rotation in radians.
	BB(pos cp.Vector, angle float64) cp.BB
	// ContainsPoint reports whether p falls inside the shape placed at
	// pos with the given rotation.
	ContainsPoint(p, pos cp.Vector, angle float64) bool
}

type Circle struct {
	Radius float64
}

func (c *Circle) BB(pos cp.Vector, _ float64) cp.BB {
	return cp.NewBBForCircle(pos, c.Radius)
}

func (c *Circle) ContainsPoint(p, pos cp.Vector, _ float64) bool {
	return p.Near(pos, c.Radius)
}

type Box struct {
	Width  float64
	Height float64
}

func (b *Box) BB(pos cp.Vector, angle float64) cp.BB {
	return polyBB(b.worldVerts(pos, angle))
}

func (b *Box) ContainsPoint(p, pos cp.Vector, angle float64) bool {
	return pointInPolygon(p, b.worldVerts(pos, angle))
}

// worldVerts returns the box corners placed at pos/angle, counter-clockwise.
func (b *Box) worldVerts(pos cp.Vector, angle float64) []cp.Vector {
	hw, hh := b.Width/2, b.Height/2
	rot := cp.ForAngle(angle)
	local := [4]cp.Vector{{X: -hw, Y: -hh}, {X: hw, Y: -hh}, {X: hw, Y: hh}, {X: -hw, Y: hh}}
	verts := make([]cp.Vector, 4)
	for i, v := range local {
		verts[i] = v.Rotate(rot).Add(pos)
	}
	return verts
}

// Polygon is a simple (non-self-intersecting) polygon with a consistent
// winding. The vertex slice is owned by the shape; callers must not mutate
// it after construction. The SAT overlap path assumes convexity; concave
// polygons (tile extraction output) still work against circles and for
// containment/AABB queries.
type Polygon struct {
	Verts []cp.Vector
}

func (pg *Polygon) BB(pos cp.Vector, angle float64) cp.BB {
	return polyBB(pg.worldVerts(pos, angle))
}

func (pg *Polygon) ContainsPoint(p, pos cp.Vector, angle float64) bool {
	return pointInPolygon(p, pg.worldVerts(pos, angle))
}

func (pg *Polygon) worldVerts(pos cp.Vector, angle float64) []cp.Vector {
	rot := cp.ForAngle(angle)
	verts := make([]cp.Vector, len(pg.Verts))
	for i, v := range pg.Verts {
		verts[i] = v.Rotate(rot).Add(pos)
	}
	return verts
}

func polyBB(verts []cp.Vector) cp.BB {
	bb := cp.BB{L: verts[0].X, B: verts[0].Y, R: verts[0].X, T: verts[0].Y}
	for _, v := range verts[1:] {
		bb = bb.Expand(v)
	}
	return bb
}

// pointInPolygon is an even-odd ray cast along +x.
func pointInPolygon(p cp.Vector, verts []cp.Vector) bool {
	inside := false
	j := len(verts) - 1
	for i := 0; i < len(verts); i++ {
		a, b := verts[i], verts[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < a.X+(b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y) {
			inside = !inside
		}
		j = i
	}
	return inside
}

// ShapeOptions mirrors the recognized geometry fields of a physics
// component's configuration. Missing or invalid fields fall back to the
// documented defaults in NewShape rather than producing zero-size geometry.
type ShapeOptions struct {
	Kind   string
	Radius float64
	Width  float64
	Height float64
	Points []cp.Vector

	// VisualWidth/VisualHeight are the bounds of the owning object's
	// visual representation, used as fallback extents when explicit
	// dimensions are absent.
	VisualWidth  float64
	VisualHeight float64
}

// NewShape builds a Shape from options. Fallbacks, in order:
//
//	Circle:  Radius, else VisualWidth/2, else MinBoxSize/2.
//	Box:     Width, else VisualWidth, else MinBoxSize; an absent Height
//	         defaults to the resolved width (square).
//	Polygon: Points, else a MinBoxSize diamond.
//
// Negative or non-finite values are treated as absent. An unknown or empty
// Kind resolves to Box.
func NewShape(opts ShapeOptions) Shape {
	switch opts.Kind {
	case KindCircle:
		r := opts.Radius
		if !validExtent(r) {
			r = opts.VisualWidth / 2
		}
		if !validExtent(r) {
			r = MinBoxSize / 2
		}
		return &Circle{Radius: r}
	case KindPolygon:
		if len(opts.Points) >= 3 {
			verts := make([]cp.Vector, len(opts.Points))
			copy(verts, opts.Points)
			return &Polygon{Verts: verts}
		}
		h := MinBoxSize / 2
		return &Polygon{Verts: []cp.Vector{{X: 0, Y: -h}, {X: h, Y: 0}, {X: 0, Y: h}, {X: -h, Y: 0}}}
	default:
		w := opts.Width
		if !validExtent(w) {
			w = opts.VisualWidth
		}
		if !validExtent(w) {
			w = MinBoxSize
		}
		h := opts.Height
		if !validExtent(h) {
			h = opts.VisualHeight
		}
		if !validExtent(h) {
			h = w
		}
		return &Box{Width: w, Height: h}
	}
}

func validExtent(f float64) bool {
	return f > 0 && !math.IsInf(f, 1) && !math.IsNaN(f)
}
