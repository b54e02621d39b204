package phys

import "github.com/jakecoffman/cp"

// CollisionListener is implemented by body owners that want contact
// notifications. The contact normal points from the receiving body toward
// other.
type CollisionListener interface {
	OnCollision(self, other *Body, contact Contact)
}

// Body is a positioned, oriented physical entity wrapping one Shape.
// Position and Angle are authoritative for physics; the owner mirrors them
// onto any visual representation, never the other way around.
type Body struct {
	Position cp.Vector
	Angle    float64 // radians
	Velocity cp.Vector

	// Static bodies never move and absorb no positional correction.
	Static bool

	// Mass is ignored for static bodies (treated as infinite). Zero or
	// negative reads as 1.
	Mass float64

	// Restitution is the bounciness applied to velocity response; the
	// larger of the two bodies' values is used per contact. Zero means
	// fully inelastic.
	Restitution float64

	// Category is a bitmask of this body's collision category; zero reads
	// as 1. Mask is a bitmask of categories this body collides with; zero
	// reads as all bits set. Filtering is symmetric: a pair is tested only
	// when each body's mask matches the other's category.
	Category uint32
	Mask     uint32

	// Type groups bodies for World.OnCollision handlers.
	Type cp.CollisionType

	// Owner is a non-owning back-reference to the game object this body
	// belongs to. If it implements CollisionListener it receives contact
	// notifications.
	Owner any

	shape Shape
	world *World
	id    uint64
}

// NewBody creates a dynamic body around shape.
func NewBody(shape Shape) *Body {
	return &Body{shape: shape}
}

// NewStaticBody creates an immovable body around shape.
func NewStaticBody(shape Shape) *Body {
	return &Body{shape: shape, Static: true}
}

// Shape returns the body's geometry.
func (b *Body) Shape() Shape {
	return b.shape
}

// BB returns the body's current world-space bounding box.
func (b *Body) BB() cp.BB {
	return b.shape.BB(b.Position, b.Angle)
}

// ContainsPoint reports whether p falls inside the body's shape at its
// current position and rotation.
func (b *Body) ContainsPoint(p cp.Vector) bool {
	return b.shape.ContainsPoint(p, b.Position, b.Angle)
}

// World returns the world the body is currently registered with, or nil.
func (b *Body) World() *World {
	return b.world
}

func (b *Body) invMass() float64 {
	if b.Static {
		return 0
	}
	if b.Mass > 0 {
		return 1 / b.Mass
	}
	return 1
}

func (b *Body) category() uint32 {
	if b.Category == 0 {
		return 1
	}
	return b.Category
}

func (b *Body) mask() uint32 {
	if b.Mask == 0 {
		return ^uint32(0)
	}
	return b.Mask
}

// canCollide is the symmetric category/mask filter.
func canCollide(a, b *Body) bool {
	return a.mask()&b.category() != 0 && b.mask()&a.category() != 0
}

func (b *Body) notify(other *Body, contact Contact) {
	if l, ok := b.Owner.(CollisionListener); ok {
		l.OnCollision(b, other, contact)
	}
}
