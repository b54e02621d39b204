package phys

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/phys2d/common"
)

// Contact describes a single resolved overlap between two bodies. Normal
// points from the first body toward the second and has unit length; Depth
// is the penetration along that normal.
type Contact struct {
	Normal cp.Vector
	Depth  float64
	Point  cp.Vector
}

// flipped returns the same contact seen from the other body.
func (c Contact) flipped() Contact {
	c.Normal = c.Normal.Neg()
	return c
}

// Overlap runs the exact narrow-phase test for a pair of bodies. The
// returned contact normal points from a toward b. It never fails on
// degenerate input: coincident circle centers resolve to a fixed +x normal.
func Overlap(a, b *Body) (Contact, bool) {
	switch sa := a.shape.(type) {
	case *Circle:
		switch sb := b.shape.(type) {
		case *Circle:
			return circleCircle(a.Position, sa.Radius, b.Position, sb.Radius)
		default:
			return circlePoly(a.Position, sa.Radius, bodyVerts(b))
		}
	default:
		switch sb := b.shape.(type) {
		case *Circle:
			c, ok := circlePoly(b.Position, sb.Radius, bodyVerts(a))
			return c.flipped(), ok
		default:
			return polyPoly(bodyVerts(a), bodyVerts(b))
		}
	}
}

// bodyVerts returns the world-space vertices of a body's box or polygon shape.
func bodyVerts(b *Body) []cp.Vector {
	switch s := b.shape.(type) {
	case *Box:
		return s.worldVerts(b.Position, b.Angle)
	case *Polygon:
		return s.worldVerts(b.Position, b.Angle)
	}
	return nil
}

func circleCircle(pa cp.Vector, ra float64, pb cp.Vector, rb float64) (Contact, bool) {
	delta := pb.Sub(pa)
	dist := delta.Length()
	if dist >= ra+rb {
		return Contact{}, false
	}
	normal := cp.Vector{X: 1, Y: 0}
	if dist > 1e-12 {
		normal = delta.Mult(1 / dist)
	}
	depth := ra + rb - dist
	return Contact{
		Normal: normal,
		Depth:  depth,
		Point:  pa.Add(normal.Mult(ra - depth/2)),
	}, true
}

// circlePoly tests a circle against a polygon's world vertices. The normal
// points from the circle toward the polygon. When the center lies outside
// the polygon the test is against the closest boundary point; when it lies
// inside, the axis of minimum penetration across the polygon's edges is
// used instead.
func circlePoly(center cp.Vector, radius float64, verts []cp.Vector) (Contact, bool) {
	if len(verts) < 2 {
		return Contact{}, false
	}

	closest := verts[0]
	closestDistSq := math.Inf(1)
	for i := 0; i < len(verts); i++ {
		a := verts[i]
		b := verts[(i+1)%len(verts)]
		p := closestOnSegment(center, a, b)
		if d := p.DistanceSq(center); d < closestDistSq {
			closestDistSq = d
			closest = p
		}
	}

	if !pointInPolygon(center, verts) {
		dist := math.Sqrt(closestDistSq)
		if dist >= radius {
			return Contact{}, false
		}
		normal := cp.Vector{X: 1, Y: 0}
		if dist > 1e-12 {
			normal = closest.Sub(center).Mult(1 / dist)
		}
		return Contact{Normal: normal, Depth: radius - dist, Point: closest}, true
	}

	// Center inside: penetration is the distance out through the nearest
	// edge plus the radius, directed from the circle into the polygon.
	dist := math.Sqrt(closestDistSq)
	normal := center.Sub(closest)
	if normal.LengthSq() > 1e-24 {
		normal = normal.Normalize()
	} else {
		normal = cp.Vector{X: 1, Y: 0}
	}
	return Contact{Normal: normal, Depth: radius + dist, Point: closest}, true
}

// polyPoly is the separating axis test for two convex polygons given in
// world space. Every edge normal of both polygons is a candidate axis; a
// gap on any axis means no collision, otherwise the axis of minimum overlap
// is the resolution axis.
func polyPoly(va, vb []cp.Vector) (Contact, bool) {
	if len(va) < 3 || len(vb) < 3 {
		return Contact{}, false
	}

	best := math.Inf(1)
	var bestAxis cp.Vector
	for _, verts := range [2][]cp.Vector{va, vb} {
		for i := 0; i < len(verts); i++ {
			edge := verts[(i+1)%len(verts)].Sub(verts[i])
			if edge.LengthSq() < 1e-24 {
				continue
			}
			axis := edge.Perp().Normalize()
			minA, maxA := project(va, axis)
			minB, maxB := project(vb, axis)
			overlap := math.Min(maxA, maxB) - math.Max(minA, minB)
			if overlap <= 0 {
				return Contact{}, false
			}
			if overlap < best {
				best = overlap
				bestAxis = axis
			}
		}
	}

	// Orient the axis from A toward B.
	if centroid(vb).Sub(centroid(va)).Dot(bestAxis) < 0 {
		bestAxis = bestAxis.Neg()
	}

	// Representative contact point: the vertex of B deepest against the
	// normal (sufficient for positional correction and notifications).
	point := vb[0]
	minProj := math.Inf(1)
	for _, v := range vb {
		if p := v.Dot(bestAxis); p < minProj {
			minProj = p
			point = v
		}
	}

	return Contact{Normal: bestAxis, Depth: best, Point: point}, true
}

func project(verts []cp.Vector, axis cp.Vector) (min, max float64) {
	min = verts[0].Dot(axis)
	max = min
	for _, v := range verts[1:] {
		p := v.Dot(axis)
		if p < min {
			min = p
		}
		if p > max {
			max = p
		}
	}
	return min, max
}

func centroid(verts []cp.Vector) cp.Vector {
	var sum cp.Vector
	for _, v := range verts {
		sum = sum.Add(v)
	}
	return sum.Mult(1 / float64(len(verts)))
}

func closestOnSegment(p, a, b cp.Vector) cp.Vector {
	ab := b.Sub(a)
	lenSq := ab.LengthSq()
	if lenSq < 1e-24 {
		return a
	}
	t := common.Clamp(p.Sub(a).Dot(ab)/lenSq, 0, 1)
	return a.Add(ab.Mult(t))
}
