package phys

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

func TestNewShapeFallbacks(t *testing.T) {
	cases := []struct {
		name  string
		opts  ShapeOptions
		check func(t *testing.T, s Shape)
	}{
		{
			name: "circle_explicit_radius",
			opts: ShapeOptions{Kind: KindCircle, Radius: 7},
			check: func(t *testing.T, s Shape) {
				c, ok := s.(*Circle)
				if !ok || c.Radius != 7 {
					t.Fatalf("expected circle radius 7, got %#v", s)
				}
			},
		},
		{
			name: "circle_falls_back_to_half_visual_width",
			opts: ShapeOptions{Kind: KindCircle, VisualWidth: 24},
			check: func(t *testing.T, s Shape) {
				c, ok := s.(*Circle)
				if !ok || c.Radius != 12 {
					t.Fatalf("expected circle radius 12, got %#v", s)
				}
			},
		},
		{
			name: "circle_negative_radius_not_zero_size",
			opts: ShapeOptions{Kind: KindCircle, Radius: -3},
			check: func(t *testing.T, s Shape) {
				c, ok := s.(*Circle)
				if !ok || c.Radius <= 0 {
					t.Fatalf("expected positive fallback radius, got %#v", s)
				}
			},
		},
		{
			name: "box_height_defaults_to_width",
			opts: ShapeOptions{Kind: KindBox, Width: 20},
			check: func(t *testing.T, s Shape) {
				b, ok := s.(*Box)
				if !ok || b.Width != 20 || b.Height != 20 {
					t.Fatalf("expected 20x20 box, got %#v", s)
				}
			},
		},
		{
			name: "box_no_geometry_uses_minimum",
			opts: ShapeOptions{Kind: KindBox},
			check: func(t *testing.T, s Shape) {
				b, ok := s.(*Box)
				if !ok || b.Width != MinBoxSize || b.Height != MinBoxSize {
					t.Fatalf("expected %vx%v box, got %#v", MinBoxSize, MinBoxSize, s)
				}
			},
		},
		{
			name: "box_nan_width_uses_visual",
			opts: ShapeOptions{Kind: KindBox, Width: math.NaN(), VisualWidth: 16, VisualHeight: 10},
			check: func(t *testing.T, s Shape) {
				b, ok := s.(*Box)
				if !ok || b.Width != 16 || b.Height != 10 {
					t.Fatalf("expected 16x10 box, got %#v", s)
				}
			},
		},
		{
			name: "polygon_default_diamond",
			opts: ShapeOptions{Kind: KindPolygon},
			check: func(t *testing.T, s Shape) {
				p, ok := s.(*Polygon)
				if !ok || len(p.Verts) != 4 {
					t.Fatalf("expected 4-vertex default polygon, got %#v", s)
				}
			},
		},
		{
			name: "polygon_too_few_points_falls_back",
			opts: ShapeOptions{Kind: KindPolygon, Points: []cp.Vector{{X: 0, Y: 0}, {X: 1, Y: 0}}},
			check: func(t *testing.T, s Shape) {
				p, ok := s.(*Polygon)
				if !ok || len(p.Verts) < 3 {
					t.Fatalf("expected fallback polygon with >=3 verts, got %#v", s)
				}
			},
		},
		{
			name: "unknown_kind_resolves_to_box",
			opts: ShapeOptions{Kind: "", Width: 5, Height: 6},
			check: func(t *testing.T, s Shape) {
				b, ok := s.(*Box)
				if !ok || b.Width != 5 || b.Height != 6 {
					t.Fatalf("expected 5x6 box, got %#v", s)
				}
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			c.check(t, NewShape(c.opts))
		})
	}
}

func TestShapeBB(t *testing.T) {
	circle := &Circle{Radius: 5}
	bb := circle.BB(cp.Vector{X: 10, Y: 20}, 0)
	if bb.L != 5 || bb.R != 15 || bb.B != 15 || bb.T != 25 {
		t.Fatalf("unexpected circle bb: %#v", bb)
	}

	box := &Box{Width: 10, Height: 4}
	bb = box.BB(cp.Vector{}, math.Pi/2)
	if math.Abs(bb.R-2) > 1e-9 || math.Abs(bb.T-5) > 1e-9 {
		t.Fatalf("rotated box bb should swap extents, got %#v", bb)
	}
}

func TestPolygonContainsPoint(t *testing.T) {
	square := &Polygon{Verts: []cp.Vector{{X: -5, Y: -5}, {X: 5, Y: -5}, {X: 5, Y: 5}, {X: -5, Y: 5}}}
	if !square.ContainsPoint(cp.Vector{X: 1, Y: 1}, cp.Vector{}, 0) {
		t.Fatalf("point inside square reported outside")
	}
	if square.ContainsPoint(cp.Vector{X: 6, Y: 0}, cp.Vector{}, 0) {
		t.Fatalf("point outside square reported inside")
	}
	if !square.ContainsPoint(cp.Vector{X: 11, Y: 1}, cp.Vector{X: 10, Y: 0}, 0) {
		t.Fatalf("translation not applied to containment")
	}
}
