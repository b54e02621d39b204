package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/phys2d/phys"
	"github.com/milk9111/phys2d/tilemesh"
)

const debugCircleSegments = 24

var (
	staticColor = color.NRGBA{R: 51, G: 255, B: 51, A: 230}
	holeColor   = color.NRGBA{R: 255, G: 128, B: 26, A: 230}
	bodyColor   = color.NRGBA{R: 102, G: 178, B: 255, A: 230}
)

type debugDrawer struct {
	screen *ebiten.Image
}

func (d *debugDrawer) drawMesh(m *tilemesh.Mesh) {
	d.drawPolygon(m.Outer, staticColor)
	for _, hole := range m.Holes {
		d.drawPolygon(hole, holeColor)
	}
}

func (d *debugDrawer) drawBody(b *phys.Body) {
	switch s := b.Shape().(type) {
	case *phys.Circle:
		d.drawCircle(b.Position, s.Radius, bodyColor)
	default:
		bb := b.BB()
		d.drawPolygon([]cp.Vector{
			{X: bb.L, Y: bb.B}, {X: bb.R, Y: bb.B},
			{X: bb.R, Y: bb.T}, {X: bb.L, Y: bb.T},
		}, bodyColor)
	}
}

func (d *debugDrawer) drawPolygon(verts []cp.Vector, c color.Color) {
	for i := 0; i < len(verts); i++ {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], c)
	}
}

func (d *debugDrawer) drawCircle(center cp.Vector, radius float64, c color.Color) {
	if radius <= 0 {
		return
	}
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, c)
}

func (d *debugDrawer) drawLine(a, b cp.Vector, c color.Color) {
	ebitenutil.DrawLine(d.screen, a.X, a.Y, b.X, b.Y, c)
}
