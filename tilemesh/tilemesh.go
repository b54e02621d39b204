// Package tilemesh turns a solid/empty tile grid into the minimal set of
// simple boundary polygons, with interior holes classified, so a handful of
// static bodies can replace one body per solid tile.
//
// Extraction is a one-shot, synchronous computation meant for level load,
// not the per-frame path.
package tilemesh

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/phys2d/phys"
)

// Grid is the row-major solidity input to extraction. It is read-only to
// the extractor.
type Grid struct {
	TileSize float64
	Width    int
	Height   int
	// Solid has Width*Height entries, row-major (y*Width + x).
	Solid []bool
}

// SolidAt reports the solidity of cell (x, y); out-of-range cells are empty.
func (g Grid) SolidAt(x, y int) bool {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return false
	}
	i := y*g.Width + x
	if i >= len(g.Solid) {
		return false
	}
	return g.Solid[i]
}

func (g Grid) valid() bool {
	return g.TileSize > 0 && g.Width > 0 && g.Height > 0 && len(g.Solid) >= g.Width*g.Height
}

// Options carries the numeric tolerances of extraction. Defaults are tuned
// to the grid's tile size, not baked per call site: endpoint matching is
// scale-dependent, so a unit grid and a 32px grid need different values.
type Options struct {
	// EndpointTolerance is the maximum distance between two edge endpoints
	// still considered coincident. Zero defaults to TileSize/2.
	EndpointTolerance float64
	// CollinearTolerance bounds the cross product of two normalized edge
	// directions still considered collinear. Zero defaults to 1e-6.
	CollinearTolerance float64
}

func (o Options) withDefaults(tileSize float64) Options {
	if o.EndpointTolerance <= 0 {
		o.EndpointTolerance = tileSize / 2
	}
	if o.CollinearTolerance <= 0 {
		o.CollinearTolerance = 1e-6
	}
	return o
}

// Mesh is one extracted boundary: an outer polygon and the hole boundaries
// it encloses. Holes are metadata (navmesh carving and the like), not
// collision geometry of their own.
type Mesh struct {
	Outer []cp.Vector
	Holes [][]cp.Vector
}

// BuildStaticBodies wraps each outer boundary into a static polygon body.
// Vertices are absolute, so bodies sit at the origin with zero rotation.
// The body's Owner is set to its Mesh so hole metadata stays reachable.
func BuildStaticBodies(meshes []Mesh) []*phys.Body {
	bodies := make([]*phys.Body, 0, len(meshes))
	for i := range meshes {
		m := &meshes[i]
		body := phys.NewStaticBody(&phys.Polygon{Verts: m.Outer})
		body.Owner = m
		bodies = append(bodies, body)
	}
	return bodies
}
