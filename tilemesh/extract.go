package tilemesh

import (
	"math"

	"github.com/jakecoffman/cp"
)

// edge is a directed boundary segment, ephemeral to extraction.
type edge struct {
	start, end cp.Vector
}

func (e edge) dir() cp.Vector {
	return e.end.Sub(e.start)
}

// Extract computes the boundary meshes of the union of solid tiles in g.
// A degenerate grid (zero dimensions, all-empty) yields an empty result,
// not an error. The output is deterministic for a given grid: components
// are ordered by the grid position of their first emitted edge.
//
// Stages: per-cell edge generation in a consistent clockwise winding,
// shared-edge cancellation, collinear merging, component tagging by chain
// walking, polygon reconstruction, and even-odd hole classification.
func Extract(g Grid, opts Options) []Mesh {
	if !g.valid() {
		return nil
	}
	opts = opts.withDefaults(g.TileSize)

	edges := generateEdges(g)
	edges = cancelSharedEdges(edges, opts.EndpointTolerance)
	edges = mergeCollinear(edges, opts)
	loops := tagComponents(edges, opts.EndpointTolerance)

	polys := make([][]cp.Vector, 0, len(loops))
	for _, loop := range loops {
		// Malformed input can leave open or degenerate chains; drop
		// anything that cannot form a polygon.
		if len(loop) < 3 {
			continue
		}
		verts := make([]cp.Vector, len(loop))
		for i, ei := range loop {
			verts[i] = edges[ei].start
		}
		polys = append(polys, verts)
	}

	return classifyHoles(polys)
}

// generateEdges emits the four boundary edges of every solid cell, wound
// clockwise in grid coordinates (y down): top, right, bottom, left.
func generateEdges(g Grid) []edge {
	var edges []edge
	ts := g.TileSize
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if !g.SolidAt(x, y) {
				continue
			}
			x0, y0 := float64(x)*ts, float64(y)*ts
			x1, y1 := x0+ts, y0+ts
			edges = append(edges,
				edge{start: cp.Vector{X: x0, Y: y0}, end: cp.Vector{X: x1, Y: y0}},
				edge{start: cp.Vector{X: x1, Y: y0}, end: cp.Vector{X: x1, Y: y1}},
				edge{start: cp.Vector{X: x1, Y: y1}, end: cp.Vector{X: x0, Y: y1}},
				edge{start: cp.Vector{X: x0, Y: y1}, end: cp.Vector{X: x0, Y: y0}},
			)
		}
	}
	return edges
}

// cancelSharedEdges removes every pair of edges whose endpoints mutually
// match with reversed orientation. Such pairs come from two adjacent solid
// cells sharing a side and are interior, not part of any boundary.
//
// Removals are collected in a marking pass and compacted in a second pass,
// so enumeration never observes a half-removed list.
func cancelSharedEdges(edges []edge, tol float64) []edge {
	removed := make([]bool, len(edges))
	for i := 0; i < len(edges); i++ {
		if removed[i] {
			continue
		}
		for j := i + 1; j < len(edges); j++ {
			if removed[j] {
				continue
			}
			if edges[i].start.Near(edges[j].end, tol) && edges[i].end.Near(edges[j].start, tol) {
				removed[i] = true
				removed[j] = true
				break
			}
		}
	}
	kept := edges[:0]
	for i, e := range edges {
		if !removed[i] {
			kept = append(kept, e)
		}
	}
	return kept
}

// mergeCollinear repeatedly absorbs each edge's unique collinear successor
// until a full pass makes no merge, collapsing every straight boundary run
// into a single edge.
func mergeCollinear(edges []edge, opts Options) []edge {
	for {
		merged := false
		for i := 0; i < len(edges); i++ {
			j, unique := uniqueFollower(edges, i, opts.EndpointTolerance)
			if !unique || !collinear(edges[i].dir(), edges[j].dir(), opts.CollinearTolerance) {
				continue
			}
			edges[i].end = edges[j].end
			edges = append(edges[:j], edges[j+1:]...)
			merged = true
			break
		}
		if !merged {
			return edges
		}
	}
}

// uniqueFollower returns the index of the single edge whose start matches
// edges[i].end, or false when there is none or more than one (a corner
// where boundaries touch).
func uniqueFollower(edges []edge, i int, tol float64) (int, bool) {
	follower := -1
	for j := range edges {
		if j == i {
			continue
		}
		if edges[i].end.Near(edges[j].start, tol) {
			if follower >= 0 {
				return -1, false
			}
			follower = j
		}
	}
	return follower, follower >= 0
}

func collinear(a, b cp.Vector, tol float64) bool {
	la, lb := a.Length(), b.Length()
	if la < 1e-12 || lb < 1e-12 {
		return false
	}
	return math.Abs(a.Cross(b)/(la*lb)) < tol
}

// tagComponents walks each untagged edge forward through its endpoint
// chain, grouping the edges of every closed boundary loop. Returned loops
// list edge indices in chain order. Where an endpoint chains to more than
// one candidate the first untagged edge wins.
func tagComponents(edges []edge, tol float64) [][]int {
	tag := make([]int, len(edges))
	for i := range tag {
		tag[i] = -1
	}

	var loops [][]int
	for i := range edges {
		if tag[i] >= 0 {
			continue
		}
		loop := []int{}
		cur := i
		for cur >= 0 && tag[cur] < 0 {
			tag[cur] = len(loops)
			loop = append(loop, cur)
			cur = firstUntaggedFollower(edges, tag, cur, tol)
		}
		loops = append(loops, loop)
	}
	return loops
}

func firstUntaggedFollower(edges []edge, tag []int, i int, tol float64) int {
	for j := range edges {
		if j == i || tag[j] >= 0 {
			continue
		}
		if edges[i].end.Near(edges[j].start, tol) {
			return j
		}
	}
	return -1
}

// classifyHoles pairs every polygon against every other: a polygon whose
// vertices all lie inside another (even-odd ray cast) is recorded as that
// polygon's hole and excluded from the outer set. With nested containers
// the smallest-area container wins, which keeps each hole attached to its
// immediate boundary.
func classifyHoles(polys [][]cp.Vector) []Mesh {
	n := len(polys)
	holeOf := make([]int, n)
	for i := range holeOf {
		holeOf[i] = -1
	}

	for p := 0; p < n; p++ {
		for q := 0; q < n; q++ {
			if p == q || !allInside(polys[p], polys[q]) {
				continue
			}
			if holeOf[p] < 0 || polyArea(polys[q]) < polyArea(polys[holeOf[p]]) {
				holeOf[p] = q
			}
		}
	}

	meshes := make([]Mesh, 0, n)
	outerIndex := make([]int, n)
	for i := 0; i < n; i++ {
		if holeOf[i] >= 0 {
			outerIndex[i] = -1
			continue
		}
		outerIndex[i] = len(meshes)
		meshes = append(meshes, Mesh{Outer: polys[i]})
	}
	for i := 0; i < n; i++ {
		if holeOf[i] < 0 {
			continue
		}
		container := outerIndex[holeOf[i]]
		if container < 0 {
			// The container is itself a hole (nested solids); its own
			// interior boundaries are not collision metadata.
			continue
		}
		meshes[container].Holes = append(meshes[container].Holes, polys[i])
	}
	return meshes
}

func allInside(inner, outer []cp.Vector) bool {
	for _, v := range inner {
		if !pointInPolygon(v, outer) {
			return false
		}
	}
	return true
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

// polyArea is the absolute shoelace area.
func polyArea(verts []cp.Vector) float64 {
	var sum float64
	j := len(verts) - 1
	for i := 0; i < len(verts); i++ {
		sum += verts[j].Cross(verts[i])
		j = i
	}
	return math.Abs(sum) / 2
}
