package main

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/phys2d/common"
	"github.com/milk9111/phys2d/level"
	"github.com/milk9111/phys2d/phys"
	"github.com/milk9111/phys2d/tilemesh"
)

const (
	typeSolid cp.CollisionType = iota + 1
	typeDebris
)

const dropCount = 12

type Game struct {
	frames int

	levelPath string
	lvl       *level.Level
	tuning    *level.Tuning
	watcher   *level.Watcher

	world   *phys.World
	statics []*phys.Body
	debris  []*phys.Body
	meshes  []tilemesh.Mesh

	contacts int
}

func NewGame(levelPath string, lvl *level.Level, tuning *level.Tuning, watcher *level.Watcher) *Game {
	g := &Game{
		levelPath: levelPath,
		lvl:       lvl,
		tuning:    tuning,
		watcher:   watcher,
	}
	g.rebuild()
	return g
}

// rebuild runs extraction and reconstructs the world. Called at startup and
// whenever a watched file changes; never from inside Step.
func (g *Game) rebuild() {
	g.meshes = tilemesh.Extract(g.lvl.PhysicsGrid(), g.tuning.ExtractOptions())
	g.world = g.tuning.NewWorld()

	g.statics = tilemesh.BuildStaticBodies(g.meshes)
	for _, b := range g.statics {
		b.Type = typeSolid
		if err := g.world.AddBody(b); err != nil {
			log.Printf("physdemo: add static body: %v", err)
		}
	}

	g.world.OnCollision(typeDebris, typeSolid, func(a, b *phys.Body, contact phys.Contact) {
		g.contacts++
	})

	g.debris = g.debris[:0]
	rng := rand.New(rand.NewSource(1))
	worldW := float64(g.lvl.Width) * g.lvl.TileSize
	for i := 0; i < dropCount; i++ {
		var shape phys.Shape
		if i%2 == 0 {
			shape = phys.NewShape(phys.ShapeOptions{Kind: phys.KindCircle, Radius: 4 + rng.Float64()*8})
		} else {
			shape = phys.NewShape(phys.ShapeOptions{Kind: phys.KindBox, Width: 8 + rng.Float64()*12})
		}
		b := phys.NewBody(shape)
		b.Type = typeDebris
		b.Position = cp.Vector{X: common.Lerp(0, worldW, rng.Float64()), Y: -20 - rng.Float64()*100}
		b.Restitution = 0.3
		if err := g.world.AddBody(b); err != nil {
			log.Printf("physdemo: add debris body: %v", err)
		}
		g.debris = append(g.debris, b)
	}
}

func (g *Game) Update() error {
	g.frames++

	if g.watcher != nil {
		select {
		case name, ok := <-g.watcher.Events:
			if ok {
				g.reload(name)
			}
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("physdemo: watch: %v", err)
			}
		default:
		}
	}

	g.world.Step(1.0 / 60.0)

	// Recycle debris that fell out of the level.
	worldH := float64(g.lvl.Height) * g.lvl.TileSize
	for _, b := range g.debris {
		if b.Position.Y > worldH+200 {
			b.Position = cp.Vector{X: b.Position.X, Y: -50}
			b.Velocity = cp.Vector{}
		}
	}
	return nil
}

func (g *Game) reload(name string) {
	lvl, err := level.Load(g.levelPath)
	if err != nil {
		log.Printf("physdemo: reload %s: %v", name, err)
		return
	}
	g.lvl = lvl
	g.rebuild()
	log.Printf("physdemo: rebuilt collision mesh after change to %s", name)
}

func (g *Game) Draw(screen *ebiten.Image) {
	d := &debugDrawer{screen: screen}
	for i := range g.meshes {
		d.drawMesh(&g.meshes[i])
	}
	for _, b := range g.debris {
		d.drawBody(b)
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("bodies: %d\nmeshes: %d\ncontacts: %d", len(g.world.Bodies()), len(g.meshes), g.contacts), 10, 10)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return baseWidth, baseHeight
}
