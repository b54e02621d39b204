// Package level loads tile-map level data and physics tuning, and converts
// physics layers into extraction grids for static collision geometry.
package level

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/milk9111/phys2d/tilemesh"
)

// DefaultTileSize is the tile edge length in world units when a level file
// does not carry its own.
const DefaultTileSize = 32

// Level represents a simple tile map stored as JSON.
type Level struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	// TileSize is the tile edge length in world units; zero defaults to
	// DefaultTileSize.
	TileSize float64 `json:"tile_size,omitempty"`
	// Layers is a slice of layers, each a flat array of length
	// Width*Height (row-major). A zero tile is empty.
	Layers [][]int `json:"layers,omitempty"`
	// LayerMeta holds per-layer metadata; only layers marked HasPhysics
	// contribute to collision geometry.
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`
	// Player spawn in tile coordinates.
	SpawnX int `json:"spawn_x,omitempty"`
	SpawnY int `json:"spawn_y,omitempty"`
}

type LayerMeta struct {
	HasPhysics bool   `json:"has_physics"`
	Color      string `json:"color"`
}

// Load reads a level from a JSON file at path.
func Load(path string) (*Level, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("level: read %s: %w", path, err)
	}

	var lvl Level
	if err := json.Unmarshal(b, &lvl); err != nil {
		return nil, fmt.Errorf("level: unmarshal %s: %w", path, err)
	}

	if lvl.Width <= 0 || lvl.Height <= 0 {
		return nil, fmt.Errorf("level: %s: invalid dimensions %dx%d", path, lvl.Width, lvl.Height)
	}
	for i, layer := range lvl.Layers {
		if len(layer) != lvl.Width*lvl.Height {
			return nil, fmt.Errorf("level: %s: layer %d has %d tiles, want %d", path, i, len(layer), lvl.Width*lvl.Height)
		}
	}
	if lvl.TileSize <= 0 {
		lvl.TileSize = DefaultTileSize
	}
	return &lvl, nil
}

// hasPhysics reports whether the layer at idx contributes collision tiles.
func (l *Level) hasPhysics(idx int) bool {
	return l.LayerMeta != nil && idx < len(l.LayerMeta) && l.LayerMeta[idx].HasPhysics
}

// PhysicsGrid flattens every physics layer into one solidity grid: a cell
// is solid when any physics layer has a nonzero tile there.
func (l *Level) PhysicsGrid() tilemesh.Grid {
	solid := make([]bool, l.Width*l.Height)
	for idx, layer := range l.Layers {
		if !l.hasPhysics(idx) {
			continue
		}
		for i, v := range layer {
			if v != 0 {
				solid[i] = true
			}
		}
	}
	return tilemesh.Grid{
		TileSize: l.TileSize,
		Width:    l.Width,
		Height:   l.Height,
		Solid:    solid,
	}
}
