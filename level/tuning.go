package level

import (
	"fmt"
	"os"

	"github.com/jakecoffman/cp"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/phys2d/phys"
	"github.com/milk9111/phys2d/tilemesh"
)

// Tuning is the physics configuration loaded alongside a level. Zero
// values fall through to the library defaults, so a partial file is fine.
type Tuning struct {
	Gravity     float64 `yaml:"gravity"`
	Restitution float64 `yaml:"restitution"`
	// CellSize is the broad-phase grid cell size.
	CellSize float64 `yaml:"cell_size"`
	// Extraction tolerances, in world units; see tilemesh.Options.
	EndpointTolerance  float64 `yaml:"endpoint_tolerance"`
	CollinearTolerance float64 `yaml:"collinear_tolerance"`
}

// LoadTuning reads tuning from a YAML file at path.
func LoadTuning(path string) (*Tuning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("level: read %s: %w", path, err)
	}
	var t Tuning
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("level: unmarshal %s: %w", path, err)
	}
	return &t, nil
}

// NewWorld builds a phys.World configured from the tuning.
func (t *Tuning) NewWorld() *phys.World {
	w := phys.NewWorld(t.CellSize)
	w.Gravity = cp.Vector{X: 0, Y: t.Gravity}
	return w
}

// ExtractOptions returns the extraction tolerances for tilemesh.Extract.
func (t *Tuning) ExtractOptions() tilemesh.Options {
	return tilemesh.Options{
		EndpointTolerance:  t.EndpointTolerance,
		CollinearTolerance: t.CollinearTolerance,
	}
}
