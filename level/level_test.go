package level

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadLevel(t *testing.T) {
	dir := t.TempDir()

	t.Run("physics_layers_flatten_into_grid", func(t *testing.T) {
		path := writeFile(t, dir, "two_layers.json", `{
			"width": 2,
			"height": 2,
			"tile_size": 10,
			"layers": [
				[1, 0, 0, 0],
				[0, 0, 0, 1]
			],
			"layer_meta": [
				{"has_physics": true},
				{"has_physics": false}
			]
		}`)
		lvl, err := Load(path)
		if err != nil {
			t.Fatal(err)
		}
		grid := lvl.PhysicsGrid()
		if grid.TileSize != 10 || grid.Width != 2 || grid.Height != 2 {
			t.Fatalf("unexpected grid shape: %#v", grid)
		}
		if !grid.SolidAt(0, 0) {
			t.Fatalf("physics layer tile should be solid")
		}
		if grid.SolidAt(1, 1) {
			t.Fatalf("non-physics layer tile leaked into the grid")
		}
	})

	t.Run("tile_size_defaults", func(t *testing.T) {
		path := writeFile(t, dir, "no_tile_size.json", `{"width": 1, "height": 1, "layers": [[1]], "layer_meta": [{"has_physics": true}]}`)
		lvl, err := Load(path)
		if err != nil {
			t.Fatal(err)
		}
		if lvl.TileSize != DefaultTileSize {
			t.Fatalf("tile size = %v, want %v", lvl.TileSize, DefaultTileSize)
		}
	})

	t.Run("rejects_bad_dimensions", func(t *testing.T) {
		path := writeFile(t, dir, "bad_dims.json", `{"width": 0, "height": 3}`)
		if _, err := Load(path); err == nil {
			t.Fatalf("expected error for zero width")
		}
	})

	t.Run("rejects_short_layer", func(t *testing.T) {
		path := writeFile(t, dir, "short_layer.json", `{"width": 2, "height": 2, "layers": [[1, 0]]}`)
		if _, err := Load(path); err == nil {
			t.Fatalf("expected error for undersized layer")
		}
	})

	t.Run("missing_file", func(t *testing.T) {
		if _, err := Load(filepath.Join(dir, "nope.json")); err == nil {
			t.Fatalf("expected error for missing file")
		}
	})
}

func TestLoadTuning(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "tuning.yaml", "gravity: 600\nrestitution: 0.25\ncell_size: 48\nendpoint_tolerance: 0.5\n")

	tuning, err := LoadTuning(path)
	if err != nil {
		t.Fatal(err)
	}
	if tuning.Gravity != 600 || tuning.Restitution != 0.25 {
		t.Fatalf("unexpected tuning: %#v", tuning)
	}

	w := tuning.NewWorld()
	if w.Gravity.Y != 600 {
		t.Fatalf("world gravity = %v, want 600", w.Gravity.Y)
	}
	opts := tuning.ExtractOptions()
	if opts.EndpointTolerance != 0.5 {
		t.Fatalf("endpoint tolerance = %v, want 0.5", opts.EndpointTolerance)
	}
}

func TestWatcherReportsLevelChanges(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.json", `{}`)

	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte(`{"width": 1}`), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case name := <-w.Events:
		if filepath.Base(name) != "a.json" {
			t.Fatalf("unexpected event for %s", name)
		}
	case err := <-w.Errors:
		t.Fatal(err)
	case <-time.After(5 * time.Second):
		t.Fatal("no event within timeout")
	}
}
