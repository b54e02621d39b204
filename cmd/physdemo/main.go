// Command physdemo loads a level, extracts its static collision mesh, and
// steps a world of falling bodies while drawing everything as wireframes.
// Saving the level or tuning file while the demo runs rebuilds the static
// geometry in place.
package main

import (
	"flag"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/phys2d/level"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

func main() {
	levelPath := flag.String("level", "levels/demo.json", "path to a level JSON file")
	tuningPath := flag.String("tuning", "", "path to a tuning YAML file (optional)")
	flag.Parse()

	lvl, err := level.Load(*levelPath)
	if err != nil {
		log.Fatal(err)
	}

	tuning := &level.Tuning{Gravity: 600}
	if *tuningPath != "" {
		t, err := level.LoadTuning(*tuningPath)
		if err != nil {
			log.Fatal(err)
		}
		tuning = t
	}

	watcher, err := level.NewWatcher(filepath.Dir(*levelPath))
	if err != nil {
		log.Printf("physdemo: watcher disabled: %v", err)
	} else {
		defer watcher.Close()
	}

	game := NewGame(*levelPath, lvl, tuning, watcher)

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("physdemo")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
