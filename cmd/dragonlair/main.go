package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/dragonlair/game"
	"github.com/milk9111/dragonlair/prefabs"
	"github.com/milk9111/dragonlair/progress"
	"github.com/milk9111/dragonlair/replay"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode (F2 copies a snapshot, specs reload on change)")
	level := flag.Int("level", -1, "start this level index directly, skipping the menu")
	fixed := flag.Bool("fixed", false, "use the fixed timestep from world.yaml")
	saveDir := flag.String("save-dir", ".dragonlair", "directory holding the progress record")
	record := flag.String("record", "", "record the run to this file")
	replayPath := flag.String("replay", "", "play back a recorded run")
	flag.Parse()

	log.SetPrefix("dragonlair: ")

	opts, err := game.LoadOptions()
	if err != nil {
		log.Fatal(err)
	}
	opts.Store = progress.NewFileStore(*saveDir)

	g, err := game.New(opts)
	if err != nil {
		log.Fatal(err)
	}
	if *fixed {
		g.SetTimestepMode(prefabs.TimestepFixed)
	}

	app := newApp(g, opts.World.Field.GroundY, *debug)

	switch {
	case *replayPath != "":
		s, err := replay.LoadFile(*replayPath)
		if err != nil {
			log.Fatal(err)
		}
		p, err := replay.NewPlayer(g, s)
		if err != nil {
			log.Fatal(err)
		}
		app.playback = p
		app.menuOpen = false
	case *level >= 0:
		if err := g.Start(*level); err != nil {
			log.Fatal(err)
		}
		app.menuOpen = false
	}

	var rec *replay.Recorder
	if *record != "" && app.playback == nil {
		rec, err = replay.Attach(g)
		if err != nil {
			log.Fatal(err)
		}
		app.menuOpen = false
	}

	if *debug {
		if err := app.watch(); err != nil {
			log.Printf("hot reload disabled: %v", err)
		}
	}
	defer app.close()

	ebiten.SetWindowTitle("Elves and the Dragon's Lair")
	ebiten.SetWindowSize(fieldWidth, screenHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(app); err != nil && err != ebiten.Termination {
		log.Fatal(err)
	}

	if rec != nil {
		if err := rec.Session().SaveFile(*record); err != nil {
			log.Fatal(err)
		}
		log.Printf("recorded %d frames to %s", len(rec.Session().Frames), *record)
	}
}
