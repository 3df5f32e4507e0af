package main

import (
	"encoding/json"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/dragonlair/common"
	"github.com/milk9111/dragonlair/ecs"
	"github.com/milk9111/dragonlair/game"
	"github.com/milk9111/dragonlair/input"
	"github.com/milk9111/dragonlair/prefabs"
	"github.com/milk9111/dragonlair/replay"
	"golang.design/x/clipboard"
)

const (
	fieldWidth   = common.FieldWidth
	fieldHeight  = common.FieldHeight
	hudHeight    = 64
	screenHeight = fieldHeight + hudHeight
)

// keyNames maps polled ebiten keys to the names input.State understands.
var keyNames = map[ebiten.Key]string{
	ebiten.KeyArrowLeft:  "ArrowLeft",
	ebiten.KeyArrowRight: "ArrowRight",
	ebiten.KeyA:          "a",
	ebiten.KeyD:          "d",
	ebiten.KeySpace:      " ",
	ebiten.KeyX:          "x",
}

type App struct {
	game    *game.Game
	input   input.State
	groundY float64
	debug   bool

	menu     *ebitenui.UI
	menuUI   *mainMenu
	menuOpen bool

	playback *replay.Player
	watcher  *prefabs.Watcher
	sfx      *sfx

	clipboardOK bool
	keys        []ebiten.Key
}

func newApp(g *game.Game, groundY float64, debug bool) *App {
	a := &App{
		game:     g,
		groundY:  groundY,
		debug:    debug,
		menuOpen: true,
		sfx:      newSFX(),
	}
	a.menuUI = newMainMenu(a)
	a.menu = a.menuUI.ui
	a.menuUI.refresh()

	if debug {
		if err := clipboard.Init(); err != nil {
			log.Printf("clipboard unavailable: %v", err)
		} else {
			a.clipboardOK = true
		}
	}
	return a
}

func (a *App) watch() error {
	w, err := prefabs.NewWatcher("prefabs", "prefabs/scripts", "levels")
	if err != nil {
		return err
	}
	a.watcher = w
	return nil
}

func (a *App) close() {
	if a.watcher != nil {
		_ = a.watcher.Close()
	}
}

func (a *App) Update() error {
	a.pollReload()

	if a.menuOpen {
		a.menu.Update()
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		a.openMenu()
		return nil
	}
	if a.debug && inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		a.copySnapshot()
	}

	dt := 1.0 / float64(ebiten.TPS())
	var events []ecs.Event
	if a.playback != nil {
		if a.playback.Done() {
			return nil
		}
		events, _ = a.playback.Next()
	} else {
		a.pollKeys()
		events = a.game.Advance(dt, &a.input)
	}
	a.sfx.play(events)
	return nil
}

func (a *App) pollKeys() {
	a.keys = inpututil.AppendJustPressedKeys(a.keys[:0])
	for _, k := range a.keys {
		if name, ok := keyNames[k]; ok {
			a.input.KeyDown(name)
		}
	}
	a.keys = inpututil.AppendJustReleasedKeys(a.keys[:0])
	for _, k := range a.keys {
		if name, ok := keyNames[k]; ok {
			a.input.KeyUp(name)
		}
	}
}

func (a *App) pollReload() {
	if a.watcher == nil {
		return
	}
	rebuild, scripts := false, false
drain:
	for {
		select {
		case c, ok := <-a.watcher.Changes:
			if !ok {
				a.watcher = nil
				return
			}
			log.Printf("reload: %s %s changed", c.Kind, c.Path)
			if c.Kind == prefabs.ChangeScript {
				scripts = true
			} else {
				rebuild = true
			}
		case err, ok := <-a.watcher.Errors:
			if !ok {
				a.watcher = nil
				return
			}
			log.Printf("reload: %v", err)
		default:
			break drain
		}
	}

	switch {
	case rebuild:
		// A rebuilt pipeline compiles scripts afresh as well.
		opts, err := game.LoadOptions()
		if err != nil {
			log.Printf("reload: %v", err)
			return
		}
		if err := a.game.Reload(opts); err != nil {
			log.Printf("reload: %v", err)
		}
	case scripts:
		a.game.ReloadScripts()
	}
}

func (a *App) copySnapshot() {
	if !a.clipboardOK {
		return
	}
	data, err := json.MarshalIndent(a.game.Snapshot(), "", "  ")
	if err != nil {
		log.Printf("snapshot: %v", err)
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	log.Printf("snapshot copied (%d bytes)", len(data))
}

func (a *App) openMenu() {
	a.input.Reset()
	a.menuUI.refresh()
	a.menuOpen = true
}

func (a *App) closeMenu() {
	a.input.Reset()
	a.menuOpen = false
}

func (a *App) Draw(screen *ebiten.Image) {
	drawSnapshot(screen, a.game.Snapshot(), a.groundY)
	if a.menuOpen {
		a.menu.Draw(screen)
	}
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return fieldWidth, screenHeight
}
