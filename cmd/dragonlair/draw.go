package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/dragonlair/common"
	"github.com/milk9111/dragonlair/ecs/component"
	"github.com/milk9111/dragonlair/game"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

var hudFace = ebtext.NewGoXFace(basicfont.Face7x13)

var enemyColors = map[string]color.Color{
	"wolf":    colornames.Slategray,
	"cyclops": colornames.Sienna,
}

func drawSnapshot(screen *ebiten.Image, s game.Snapshot, groundY float64) {
	screen.Fill(colornames.Midnightblue)

	for _, p := range s.Pits {
		fillRect(screen, common.Rect{X: p.X, Y: groundY, Width: p.Width, Height: fieldHeight - groundY}, colornames.Black)
	}
	for _, p := range s.Platforms {
		c := colornames.Saddlebrown
		if p.Moving {
			c = colornames.Peru
		}
		fillRect(screen, p.Rect, c)
	}
	if s.Exit != nil {
		fillRect(screen, *s.Exit, colornames.Gold)
	}
	for _, c := range s.Crystals {
		fillRect(screen, c, colornames.Cyan)
	}
	for _, a := range s.Allies {
		fillRect(screen, a, colornames.Lightgreen)
	}
	for _, e := range s.Enemies {
		c, ok := enemyColors[e.Kind]
		if !ok {
			c = colornames.Gray
		}
		fillRect(screen, e.Rect, c)
	}
	if s.Boss != nil {
		c := colornames.Crimson
		if s.Boss.Defeated {
			c = colornames.Dimgray
		}
		fillRect(screen, s.Boss.Rect, c)
	}
	for _, f := range s.Fireballs {
		fillRect(screen, f, colornames.Orangered)
	}
	fillRect(screen, s.Player, colornames.Forestgreen)

	drawHUD(screen, s.HUD)
}

func drawHUD(screen *ebiten.Image, h game.HUDView) {
	vector.DrawFilledRect(screen, 0, fieldHeight, fieldWidth, hudHeight, colornames.Black, false)

	drawText(screen, h.Level, 10, 8, colornames.White)
	drawText(screen, "Crystals "+h.Crystals, 10, 26, colornames.Cyan)
	// The bitmap face has no heart glyph, so lives are drawn as pips.
	for i := 0; i < h.Lives; i++ {
		vector.DrawFilledRect(screen, float32(10+i*14), 46, 10, 10, colornames.Red, false)
	}

	if h.Status != "" {
		c := color.Color(colornames.White)
		switch h.Tone {
		case component.ToneGood:
			c = colornames.Lightgreen
		case component.ToneBad:
			c = colornames.Salmon
		}
		drawText(screen, h.Status, 260, 8, c)
	}
	drawText(screen, h.Message, 10, fieldHeight+8, colornames.White)
	drawText(screen, h.Progress, 10, fieldHeight+28, colornames.Lightgray)
}

func fillRect(screen *ebiten.Image, r common.Rect, c color.Color) {
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), c, false)
}

func drawText(screen *ebiten.Image, s string, x, y float64, c color.Color) {
	if s == "" {
		return
	}
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	ebtext.Draw(screen, s, hudFace, op)
}
