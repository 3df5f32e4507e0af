package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/dragonlair/common"
	"github.com/milk9111/dragonlair/ecs/component"
	"github.com/milk9111/dragonlair/game"
)

// The HUD takes the top rows; the field is scaled into the rest.
const hudRows = 3

var (
	stylePlatform = tcell.StyleDefault.Foreground(tcell.ColorSaddleBrown)
	styleMoving   = tcell.StyleDefault.Foreground(tcell.ColorPeru)
	styleCrystal  = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleAlly     = tcell.StyleDefault.Foreground(tcell.ColorLightGreen)
	styleEnemy    = tcell.StyleDefault.Foreground(tcell.ColorSlateGray)
	styleBoss     = tcell.StyleDefault.Foreground(tcell.ColorCrimson)
	styleFire     = tcell.StyleDefault.Foreground(tcell.ColorOrangeRed)
	styleExit     = tcell.StyleDefault.Foreground(tcell.ColorGold)
	stylePlayer   = tcell.StyleDefault.Foreground(tcell.ColorForestGreen).Bold(true)
	styleHearts   = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

type viewport struct {
	cols, rows int
	sx, sy     float64
}

func newViewport(w, h int) viewport {
	rows := max(h-hudRows, 1)
	cols := max(w, 1)
	return viewport{
		cols: cols,
		rows: rows,
		sx:   float64(cols) / common.FieldWidth,
		sy:   float64(rows) / common.FieldHeight,
	}
}

// cells maps a field rect onto the cell range it covers; every rect covers at
// least one cell.
func (v viewport) cells(r common.Rect) (x0, y0, x1, y1 int) {
	x0 = int(r.X * v.sx)
	y0 = int(r.Y * v.sy)
	x1 = max(int(r.Right()*v.sx), x0+1)
	y1 = max(int(r.Bottom()*v.sy), y0+1)
	return x0, y0 + hudRows, min(x1, v.cols), min(y1, v.rows) + hudRows
}

func (t *term) fill(v viewport, r common.Rect, ch rune, style tcell.Style) {
	x0, y0, x1, y1 := v.cells(r)
	for y := y0; y < y1; y++ {
		for x := max(x0, 0); x < x1; x++ {
			t.screen.SetContent(x, y, ch, nil, style)
		}
	}
}

func (t *term) text(x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		t.screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

func (t *term) draw() {
	t.screen.Clear()
	w, h := t.screen.Size()
	if t.title {
		t.drawTitle(w, h)
		t.screen.Show()
		return
	}

	v := newViewport(w, h)
	s := t.game.Snapshot()

	for _, p := range s.Platforms {
		style := stylePlatform
		if p.Moving {
			style = styleMoving
		}
		t.fill(v, p.Rect, '▀', style)
	}
	if s.Exit != nil {
		t.fill(v, *s.Exit, '▒', styleExit)
	}
	for _, c := range s.Crystals {
		t.fill(v, c, '◆', styleCrystal)
	}
	for _, a := range s.Allies {
		t.fill(v, a, 'E', styleAlly)
	}
	for _, e := range s.Enemies {
		ch := 'W'
		if e.Kind == "cyclops" {
			ch = 'C'
		}
		t.fill(v, e.Rect, ch, styleEnemy)
	}
	if s.Boss != nil {
		style := styleBoss
		if s.Boss.Defeated {
			style = styleEnemy
		}
		t.fill(v, s.Boss.Rect, 'D', style)
	}
	for _, f := range s.Fireballs {
		t.fill(v, f, '*', styleFire)
	}
	t.fill(v, s.Player, '@', stylePlayer)

	t.drawHUD(s.HUD)
	t.screen.Show()
}

func (t *term) drawHUD(h game.HUDView) {
	x := t.text(0, 0, fmt.Sprintf("%s  Crystals %s  ", h.Level, h.Crystals), tcell.StyleDefault)
	t.text(x, 0, h.Hearts, styleHearts)

	style := tcell.StyleDefault
	switch h.Tone {
	case component.ToneGood:
		style = style.Foreground(tcell.ColorLightGreen)
	case component.ToneBad:
		style = style.Foreground(tcell.ColorSalmon)
	}
	t.text(0, 1, h.Status, style)
	t.text(0, 2, h.Message, tcell.StyleDefault.Dim(true))
}

func (t *term) drawTitle(w, h int) {
	lines := []string{
		"Elves and the Dragon's Lair",
		"",
		"[N] New Game",
	}
	if t.game.CanContinue() {
		lines = append(lines, "[C] Continue")
	}
	lines = append(lines, "", t.game.ProgressText(), "", "Esc quits")

	y := max(h/2-len(lines)/2, 0)
	for i, line := range lines {
		x := max(w/2-len([]rune(line))/2, 0)
		t.text(x, y+i, line, tcell.StyleDefault)
	}
}
