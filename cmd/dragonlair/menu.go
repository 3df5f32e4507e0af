package main

import (
	"image/color"
	"log"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
)

// mainMenu is the title screen: New Game, Continue and the saved progress.
type mainMenu struct {
	ui       *ebitenui.UI
	app      *App
	progress *widget.Text
	cont     *widget.Button
}

func newMainMenu(a *App) *mainMenu {
	m := &mainMenu{app: a}

	panelImg := imageui.NewNineSliceColor(color.NRGBA{A: 210})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x2e, G: 0x4a, B: 0x2e, A: 255})
	btnPressed := imageui.NewNineSliceColor(color.NRGBA{R: 0x1e, G: 0x33, B: 0x1e, A: 255})
	btnDisabled := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})

	var face ebtext.Face = hudFace
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnText := &widget.ButtonTextColor{Idle: white, Disabled: color.Gray{Y: 120}}
	center := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})
	btnImage := &widget.ButtonImage{Idle: btnImg, Pressed: btnPressed, Disabled: btnDisabled}

	title := widget.NewText(
		widget.TextOpts.Text("Elves and the Dragon's Lair", &face, white),
		widget.TextOpts.WidgetOpts(center),
	)

	newGame := widget.NewButton(
		widget.ButtonOpts.Image(btnImage),
		widget.ButtonOpts.Text("New Game", &face, btnText),
		widget.ButtonOpts.WidgetOpts(center),
		widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
			if err := a.game.NewGame(); err != nil {
				log.Printf("new game: %v", err)
				return
			}
			a.closeMenu()
		}),
	)

	m.cont = widget.NewButton(
		widget.ButtonOpts.Image(btnImage),
		widget.ButtonOpts.Text("Continue", &face, btnText),
		widget.ButtonOpts.WidgetOpts(center),
		widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
			if err := a.game.Continue(); err != nil {
				log.Printf("continue: %v", err)
				return
			}
			a.closeMenu()
		}),
	)

	m.progress = widget.NewText(
		widget.TextOpts.Text("", &face, color.NRGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}),
		widget.TextOpts.WidgetOpts(center),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(14),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 24, Bottom: 24, Left: 36, Right: 36}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(fieldWidth/2, fieldHeight/3),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(newGame)
	panel.AddChild(m.cont)
	panel.AddChild(m.progress)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)

	m.ui = &ebitenui.UI{Container: root}
	return m
}

// refresh re-reads the saved record; called whenever the menu opens.
func (m *mainMenu) refresh() {
	m.progress.Label = m.app.game.ProgressText()
	m.cont.GetWidget().Disabled = !m.app.game.CanContinue()
}
