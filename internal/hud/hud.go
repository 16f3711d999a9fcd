// Package hud draws the status overlay on top of the ebiten window.
package hud

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/golang/freetype/truetype"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"raycast/internal/engine"
)

const Help = "WASD move, Q/Z look, E/C fly, F ceiling, TAB map, P pause, ESC quit"

var textColor = color.RGBA{255, 255, 255, 255}

// LoadFace returns the Go regular font at size points.
func LoadFace(size float64) (font.Face, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("hud: parse font: %w", err)
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

type HUD struct {
	ui    *ebitenui.UI
	lines []*widget.Text
}

func New(size float64) (*HUD, error) {
	face, err := LoadFace(size)
	if err != nil {
		return nil, err
	}

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(6)),
			widget.RowLayoutOpts.Spacing(2),
		)),
	)

	h := &HUD{}
	for range Lines(engine.Stats{}, 0) {
		t := widget.NewText(widget.TextOpts.Text("", face, textColor))
		h.lines = append(h.lines, t)
		root.AddChild(t)
	}
	h.ui = &ebitenui.UI{Container: root}
	return h, nil
}

// Lines formats the overlay text.
func Lines(s engine.Stats, fps float64) []string {
	ceiling := "textured ceiling"
	if s.NoCeiling {
		ceiling = "sky"
	}
	state := ""
	if s.Paused {
		state = " (paused)"
	}
	return []string{
		fmt.Sprintf("FPS: %0.2f%s", fps, state),
		fmt.Sprintf("pos: %.0f,%.0f  heading: %.1f  height: %.0f", s.X, s.Y, s.Heading, s.Height),
		fmt.Sprintf("%s, %d textures", ceiling, s.Textures),
		Help,
	}
}

func (h *HUD) Update(s engine.Stats, fps float64) {
	for i, l := range Lines(s, fps) {
		h.lines[i].Label = l
	}
	h.ui.Update()
}

func (h *HUD) Draw(screen *ebiten.Image) {
	h.ui.Draw(screen)
}
