// Package game runs the engine in an ebiten window.
package game

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"

	"raycast/internal/canvas"
	"raycast/internal/engine"
	"raycast/internal/hud"
	"raycast/internal/logger"
)

type Options struct {
	Title      string
	Scale      float64
	TPS        int
	Fullscreen bool
	VSync      bool
}

// Game implements ebiten.Game.
type Game struct {
	engine *engine.Engine
	hud    *hud.HUD

	// window resolution and scaling
	screenWidth  int
	screenHeight int
	scale        float64
	opts         Options

	scene *ebiten.Image
	rgba  []byte
}

// New wraps an engine. h may be nil to run without the overlay.
func New(e *engine.Engine, h *hud.HUD, opts Options) *Game {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.TPS <= 0 {
		opts.TPS = 30
	}
	g := &Game{
		engine: e,
		hud:    h,
		scale:  opts.Scale,
		opts:   opts,
		scene:  ebiten.NewImage(e.Width(), e.Height()),
	}
	if e.Canvas().Order() != canvas.RGBA {
		g.rgba = make([]byte, len(e.Pixels()))
	}
	g.setResolution(e.Width(), e.Height())
	return g
}

// use scale to keep the projection plane aspect at the window size
func (g *Game) setResolution(width, height int) {
	g.screenWidth = int(float64(width) * g.scale)
	g.screenHeight = int(float64(height) * g.scale)
	ebiten.SetWindowSize(g.screenWidth, g.screenHeight)
}

// Run blocks until the window is closed or escape is pressed.
func (g *Game) Run() error {
	ebiten.SetWindowTitle(g.opts.Title)
	ebiten.SetTPS(g.opts.TPS)
	ebiten.SetFullscreen(g.opts.Fullscreen)
	ebiten.SetVsyncEnabled(g.opts.VSync)

	logger.Log.WithField("tps", g.opts.TPS).Info("starting ebiten host")
	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenWidth, g.screenHeight
}

// Update samples input and advances the engine one frame.
func (g *Game) Update() error {
	in := readKeys()
	if in.Quit {
		return ebiten.Termination
	}

	g.engine.Frame(in)
	if g.hud != nil {
		g.hud.Update(g.engine.Stats(), ebiten.ActualFPS())
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.rgba != nil {
		g.engine.Canvas().CopyRGBA(g.rgba)
		g.scene.WritePixels(g.rgba)
	} else {
		g.scene.WritePixels(g.engine.Pixels())
	}

	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterNearest
	op.GeoM.Scale(g.scale, g.scale)
	screen.DrawImage(g.scene, op)

	if g.hud != nil {
		g.hud.Draw(screen)
	}
}
