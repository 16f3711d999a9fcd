// Package engine owns one running world: tables, map, player, frame buffer
// and renderer. A host feeds it one input snapshot per frame and presents
// the pixels it leaves behind.
package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/jinzhu/copier"
	"github.com/sirupsen/logrus"

	"raycast/internal/canvas"
	"raycast/internal/input"
	"raycast/internal/logger"
	"raycast/internal/movement"
	"raycast/internal/player"
	"raycast/internal/render"
	"raycast/internal/texture"
	"raycast/internal/trig"
	"raycast/internal/world"
)

// NativeWidth is the projection width at which one arc unit is exactly one
// screen column.
const NativeWidth = 320

var ErrScreenSize = errors.New("engine: screen size must be positive")

type Options struct {
	Width        int
	Height       int
	ChannelOrder canvas.ChannelOrder

	// DoorDemo opens and closes door 0 continuously.
	DoorDemo bool
	// OverheadMap starts with the debug map visible.
	OverheadMap bool
}

// Stats is a snapshot for status displays.
type Stats struct {
	Frames    uint64
	X, Y      float64
	Heading   float64 // degrees
	Height    float64
	NoCeiling bool
	Overhead  bool
	Paused    bool
	Textures  int
}

type Engine struct {
	opts Options

	tables    *trig.Tables
	world     *world.Map
	store     *texture.Store
	canvas    *canvas.Canvas
	renderer  *render.Renderer
	player    player.Player
	cache     player.DistanceCache
	drawables []render.Drawable

	noCeiling bool
	overhead  bool
	paused    bool
	frames    uint64
}

func New(opts Options, m *world.Map, store *texture.Store) (*Engine, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrScreenSize, opts.Width, opts.Height)
	}
	if m == nil {
		return nil, errors.New("engine: nil map")
	}
	if store == nil {
		store = texture.NewStore()
	}
	if opts.Width != NativeWidth {
		logger.Log.WithField("width", opts.Width).
			Warn("projection width is not 320; rays still advance one arc unit per column")
	}

	tables := trig.Build(opts.Width, world.TileSize)
	c := canvas.New(opts.Width, opts.Height, opts.ChannelOrder)

	e := &Engine{
		opts:     opts,
		tables:   tables,
		world:    m,
		store:    store,
		canvas:   c,
		renderer: render.New(tables, c, store),
		player:   player.New(tables, m.Start, opts.Height),
		cache:    player.NewDistanceCache(opts.Width),
		overhead: opts.OverheadMap,
	}
	if len(m.Objects) > 0 {
		if err := copier.Copy(&e.drawables, &m.Objects); err != nil {
			return nil, fmt.Errorf("engine: drawables: %w", err)
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"width":     opts.Width,
		"height":    opts.Height,
		"order":     opts.ChannelOrder,
		"map":       fmt.Sprintf("%dx%d", m.Width(), m.Height()),
		"drawables": len(e.drawables),
	}).Info("engine ready")
	return e, nil
}

// Frame renders one frame and then applies the input to the player.
func (e *Engine) Frame(in input.State) {
	if in.Pause {
		e.paused = !e.paused
	}
	if in.ToggleMap {
		e.overhead = !e.overhead
	}
	if e.paused {
		return
	}
	e.frames++

	if e.opts.DoorDemo {
		e.world.AnimateDoor(0)
	}

	if e.noCeiling {
		e.renderer.DrawBackground(&e.player, e.world.Background)
	} else {
		e.canvas.Clear()
	}

	e.cache.Reset()
	hits := e.renderer.RenderWalls(&e.player, e.world, e.cache, e.noCeiling)
	e.renderer.RenderSprites(&e.player, e.drawables, e.cache)
	if e.overhead {
		e.renderer.DrawOverheadMap(&e.player, e.world, hits)
	}

	e.player = movement.Step(in, e.player, e.world, e.tables, e.opts.Height)
	if in.ToggleCeiling {
		e.noCeiling = !e.noCeiling
	}
}

// Pixels is the last frame. It is overwritten by the next Frame call and
// must not be modified.
func (e *Engine) Pixels() []byte { return e.canvas.Pix() }

func (e *Engine) Canvas() *canvas.Canvas { return e.canvas }

func (e *Engine) Player() player.Player { return e.player }

// Distances is the per-column wall distance of the last frame.
func (e *Engine) Distances() player.DistanceCache { return e.cache }

func (e *Engine) Width() int  { return e.opts.Width }
func (e *Engine) Height() int { return e.opts.Height }

func (e *Engine) Stats() Stats {
	return Stats{
		Frames:    e.frames,
		X:         e.player.X,
		Y:         e.player.Y,
		Heading:   e.player.Angle * 180 / math.Pi,
		Height:    e.player.Height,
		NoCeiling: e.noCeiling,
		Overhead:  e.overhead,
		Paused:    e.paused,
		Textures:  e.store.Len(),
	}
}
