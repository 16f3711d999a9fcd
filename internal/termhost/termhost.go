// Package termhost runs the engine inside a terminal, two pixel rows per
// character cell using the upper half block.
package termhost

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"raycast/internal/engine"
	"raycast/internal/input"
	"raycast/internal/logger"
)

const halfBlock = '▀'

// Terminals only report key presses, so a key counts as held for this long
// after its last (auto-repeated) press.
const holdFor = 150 * time.Millisecond

type action int

const (
	actForward action = iota
	actBackward
	actLeft
	actRight
	actLookUp
	actLookDown
	actRise
	actFall
	actCount
)

var runeActions = map[rune]action{
	'w': actForward,
	's': actBackward,
	'a': actLeft,
	'd': actRight,
	'q': actLookUp,
	'z': actLookDown,
	'e': actRise,
	'c': actFall,
}

var keyActions = map[tcell.Key]action{
	tcell.KeyUp:    actForward,
	tcell.KeyDown:  actBackward,
	tcell.KeyLeft:  actLeft,
	tcell.KeyRight: actRight,
	tcell.KeyPgUp:  actLookUp,
	tcell.KeyPgDn:  actLookDown,
}

type Host struct {
	screen tcell.Screen
	engine *engine.Engine
	tps    int

	held    [actCount]time.Time
	toggles input.State
	now     func() time.Time
}

// Open creates and initialises the terminal screen.
func Open() (tcell.Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("termhost: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("termhost: init: %w", err)
	}
	s.HideCursor()
	return s, nil
}

func New(s tcell.Screen, e *engine.Engine, tps int) *Host {
	if tps <= 0 {
		tps = 30
	}
	return &Host{screen: s, engine: e, tps: tps, now: time.Now}
}

// Run renders at the configured rate until escape, ctrl-c, the screen
// closing or ctx being done.
func (h *Host) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 32)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(h.tps))
	defer ticker.Stop()

	logger.Log.WithField("tps", h.tps).Info("starting terminal host")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if h.handle(ev) {
				return nil
			}
		case <-ticker.C:
			h.engine.Frame(h.state())
			h.draw()
			h.screen.Show()
		}
	}
}

// handle records one event and reports whether the host should stop.
func (h *Host) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		h.screen.Sync()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyTab:
			h.toggles.ToggleMap = true
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'f':
				h.toggles.ToggleCeiling = true
			case 'p':
				h.toggles.Pause = true
			default:
				if a, ok := runeActions[ev.Rune()]; ok {
					h.held[a] = h.now().Add(holdFor)
				}
			}
			return false
		}
		if a, ok := keyActions[ev.Key()]; ok {
			h.held[a] = h.now().Add(holdFor)
		}
	}
	return false
}

// state builds this frame's snapshot; toggles are consumed.
func (h *Host) state() input.State {
	now := h.now()
	down := func(a action) bool { return now.Before(h.held[a]) }

	s := h.toggles
	h.toggles = input.State{}

	s.Forward = down(actForward)
	s.Backward = down(actBackward)
	s.Left = down(actLeft)
	s.Right = down(actRight)
	s.LookUp = down(actLookUp)
	s.LookDown = down(actLookDown)
	s.Rise = down(actRise)
	s.Fall = down(actFall)
	return s
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// draw samples the canvas into every cell but the last row, which holds
// the status line.
func (h *Host) draw() {
	cols, rows := h.screen.Size()
	view := rows - 1
	if cols <= 0 || view <= 0 {
		return
	}

	c := h.engine.Canvas()
	w, ht := c.Width(), c.Height()
	for cy := 0; cy < view; cy++ {
		top := (2 * cy) * ht / (2 * view)
		bottom := (2*cy + 1) * ht / (2 * view)
		for cx := 0; cx < cols; cx++ {
			x := cx * w / cols
			style := tcell.StyleDefault.
				Foreground(rgb(c.At(x, top))).
				Background(rgb(c.At(x, bottom)))
			h.screen.SetContent(cx, cy, halfBlock, nil, style)
		}
	}
	h.status(view, cols)
}

func (h *Host) status(y, cols int) {
	s := h.engine.Stats()
	mode := "ceiling"
	if s.NoCeiling {
		mode = "sky"
	}
	line := fmt.Sprintf(" pos %.0f,%.0f  heading %.1f°  %s  frame %d  ·  wasd move  q/z look  e/c fly  f ceiling  esc quit",
		s.X, s.Y, s.Heading, mode, s.Frames)
	line = runewidth.FillRight(runewidth.Truncate(line, cols, "…"), cols)

	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	x := 0
	for _, r := range line {
		if x >= cols {
			break
		}
		h.screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}
