//go:build sdl

// Package sdlhost runs the engine in an SDL2 window, streaming the canvas
// into a texture whose pixel format matches the canvas channel order.
package sdlhost

import (
	"fmt"
	"time"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"raycast/internal/canvas"
	"raycast/internal/engine"
	"raycast/internal/input"
	"raycast/internal/logger"
)

// Available reports whether this binary was built with SDL support.
const Available = true

type Options struct {
	Title string
	Scale float64
	TPS   int
}

type Host struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	engine   *engine.Engine
	opts     Options

	prev input.State
}

// pixelFormat maps the canvas byte order to the SDL format with the same
// memory layout on a little-endian machine.
func pixelFormat(o canvas.ChannelOrder) uint32 {
	if o == canvas.RGBA {
		return uint32(sdl.PIXELFORMAT_ABGR8888)
	}
	return uint32(sdl.PIXELFORMAT_ARGB8888)
}

func New(e *engine.Engine, opts Options) (*Host, error) {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.TPS <= 0 {
		opts.TPS = 30
	}

	if err := sdl.Init(uint32(sdl.INIT_VIDEO)); err != nil {
		return nil, fmt.Errorf("sdlhost: init: %w", err)
	}

	w := int32(float64(e.Width()) * opts.Scale)
	h := int32(float64(e.Height()) * opts.Scale)
	window, err := sdl.CreateWindow(opts.Title, int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED),
		w, h, uint32(sdl.WINDOW_SHOWN))
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("sdlhost: window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, uint32(sdl.RENDERER_ACCELERATED))
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("sdlhost: renderer: %w", err)
	}

	texture, err := renderer.CreateTexture(pixelFormat(e.Canvas().Order()), int(sdl.TEXTUREACCESS_STREAMING),
		int32(e.Width()), int32(e.Height()))
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("sdlhost: texture: %w", err)
	}

	return &Host{
		window:   window,
		renderer: renderer,
		texture:  texture,
		engine:   e,
		opts:     opts,
	}, nil
}

func (h *Host) Run() error {
	frame := time.Second / time.Duration(h.opts.TPS)
	pix := h.engine.Pixels()
	pitch := h.engine.Width() * canvas.BytesPerPixel

	logger.Log.WithField("tps", h.opts.TPS).Info("starting sdl host")
	for {
		start := time.Now()
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			if _, ok := event.(*sdl.QuitEvent); ok {
				return nil
			}
		}

		in := h.state()
		if in.Quit {
			return nil
		}
		h.engine.Frame(in)

		if err := h.texture.Update(nil, unsafe.Pointer(&pix[0]), pitch); err != nil {
			return fmt.Errorf("sdlhost: upload: %w", err)
		}
		h.renderer.Clear()
		if err := h.renderer.Copy(h.texture, nil, nil); err != nil {
			return fmt.Errorf("sdlhost: copy: %w", err)
		}
		h.renderer.Present()

		if d := frame - time.Since(start); d > 0 {
			sdl.Delay(uint32(d / time.Millisecond))
		}
	}
}

// state reads the keyboard; toggles fire on the frame a key goes down.
func (h *Host) state() input.State {
	keys := sdl.GetKeyboardState()
	down := func(codes ...sdl.Scancode) bool {
		for _, c := range codes {
			if keys[c] == 1 {
				return true
			}
		}
		return false
	}

	s := input.State{
		Forward:  down(sdl.SCANCODE_W, sdl.SCANCODE_UP),
		Backward: down(sdl.SCANCODE_S, sdl.SCANCODE_DOWN),
		Left:     down(sdl.SCANCODE_A, sdl.SCANCODE_LEFT),
		Right:    down(sdl.SCANCODE_D, sdl.SCANCODE_RIGHT),
		LookUp:   down(sdl.SCANCODE_Q),
		LookDown: down(sdl.SCANCODE_Z),
		Rise:     down(sdl.SCANCODE_E),
		Fall:     down(sdl.SCANCODE_C),

		ToggleCeiling: down(sdl.SCANCODE_F),
		ToggleMap:     down(sdl.SCANCODE_TAB),
		Pause:         down(sdl.SCANCODE_P),
		Quit:          down(sdl.SCANCODE_ESCAPE),
	}

	raw := s
	s.ToggleCeiling = raw.ToggleCeiling && !h.prev.ToggleCeiling
	s.ToggleMap = raw.ToggleMap && !h.prev.ToggleMap
	s.Pause = raw.Pause && !h.prev.Pause
	h.prev = raw
	return s
}

func (h *Host) Destroy() {
	h.texture.Destroy()
	h.renderer.Destroy()
	h.window.Destroy()
	sdl.Quit()
}
