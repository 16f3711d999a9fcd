//go:build !sdl

package sdlhost

import (
	"errors"

	"raycast/internal/engine"
)

// Available reports whether this binary was built with SDL support.
const Available = false

var ErrUnavailable = errors.New("sdlhost: built without the sdl tag")

type Options struct {
	Title string
	Scale float64
	TPS   int
}

type Host struct{}

func New(e *engine.Engine, opts Options) (*Host, error) {
	return nil, ErrUnavailable
}

func (h *Host) Run() error { return ErrUnavailable }

func (h *Host) Destroy() {}
