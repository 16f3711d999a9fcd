// Package render draws a frame into the canvas: textured wall slices,
// floor and ceiling casting, billboards and the overhead debug map.
package render

import (
	"math"

	"raycast/internal/canvas"
	"raycast/internal/texture"
	"raycast/internal/trig"
)

const (
	// BaseLight shades vertical hits; horizontal hits use BaseLight-50.
	BaseLight = 180.0

	floorLight   = 150.0
	ceilingLight = 100.0
)

// PlaneDistance is the distance from the eye to the projection plane for a
// 60 degree field of view: 277 for a 320 pixel wide plane.
func PlaneDistance(width int) float64 {
	return math.Floor(float64(width/2) / math.Tan(math.Pi/6))
}

type Renderer struct {
	width, height int
	tables        *trig.Tables
	canvas        *canvas.Canvas
	store         *texture.Store
	planeDist     float64

	// reused across frames
	hits    []Hit
	visible []Drawable
}

// New binds a renderer to its canvas and texture store. The canvas size is
// the projection plane size.
func New(t *trig.Tables, c *canvas.Canvas, s *texture.Store) *Renderer {
	return &Renderer{
		width:     c.Width(),
		height:    c.Height(),
		tables:    t,
		canvas:    c,
		store:     s,
		planeDist: PlaneDistance(c.Width()),
		hits:      make([]Hit, c.Width()),
	}
}

// shade scales a channel by a brightness factor, saturating at both ends.
func shade(v uint8, b float64) uint8 {
	f := float64(v) * b
	switch {
	case f >= 255:
		return 255
	case f > 0:
		return uint8(f)
	}
	return 0
}
