// Package canvas is the engine's frame buffer: a flat 4 bytes per pixel slice
// in a channel order chosen once at startup.
package canvas

import (
	"fmt"
	"image"
	"image/color"
	"strings"
)

const BytesPerPixel = 4

// ChannelOrder is the byte layout of one pixel in the buffer.
type ChannelOrder int

const (
	// BGRA is the little-endian layout of a 0xAARRGGBB word ("0RGB").
	BGRA ChannelOrder = iota
	// RGBA is the byte order browsers and ebiten expect.
	RGBA
)

func ParseChannelOrder(s string) (ChannelOrder, error) {
	switch strings.ToLower(s) {
	case "bgra", "0rgb", "argb":
		return BGRA, nil
	case "rgba", "abgr":
		return RGBA, nil
	}
	return 0, fmt.Errorf("canvas: unknown channel order %q", s)
}

func (o ChannelOrder) String() string {
	if o == RGBA {
		return "rgba"
	}
	return "bgra"
}

type Canvas struct {
	pix    []byte
	width  int
	height int
	order  ChannelOrder
}

func New(width, height int, order ChannelOrder) *Canvas {
	return &Canvas{
		pix:    make([]byte, width*height*BytesPerPixel),
		width:  width,
		height: height,
		order:  order,
	}
}

func (c *Canvas) Width() int          { return c.width }
func (c *Canvas) Height() int         { return c.height }
func (c *Canvas) Order() ChannelOrder { return c.order }

// Pix is the raw buffer. Callers must treat it as read-only.
func (c *Canvas) Pix() []byte { return c.pix }

func (c *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.width, c.height)
}

// Index returns the byte offset of pixel (x, y); it may fall outside the buffer.
func (c *Canvas) Index(x, y int) int {
	return (y*c.width + x) * BytesPerPixel
}

// Stride is the byte distance between two vertically adjacent pixels.
func (c *Canvas) Stride() int {
	return c.width * BytesPerPixel
}

// PutIndex writes one pixel at a byte offset, ignoring offsets outside the buffer.
func (c *Canvas) PutIndex(i int, r, g, b, a uint8) {
	if i < 0 || i+BytesPerPixel > len(c.pix) {
		return
	}
	if c.order == RGBA {
		c.pix[i], c.pix[i+1], c.pix[i+2], c.pix[i+3] = r, g, b, a
	} else {
		c.pix[i], c.pix[i+1], c.pix[i+2], c.pix[i+3] = b, g, r, a
	}
}

func (c *Canvas) Set(x, y int, r, g, b, a uint8) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.PutIndex(c.Index(x, y), r, g, b, a)
}

// At reads a pixel back in RGBA regardless of the buffer order.
func (c *Canvas) At(x, y int) color.RGBA {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return color.RGBA{}
	}
	i := c.Index(x, y)
	p := c.pix[i : i+BytesPerPixel]
	if c.order == RGBA {
		return color.RGBA{p[0], p[1], p[2], p[3]}
	}
	return color.RGBA{p[2], p[1], p[0], p[3]}
}

func (c *Canvas) Clear() {
	for i := range c.pix {
		c.pix[i] = 0
	}
}

// FillRect paints a solid rectangle, clipped to the canvas.
func (c *Canvas) FillRect(x, y, w, h int, clr color.RGBA) {
	for dy := y; dy < y+h; dy++ {
		for dx := x; dx < x+w; dx++ {
			c.Set(dx, dy, clr.R, clr.G, clr.B, clr.A)
		}
	}
}

// Line draws a Bresenham line from (x0, y0) up to but not including (x1, y1).
func (c *Canvas) Line(x0, y0, x1, y1 int, clr color.RGBA) {
	dx, dy := x1-x0, y1-y0
	sx, sy := 1, 1
	if dx < 0 {
		dx, sx = -dx, -1
	}
	if dy < 0 {
		dy, sy = -dy, -1
	}

	x, y, e := x0, y0, 0
	if dx > dy {
		for i := 0; i < dx; i++ {
			c.Set(x, y, clr.R, clr.G, clr.B, clr.A)
			x += sx
			e += dy
			if e >= dx {
				e -= dx
				y += sy
			}
		}
		return
	}
	for i := 0; i < dy; i++ {
		c.Set(x, y, clr.R, clr.G, clr.B, clr.A)
		y += sy
		e += dx
		if e >= dy {
			e -= dy
			x += sx
		}
	}
}

// CopyRGBA writes the frame into dst in RGBA byte order, swizzling if the
// canvas is BGRA. dst must be at least len(Pix()).
func (c *Canvas) CopyRGBA(dst []byte) {
	if c.order == RGBA {
		copy(dst, c.pix)
		return
	}
	for i := 0; i+BytesPerPixel <= len(c.pix); i += BytesPerPixel {
		dst[i], dst[i+1], dst[i+2], dst[i+3] = c.pix[i+2], c.pix[i+1], c.pix[i], c.pix[i+3]
	}
}

// Image returns a copy of the frame as an *image.RGBA.
func (c *Canvas) Image() *image.RGBA {
	img := image.NewRGBA(c.Bounds())
	c.CopyRGBA(img.Pix)
	return img
}
