package render

import (
	"math"

	"raycast/internal/canvas"
	"raycast/internal/player"
	"raycast/internal/texture"
	"raycast/internal/world"
)

// drawFloor casts the rows below the wall slice onto the floor plane.
func (r *Renderer) drawFloor(p *player.Player, m *world.Map, col, arc int, bottom float64) {
	t := r.tables
	start := int(math.Floor(bottom))
	if start < 0 {
		start = 0
	}

	for row := start; row < r.height; row++ {
		straight := p.Height / (float64(row) - p.YCenter) * r.planeDist
		actual := straight * t.Fish[col]
		if !(actual > 0) || math.IsInf(actual, 0) {
			continue
		}
		r.castPlane(p, m.FloorTexture, m, col, row, arc, actual, floorLight/actual)
	}
}

// drawCeiling casts the rows above the wall slice, walking upwards.
func (r *Renderer) drawCeiling(p *player.Player, m *world.Map, col, arc int, top float64) {
	t := r.tables
	start := int(math.Floor(top))
	if start >= r.height {
		start = r.height - 1
	}

	for row := start; row >= 0; row-- {
		ratio := (world.WallHeight - p.Height) / (p.YCenter - float64(row))
		diagonal := math.Floor(r.planeDist * ratio * t.Fish[col])
		if !(diagonal > 0) || math.IsInf(diagonal, 0) {
			continue
		}
		r.castPlane(p, m.CeilingTexture, m, col, row, arc, diagonal, ceilingLight/diagonal)
	}
}

// castPlane projects distance along the column's ray to a world point and
// copies the texel of the covering cell to (col, row).
func (r *Renderer) castPlane(p *player.Player, layer func(x, y int) int, m *world.Map, col, row, arc int, distance, brightness float64) {
	t := r.tables
	const tile = world.TileSize

	xEnd := int(math.Floor(distance*t.Cos[arc])) + int(p.X)
	yEnd := int(math.Floor(distance*t.Sin[arc])) + int(p.Y)
	cx := int(math.Floor(float64(xEnd) / tile))
	cy := int(math.Floor(float64(yEnd) / tile))
	if _, ok := m.At(cx, cy); !ok {
		return
	}

	tex, ok := r.store.Lookup(layer(cx, cy))
	if !ok {
		return
	}
	i := texel(tex, xEnd%tile, yEnd%tile)
	if i < 0 {
		return
	}
	px := tex.Data[i : i+canvas.BytesPerPixel]
	r.canvas.Set(col, row, shade(px[0], brightness), shade(px[1], brightness), shade(px[2], brightness), px[3])
}

// texel returns the byte offset of the texture pixel at tile offset (u, v),
// or -1 when the texture is too small to hold it.
func texel(tex *texture.Texture, u, v int) int {
	if tex.Width == 0 || tex.Height == 0 {
		return -1
	}
	i := ((v%tex.Height)*tex.Width + u%tex.Width) * canvas.BytesPerPixel
	if i < 0 || i+canvas.BytesPerPixel > len(tex.Data) {
		return -1
	}
	return i
}
