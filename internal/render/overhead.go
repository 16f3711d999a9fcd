package render

import (
	"image/color"
	"math"

	"raycast/internal/player"
	"raycast/internal/world"
)

// MapCell is the size in pixels of one tile on the overhead map.
const MapCell = 5

var (
	mapWall       = color.RGBA{0, 0, 0, 255}
	mapDoor       = color.RGBA{200, 50, 50, 255}
	rayHorizontal = color.RGBA{0, 255, 0, 255}
	rayVertical   = color.RGBA{0, 0, 255, 255}
	headingColor  = color.RGBA{255, 0, 0, 255}
	headingLength = 10.0
)

// DrawOverheadMap draws the rays of the last wall pass, the solid cells and
// the player's heading in the top left corner.
func (r *Renderer) DrawOverheadMap(p *player.Player, m *world.Map, hits []Hit) {
	const tile = world.TileSize
	px := p.X / tile * MapCell
	py := p.Y / tile * MapCell
	x0, y0 := int(math.Floor(px)), int(math.Floor(py))

	for _, h := range hits {
		if h.Miss() {
			continue
		}
		clr := rayHorizontal
		if h.Vertical {
			clr = rayVertical
		}
		r.canvas.Line(x0, y0, int(math.Floor(h.X*MapCell/tile)), int(math.Floor(h.Y*MapCell/tile)), clr)
	}

	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			cell, _ := m.At(x, y)
			if !cell.Solid() {
				continue
			}
			clr := mapWall
			if cell.IsDoor() {
				clr = mapDoor
			}
			r.canvas.FillRect(x*MapCell, y*MapCell, MapCell, MapCell, clr)
		}
	}

	t := r.tables
	r.canvas.Line(x0, y0,
		int(math.Floor(px+t.Cos[p.Arc]*headingLength)),
		int(math.Floor(py+t.Sin[p.Arc]*headingLength)),
		headingColor)
}
