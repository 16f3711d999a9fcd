package render

import (
	"math"

	"raycast/internal/player"
	"raycast/internal/world"
)

// Hit is the result of one ray. Distance is the raw ray length, or
// math.MaxFloat64 when the ray left the map or ran along a grid axis.
type Hit struct {
	Distance float64
	Vertical bool

	// X, Y is where the ray met the grid line, in world pixels.
	X, Y float64
	// Offset is the texture column: the intersection modulo the tile size.
	Offset float64

	CellX, CellY int
}

func (h Hit) Miss() bool { return h.Distance == math.MaxFloat64 }

// CastRay searches both grid axes along arc and returns the nearer hit.
func (r *Renderer) CastRay(p *player.Player, m *world.Map, arc int) Hit {
	h := r.castHorizontal(p, m, arc)
	v := r.castVertical(p, m, arc)
	if h.Distance < v.Distance {
		return h
	}
	return v
}

// castHorizontal walks the constant-y grid lines.
func (r *Renderer) castHorizontal(p *player.Player, m *world.Map, arc int) Hit {
	t := r.tables
	const tile = world.TileSize

	var grid, next float64
	if arc > t.Angle0 && arc < t.Angle180 {
		// facing down
		grid = math.Floor(p.Y/tile)*tile + tile
		next = tile
	} else {
		grid = math.Floor(p.Y/tile) * tile
		next = -tile
	}
	xi := t.ITan[arc]*(grid-p.Y) + p.X
	if next < 0 {
		// look at the cell above the line
		grid--
	}

	hit := Hit{Distance: math.MaxFloat64}
	if t.ParallelX(arc) {
		hit.X, hit.Y = xi, grid
		return hit
	}

	step := t.XStep[arc]
	for {
		cx := int(math.Floor(xi / tile))
		cy := int(math.Floor(grid / tile))
		cell, ok := m.At(cx, cy)
		if !ok {
			hit.X, hit.Y = xi, grid
			return hit
		}
		if cell.Solid() {
			d := xi
			if cell.IsDoor() {
				// the door plane sits half a step into the cell
				if math.Mod(xi, tile)+step/2 < float64(m.DoorPosition(cell.DoorIndex())) {
					xi += step
					grid += next
					continue
				}
				d += step / 2
			}
			return Hit{
				Distance: (d - p.X) * t.ICos[arc],
				X:        xi,
				Y:        grid,
				Offset:   math.Mod(xi, tile),
				CellX:    cx,
				CellY:    cy,
			}
		}
		xi += step
		grid += next
	}
}

// castVertical walks the constant-x grid lines.
func (r *Renderer) castVertical(p *player.Player, m *world.Map, arc int) Hit {
	t := r.tables
	const tile = world.TileSize

	var grid, next float64
	if arc < t.Angle90 || arc > t.Angle270 {
		// facing right
		grid = tile + math.Floor(p.X/tile)*tile
		next = tile
	} else {
		grid = math.Floor(p.X/tile) * tile
		next = -tile
	}
	yi := t.Tan[arc]*(grid-p.X) + p.Y
	if next < 0 {
		grid--
	}

	hit := Hit{Distance: math.MaxFloat64, Vertical: true}
	if t.ParallelY(arc) {
		hit.X, hit.Y = grid, yi
		return hit
	}

	step := t.YStep[arc]
	for {
		cx := int(math.Floor(grid / tile))
		cy := int(math.Floor(yi / tile))
		cell, ok := m.At(cx, cy)
		if !ok {
			hit.X, hit.Y = grid, yi
			return hit
		}
		if cell.Solid() {
			d := yi
			if cell.IsDoor() {
				if math.Mod(yi, tile)+step/2 < float64(m.DoorPosition(cell.DoorIndex())) {
					yi += step
					grid += next
					continue
				}
				d += step / 2
			}
			return Hit{
				Distance: (d - p.Y) * t.ISin[arc],
				Vertical: true,
				X:        grid,
				Y:        yi,
				Offset:   math.Mod(yi, tile),
				CellX:    cx,
				CellY:    cy,
			}
		}
		yi += step
		grid += next
	}
}

// RenderWalls casts one ray per screen column, draws the wall slice and the
// floor and ceiling around it, and records each column's perpendicular wall
// distance in cache. The ray arc advances by one unit per column. The
// returned hits are reused by the next call.
func (r *Renderer) RenderWalls(p *player.Player, m *world.Map, cache player.DistanceCache, noCeiling bool) []Hit {
	t := r.tables
	arc := t.Wrap(p.Arc - t.Angle30)

	for col := 0; col < r.width; col++ {
		hit := r.CastRay(p, m, arc)
		r.hits[col] = hit

		dist := hit.Distance / t.Fish[col]
		cache[col] = dist

		top, bottom := p.YCenter, p.YCenter
		if !hit.Miss() {
			ratio := r.planeDist / dist
			bottom = ratio*p.Height + p.YCenter
			top = bottom - r.planeDist*world.WallHeight/dist

			light := BaseLight
			if !hit.Vertical {
				light -= 50
			}
			r.DrawSlice(float64(col), top, bottom-top+1, hit.Offset, light/math.Floor(dist), m.WallTexture(hit.CellX, hit.CellY))
		}

		r.drawFloor(p, m, col, arc, bottom)
		if !noCeiling {
			r.drawCeiling(p, m, col, arc, top)
		}

		arc++
		if arc >= t.Angle360 {
			arc -= t.Angle360
		}
	}
	return r.hits
}
