// Package movement applies one frame of input to the player: turning,
// walking with per-axis wall collision, looking up and down, and flying.
package movement

import (
	"math"

	"github.com/jinzhu/copier"

	"raycast/internal/input"
	"raycast/internal/player"
	"raycast/internal/trig"
	"raycast/internal/world"
)

const (
	// MinDistanceToWall is the clearance kept between the player and a
	// neighbouring solid tile.
	MinDistanceToWall = 8

	LookStep = 15
	FlyStep  = 1
)

// Step returns the player after one frame of input. p is not modified.
func Step(in input.State, p player.Player, m *world.Map, t *trig.Tables, screenHeight int) player.Player {
	var next player.Player
	if err := copier.Copy(&next, &p); err != nil {
		return p
	}

	if in.Left {
		next.Turn(t, -t.Angle5)
	} else if in.Right {
		next.Turn(t, t.Angle5)
	}

	var dx, dy float64
	if in.Forward {
		dx = math.Round(t.Cos[next.Arc] * next.Speed)
		dy = math.Round(t.Sin[next.Arc] * next.Speed)
	} else if in.Backward {
		dx = -math.Round(t.Cos[next.Arc] * next.Speed)
		dy = -math.Round(t.Sin[next.Arc] * next.Speed)
	}
	next.X, next.Y = collide(m, p.X, p.Y, dx, dy)

	if in.LookUp {
		next.Look(LookStep, screenHeight)
	} else if in.LookDown {
		next.Look(-LookStep, screenHeight)
	}

	if in.Rise {
		next.Fly(FlyStep)
	} else if in.Fall {
		next.Fly(-FlyStep)
	}

	return next
}

// collide moves (x, y) by (dx, dy), cancelling each axis that would bring
// the player closer than MinDistanceToWall to the tile it is heading for,
// then reverting any axis whose move still ends inside a solid cell.
func collide(m *world.Map, x, y, dx, dy float64) (float64, float64) {
	const tile = world.TileSize

	nx, ny := x+dx, y+dy
	cx := int(math.Floor(x / tile))
	cy := int(math.Floor(y / tile))

	tooClose := func(offset float64) bool {
		return offset < MinDistanceToWall || offset > tile-MinDistanceToWall
	}
	offX := math.Mod(nx, tile)
	offY := math.Mod(ny, tile)

	if dx > 0.5 {
		if m.Blocked(cx+1, cy) && tooClose(offX) {
			nx = x
		}
	} else if dx < -0.5 {
		if m.Blocked(cx-1, cy) && tooClose(offX) {
			nx = x
		}
	}

	if dy < -0.5 {
		if m.Blocked(cx, cy-1) && tooClose(offY) {
			ny = y
		}
	} else if dy > 0.5 {
		if m.Blocked(cx, cy+1) && tooClose(offY) {
			ny = y
		}
	}

	ncx := int(math.Floor(nx / tile))
	ncy := int(math.Floor(ny / tile))
	if m.Blocked(ncx, ncy) {
		if ncx != cx && math.Abs(dx) >= 0.5 {
			nx = x
		}
		if ncy != cy && math.Abs(dy) > 0.5 {
			ny = y
		}
	}
	return nx, ny
}
