package player

import (
	"math"

	"github.com/harbdog/raycaster-go/geom"

	"raycast/internal/trig"
	"raycast/internal/world"
)

const (
	StartHeight = 32
	StartSpeed  = 16

	// vertical motion keeps the eye a little inside the floor and ceiling
	minHeight = -5
	maxHeight = world.WallHeight - 5
)

// Player is the camera. Angle and Arc always describe the same heading.
type Player struct {
	X, Y    float64
	Angle   float64
	Arc     int
	YCenter float64
	Height  float64
	Speed   float64
}

// New places the player at the map's spawn (or the demo default) with the
// look center on the middle screen row.
func New(t *trig.Tables, spawn *world.Spawn, screenHeight int) Player {
	s := world.Spawn{X: 100, Y: 160, Heading: 60}
	if spawn != nil {
		s = *spawn
	}

	p := Player{
		X:       s.X,
		Y:       s.Y,
		YCenter: float64(screenHeight) / 2,
		Height:  StartHeight,
		Speed:   StartSpeed,
	}
	p.SetArc(t, t.RadToArc(s.Heading*math.Pi/180))
	return p
}

// SetArc sets the heading, wrapping it into range and re-deriving Angle.
func (p *Player) SetArc(t *trig.Tables, arc int) {
	p.Arc = t.Wrap(arc)
	p.Angle = t.ArcToRad(p.Arc)
}

func (p *Player) Turn(t *trig.Tables, delta int) {
	p.SetArc(t, p.Arc+delta)
}

// Look shifts the projection center, clamped to [-h, 1.5h).
func (p *Player) Look(delta float64, screenHeight int) {
	h := float64(screenHeight)
	p.YCenter = geom.Clamp(p.YCenter+delta, -h, h*1.5-1)
}

// Fly raises or lowers the eye, clamped to the room height.
func (p *Player) Fly(delta float64) {
	p.Height = geom.Clamp(p.Height+delta, minHeight, maxHeight)
}

// Cell returns the tile the player stands in.
func (p *Player) Cell() (int, int) {
	return int(math.Floor(p.X / world.TileSize)), int(math.Floor(p.Y / world.TileSize))
}

// DistanceCache holds the perpendicular wall distance of every screen column
// for the current frame.
type DistanceCache []float64

func NewDistanceCache(width int) DistanceCache {
	c := make(DistanceCache, width)
	c.Reset()
	return c
}

func (c DistanceCache) Reset() {
	for i := range c {
		c[i] = math.MaxFloat64
	}
}
