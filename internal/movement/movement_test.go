package movement

import (
	"math"
	"testing"

	"raycast/internal/input"
	"raycast/internal/player"
	"raycast/internal/trig"
	"raycast/internal/world"
)

func room(t *testing.T, rows ...string) *world.Map {
	t.Helper()
	m, err := world.Layout{Rows: rows, Textures: world.TextureSet{Wall: 1}}.Build()
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func at(tables *trig.Tables, x, y float64, arc int) player.Player {
	p := player.Player{X: x, Y: y, YCenter: 100, Height: player.StartHeight, Speed: player.StartSpeed}
	p.SetArc(tables, arc)
	return p
}

var open = []string{
	"#######",
	"#.....#",
	"#.....#",
	"#.....#",
	"#.....#",
	"#.....#",
	"#######",
}

func TestStepForward(t *testing.T) {
	tables := trig.Build(320, world.TileSize)
	m := room(t, open...)

	tests := []struct {
		name   string
		arc    int
		in     input.State
		dx, dy float64
	}{
		{"east", 0, input.State{Forward: true}, 16, 0},
		{"south", tables.Angle90, input.State{Forward: true}, 0, 16},
		{"sixty degrees", tables.Angle60, input.State{Forward: true}, 8, 14},
		{"backward", 0, input.State{Backward: true}, -16, 0},
		{"idle", 0, input.State{}, 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := at(tables, 224, 224, tc.arc)
			got := Step(tc.in, p, m, tables, 200)
			if got.X-p.X != tc.dx || got.Y-p.Y != tc.dy {
				t.Errorf("moved (%v, %v), want (%v, %v)", got.X-p.X, got.Y-p.Y, tc.dx, tc.dy)
			}
			wantDX := math.Round(tables.Cos[tc.arc] * p.Speed)
			if tc.in.Forward && got.X-p.X != wantDX {
				t.Errorf("dx = %v, want round(cos*speed) = %v", got.X-p.X, wantDX)
			}
		})
	}
}

func TestStepDoesNotMutateInput(t *testing.T) {
	tables := trig.Build(320, world.TileSize)
	m := room(t, open...)
	p := at(tables, 224, 224, 0)
	before := p

	Step(input.State{Forward: true, Left: true, LookUp: true, Rise: true}, p, m, tables, 200)
	if p != before {
		t.Errorf("input player changed: %+v", p)
	}
}

func TestStepCollision(t *testing.T) {
	tables := trig.Build(320, world.TileSize)
	m := room(t,
		"#####",
		"#...#",
		"#...#",
		"#...#",
		"#####",
	)

	tests := []struct {
		name string
		x, y float64
		arc  int
		in   input.State
	}{
		// the clearance check cancels the move
		{"east inside clearance", 236, 96, 0, input.State{Forward: true}},
		// the destination check reverts it
		{"east into wall", 250, 96, 0, input.State{Forward: true}},
		{"west inside clearance", 84, 96, 0, input.State{Backward: true}},
		{"north inside clearance", 160, 84, tables.Angle270, input.State{Forward: true}},
		{"south inside clearance", 160, 236, tables.Angle90, input.State{Forward: true}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := at(tables, tc.x, tc.y, tc.arc)
			got := Step(tc.in, p, m, tables, 200)
			if got.X != p.X || got.Y != p.Y {
				t.Errorf("moved to (%v, %v) from (%v, %v)", got.X, got.Y, p.X, p.Y)
			}
		})
	}
}

func TestStepSlidesAlongWall(t *testing.T) {
	tables := trig.Build(320, world.TileSize)
	m := room(t,
		"#####",
		"#...#",
		"#...#",
		"#...#",
		"#####",
	)

	// heading south-east against the east wall keeps the southward part
	p := at(tables, 236, 96, tables.Angle30+tables.Angle5)
	got := Step(input.State{Forward: true}, p, m, tables, 200)
	if got.X != p.X {
		t.Errorf("x moved to %v", got.X)
	}
	if got.Y <= p.Y {
		t.Errorf("y = %v, want more than %v", got.Y, p.Y)
	}
}

func TestStepTurn(t *testing.T) {
	tables := trig.Build(320, world.TileSize)
	m := room(t, open...)

	tests := []struct {
		name string
		arc  int
		in   input.State
		want int
	}{
		{"left wraps", 0, input.State{Left: true}, tables.Angle360 - tables.Angle5},
		{"right", 0, input.State{Right: true}, tables.Angle5},
		{"right wraps", tables.Angle360 - 1, input.State{Right: true}, tables.Angle5 - 1},
		{"left wins", 100, input.State{Left: true, Right: true}, 100 - tables.Angle5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Step(tc.in, at(tables, 224, 224, tc.arc), m, tables, 200)
			if got.Arc != tc.want {
				t.Errorf("arc = %d, want %d", got.Arc, tc.want)
			}
			if got.Angle != tables.ArcToRad(tc.want) {
				t.Errorf("angle = %v, want %v", got.Angle, tables.ArcToRad(tc.want))
			}
		})
	}
}

func TestStepLookAndFly(t *testing.T) {
	tables := trig.Build(320, world.TileSize)
	m := room(t, open...)

	p := at(tables, 224, 224, 0)
	up := Step(input.State{LookUp: true, Rise: true}, p, m, tables, 200)
	if up.YCenter != p.YCenter+LookStep || up.Height != p.Height+FlyStep {
		t.Errorf("look/fly = %v/%v", up.YCenter, up.Height)
	}

	p.YCenter = 298
	p.Height = world.WallHeight - 5
	clamped := Step(input.State{LookUp: true, Rise: true}, p, m, tables, 200)
	if clamped.YCenter != 299 {
		t.Errorf("look clamp = %v, want 299", clamped.YCenter)
	}
	if clamped.Height != world.WallHeight-5 {
		t.Errorf("fly clamp = %v", clamped.Height)
	}

	p.YCenter = -195
	p.Height = -5
	low := Step(input.State{LookDown: true, Fall: true}, p, m, tables, 200)
	if low.YCenter != -200 || low.Height != -5 {
		t.Errorf("low clamp = %v/%v", low.YCenter, low.Height)
	}
}
