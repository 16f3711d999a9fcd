package render

import (
	"image/color"
	"math"
	"testing"

	"raycast/internal/canvas"
	"raycast/internal/player"
	"raycast/internal/texture"
	"raycast/internal/trig"
	"raycast/internal/world"
)

const (
	texWall = iota + 1
	texDoor
	texFloor
	texCeiling
	texSprite
	texSpriteFar
)

func solid(w, h int, r, g, b, a uint8) *texture.Texture {
	t := &texture.Texture{Width: w, Height: h, Data: make([]byte, w*h*4)}
	for i := 0; i < len(t.Data); i += 4 {
		t.Data[i], t.Data[i+1], t.Data[i+2], t.Data[i+3] = r, g, b, a
	}
	return t
}

func newRenderer(t *testing.T) (*Renderer, *texture.Store) {
	t.Helper()
	tables := trig.Build(320, world.TileSize)
	store := texture.NewStore()
	return New(tables, canvas.New(320, 200, canvas.RGBA), store), store
}

func buildMap(t *testing.T, rows ...string) *world.Map {
	t.Helper()
	m, err := world.Layout{
		Rows:     rows,
		Textures: world.TextureSet{Wall: texWall, Door: texDoor, Floor: texFloor, Ceiling: texCeiling},
	}.Build()
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func eye(x, y float64, arc int, tables *trig.Tables) *player.Player {
	p := &player.Player{X: x, Y: y, YCenter: 100, Height: 32, Speed: 16}
	p.SetArc(tables, arc)
	return p
}

func blank(c *canvas.Canvas) bool {
	for _, b := range c.Pix() {
		if b != 0 {
			return false
		}
	}
	return true
}

func TestPlaneDistance(t *testing.T) {
	if got := PlaneDistance(320); got != 277 {
		t.Errorf("PlaneDistance(320) = %v, want 277", got)
	}
}

func TestCastRayCorridor(t *testing.T) {
	r, _ := newRenderer(t)
	m := buildMap(t,
		"#######",
		"#.....#",
		"#######",
	)

	tests := []struct {
		name string
		arc  int
		want float64
	}{
		{"east to far wall", r.tables.Angle0, 384 - 96},
		{"west to near wall", r.tables.Angle180, 96 - 64},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			hit := r.CastRay(eye(96, 96, tc.arc, r.tables), m, tc.arc)
			if math.Abs(hit.Distance-tc.want) > 1e-3 {
				t.Errorf("distance = %v, want %v", hit.Distance, tc.want)
			}
			if !hit.Vertical {
				t.Error("corridor end should be a vertical hit")
			}
		})
	}
}

func TestCastRayAxisSentinel(t *testing.T) {
	r, _ := newRenderer(t)
	m := buildMap(t,
		"#######",
		"#.....#",
		"#######",
	)
	p := eye(96, 96, 0, r.tables)

	if h := r.castHorizontal(p, m, r.tables.Angle0); !h.Miss() {
		t.Errorf("horizontal search along arc 0 = %v, want sentinel", h.Distance)
	}
	if v := r.castVertical(p, m, r.tables.Angle90); !v.Miss() {
		t.Errorf("vertical search along arc 90 = %v, want sentinel", v.Distance)
	}
	// facing straight down still crosses the constant-y lines
	if h := r.castHorizontal(p, m, r.tables.Angle90); math.Abs(h.Distance-32) > 1e-3 {
		t.Errorf("horizontal search along arc 90 = %v, want 32", h.Distance)
	}

	outside := eye(-100, 96, r.tables.Angle180, r.tables)
	if h := r.CastRay(outside, m, r.tables.Angle180); !h.Miss() {
		t.Errorf("ray outside the map = %v, want sentinel", h.Distance)
	}
}

func TestCastRayDoor(t *testing.T) {
	r, _ := newRenderer(t)
	m := buildMap(t,
		"#######",
		"#..D..#",
		"#######",
	)
	p := eye(96, 96, 0, r.tables)

	tests := []struct {
		name     string
		position uint8
		want     float64
		cellX    int
	}{
		// the door plane is the middle of its cell
		{"closed", 0, 224 - 96, 3},
		{"half open", 16, 224 - 96, 3},
		{"open", world.TileSize, 384 - 96, 6},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := m.SetDoorPosition(0, tc.position); err != nil {
				t.Fatal(err)
			}
			hit := r.CastRay(p, m, 0)
			if math.Abs(hit.Distance-tc.want) > 1e-3 {
				t.Errorf("distance = %v, want %v", hit.Distance, tc.want)
			}
			if hit.CellX != tc.cellX {
				t.Errorf("cell x = %d, want %d", hit.CellX, tc.cellX)
			}
		})
	}
}

func TestDrawSlice(t *testing.T) {
	column := func(c *canvas.Canvas, x int) []bool {
		painted := make([]bool, c.Height())
		for y := range painted {
			painted[y] = c.At(x, y).A != 0
		}
		return painted
	}

	tests := []struct {
		name      string
		tex       *texture.Texture
		y, height float64
		rows      []int
	}{
		{"stretch", solid(2, 2, 100, 0, 0, 255), 10, 4, []int{10, 11, 12, 13}},
		{"shrink", solid(2, 8, 100, 0, 0, 255), 20, 2, []int{20, 21}},
		{"clip bottom", solid(2, 2, 100, 0, 0, 255), 198, 10, []int{198, 199}},
		{"zero height", solid(2, 2, 100, 0, 0, 255), 10, 0, nil},
		{"negative height", solid(2, 2, 100, 0, 0, 255), 10, -3, nil},
		{"nan height", solid(2, 2, 100, 0, 0, 255), 10, math.NaN(), nil},
		{"transparent", solid(2, 2, 100, 0, 0, 0), 10, 4, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, store := newRenderer(t)
			store.Put(texWall, tc.tex)

			r.DrawSlice(5, tc.y, tc.height, 0, 1, texWall)

			want := make([]bool, 200)
			for _, y := range tc.rows {
				want[y] = true
			}
			got := column(r.canvas, 5)
			for y := range want {
				if got[y] != want[y] {
					t.Errorf("row %d painted = %v, want %v", y, got[y], want[y])
				}
			}
		})
	}
}

func TestDrawSliceTopLeft(t *testing.T) {
	r, store := newRenderer(t)
	store.Put(texWall, solid(1, 1, 100, 0, 0, 255))

	r.DrawSlice(0, 0, 2, 0, 1, texWall)
	for y := 0; y < 2; y++ {
		if got := r.canvas.At(0, y); got != (color.RGBA{100, 0, 0, 255}) {
			t.Errorf("pixel (0,%d) = %v", y, got)
		}
	}

	// a slice starting above the screen only paints its visible rows
	r.canvas.Clear()
	r.DrawSlice(1, -3, 4, 0, 1, texWall)
	if got := r.canvas.At(1, 0); got.A == 0 {
		t.Error("visible row of a slice starting above the screen not drawn")
	}
	if got := r.canvas.At(1, 1); got.A != 0 {
		t.Errorf("pixel (1,1) = %v, want untouched", got)
	}
}

func TestDrawSliceTextureAbsent(t *testing.T) {
	r, _ := newRenderer(t)
	r.DrawSlice(5, 10, 50, 0, 1, texWall)
	if !blank(r.canvas) {
		t.Error("slice drawn without its texture")
	}
}

func TestDrawSliceBrightness(t *testing.T) {
	r, store := newRenderer(t)
	store.Put(texWall, solid(1, 1, 100, 200, 40, 255))

	r.DrawSlice(3, 3, 1, 0, 0.5, texWall)
	if got, want := r.canvas.At(3, 3), (color.RGBA{50, 100, 20, 255}); got != want {
		t.Errorf("pixel = %v, want %v", got, want)
	}

	r.DrawSlice(4, 3, 1, 0, 2, texWall)
	if got, want := r.canvas.At(4, 3), (color.RGBA{200, 255, 80, 255}); got != want {
		t.Errorf("saturated pixel = %v, want %v", got, want)
	}
}

func TestRenderWallsCache(t *testing.T) {
	r, _ := newRenderer(t)
	m := buildMap(t,
		"###",
		"#.#",
		"###",
	)
	cache := player.NewDistanceCache(320)

	hits := r.RenderWalls(eye(96, 96, 0, r.tables), m, cache, false)
	if len(hits) != 320 {
		t.Fatalf("hits = %d, want 320", len(hits))
	}
	if got := cache[160]; math.Abs(got-32) > 1e-3 {
		t.Errorf("center column distance = %v, want 32", got)
	}
	for col, d := range cache {
		if d >= math.MaxFloat64 || d <= 0 {
			t.Errorf("column %d distance = %v", col, d)
		}
	}
}

func TestRenderWallsCeilingToggle(t *testing.T) {
	m := buildMap(t,
		"#######",
		"#.....#",
		"#.....#",
		"#.....#",
		"#.....#",
		"#.....#",
		"#######",
	)

	tests := []struct {
		name      string
		noCeiling bool
	}{
		{"ceiling on", false},
		{"ceiling off", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, store := newRenderer(t)
			store.Put(texWall, solid(64, 64, 100, 0, 0, 255))
			store.Put(texFloor, solid(64, 64, 0, 100, 0, 255))
			store.Put(texCeiling, solid(64, 64, 0, 0, 100, 255))

			cache := player.NewDistanceCache(320)
			r.RenderWalls(eye(224, 224, 0, r.tables), m, cache, tc.noCeiling)

			if got := r.canvas.At(160, 100); got.R == 0 || got.G != 0 {
				t.Errorf("wall pixel = %v", got)
			}
			if got := r.canvas.At(160, 199); got.G == 0 {
				t.Errorf("floor pixel = %v", got)
			}
			ceiling := r.canvas.At(160, 0)
			if tc.noCeiling && ceiling.A != 0 {
				t.Errorf("ceiling drawn while off: %v", ceiling)
			}
			if !tc.noCeiling && ceiling.B == 0 {
				t.Errorf("ceiling pixel = %v", ceiling)
			}
		})
	}
}

func TestRenderSpritesOcclusion(t *testing.T) {
	tests := []struct {
		name  string
		wall  float64
		drawn bool
	}{
		{"wall behind sprite", 500, true},
		{"wall in front of sprite", 50, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, store := newRenderer(t)
			store.Put(texSprite, solid(16, 16, 255, 255, 255, 255))

			cache := player.NewDistanceCache(320)
			for i := range cache {
				cache[i] = tc.wall
			}
			objs := []Drawable{{X: 196, Y: 96, Z: 32, TextureWidth: 16, Width: 16, Height: 16, Texture: texSprite}}

			r.RenderSprites(eye(96, 96, 0, r.tables), objs, cache)

			if got := r.canvas.At(160, 100).A != 0; got != tc.drawn {
				t.Errorf("sprite drawn = %v, want %v", got, tc.drawn)
			}
			if math.Abs(objs[0].Distance-100) > 1e-9 {
				t.Errorf("distance = %v, want 100", objs[0].Distance)
			}
		})
	}
}

func TestRenderSpritesNearWallAtViewEdge(t *testing.T) {
	r, store := newRenderer(t)
	store.Put(texWall, solid(64, 64, 100, 0, 0, 255))
	store.Put(texSprite, solid(32, 32, 0, 255, 0, 255))
	m := buildMap(t,
		"##########",
		"#........#",
		"#........#",
		"#........#",
		"#........#",
		"#........#",
		"#........#",
		"#........#",
		"#........#",
		"##########",
	)
	p := eye(96, 320, 0, r.tables)
	cache := player.NewDistanceCache(320)
	hits := r.RenderWalls(p, m, cache, true)

	// column 20 looks 26 degrees left of the heading; stand the sprite 25
	// units in front of the east wall along that ray
	const col = 20
	arc := r.tables.Wrap(p.Arc - r.tables.Angle30 + col)
	along := hits[col].Distance - 25
	objs := []Drawable{{
		X:            p.X + along*r.tables.Cos[arc],
		Y:            p.Y + along*r.tables.Sin[arc],
		Z:            32,
		TextureWidth: 32,
		Width:        32,
		Height:       32,
		Texture:      texSprite,
	}}

	r.canvas.Clear()
	r.RenderSprites(p, objs, cache)

	if objs[0].Distance <= cache[col] {
		t.Fatalf("sprite distance %v not beyond the cached wall %v", objs[0].Distance, cache[col])
	}
	var drawn bool
	for y := 0; y < 200; y++ {
		if r.canvas.At(col, y).G != 0 {
			drawn = true
			break
		}
	}
	if !drawn {
		t.Error("sprite in front of the wall was not drawn")
	}
}

func TestRenderSpritesBehindPlayer(t *testing.T) {
	r, store := newRenderer(t)
	store.Put(texSprite, solid(16, 16, 255, 255, 255, 255))
	cache := player.NewDistanceCache(320)

	objs := []Drawable{{X: -4, Y: 96, Z: 32, TextureWidth: 16, Width: 16, Height: 16, Texture: texSprite}}
	r.RenderSprites(eye(96, 96, 0, r.tables), objs, cache)
	if !blank(r.canvas) {
		t.Error("sprite behind the player was drawn")
	}
}

func TestRenderSpritesFarthestFirst(t *testing.T) {
	r, store := newRenderer(t)
	store.Put(texSprite, solid(16, 16, 0, 255, 0, 255))
	store.Put(texSpriteFar, solid(16, 16, 255, 0, 0, 255))
	cache := player.NewDistanceCache(320)

	objs := []Drawable{
		{X: 196, Y: 96, Z: 32, TextureWidth: 16, Width: 16, Height: 16, Texture: texSprite},
		{X: 296, Y: 96, Z: 32, TextureWidth: 16, Width: 32, Height: 32, Texture: texSpriteFar},
	}
	r.RenderSprites(eye(96, 96, 0, r.tables), objs, cache)

	if got, want := r.canvas.At(160, 100), (color.RGBA{0, 255, 0, 255}); got != want {
		t.Errorf("overlap pixel = %v, want the nearer sprite %v", got, want)
	}
}

func TestDrawOverheadMap(t *testing.T) {
	r, _ := newRenderer(t)
	m := buildMap(t,
		"#####",
		"#..D#",
		"#####",
	)
	p := eye(96, 96, 0, r.tables)
	cache := player.NewDistanceCache(320)

	hits := r.RenderWalls(p, m, cache, true)
	r.DrawOverheadMap(p, m, hits)

	tests := []struct {
		name string
		x, y int
		want color.RGBA
	}{
		{"wall", 0, 0, mapWall},
		{"door", 3*MapCell + 2, MapCell + 2, mapDoor},
		{"heading", 12, 7, headingColor},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.canvas.At(tc.x, tc.y); got != tc.want {
				t.Errorf("pixel (%d,%d) = %v, want %v", tc.x, tc.y, got, tc.want)
			}
		})
	}
}

func TestDrawBackground(t *testing.T) {
	r, store := newRenderer(t)
	pano := &texture.Texture{Width: 4, Height: 1, Data: []byte{
		10, 0, 0, 255,
		20, 0, 0, 255,
		30, 0, 0, 255,
		40, 0, 0, 255,
	}}
	store.Put(7, pano)

	p := eye(0, 0, 2, r.tables)
	r.DrawBackground(p, 7)

	tests := []struct {
		x, y int
		red  uint8
	}{
		{0, 0, 30},
		{1, 0, 40},
		{2, 0, 10},
		{0, 5, 30},
	}
	for _, tc := range tests {
		if got := r.canvas.At(tc.x, tc.y).R; got != tc.red {
			t.Errorf("pixel (%d,%d) red = %d, want %d", tc.x, tc.y, got, tc.red)
		}
	}
}
