// Package world holds the tile grid the raycaster walks: cell codes, the
// per-cell texture layers and the door table.
package world

import (
	"errors"
	"fmt"
	"sort"
)

const (
	TileSize   = 64
	WallHeight = 64
	MaxDoors   = 64
)

var (
	ErrDimensions = errors.New("world: bad map dimensions")
	ErrOpenBorder = errors.New("world: outer ring must be solid")
	ErrDoorIndex  = errors.New("world: door index out of range")
)

// Cell is a packed map code: the low nibble is the tile type and bits 8..15
// carry the door index for door cells.
type Cell uint32

const (
	Empty Cell = 0x0
	Wall  Cell = 0x1
	Door  Cell = 0x2
)

// DoorCell packs a door cell pointing at the given door table slot.
func DoorCell(index int) Cell {
	return Cell(index&0xff)<<8 | Door
}

// Solid reports whether the cell stops rays and the player (doors included).
func (c Cell) Solid() bool { return c&0xf != 0 }

func (c Cell) IsDoor() bool { return c&Door == Door }

func (c Cell) DoorIndex() int { return int(c>>8) & 0xff }

// DoorState is one slot of the door table. Position runs from 0 (closed) to
// TileSize (fully open).
type DoorState struct {
	Position uint8
	Opening  bool
}

// Spawn is where the player starts, in world pixels, facing Heading degrees
// clockwise from east.
type Spawn struct {
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Heading float64 `yaml:"heading"`
}

// Object is a billboard placed in the world.
type Object struct {
	X            float64 `yaml:"x"`
	Y            float64 `yaml:"y"`
	Z            float64 `yaml:"z"`
	TextureWidth int     `yaml:"texture_width"`
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	Texture      int     `yaml:"texture"`
}

// Layers are the per-cell texture ids, row-major and the same shape as the cells.
type Layers struct {
	Wall    []int
	Floor   []int
	Ceiling []int
}

type Map struct {
	width, height int
	cells         []Cell
	layers        Layers
	doors         [MaxDoors]DoorState

	Background int
	Objects    []Object
	Start      *Spawn
}

// New validates and builds a map. cells and every texture layer are row-major
// width*height slices.
func New(width, height int, cells []Cell, layers Layers, background int) (*Map, error) {
	if width < 3 || height < 3 {
		return nil, fmt.Errorf("%w: %dx%d", ErrDimensions, width, height)
	}
	n := width * height
	if len(cells) != n {
		return nil, fmt.Errorf("%w: %d cells for %dx%d", ErrDimensions, len(cells), width, height)
	}
	for name, layer := range map[string][]int{"wall": layers.Wall, "floor": layers.Floor, "ceiling": layers.Ceiling} {
		if len(layer) != n {
			return nil, fmt.Errorf("%w: %s layer has %d entries, want %d", ErrDimensions, name, len(layer), n)
		}
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := cells[y*width+x]
			if c.IsDoor() && c.DoorIndex() >= MaxDoors {
				return nil, fmt.Errorf("%w: door %d at (%d,%d)", ErrDoorIndex, c.DoorIndex(), x, y)
			}
			border := x == 0 || y == 0 || x == width-1 || y == height-1
			if border && !c.Solid() {
				return nil, fmt.Errorf("%w: open cell at (%d,%d)", ErrOpenBorder, x, y)
			}
		}
	}

	m := &Map{
		width:      width,
		height:     height,
		cells:      append([]Cell(nil), cells...),
		layers:     layers,
		Background: background,
	}
	for i := range m.doors {
		m.doors[i].Opening = true
	}
	return m, nil
}

func (m *Map) Width() int  { return m.width }
func (m *Map) Height() int { return m.height }

func (m *Map) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.width && y < m.height
}

// At returns the cell at tile (x, y); ok is false outside the grid.
func (m *Map) At(x, y int) (Cell, bool) {
	if !m.inside(x, y) {
		return Empty, false
	}
	return m.cells[y*m.width+x], true
}

// Blocked treats anything outside the grid as solid.
func (m *Map) Blocked(x, y int) bool {
	c, ok := m.At(x, y)
	return !ok || c.Solid()
}

func (m *Map) layerAt(layer []int, x, y int) int {
	if !m.inside(x, y) {
		return 0
	}
	return layer[y*m.width+x]
}

func (m *Map) WallTexture(x, y int) int    { return m.layerAt(m.layers.Wall, x, y) }
func (m *Map) FloorTexture(x, y int) int   { return m.layerAt(m.layers.Floor, x, y) }
func (m *Map) CeilingTexture(x, y int) int { return m.layerAt(m.layers.Ceiling, x, y) }

// DoorPosition returns how far the door is open, 0 for an unknown slot.
func (m *Map) DoorPosition(index int) uint8 {
	if index < 0 || index >= MaxDoors {
		return 0
	}
	return m.doors[index].Position
}

func (m *Map) SetDoorPosition(index int, pos uint8) error {
	if index < 0 || index >= MaxDoors {
		return fmt.Errorf("%w: %d", ErrDoorIndex, index)
	}
	if pos > TileSize {
		pos = TileSize
	}
	m.doors[index].Position = pos
	return nil
}

// AnimateDoor moves a door one step along its open/close cycle, reversing at
// either end.
func (m *Map) AnimateDoor(index int) {
	if index < 0 || index >= MaxDoors {
		return
	}
	d := &m.doors[index]
	if d.Opening && d.Position < TileSize {
		d.Position++
	} else if !d.Opening && d.Position > 0 {
		d.Position--
	}
	if d.Position == TileSize {
		d.Opening = false
	} else if d.Position == 0 {
		d.Opening = true
	}
}

// TextureIDs lists every texture id the map refers to, sorted.
func (m *Map) TextureIDs() []int {
	seen := map[int]bool{m.Background: true}
	for i, c := range m.cells {
		if c.Solid() {
			seen[m.layers.Wall[i]] = true
		}
		seen[m.layers.Floor[i]] = true
		seen[m.layers.Ceiling[i]] = true
	}
	for _, o := range m.Objects {
		seen[o.Texture] = true
	}

	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
