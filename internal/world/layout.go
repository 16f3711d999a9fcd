package world

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// TextureSet holds the ids used to fill a layout's texture layers.
type TextureSet struct {
	Wall    int `yaml:"wall"`
	Door    int `yaml:"door"`
	Floor   int `yaml:"floor"`
	Ceiling int `yaml:"ceiling"`
}

// DoorDef pins a door cell to a door table slot and an initial opening.
type DoorDef struct {
	X        int   `yaml:"x"`
	Y        int   `yaml:"y"`
	Index    int   `yaml:"index"`
	Position uint8 `yaml:"position"`
}

// Layout is the textual map definition. Rows use '#' for walls, '.' or ' '
// for open cells and 'D' for doors. Doors without a DoorDef take the next
// free slot in reading order.
type Layout struct {
	Rows       []string   `yaml:"cells"`
	Textures   TextureSet `yaml:"textures"`
	Background int        `yaml:"background"`
	Doors      []DoorDef  `yaml:"doors"`
	Player     *Spawn     `yaml:"player"`
	Objects    []Object   `yaml:"objects"`

	// optional per-cell overrides; zero entries keep the TextureSet value
	Wall    [][]int `yaml:"wall"`
	Floor   [][]int `yaml:"floor"`
	Ceiling [][]int `yaml:"ceiling"`
}

// LoadYAML reads a Layout from r and builds the map.
func LoadYAML(r io.Reader) (*Map, error) {
	var l Layout
	if err := yaml.NewDecoder(r).Decode(&l); err != nil {
		return nil, fmt.Errorf("world: decode layout: %w", err)
	}
	return l.Build()
}

func (l Layout) Build() (*Map, error) {
	height := len(l.Rows)
	if height == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrDimensions)
	}
	width := len(l.Rows[0])

	pinned := make(map[[2]int]DoorDef, len(l.Doors))
	used := make(map[int]bool, len(l.Doors))
	for _, d := range l.Doors {
		if d.Index < 0 || d.Index >= MaxDoors {
			return nil, fmt.Errorf("%w: %d", ErrDoorIndex, d.Index)
		}
		pinned[[2]int{d.X, d.Y}] = d
		used[d.Index] = true
	}

	n := width * height
	cells := make([]Cell, n)
	layers := Layers{Wall: make([]int, n), Floor: make([]int, n), Ceiling: make([]int, n)}
	next := 0
	for y, row := range l.Rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrDimensions, y, len(row), width)
		}
		for x, ch := range []byte(row) {
			i := y*width + x
			layers.Floor[i] = l.Textures.Floor
			layers.Ceiling[i] = l.Textures.Ceiling
			switch ch {
			case '#':
				cells[i] = Wall
				layers.Wall[i] = l.Textures.Wall
			case 'D':
				idx := -1
				if d, ok := pinned[[2]int{x, y}]; ok {
					idx = d.Index
				} else {
					for next < MaxDoors && used[next] {
						next++
					}
					if next >= MaxDoors {
						return nil, fmt.Errorf("%w: too many doors", ErrDoorIndex)
					}
					idx = next
					used[idx] = true
				}
				cells[i] = DoorCell(idx)
				layers.Wall[i] = l.Textures.Door
			case '.', ' ':
				cells[i] = Empty
			default:
				return nil, fmt.Errorf("world: unknown cell %q at (%d,%d)", ch, x, y)
			}
		}
	}

	for _, o := range []struct {
		name  string
		grid  [][]int
		layer []int
	}{
		{"wall", l.Wall, layers.Wall},
		{"floor", l.Floor, layers.Floor},
		{"ceiling", l.Ceiling, layers.Ceiling},
	} {
		if err := overlay(o.layer, o.grid, width, height); err != nil {
			return nil, fmt.Errorf("%s layer: %w", o.name, err)
		}
	}

	m, err := New(width, height, cells, layers, l.Background)
	if err != nil {
		return nil, err
	}
	for _, d := range l.Doors {
		if err := m.SetDoorPosition(d.Index, d.Position); err != nil {
			return nil, err
		}
	}
	m.Start = l.Player
	m.Objects = append([]Object(nil), l.Objects...)
	return m, nil
}

func overlay(layer []int, grid [][]int, width, height int) error {
	if grid == nil {
		return nil
	}
	if len(grid) != height {
		return fmt.Errorf("%w: %d rows, want %d", ErrDimensions, len(grid), height)
	}
	for y, row := range grid {
		if len(row) != width {
			return fmt.Errorf("%w: row %d has %d entries, want %d", ErrDimensions, y, len(row), width)
		}
		for x, v := range row {
			if v != 0 {
				layer[y*width+x] = v
			}
		}
	}
	return nil
}
