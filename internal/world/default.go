package world

var defaultTextures = TextureSet{Wall: 83, Door: 74, Floor: 162, Ceiling: 101}

const defaultBackground = 110

// DefaultImageOptions paints a level image with the demo level's textures.
func DefaultImageOptions() ImageOptions {
	return ImageOptions{
		Textures:   defaultTextures,
		Background: defaultBackground,
		Object:     Object{Z: 25, TextureWidth: 32, Width: 32, Height: 50, Texture: 163},
	}
}

// Default is the demo level: a 20x20 hall with a walled room in the middle
// reached through two doors, and a darker floor path running down the west side.
func Default() *Map {
	l := Layout{
		Rows: []string{
			"####################",
			"#..................#",
			"#..................#",
			"#..................#",
			"#..#...........#...#",
			"#..................#",
			"#...###########....#",
			"#...#.......#.#....#",
			"#...#.......#.#....#",
			"#...D.......#.#....#",
			"#...#.......#.#....#",
			"#...#.......D.#....#",
			"#...###########....#",
			"#..................#",
			"#..#...........#...#",
			"#..................#",
			"#..................#",
			"#..................#",
			"#..................#",
			"####################",
		},
		Textures:   defaultTextures,
		Background: defaultBackground,
		Player:     &Spawn{X: 100, Y: 160, Heading: 60},
		Objects: []Object{
			{X: 620, Y: 620, Z: 25, TextureWidth: 32, Width: 32, Height: 50, Texture: 163},
			{X: 600, Y: 690, Z: 25, TextureWidth: 32, Width: 60, Height: 32, Texture: 163},
			{X: 300, Y: 1120, Z: 25, TextureWidth: 32, Width: 60, Height: 32, Texture: 42},
		},
	}

	m, err := l.Build()
	if err != nil {
		panic(err)
	}

	const path = 14
	for _, p := range defaultPath() {
		m.layers.Floor[p[1]*m.width+p[0]] = path
	}
	return m
}

func defaultPath() [][2]int {
	pts := [][2]int{{1, 2}}
	for y := 2; y <= 17; y++ {
		pts = append(pts, [2]int{2, y})
	}
	pts = append(pts, [2]int{3, 9}, [2]int{4, 9}, [2]int{3, 17}, [2]int{4, 17})
	return pts
}
