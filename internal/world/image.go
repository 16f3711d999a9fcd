package world

import (
	"fmt"
	"image"
	"image/color"
)

// level image colours
var (
	ColorEmpty  = color.RGBA{255, 255, 255, 255}
	ColorWall   = color.RGBA{0, 0, 0, 255}
	ColorDoor   = color.RGBA{255, 0, 0, 255}
	ColorPlayer = color.RGBA{0, 0, 255, 255}
	ColorObject = color.RGBA{255, 255, 0, 255}
)

// ImageOptions says which textures to paint a level image with. Object is the
// template used for every yellow pixel; its position is filled in per pixel.
type ImageOptions struct {
	Textures   TextureSet
	Background int
	Object     Object
}

// FromImage reads a colour coded level: one pixel per cell. The player and
// object pixels become open floor once their position is recorded.
func FromImage(img image.Image, opts ImageOptions) (*Map, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	rows := make([]string, height)
	var spawn *Spawn
	var objects []Object

	for y := 0; y < height; y++ {
		row := make([]byte, width)
		for x := 0; x < width; x++ {
			c := color.RGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.RGBA)
			center := func() (float64, float64) {
				return float64(x*TileSize + TileSize/2), float64(y*TileSize + TileSize/2)
			}

			switch c {
			case ColorWall:
				row[x] = '#'
			case ColorDoor:
				row[x] = 'D'
			case ColorPlayer:
				row[x] = '.'
				if spawn == nil {
					px, py := center()
					spawn = &Spawn{X: px, Y: py}
				}
			case ColorObject:
				row[x] = '.'
				o := opts.Object
				o.X, o.Y = center()
				objects = append(objects, o)
			case ColorEmpty:
				row[x] = '.'
			default:
				return nil, fmt.Errorf("world: unexpected level colour %v at (%d,%d)", c, x, y)
			}
		}
		rows[y] = string(row)
	}

	l := Layout{
		Rows:       rows,
		Textures:   opts.Textures,
		Background: opts.Background,
		Player:     spawn,
		Objects:    objects,
	}
	return l.Build()
}
