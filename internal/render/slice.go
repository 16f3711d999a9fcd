package render

import (
	"math"

	"raycast/internal/canvas"
)

// DrawSlice stretches one texture column onto a one pixel wide screen
// column starting at (x, y). Rows are repeated or skipped with an error
// accumulator so the texture height maps onto height screen rows.
// Nothing is drawn while the texture is absent from the store.
func (r *Renderer) DrawSlice(x, y, height, xoffset, brightness float64, textureID int) {
	tex, ok := r.store.Lookup(textureID)
	if !ok || len(tex.Data) < canvas.BytesPerPixel {
		return
	}

	x = math.Floor(x)
	y = math.Floor(y)
	xoffset = math.Floor(xoffset)

	last := tex.Width*tex.Height*canvas.BytesPerPixel - canvas.BytesPerPixel
	source := canvas.BytesPerPixel * int(xoffset)
	if source < 0 {
		source = 0
	} else if source > last {
		source = last
	}

	stride := r.canvas.Stride()
	target := stride*int(y) + canvas.BytesPerPixel*int(x)

	toDraw := height
	// clip bottom
	if y+toDraw > float64(r.height) {
		toDraw = float64(r.height) - y
	}
	if height <= 0 || toDraw <= 0 || math.IsNaN(height) {
		return
	}

	texHeight := float64(tex.Height)
	var yErr float64
	for {
		yErr += height

		px := tex.Data[source : source+canvas.BytesPerPixel]
		red := shade(px[0], brightness)
		green := shade(px[1], brightness)
		blue := shade(px[2], brightness)
		alpha := px[3]

		for yErr >= texHeight {
			yErr -= texHeight
			if alpha != 0 {
				r.canvas.PutIndex(target, red, green, blue, alpha)
			}
			target += stride

			toDraw--
			if toDraw < 1 {
				return
			}
		}

		source += canvas.BytesPerPixel * tex.Width
		if source > last {
			source = last
		}
	}
}
