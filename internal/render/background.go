package render

import (
	"raycast/internal/canvas"
	"raycast/internal/player"
)

// DrawBackground fills the canvas with the panorama texture, scrolled by the
// player's heading and wrapped at the texture's right edge. Used when the
// ceiling is switched off.
func (r *Renderer) DrawBackground(p *player.Player, textureID int) {
	tex, ok := r.store.Lookup(textureID)
	if !ok || tex.Width == 0 || tex.Height == 0 {
		return
	}

	for y := 0; y < r.height; y++ {
		row := (y % tex.Height) * tex.Width
		for x := 0; x < r.width; x++ {
			i := (row + (p.Arc+x)%tex.Width) * canvas.BytesPerPixel
			px := tex.Data[i : i+canvas.BytesPerPixel]
			r.canvas.Set(x, y, px[0], px[1], px[2], px[3])
		}
	}
}
