package render

import (
	"math"
	"sort"

	"raycast/internal/player"
)

// Drawable is a billboard. Distance and Angle are recomputed every frame.
type Drawable struct {
	X, Y, Z      float64
	TextureWidth int
	Width        int
	Height       int
	Texture      int

	Distance float64
	Angle    float64
}

const (
	twoPi  = 2 * math.Pi
	halfPi = math.Pi / 2
)

// RenderSprites draws every drawable in front of the player, farthest
// first, skipping columns whose cached wall distance is nearer than the
// sprite's perpendicular depth.
func (r *Renderer) RenderSprites(p *player.Player, objs []Drawable, cache player.DistanceCache) {
	for i := range objs {
		o := &objs[i]
		o.Distance = math.Hypot(p.X-o.X, p.Y-o.Y)
		o.Angle = math.Atan2(o.Y-p.Y, o.X-p.X)
		if o.Angle < 0 {
			o.Angle += twoPi
		} else if o.Angle >= twoPi {
			o.Angle -= twoPi
		}
	}

	// half the plane either side of the heading
	minAngle := p.Angle - halfPi
	if minAngle < 0 {
		minAngle += twoPi
	}
	maxAngle := p.Angle + halfPi
	if maxAngle > twoPi {
		maxAngle -= twoPi
	}

	r.visible = r.visible[:0]
	for _, o := range objs {
		if o.Distance <= 1 {
			continue
		}
		inside := o.Angle >= minAngle && o.Angle <= maxAngle
		if maxAngle < minAngle {
			inside = o.Angle >= minAngle || o.Angle <= maxAngle
		}
		if inside {
			r.visible = append(r.visible, o)
		}
	}
	sort.SliceStable(r.visible, func(i, j int) bool {
		return r.visible[i].Distance > r.visible[j].Distance
	})

	for _, o := range r.visible {
		r.drawSprite(p, o, cache)
	}
}

func (r *Renderer) drawSprite(p *player.Player, o Drawable, cache player.DistanceCache) {
	width := float64(r.width)
	columnUnit := width / (math.Pi / 3)

	ratio := r.planeDist / o.Distance
	bottom := ratio*(p.Height-o.Z+float64(o.Height)/2) + p.YCenter
	top := bottom - r.planeDist*float64(o.Height)/o.Distance

	var delta float64
	switch {
	case p.Angle > 3*halfPi && o.Angle < halfPi:
		delta = -(o.Angle + twoPi - p.Angle)
	case o.Angle > 3*halfPi && p.Angle < halfPi:
		delta = p.Angle + twoPi - o.Angle
	default:
		delta = p.Angle - o.Angle
	}

	center := columnUnit*(math.Pi/6) - delta*columnUnit
	total := float64(o.Width) * ratio
	if total <= 1 || center >= width+total/2 || center <= -total/2 {
		return
	}

	left := center - total/2
	first := math.Max(left, 0)
	end := math.Min(center+total/2, width)
	increment := float64(o.TextureWidth) / total

	// the cache holds perpendicular wall distances, so compare against the
	// sprite's depth along the view direction
	depth := o.Distance * math.Cos(delta)

	// a sprite cut by the left edge starts part way into its texture
	var column float64
	if left <= 0 {
		column = -left * increment
	}

	for col := int(math.Floor(first)); col < int(math.Floor(end)); col++ {
		if cache[col] > depth {
			r.DrawSlice(float64(col), top, bottom-top+1, column, BaseLight/o.Distance, o.Texture)
		}
		column += increment
	}
}
