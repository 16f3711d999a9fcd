// Package trig holds the per-arc lookup tables the raycaster runs on.
//
// An arc is one screen column of the projection plane: the 60 degree field of
// view spans exactly projection-width arcs, so a full turn is six widths.
package trig

import "math"

// added to every angle before evaluating it so cardinal directions never
// produce an exact zero denominator
const epsilon = 0.0001

type Tables struct {
	Width int
	Tile  float64

	Angle0, Angle5, Angle30, Angle60, Angle90, Angle180, Angle270, Angle360 int

	Sin, ISin []float64
	Cos, ICos []float64
	Tan, ITan []float64
	XStep     []float64
	YStep     []float64
	Fish      []float64
}

// Build computes every table for the given projection width and tile size.
// The result is never modified afterwards.
func Build(width int, tile float64) *Tables {
	t := &Tables{
		Width:    width,
		Tile:     tile,
		Angle0:   0,
		Angle5:   width / 12,
		Angle30:  width / 2,
		Angle60:  width,
		Angle90:  width * 3 / 2,
		Angle180: width * 3,
		Angle270: width * 9 / 2,
		Angle360: width * 6,
	}

	n := t.Angle360 + 1
	t.Sin = make([]float64, n)
	t.ISin = make([]float64, n)
	t.Cos = make([]float64, n)
	t.ICos = make([]float64, n)
	t.Tan = make([]float64, n)
	t.ITan = make([]float64, n)
	t.XStep = make([]float64, n)
	t.YStep = make([]float64, n)
	t.Fish = make([]float64, n)

	for i := 0; i < n; i++ {
		r := t.ArcToRad(i) + epsilon
		t.Sin[i] = math.Sin(r)
		t.ISin[i] = 1 / t.Sin[i]
		t.Cos[i] = math.Cos(r)
		t.ICos[i] = 1 / t.Cos[i]
		t.Tan[i] = math.Tan(r)
		t.ITan[i] = 1 / t.Tan[i]

		// distance between successive crossings of vertical grid lines,
		// signed by the way the ray faces
		t.XStep[i] = math.Abs(tile / t.Tan[i])
		if i >= t.Angle90 && i < t.Angle270 {
			t.XStep[i] = -t.XStep[i]
		}

		// same for horizontal grid lines
		t.YStep[i] = math.Abs(tile * t.Tan[i])
		if i >= t.Angle180 {
			t.YStep[i] = -t.YStep[i]
		}
	}

	// fisheye correction only spans the field of view, re-based at column 0
	for i := -t.Angle30; i <= t.Angle30; i++ {
		t.Fish[i+t.Angle30] = 1 / math.Cos(t.ArcToRad(i))
	}

	return t
}

// ArcToRad converts an arc to radians.
func (t *Tables) ArcToRad(arc int) float64 {
	return float64(arc) * math.Pi / 3 / float64(t.Width)
}

// RadToArc converts radians to an arc, truncating toward zero.
func (t *Tables) RadToArc(rad float64) int {
	v := rad * float64(t.Width) / (math.Pi / 3)
	if v >= 0 {
		return int(v + 1e-9)
	}
	return int(v - 1e-9)
}

// Wrap folds any arc into [Angle0, Angle360).
func (t *Tables) Wrap(arc int) int {
	arc %= t.Angle360
	if arc < 0 {
		arc += t.Angle360
	}
	return arc
}

// ParallelX reports whether a ray at arc runs along the x axis and so never
// crosses a constant-y grid line.
func (t *Tables) ParallelX(arc int) bool {
	return arc == t.Angle0 || arc == t.Angle180
}

// ParallelY reports whether a ray at arc runs along the y axis and so never
// crosses a constant-x grid line.
func (t *Tables) ParallelY(arc int) bool {
	return arc == t.Angle90 || arc == t.Angle270
}
