package trig

import (
	"math"
	"testing"
)

func TestBuildAngles(t *testing.T) {
	tb := Build(320, 64)

	tests := []struct {
		name string
		got  int
		want int
	}{
		{"angle5", tb.Angle5, 26},
		{"angle30", tb.Angle30, 160},
		{"angle60", tb.Angle60, 320},
		{"angle90", tb.Angle90, 480},
		{"angle180", tb.Angle180, 960},
		{"angle270", tb.Angle270, 1440},
		{"angle360", tb.Angle360, 1920},
	}
	for _, tc := range tests {
		if tc.got != tc.want {
			t.Errorf("%s = %d, want %d", tc.name, tc.got, tc.want)
		}
	}

	if len(tb.Sin) != tb.Angle360+1 {
		t.Errorf("table length = %d, want %d", len(tb.Sin), tb.Angle360+1)
	}
}

func TestArcRadRoundTrip(t *testing.T) {
	for _, width := range []int{320, 640, 160} {
		tb := Build(width, 64)
		for a := 0; a < tb.Angle360; a++ {
			if got := tb.RadToArc(tb.ArcToRad(a)); got != a {
				t.Fatalf("width %d: RadToArc(ArcToRad(%d)) = %d", width, a, got)
			}
		}
	}
}

func TestPythagoreanIdentity(t *testing.T) {
	tb := Build(320, 64)
	for a := 0; a < tb.Angle360; a++ {
		if tb.ParallelX(a) || tb.ParallelY(a) {
			continue
		}
		s, c := tb.Sin[a], tb.Cos[a]
		if d := math.Abs(s*s + c*c - 1); d > 1e-9 {
			t.Fatalf("arc %d: sin^2+cos^2 off by %g", a, d)
		}
	}
}

func TestReciprocalsNeverInfinite(t *testing.T) {
	tb := Build(320, 64)
	for _, a := range []int{tb.Angle0, tb.Angle90, tb.Angle180, tb.Angle270, tb.Angle360} {
		for name, v := range map[string]float64{
			"isin": tb.ISin[a], "icos": tb.ICos[a], "itan": tb.ITan[a],
		} {
			if math.IsInf(v, 0) || math.IsNaN(v) {
				t.Errorf("%s[%d] = %v", name, a, v)
			}
		}
	}
}

func TestStepSigns(t *testing.T) {
	tb := Build(320, 64)

	tests := []struct {
		name       string
		arc        int
		xPos, yPos bool
	}{
		{"east-south-east", 100, true, true},
		{"south-west", tb.Angle90 + 100, false, true},
		{"north-west", tb.Angle180 + 100, false, false},
		{"north-east", tb.Angle270 + 100, true, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tb.XStep[tc.arc] > 0; got != tc.xPos {
				t.Errorf("XStep[%d] = %v, want positive=%v", tc.arc, tb.XStep[tc.arc], tc.xPos)
			}
			if got := tb.YStep[tc.arc] > 0; got != tc.yPos {
				t.Errorf("YStep[%d] = %v, want positive=%v", tc.arc, tb.YStep[tc.arc], tc.yPos)
			}
		})
	}
}

func TestFishTable(t *testing.T) {
	tb := Build(320, 64)

	if got := tb.Fish[tb.Angle30]; got != 1 {
		t.Errorf("center fish factor = %v, want 1", got)
	}
	// edges of the field of view are 30 degrees off center
	want := 1 / math.Cos(math.Pi/6)
	for _, i := range []int{0, 2 * tb.Angle30} {
		if d := math.Abs(tb.Fish[i] - want); d > 1e-9 {
			t.Errorf("Fish[%d] = %v, want %v", i, tb.Fish[i], want)
		}
	}
}

func TestParallelAxes(t *testing.T) {
	tb := Build(320, 64)

	tests := []struct {
		arc       int
		parallelX bool
		parallelY bool
	}{
		{tb.Angle0, true, false},
		{tb.Angle90, false, true},
		{tb.Angle180, true, false},
		{tb.Angle270, false, true},
		{1, false, false},
		{tb.Angle90 + 1, false, false},
	}
	for _, tc := range tests {
		if got := tb.ParallelX(tc.arc); got != tc.parallelX {
			t.Errorf("ParallelX(%d) = %v, want %v", tc.arc, got, tc.parallelX)
		}
		if got := tb.ParallelY(tc.arc); got != tc.parallelY {
			t.Errorf("ParallelY(%d) = %v, want %v", tc.arc, got, tc.parallelY)
		}
	}
}

func TestWrap(t *testing.T) {
	tb := Build(320, 64)

	tests := []struct{ in, want int }{
		{0, 0},
		{-1, 1919},
		{1920, 0},
		{1945, 25},
		{-26, 1894},
	}
	for _, tc := range tests {
		if got := tb.Wrap(tc.in); got != tc.want {
			t.Errorf("Wrap(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
