package starfield

import (
	"math"
	"testing"
)

// phaseFor returns a phase whose brightness is b.
func phaseFor(b float64) float64 {
	return math.Asin(2*b - 1)
}

func TestTwinkleSeedRanges(t *testing.T) {
	f := NewTwinkleField(800, 600, 350)
	for i, p := range f.Particles() {
		checks := []struct {
			name string
			v    float64
			r    Range
		}{
			{"x", p.X, Range{0, 800}},
			{"y", p.Y, Range{0, 600}},
			{"baseSize", p.BaseSize, Range{0.8, 3.0}},
			{"phase", p.Phase, Range{0, 2 * math.Pi}},
			{"speed", p.Speed, Range{0.015, 0.06}},
			{"baseGray", p.BaseGray, Range{120, 200}},
		}
		for _, c := range checks {
			if !c.r.Contains(c.v) {
				t.Errorf("star %d: %s = %v, out of %v", i, c.name, c.v, c.r)
			}
		}
	}
}

func TestTwinklePeakScenario(t *testing.T) {
	f := NewTwinkleField(800, 600, 1)
	f.Particles()[0] = TwinkleStar{X: 100, Y: 100, BaseSize: 2, Phase: math.Pi / 2, Speed: 0.02, BaseGray: 150}

	look := f.Particles()[0].Look()
	assertNear(t, "brightness", look.Brightness, 1)
	assertNear(t, "size", look.Size, 2*0.8)
	assertNear(t, "alpha", look.Alpha, 0.8)
	if look.Gray != 210 {
		t.Errorf("gray = %d, want 210", look.Gray)
	}

	rec := NewRecorder(800, 600)
	f.Step(rec)
	if got := rec.Count(OpCircle); got != 3 {
		t.Errorf("circles = %d, want 3 (star + two halo layers)", got)
	}
	if got := rec.Count(OpLine); got != 2 {
		t.Errorf("lines = %d, want 2 (sparkle cross)", got)
	}

	halo := rec.Calls[1]
	assertNear(t, "inner halo radius", halo.Radius, look.Size*2)
	assertNear(t, "inner halo alpha", halo.Color.A, 0.8*0.2)
	outer := rec.Calls[2]
	assertNear(t, "outer halo radius", outer.Radius, look.Size*3)
	assertNear(t, "outer halo alpha", outer.Color.A, 0.8*0.1)

	spark := rec.Calls[3]
	assertNear(t, "sparkle alpha", spark.Color.A, 0.15*4*0.5)
	assertNear(t, "sparkle arm", spark.X1-spark.X, look.Size*6)
	assertNear(t, "sparkle white", spark.Color.R, 1)
}

func TestTwinkleThresholds(t *testing.T) {
	tests := []struct {
		name    string
		b       float64
		circles int
		lines   int
	}{
		{"dark", 0.1, 1, 0},
		{"at halo threshold", 0.5, 1, 0},
		{"above halo", 0.6, 3, 0},
		{"below sparkle", 0.84, 3, 0},
		{"above sparkle", 0.86, 3, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewTwinkleField(800, 600, 1)
			f.Particles()[0] = TwinkleStar{X: 5, Y: 5, BaseSize: 1, Phase: phaseFor(tt.b), Speed: 0.02, BaseGray: 130}
			rec := NewRecorder(800, 600)
			f.Step(rec)
			if got := rec.Count(OpCircle); got != tt.circles {
				t.Errorf("circles = %d, want %d", got, tt.circles)
			}
			if got := rec.Count(OpLine); got != tt.lines {
				t.Errorf("lines = %d, want %d", got, tt.lines)
			}
		})
	}
}

func TestTwinkleBrightnessBounds(t *testing.T) {
	f := NewTwinkleField(320, 240, 350)
	rec := NewRecorder(320, 240)
	for tick := 0; tick < 300; tick++ {
		for i := range f.Particles() {
			look := f.Particles()[i].Look()
			if look.Brightness < 0 || look.Brightness > 1 {
				t.Fatalf("tick %d star %d: brightness %v", tick, i, look.Brightness)
			}
			if look.Alpha < 0.3-epsilon || look.Alpha > 0.8+epsilon {
				t.Fatalf("tick %d star %d: alpha %v", tick, i, look.Alpha)
			}
		}
		rec.Reset()
		f.Step(rec)
	}
	if f.Len() != 350 {
		t.Errorf("Len = %d, want 350", f.Len())
	}
}

func TestTwinklePhaseIsNotWrapped(t *testing.T) {
	f := NewTwinkleField(100, 100, 1)
	start := 2*math.Pi - 0.001
	f.Particles()[0] = TwinkleStar{X: 1, Y: 1, BaseSize: 1, Phase: start, Speed: 0.05, BaseGray: 150}
	f.Step(NewRecorder(100, 100))
	assertNear(t, "phase", f.Particles()[0].Phase, start+0.05)
}
