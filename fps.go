package starfield

import "fmt"

// FPSCounter tracks a frame rate readout refreshed about every half second.
// The host feeds it elapsed time and the measured rates; Draw paints the
// current readout in the top-left corner of a surface.
type FPSCounter struct {
	elapsed float64
	label   string
}

// Update advances the counter by dt seconds. fps and tps are sampled only
// when the refresh interval has passed.
func (f *FPSCounter) Update(dt, fps, tps float64) {
	f.elapsed += dt
	if f.label != "" && f.elapsed < 0.5 {
		return
	}
	f.elapsed = 0
	f.label = fmt.Sprintf("FPS: %.1f\nTPS: %.1f", fps, tps)
}

// Label returns the current readout.
func (f *FPSCounter) Label() string {
	return f.label
}

// Draw paints the readout.
func (f *FPSCounter) Draw(s Surface) {
	if f.label == "" {
		return
	}
	s.Text(f.label, 8, 8, Font{Size: 12}, TextAlignLeft, BaselineTop, Color{1, 1, 1, 0.8})
}
