package starfield

// DrawOp identifies the kind of a recorded draw call.
type DrawOp uint8

const (
	OpClear DrawOp = iota
	OpRect
	OpCircle
	OpLine
	OpText
)

// DrawCall is a single recorded Surface call. Fields not used by Op are zero.
type DrawCall struct {
	Op     DrawOp
	X, Y   float64 // circle center, rect origin, line start or text anchor
	X1, Y1 float64 // line end or rect far corner
	Radius float64
	Width  float64
	Color  Color
	Text   string
}

// Recorder is a Surface that stores every draw call instead of painting.
// An optional Next surface receives each call after it is recorded, which
// lets Recorder sit in front of a real backend to count draw calls.
type Recorder struct {
	W, H  int
	Calls []DrawCall
	Next  Surface
}

// NewRecorder returns a Recorder of the given size.
func NewRecorder(w, h int) *Recorder {
	return &Recorder{W: w, H: h}
}

// Size implements Surface.
func (r *Recorder) Size() (int, int) {
	if r.Next != nil {
		return r.Next.Size()
	}
	return r.W, r.H
}

// Clear implements Surface.
func (r *Recorder) Clear(c Color) {
	r.Calls = append(r.Calls, DrawCall{Op: OpClear, Color: c})
	if r.Next != nil {
		r.Next.Clear(c)
	}
}

// Rect implements Surface.
func (r *Recorder) Rect(x, y, w, h float64, fill Color) {
	r.Calls = append(r.Calls, DrawCall{Op: OpRect, X: x, Y: y, X1: x + w, Y1: y + h, Color: fill})
	if r.Next != nil {
		r.Next.Rect(x, y, w, h, fill)
	}
}

// Circle implements Surface.
func (r *Recorder) Circle(cx, cy, radius float64, fill Color) {
	r.Calls = append(r.Calls, DrawCall{Op: OpCircle, X: cx, Y: cy, Radius: radius, Color: fill})
	if r.Next != nil {
		r.Next.Circle(cx, cy, radius, fill)
	}
}

// Line implements Surface.
func (r *Recorder) Line(x0, y0, x1, y1 float64, stroke Color, width float64) {
	r.Calls = append(r.Calls, DrawCall{Op: OpLine, X: x0, Y: y0, X1: x1, Y1: y1, Color: stroke, Width: width})
	if r.Next != nil {
		r.Next.Line(x0, y0, x1, y1, stroke, width)
	}
}

// Text implements Surface.
func (r *Recorder) Text(s string, x, y float64, font Font, align TextAlign, baseline TextBaseline, fill Color) {
	r.Calls = append(r.Calls, DrawCall{Op: OpText, X: x, Y: y, Color: fill, Text: s})
	if r.Next != nil {
		r.Next.Text(s, x, y, font, align, baseline, fill)
	}
}

// Reset drops all recorded calls, keeping capacity.
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
}

// Count returns the number of recorded calls of the given kind.
func (r *Recorder) Count(op DrawOp) int {
	n := 0
	for i := range r.Calls {
		if r.Calls[i].Op == op {
			n++
		}
	}
	return n
}

// recorderCanvas hands out a fixed Recorder.
type recorderCanvas struct {
	rec *Recorder
}

// RecorderCanvas returns a Canvas whose surface is rec.
func RecorderCanvas(rec *Recorder) Canvas {
	return recorderCanvas{rec: rec}
}

func (c recorderCanvas) Size() (int, int) {
	if c.rec == nil {
		return 0, 0
	}
	return c.rec.Size()
}

func (c recorderCanvas) Surface() (Surface, error) {
	if c.rec == nil {
		return nil, ErrNoSurface
	}
	return c.rec, nil
}
