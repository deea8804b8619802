package starfield

// Surface is a fixed-size 2D drawing target. All colors are straight RGBA
// composited source-over. Draw calls return nothing; a surface that cannot
// draw must be rejected when it is created.
type Surface interface {
	// Size returns the surface dimensions in pixels.
	Size() (width, height int)
	// Clear fills the entire surface with c drawn opaque.
	Clear(c Color)
	// Rect fills an axis-aligned rectangle.
	Rect(x, y, w, h float64, fill Color)
	// Circle draws a filled disc.
	Circle(cx, cy, radius float64, fill Color)
	// Line strokes a segment from (x0, y0) to (x1, y1).
	Line(x0, y0, x1, y1 float64, stroke Color, width float64)
	// Text draws s anchored at (x, y).
	Text(s string, x, y float64, font Font, align TextAlign, baseline TextBaseline, fill Color)
}

// Canvas provisions a Surface for one animation session.
type Canvas interface {
	Size() (width, height int)
	Surface() (Surface, error)
}

// Font describes a text face by size. Backends pick the closest face they
// have; terminal backends ignore it.
type Font struct {
	Size float64
	Bold bool
}

// DefaultFont is a 16px regular face.
var DefaultFont = Font{Size: 16}

// TextAlign controls horizontal placement relative to the anchor.
type TextAlign uint8

const (
	TextAlignLeft   TextAlign = iota // anchor is the left edge (default)
	TextAlignCenter                  // anchor is the horizontal center
	TextAlignRight                   // anchor is the right edge
)

// TextBaseline controls vertical placement relative to the anchor.
type TextBaseline uint8

const (
	BaselineTop    TextBaseline = iota // anchor is the top of the line box
	BaselineMiddle                     // anchor is the vertical center
	BaselineBottom                     // anchor is the bottom of the line box
)

// checkSize validates canvas dimensions.
func checkSize(w, h int) error {
	if w <= 0 || h <= 0 {
		return ErrInvalidCanvas
	}
	return nil
}
