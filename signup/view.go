package signup

import (
	"github.com/phanxgames/starfield"
)

// Panel geometry in pixels, relative to the panel center.
const (
	PanelW  = 420
	PanelH  = 340
	fieldW  = 340
	fieldH  = 40
	buttonH = 44
)

var (
	panelFill   = starfield.Color{R: 10.0 / 255, G: 20.0 / 255, B: 20.0 / 255, A: 0.7}
	panelBorder = starfield.Color{R: 0, G: 1, B: 200.0 / 255, A: 0.2}
	accent      = starfield.Hex(0x00ffc8)
	buttonText  = starfield.Hex(0x021a1a)
	errorText   = starfield.Hex(0xff6b6b)
	inputFill   = starfield.ColorWhite.WithAlpha(0.15)
	focusFill   = starfield.ColorWhite.WithAlpha(0.25)
	focusRing   = starfield.Color{R: 0, G: 1, B: 200.0 / 255, A: 0.3}
)

var (
	headingFont = starfield.Font{Size: 28, Bold: true}
	bodyFont    = starfield.Font{Size: 15}
)

// Bounds returns the panel rectangle for a panel centered at (cx, cy).
func Bounds(cx, cy float64) starfield.Rect {
	return starfield.Rect{X: cx - PanelW/2, Y: cy - PanelH/2, Width: PanelW, Height: PanelH}
}

// FieldBounds returns the input box rectangle of field for a panel
// centered at (cx, cy).
func FieldBounds(field Field, cx, cy float64) starfield.Rect {
	y := cy - 40
	if field == FieldEmail {
		y += fieldH + 16
	}
	return starfield.Rect{X: cx - fieldW/2, Y: y, Width: fieldW, Height: fieldH}
}

// ButtonBounds returns the submit button rectangle.
func ButtonBounds(cx, cy float64) starfield.Rect {
	return starfield.Rect{X: cx - fieldW/2, Y: cy + 72, Width: fieldW, Height: buttonH}
}

// HitTest returns the field under (x, y), and whether the point is on the
// submit button.
func HitTest(x, y, cx, cy float64) (field Field, onField, onButton bool) {
	for fl := FieldName; fl < fieldCount; fl++ {
		if FieldBounds(fl, cx, cy).ContainsHalfOpen(x, y) {
			return fl, true, false
		}
	}
	return 0, false, ButtonBounds(cx, cy).ContainsHalfOpen(x, y)
}

// Draw paints the form centered at (cx, cy). The cursor flag shows the
// caret in the focused field.
func (f *Form) Draw(s starfield.Surface, cx, cy float64, cursor bool) {
	b := Bounds(cx, cy)
	s.Rect(b.X, b.Y, b.Width, b.Height, panelFill)
	strokeRect(s, b, panelBorder, 1)

	if f.phase == PhaseConfirmed {
		a := f.Opacity()
		s.Text("Welcome aboard!", cx, cy-20, headingFont, starfield.TextAlignCenter, starfield.BaselineMiddle, accent.WithAlpha(a))
		s.Text("Thank you for signing up. Your journey begins now.", cx, cy+24, bodyFont,
			starfield.TextAlignCenter, starfield.BaselineMiddle, starfield.ColorWhite.WithAlpha(a))
		return
	}

	s.Text("Join the Journey", cx, b.Y+44, headingFont, starfield.TextAlignCenter, starfield.BaselineMiddle, starfield.ColorWhite)
	s.Text("Sign up to explore the universe with us", cx, b.Y+84, bodyFont,
		starfield.TextAlignCenter, starfield.BaselineMiddle, starfield.ColorWhite.WithAlpha(0.7))

	f.drawField(s, FieldName, "Your Name", cx, cy, cursor)
	f.drawField(s, FieldEmail, "Your Email", cx, cy, cursor)

	btn := ButtonBounds(cx, cy)
	s.Rect(btn.X, btn.Y, btn.Width, btn.Height, accent)
	s.Text("Launch", cx, btn.Y+btn.Height/2, starfield.Font{Size: 16, Bold: true},
		starfield.TextAlignCenter, starfield.BaselineMiddle, buttonText)

	if f.err != nil {
		s.Text(errorMessage(f.err), cx, b.Y+b.Height-10, bodyFont, starfield.TextAlignCenter, starfield.BaselineBottom, errorText)
	}
}

func (f *Form) drawField(s starfield.Surface, field Field, placeholder string, cx, cy float64, cursor bool) {
	r := FieldBounds(field, cx, cy)
	focused := f.focus == field
	fill := inputFill
	if focused {
		fill = focusFill
		strokeRect(s, starfield.Rect{X: r.X - 3, Y: r.Y - 3, Width: r.Width + 6, Height: r.Height + 6}, focusRing, 3)
	}
	s.Rect(r.X, r.Y, r.Width, r.Height, fill)

	val := f.name
	if field == FieldEmail {
		val = f.email
	}
	tx, ty := r.X+12, r.Y+r.Height/2
	switch {
	case len(val) > 0:
		txt := string(val)
		if focused && cursor {
			txt += "|"
		}
		s.Text(txt, tx, ty, bodyFont, starfield.TextAlignLeft, starfield.BaselineMiddle, starfield.ColorWhite)
	case focused && cursor:
		s.Text("|", tx, ty, bodyFont, starfield.TextAlignLeft, starfield.BaselineMiddle, starfield.ColorWhite)
	default:
		s.Text(placeholder, tx, ty, bodyFont, starfield.TextAlignLeft, starfield.BaselineMiddle, starfield.ColorWhite.WithAlpha(0.5))
	}
}

func errorMessage(err error) string {
	switch err {
	case ErrNameRequired:
		return "Please enter your name."
	case ErrEmailRequired:
		return "Please enter your email."
	case ErrEmailInvalid:
		return "That email address does not look right."
	}
	return err.Error()
}

func strokeRect(s starfield.Surface, r starfield.Rect, c starfield.Color, width float64) {
	x0, y0, x1, y1 := r.X, r.Y, r.X+r.Width, r.Y+r.Height
	s.Line(x0, y0, x1, y0, c, width)
	s.Line(x1, y0, x1, y1, c, width)
	s.Line(x1, y1, x0, y1, c, width)
	s.Line(x0, y1, x0, y0, c, width)
}
