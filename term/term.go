// Package term draws starfields on a terminal through tcell.
//
// Each terminal cell stands for a CellW×CellH block of virtual pixels, so
// effects keep their pixel-space math. Shapes are rasterized at cell
// resolution into a color buffer with source-over blending; Present copies
// the buffer to the screen as background colors.
package term

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/starfield"
)

// Default virtual pixel size of one terminal cell. Cells are roughly twice
// as tall as they are wide.
const (
	DefaultCellW = 8
	DefaultCellH = 16
)

// Canvas is a starfield.Canvas backed by a tcell screen. Its size is the
// screen size at creation time, in virtual pixels.
type Canvas struct {
	screen       tcell.Screen
	cols, rows   int
	cellW, cellH int
	surface      *Surface
}

// NewCanvas captures the screen size once. cellW and cellH of zero select
// the defaults.
func NewCanvas(screen tcell.Screen, cellW, cellH int) (*Canvas, error) {
	if screen == nil {
		return nil, fmt.Errorf("term canvas: %w", starfield.ErrNoSurface)
	}
	if cellW <= 0 {
		cellW = DefaultCellW
	}
	if cellH <= 0 {
		cellH = DefaultCellH
	}
	cols, rows := screen.Size()
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("term canvas %dx%d cells: %w", cols, rows, starfield.ErrInvalidCanvas)
	}
	return &Canvas{screen: screen, cols: cols, rows: rows, cellW: cellW, cellH: cellH}, nil
}

// Size implements starfield.Canvas.
func (c *Canvas) Size() (int, int) {
	return c.cols * c.cellW, c.rows * c.cellH
}

// Surface implements starfield.Canvas. The same surface is returned on
// every call.
func (c *Canvas) Surface() (starfield.Surface, error) {
	if c.surface == nil {
		c.surface = newSurface(c.screen, c.cols, c.rows, c.cellW, c.cellH)
	}
	return c.surface, nil
}

type glyph struct {
	r     rune
	color starfield.Color
}

// Surface rasterizes draw calls into a per-cell color buffer.
type Surface struct {
	screen       tcell.Screen
	cols, rows   int
	cellW, cellH float64
	cells        []starfield.Color
	glyphs       map[int]glyph
}

func newSurface(screen tcell.Screen, cols, rows, cellW, cellH int) *Surface {
	return &Surface{
		screen: screen,
		cols:   cols,
		rows:   rows,
		cellW:  float64(cellW),
		cellH:  float64(cellH),
		cells:  make([]starfield.Color, cols*rows),
		glyphs: make(map[int]glyph),
	}
}

// Size implements starfield.Surface.
func (s *Surface) Size() (int, int) {
	return s.cols * int(s.cellW), s.rows * int(s.cellH)
}

// Cell returns the blended color of a cell.
func (s *Surface) Cell(col, row int) starfield.Color {
	if col < 0 || col >= s.cols || row < 0 || row >= s.rows {
		return starfield.Color{}
	}
	return s.cells[row*s.cols+col]
}

// Clear implements starfield.Surface.
func (s *Surface) Clear(c starfield.Color) {
	c.A = 1
	for i := range s.cells {
		s.cells[i] = c
	}
	clear(s.glyphs)
}

func (s *Surface) blend(col, row int, c starfield.Color) {
	if col < 0 || col >= s.cols || row < 0 || row >= s.rows {
		return
	}
	i := row*s.cols + col
	s.cells[i] = c.Over(s.cells[i])
}

// Rect implements starfield.Surface. Cells whose centers fall inside the
// rectangle are painted.
func (s *Surface) Rect(x, y, w, h float64, fill starfield.Color) {
	if w <= 0 || h <= 0 || fill.A <= 0 {
		return
	}
	c0 := int(math.Ceil(x/s.cellW - 0.5))
	c1 := int(math.Ceil((x+w)/s.cellW-0.5)) - 1
	r0 := int(math.Ceil(y/s.cellH - 0.5))
	r1 := int(math.Ceil((y+h)/s.cellH-0.5)) - 1
	for row := max(r0, 0); row <= min(r1, s.rows-1); row++ {
		for col := max(c0, 0); col <= min(c1, s.cols-1); col++ {
			s.blend(col, row, fill)
		}
	}
}

// Circle implements starfield.Surface. A cell is painted when its center
// lies inside the disc; discs smaller than a cell paint the cell holding
// their center with alpha scaled by the covered fraction.
func (s *Surface) Circle(cx, cy, radius float64, fill starfield.Color) {
	if radius <= 0 || fill.A <= 0 {
		return
	}
	c0 := int(math.Floor((cx - radius) / s.cellW))
	c1 := int(math.Floor((cx + radius) / s.cellW))
	r0 := int(math.Floor((cy - radius) / s.cellH))
	r1 := int(math.Floor((cy + radius) / s.cellH))

	painted := false
	for row := max(r0, 0); row <= min(r1, s.rows-1); row++ {
		for col := max(c0, 0); col <= min(c1, s.cols-1); col++ {
			px := (float64(col) + 0.5) * s.cellW
			py := (float64(row) + 0.5) * s.cellH
			if (px-cx)*(px-cx)+(py-cy)*(py-cy) <= radius*radius {
				s.blend(col, row, fill)
				painted = true
			}
		}
	}
	if !painted {
		cover := math.Min(1, math.Pi*radius*radius/(s.cellW*s.cellH))
		s.blend(int(math.Floor(cx/s.cellW)), int(math.Floor(cy/s.cellH)), fill.WithAlpha(fill.A*cover))
	}
}

// Line implements starfield.Surface. The segment is walked in cell steps;
// thin strokes are dimmed by their width relative to a cell.
func (s *Surface) Line(x0, y0, x1, y1 float64, stroke starfield.Color, width float64) {
	if width <= 0 || stroke.A <= 0 {
		return
	}
	stroke.A *= math.Min(1, width/math.Min(s.cellW, s.cellH)*2)
	dx := (x1 - x0) / s.cellW
	dy := (y1 - y0) / s.cellH
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	lastCol, lastRow := math.MinInt, math.MinInt
	for i := 0; i <= steps; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		col := int(math.Floor((x0 + (x1-x0)*t) / s.cellW))
		row := int(math.Floor((y0 + (y1-y0)*t) / s.cellH))
		if col == lastCol && row == lastRow {
			continue
		}
		s.blend(col, row, stroke)
		lastCol, lastRow = col, row
	}
}

// Text implements starfield.Surface. Glyphs are placed one per cell; the
// font is ignored.
func (s *Surface) Text(str string, x, y float64, _ starfield.Font, align starfield.TextAlign, baseline starfield.TextBaseline, fill starfield.Color) {
	runes := []rune(str)
	col := int(math.Floor(x / s.cellW))
	switch align {
	case starfield.TextAlignCenter:
		col -= len(runes) / 2
	case starfield.TextAlignRight:
		col -= len(runes)
	}
	row := int(math.Floor(y / s.cellH))
	if baseline == starfield.BaselineBottom {
		row--
	}
	if row < 0 || row >= s.rows {
		return
	}
	for i, r := range runes {
		c := col + i
		if c < 0 || c >= s.cols {
			continue
		}
		s.glyphs[row*s.cols+c] = glyph{r: r, color: fill}
	}
}

// Present copies the buffer to the screen and shows it.
func (s *Surface) Present() {
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			i := row*s.cols + col
			bg := s.cells[i]
			style := tcell.StyleDefault.Background(tcellColor(bg))
			r := ' '
			if g, ok := s.glyphs[i]; ok {
				r = g.r
				style = style.Foreground(tcellColor(g.color.Over(bg)))
			}
			s.screen.SetContent(col, row, r, nil, style)
		}
	}
	s.screen.Show()
}

// tcellColor converts an opaque color to a 24-bit tcell color.
func tcellColor(c starfield.Color) tcell.Color {
	to8 := func(v float64) int32 {
		return int32(math.Round(math.Max(0, math.Min(1, v)) * 255))
	}
	return tcell.NewRGBColor(to8(c.R), to8(c.G), to8(c.B))
}
