package starfield

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// EbitenSurface draws onto an *ebiten.Image with antialiased vector shapes.
type EbitenSurface struct {
	img *ebiten.Image
}

// NewEbitenSurface wraps img. It returns ErrNoSurface for a nil image.
func NewEbitenSurface(img *ebiten.Image) (*EbitenSurface, error) {
	if img == nil {
		return nil, ErrNoSurface
	}
	b := img.Bounds()
	if err := checkSize(b.Dx(), b.Dy()); err != nil {
		return nil, err
	}
	return &EbitenSurface{img: img}, nil
}

// Image returns the underlying image.
func (s *EbitenSurface) Image() *ebiten.Image {
	return s.img
}

// Size implements Surface.
func (s *EbitenSurface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Clear implements Surface.
func (s *EbitenSurface) Clear(c Color) {
	s.img.Fill(c.WithAlpha(1).RGBA())
}

// Rect implements Surface.
func (s *EbitenSurface) Rect(x, y, w, h float64, fill Color) {
	if w <= 0 || h <= 0 || fill.A <= 0 {
		return
	}
	vector.DrawFilledRect(s.img, float32(x), float32(y), float32(w), float32(h), fill.RGBA(), true)
}

// Circle implements Surface.
func (s *EbitenSurface) Circle(cx, cy, radius float64, fill Color) {
	if radius <= 0 || fill.A <= 0 {
		return
	}
	vector.DrawFilledCircle(s.img, float32(cx), float32(cy), float32(radius), fill.RGBA(), true)
}

// Line implements Surface.
func (s *EbitenSurface) Line(x0, y0, x1, y1 float64, stroke Color, width float64) {
	if width <= 0 || stroke.A <= 0 {
		return
	}
	vector.StrokeLine(s.img, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), stroke.RGBA(), true)
}

// Text implements Surface.
func (s *EbitenSurface) Text(str string, x, y float64, font Font, align TextAlign, baseline TextBaseline, fill Color) {
	face, err := faceFor(font)
	if err != nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(fill.RGBA())
	op.LineSpacing = face.Size * 1.4
	switch align {
	case TextAlignCenter:
		op.PrimaryAlign = text.AlignCenter
	case TextAlignRight:
		op.PrimaryAlign = text.AlignEnd
	}
	switch baseline {
	case BaselineMiddle:
		op.SecondaryAlign = text.AlignCenter
	case BaselineBottom:
		op.SecondaryAlign = text.AlignEnd
	}
	text.Draw(s.img, str, face, op)
}

// MeasureText returns the rendered size of s in font.
func MeasureText(s string, font Font) (w, h float64) {
	face, err := faceFor(font)
	if err != nil {
		return 0, 0
	}
	return text.Measure(s, face, face.Size*1.4)
}

var (
	fontOnce    sync.Once
	fontErr     error
	regularSrc  *text.GoTextFaceSource
	boldSrc     *text.GoTextFaceSource
	faceCacheMu sync.Mutex
	faceCache   = map[Font]*text.GoTextFace{}
)

func loadFontSources() {
	regularSrc, fontErr = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if fontErr != nil {
		fontErr = fmt.Errorf("starfield: parse regular font: %w", fontErr)
		return
	}
	boldSrc, fontErr = text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if fontErr != nil {
		fontErr = fmt.Errorf("starfield: parse bold font: %w", fontErr)
	}
}

// faceFor returns a cached Go font face for f.
func faceFor(f Font) (*text.GoTextFace, error) {
	fontOnce.Do(loadFontSources)
	if fontErr != nil {
		return nil, fontErr
	}
	if f.Size <= 0 {
		f.Size = DefaultFont.Size
	}
	faceCacheMu.Lock()
	defer faceCacheMu.Unlock()
	if face, ok := faceCache[f]; ok {
		return face, nil
	}
	src := regularSrc
	if f.Bold {
		src = boldSrc
	}
	face := &text.GoTextFace{Source: src, Size: f.Size}
	faceCache[f] = face
	return face, nil
}

// ImageCanvas is an offscreen ebiten image sized once at creation.
type ImageCanvas struct {
	img *ebiten.Image
}

// NewImageCanvas allocates a w×h offscreen canvas.
func NewImageCanvas(w, h int) (*ImageCanvas, error) {
	if err := checkSize(w, h); err != nil {
		return nil, fmt.Errorf("new image canvas %dx%d: %w", w, h, err)
	}
	return &ImageCanvas{img: ebiten.NewImage(w, h)}, nil
}

// Image returns the canvas image for compositing onto the screen.
func (c *ImageCanvas) Image() *ebiten.Image {
	return c.img
}

// Size implements Canvas.
func (c *ImageCanvas) Size() (int, int) {
	if c.img == nil {
		return 0, 0
	}
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

// Surface implements Canvas.
func (c *ImageCanvas) Surface() (Surface, error) {
	return NewEbitenSurface(c.img)
}

// Dispose releases the canvas image.
func (c *ImageCanvas) Dispose() {
	if c.img != nil {
		c.img.Deallocate()
		c.img = nil
	}
}
