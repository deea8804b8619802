package starfield

import "math"

const (
	twinkleHaloAt    = 0.5  // brightness above which the glow halo is drawn
	twinkleSparkleAt = 0.85 // brightness above which the sparkle cross is drawn
)

// TwinkleStar is a fixed point whose brightness oscillates with its phase.
type TwinkleStar struct {
	X, Y     float64
	BaseSize float64
	Phase    float64
	Speed    float64
	BaseGray float64
}

// TwinkleLook is the derived appearance of a TwinkleStar at its current phase.
type TwinkleLook struct {
	Brightness float64
	Size       float64
	Gray       int
	Alpha      float64
}

// Look computes the star's appearance from its phase.
func (p *TwinkleStar) Look() TwinkleLook {
	b := (math.Sin(p.Phase) + 1) / 2
	return TwinkleLook{
		Brightness: b,
		Size:       p.BaseSize * (0.3 + b*0.5),
		Gray:       int(p.BaseGray + b*60),
		Alpha:      0.3 + b*0.5,
	}
}

type twinkleVariant struct {
	w, h float64
}

// NewTwinkleField returns a twinkle field of n stars on a w×h canvas.
func NewTwinkleField(w, h, n int) *ParticleField[TwinkleStar] {
	v := &twinkleVariant{w: float64(w), h: float64(h)}
	return newParticleField[TwinkleStar](EffectTwinkle, Hex(0x080808), n, v)
}

func (v *twinkleVariant) Seed(p *TwinkleStar) {
	*p = TwinkleStar{
		X:        Range{0, v.w}.Random(),
		Y:        Range{0, v.h}.Random(),
		BaseSize: Range{0.8, 3.0}.Random(),
		Phase:    Range{0, 2 * math.Pi}.Random(),
		Speed:    Range{0.015, 0.06}.Random(),
		BaseGray: Range{120, 200}.Random(),
	}
}

func (v *twinkleVariant) Begin(Surface) {}

func (v *twinkleVariant) End(Surface) {}

func (v *twinkleVariant) Step(s Surface, p *TwinkleStar) {
	look := p.Look()
	c := Gray(look.Gray, look.Alpha)
	s.Circle(p.X, p.Y, look.Size, c)

	if look.Brightness > twinkleHaloAt {
		s.Circle(p.X, p.Y, look.Size*2, c.WithAlpha(look.Alpha*0.2))
		s.Circle(p.X, p.Y, look.Size*3, c.WithAlpha(look.Alpha*0.1))
	}

	if look.Brightness > twinkleSparkleAt {
		spark := ColorWhite.WithAlpha((look.Brightness - twinkleSparkleAt) * 4 * 0.5)
		arm := look.Size * 3
		s.Line(p.X-arm, p.Y, p.X+arm, p.Y, spark, 0.5)
		s.Line(p.X, p.Y-arm, p.X, p.Y+arm, spark, 0.5)
	}

	// Phase grows without bound; sin supplies the periodicity.
	p.Phase += p.Speed
}
