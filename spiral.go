package starfield

import (
	"math"
	"math/rand/v2"
)

const (
	spiralTimeStep   = 0.005
	spiralTwist      = 1.5 // extra rotation at maxDist, in radians
	spiralTrailLen   = 8
	spiralMinDist    = 20.0
	spiralNebulae    = 3
	spiralNebulaGray = 30
)

// spiralArmGrays is the base gray level of each of the four arms.
var spiralArmGrays = [4]int{200, 170, 220, 150}

// SpiralStar orbits the canvas center at a fixed distance.
type SpiralStar struct {
	Angle    float64
	Distance float64
	Size     float64
	Speed    float64
	Arm      uint8
}

// spiralVariant draws a rotating galaxy: drifting nebula clouds, stars with
// trails, and a pulsing core. It keeps its own synthetic clock.
type spiralVariant struct {
	cx, cy  float64
	maxDist float64
	time    float64
}

// NewSpiralField returns a spiral field of n stars on a w×h canvas.
func NewSpiralField(w, h, n int) *ParticleField[SpiralStar] {
	v := &spiralVariant{
		cx:      float64(w) / 2,
		cy:      float64(h) / 2,
		maxDist: math.Min(float64(w), float64(h)) / 2,
	}
	return newParticleField[SpiralStar](EffectSpiral, Hex(0x060606), n, v)
}

// Time returns the synthetic clock, advanced by a fixed step every tick.
func (v *spiralVariant) Time() float64 { return v.time }

// MaxDist returns the radius of the galaxy.
func (v *spiralVariant) MaxDist() float64 { return v.maxDist }

func (v *spiralVariant) Seed(p *SpiralStar) {
	arm := uint8(rand.IntN(len(spiralArmGrays)))
	*p = SpiralStar{
		Angle:    float64(arm)*math.Pi/2 + Range{0, 2 * math.Pi}.Random(),
		Distance: Range{spiralMinDist, math.Max(spiralMinDist, v.maxDist)}.Random(),
		Size:     Range{1.0, 3.5}.Random(),
		Speed:    Range{0.002, 0.008}.Random(),
		Arm:      arm,
	}
}

// DisplayAngle returns the angle p is drawn at: stars further out are
// rotated further ahead, which bends the arms into a spiral.
func (v *spiralVariant) DisplayAngle(p *SpiralStar) float64 {
	return p.Angle + p.Distance/v.maxDist*spiralTwist
}

// TrailAlpha returns the alpha of trail segment i for a star drawn at alpha.
func TrailAlpha(alpha float64, i int) float64 {
	return alpha * (0.3 - float64(i)*0.035)
}

func (v *spiralVariant) Begin(s Surface) {
	v.time += spiralTimeStep
	for i := 0; i < spiralNebulae; i++ {
		fi := float64(i)
		a := v.time*0.2 + fi*2
		s.Circle(
			v.cx+math.Cos(a)*100,
			v.cy+math.Sin(a)*80,
			150+fi*50,
			Gray(spiralNebulaGray+i*5, 0.02),
		)
	}
}

func (v *spiralVariant) Step(s Surface, p *SpiralStar) {
	display := v.DisplayAngle(p)
	x := v.cx + math.Cos(display)*p.Distance
	y := v.cy + math.Sin(display)*p.Distance

	ratio := p.Distance / v.maxDist
	gray := spiralArmGrays[int(p.Arm)%len(spiralArmGrays)] - int(ratio*50)
	alpha := 0.4 + (1-ratio)*0.4
	c := Gray(gray, alpha)

	s.Circle(x, y, p.Size*0.8, c)
	s.Circle(x, y, p.Size*2, c.WithAlpha(alpha*0.15))

	for i := 1; i <= spiralTrailLen; i++ {
		ta := TrailAlpha(alpha, i)
		if ta <= 0 {
			continue
		}
		fi := float64(i)
		angle := display - p.Speed*fi*5
		dist := p.Distance + fi*0.5
		s.Circle(
			v.cx+math.Cos(angle)*dist,
			v.cy+math.Sin(angle)*dist,
			p.Size*(0.6-fi*0.04),
			c.WithAlpha(ta),
		)
	}

	p.Angle += p.Speed
}

func (v *spiralVariant) End(s Surface) {
	pulse := math.Sin(v.time*2)*0.5 + 0.5
	s.Circle(v.cx, v.cy, 60+pulse*15, Gray(150, 0.03+pulse*0.03))
	s.Circle(v.cx, v.cy, 20+pulse*8, Gray(200, 0.05+pulse*0.05))
}
