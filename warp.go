package starfield

import "math/rand/v2"

const (
	warpFocal      = 128.0 // perspective constant K in scale = K/z
	warpStreak     = 30.0  // streak length at full depth factor
	warpBaseSpeed  = 3.0
	warpDepthSpeed = 4.0
	warpGlowAlpha  = 0.4
)

// warpGrays is the gray level for each color class.
var warpGrays = [3]int{180, 220, 150}

// WarpStar is a star flying toward the viewer. X and Y are centered
// coordinates; Z is depth in (0, width].
type WarpStar struct {
	X, Y, Z float64
	Class   uint8
}

// warpVariant projects stars with a perspective divide and draws each as a
// streak with a glow head.
type warpVariant struct {
	w, h   float64
	bounds Rect
}

// NewWarpField returns a warp field of n stars on a w×h canvas.
func NewWarpField(w, h, n int) *ParticleField[WarpStar] {
	v := &warpVariant{
		w:      float64(w),
		h:      float64(h),
		bounds: Rect{0, 0, float64(w), float64(h)},
	}
	return newParticleField[WarpStar](EffectWarp, Hex(0x0a0a0a), n, v)
}

func (v *warpVariant) Seed(p *WarpStar) {
	v.Respawn(p)
	p.Z = Range{1, v.w}.Random()
}

// Respawn places p at the far plane with a fresh position and color class.
func (v *warpVariant) Respawn(p *WarpStar) {
	p.X = Range{-v.w / 2, v.w / 2}.Random()
	p.Y = Range{-v.h / 2, v.h / 2}.Random()
	p.Z = v.w
	p.Class = uint8(rand.IntN(len(warpGrays)))
}

// Project returns the screen position of p and whether it lies on the canvas.
func (v *warpVariant) Project(p *WarpStar) (sx, sy float64, visible bool) {
	scale := warpFocal / p.Z
	sx = p.X*scale + v.w/2
	sy = p.Y*scale + v.h/2
	return sx, sy, v.bounds.ContainsHalfOpen(sx, sy)
}

// depth returns the depth factor in [0, 1): 0 at the far plane.
func (v *warpVariant) depth(z float64) float64 {
	return 1 - z/v.w
}

func (v *warpVariant) Begin(Surface) {}

func (v *warpVariant) End(Surface) {}

func (v *warpVariant) Step(s Surface, p *WarpStar) {
	// A star at or behind the viewer would divide by zero or project
	// mirrored; send it back to the far plane first.
	if p.Z <= 0 {
		v.Respawn(p)
	}
	d := v.depth(p.Z)

	if sx, sy, ok := v.Project(p); ok {
		length := warpStreak * d
		dx := p.X / p.Z * length
		dy := p.Y / p.Z * length
		gray := warpGrays[int(p.Class)%len(warpGrays)]
		alpha := 0.2 + d*0.5

		s.Line(sx, sy, sx+dx, sy+dy, Gray(gray, alpha), 0.5+d*1.5)
		s.Circle(sx+dx, sy+dy, 1.5+d*2, Gray(gray, alpha*warpGlowAlpha))
	}

	p.Z -= warpBaseSpeed + d*warpDepthSpeed
	if p.Z <= 0 {
		v.Respawn(p)
	}
}
