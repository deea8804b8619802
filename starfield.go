package starfield

import (
	"errors"
	"fmt"
	"image/color"
	"math/rand/v2"
	"strings"
)

var (
	// ErrInvalidCanvas is returned when a canvas reports non-positive dimensions.
	ErrInvalidCanvas = errors.New("starfield: invalid canvas dimensions")
	// ErrNoSurface is returned when a canvas cannot provide a drawing surface.
	ErrNoSurface = errors.New("starfield: drawing surface unavailable")
	// ErrSchedulerClosed is returned by Schedule after the scheduler is closed.
	ErrSchedulerClosed = errors.New("starfield: scheduler closed")
	// ErrUnknownEffect is returned by ParseEffect for unrecognized names.
	ErrUnknownEffect = errors.New("starfield: unknown effect")
	// ErrStopped is returned when starting a session that was stopped.
	ErrStopped = errors.New("starfield: session stopped")
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when the color is handed to a backend.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is opaque white.
var ColorWhite = Color{1, 1, 1, 1}

// Gray returns a gray color from an 8-bit level and an alpha in [0, 1].
func Gray(level int, alpha float64) Color {
	v := float64(level) / 255
	return Color{v, v, v, alpha}
}

// Hex returns an opaque color from a 0xRRGGBB value.
func Hex(rgb uint32) Color {
	return Color{
		R: float64(rgb>>16&0xff) / 255,
		G: float64(rgb>>8&0xff) / 255,
		B: float64(rgb&0xff) / 255,
		A: 1,
	}
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// RGBA returns the premultiplied 8-bit form of c, suitable for image APIs.
func (c Color) RGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

// Over composites c on top of dst using source-over and returns an opaque
// result when dst is opaque.
func (c Color) Over(dst Color) Color {
	a := clamp01(c.A)
	outA := a + dst.A*(1-a)
	if outA == 0 {
		return Color{}
	}
	mix := func(s, d float64) float64 {
		return (s*a + d*dst.A*(1-a)) / outA
	}
	return Color{mix(c.R, dst.R), mix(c.G, dst.G), mix(c.B, dst.B), outA}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for positions and sizes.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// ContainsHalfOpen reports whether (x, y) lies in [X, X+Width) × [Y, Y+Height).
func (r Rect) ContainsHalfOpen(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width &&
		y >= r.Y && y < r.Y+r.Height
}

// Range is a min/max range used to seed particle fields.
type Range struct {
	Min, Max float64
}

// Random returns a random float64 in [Min, Max).
func (r Range) Random() float64 {
	if r.Min >= r.Max {
		return r.Min
	}
	return r.Min + rand.Float64()*(r.Max-r.Min)
}

// Contains reports whether v lies in [Min, Max].
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Effect selects one of the particle field variants.
type Effect uint8

const (
	EffectWarp    Effect = iota // radial warp streaks
	EffectTwinkle               // ambient twinkling points
	EffectSpiral                // rotating spiral galaxy
)

// Effects lists every effect in page order.
var Effects = []Effect{EffectWarp, EffectTwinkle, EffectSpiral}

var effectNames = [...]string{"warp", "twinkle", "spiral"}

func (e Effect) String() string {
	if int(e) < len(effectNames) {
		return effectNames[e]
	}
	return fmt.Sprintf("Effect(%d)", uint8(e))
}

// ParseEffect returns the Effect with the given case-insensitive name.
func ParseEffect(name string) (Effect, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range effectNames {
		if n == name {
			return Effect(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownEffect, name)
}

// MarshalText implements encoding.TextMarshaler.
func (e Effect) MarshalText() ([]byte, error) {
	if int(e) >= len(effectNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownEffect, uint8(e))
	}
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Effect) UnmarshalText(b []byte) error {
	v, err := ParseEffect(string(b))
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// DefaultCount returns the population size used for e when none is configured.
func (e Effect) DefaultCount() int {
	switch e {
	case EffectWarp:
		return 250
	case EffectTwinkle:
		return 350
	case EffectSpiral:
		return 500
	}
	return 0
}
