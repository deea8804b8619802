package starfield

import "fmt"

// Field is one effect's simulation: a particle population plus the rule that
// paints and advances it. A Field is owned by a single Controller and is
// stepped once per tick.
type Field interface {
	Effect() Effect
	// Len returns the population size, fixed at creation.
	Len() int
	// Background is the color the surface is cleared to before each step.
	Background() Color
	// Step paints the current state onto s and advances every particle by
	// one tick. The surface has already been cleared.
	Step(s Surface)
}

// Variant is the per-effect strategy applied to a population of P.
type Variant[P any] interface {
	// Seed initializes a particle when the population is created.
	Seed(p *P)
	// Begin runs once per tick before any particle is stepped.
	Begin(s Surface)
	// Step paints p and advances it by one tick.
	Step(s Surface, p *P)
	// End runs once per tick after every particle is stepped.
	End(s Surface)
}

// ParticleField couples a fixed-size population with its Variant.
type ParticleField[P any] struct {
	effect     Effect
	background Color
	particles  []P
	variant    Variant[P]
}

// newParticleField creates a field with n seeded particles.
func newParticleField[P any](effect Effect, background Color, n int, v Variant[P]) *ParticleField[P] {
	f := &ParticleField[P]{
		effect:     effect,
		background: background,
		particles:  make([]P, n),
		variant:    v,
	}
	for i := range f.particles {
		v.Seed(&f.particles[i])
	}
	return f
}

// Effect implements Field.
func (f *ParticleField[P]) Effect() Effect { return f.effect }

// Len implements Field.
func (f *ParticleField[P]) Len() int { return len(f.particles) }

// Background implements Field.
func (f *ParticleField[P]) Background() Color { return f.background }

// Particles returns the live population. Callers may mutate elements but
// must not change the slice length.
func (f *ParticleField[P]) Particles() []P {
	return f.particles
}

// Variant returns the strategy driving this field.
func (f *ParticleField[P]) Variant() Variant[P] {
	return f.variant
}

// Step implements Field.
func (f *ParticleField[P]) Step(s Surface) {
	f.variant.Begin(s)
	for i := range f.particles {
		f.variant.Step(s, &f.particles[i])
	}
	f.variant.End(s)
}

// NewField builds the field for effect on a w×h canvas. A count of zero or
// less selects the effect's default population size.
func NewField(effect Effect, w, h, count int) (Field, error) {
	if err := checkSize(w, h); err != nil {
		return nil, fmt.Errorf("new %s field %dx%d: %w", effect, w, h, err)
	}
	if count <= 0 {
		count = effect.DefaultCount()
	}
	switch effect {
	case EffectWarp:
		return NewWarpField(w, h, count), nil
	case EffectTwinkle:
		return NewTwinkleField(w, h, count), nil
	case EffectSpiral:
		return NewSpiralField(w, h, count), nil
	}
	return nil, fmt.Errorf("new field: %w: %d", ErrUnknownEffect, uint8(effect))
}
