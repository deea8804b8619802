// Package starfield renders decorative, continuously animated particle
// fields on top of [Ebitengine] or any other 2D backend.
//
// Three effects are available: [EffectWarp] streaks stars radially toward
// the viewer, [EffectTwinkle] fades fixed stars in and out with glow and
// sparkle, and [EffectSpiral] rotates a four-armed galaxy around a pulsing
// core.
//
// # Sessions
//
// A [Controller] binds one effect to one [Canvas] for its lifetime. The
// canvas size is captured once; the controller seeds a fixed population and
// then, every frame, clears the surface, paints and advances the particles,
// and asks its [Scheduler] for the next frame:
//
//	sched := starfield.NewFrameScheduler()
//	canvas, _ := starfield.NewImageCanvas(800, 600)
//	ctrl, err := starfield.NewController(starfield.EffectWarp, canvas, sched)
//	if err != nil {
//		return err
//	}
//	ctrl.Start()
//	defer ctrl.Stop()
//
//	// once per display frame, from the host loop:
//	sched.RunFrame()
//
// Stop cancels the pending frame so nothing keeps running after the owning
// view goes away.
//
// # Surfaces
//
// Effects draw through the small [Surface] interface: clear, filled
// rectangle, filled circle, stroked line and text. [EbitenSurface] paints
// onto an *ebiten.Image, the term package paints onto a terminal, and
// [Recorder] keeps the calls for inspection.
//
// [Ebitengine]: https://ebitengine.org
package starfield
