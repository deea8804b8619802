package starfield

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// State is the lifecycle state of a Controller.
type State uint8

const (
	StateIdle    State = iota // constructed, not yet started
	StateRunning              // a tick is scheduled or running
	StateStopped              // cancelled; terminal
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

type controllerOptions struct {
	log   *slog.Logger
	count int
	debug bool
}

// Option configures a Controller.
type Option func(*controllerOptions)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *controllerOptions) {
		if l != nil {
			o.log = l
		}
	}
}

// WithCount overrides the population size. Zero keeps the effect default.
func WithCount(n int) Option {
	return func(o *controllerOptions) { o.count = n }
}

// WithDebug enables per-frame timing and draw-call statistics, logged at
// debug level.
func WithDebug(enabled bool) Option {
	return func(o *controllerOptions) { o.debug = enabled }
}

// Controller runs one effect on one canvas. It owns the field and the
// pending schedule token; Stop cancels the token so no further ticks run.
type Controller struct {
	mu      sync.Mutex
	effect  Effect
	field   Field
	surface Surface
	sched   Scheduler
	token   Token
	state   State
	frames  uint64
	log     *slog.Logger

	debug bool
	rec   *Recorder
	stats debugStats
}

// NewController provisions a surface from canvas and seeds the effect's
// field. It fails when the canvas has no usable size or surface; no
// animation is scheduled until Start.
func NewController(effect Effect, canvas Canvas, sched Scheduler, opts ...Option) (*Controller, error) {
	o := controllerOptions{log: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if canvas == nil || sched == nil {
		return nil, fmt.Errorf("%s session: %w", effect, ErrNoSurface)
	}
	w, h := canvas.Size()
	if err := checkSize(w, h); err != nil {
		return nil, fmt.Errorf("%s session %dx%d: %w", effect, w, h, err)
	}
	surface, err := canvas.Surface()
	if err != nil {
		return nil, fmt.Errorf("%s session: %w", effect, err)
	}
	if surface == nil {
		return nil, fmt.Errorf("%s session: %w", effect, ErrNoSurface)
	}
	field, err := NewField(effect, w, h, o.count)
	if err != nil {
		return nil, err
	}

	c := &Controller{
		effect:  effect,
		field:   field,
		surface: surface,
		sched:   sched,
		log:     o.log.With("effect", effect.String()),
		debug:   o.debug,
	}
	if c.debug {
		c.rec = &Recorder{Next: surface}
		c.surface = c.rec
	}
	c.log.Debug("session created", "width", w, "height", h, "particles", field.Len())
	return c, nil
}

// Start schedules the first tick. Starting a running session is a no-op;
// a stopped session cannot be restarted.
func (c *Controller) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.state {
	case StateRunning:
		return nil
	case StateStopped:
		return ErrStopped
	}
	tok, err := c.sched.Schedule(c.tick)
	if err != nil {
		c.state = StateStopped
		return fmt.Errorf("%s session start: %w", c.effect, err)
	}
	c.token = tok
	c.state = StateRunning
	return nil
}

// Stop cancels the pending tick. It is safe to call more than once and from
// a goroutine other than the one running frames.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateStopped {
		return
	}
	if c.token != 0 {
		c.sched.Cancel(c.token)
		c.token = 0
	}
	c.state = StateStopped
	c.log.Debug("session stopped", "frames", c.frames)
}

// tick clears the surface, steps the field and schedules the next tick.
func (c *Controller) tick() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateRunning {
		return
	}
	c.token = 0

	var t0 time.Time
	if c.debug {
		c.rec.Reset()
		t0 = time.Now()
	}

	c.surface.Clear(c.field.Background())
	c.field.Step(c.surface)
	c.frames++

	if c.debug {
		c.stats.add(time.Since(t0), len(c.rec.Calls)-1)
		if c.stats.frames >= debugLogEvery {
			c.debugLog()
		}
	}

	tok, err := c.sched.Schedule(c.tick)
	if err != nil {
		// Decoration only: stop quietly and leave sibling sessions alone.
		c.state = StateStopped
		c.log.Debug("session stopped: reschedule failed", "err", err, "frames", c.frames)
		return
	}
	c.token = tok
}

// Effect returns the effect this session animates.
func (c *Controller) Effect() Effect {
	return c.effect
}

// Field returns the session's field. It must only be inspected between ticks.
func (c *Controller) Field() Field {
	return c.field
}

// Len returns the population size.
func (c *Controller) Len() int {
	return c.field.Len()
}

// State returns the lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Frames returns how many ticks have completed.
func (c *Controller) Frames() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frames
}
