package showcase

import (
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const chimeRate = beep.SampleRate(44100)

// Chime plays a short two-note tone when the signup form is submitted.
// Audio is optional: if the speaker cannot start, Play does nothing.
type Chime struct {
	mu    sync.Mutex
	ready bool
	log   *slog.Logger
}

// NewChime returns an uninitialized chime.
func NewChime(log *slog.Logger) *Chime {
	if log == nil {
		log = slog.Default()
	}
	return &Chime{log: log}
}

// Init opens the audio device.
func (c *Chime) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ready {
		return nil
	}
	if err := speaker.Init(chimeRate, chimeRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	c.ready = true
	return nil
}

// Play starts the chime without blocking.
func (c *Chime) Play() {
	c.mu.Lock()
	ready := c.ready
	c.mu.Unlock()
	if !ready {
		return
	}
	s, err := chimeStreamer(chimeRate)
	if err != nil {
		c.log.Warn("chime: build tone", "err", err)
		return
	}
	speaker.Play(s)
}

// Close releases the audio device.
func (c *Chime) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ready {
		speaker.Close()
		c.ready = false
	}
}

// chimeStreamer builds the tone: A5 then E6, at a third of full volume.
func chimeStreamer(rate beep.SampleRate) (beep.Streamer, error) {
	n1, err := generators.SineTone(rate, 880)
	if err != nil {
		return nil, err
	}
	n2, err := generators.SineTone(rate, 1318.51)
	if err != nil {
		return nil, err
	}
	seq := beep.Seq(
		beep.Take(rate.N(90*time.Millisecond), n1),
		beep.Take(rate.N(160*time.Millisecond), n2),
	)
	return &effects.Volume{Streamer: seq, Base: 2, Volume: math.Log2(1.0 / 3)}, nil
}
