package term

import (
	"context"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/starfield"
)

// LoopConfig controls Loop.
type LoopConfig struct {
	// FPS is the frame rate; zero selects 30.
	FPS int
	// Log receives lifecycle messages; nil selects slog.Default().
	Log *slog.Logger
	// OnKey, when set, receives every key that does not quit. It runs on
	// the frame goroutine.
	OnKey func(*tcell.EventKey)
}

// Loop runs frames until ctx is done or the user presses Esc, q or Ctrl-C.
// Each frame runs the scheduler once and presents the surface. Event
// polling happens on its own goroutine; frames always run on the caller's.
func Loop(ctx context.Context, screen tcell.Screen, sched *starfield.FrameScheduler, surface *Surface, cfg LoopConfig) error {
	if cfg.FPS <= 0 {
		cfg.FPS = 30
	}
	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(cfg.FPS))
	defer ticker.Stop()

	log.Debug("terminal loop started", "fps", cfg.FPS)
	for {
		select {
		case <-ctx.Done():
			log.Debug("terminal loop stopped", "reason", ctx.Err())
			return nil
		case ev := <-events:
			if isQuit(ev) {
				log.Debug("terminal loop stopped", "reason", "quit key")
				return nil
			}
			if k, ok := ev.(*tcell.EventKey); ok && cfg.OnKey != nil {
				cfg.OnKey(k)
			}
		case <-ticker.C:
			if sched.RunFrame() > 0 {
				surface.Present()
			}
		}
	}
}

func isQuit(ev tcell.Event) bool {
	k, ok := ev.(*tcell.EventKey)
	if !ok {
		return false
	}
	switch k.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return k.Rune() == 'q'
	}
	return false
}
