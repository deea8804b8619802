package starfield

import "sync"

// Token identifies a pending schedule request. The zero Token is never issued.
type Token uint64

// Scheduler runs a callback once before the next repaint. Callbacks that want
// to keep animating must schedule themselves again.
type Scheduler interface {
	// Schedule registers fn to run on the next frame.
	Schedule(fn func()) (Token, error)
	// Cancel drops a pending request. It has no effect on a callback that
	// is already running, and cancelling an unknown token is a no-op.
	Cancel(tok Token)
}

type frameRequest struct {
	tok Token
	fn  func()
}

// FrameScheduler is the host side of Scheduler. The host calls RunFrame once
// per display frame; every request registered before that call runs, in
// submission order. Requests made while a frame runs wait for the next frame.
type FrameScheduler struct {
	mu      sync.Mutex
	next    Token
	pending []frameRequest
	running []frameRequest
	closed  bool
	frame   uint64
}

// NewFrameScheduler returns an empty scheduler.
func NewFrameScheduler() *FrameScheduler {
	return &FrameScheduler{}
}

// Schedule implements Scheduler.
func (s *FrameScheduler) Schedule(fn func()) (Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrSchedulerClosed
	}
	s.next++
	s.pending = append(s.pending, frameRequest{tok: s.next, fn: fn})
	return s.next, nil
}

// Cancel implements Scheduler.
func (s *FrameScheduler) Cancel(tok Token) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.pending {
		if s.pending[i].tok == tok {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
	// A request already taken by RunFrame but not yet invoked is disarmed.
	for i := range s.running {
		if s.running[i].tok == tok {
			s.running[i].fn = nil
			return
		}
	}
}

// RunFrame invokes every pending callback and returns how many ran.
// Callbacks run outside the lock and may call Schedule or Cancel.
func (s *FrameScheduler) RunFrame() int {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return 0
	}
	s.running, s.pending = s.pending, s.running[:0]
	s.frame++
	s.mu.Unlock()

	ran := 0
	for i := 0; ; i++ {
		s.mu.Lock()
		if i >= len(s.running) {
			s.running = s.running[:0]
			s.mu.Unlock()
			return ran
		}
		fn := s.running[i].fn
		s.running[i].fn = nil
		s.mu.Unlock()
		if fn != nil {
			fn()
			ran++
		}
	}
}

// Pending returns the number of requests waiting for the next frame.
func (s *FrameScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Frame returns how many frames have run.
func (s *FrameScheduler) Frame() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame
}

// Close drops all pending requests and rejects new ones.
func (s *FrameScheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.pending = nil
}
