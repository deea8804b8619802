package starfield

import (
	"errors"
	"testing"
)

func TestFrameSchedulerRunsInSubmissionOrder(t *testing.T) {
	s := NewFrameScheduler()
	var order []int
	for i := 0; i < 3; i++ {
		if _, err := s.Schedule(func() { order = append(order, i) }); err != nil {
			t.Fatalf("Schedule: %v", err)
		}
	}
	if got := s.RunFrame(); got != 3 {
		t.Fatalf("RunFrame = %d, want 3", got)
	}
	if len(order) != 3 || order[0] != 0 || order[1] != 1 || order[2] != 2 {
		t.Errorf("order = %v, want [0 1 2]", order)
	}
	if s.Frame() != 1 {
		t.Errorf("Frame = %d, want 1", s.Frame())
	}
}

func TestFrameSchedulerReschedulesOnNextFrame(t *testing.T) {
	s := NewFrameScheduler()
	calls := 0
	var fn func()
	fn = func() {
		calls++
		s.Schedule(fn)
	}
	s.Schedule(fn)

	for frame := 1; frame <= 5; frame++ {
		s.RunFrame()
		if calls != frame {
			t.Fatalf("after frame %d: calls = %d", frame, calls)
		}
		if s.Pending() != 1 {
			t.Fatalf("after frame %d: pending = %d, want 1", frame, s.Pending())
		}
	}
}

func TestFrameSchedulerTokensAreUnique(t *testing.T) {
	s := NewFrameScheduler()
	seen := map[Token]bool{}
	for i := 0; i < 100; i++ {
		tok, _ := s.Schedule(func() {})
		if tok == 0 || seen[tok] {
			t.Fatalf("token %d reused or zero", tok)
		}
		seen[tok] = true
	}
}

func TestFrameSchedulerCancelPending(t *testing.T) {
	s := NewFrameScheduler()
	ran := false
	tok, _ := s.Schedule(func() { ran = true })
	s.Cancel(tok)
	if s.RunFrame() != 0 || ran {
		t.Error("cancelled callback ran")
	}
	s.Cancel(tok) // unknown token is a no-op
	s.Cancel(12345)
}

func TestFrameSchedulerCancelLaterRequestDuringFrame(t *testing.T) {
	s := NewFrameScheduler()
	secondRan := false
	var second Token
	s.Schedule(func() { s.Cancel(second) })
	second, _ = s.Schedule(func() { secondRan = true })

	if got := s.RunFrame(); got != 1 {
		t.Errorf("RunFrame = %d, want 1", got)
	}
	if secondRan {
		t.Error("request cancelled mid-frame still ran")
	}
}

func TestFrameSchedulerClose(t *testing.T) {
	s := NewFrameScheduler()
	ran := false
	s.Schedule(func() { ran = true })
	s.Close()

	if _, err := s.Schedule(func() {}); !errors.Is(err, ErrSchedulerClosed) {
		t.Errorf("Schedule after Close err = %v, want ErrSchedulerClosed", err)
	}
	if s.RunFrame() != 0 || ran {
		t.Error("pending request ran after Close")
	}
	if s.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", s.Pending())
	}
}
