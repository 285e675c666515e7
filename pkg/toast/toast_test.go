package toast

import (
	"sync"
	"testing"
	"time"
)

type fakeTimer struct {
	s       *fakeScheduler
	at      time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

type fakeScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*fakeTimer
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{s: s, at: s.now + d, fn: f}
	s.timers = append(s.timers, t)
	return t
}

// Advance moves the clock forward, firing due timers in deadline order.
// Timers scheduled by callbacks fire in the same call when already due.
func (s *fakeScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()
	for {
		s.mu.Lock()
		var next *fakeTimer
		for _, t := range s.timers {
			if t.stopped || t.fired || t.at > target {
				continue
			}
			if next == nil || t.at < next.at {
				next = t
			}
		}
		if next == nil {
			s.now = target
			s.mu.Unlock()
			return
		}
		s.now = next.at
		next.fired = true
		s.mu.Unlock()
		next.fn()
	}
}

func (s *fakeScheduler) live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func texts(msgs []Message) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.Text
	}
	return out
}

func TestTwoPhaseRemoval(t *testing.T) {
	sched := &fakeScheduler{}
	c := New(WithScheduler(sched))
	c.Show("Added to Favorites")

	sched.Advance(2499 * time.Millisecond)
	if msgs := c.Messages(); len(msgs) != 1 || msgs[0].Phase != PhaseVisible {
		t.Fatalf("Messages() = %+v", msgs)
	}
	sched.Advance(time.Millisecond)
	if msgs := c.Messages(); len(msgs) != 1 || msgs[0].Phase != PhaseExiting {
		t.Fatalf("Messages() = %+v", msgs)
	}
	sched.Advance(299 * time.Millisecond)
	if len(c.Messages()) != 1 {
		t.Fatalf("removed too early")
	}
	sched.Advance(time.Millisecond)
	if len(c.Messages()) != 0 {
		t.Fatalf("Messages() = %+v", c.Messages())
	}
}

func TestCapDropsOldest(t *testing.T) {
	sched := &fakeScheduler{}
	c := New(WithScheduler(sched))
	for _, s := range []string{"a", "b", "c", "d"} {
		c.Show(s)
	}
	got := texts(c.Messages())
	if len(got) != 3 || got[0] != "b" || got[2] != "d" {
		t.Fatalf("Messages() = %v", got)
	}
	if sched.live() != 3 {
		t.Fatalf("dropped message kept a live timer")
	}
}

func TestDismissShortCircuits(t *testing.T) {
	sched := &fakeScheduler{}
	c := New(WithScheduler(sched))
	id := c.Show("hello")
	sched.Advance(time.Second)

	c.Dismiss(id)
	if msgs := c.Messages(); msgs[0].Phase != PhaseExiting {
		t.Fatalf("Phase = %v", msgs[0].Phase)
	}
	// Dismissing again while exiting does not restart the exit timer.
	sched.Advance(200 * time.Millisecond)
	c.Dismiss(id)
	sched.Advance(100 * time.Millisecond)
	if len(c.Messages()) != 0 {
		t.Fatalf("Messages() = %+v", c.Messages())
	}
	// The original visible timer was stopped.
	sched.Advance(5 * time.Second)
	c.Dismiss(id)
	c.Dismiss("unknown")
	if sched.live() != 0 {
		t.Fatalf("timers left running")
	}
}

func TestIDsAreUnique(t *testing.T) {
	c := New(WithScheduler(&fakeScheduler{}))
	a := c.Show("x")
	b := c.Show("x")
	if a == "" || a == b {
		t.Fatalf("ids %q %q", a, b)
	}
}

func TestOnChangeAndClose(t *testing.T) {
	sched := &fakeScheduler{}
	c := New(WithScheduler(sched), WithTimings(time.Second, 100*time.Millisecond), WithMax(1))
	calls := 0
	c.OnChange(func() {
		_ = c.Messages()
		calls++
	})
	c.Show("a")
	sched.Advance(time.Second + 100*time.Millisecond)
	if calls != 3 {
		t.Fatalf("OnChange calls = %d, want 3", calls)
	}

	c.Show("b")
	c.Close()
	if len(c.Messages()) != 0 || sched.live() != 0 {
		t.Fatalf("Close() left state behind")
	}
	if id := c.Show("c"); id != "" {
		t.Fatalf("Show() after Close returned %q", id)
	}
}
