// Package toast is a small queue of transient notifications. Each message is
// visible, then exiting, then removed, driven by two timers.
package toast

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultVisible = 2500 * time.Millisecond
	DefaultExit    = 300 * time.Millisecond
	DefaultMax     = 3
)

// Phase is where a message is in its lifecycle.
type Phase int

const (
	PhaseVisible Phase = iota
	PhaseExiting
)

func (p Phase) String() string {
	if p == PhaseExiting {
		return "exiting"
	}
	return "visible"
}

// Message is a snapshot of one queued toast.
type Message struct {
	ID        string
	Text      string
	Phase     Phase
	CreatedAt time.Time
}

// Timer is a cancellable pending callback.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

type entry struct {
	Message
	timer Timer
}

// Channel holds the visible toasts.
type Channel struct {
	sched   Scheduler
	now     func() time.Time
	visible time.Duration
	exit    time.Duration
	max     int

	mu       sync.Mutex
	entries  []*entry
	onChange func()
	closed   bool
}

// Option configures a Channel.
type Option func(*Channel)

// WithScheduler replaces the timer source.
func WithScheduler(s Scheduler) Option {
	return func(c *Channel) {
		if s != nil {
			c.sched = s
		}
	}
}

// WithTimings sets how long a message stays visible and how long its exit
// phase lasts.
func WithTimings(visible, exit time.Duration) Option {
	return func(c *Channel) {
		if visible > 0 {
			c.visible = visible
		}
		if exit > 0 {
			c.exit = exit
		}
	}
}

// WithMax sets how many messages may be queued at once.
func WithMax(n int) Option {
	return func(c *Channel) {
		if n > 0 {
			c.max = n
		}
	}
}

// WithClock sets the clock used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(c *Channel) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates a Channel.
func New(opts ...Option) *Channel {
	c := &Channel{
		sched:   realScheduler{},
		now:     time.Now,
		visible: DefaultVisible,
		exit:    DefaultExit,
		max:     DefaultMax,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// OnChange registers fn to run after the queue changes. fn runs without the
// channel lock held.
func (c *Channel) OnChange(fn func()) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// Show enqueues text and returns its id. The oldest messages are dropped
// once the queue exceeds its cap.
func (c *Channel) Show(text string) string {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ""
	}
	e := &entry{Message: Message{
		ID:        uuid.NewString(),
		Text:      text,
		Phase:     PhaseVisible,
		CreatedAt: c.now(),
	}}
	id := e.ID
	e.timer = c.sched.AfterFunc(c.visible, func() { c.beginExit(id) })
	c.entries = append(c.entries, e)
	for len(c.entries) > c.max {
		c.entries[0].timer.Stop()
		c.entries = c.entries[1:]
	}
	c.commit()
	return id
}

// Dismiss starts the exit phase of id immediately. Unknown ids and messages
// already exiting are ignored.
func (c *Channel) Dismiss(id string) {
	c.beginExit(id)
}

// Messages returns the queue, oldest first.
func (c *Channel) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.Message
	}
	return out
}

// Close stops every timer and empties the queue.
func (c *Channel) Close() {
	c.mu.Lock()
	for _, e := range c.entries {
		e.timer.Stop()
	}
	c.entries = nil
	c.closed = true
	c.onChange = nil
	c.mu.Unlock()
}

func (c *Channel) beginExit(id string) {
	c.mu.Lock()
	e := c.find(id)
	if e == nil || e.Phase != PhaseVisible {
		c.mu.Unlock()
		return
	}
	e.timer.Stop()
	e.Phase = PhaseExiting
	e.timer = c.sched.AfterFunc(c.exit, func() { c.remove(id) })
	c.commit()
}

func (c *Channel) remove(id string) {
	c.mu.Lock()
	for i, e := range c.entries {
		if e.ID == id {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			c.commit()
			return
		}
	}
	c.mu.Unlock()
}

func (c *Channel) find(id string) *entry {
	for _, e := range c.entries {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// commit releases c.mu and notifies the listener.
func (c *Channel) commit() {
	fn := c.onChange
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}
