// Package notify is the process-wide "a list changed, re-read the store"
// signal shared by every view that displays personal lists.
package notify

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"

	"tableflip.dev/abcinema/pkg/store"
)

// Listener is invoked on every Emit. The signal carries no payload.
type Listener func()

// Bus is a synchronous publish/subscribe signal. Emit runs every current
// listener in subscription order before returning.
type Bus struct {
	mu        sync.Mutex
	nextID    uint64
	listeners []subscription
}

type subscription struct {
	id uint64
	fn Listener
}

// New creates an empty bus. Construct one per application (or per test) and
// inject it; there is no package-level instance.
func New() *Bus {
	return &Bus{}
}

// Subscribe registers fn and returns an idempotent unsubscribe function.
func (b *Bus) Subscribe(fn Listener) func() {
	if fn == nil {
		return func() {}
	}
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.listeners = append(b.listeners, subscription{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			for i, s := range b.listeners {
				if s.id == id {
					b.listeners = append(b.listeners[:i:i], b.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

// Emit delivers the signal. Listeners may subscribe or unsubscribe from
// inside a callback; such changes apply from the next Emit.
func (b *Bus) Emit() {
	b.mu.Lock()
	snapshot := make([]subscription, len(b.listeners))
	copy(snapshot, b.listeners)
	b.mu.Unlock()

	for _, s := range snapshot {
		b.call(s.fn)
	}
}

// Len reports the number of active listeners.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners)
}

func (b *Bus) call(fn Listener) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("notify.listener_panic", "panic", r, "stack", string(debug.Stack()))
		}
	}()
	fn()
}

// Bridge forwards store change events (writes from other processes) into bus
// until ctx is done or events is closed.
func Bridge(ctx context.Context, events <-chan store.Event, bus *Bus) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			slog.Debug("notify.external_change", "key", ev.Key)
			bus.Emit()
		}
	}
}
