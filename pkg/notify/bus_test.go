package notify

import (
	"context"
	"reflect"
	"testing"
	"time"

	"tableflip.dev/abcinema/pkg/store"
)

func TestEmitDeliversInSubscriptionOrder(t *testing.T) {
	b := New()
	var got []string
	b.Subscribe(func() { got = append(got, "a") })
	b.Subscribe(func() { got = append(got, "b") })
	b.Subscribe(func() { got = append(got, "c") })

	b.Emit()

	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	b := New()
	calls := 0
	unsub := b.Subscribe(func() { calls++ })
	other := 0
	b.Subscribe(func() { other++ })

	unsub()
	unsub()
	b.Emit()

	if calls != 0 {
		t.Fatalf("unsubscribed listener called %d times", calls)
	}
	if other != 1 {
		t.Fatalf("remaining listener called %d times, want 1", other)
	}
	if b.Len() != 1 {
		t.Fatalf("expected 1 listener, got %d", b.Len())
	}
}

func TestPanickingListenerDoesNotStopOthers(t *testing.T) {
	b := New()
	reached := false
	b.Subscribe(func() { panic("boom") })
	b.Subscribe(func() { reached = true })

	b.Emit()

	if !reached {
		t.Fatal("listener after panicking one was not called")
	}
}

func TestUnsubscribeDuringEmit(t *testing.T) {
	b := New()
	var unsub func()
	calls := 0
	unsub = b.Subscribe(func() {
		calls++
		unsub()
	})
	b.Emit()
	b.Emit()
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestBridgeForwardsStoreEvents(t *testing.T) {
	b := New()
	fired := make(chan struct{}, 1)
	b.Subscribe(func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	})

	events := make(chan store.Event, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		Bridge(ctx, events, b)
		close(done)
	}()

	events <- store.Event{Key: "ab_favorites"}
	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("bridge did not emit")
	}

	close(events)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("bridge did not return after channel close")
	}
}
