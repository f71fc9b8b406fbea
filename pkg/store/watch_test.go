package store

import (
	"context"
	"testing"
	"time"
)

func TestDiskWatchEmitsKeyChanges(t *testing.T) {
	d, err := NewDisk(t.TempDir())
	if err != nil {
		t.Fatalf("new disk: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := d.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe before writing.
	time.Sleep(50 * time.Millisecond)

	if err := d.Save(KeyTasks, []byte(`[]`)); err != nil {
		t.Fatalf("save: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventInvalidated {
				return
			}
			if evt.Key != KeyTasks {
				t.Fatalf("expected key %q, got %q", KeyTasks, evt.Key)
			}
			if evt.Type != EventKeyChanged {
				t.Fatalf("expected changed event, got %v", evt.Type)
			}
			return
		case <-deadline:
			t.Fatal("timed out waiting for key change event")
		}
	}
}

func TestDiskWatchClosesOnCancel(t *testing.T) {
	d, err := NewDisk(t.TempDir())
	if err != nil {
		t.Fatalf("new disk: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	ch, err := d.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	cancel()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("channel not closed after cancel")
		}
	}
}

func TestEventThrottleCoalescesPerKey(t *testing.T) {
	throttle := newEventThrottle(10 * time.Millisecond)
	defer throttle.Stop()

	got := make(chan Event, 8)
	send := func(ev Event) { got <- ev }
	throttle.Enqueue(Event{Type: EventKeyChanged, Key: "tasks"}, send)
	throttle.Enqueue(Event{Type: EventKeyChanged, Key: "tasks"}, send)
	throttle.Enqueue(Event{Type: EventKeyRemoved, Key: "notifications"}, send)

	var events []Event
	timeout := time.After(time.Second)
	for len(events) < 2 {
		select {
		case ev := <-got:
			events = append(events, ev)
		case <-timeout:
			t.Fatalf("got %d events, want 2", len(events))
		}
	}
	if events[0].Key != "tasks" || events[1].Key != "notifications" {
		t.Fatalf("unexpected order: %+v", events)
	}
	if events[1].Type != EventKeyRemoved {
		t.Fatalf("expected removed event, got %v", events[1].Type)
	}
}
