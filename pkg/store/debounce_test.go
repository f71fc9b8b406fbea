package store

import (
	"errors"
	"sync"
	"testing"
	"time"
)

type countingStore struct {
	*Memory
	mu     sync.Mutex
	saves  int
	failed error
}

func (c *countingStore) Save(key string, data []byte) error {
	c.mu.Lock()
	c.saves++
	err := c.failed
	c.mu.Unlock()
	if err != nil {
		return err
	}
	return c.Memory.Save(key, data)
}

func (c *countingStore) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saves
}

func TestDebounceCoalescesWrites(t *testing.T) {
	inner := &countingStore{Memory: NewMemory()}
	d := Debounce(inner, time.Hour, nil)

	for _, v := range []string{"1", "2", "3"} {
		if err := d.Save(KeyTasks, []byte(v)); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	if inner.count() != 0 {
		t.Fatalf("writes before flush = %d", inner.count())
	}
	if err := d.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if inner.count() != 1 {
		t.Fatalf("writes after flush = %d, want 1", inner.count())
	}
	got, _ := inner.Load(KeyTasks)
	if string(got) != "3" {
		t.Fatalf("stored %q, want latest value", got)
	}
}

func TestDebounceLoadCommitsPendingKey(t *testing.T) {
	inner := &countingStore{Memory: NewMemory()}
	d := Debounce(inner, time.Hour, nil)
	_ = d.Save(KeyTasks, []byte("pending"))
	_ = d.Save(KeyNotifications, []byte("other"))

	got, err := d.Load(KeyTasks)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != "pending" {
		t.Fatalf("load = %q", got)
	}
	if _, err := inner.Load(KeyNotifications); !errors.Is(err, ErrNotExist) {
		t.Fatalf("unrelated key should still be pending, got %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := inner.Load(KeyNotifications); err != nil {
		t.Fatalf("close should flush: %v", err)
	}
}

func TestDebounceBackgroundFlushReportsErrors(t *testing.T) {
	inner := &countingStore{Memory: NewMemory(), failed: errors.New("disk full")}
	reported := make(chan string, 1)
	d := Debounce(inner, 5*time.Millisecond, func(key string, err error) {
		reported <- key
	})
	_ = d.Save(KeyTasks, []byte("x"))

	select {
	case key := <-reported:
		if key != KeyTasks {
			t.Fatalf("reported key %q", key)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("background flush error not reported")
	}
}
