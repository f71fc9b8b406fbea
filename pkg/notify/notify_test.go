package notify

import (
	"errors"
	"fmt"
	"testing"

	"tableflip.dev/cmdcenter/pkg/errs"
	"tableflip.dev/cmdcenter/pkg/store"
)

func newTestLog(t *testing.T, s store.Store) *Log {
	t.Helper()
	if s == nil {
		s = store.NewMemory()
	}
	counter := 0
	l := NewLog(s, WithIDs(func() string {
		counter++
		return fmt.Sprintf("n-%d", counter)
	}))
	if err := l.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	return l
}

func TestPushPrependsUnread(t *testing.T) {
	l := newTestLog(t, nil)
	l.Push("first", "", TypeInfo, "")
	n := l.Push("second", "body", TypeSuccess, "generator")

	list := l.List()
	if len(list) != 2 || list[0].ID != n.ID {
		t.Fatalf("newest entry should be first: %+v", list)
	}
	if n.Read || n.Source != "generator" || n.Message != "body" {
		t.Fatalf("unexpected notification %+v", n)
	}
	if l.UnreadCount() != 2 {
		t.Fatalf("unread = %d", l.UnreadCount())
	}
}

func TestPushDefaults(t *testing.T) {
	l := newTestLog(t, nil)
	n := l.Push("  ", "", Type("loud"), "")
	if n.Type != TypeInfo || n.Title != "Info" {
		t.Fatalf("defaults not applied: %+v", n)
	}
}

func TestLogCapKeepsNewestHundred(t *testing.T) {
	l := newTestLog(t, nil)
	for i := 0; i < 150; i++ {
		l.Push(fmt.Sprintf("n%d", i), "", TypeInfo, "")
	}
	list := l.List()
	if len(list) != MaxEntries {
		t.Fatalf("len = %d, want %d", len(list), MaxEntries)
	}
	for i, n := range list {
		want := fmt.Sprintf("n%d", 149-i)
		if n.Title != want {
			t.Fatalf("entry %d = %q, want %q", i, n.Title, want)
		}
	}
	for _, n := range list {
		if n.Title == "n49" || n.Title == "n0" {
			t.Fatalf("evicted entry %q still present", n.Title)
		}
	}
}

func TestMarkReadIsIdempotent(t *testing.T) {
	l := newTestLog(t, nil)
	a := l.Push("a", "", TypeInfo, "")
	l.Push("b", "", TypeWarning, "")

	l.MarkRead(a.ID)
	l.MarkRead(a.ID)
	l.MarkRead("unknown")
	if l.UnreadCount() != 1 {
		t.Fatalf("unread = %d, want 1", l.UnreadCount())
	}
	if unread := l.Unread(); len(unread) != 1 || unread[0].Title != "b" {
		t.Fatalf("unread list = %+v", unread)
	}

	l.MarkAllRead()
	l.MarkAllRead()
	if l.UnreadCount() != 0 {
		t.Fatalf("unread = %d, want 0", l.UnreadCount())
	}
}

func TestDeleteAndClear(t *testing.T) {
	l := newTestLog(t, nil)
	a := l.Push("a", "", TypeInfo, "")
	l.Push("b", "", TypeInfo, "")

	if err := l.Delete(a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := l.Delete(a.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	l.Clear()
	if l.Len() != 0 || l.UnreadCount() != 0 {
		t.Fatal("clear left entries behind")
	}
}

func TestLogPersistsAndReloads(t *testing.T) {
	s := store.NewMemory()
	l := newTestLog(t, s)
	l.Push("kept", "m", TypeError, "storage")
	read := l.Push("read", "", TypeInfo, "")
	l.MarkRead(read.ID)

	again := NewLog(s)
	if err := again.Load(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	list := again.List()
	if len(list) != 2 || list[0].Title != "read" || !list[0].Read {
		t.Fatalf("reloaded = %+v", list)
	}
	if again.UnreadCount() != 1 {
		t.Fatalf("unread = %d", again.UnreadCount())
	}

	l.Clear()
	raw, _ := s.Load(store.KeyNotifications)
	if string(raw) != "[]" {
		t.Fatalf("cleared log stored as %s", raw)
	}
}

func TestLoadMissingOrCorrupt(t *testing.T) {
	s := store.NewMemory()
	l := NewLog(s)
	if err := l.Load(); err != nil {
		t.Fatalf("missing key should not error: %v", err)
	}
	_ = s.Save(store.KeyNotifications, []byte("garbage"))
	if err := l.Load(); !errors.Is(err, errs.ErrStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if l.Len() != 0 {
		t.Fatal("corrupt log should load empty")
	}
}
