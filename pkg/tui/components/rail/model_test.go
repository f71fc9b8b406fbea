package rail

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/ansi"

	"tableflip.dev/cmdcenter/pkg/engine"
	"tableflip.dev/cmdcenter/pkg/notify"
	"tableflip.dev/cmdcenter/pkg/task"
	"tableflip.dev/cmdcenter/pkg/tui/theme"
)

func stripANSIString(s string) string {
	var b strings.Builder
	ansiSeq := false
	for _, r := range s {
		if r == ansi.Marker {
			ansiSeq = true
			continue
		}
		if ansiSeq {
			if ansi.IsTerminator(r) {
				ansiSeq = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func makeEntries(n int) []notify.Notification {
	out := make([]notify.Notification, n)
	ts := time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)
	for i := range out {
		out[i] = notify.Notification{
			ID:        fmt.Sprintf("n%02d", i),
			Title:     fmt.Sprintf("Note %02d", i),
			Type:      notify.TypeInfo,
			Timestamp: ts,
		}
	}
	return out
}

func TestViewShowsStatsAndFocus(t *testing.T) {
	m := New(theme.Default().Rail)
	m.SetSize(50, 12)
	entries := makeEntries(2)
	entries[1].Read = true
	entries[0].Source = "ci"
	m.SetSnapshot(entries, engine.Stats{Counts: task.Counts{Todo: 2, InProgress: 1}, Unread: 1, Focus: "Ship release 00:05"})

	view := stripANSIString(m.View())
	for _, want := range []string{"Ship release 00:05", "2 todo", "1 unread", "Notifications", "Note 00 · ci", "Note 01"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestEmptyRail(t *testing.T) {
	m := New(theme.Default().Rail)
	m.SetSize(50, 12)
	m.SetSnapshot(nil, engine.Stats{Focus: "Idle"})
	if !strings.Contains(stripANSIString(m.View()), "No notifications yet") {
		t.Fatal("expected empty placeholder")
	}
}

func TestCursorMovesOnlyWhenFocused(t *testing.T) {
	m := New(theme.Default().Rail)
	m.SetSize(50, 12)
	m.SetSnapshot(makeEntries(3), engine.Stats{})

	m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if n, _ := m.Selected(); n.ID != "n00" {
		t.Fatalf("blurred rail moved to %s", n.ID)
	}
	m.Focus()
	m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if n, _ := m.Selected(); n.ID != "n02" {
		t.Fatalf("selected %s, want n02", n.ID)
	}

	// A push prepends; the cursor keeps pointing at n02.
	m.SetSnapshot(append([]notify.Notification{{ID: "new", Title: "New"}}, makeEntries(3)...), engine.Stats{})
	if n, _ := m.Selected(); n.ID != "n02" {
		t.Fatalf("selected %s after push, want n02", n.ID)
	}
}
