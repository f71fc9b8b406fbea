package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/cmdcenter/pkg/engine"
	"tableflip.dev/cmdcenter/pkg/focus"
	"tableflip.dev/cmdcenter/pkg/notify"
	"tableflip.dev/cmdcenter/pkg/task"
)

func init() {
	color.NoColor = true
}

func TestTasksMarksActiveSessionAndOverdue(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2025, time.March, 3, 12, 0, 0, 0, time.UTC)
	due, _ := task.ParseDate("2025-03-01")
	pp := PrettyPrint{Out: &buf, Now: func() time.Time { return now }}

	pp.Tasks(focus.Session{ActiveTaskID: "t1", ElapsedSeconds: 65, Running: false},
		task.Task{ID: "t1", Text: "Ship release", Category: task.CategoryWork, Priority: task.PriorityHigh, Status: task.StatusInProgress, DueDate: &due},
		task.Task{ID: "t2", Text: "Water plants", Category: task.CategoryPersonal, Priority: task.PriorityLow, Status: task.StatusDone},
	)

	out := buf.String()
	for _, want := range []string{"[~] !!  Ship release", "due 2025-03-01", "01:05 (paused)", "[x]     Water plants", "#personal"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTasksEmpty(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	pp.Tasks(focus.Session{})
	if !strings.Contains(buf.String(), "none") {
		t.Fatalf("expected none marker, got %q", buf.String())
	}
}

func TestNotificationsTable(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	pp.Notifications(
		notify.Notification{ID: "n1", Title: "Save failed", Type: notify.TypeWarning, Source: "storage"},
		notify.Notification{ID: "n2", Title: "Task added", Type: notify.TypeSuccess, Read: true},
	)
	out := buf.String()
	if !strings.Contains(out, "Save failed") || !strings.Contains(out, "storage") || !strings.Contains(out, "●") {
		t.Fatalf("unexpected table:\n%s", out)
	}
	if strings.Count(out, "●") != 1 {
		t.Fatalf("only unread rows get a marker:\n%s", out)
	}
}

func TestStats(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	pp.Stats(engine.Stats{Counts: task.Counts{Todo: 2, Total: 3, Done: 1}, Unread: 4, Focus: "Idle"})
	out := buf.String()
	for _, want := range []string{"todo:", "unread:", "Idle"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}
