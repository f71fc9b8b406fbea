package task

import (
	"testing"
	"time"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		in      string
		want    Priority
		wantErr bool
	}{
		{"", PriorityMedium, false},
		{"1", PriorityLow, false},
		{"4", PriorityCritical, false},
		{"High", PriorityHigh, false},
		{"5", PriorityMedium, true},
		{"urgent", PriorityMedium, true},
	}
	for _, tt := range tests {
		got, err := ParsePriority(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParsePriority(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestParseStatusAndCategory(t *testing.T) {
	if s, err := ParseStatus("doing"); err != nil || s != StatusInProgress {
		t.Fatalf("ParseStatus(doing) = %q, %v", s, err)
	}
	if _, err := ParseStatus("blocked"); err == nil {
		t.Fatal("expected error for unknown status")
	}
	if c, err := ParseCategory(" Research "); err != nil || c != CategoryResearch {
		t.Fatalf("ParseCategory = %q, %v", c, err)
	}
	if _, err := ParseCategory("chores"); err == nil {
		t.Fatal("expected error for unknown category")
	}
}

func TestOverdue(t *testing.T) {
	due, _ := ParseDate("2026-03-01")
	tk := Task{Status: StatusTodo, DueDate: &due}
	if tk.Overdue(time.Date(2026, 3, 1, 23, 0, 0, 0, time.UTC)) {
		t.Fatal("due today is not overdue")
	}
	if !tk.Overdue(time.Date(2026, 3, 2, 0, 0, 1, 0, time.UTC)) {
		t.Fatal("due yesterday should be overdue")
	}
	tk.Status = StatusDone
	if tk.Overdue(time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatal("done tasks are never overdue")
	}
}
