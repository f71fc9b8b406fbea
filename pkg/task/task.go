// Package task holds the task model, its status state machine, and the
// repository that persists the task collection.
package task

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"tableflip.dev/cmdcenter/pkg/errs"
)

// Category groups tasks. The set is fixed.
type Category string

const (
	CategoryWork     Category = "work"
	CategoryDev      Category = "dev"
	CategoryPersonal Category = "personal"
	CategoryUrgent   Category = "urgent"
	CategoryResearch Category = "research"
)

// Categories returns every supported category in display order.
func Categories() []Category {
	return []Category{CategoryWork, CategoryDev, CategoryPersonal, CategoryUrgent, CategoryResearch}
}

// Valid reports whether c is one of Categories.
func (c Category) Valid() bool {
	for _, candidate := range Categories() {
		if c == candidate {
			return true
		}
	}
	return false
}

// ParseCategory converts user input; empty input means work.
func ParseCategory(raw string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	if c == "" {
		return CategoryWork, nil
	}
	if !c.Valid() {
		return CategoryWork, errs.Invalid("category", fmt.Sprintf("unknown category %q", raw))
	}
	return c, nil
}

// Priority ranks a task from 1 (low) to 4 (critical).
type Priority int

const (
	PriorityLow Priority = iota + 1
	PriorityMedium
	PriorityHigh
	PriorityCritical
)

var priorityNames = map[Priority]string{
	PriorityLow:      "low",
	PriorityMedium:   "medium",
	PriorityHigh:     "high",
	PriorityCritical: "critical",
}

func (p Priority) Valid() bool {
	return p >= PriorityLow && p <= PriorityCritical
}

func (p Priority) String() string {
	if name, ok := priorityNames[p]; ok {
		return name
	}
	return strconv.Itoa(int(p))
}

// ParsePriority accepts a number (1-4) or a name; empty input means medium.
func ParsePriority(raw string) (Priority, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return PriorityMedium, nil
	}
	if n, err := strconv.Atoi(raw); err == nil {
		if p := Priority(n); p.Valid() {
			return p, nil
		}
		return PriorityMedium, errs.Invalid("priority", "must be between 1 and 4")
	}
	for p, name := range priorityNames {
		if name == raw {
			return p, nil
		}
	}
	return PriorityMedium, errs.Invalid("priority", fmt.Sprintf("unknown priority %q", raw))
}

// Status is the position of a task in the todo -> in-progress -> done cycle.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// Next returns the following status in the cycle.
func (s Status) Next() Status {
	switch s {
	case StatusTodo:
		return StatusInProgress
	case StatusInProgress:
		return StatusDone
	default:
		return StatusTodo
	}
}

func (s Status) Valid() bool {
	return s == StatusTodo || s == StatusInProgress || s == StatusDone
}

// ParseStatus converts user input. "doing" and "in_progress" are accepted
// spellings of in-progress.
func ParseStatus(raw string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "todo":
		return StatusTodo, nil
	case "in-progress", "in_progress", "inprogress", "doing":
		return StatusInProgress, nil
	case "done":
		return StatusDone, nil
	}
	return "", errs.Invalid("status", fmt.Sprintf("unknown status %q", raw))
}

const layoutISO = "2006-01-02"

// Date is a calendar day without a time of day.
type Date struct {
	time.Time
}

// ParseDate reads YYYY-MM-DD.
func ParseDate(v string) (Date, error) {
	t, err := time.Parse(layoutISO, strings.TrimSpace(v))
	if err != nil {
		return Date{}, errs.Invalid("dueDate", "expected YYYY-MM-DD")
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(layoutISO)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	t, err := time.Parse(layoutISO, raw)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// Subtask is a checklist item inside a task.
type Subtask struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// Task is one unit of work. CompletedAt is set exactly when Status is done.
type Task struct {
	ID          string     `json:"id"`
	Text        string     `json:"text"`
	Category    Category   `json:"category"`
	Priority    Priority   `json:"priority"`
	Status      Status     `json:"status"`
	Notes       string     `json:"notes"`
	DueDate     *Date      `json:"dueDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	FocusTime   int64      `json:"focusTime"`
	Subtasks    []Subtask  `json:"subtasks"`
}

// Clone returns a deep copy.
func (t Task) Clone() Task {
	out := t
	if t.DueDate != nil {
		d := *t.DueDate
		out.DueDate = &d
	}
	if t.CompletedAt != nil {
		c := *t.CompletedAt
		out.CompletedAt = &c
	}
	out.Subtasks = append([]Subtask{}, t.Subtasks...)
	return out
}

// SubtaskProgress returns done and total subtask counts.
func (t Task) SubtaskProgress() (done, total int) {
	for _, s := range t.Subtasks {
		if s.Done {
			done++
		}
	}
	return done, len(t.Subtasks)
}

// Overdue reports whether the due date is before the day of now and the task
// is not done.
func (t Task) Overdue(now time.Time) bool {
	if t.DueDate == nil || t.Status == StatusDone {
		return false
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return t.DueDate.Before(today)
}

// setStatus moves to s and keeps CompletedAt in step with it.
func (t *Task) setStatus(s Status, now time.Time) {
	t.Status = s
	if s == StatusDone {
		if t.CompletedAt == nil {
			at := now
			t.CompletedAt = &at
		}
		return
	}
	t.CompletedAt = nil
}
