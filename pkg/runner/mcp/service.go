// Package mcp exposes the command center over the Model Context Protocol so
// agents can act as command bus collaborators.
package mcp

import (
	"context"
	"errors"
	"strings"
	"time"

	"tableflip.dev/cmdcenter/pkg/bus"
	"tableflip.dev/cmdcenter/pkg/commands/options"
	"tableflip.dev/cmdcenter/pkg/engine"
	"tableflip.dev/cmdcenter/pkg/notify"
	"tableflip.dev/cmdcenter/pkg/task"
)

// DefaultSource tags bus messages from MCP clients that do not name
// themselves.
const DefaultSource = "mcp"

// Service maps tool calls onto the engine.
type Service struct {
	Engine *engine.Engine
	Now    func() time.Time
}

// NewService wraps e.
func NewService(e *engine.Engine) *Service {
	return &Service{Engine: e, Now: time.Now}
}

// CreateTaskOptions captures the parameters used to create a task directly.
type CreateTaskOptions struct {
	Text     string
	Category string
	Priority string
	Notes    string
	Due      string
}

// CreateTask validates the raw tool arguments and adds the task.
func (s *Service) CreateTask(ctx context.Context, opts CreateTaskOptions) (task.Task, error) {
	if err := s.ready(); err != nil {
		return task.Task{}, err
	}
	c, err := task.ParseCategory(opts.Category)
	if err != nil {
		return task.Task{}, err
	}
	p, err := task.ParsePriority(opts.Priority)
	if err != nil {
		return task.Task{}, err
	}
	due, err := options.ParseDue(strings.TrimSpace(opts.Due), s.Now())
	if err != nil {
		return task.Task{}, err
	}
	return s.Engine.CreateTask(opts.Text, c, p, opts.Notes, due)
}

// RequestTask publishes an AddTask message. Like any bus message it is not
// acknowledged; the engine answers with a notification.
func (s *Service) RequestTask(ctx context.Context, text, source string) error {
	if err := s.ready(); err != nil {
		return err
	}
	s.Engine.Bus().Publish(bus.AddTask{Text: text, Source: sourceOr(source)})
	return nil
}

// Notify publishes a Notify message.
func (s *Service) Notify(ctx context.Context, title, message, typ, source string) error {
	if err := s.ready(); err != nil {
		return err
	}
	t, err := notify.ParseType(typ)
	if err != nil {
		return err
	}
	s.Engine.Bus().Publish(bus.Notify{Title: title, Message: message, Type: string(t), Source: sourceOr(source)})
	return nil
}

// BrainDump turns text into tasks.
func (s *Service) BrainDump(ctx context.Context, text string) ([]task.Task, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.Engine.BrainDump(text)
}

// ListTasks filters by raw status and category strings.
func (s *Service) ListTasks(ctx context.Context, status, category string) ([]task.Task, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	f, err := (&options.FilterOptions{Status: status, Category: category}).Filter()
	if err != nil {
		return nil, err
	}
	return s.Engine.Tasks(f), nil
}

// Task resolves a full or prefix id.
func (s *Service) Task(ctx context.Context, ref string) (task.Task, error) {
	if err := s.ready(); err != nil {
		return task.Task{}, err
	}
	return s.Engine.ResolveTask(ref)
}

// CycleStatus advances a task one step.
func (s *Service) CycleStatus(ctx context.Context, ref string) (task.Task, error) {
	t, err := s.Task(ctx, ref)
	if err != nil {
		return task.Task{}, err
	}
	return s.Engine.CycleStatus(t.ID)
}

// DeleteTask removes a task.
func (s *Service) DeleteTask(ctx context.Context, ref string) (task.Task, error) {
	t, err := s.Task(ctx, ref)
	if err != nil {
		return task.Task{}, err
	}
	return t, s.Engine.DeleteTask(t.ID)
}

// AddSubtask appends a checklist item.
func (s *Service) AddSubtask(ctx context.Context, ref, title string) (task.Task, error) {
	t, err := s.Task(ctx, ref)
	if err != nil {
		return task.Task{}, err
	}
	return s.Engine.AddSubtask(t.ID, title)
}

// ToggleSubtask flips a checklist item by id.
func (s *Service) ToggleSubtask(ctx context.Context, ref, subtaskID string) (task.Task, error) {
	t, err := s.Task(ctx, ref)
	if err != nil {
		return task.Task{}, err
	}
	return s.Engine.ToggleSubtask(t.ID, subtaskID)
}

// FocusResult reports the timer after a focus tool call.
type FocusResult struct {
	Display   string `json:"display"`
	Running   bool   `json:"running"`
	TaskID    string `json:"taskId,omitempty"`
	Committed int64  `json:"committedSeconds,omitempty"`
}

// StartFocus focuses on a task, or stops when it is already focused.
func (s *Service) StartFocus(ctx context.Context, ref string) (FocusResult, error) {
	t, err := s.Task(ctx, ref)
	if err != nil {
		return FocusResult{}, err
	}
	if err := s.Engine.StartFocus(t.ID); err != nil {
		return FocusResult{}, err
	}
	return s.focusResult(0), nil
}

// StopFocus commits the running session.
func (s *Service) StopFocus(ctx context.Context) (FocusResult, error) {
	if err := s.ready(); err != nil {
		return FocusResult{}, err
	}
	return s.focusResult(s.Engine.StopFocus()), nil
}

// ToggleFocus pauses or resumes.
func (s *Service) ToggleFocus(ctx context.Context) (FocusResult, error) {
	if err := s.ready(); err != nil {
		return FocusResult{}, err
	}
	s.Engine.ToggleFocus()
	return s.focusResult(0), nil
}

func (s *Service) focusResult(committed int64) FocusResult {
	session := s.Engine.Session()
	return FocusResult{
		Display:   s.Engine.Stats().Focus,
		Running:   session.Running,
		TaskID:    session.ActiveTaskID,
		Committed: committed,
	}
}

// Notifications lists the log, optionally unread only.
func (s *Service) Notifications(ctx context.Context, unreadOnly bool) ([]notify.Notification, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	all := s.Engine.Notifications()
	if !unreadOnly {
		return all, nil
	}
	out := make([]notify.Notification, 0, len(all))
	for _, n := range all {
		if !n.Read {
			out = append(out, n)
		}
	}
	return out, nil
}

// MarkRead marks one notification read, or all when ref is empty. It
// returns the unread count afterwards.
func (s *Service) MarkRead(ctx context.Context, ref string) (int, error) {
	if err := s.ready(); err != nil {
		return 0, err
	}
	if strings.TrimSpace(ref) == "" {
		s.Engine.MarkAllRead()
	} else {
		n, err := s.Engine.ResolveNotification(ref)
		if err != nil {
			return 0, err
		}
		s.Engine.MarkRead(n.ID)
	}
	return s.Engine.Stats().Unread, nil
}

// Stats returns the derived counters.
func (s *Service) Stats(ctx context.Context) (engine.Stats, error) {
	if err := s.ready(); err != nil {
		return engine.Stats{}, err
	}
	return s.Engine.Stats(), nil
}

func (s *Service) ready() error {
	if s == nil || s.Engine == nil {
		return errors.New("mcp service requires an engine")
	}
	return nil
}

func sourceOr(source string) string {
	if source = strings.TrimSpace(source); source != "" {
		return source
	}
	return DefaultSource
}
