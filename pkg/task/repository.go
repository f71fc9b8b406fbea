package task

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/cmdcenter/pkg/errs"
	"tableflip.dev/cmdcenter/pkg/store"
)

// DraftNotes is the provenance note given to brain dump drafts.
const DraftNotes = "From brain dump"

// Repository owns the task collection and writes it through to a Store
// after every mutation. It is not safe for concurrent use; callers serialise
// access (the engine does).
type Repository struct {
	store          store.Store
	now            func() time.Time
	newID          func() string
	onPersistError func(error)

	tasks  []Task
	loaded bool
}

// Option configures a Repository.
type Option func(*Repository)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// WithIDs overrides the id generator.
func WithIDs(newID func() string) Option {
	return func(r *Repository) { r.newID = newID }
}

// WithPersistErrorHandler receives write failures. Without one they are
// printed to stderr.
func WithPersistErrorHandler(fn func(error)) Option {
	return func(r *Repository) { r.onPersistError = fn }
}

// NewRepository creates an empty repository. Call Load before mutating so
// that earlier state is not overwritten.
func NewRepository(s store.Store, opts ...Option) *Repository {
	r := &Repository{
		store: s,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load replaces the in-memory collection with the stored one. A missing key
// is an empty collection. A read or decode failure also leaves the
// collection empty; the error is returned for reporting only.
func (r *Repository) Load() error {
	r.tasks = nil
	r.loaded = true
	if r.store == nil {
		return nil
	}
	data, err := r.store.Load(store.KeyTasks)
	if errors.Is(err, store.ErrNotExist) {
		return nil
	}
	if err != nil {
		return &errs.StorageError{Op: "load", Key: store.KeyTasks, Err: err}
	}
	var loaded []Task
	if err := json.Unmarshal(data, &loaded); err != nil {
		return &errs.StorageError{Op: "decode", Key: store.KeyTasks, Err: err}
	}
	r.tasks = normalize(loaded)
	return nil
}

// Loaded reports whether Load has run.
func (r *Repository) Loaded() bool {
	return r.loaded
}

// Create adds a new todo task.
func (r *Repository) Create(text string, category Category, priority Priority, notes string, due *Date) (Task, error) {
	added, err := r.Add(Task{
		Text:     text,
		Category: category,
		Priority: priority,
		Notes:    notes,
		DueDate:  due,
	})
	if err != nil {
		return Task{}, err
	}
	return added[0], nil
}

// Add inserts drafts as new todo tasks, assigning ids and creation times.
// Either every draft is valid and all are inserted with one write, or none is.
func (r *Repository) Add(drafts ...Task) ([]Task, error) {
	prepared := make([]Task, 0, len(drafts))
	now := r.now()
	for _, d := range drafts {
		t := d.Clone()
		t.Text = strings.TrimSpace(t.Text)
		if t.Text == "" {
			return nil, errs.Invalid("text", "must not be empty")
		}
		if t.Category == "" {
			t.Category = CategoryWork
		}
		if !t.Category.Valid() {
			return nil, errs.Invalid("category", fmt.Sprintf("unknown category %q", t.Category))
		}
		if t.Priority == 0 {
			t.Priority = PriorityMedium
		}
		if !t.Priority.Valid() {
			return nil, errs.Invalid("priority", "must be between 1 and 4")
		}
		t.ID = r.uniqueID()
		t.Status = StatusTodo
		t.CreatedAt = now
		t.CompletedAt = nil
		t.FocusTime = 0
		t.Subtasks = []Subtask{}
		prepared = append(prepared, t)
	}
	if len(prepared) == 0 {
		return nil, nil
	}
	for _, t := range prepared {
		r.tasks = append(r.tasks, t)
	}
	r.persist()

	out := make([]Task, len(prepared))
	for i, t := range prepared {
		out[i] = t.Clone()
	}
	return out, nil
}

// Get returns a copy of the task with id.
func (r *Repository) Get(id string) (Task, bool) {
	if i := r.index(id); i >= 0 {
		return r.tasks[i].Clone(), true
	}
	return Task{}, false
}

// Exists reports whether id is in the live collection.
func (r *Repository) Exists(id string) bool {
	return r.index(id) >= 0
}

// Filter narrows List. Zero fields match everything.
type Filter struct {
	Status   Status
	Category Category
}

// List returns matching tasks, highest priority first and otherwise in
// creation order.
func (r *Repository) List(f Filter) []Task {
	out := make([]Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if f.Category != "" && t.Category != f.Category {
			continue
		}
		out = append(out, t.Clone())
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority > out[j].Priority
	})
	return out
}

// All returns every task in creation order.
func (r *Repository) All() []Task {
	out := make([]Task, len(r.tasks))
	for i, t := range r.tasks {
		out[i] = t.Clone()
	}
	return out
}

// Counts summarises the collection.
type Counts struct {
	Todo         int   `json:"todo"`
	InProgress   int   `json:"inProgress"`
	Done         int   `json:"done"`
	Total        int   `json:"total"`
	FocusSeconds int64 `json:"focusSeconds"`
}

// Counts tallies tasks by status.
func (r *Repository) Counts() Counts {
	var c Counts
	for _, t := range r.tasks {
		switch t.Status {
		case StatusTodo:
			c.Todo++
		case StatusInProgress:
			c.InProgress++
		case StatusDone:
			c.Done++
		}
		c.FocusSeconds += t.FocusTime
	}
	c.Total = len(r.tasks)
	return c
}

// CycleStatus advances todo -> in-progress -> done -> todo.
func (r *Repository) CycleStatus(id string) (Task, error) {
	i := r.index(id)
	if i < 0 {
		return Task{}, errs.NotFound("task", id)
	}
	r.tasks[i].setStatus(r.tasks[i].Status.Next(), r.now())
	r.persist()
	return r.tasks[i].Clone(), nil
}

// Delete removes the task.
func (r *Repository) Delete(id string) error {
	i := r.index(id)
	if i < 0 {
		return errs.NotFound("task", id)
	}
	r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
	r.persist()
	return nil
}

// AddSubtask appends a subtask. A blank title leaves the task unchanged.
func (r *Repository) AddSubtask(taskID, title string) (Task, error) {
	i := r.index(taskID)
	if i < 0 {
		return Task{}, errs.NotFound("task", taskID)
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return r.tasks[i].Clone(), nil
	}
	r.tasks[i].Subtasks = append(r.tasks[i].Subtasks, Subtask{ID: r.newID(), Title: title})
	r.persist()
	return r.tasks[i].Clone(), nil
}

// ToggleSubtask flips the done flag of one subtask.
func (r *Repository) ToggleSubtask(taskID, subtaskID string) (Task, error) {
	i := r.index(taskID)
	if i < 0 {
		return Task{}, errs.NotFound("task", taskID)
	}
	j := subtaskIndex(r.tasks[i].Subtasks, subtaskID)
	if j < 0 {
		return Task{}, errs.NotFound("subtask", subtaskID)
	}
	r.tasks[i].Subtasks[j].Done = !r.tasks[i].Subtasks[j].Done
	r.persist()
	return r.tasks[i].Clone(), nil
}

// RemoveSubtask deletes one subtask.
func (r *Repository) RemoveSubtask(taskID, subtaskID string) (Task, error) {
	i := r.index(taskID)
	if i < 0 {
		return Task{}, errs.NotFound("task", taskID)
	}
	j := subtaskIndex(r.tasks[i].Subtasks, subtaskID)
	if j < 0 {
		return Task{}, errs.NotFound("subtask", subtaskID)
	}
	subs := r.tasks[i].Subtasks
	r.tasks[i].Subtasks = append(subs[:j], subs[j+1:]...)
	r.persist()
	return r.tasks[i].Clone(), nil
}

// SetNotes replaces the notes of a task.
func (r *Repository) SetNotes(id, notes string) (Task, error) {
	i := r.index(id)
	if i < 0 {
		return Task{}, errs.NotFound("task", id)
	}
	r.tasks[i].Notes = notes
	r.persist()
	return r.tasks[i].Clone(), nil
}

// SetDueDate sets or, with nil, clears the due date.
func (r *Repository) SetDueDate(id string, due *Date) (Task, error) {
	i := r.index(id)
	if i < 0 {
		return Task{}, errs.NotFound("task", id)
	}
	if due != nil {
		d := *due
		due = &d
	}
	r.tasks[i].DueDate = due
	r.persist()
	return r.tasks[i].Clone(), nil
}

// BulkResetToTodo moves every task back to todo. Focus time is kept.
func (r *Repository) BulkResetToTodo() {
	now := r.now()
	for i := range r.tasks {
		r.tasks[i].setStatus(StatusTodo, now)
	}
	r.persist()
}

// ClearCompleted removes done tasks and returns how many were removed.
func (r *Repository) ClearCompleted() int {
	kept := r.tasks[:0]
	removed := 0
	for _, t := range r.tasks {
		if t.Status == StatusDone {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	r.tasks = kept
	if removed > 0 {
		r.persist()
	}
	return removed
}

// CommitFocusTime adds seconds to the task's focus time. It reports false,
// without error, when the task no longer exists.
func (r *Repository) CommitFocusTime(id string, seconds int64) (Task, bool) {
	i := r.index(id)
	if i < 0 {
		return Task{}, false
	}
	if seconds > 0 {
		r.tasks[i].FocusTime += seconds
		r.persist()
	}
	return r.tasks[i].Clone(), true
}

func (r *Repository) index(id string) int {
	for i := range r.tasks {
		if r.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *Repository) uniqueID() string {
	for {
		id := r.newID()
		if id != "" && r.index(id) < 0 {
			return id
		}
	}
}

func (r *Repository) persist() {
	if !r.loaded || r.store == nil {
		return
	}
	data, err := json.Marshal(r.tasks)
	if err == nil {
		err = r.store.Save(store.KeyTasks, data)
	}
	if err == nil {
		return
	}
	serr := &errs.StorageError{Op: "save", Key: store.KeyTasks, Err: err}
	if r.onPersistError != nil {
		r.onPersistError(serr)
		return
	}
	fmt.Fprintf(os.Stderr, "task: %v\n", serr)
}

func subtaskIndex(subs []Subtask, id string) int {
	for j := range subs {
		if subs[j].ID == id {
			return j
		}
	}
	return -1
}

// normalize drops unusable records and repairs the status invariants of
// data written by older or foreign versions.
func normalize(in []Task) []Task {
	seen := make(map[string]bool, len(in))
	out := make([]Task, 0, len(in))
	for _, t := range in {
		if t.ID == "" || seen[t.ID] || strings.TrimSpace(t.Text) == "" {
			continue
		}
		seen[t.ID] = true
		if !t.Status.Valid() {
			t.Status = StatusTodo
		}
		if !t.Category.Valid() {
			t.Category = CategoryWork
		}
		if !t.Priority.Valid() {
			t.Priority = PriorityMedium
		}
		if t.FocusTime < 0 {
			t.FocusTime = 0
		}
		if t.Subtasks == nil {
			t.Subtasks = []Subtask{}
		}
		t.setStatus(t.Status, t.CreatedAt)
		out = append(out, t)
	}
	return out
}
