// Package notify keeps the capped, newest-first notification log.
package notify

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/cmdcenter/pkg/errs"
	"tableflip.dev/cmdcenter/pkg/store"
)

// MaxEntries caps the log; pushing past it evicts the oldest entry.
const MaxEntries = 100

// Type is the severity of a notification.
type Type string

const (
	TypeInfo    Type = "info"
	TypeSuccess Type = "success"
	TypeWarning Type = "warning"
	TypeError   Type = "error"
)

// ParseType converts user input; empty or unknown input means info.
func ParseType(raw string) (Type, error) {
	switch t := Type(strings.ToLower(strings.TrimSpace(raw))); t {
	case "":
		return TypeInfo, nil
	case TypeInfo, TypeSuccess, TypeWarning, TypeError:
		return t, nil
	}
	return TypeInfo, errs.Invalid("type", fmt.Sprintf("unknown notification type %q", raw))
}

// Label is the display name used when a notification has no title.
func (t Type) Label() string {
	switch t {
	case TypeSuccess:
		return "Success"
	case TypeWarning:
		return "Warning"
	case TypeError:
		return "Error"
	default:
		return "Info"
	}
}

// Notification is one log entry.
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message,omitempty"`
	Type      Type      `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
	Source    string    `json:"source,omitempty"`
}

// Log owns the notification list. Like task.Repository it writes through to
// the store after every mutation and is not safe for concurrent use.
type Log struct {
	store          store.Store
	now            func() time.Time
	newID          func() string
	onPersistError func(error)

	entries []Notification // newest first
	loaded  bool
}

// Option configures a Log.
type Option func(*Log)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Log) { l.now = now }
}

// WithIDs overrides the id generator.
func WithIDs(newID func() string) Option {
	return func(l *Log) { l.newID = newID }
}

// WithPersistErrorHandler receives write failures. Without one they are
// printed to stderr.
func WithPersistErrorHandler(fn func(error)) Option {
	return func(l *Log) { l.onPersistError = fn }
}

// NewLog returns an empty log backed by s.
func NewLog(s store.Store, opts ...Option) *Log {
	l := &Log{
		store: s,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load replaces the log with the stored one, following the same policy as
// task.Repository.Load: failures leave it empty and are returned for
// reporting only.
func (l *Log) Load() error {
	l.entries = nil
	l.loaded = true
	if l.store == nil {
		return nil
	}
	data, err := l.store.Load(store.KeyNotifications)
	if errors.Is(err, store.ErrNotExist) {
		return nil
	}
	if err != nil {
		return &errs.StorageError{Op: "load", Key: store.KeyNotifications, Err: err}
	}
	var loaded []Notification
	if err := json.Unmarshal(data, &loaded); err != nil {
		return &errs.StorageError{Op: "decode", Key: store.KeyNotifications, Err: err}
	}
	seen := make(map[string]bool, len(loaded))
	for _, n := range loaded {
		if n.ID == "" || seen[n.ID] {
			continue
		}
		seen[n.ID] = true
		if _, err := ParseType(string(n.Type)); err != nil {
			n.Type = TypeInfo
		}
		l.entries = append(l.entries, n)
	}
	if len(l.entries) > MaxEntries {
		l.entries = l.entries[:MaxEntries]
	}
	return nil
}

// Push prepends a new unread notification.
func (l *Log) Push(title, message string, typ Type, source string) Notification {
	if _, err := ParseType(string(typ)); err != nil || typ == "" {
		typ = TypeInfo
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = typ.Label()
	}
	n := Notification{
		ID:        l.newID(),
		Title:     title,
		Message:   message,
		Type:      typ,
		Timestamp: l.now(),
		Source:    source,
	}
	l.entries = append([]Notification{n}, l.entries...)
	if len(l.entries) > MaxEntries {
		l.entries = l.entries[:MaxEntries]
	}
	l.persist()
	return n
}

// MarkRead marks one notification read. Unknown ids are ignored.
func (l *Log) MarkRead(id string) {
	for i := range l.entries {
		if l.entries[i].ID == id {
			if !l.entries[i].Read {
				l.entries[i].Read = true
				l.persist()
			}
			return
		}
	}
}

// MarkAllRead marks every notification read.
func (l *Log) MarkAllRead() {
	changed := false
	for i := range l.entries {
		if !l.entries[i].Read {
			l.entries[i].Read = true
			changed = true
		}
	}
	if changed {
		l.persist()
	}
}

// Delete removes one notification.
func (l *Log) Delete(id string) error {
	for i := range l.entries {
		if l.entries[i].ID == id {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			l.persist()
			return nil
		}
	}
	return errs.NotFound("notification", id)
}

// Clear empties the log.
func (l *Log) Clear() {
	l.entries = nil
	l.persist()
}

// List returns the notifications, newest first.
func (l *Log) List() []Notification {
	return append([]Notification{}, l.entries...)
}

// Unread returns the unread notifications, newest first.
func (l *Log) Unread() []Notification {
	out := make([]Notification, 0)
	for _, n := range l.entries {
		if !n.Read {
			out = append(out, n)
		}
	}
	return out
}

// UnreadCount counts entries with Read false.
func (l *Log) UnreadCount() int {
	count := 0
	for _, n := range l.entries {
		if !n.Read {
			count++
		}
	}
	return count
}

// Len is the number of entries.
func (l *Log) Len() int {
	return len(l.entries)
}

func (l *Log) persist() {
	if !l.loaded || l.store == nil {
		return
	}
	entries := l.entries
	if entries == nil {
		entries = []Notification{}
	}
	data, err := json.Marshal(entries)
	if err == nil {
		err = l.store.Save(store.KeyNotifications, data)
	}
	if err == nil {
		return
	}
	serr := &errs.StorageError{Op: "save", Key: store.KeyNotifications, Err: err}
	if l.onPersistError != nil {
		l.onPersistError(serr)
		return
	}
	fmt.Fprintf(os.Stderr, "notify: %v\n", serr)
}
