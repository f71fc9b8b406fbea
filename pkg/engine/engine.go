// Package engine wires the task repository, notification log, focus timer
// and command bus into the single instance every surface renders from.
package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"tableflip.dev/cmdcenter/pkg/braindump"
	"tableflip.dev/cmdcenter/pkg/bus"
	"tableflip.dev/cmdcenter/pkg/errs"
	"tableflip.dev/cmdcenter/pkg/focus"
	"tableflip.dev/cmdcenter/pkg/notify"
	"tableflip.dev/cmdcenter/pkg/store"
	"tableflip.dev/cmdcenter/pkg/task"
)

// Notification sources used by the engine itself.
const (
	SourceStorage   = "storage"
	SourceBrainDump = "brain-dump"
	SourceBus       = "command-bus"
)

// Options configures New. The zero value is usable.
type Options struct {
	// Bus is the command bus to subscribe to; a private one is created when nil.
	Bus *bus.Bus
	// Tick is the focus timer interval used by Run. Defaults to one second.
	Tick time.Duration
	// Debounce, when positive, batches store writes (see store.Debounce).
	Debounce time.Duration
	// Clock and IDs override time.Now and uuid generation, mainly for tests.
	Clock func() time.Time
	IDs   func() string
}

// Engine serialises every operation, including bus deliveries and clock
// ticks, through one mutex. Observers are called after the mutex is released.
type Engine struct {
	mu        sync.Mutex
	store     store.Store
	tasks     *task.Repository
	log       *notify.Log
	timer     *focus.Timer
	bus       *bus.Bus
	cancelBus func()
	tick      time.Duration
	reporting bool
	seq       uint64

	obsMu     sync.Mutex
	observers map[int]*observer
	nextObs   int
}

// observer delivers snapshots to one subscriber in Seq order. A snapshot
// older than the last one delivered is dropped.
type observer struct {
	mu   sync.Mutex
	fn   func(Snapshot)
	last uint64
}

func (o *observer) deliver(snap Snapshot) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if snap.Seq <= o.last {
		return
	}
	o.last = snap.Seq
	o.fn(snap)
}

// New builds an engine over s and subscribes it to the command bus. Call
// Load before use.
func New(s store.Store, opts Options) *Engine {
	e := &Engine{
		bus:       opts.Bus,
		tick:      opts.Tick,
		observers: make(map[int]*observer),
	}
	if e.bus == nil {
		e.bus = bus.New()
	}
	if e.tick <= 0 {
		e.tick = store.DefaultTick
	}
	if opts.Debounce > 0 {
		s = store.Debounce(s, opts.Debounce, e.backgroundWriteFailed)
	}
	e.store = s

	var taskOpts []task.Option
	var logOpts []notify.Option
	if opts.Clock != nil {
		taskOpts = append(taskOpts, task.WithClock(opts.Clock))
		logOpts = append(logOpts, notify.WithClock(opts.Clock))
	}
	if opts.IDs != nil {
		taskOpts = append(taskOpts, task.WithIDs(opts.IDs))
		logOpts = append(logOpts, notify.WithIDs(opts.IDs))
	}
	taskOpts = append(taskOpts, task.WithPersistErrorHandler(e.writeFailed))
	logOpts = append(logOpts, notify.WithPersistErrorHandler(e.writeFailed))

	e.tasks = task.NewRepository(s, taskOpts...)
	e.log = notify.NewLog(s, logOpts...)
	e.timer = focus.New(e.tasks, e.log)
	e.cancelBus = e.bus.Subscribe(e.handle)
	return e
}

// Load reads the persisted tasks and notifications. Failures leave the
// affected collection empty; they are printed and returned joined, but the
// engine remains usable either way.
func (e *Engine) Load() error {
	e.mu.Lock()
	taskErr := e.tasks.Load()
	logErr := e.log.Load()
	snap := e.changedLocked()
	e.mu.Unlock()

	for _, err := range []error{taskErr, logErr} {
		if err != nil {
			fmt.Fprintf(os.Stderr, "engine: starting empty: %v\n", err)
		}
	}
	e.publish(snap)
	return errors.Join(taskErr, logErr)
}

// Bus is the command bus the engine listens on.
func (e *Engine) Bus() *bus.Bus {
	return e.bus
}

// Close stops the command bus subscription, commits a running focus session
// and flushes batched writes.
func (e *Engine) Close() error {
	e.cancelBus()
	e.mu.Lock()
	e.timer.Stop()
	e.mu.Unlock()
	if f, ok := e.store.(interface{ Flush() error }); ok {
		if err := f.Flush(); err != nil {
			return &errs.StorageError{Op: "flush", Err: err}
		}
	}
	return nil
}

// Run drives the focus timer until ctx is done. Ticks while the timer is
// paused or idle do nothing, so no missed time is ever accumulated.
func (e *Engine) Run(ctx context.Context) error {
	ticker := time.NewTicker(e.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			e.Tick()
		}
	}
}

// Subscribe registers fn to receive a snapshot after every change. The
// returned function removes it. Calls to fn never overlap and carry an
// increasing Seq; fn may query the engine but must not change it.
func (e *Engine) Subscribe(fn func(Snapshot)) (cancel func()) {
	e.obsMu.Lock()
	e.nextObs++
	id := e.nextObs
	e.observers[id] = &observer{fn: fn}
	e.obsMu.Unlock()
	return func() {
		e.obsMu.Lock()
		delete(e.observers, id)
		e.obsMu.Unlock()
	}
}

// mutate runs fn under the engine lock and then publishes a snapshot.
func (e *Engine) mutate(fn func() error) error {
	e.mu.Lock()
	err := fn()
	snap := e.changedLocked()
	e.mu.Unlock()
	e.publish(snap)
	return err
}

func (e *Engine) publish(snap Snapshot) {
	e.obsMu.Lock()
	obs := make([]*observer, 0, len(e.observers))
	ids := make([]int, 0, len(e.observers))
	for id := range e.observers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		obs = append(obs, e.observers[id])
	}
	e.obsMu.Unlock()
	for _, o := range obs {
		o.deliver(snap)
	}
}

// writeFailed surfaces a failed store write as a warning notification. It is
// called with e.mu held. A failure while saving that warning is only printed.
func (e *Engine) writeFailed(err error) {
	fmt.Fprintf(os.Stderr, "engine: %v\n", err)
	if e.reporting {
		return
	}
	e.reporting = true
	e.log.Push("Save failed", err.Error(), notify.TypeWarning, SourceStorage)
	e.reporting = false
}

// backgroundWriteFailed handles errors from debounced flushes, which arrive
// on a timer goroutine.
func (e *Engine) backgroundWriteFailed(key string, err error) {
	_ = e.mutate(func() error {
		e.writeFailed(&errs.StorageError{Op: "save", Key: key, Err: err})
		return nil
	})
}

// handle applies a command bus message.
func (e *Engine) handle(msg bus.Message) {
	switch m := msg.(type) {
	case bus.AddTask:
		_ = e.mutate(func() error {
			source := m.Source
			if source == "" {
				source = SourceBus
			}
			note := fmt.Sprintf("Added via command bus from %s", source)
			t, err := e.tasks.Create(m.Text, task.CategoryWork, task.PriorityMedium, note, nil)
			if err != nil {
				e.log.Push("Task rejected", err.Error(), notify.TypeWarning, source)
				return nil
			}
			e.log.Push("Task added", t.Text, notify.TypeSuccess, source)
			return nil
		})
	case bus.Notify:
		_ = e.mutate(func() error {
			typ, err := notify.ParseType(m.Type)
			if err != nil {
				typ = notify.TypeInfo
			}
			e.log.Push(m.Title, m.Message, typ, m.Source)
			return nil
		})
	}
}

// BrainDump parses text into tasks, inserts them and pushes one summary
// notification.
func (e *Engine) BrainDump(text string) ([]task.Task, error) {
	drafts := braindump.Parse(text)
	if len(drafts) == 0 {
		return nil, errs.Invalid("text", "no tasks found")
	}
	var added []task.Task
	err := e.mutate(func() error {
		var err error
		added, err = e.tasks.Add(drafts...)
		if err != nil {
			return err
		}
		e.log.Push("Brain dump processed", fmt.Sprintf("Added %d %s", len(added), plural(len(added), "task", "tasks")), notify.TypeSuccess, SourceBrainDump)
		return nil
	})
	return added, err
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
