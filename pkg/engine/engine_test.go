package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"tableflip.dev/cmdcenter/pkg/bus"
	"tableflip.dev/cmdcenter/pkg/errs"
	"tableflip.dev/cmdcenter/pkg/notify"
	"tableflip.dev/cmdcenter/pkg/store"
	"tableflip.dev/cmdcenter/pkg/task"
)

type flakyStore struct {
	*store.Memory
	mu   sync.Mutex
	fail bool
}

func (f *flakyStore) Save(key string, data []byte) error {
	f.mu.Lock()
	fail := f.fail
	f.mu.Unlock()
	if fail {
		return errors.New("disk full")
	}
	return f.Memory.Save(key, data)
}

func (f *flakyStore) setFail(v bool) {
	f.mu.Lock()
	f.fail = v
	f.mu.Unlock()
}

func newTestEngine(t *testing.T, s store.Store, opts Options) *Engine {
	t.Helper()
	if s == nil {
		s = store.NewMemory()
	}
	counter := 0
	if opts.IDs == nil {
		opts.IDs = func() string {
			counter++
			return fmt.Sprintf("id-%d", counter)
		}
	}
	e := New(s, opts)
	if err := e.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	t.Cleanup(func() { _ = e.Close() })
	return e
}

func countType(list []notify.Notification, typ notify.Type) int {
	n := 0
	for _, item := range list {
		if item.Type == typ {
			n++
		}
	}
	return n
}

func TestShipReleaseScenario(t *testing.T) {
	e := newTestEngine(t, nil, Options{})

	tk, err := e.CreateTask("Ship release", task.CategoryWork, task.PriorityHigh, "", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := e.CycleStatus(tk.ID); err != nil {
		t.Fatalf("cycle: %v", err)
	}
	if err := e.StartFocus(tk.ID); err != nil {
		t.Fatalf("start focus: %v", err)
	}
	for i := 0; i < 5; i++ {
		e.Tick()
	}
	if got := e.StopFocus(); got != 5 {
		t.Fatalf("committed %d, want 5", got)
	}

	got, _ := e.Task(tk.ID)
	if got.FocusTime != 5 || got.Status != task.StatusInProgress {
		t.Fatalf("unexpected task %+v", got)
	}
	list := e.Notifications()
	if len(list) != 1 || list[0].Type != notify.TypeInfo {
		t.Fatalf("expected one info notification, got %+v", list)
	}
}

func TestDeletingFocusedTaskDiscardsSession(t *testing.T) {
	e := newTestEngine(t, nil, Options{})
	a, _ := e.CreateTask("a", task.CategoryWork, task.PriorityMedium, "", nil)
	b, _ := e.CreateTask("b", task.CategoryWork, task.PriorityMedium, "", nil)

	e.StartFocus(a.ID)
	e.Tick()
	e.Tick()
	e.StopFocus()

	e.StartFocus(a.ID)
	e.Tick()
	e.Tick()
	e.Tick()
	if err := e.DeleteTask(a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if e.Session().Active() {
		t.Fatal("timer should be idle after deleting its task")
	}
	if e.Tick() {
		t.Fatal("tick after delete should not advance")
	}

	e.StartFocus(b.ID)
	e.Tick()
	e.StopFocus()
	if got, _ := e.Task(b.ID); got.FocusTime != 1 {
		t.Fatalf("b focus time = %d, want 1", got.FocusTime)
	}
}

func TestBusAddTaskAndNotify(t *testing.T) {
	b := bus.New()
	e := newTestEngine(t, nil, Options{Bus: b})

	b.Publish(bus.AddTask{Text: "Write changelog", Source: "generator"})
	b.Publish(bus.Notify{Title: "Heads up", Type: "warning", Source: "deploy"})
	b.Publish(bus.Notify{Title: "Odd", Type: "shout"})
	b.Publish(bus.AddTask{Text: "   "})

	tasks := e.Tasks(task.Filter{})
	if len(tasks) != 1 {
		t.Fatalf("tasks = %+v", tasks)
	}
	tk := tasks[0]
	if tk.Category != task.CategoryWork || tk.Priority != task.PriorityMedium {
		t.Fatalf("bus task defaults wrong: %+v", tk)
	}
	if !strings.Contains(tk.Notes, "generator") {
		t.Fatalf("provenance note missing source: %q", tk.Notes)
	}

	list := e.Notifications()
	if len(list) != 4 {
		t.Fatalf("notifications = %+v", list)
	}
	if list[3].Type != notify.TypeSuccess || list[3].Source != "generator" {
		t.Fatalf("expected success notification for bus task, got %+v", list[3])
	}
	if list[2].Type != notify.TypeWarning || list[2].Source != "deploy" {
		t.Fatalf("forwarded notify = %+v", list[2])
	}
	if list[1].Type != notify.TypeInfo {
		t.Fatalf("unknown type should become info: %+v", list[1])
	}
	if list[0].Title != "Task rejected" {
		t.Fatalf("blank bus task should be rejected: %+v", list[0])
	}
}

func TestCloseUnsubscribesFromBus(t *testing.T) {
	b := bus.New()
	e := New(store.NewMemory(), Options{Bus: b})
	_ = e.Load()
	if b.Len() != 1 {
		t.Fatalf("subscribers = %d", b.Len())
	}
	_ = e.Close()
	if b.Len() != 0 {
		t.Fatalf("subscribers after close = %d", b.Len())
	}
}

func TestBrainDump(t *testing.T) {
	e := newTestEngine(t, nil, Options{})
	added, err := e.BrainDump("- a\n\nb\n* c")
	if err != nil {
		t.Fatalf("brain dump: %v", err)
	}
	if len(added) != 3 || added[0].Text != "a" || added[2].Text != "c" {
		t.Fatalf("added = %+v", added)
	}
	list := e.Notifications()
	if len(list) != 1 || list[0].Message != "Added 3 tasks" {
		t.Fatalf("summary notification = %+v", list)
	}
	if _, err := e.BrainDump("\n  \n"); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("expected validation error for empty dump, got %v", err)
	}
}

func TestStatsAreDerived(t *testing.T) {
	e := newTestEngine(t, nil, Options{})
	a, _ := e.CreateTask("a", task.CategoryWork, task.PriorityMedium, "", nil)
	e.CreateTask("b", task.CategoryWork, task.PriorityMedium, "", nil)
	e.CycleStatus(a.ID)
	e.Notify("hello", "", notify.TypeInfo, "")
	e.StartFocus(a.ID)
	e.Tick()

	s := e.Stats()
	if s.Todo != 1 || s.InProgress != 1 || s.Done != 0 || s.Total != 2 {
		t.Fatalf("counts = %+v", s.Counts)
	}
	if s.Unread != 2 {
		t.Fatalf("unread = %d, want 2", s.Unread)
	}
	if s.Focus != "a 00:01" {
		t.Fatalf("focus display = %q", s.Focus)
	}

	e.MarkAllRead()
	if got := e.Stats().Unread; got != 0 {
		t.Fatalf("unread after mark all = %d", got)
	}
}

func TestWriteFailureBecomesWarning(t *testing.T) {
	s := &flakyStore{Memory: store.NewMemory()}
	e := newTestEngine(t, s, Options{})
	s.setFail(true)

	tk, err := e.CreateTask("a", task.CategoryWork, task.PriorityMedium, "", nil)
	if err != nil {
		t.Fatalf("create must not fail on write error: %v", err)
	}
	if _, ok := e.Task(tk.ID); !ok {
		t.Fatal("in-memory mutation lost")
	}
	list := e.Notifications()
	if countType(list, notify.TypeWarning) != 1 || list[0].Source != SourceStorage {
		t.Fatalf("expected one storage warning, got %+v", list)
	}
}

func TestLoadFailureStartsEmpty(t *testing.T) {
	s := store.NewMemory()
	_ = s.Save(store.KeyTasks, []byte("{broken"))
	e := New(s, Options{})
	if err := e.Load(); !errors.Is(err, errs.ErrStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if len(e.Tasks(task.Filter{})) != 0 {
		t.Fatal("expected empty task list")
	}
	if _, err := e.CreateTask("works", task.CategoryWork, task.PriorityMedium, "", nil); err != nil {
		t.Fatalf("engine unusable after failed load: %v", err)
	}
}

func TestObserversSeeEveryChange(t *testing.T) {
	e := newTestEngine(t, nil, Options{})
	var panel, rail []Snapshot
	cancelPanel := e.Subscribe(func(s Snapshot) { panel = append(panel, s) })
	e.Subscribe(func(s Snapshot) { rail = append(rail, s) })

	tk, _ := e.CreateTask("a", task.CategoryWork, task.PriorityMedium, "", nil)
	e.CycleStatus(tk.ID)
	cancelPanel()
	e.Notify("x", "", notify.TypeInfo, "")

	if len(panel) != 2 || len(rail) != 3 {
		t.Fatalf("panel saw %d, rail saw %d", len(panel), len(rail))
	}
	if panel[1].Tasks[0].Status != task.StatusInProgress {
		t.Fatalf("panel snapshot stale: %+v", panel[1].Tasks)
	}
	if rail[2].Stats.Unread != 1 {
		t.Fatalf("rail snapshot stale: %+v", rail[2].Stats)
	}
}

func TestObserverMayQueryEngine(t *testing.T) {
	e := newTestEngine(t, nil, Options{})
	done := make(chan int, 1)
	e.Subscribe(func(Snapshot) {
		select {
		case done <- e.Stats().Total:
		default:
		}
	})
	e.CreateTask("a", task.CategoryWork, task.PriorityMedium, "", nil)
	if got := <-done; got != 1 {
		t.Fatalf("total = %d", got)
	}
}

func TestObserverEndsOnNewestSnapshot(t *testing.T) {
	e := newTestEngine(t, nil, Options{})

	var (
		mu    sync.Mutex
		last  Snapshot
		calls int
	)
	entered := make(chan struct{})
	release := make(chan struct{})
	e.Subscribe(func(s Snapshot) {
		mu.Lock()
		calls++
		first := calls == 1
		mu.Unlock()
		if first {
			close(entered)
			<-release
		}
		mu.Lock()
		last = s
		mu.Unlock()
	})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		e.CreateTask("a", task.CategoryWork, task.PriorityMedium, "", nil)
	}()
	<-entered
	go func() {
		defer wg.Done()
		e.CreateTask("b", task.CategoryWork, task.PriorityMedium, "", nil)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for len(e.Tasks(task.Filter{})) < 2 {
		if time.Now().After(deadline) {
			t.Fatal("second task never landed")
		}
		time.Sleep(time.Millisecond)
	}
	close(release)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if len(last.Tasks) != 2 {
		t.Fatalf("engine has 2 tasks; last observed snapshot has %d", len(last.Tasks))
	}
	if last.Seq != e.Snapshot().Seq {
		t.Fatalf("last observed seq %d, engine seq %d", last.Seq, e.Snapshot().Seq)
	}
}

func TestObserverDropsStaleSnapshot(t *testing.T) {
	var got []uint64
	o := &observer{fn: func(s Snapshot) { got = append(got, s.Seq) }}
	for _, seq := range []uint64{1, 3, 2, 3, 4} {
		o.deliver(Snapshot{Seq: seq})
	}
	if len(got) != 3 || got[0] != 1 || got[1] != 3 || got[2] != 4 {
		t.Fatalf("delivered %v, want [1 3 4]", got)
	}
}

func TestSeqAdvancesOnChangeOnly(t *testing.T) {
	e := newTestEngine(t, nil, Options{})
	before := e.Snapshot().Seq
	e.Stats()
	e.Tasks(task.Filter{})
	if got := e.Snapshot().Seq; got != before {
		t.Fatalf("queries moved seq %d -> %d", before, got)
	}
	e.CreateTask("a", task.CategoryWork, task.PriorityMedium, "", nil)
	if got := e.Snapshot().Seq; got <= before {
		t.Fatalf("seq did not advance: %d -> %d", before, got)
	}
}

func TestRunTicksUntilCancelled(t *testing.T) {
	e := newTestEngine(t, nil, Options{Tick: time.Millisecond})
	tk, _ := e.CreateTask("a", task.CategoryWork, task.PriorityMedium, "", nil)
	e.StartFocus(tk.ID)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- e.Run(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for e.Session().ElapsedSeconds < 3 {
		if time.Now().After(deadline) {
			t.Fatal("timer did not advance")
		}
		time.Sleep(time.Millisecond)
	}
	cancel()
	if err := <-errCh; err != nil {
		t.Fatalf("run: %v", err)
	}
	committed := e.StopFocus()
	if got, _ := e.Task(tk.ID); got.FocusTime != committed || committed < 3 {
		t.Fatalf("focus time %d, committed %d", got.FocusTime, committed)
	}
}

func TestConcurrentTicksAndDeletes(t *testing.T) {
	e := newTestEngine(t, nil, Options{})
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		tk, _ := e.CreateTask(fmt.Sprintf("t%d", i), task.CategoryWork, task.PriorityMedium, "", nil)
		e.StartFocus(tk.ID)
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				e.Tick()
			}
		}()
		go func(id string) {
			defer wg.Done()
			_ = e.DeleteTask(id)
		}(tk.ID)
		wg.Wait()
		if e.Session().Active() {
			t.Fatal("session survived deletion of its task")
		}
	}
}

func TestDebouncedWritesFlushOnClose(t *testing.T) {
	s := store.NewMemory()
	e := New(s, Options{Debounce: time.Hour})
	if err := e.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	e.CreateTask("batched", task.CategoryWork, task.PriorityMedium, "", nil)
	if _, err := s.Load(store.KeyTasks); !errors.Is(err, store.ErrNotExist) {
		t.Fatalf("write should still be pending, got %v", err)
	}
	if err := e.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	raw, err := s.Load(store.KeyTasks)
	if err != nil || !strings.Contains(string(raw), "batched") {
		t.Fatalf("close did not flush: %s %v", raw, err)
	}
}

func TestCloseCommitsRunningSession(t *testing.T) {
	s := store.NewMemory()
	e := New(s, Options{})
	_ = e.Load()
	tk, _ := e.CreateTask("a", task.CategoryWork, task.PriorityMedium, "", nil)
	e.StartFocus(tk.ID)
	e.Tick()
	e.Tick()
	_ = e.Close()

	again := New(s, Options{})
	_ = again.Load()
	defer again.Close()
	if got, _ := again.Task(tk.ID); got.FocusTime != 2 {
		t.Fatalf("focus time after reopen = %d, want 2", got.FocusTime)
	}
}
