package engine

import (
	"errors"
	"testing"

	"tableflip.dev/cmdcenter/pkg/errs"
	"tableflip.dev/cmdcenter/pkg/notify"
	"tableflip.dev/cmdcenter/pkg/store"
	"tableflip.dev/cmdcenter/pkg/task"
)

func TestResolveTask(t *testing.T) {
	ids := []string{"abc123", "abd456", "xyz789"}
	next := 0
	e := New(store.NewMemory(), Options{IDs: func() string {
		id := ids[next%len(ids)]
		next++
		return id
	}})
	_ = e.Load()
	defer e.Close()
	for _, text := range []string{"one", "two", "three"} {
		if _, err := e.CreateTask(text, task.CategoryWork, task.PriorityMedium, "", nil); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	tests := []struct {
		ref     string
		want    string
		wantErr error
	}{
		{ref: "abc123", want: "one"},
		{ref: "abd", want: "two"},
		{ref: "x", want: "three"},
		{ref: "ab", wantErr: errs.ErrValidation},
		{ref: "nope", wantErr: errs.ErrNotFound},
		{ref: " ", wantErr: errs.ErrValidation},
	}
	for _, tc := range tests {
		got, err := e.ResolveTask(tc.ref)
		if tc.wantErr != nil {
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("ResolveTask(%q) err = %v, want %v", tc.ref, err, tc.wantErr)
			}
			continue
		}
		if err != nil || got.Text != tc.want {
			t.Errorf("ResolveTask(%q) = %q, %v; want %q", tc.ref, got.Text, err, tc.want)
		}
	}
}

func TestResolvePrefersExactMatch(t *testing.T) {
	tests := []struct {
		ref     string
		ids     []string
		want    int
		wantErr error
	}{
		{ref: "ab", ids: []string{"ab1", "ab2", "ab"}, want: 2},
		{ref: "ab", ids: []string{"ab", "ab1", "ab2"}, want: 0},
		{ref: "ab", ids: []string{"ab1", "ab2"}, wantErr: errs.ErrValidation},
		{ref: "ab1", ids: []string{"ab1", "ab12"}, want: 0},
	}
	for _, tc := range tests {
		got, err := resolve("task", tc.ref, tc.ids)
		if tc.wantErr != nil {
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("resolve(%q, %v) err = %v, want %v", tc.ref, tc.ids, err, tc.wantErr)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("resolve(%q, %v) = %d, %v; want %d", tc.ref, tc.ids, got, err, tc.want)
		}
	}
}

func TestResolveNotification(t *testing.T) {
	e := New(store.NewMemory(), Options{})
	_ = e.Load()
	defer e.Close()
	n := e.Notify("hello", "", notify.TypeInfo, "test")
	got, err := e.ResolveNotification(n.ID[:8])
	if err != nil || got.ID != n.ID {
		t.Fatalf("resolve = %+v, %v", got, err)
	}
}
