package store

import (
	"errors"
	"path/filepath"
	"testing"
)

type testConfig struct {
	path    string
	profile string
	backend string
}

func (t testConfig) BasePath() string { return t.path }
func (t testConfig) Profile() string  { return t.profile }
func (t testConfig) Backend() string  { return t.backend }

func TestBackendsRoundTrip(t *testing.T) {
	for _, backend := range []string{BackendDiskv, BackendSQLite, BackendMemory} {
		t.Run(backend, func(t *testing.T) {
			s, err := Open(testConfig{path: t.TempDir(), profile: "work", backend: backend})
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			t.Cleanup(func() { _ = Close(s) })

			if _, err := s.Load(KeyTasks); !errors.Is(err, ErrNotExist) {
				t.Fatalf("expected ErrNotExist for unsaved key, got %v", err)
			}
			if err := s.Save(KeyTasks, []byte(`[{"id":"a"}]`)); err != nil {
				t.Fatalf("save: %v", err)
			}
			if err := s.Save(KeyTasks, []byte(`[{"id":"b"}]`)); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			got, err := s.Load(KeyTasks)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if string(got) != `[{"id":"b"}]` {
				t.Fatalf("load = %s", got)
			}
		})
	}
}

func TestDiskProfilesAreIsolated(t *testing.T) {
	base := t.TempDir()
	a, err := Open(testConfig{path: base, profile: "a"})
	if err != nil {
		t.Fatalf("open a: %v", err)
	}
	b, err := Open(testConfig{path: base, profile: "b"})
	if err != nil {
		t.Fatalf("open b: %v", err)
	}
	if err := a.Save(KeyNotifications, []byte(`[]`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := b.Load(KeyNotifications); !errors.Is(err, ErrNotExist) {
		t.Fatalf("profile b should not see profile a data, got %v", err)
	}
	if disk, ok := a.(*Disk); !ok || disk.BasePath() != filepath.Join(base, "a") {
		t.Fatalf("unexpected disk store %#v", a)
	}
}

func TestOpenRejectsBadInput(t *testing.T) {
	if _, err := Open(testConfig{path: t.TempDir(), backend: "postgres"}); err == nil {
		t.Fatal("expected unknown backend error")
	}
	if _, err := Open(testConfig{path: t.TempDir(), profile: "../escape"}); err == nil {
		t.Fatal("expected profile validation error")
	}
	if err := NewMemory().Save("a/b", nil); err == nil {
		t.Fatal("expected key validation error")
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("CMDCENTER_CONFIG_PATH", t.TempDir())
	t.Setenv("CMDCENTER_PATH", "/tmp/cc-test")
	t.Setenv("CMDCENTER_PROFILE", "rail")
	t.Setenv("CMDCENTER_BACKEND", "sqlite")
	t.Setenv("CMDCENTER_DEBOUNCE", "250ms")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.BasePath() != "/tmp/cc-test" || cfg.Profile() != "rail" || cfg.Backend() != "sqlite" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.DebounceDelay.Milliseconds() != 250 {
		t.Fatalf("debounce = %v", cfg.DebounceDelay)
	}
	if cfg.TickInterval != DefaultTick {
		t.Fatalf("tick = %v, want default", cfg.TickInterval)
	}
}
