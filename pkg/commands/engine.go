package commands

import (
	"errors"
	"fmt"
	"os"

	"tableflip.dev/cmdcenter/pkg/engine"
	"tableflip.dev/cmdcenter/pkg/errs"
	"tableflip.dev/cmdcenter/pkg/store"
)

// loaded is an engine over the configured store.
type loaded struct {
	Engine *engine.Engine
	Config *store.FileConfig
	Store  store.Store
}

// Close flushes the engine and releases the store.
func (l *loaded) Close() error {
	return errors.Join(l.Engine.Close(), store.Close(l.Store))
}

// openEngine loads the config, opens the configured store and loads an
// engine over it. Callers must Close the result.
func openEngine() (*loaded, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	s, err := store.Open(cfg)
	if err != nil {
		return nil, err
	}
	e := engine.New(s, engine.Options{
		Tick:     cfg.TickInterval,
		Debounce: cfg.DebounceDelay,
	})
	if err := e.Load(); err != nil {
		if !errors.Is(err, errs.ErrStorage) {
			_ = e.Close()
			_ = store.Close(s)
			return nil, err
		}
		fmt.Fprintln(os.Stderr, "cmdcenter: continuing with empty state")
	}
	return &loaded{Engine: e, Config: cfg, Store: s}, nil
}

// withEngine runs fn against a freshly opened engine and closes it after.
func withEngine(fn func(e *engine.Engine) error) error {
	l, err := openEngine()
	if err != nil {
		return err
	}
	return errors.Join(fn(l.Engine), l.Close())
}
