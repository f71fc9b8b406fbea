// Package store provides the durable key/value adapters the engine persists to.
package store

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Keys used by the engine.
const (
	KeyTasks         = "tasks"
	KeyNotifications = "notifications"
)

// Backend names accepted by Open.
const (
	BackendDiskv  = "diskv"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// ErrNotExist is returned (wrapped) by Load when the key was never saved.
var ErrNotExist = errors.New("store: key does not exist")

// Store reads and writes named byte strings. Implementations are synchronous
// and safe for concurrent use.
type Store interface {
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
}

// Open creates the Store selected by cfg. A nil cfg loads the config from
// viper (see LoadConfig).
func Open(cfg Config) (Store, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	profile := cfg.Profile()
	if profile == "" {
		profile = DefaultProfile
	}
	if err := validKey(profile); err != nil {
		return nil, fmt.Errorf("store: profile: %w", err)
	}

	switch strings.ToLower(cfg.Backend()) {
	case "", BackendDiskv:
		return NewDisk(filepath.Join(cfg.BasePath(), profile))
	case BackendSQLite:
		return NewSQLite(filepath.Join(cfg.BasePath(), profile+".sqlite"))
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("store: unknown backend %q", cfg.Backend())
	}
}

// Close releases s if it holds resources.
func Close(s Store) error {
	if c, ok := s.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func validKey(key string) error {
	switch {
	case strings.TrimSpace(key) == "":
		return errors.New("empty key")
	case strings.ContainsAny(key, `/\`) || key == "." || key == "..":
		return fmt.Errorf("key %q must be a plain name", key)
	}
	return nil
}
