package store

import (
	"errors"
	"fmt"
	"os"

	"github.com/peterbourgon/diskv/v3"
)

// Disk stores each key as one file under a profile directory.
type Disk struct {
	d        *diskv.Diskv
	basePath string
}

// NewDisk opens (creating if needed) a diskv store rooted at basePath.
func NewDisk(basePath string) (*Disk, error) {
	if basePath == "" {
		return nil, errors.New("store: base path required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &Disk{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
		basePath: basePath,
	}, nil
}

// BasePath is the directory holding the key files.
func (s *Disk) BasePath() string {
	return s.basePath
}

func (s *Disk) Load(key string) ([]byte, error) {
	if err := validKey(key); err != nil {
		return nil, err
	}
	if !s.d.Has(key) {
		return nil, fmt.Errorf("%w: %s", ErrNotExist, key)
	}
	data, err := s.d.Read(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotExist, key)
		}
		return nil, err
	}
	return data, nil
}

func (s *Disk) Save(key string, data []byte) error {
	if err := validKey(key); err != nil {
		return err
	}
	return s.d.Write(key, data)
}

// Erase removes key; erasing a missing key is not an error.
func (s *Disk) Erase(key string) error {
	if !s.d.Has(key) {
		return nil
	}
	return s.d.Erase(key)
}

func keyToPathTransform(key string) *diskv.PathKey {
	return &diskv.PathKey{Path: []string{}, FileName: key}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return pathKey.FileName
}
