package store

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// Debounced coalesces saves per key and writes them to the wrapped Store
// after delay. Pending data is always written before the same key is loaded
// and on Flush or Close.
type Debounced struct {
	inner   Store
	delay   time.Duration
	onError func(key string, err error)

	mu      sync.Mutex
	pending map[string][]byte
	timer   *time.Timer

	// serialises writes so an older snapshot never lands after a newer one.
	writeMu sync.Mutex
}

// Debounce wraps inner. onError receives failures of background flushes and
// may be nil.
func Debounce(inner Store, delay time.Duration, onError func(key string, err error)) *Debounced {
	return &Debounced{
		inner:   inner,
		delay:   delay,
		onError: onError,
		pending: make(map[string][]byte),
	}
}

func (d *Debounced) Save(key string, data []byte) error {
	if err := validKey(key); err != nil {
		return err
	}
	d.mu.Lock()
	d.pending[key] = append([]byte(nil), data...)
	if d.timer == nil {
		d.timer = time.AfterFunc(d.delay, d.flushInBackground)
	}
	d.mu.Unlock()
	return nil
}

func (d *Debounced) Load(key string) ([]byte, error) {
	if err := d.flush(key); err != nil {
		return nil, err
	}
	return d.inner.Load(key)
}

// Flush writes all pending keys now.
func (d *Debounced) Flush() error {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()
	return d.flush("")
}

// Close flushes and closes the wrapped Store.
func (d *Debounced) Close() error {
	flushErr := d.Flush()
	return errors.Join(flushErr, Close(d.inner))
}

func (d *Debounced) flushInBackground() {
	d.mu.Lock()
	d.timer = nil
	d.mu.Unlock()
	if err := d.flush(""); err != nil && d.onError != nil {
		var keyed *flushError
		if errors.As(err, &keyed) {
			d.onError(keyed.key, keyed.err)
			return
		}
		d.onError("", err)
	}
}

// flush writes the pending value of key, or of every key when key is empty.
func (d *Debounced) flush(key string) error {
	d.writeMu.Lock()
	defer d.writeMu.Unlock()

	d.mu.Lock()
	batch := make(map[string][]byte)
	if key == "" {
		batch, d.pending = d.pending, make(map[string][]byte)
	} else if data, ok := d.pending[key]; ok {
		batch[key] = data
		delete(d.pending, key)
	}
	d.mu.Unlock()

	var errs []error
	for k, data := range batch {
		if err := d.inner.Save(k, data); err != nil {
			errs = append(errs, &flushError{key: k, err: err})
		}
	}
	return errors.Join(errs...)
}

type flushError struct {
	key string
	err error
}

func (e *flushError) Error() string { return fmt.Sprintf("flush %s: %v", e.key, e.err) }
func (e *flushError) Unwrap() error { return e.err }
