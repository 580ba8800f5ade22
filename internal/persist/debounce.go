// Package persist writes settings payloads through a debounce window.
package persist

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/verte-zerg/tuimorse/internal/model"
)

// DefaultDelay is the idle gap before a settings write.
const DefaultDelay = 500 * time.Millisecond

// Saver stores a settings payload under a namespace.
type Saver interface {
	SaveSettings(ctx context.Context, namespace string, payload []byte) error
}

// Debounced collapses bursts of settings changes into a single write.
// A zero delay writes synchronously.
type Debounced struct {
	saver     Saver
	namespace string
	delay     time.Duration
	onError   func(error)

	mu      sync.Mutex
	timer   *time.Timer
	pending []byte
	last    []byte
}

// NewDebounced returns a writer for namespace. onError receives failures of
// delayed writes; it may be nil.
func NewDebounced(saver Saver, namespace string, delay time.Duration, onError func(error)) *Debounced {
	return &Debounced{saver: saver, namespace: namespace, delay: delay, onError: onError}
}

// Namespace returns the settings namespace.
func (d *Debounced) Namespace() string {
	return d.namespace
}

// Schedule queues payload for writing. Payloads equal to the last one seen
// are ignored.
func (d *Debounced) Schedule(payload []byte) error {
	d.mu.Lock()
	if d.pending == nil && bytes.Equal(payload, d.last) {
		d.mu.Unlock()
		return nil
	}
	if d.pending != nil && bytes.Equal(payload, d.pending) {
		d.mu.Unlock()
		return nil
	}
	d.pending = append([]byte(nil), payload...)
	if d.delay <= 0 {
		d.mu.Unlock()
		return d.Flush(context.Background())
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
	d.mu.Unlock()
	return nil
}

// Seen records payload as already persisted, e.g. after loading it.
func (d *Debounced) Seen(payload []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.last = append([]byte(nil), payload...)
}

// Reset drops any pending write and forgets the last payload.
func (d *Debounced) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
	d.last = nil
}

func (d *Debounced) fire() {
	if err := d.Flush(context.Background()); err != nil && d.onError != nil {
		d.onError(err)
	}
}

// Flush writes the pending payload now. On failure the payload stays pending.
func (d *Debounced) Flush(ctx context.Context) error {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	payload := d.pending
	d.mu.Unlock()
	if payload == nil {
		return nil
	}
	if err := d.saver.SaveSettings(ctx, d.namespace, payload); err != nil {
		return &model.StorageError{Op: "save settings", Key: d.namespace, Err: err}
	}
	d.mu.Lock()
	d.last = payload
	if bytes.Equal(d.pending, payload) {
		d.pending = nil
	}
	d.mu.Unlock()
	return nil
}
