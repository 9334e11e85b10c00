// Package watcher reports catalog file changes, coalescing bursts of writes
// into a single reload.
package watcher

import (
	"sort"
	"sync"
	"time"
)

// DefaultDebounceDuration is the default debounce window.
const DefaultDebounceDuration = 250 * time.Millisecond

// Debouncer collects paths and delivers them in one batch once no new path
// has arrived for the debounce duration.
type Debouncer struct {
	duration time.Duration
	timer    *time.Timer
	mu       sync.Mutex
	seq      uint64
	pending  map[string]struct{}
}

// NewDebouncer creates a new Debouncer with the specified duration.
// If duration is 0, DefaultDebounceDuration is used.
func NewDebouncer(duration time.Duration) *Debouncer {
	if duration <= 0 {
		duration = DefaultDebounceDuration
	}
	return &Debouncer{
		duration: duration,
		pending:  make(map[string]struct{}),
	}
}

// Add records path and restarts the window. When the window closes, flush
// receives every path added since the last flush, sorted and deduplicated.
func (d *Debouncer) Add(path string, flush func(paths []string)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending[path] = struct{}{}
	d.seq++
	seq := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.duration, func() {
		paths, ok := d.take(seq)
		if !ok {
			return
		}
		flush(paths)
	})
}

// take drains the pending set if seq is still the latest Add. A stale timer
// that fired while a newer Add was stopping it must not flush.
func (d *Debouncer) take(seq uint64) ([]string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if seq != d.seq {
		return nil, false
	}
	d.timer = nil
	paths := make([]string, 0, len(d.pending))
	for p := range d.pending {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	d.pending = make(map[string]struct{})
	return paths, true
}

// Cancel drops pending paths without flushing.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	d.pending = make(map[string]struct{})
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Duration returns the debounce duration.
func (d *Debouncer) Duration() time.Duration {
	return d.duration
}
