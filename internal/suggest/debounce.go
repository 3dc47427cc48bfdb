package suggest

import (
	"context"
	"sync"
	"time"
)

// DefaultDebounce is how long the debouncer waits for the user to stop
// typing before querying the providers.
const DefaultDebounce = 400 * time.Millisecond

// Debouncer coalesces rapid queries and guarantees that only results
// for the latest query are ever delivered. Every call advances a
// generation counter; timers and responses from older generations are
// discarded even when a slow response arrives after a fast one.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	gen     uint64
	timer   *time.Timer
	suggest func(ctx context.Context, query string) []string
	deliver func(query string, results []string)
}

// NewDebouncer wires a suggestion function to a delivery callback.
func NewDebouncer(
	delay time.Duration,
	suggest func(ctx context.Context, query string) []string,
	deliver func(query string, results []string),
) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay, suggest: suggest, deliver: deliver}
}

// Query schedules a suggestion lookup, superseding any pending one.
func (d *Debouncer) Query(ctx context.Context, query string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		if !d.current(gen) {
			return
		}
		results := d.suggest(ctx, query)
		// Re-check: the user may have typed again while the lookup was
		// in flight.
		if !d.current(gen) {
			return
		}
		d.deliver(query, results)
	})
}

// Cancel drops any pending lookup and invalidates in-flight responses.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer) current(gen uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gen == gen
}
