package browse

import (
	"context"
	"sync"
	"time"
)

const (
	SearchDelay  = 300 * time.Millisecond
	ControlDelay = 100 * time.Millisecond
)

// Debouncer runs only the last function triggered within its delay. The
// context handed to a run is cancelled as soon as a newer call is
// triggered.
type Debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	pending func(ctx context.Context)
	ctx     context.Context
	cancel  context.CancelFunc
	gen     uint64
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

func (d *Debouncer) Trigger(fn func(ctx context.Context)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.resetLocked()
	d.ctx, d.cancel = context.WithCancel(context.Background())
	d.pending = fn
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

// Flush runs the pending call on the calling goroutine, if there is one.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.mu.Unlock()
	d.fire(d.generation())
}

// Stop drops the pending call and cancels the one in flight.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.resetLocked()
}

func (d *Debouncer) resetLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.pending = nil
	d.gen++
}

func (d *Debouncer) generation() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gen
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || d.pending == nil {
		d.mu.Unlock()
		return
	}
	fn, ctx := d.pending, d.ctx
	d.pending = nil
	d.mu.Unlock()

	fn(ctx)
}
