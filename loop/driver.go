package loop

import (
	"context"
	"sync"
	"time"

	"github.com/plus3/fallgrid/board"
)

// DefaultInterval is the reference delay between automatic drops.
const DefaultInterval = 800 * time.Millisecond

// DriverOption configures a Driver.
type DriverOption func(*Driver)

// WithObserver registers fn to receive a snapshot after every tick or command
// that changed the board. fn runs on the goroutine that caused the change,
// outside the scheduler lock.
func WithObserver(fn func(board.Snapshot)) DriverOption {
	return func(d *Driver) {
		d.observer = fn
	}
}

// WithSystems registers extra systems after gravity.
func WithSystems(systems ...System) DriverOption {
	return func(d *Driver) {
		d.extra = append(d.extra, systems...)
	}
}

// Driver owns the gravity timer for one engine. Start begins a game and the
// timer; Stop cancels the timer, waits for it to exit and halts the engine.
type Driver struct {
	scheduler *Scheduler
	interval  time.Duration
	observer  func(board.Snapshot)
	extra     []System

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewDriver creates a driver ticking engine every interval. A non-positive
// interval selects DefaultInterval.
func NewDriver(engine *board.Engine, interval time.Duration, opts ...DriverOption) *Driver {
	if interval <= 0 {
		interval = DefaultInterval
	}

	d := &Driver{
		scheduler: NewScheduler(engine),
		interval:  interval,
	}
	for _, opt := range opts {
		opt(d)
	}

	d.scheduler.Register(GravitySystem{})
	for _, system := range d.extra {
		d.scheduler.Register(system)
	}
	return d
}

// Scheduler returns the scheduler serializing access to the engine.
func (d *Driver) Scheduler() *Scheduler {
	return d.scheduler
}

// Start stops any running timer, starts a new game and begins ticking.
func (d *Driver) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()

	d.scheduler.View(func(e *board.Engine) { e.Start() })
	d.notify()

	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.scheduler.RunNotify(ctx, d.interval, d.notify)
	}()
}

// Stop cancels the timer and halts the engine. When Stop returns no further
// timer-driven step will run. Stop is safe to call repeatedly.
func (d *Driver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.scheduler.View(func(e *board.Engine) { e.Stop() })
}

func (d *Driver) stopLocked() {
	if d.cancel == nil {
		return
	}
	d.cancel()
	d.wg.Wait()
	d.cancel = nil
}

// Send applies a player command immediately, serialized with the timer.
func (d *Driver) Send(cmd board.Command) board.Outcome {
	outcome := d.scheduler.Apply(cmd)
	if outcome.Changed() {
		d.notify()
	}
	return outcome
}

// Snapshot returns the current frame.
func (d *Driver) Snapshot() board.Snapshot {
	var s board.Snapshot
	d.scheduler.View(func(e *board.Engine) { s = e.Snapshot() })
	return s
}

// Running reports whether the engine is accepting ticks and commands.
func (d *Driver) Running() bool {
	var running bool
	d.scheduler.View(func(e *board.Engine) { running = e.Running() })
	return running
}

func (d *Driver) notify() {
	if d.observer != nil {
		d.observer(d.Snapshot())
	}
}
