// Package timer provides the countdown abstraction used for burn-cooling
// periods, medication re-dose windows and the verification resend cooldown.
package timer

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// State is the lifecycle state of a Countdown.
type State string

const (
	// StateIdle means the countdown has not started (remaining == total).
	StateIdle State = "idle"
	// StateRunning means the countdown is ticking once per second.
	StateRunning State = "running"
	// StatePaused means the countdown was stopped mid-run and can resume.
	StatePaused State = "paused"
	// StateExpired means the countdown reached zero. Reset is required
	// before it can run again.
	StateExpired State = "expired"
)

// DefaultTickInterval is the wall-clock period between countdown ticks.
const DefaultTickInterval = time.Second

// Opts holds configuration options for a Countdown.
type Opts struct {
	TickInterval time.Duration
	OnExpire     func()
}

// Option defines a configuration option for a Countdown.
type Option func(*Opts)

// WithTickInterval overrides the tick period. Used by tests to run fast.
func WithTickInterval(d time.Duration) Option {
	return func(o *Opts) { o.TickInterval = d }
}

// WithOnExpire registers a callback fired once when the countdown reaches zero.
func WithOnExpire(fn func()) Option {
	return func(o *Opts) { o.OnExpire = fn }
}

// Countdown is a second-granularity countdown timer. Ticks are driven by a
// monotonic time.Ticker rather than a sleep loop, so they do not drift.
// Every Countdown must be stopped (Stop or Reset) when its owner is
// disposed so no ticker goroutine outlives the owning screen or flow.
type Countdown struct {
	mu           sync.Mutex
	total        int // seconds
	remaining    int // seconds, 0 <= remaining <= total
	state        State
	tickInterval time.Duration
	onExpire     func()
	stopTick     chan struct{} // non-nil while the ticker goroutine runs
}

// NewCountdown creates a countdown with the given total duration in seconds.
// The countdown starts Idle; call Start to begin ticking.
func NewCountdown(totalSeconds int, opts ...Option) *Countdown {
	cfg := Opts{TickInterval: DefaultTickInterval}
	for _, opt := range opts {
		opt(&cfg)
	}
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	slog.Debug("Creating Countdown", "total_seconds", totalSeconds)
	return &Countdown{
		total:        totalSeconds,
		remaining:    totalSeconds,
		state:        StateIdle,
		tickInterval: cfg.TickInterval,
		onExpire:     cfg.OnExpire,
	}
}

// Start begins or resumes the countdown. Starting a Running countdown is a
// no-op, as is starting an Expired one (Reset first).
func (c *Countdown) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StateRunning, StateExpired:
		slog.Debug("Countdown Start ignored", "state", c.state)
		return
	case StateIdle:
		// Fresh start: remaining is already total.
		c.remaining = c.total
	case StatePaused:
		// Resume from current remaining.
	}

	c.state = StateRunning
	c.stopTick = make(chan struct{})
	go c.run(c.stopTick)
	slog.Debug("Countdown started", "remaining", c.remaining, "total", c.total)
}

// Stop pauses a Running countdown. Stopping in any other state is a no-op.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.haltLocked(StatePaused)
}

// Reset halts the countdown and returns remaining to total, state Idle.
func (c *Countdown) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.haltLocked(StateIdle)
	c.remaining = c.total
	slog.Debug("Countdown reset", "total", c.total)
}

// Restart is the composite reset-then-run operation used by UI reset buttons:
// remaining returns to total and the countdown immediately resumes running.
func (c *Countdown) Restart() {
	c.Reset()
	c.Start()
}

// haltLocked stops the ticker goroutine if one is running and records the
// resulting state. Callers must hold c.mu.
func (c *Countdown) haltLocked(next State) {
	if c.stopTick != nil {
		close(c.stopTick)
		c.stopTick = nil
	}
	if c.state == StateRunning {
		c.state = next
	} else if next == StateIdle {
		c.state = StateIdle
	}
}

// run drives ticks until the countdown expires or is halted.
func (c *Countdown) run(stop chan struct{}) {
	ticker := time.NewTicker(c.tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !c.Tick() {
				return
			}
		}
	}
}

// Tick advances the countdown by one second and reports whether it is still
// running. Normally driven by the internal ticker; tests call it directly to
// simulate the passage of time.
func (c *Countdown) Tick() bool {
	c.mu.Lock()
	if c.state != StateRunning {
		c.mu.Unlock()
		return false
	}

	c.remaining--
	if c.remaining > 0 {
		c.mu.Unlock()
		return true
	}

	// Clamp at zero and expire.
	c.remaining = 0
	c.state = StateExpired
	c.stopTick = nil
	onExpire := c.onExpire
	c.mu.Unlock()

	slog.Debug("Countdown expired", "total", c.total)
	if onExpire != nil {
		onExpire()
	}
	return false
}

// State returns the current lifecycle state.
func (c *Countdown) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Remaining returns the remaining duration in seconds.
func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Total returns the configured total duration in seconds.
func (c *Countdown) Total() int {
	return c.total
}

// Expired reports whether the countdown has reached zero.
func (c *Countdown) Expired() bool {
	return c.State() == StateExpired
}

// FormattedRemaining renders the remaining time as zero-padded "MM:SS".
func (c *Countdown) FormattedRemaining() string {
	remaining := c.Remaining()
	return fmt.Sprintf("%02d:%02d", remaining/60, remaining%60)
}
