package motion

import (
	"math"
	"time"
)

// DefaultCountDuration is how long a counter takes to reach its target.
const DefaultCountDuration = 1200 * time.Millisecond

// Counter animates a displayed integer from its starting point to a target.
//
// A counter does nothing until Show is called. Show is latched: the first
// call starts the run, later calls are ignored. On every frame the displayed
// value is round(ease(progress) * (target - from)) + from, where from is 0
// for a fresh run. The displayed value never moves away from the target and
// never leaves the closed range between 0 and the target.
//
// Changing the target after the run has started restarts the run from the
// current displayed value, clamped into the new target's range.
type Counter struct {
	clock    Clock
	frames   FrameScheduler
	ease     Curve
	duration time.Duration

	gate   Gate
	target int
	from   int
	value  int
	start  time.Time

	finished bool
	closed   bool
	// gen invalidates frame callbacks queued by an earlier run.
	gen uint64
}

type CounterOption func(*Counter)

func WithClock(c Clock) CounterOption {
	return func(ctr *Counter) {
		if c != nil {
			ctr.clock = c
		}
	}
}

// WithFrames sets the frame scheduler. A nil scheduler makes the counter
// jump straight to its target when shown.
func WithFrames(f FrameScheduler) CounterOption {
	return func(ctr *Counter) {
		ctr.frames = f
	}
}

func WithEase(c Curve) CounterOption {
	return func(ctr *Counter) {
		if c != nil {
			ctr.ease = c
		}
	}
}

func NewCounter(target int, duration time.Duration, opts ...CounterOption) *Counter {
	c := &Counter{
		clock:    RealClock,
		ease:     EaseOutCubic,
		duration: duration,
		target:   target,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Show opens the counter's visibility gate. Only the first call has an effect.
func (c *Counter) Show() {
	if c.closed {
		return
	}
	if c.gate.Observe(true) {
		c.begin()
	}
}

// Started reports whether Show has been called.
func (c *Counter) Started() bool {
	return c.gate.Open()
}

// SetTarget changes the value the counter converges to.
func (c *Counter) SetTarget(target int) {
	if target == c.target || c.closed {
		return
	}
	if !c.gate.Open() {
		c.target = target
		c.from = 0
		c.value = 0
		return
	}
	c.from = clampToward(c.value, target)
	c.target = target
	c.begin()
}

// SetDuration changes the run length. An in-flight run restarts from the
// current displayed value; a finished counter only stores it.
func (c *Counter) SetDuration(d time.Duration) {
	if d == c.duration || c.closed {
		return
	}
	c.duration = d
	if !c.gate.Open() {
		return
	}
	// a settled counter has nothing left to animate; the new length applies
	// to the next retarget
	if c.finished && c.value == c.target {
		return
	}
	c.from = clampToward(c.value, c.target)
	c.begin()
}

// Value is the currently displayed value.
func (c *Counter) Value() int {
	return c.value
}

// Target is the value the counter converges to.
func (c *Counter) Target() int {
	return c.target
}

// Finished reports whether the displayed value has reached the target.
func (c *Counter) Finished() bool {
	return c.finished
}

// Close stops the counter. Frames already queued become no-ops and the
// displayed value is frozen.
func (c *Counter) Close() {
	c.closed = true
	c.gen++
}

func (c *Counter) begin() {
	c.gen++
	c.finished = false
	c.value = c.from
	c.start = c.clock.Now()

	if c.frames == nil || c.duration <= 0 {
		c.complete()
		return
	}
	c.request()
}

func (c *Counter) request() {
	gen := c.gen
	c.frames.RequestFrame(func(now time.Time) {
		c.frame(gen, now)
	})
}

func (c *Counter) frame(gen uint64, now time.Time) {
	if c.closed || gen != c.gen || c.finished {
		return
	}

	progress := Progress(now.Sub(c.start), c.duration)
	if progress >= 1 {
		c.complete()
		return
	}

	delta := float64(c.target - c.from)
	next := c.from + int(math.Round(c.ease(progress)*delta))
	c.value = c.advance(next)
	c.request()
}

func (c *Counter) complete() {
	c.value = c.target
	c.finished = true
}

// advance moves the displayed value to next without ever stepping away from
// the target or past it.
func (c *Counter) advance(next int) int {
	lo, hi := c.value, c.target
	if lo > hi {
		lo, hi = hi, lo
	}
	return min(max(next, lo), hi)
}

// clampToward restricts v to the closed range between 0 and target.
func clampToward(v, target int) int {
	lo, hi := 0, target
	if lo > hi {
		lo, hi = hi, lo
	}
	return min(max(v, lo), hi)
}
