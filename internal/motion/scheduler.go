package motion

import "time"

// FrameScheduler runs a callback once, before the next redraw.
// now is the frame timestamp.
type FrameScheduler interface {
	RequestFrame(fn func(now time.Time))
}

// IntervalScheduler invokes fn every d until the returned cancel func is
// called. Cancel must be safe to call more than once.
type IntervalScheduler interface {
	Every(d time.Duration, fn func()) (cancel func())
}
