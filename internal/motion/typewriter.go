package motion

import (
	"fmt"
	"time"
)

// DefaultRevealInterval is the per-rune delay used by the dashboard.
const DefaultRevealInterval = 30 * time.Millisecond

// RevealState is the lifecycle of a Typewriter.
//
//	        SetText           last rune revealed
//	Idle ───────────► Revealing ─────────────────► Done
//	                    ▲   │
//	                    └───┘ SetText (new text restarts at zero)
type RevealState int

const (
	Idle RevealState = iota
	Revealing
	Done
)

func (s RevealState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Revealing:
		return "revealing"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("RevealState(%d)", int(s))
	}
}

// Typewriter reveals a string one rune per interval tick.
//
// An instance holds at most one active interval. Supplying a new string
// cancels the running interval before starting the next one, and supplying
// the string that is already showing does nothing. When the last rune is
// revealed the interval is cancelled and the done callback runs, once per
// string, inside that tick. An empty string completes on its first tick.
type Typewriter struct {
	sched    IntervalScheduler
	interval time.Duration
	onDone   func()

	source   string
	runes    []rune
	revealed int
	state    RevealState

	cancel func()
	closed bool
	// gen invalidates ticks delivered for a superseded string.
	gen uint64
}

type TypewriterOption func(*Typewriter)

// OnDone sets the completion callback.
func OnDone(fn func()) TypewriterOption {
	return func(t *Typewriter) {
		t.onDone = fn
	}
}

// NewTypewriter returns an idle typewriter. A nil scheduler or a
// non-positive interval reveals each string in full as soon as it is set.
func NewTypewriter(interval time.Duration, sched IntervalScheduler, opts ...TypewriterOption) *Typewriter {
	t := &Typewriter{
		sched:    sched,
		interval: interval,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetText starts revealing s from zero length.
func (t *Typewriter) SetText(s string) {
	if t.closed {
		return
	}
	if t.state != Idle && s == t.source {
		return
	}

	t.stop()
	t.gen++
	t.source = s
	t.runes = []rune(s)
	t.revealed = 0
	t.state = Revealing

	if t.sched == nil || t.interval <= 0 {
		t.revealed = len(t.runes)
		t.finish()
		return
	}

	gen := t.gen
	t.cancel = t.sched.Every(t.interval, func() {
		t.tick(gen)
	})
}

// Text is the revealed prefix.
func (t *Typewriter) Text() string {
	return string(t.runes[:t.revealed])
}

// Source is the full string being revealed.
func (t *Typewriter) Source() string {
	return t.source
}

// Revealed is the number of runes shown so far.
func (t *Typewriter) Revealed() int {
	return t.revealed
}

func (t *Typewriter) State() RevealState {
	return t.state
}

func (t *Typewriter) Done() bool {
	return t.state == Done
}

// Close cancels the active interval. Ticks delivered afterwards are ignored
// and SetText becomes a no-op.
func (t *Typewriter) Close() {
	t.stop()
	t.closed = true
	t.gen++
}

func (t *Typewriter) tick(gen uint64) {
	if t.closed || gen != t.gen || t.state != Revealing {
		return
	}
	if t.revealed < len(t.runes) {
		t.revealed++
	}
	if t.revealed == len(t.runes) {
		t.finish()
	}
}

func (t *Typewriter) finish() {
	t.stop()
	t.state = Done
	if t.onDone != nil {
		t.onDone()
	}
}

func (t *Typewriter) stop() {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}
