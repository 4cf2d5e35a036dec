// Package schedule drives motion's frame and interval ports from the Bubble
// Tea update loop. Callbacks only ever run inside Model.Update, so animation
// state is touched by a single goroutine.
package schedule

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/garrettladley/dealdesk/internal/motion"
)

const DefaultFPS = 60

var (
	_ motion.FrameScheduler    = (*Loop)(nil)
	_ motion.IntervalScheduler = (*Loop)(nil)
)

// FrameMsg delivers a frame to every callback queued since the last one.
type FrameMsg struct {
	Time time.Time
}

// IntervalMsg is one tick of the interval with the given id.
type IntervalMsg struct {
	ID   uint64
	Time time.Time
}

type interval struct {
	every time.Duration
	fn    func()
}

// Loop queues tea commands for scheduled work. The owning model forwards
// every message to Handle and batches Cmd into its Update result.
type Loop struct {
	frameEvery time.Duration

	frames      []func(time.Time)
	frameQueued bool

	intervals map[uint64]*interval
	nextID    uint64

	pending []tea.Cmd
}

func New(fps int) *Loop {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &Loop{
		frameEvery: time.Second / time.Duration(fps),
		intervals:  make(map[uint64]*interval),
	}
}

// RequestFrame queues fn for the next frame. Requests made before the
// frame arrives share one tick.
func (l *Loop) RequestFrame(fn func(now time.Time)) {
	l.frames = append(l.frames, fn)
	if l.frameQueued {
		return
	}
	l.frameQueued = true
	l.pending = append(l.pending, tea.Tick(l.frameEvery, func(t time.Time) tea.Msg {
		return FrameMsg{Time: t}
	}))
}

// Every runs fn every d until cancelled. Ticks that arrive after cancel
// are dropped.
func (l *Loop) Every(d time.Duration, fn func()) (cancel func()) {
	l.nextID++
	id := l.nextID
	l.intervals[id] = &interval{every: d, fn: fn}
	l.pending = append(l.pending, l.tick(id, d))
	return func() {
		delete(l.intervals, id)
	}
}

// Handle runs the callbacks a scheduling message is addressed to. It reports
// whether msg belonged to the loop.
func (l *Loop) Handle(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case FrameMsg:
		l.frameQueued = false
		batch := l.frames
		l.frames = nil
		for _, fn := range batch {
			fn(msg.Time)
		}
		return true

	case IntervalMsg:
		iv, ok := l.intervals[msg.ID]
		if !ok {
			return true
		}
		iv.fn()
		// the callback may have cancelled its own interval
		if _, ok := l.intervals[msg.ID]; ok {
			l.pending = append(l.pending, l.tick(msg.ID, iv.every))
		}
		return true
	}
	return false
}

// Cmd drains the commands queued since the last call.
func (l *Loop) Cmd() tea.Cmd {
	if len(l.pending) == 0 {
		return nil
	}
	cmds := l.pending
	l.pending = nil
	return tea.Batch(cmds...)
}

// Active is the number of live intervals.
func (l *Loop) Active() int {
	return len(l.intervals)
}

// PendingFrames is the number of callbacks waiting for the next frame.
func (l *Loop) PendingFrames() int {
	return len(l.frames)
}

func (l *Loop) tick(id uint64, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return IntervalMsg{ID: id, Time: t}
	})
}
