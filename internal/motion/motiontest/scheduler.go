package motiontest

import (
	"sort"
	"time"
)

// Scheduler implements both motion.FrameScheduler and
// motion.IntervalScheduler against a FakeClock. Nothing runs until the test
// calls Frame or Advance.
type Scheduler struct {
	Clock *FakeClock

	frames    []func(time.Time)
	intervals []*interval
	nextID    int

	// Cancels counts distinct interval cancellations.
	Cancels int
}

type interval struct {
	id     int
	every  time.Duration
	next   time.Time
	fn     func()
	active bool
}

func NewScheduler(clock *FakeClock) *Scheduler {
	if clock == nil {
		clock = NewFakeClock()
	}
	return &Scheduler{Clock: clock}
}

func (s *Scheduler) RequestFrame(fn func(now time.Time)) {
	s.frames = append(s.frames, fn)
}

// Frame runs every frame callback queued so far at the clock's current time.
// Callbacks requested while running are queued for the next call.
func (s *Scheduler) Frame() int {
	batch := s.frames
	s.frames = nil
	now := s.Clock.Now()
	for _, fn := range batch {
		fn(now)
	}
	return len(batch)
}

// Step advances the clock by d and then runs one frame batch.
func (s *Scheduler) Step(d time.Duration) int {
	s.Clock.Advance(d)
	return s.Frame()
}

// PendingFrames is the number of queued frame callbacks.
func (s *Scheduler) PendingFrames() int {
	return len(s.frames)
}

func (s *Scheduler) Every(d time.Duration, fn func()) (cancel func()) {
	s.nextID++
	iv := &interval{
		id:     s.nextID,
		every:  d,
		next:   s.Clock.Now().Add(d),
		fn:     fn,
		active: true,
	}
	s.intervals = append(s.intervals, iv)
	return func() {
		if iv.active {
			iv.active = false
			s.Cancels++
		}
	}
}

// Advance moves the clock forward by d, firing due intervals in time order.
// The clock reads each interval's due time while its callback runs.
func (s *Scheduler) Advance(d time.Duration) {
	end := s.Clock.Now().Add(d)
	for {
		iv := s.due(end)
		if iv == nil {
			break
		}
		s.Clock.Set(iv.next)
		iv.next = iv.next.Add(iv.every)
		iv.fn()
	}
	s.Clock.Set(end)
}

// Active is the number of intervals that have not been cancelled.
func (s *Scheduler) Active() int {
	n := 0
	for _, iv := range s.intervals {
		if iv.active {
			n++
		}
	}
	return n
}

func (s *Scheduler) due(end time.Time) *interval {
	live := s.intervals[:0]
	for _, iv := range s.intervals {
		if iv.active {
			live = append(live, iv)
		}
	}
	s.intervals = live

	var ready []*interval
	for _, iv := range s.intervals {
		if iv.every > 0 && !iv.next.After(end) {
			ready = append(ready, iv)
		}
	}
	if len(ready) == 0 {
		return nil
	}
	sort.Slice(ready, func(i, j int) bool {
		if ready[i].next.Equal(ready[j].next) {
			return ready[i].id < ready[j].id
		}
		return ready[i].next.Before(ready[j].next)
	})
	return ready[0]
}
