package motion_test

import (
	"testing"
	"time"

	"github.com/garrettladley/dealdesk/internal/motion"
	"github.com/garrettladley/dealdesk/internal/motion/motiontest"
)

const tick = 30 * time.Millisecond

func newTypewriter() (*motion.Typewriter, *motiontest.Scheduler, *int) {
	sched := motiontest.NewScheduler(nil)
	done := new(int)
	tw := motion.NewTypewriter(tick, sched, motion.OnDone(func() { *done++ }))
	return tw, sched, done
}

func TestTypewriterRevealsOneRunePerTick(t *testing.T) {
	t.Parallel()

	tw, sched, done := newTypewriter()
	tw.SetText("Hello")

	want := []string{"H", "He", "Hel", "Hell", "Hello"}
	for i, w := range want {
		sched.Advance(tick)
		if got := tw.Text(); got != w {
			t.Fatalf("tick %d: Text() = %q, want %q", i+1, got, w)
		}
	}

	if tw.State() != motion.Done {
		t.Errorf("State() = %s, want done", tw.State())
	}
	if *done != 1 {
		t.Errorf("done callback ran %d times, want 1", *done)
	}
	if sched.Cancels != 1 || sched.Active() != 0 {
		t.Errorf("Cancels = %d Active = %d, want 1 and 0", sched.Cancels, sched.Active())
	}

	sched.Advance(time.Second)
	if tw.Text() != "Hello" || *done != 1 {
		t.Errorf("typewriter changed after completion: %q done=%d", tw.Text(), *done)
	}
}

func TestTypewriterCountsRunes(t *testing.T) {
	t.Parallel()

	tw, sched, _ := newTypewriter()
	tw.SetText("Café ✓")

	sched.Advance(4 * tick)
	if got := tw.Text(); got != "Café" {
		t.Fatalf("Text() after 4 ticks = %q, want %q", got, "Café")
	}
	sched.Advance(2 * tick)
	if !tw.Done() || tw.Revealed() != 6 {
		t.Errorf("Done() = %v Revealed() = %d, want done after 6", tw.Done(), tw.Revealed())
	}
}

func TestTypewriterNewTextRestarts(t *testing.T) {
	t.Parallel()

	tw, sched, done := newTypewriter()
	tw.SetText("first headline")
	sched.Advance(3 * tick)

	tw.SetText("second")
	if tw.Revealed() != 0 || tw.State() != motion.Revealing {
		t.Fatalf("after SetText: Revealed() = %d State() = %s", tw.Revealed(), tw.State())
	}
	if sched.Cancels != 1 || sched.Active() != 1 {
		t.Fatalf("Cancels = %d Active = %d, want 1 and 1", sched.Cancels, sched.Active())
	}

	sched.Advance(6 * tick)
	if tw.Text() != "second" || *done != 1 {
		t.Errorf("Text() = %q done=%d, want %q done=1", tw.Text(), *done, "second")
	}
}

func TestTypewriterSameTextIsNoop(t *testing.T) {
	t.Parallel()

	tw, sched, done := newTypewriter()
	tw.SetText("steady")
	sched.Advance(2 * tick)

	tw.SetText("steady")
	if tw.Revealed() != 2 {
		t.Errorf("Revealed() = %d, want 2", tw.Revealed())
	}
	if sched.Cancels != 0 || sched.Active() != 1 {
		t.Errorf("Cancels = %d Active = %d, want 0 and 1", sched.Cancels, sched.Active())
	}

	sched.Advance(4 * tick)
	tw.SetText("steady")
	if !tw.Done() || *done != 1 {
		t.Errorf("Done() = %v done=%d after repeat on completed text", tw.Done(), *done)
	}
}

func TestTypewriterEmptyString(t *testing.T) {
	t.Parallel()

	tw, sched, done := newTypewriter()
	tw.SetText("")
	if tw.Done() {
		t.Fatal("empty string completed before the first tick")
	}

	sched.Advance(tick)
	if !tw.Done() || tw.Text() != "" || *done != 1 {
		t.Errorf("Done() = %v Text() = %q done=%d", tw.Done(), tw.Text(), *done)
	}
	if sched.Active() != 0 {
		t.Errorf("Active() = %d, want 0", sched.Active())
	}
}

func TestTypewriterClose(t *testing.T) {
	t.Parallel()

	tw, sched, done := newTypewriter()
	tw.SetText("closing")
	sched.Advance(2 * tick)
	tw.Close()

	if sched.Cancels != 1 || sched.Active() != 0 {
		t.Fatalf("Cancels = %d Active = %d, want 1 and 0", sched.Cancels, sched.Active())
	}
	sched.Advance(time.Second)
	tw.SetText("reopened")
	if tw.Text() != "cl" || *done != 0 {
		t.Errorf("Text() = %q done=%d after Close", tw.Text(), *done)
	}
}

func TestTypewriterWithoutScheduler(t *testing.T) {
	t.Parallel()

	var done int
	tw := motion.NewTypewriter(tick, nil, motion.OnDone(func() { done++ }))
	tw.SetText("instant")
	if tw.Text() != "instant" || !tw.Done() || done != 1 {
		t.Errorf("Text() = %q Done() = %v done=%d", tw.Text(), tw.Done(), done)
	}
}
