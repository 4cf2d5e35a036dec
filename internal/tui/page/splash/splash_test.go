package splash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garrettladley/dealdesk/internal/motion"
	"github.com/garrettladley/dealdesk/internal/motion/motiontest"
	"github.com/garrettladley/dealdesk/internal/tui/theme"
)

func TestPage_RevealsThenHolds(t *testing.T) {
	t.Parallel()

	sched := motiontest.NewScheduler(nil)
	p := New("Hi!", sched)
	p.Start()

	assert.Empty(t, p.Revealed())
	assert.Nil(t, p.Cmd())

	sched.Advance(2 * motion.DefaultRevealInterval)
	assert.Equal(t, "Hi", p.Revealed())
	assert.False(t, p.Done())
	assert.Nil(t, p.Cmd())

	sched.Advance(motion.DefaultRevealInterval)
	assert.Equal(t, "Hi!", p.Revealed())
	assert.True(t, p.Done())
	require.NotNil(t, p.Cmd(), "hold should be queued once the tagline is done")
	assert.Nil(t, p.Cmd(), "hold is queued once")
}

func TestPage_NoScheduler(t *testing.T) {
	t.Parallel()

	p := New("Your agency, at a glance.", nil)
	p.Start()

	assert.True(t, p.Done())
	assert.Equal(t, "Your agency, at a glance.", p.Revealed())
	assert.NotNil(t, p.Cmd())
}

func TestPage_View(t *testing.T) {
	t.Parallel()

	sched := motiontest.NewScheduler(nil)
	p := New("abc", sched)
	p.Start()
	sched.Advance(motion.DefaultRevealInterval)

	out := p.View(theme.New(), 60, 12)
	assert.Contains(t, out, "a"+cursor)
	assert.Len(t, strings.Split(out, "\n"), 12)
}
