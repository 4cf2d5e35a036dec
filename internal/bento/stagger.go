package bento

import (
	"math"
	"time"

	"github.com/garrettladley/dealdesk/internal/motion"
)

const (
	// StaggerStep is the entrance delay added per cell index.
	StaggerStep = 80 * time.Millisecond

	// EntranceDuration is how long one cell's entrance transition runs.
	EntranceDuration = 450 * time.Millisecond

	// entranceRise is how many rows below its slot a cell starts.
	entranceRise = 2

	// entranceScale is the size a cell starts at, relative to its slot.
	entranceScale = 0.92
)

// StaggerDelay is the entrance delay of the cell at index i. It depends on
// document order only, never on the cell's span or grid position.
func StaggerDelay(i int) time.Duration {
	if i < 0 {
		return 0
	}
	return time.Duration(i) * StaggerStep
}

// Transform describes where a cell is in its entrance transition.
type Transform struct {
	Opacity float64 // 0 invisible, 1 fully drawn
	Rise    int     // rows below the resting position
	Scale   float64 // fraction of the slot's size
}

// Rest is the transform of a cell whose entrance has finished.
var Rest = Transform{Opacity: 1, Rise: 0, Scale: 1}

// Entrance is the transform of the cell at index i, elapsed time after the
// layout was first shown.
func Entrance(i int, elapsed time.Duration) Transform {
	p := motion.Progress(elapsed-StaggerDelay(i), EntranceDuration)
	if p >= 1 {
		return Rest
	}
	e := motion.EaseOutCubic(p)
	return Transform{
		Opacity: e,
		Rise:    int(math.Round((1 - e) * entranceRise)),
		Scale:   entranceScale + (1-entranceScale)*e,
	}
}

// Settled reports whether every one of n cells has finished entering.
func Settled(n int, elapsed time.Duration) bool {
	if n <= 0 {
		return true
	}
	return elapsed >= StaggerDelay(n-1)+EntranceDuration
}
