package motion

import (
	"math"
	"time"
)

// Curve maps linear progress in [0, 1] to eased progress in [0, 1].
type Curve func(t float64) float64

// Linear returns progress unchanged.
func Linear(t float64) float64 {
	return Clamp01(t)
}

// EaseOutCubic starts fast and decelerates: 1 - (1-t)^3.
func EaseOutCubic(t float64) float64 {
	inv := 1 - Clamp01(t)
	return 1 - inv*inv*inv
}

// Clamp01 restricts v to [0, 1].
func Clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// Progress is elapsed/duration clamped to [0, 1]. A non-positive duration
// is already complete.
func Progress(elapsed, duration time.Duration) float64 {
	if duration <= 0 {
		return 1
	}
	return Clamp01(float64(elapsed) / float64(duration))
}
