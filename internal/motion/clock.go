package motion

import "time"

// Clock provides time for animations.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// RealClock reads the system wall clock.
var RealClock Clock = realClock{}
