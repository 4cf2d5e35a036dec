// Package motion provides the timing primitives behind dashboard animations.
//
// The package has three state machines:
//
//   - [Counter]: counts a number up to a target with a cubic ease-out, one
//     frame at a time, once its [Gate] has opened.
//   - [Typewriter]: reveals a string one rune per interval tick and reports
//     completion exactly once.
//   - [Gate]: a one-shot latch that opens the first time its region is seen.
//
// None of these types own a goroutine or a timer. Time enters through a
// [Clock], and callbacks are scheduled through the [FrameScheduler] and
// [IntervalScheduler] ports. The TUI drives those ports from its update loop,
// and tests drive them with the fakes in package motiontest.
//
// All methods must be called from a single goroutine.
package motion
