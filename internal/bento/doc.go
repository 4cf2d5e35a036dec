// Package bento lays widgets out on a responsive grid and choreographs their
// entrance.
//
// A layout pass has three steps. The terminal width selects a Breakpoint.
// Each Cell's declared span is resolved against that breakpoint, and Place
// auto-places the cells in document order, assigning each one a staggered
// entrance delay by index. Grid.Render turns placements into character
// rectangles and composes the visible ones onto a lipgloss canvas.
//
// Nothing in this package returns an error. Unsupported spans fall back to a
// single track.
package bento
