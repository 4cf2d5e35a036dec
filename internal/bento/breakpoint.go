package bento

import "fmt"

type Breakpoint int

const (
	Narrow Breakpoint = iota
	Medium
	Wide
)

func (b Breakpoint) String() string {
	switch b {
	case Narrow:
		return "narrow"
	case Medium:
		return "medium"
	case Wide:
		return "wide"
	default:
		return fmt.Sprintf("Breakpoint(%d)", int(b))
	}
}

// Tracks is the number of grid columns at the breakpoint.
func (b Breakpoint) Tracks() int {
	switch b {
	case Wide:
		return 6
	case Medium:
		return 2
	default:
		return 1
	}
}

// Breakpoints holds the minimum terminal widths, in columns, of the medium
// and wide layouts.
type Breakpoints struct {
	Medium int
	Wide   int
}

var DefaultBreakpoints = Breakpoints{Medium: 72, Wide: 132}

func (b Breakpoints) For(width int) Breakpoint {
	switch {
	case width >= b.Wide:
		return Wide
	case width >= b.Medium:
		return Medium
	default:
		return Narrow
	}
}

// ResolveSpan maps a declared span to the tracks a cell occupies at bp.
//
// Narrow collapses every cell to one track. Medium caps the column span at
// two and ignores row spans. Wide honours column spans of 1, 2, 3, 4 or 6
// and row spans of 1 or 2; anything else falls back to 1.
func ResolveSpan(bp Breakpoint, colSpan, rowSpan int) (cols, rows int) {
	switch bp {
	case Wide:
		cols, rows = 1, 1
		switch colSpan {
		case 1, 2, 3, 4, 6:
			cols = colSpan
		}
		switch rowSpan {
		case 1, 2:
			rows = rowSpan
		}
		return cols, rows
	case Medium:
		if colSpan >= 2 {
			return 2, 1
		}
		return 1, 1
	default:
		return 1, 1
	}
}
