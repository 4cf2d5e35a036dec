package gauge

import (
	"math"

	drawille "github.com/exrook/drawille-go"
)

// screen angles: 0° is 3 o'clock and angles grow clockwise because y grows
// downward. The ring starts at 12 o'clock.
const (
	startAngle = 270.0
	fullSweep  = 360.0
)

// arc draws a band thickness dots deep, sweeping clockwise from startAngle.
func arc(canvas *drawille.Canvas, c point, radius, thickness int, sweep float64) {
	if sweep <= 0 {
		return
	}
	sweep = min(sweep, fullSweep)
	for t := range thickness {
		r := radius - t
		if r <= 0 {
			break
		}
		circle(canvas, c, r, startAngle, startAngle+sweep)
	}
}

type point struct{ x, y int }

// circle walks one octant with the midpoint algorithm and mirrors each step
// into the other seven, keeping only points inside [from, to].
// see: https://en.wikipedia.org/wiki/Midpoint_circle_algorithm
func circle(canvas *drawille.Canvas, c point, radius int, from, to float64) {
	x, y := radius, 0
	d := 1 - radius

	for x >= y {
		for _, p := range [8]point{
			{c.x + x, c.y - y},
			{c.x + y, c.y - x},
			{c.x - y, c.y - x},
			{c.x - x, c.y - y},
			{c.x - x, c.y + y},
			{c.x - y, c.y + x},
			{c.x + y, c.y + x},
			{c.x + x, c.y + y},
		} {
			if within(angleOf(c, p), from, to) {
				canvas.Set(p.x, p.y)
			}
		}

		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

// angleOf is the screen angle of p around c, in [0, 360).
func angleOf(c, p point) float64 {
	a := math.Atan2(float64(p.y-c.y), float64(p.x-c.x)) * 180 / math.Pi
	if a < 0 {
		a += 360
	}
	return a
}

// within reports whether angle lies in [from, to]. to may exceed 360 when
// the range wraps past 3 o'clock.
func within(angle, from, to float64) bool {
	if to > 360 {
		return angle >= from || angle <= to-360
	}
	return angle >= from && angle <= to
}
