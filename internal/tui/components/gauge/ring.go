// Package gauge draws a braille ring gauge sized to fit a terminal cell.
package gauge

import (
	"image/color"
	"strings"

	drawille "github.com/exrook/drawille-go"

	"charm.land/lipgloss/v2"

	"github.com/garrettladley/dealdesk/internal/motion"
	"github.com/garrettladley/dealdesk/internal/tui/theme"
)

// MinRows is the smallest ring that still has a hollow centre.
const MinRows = 3

const emptyBraille rune = '⠀'

// Ring is a circular progress gauge with text in the middle.
type Ring struct {
	Fraction  float64 // filled share of the ring, 0 to 1
	Text      string
	Color     color.Color
	Track     color.Color
	TextColor color.Color
}

type Option func(*Ring)

func WithTrack(c color.Color) Option {
	return func(r *Ring) {
		r.Track = c
	}
}

func WithTextColor(c color.Color) Option {
	return func(r *Ring) {
		r.TextColor = c
	}
}

func New(fraction float64, text string, c color.Color, opts ...Option) Ring {
	r := Ring{
		Fraction:  fraction,
		Text:      text,
		Color:     c,
		Track:     theme.ColorBgLight,
		TextColor: theme.ColorWhite,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Size is the character footprint of a ring rows lines tall. Braille cells
// hold 2×4 dots, so a round ring is twice as wide as it is tall.
func Size(rows int) (w, h int) {
	return rows * 2, rows
}

// Render draws the ring rows lines tall. Below MinRows only the text is
// returned.
func (r Ring) Render(rows int) string {
	text := lipgloss.NewStyle().
		Foreground(r.TextColor).
		Bold(true).
		Render(r.Text)
	if rows < MinRows {
		return text
	}

	var (
		dots      = rows * 4
		centre    = point{dots / 2, dots / 2}
		radius    = dots/2 - 1
		thickness = max(dots/10, 1)
		canvas    = drawille.NewCanvas()
	)

	arc(&canvas, centre, radius, thickness, fullSweep)
	track := frame(&canvas, dots, dots)

	canvas.Clear()
	arc(&canvas, centre, radius, thickness, motion.Clamp01(r.Fraction)*fullSweep)
	fill := frame(&canvas, dots, dots)

	ring := paint(track, fill, r.Track, r.Color)

	w, _ := Size(rows)
	tw := lipgloss.Width(text)
	return lipgloss.NewCanvas(
		lipgloss.NewLayer(ring),
		lipgloss.NewLayer(text).X(max((w-tw)/2, 0)).Y(rows/2).Z(1),
	).Render()
}

// frame reads the canvas as exactly h/4 lines of w/2 runes.
func frame(canvas *drawille.Canvas, w, h int) string {
	cols, lines := w/2, h/4
	rows := canvas.Rows(0, 0, w, h)

	out := make([]string, lines)
	for i := range out {
		var line []rune
		if i < len(rows) {
			line = []rune(rows[i])
		}
		if len(line) > cols {
			line = line[:cols]
		}
		out[i] = string(line) + strings.Repeat(" ", cols-len(line))
	}
	return strings.Join(out, "\n")
}

// paint colours the track and the filled arc. Where both have dots in the
// same cell the dots are merged and drawn in the fill colour.
func paint(track, fill string, trackColor, fillColor color.Color) string {
	var (
		trackLines = strings.Split(track, "\n")
		fillLines  = strings.Split(fill, "\n")
		trackStyle = lipgloss.NewStyle().Foreground(trackColor)
		fillStyle  = lipgloss.NewStyle().Foreground(fillColor)
		out        = make([]string, len(trackLines))
	)

	for i, line := range trackLines {
		var f []rune
		if i < len(fillLines) {
			f = []rune(fillLines[i])
		}

		var b strings.Builder
		for j, t := range []rune(line) {
			c := ' '
			if j < len(f) {
				c = f[j]
			}
			switch {
			case hasDots(c) && isBraille(t):
				b.WriteString(fillStyle.Render(string(merge(t, c))))
			case hasDots(c):
				b.WriteString(fillStyle.Render(string(c)))
			case isBraille(t):
				b.WriteString(trackStyle.Render(string(t)))
			default:
				b.WriteRune(' ')
			}
		}
		out[i] = b.String()
	}
	return strings.Join(out, "\n")
}

func isBraille(r rune) bool {
	return r >= 0x2800 && r <= 0x28FF
}

func hasDots(r rune) bool {
	return isBraille(r) && r != emptyBraille
}

// merge ORs the dot patterns of two braille runes.
func merge(a, b rune) rune {
	return emptyBraille + ((a - emptyBraille) | (b - emptyBraille))
}
