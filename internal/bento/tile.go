package bento

import (
	"image/color"

	"charm.land/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Fade blends c toward bg by the remaining opacity. A fully opaque transform
// returns c unchanged.
func Fade(c, bg color.Color, opacity float64) color.Color {
	if opacity >= 1 {
		return c
	}
	to, ok := colorful.MakeColor(c)
	if !ok {
		return c
	}
	from, ok := colorful.MakeColor(bg)
	if !ok {
		return c
	}
	return from.BlendLab(to, max(opacity, 0)).Clamped()
}

// Tile draws a bordered panel of exactly w×h characters with a title row
// and body, faded in by fx.
type Tile struct {
	Title      string
	Body       string
	Accent     color.Color
	Border     color.Color
	Foreground color.Color
	Background color.Color
}

func (t Tile) Render(w, h int, fx Transform) string {
	if w < 2 || h < 2 {
		return ""
	}
	var (
		accent = Fade(t.Accent, t.Background, fx.Opacity)
		border = Fade(t.Border, t.Background, fx.Opacity)
		fg     = Fade(t.Foreground, t.Background, fx.Opacity)
	)

	innerW := max(w-4, 0)
	title := lipgloss.NewStyle().
		Foreground(accent).
		Bold(true).
		MaxWidth(innerW).
		Render(t.Title)
	body := lipgloss.NewStyle().
		Foreground(fg).
		MaxWidth(innerW).
		Render(t.Body)

	content := title
	if t.Body != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, title, "", body)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(w).
		Height(h).
		MaxWidth(w).
		MaxHeight(h).
		Render(content)
}
