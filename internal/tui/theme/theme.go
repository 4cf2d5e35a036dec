package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

type Theme struct {
	background color.Color
	foreground color.Color
	muted      color.Color
	border     color.Color
	base       lipgloss.Style
}

func New() Theme {
	var t Theme

	t.background = ColorBgDark
	t.foreground = ColorWhite
	t.muted = ColorDim
	t.border = ColorBgLight
	t.base = lipgloss.NewStyle().Foreground(t.foreground)

	return t
}

func (t Theme) Base() lipgloss.Style {
	return t.base
}

func (t Theme) TextAccent() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorBrand).Bold(true)
}

func (t Theme) TextMuted() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.muted)
}

func (t Theme) Background() color.Color {
	return t.background
}

func (t Theme) Foreground() color.Color {
	return t.foreground
}

func (t Theme) Muted() color.Color {
	return t.muted
}

func (t Theme) Border() color.Color {
	return t.border
}
