package footer

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/garrettladley/dealdesk/internal/tui/theme"
)

// Height is the number of lines a rendered footer occupies.
const Height = 2

var (
	hintKeyStyle  = lipgloss.NewStyle().Foreground(theme.ColorWhite).Bold(true)
	hintTextStyle = lipgloss.NewStyle().Foreground(theme.ColorDim)
)

// Hint is one key binding shown in the footer.
type Hint struct {
	Key  string
	Desc string
}

type Footer struct {
	hints        []Hint
	rightContent string
	width        int
	padding      int
}

func New(hints []Hint, rightContent string, width int) Footer {
	return Footer{
		hints:        hints,
		rightContent: rightContent,
		width:        width,
		padding:      2,
	}
}

func (f Footer) Render() string {
	leftContent := f.leftContent()

	leftWidth := lipgloss.Width(leftContent)
	rightWidth := lipgloss.Width(f.rightContent)
	spacerWidth := max(f.width-leftWidth-rightWidth-(f.padding*2), 0)

	return lipgloss.NewStyle().
		PaddingLeft(f.padding).
		PaddingRight(f.padding).
		PaddingBottom(1).
		MaxWidth(max(f.width, 0)).
		Render(leftContent + strings.Repeat(" ", spacerWidth) + f.rightContent)
}

func (f Footer) renderHints() string {
	parts := make([]string, 0, len(f.hints))
	for _, h := range f.hints {
		parts = append(parts, hintKeyStyle.Render(h.Key)+" "+hintTextStyle.Render(h.Desc))
	}
	return strings.Join(parts, hintTextStyle.Render(" • "))
}
