//go:build !release

package footer

import (
	"charm.land/lipgloss/v2"

	"github.com/garrettladley/dealdesk/internal/tui/theme"
	"github.com/garrettladley/dealdesk/internal/version"
)

var devVersionStyle = lipgloss.NewStyle().Foreground(theme.ColorDim)

func (f Footer) leftContent() string {
	hints := f.renderHints()
	if hints == "" {
		return devVersionStyle.Render(version.Get())
	}
	return devVersionStyle.Render(version.Get()) + "  " + hints
}
