package status

import (
	"image/color"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/garrettladley/dealdesk/internal/i18n"
	"github.com/garrettladley/dealdesk/internal/store"
	"github.com/garrettladley/dealdesk/internal/tui/theme"
)

const statusDot = "●"

// Indicator shows where the dashboard's data currently comes from.
type Indicator struct {
	Status    store.Status
	UpdatedAt time.Time
}

func (i Indicator) Render(cat *i18n.Catalog) string {
	label := statusDot + " " + cat.T("status."+i.Status.String())

	// stale data says how old it is
	if (i.Status == store.Cached || i.Status == store.Offline) && !i.UpdatedAt.IsZero() {
		label += " · " + i.UpdatedAt.Local().Format("15:04")
	}

	return lipgloss.NewStyle().
		Foreground(i.color()).
		Render(label)
}

func (i Indicator) color() color.Color {
	switch i.Status {
	case store.Live:
		return theme.ColorPositive
	case store.Cached:
		return theme.ColorWarning
	case store.Offline:
		return theme.ColorNegative
	default:
		return theme.ColorBgLight
	}
}
