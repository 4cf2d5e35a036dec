package status

import (
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/google/go-cmp/cmp"

	"github.com/garrettladley/dealdesk/internal/i18n"
	"github.com/garrettladley/dealdesk/internal/store"
)

func TestIndicatorRender(t *testing.T) {
	t.Parallel()

	updated := time.Date(2026, 3, 2, 14, 5, 0, 0, time.Local)

	tests := []struct {
		name   string
		locale string
		ind    Indicator
		want   string
	}{
		{"pending", "en", Indicator{Status: store.Pending}, "● connecting"},
		{"live hides time", "en", Indicator{Status: store.Live, UpdatedAt: updated}, "● live"},
		{"cached shows time", "en", Indicator{Status: store.Cached, UpdatedAt: updated}, "● cached · 14:05"},
		{"offline without data", "en", Indicator{Status: store.Offline}, "● offline"},
		{"french", "fr", Indicator{Status: store.Offline, UpdatedAt: updated}, "● hors ligne · 14:05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ansi.Strip(tt.ind.Render(i18n.MustLoad(tt.locale)))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Render() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
