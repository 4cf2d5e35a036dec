package splash

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/garrettladley/dealdesk/internal/motion"
	"github.com/garrettladley/dealdesk/internal/tui/theme"
)

// Hold is how long the finished splash stays up before the dashboard.
const Hold = 900 * time.Millisecond

const cursor = "▌"

const Logo = `
█▀▄ █▀▀ ▄▀█ █   █▀▄ █▀▀ █▀ █▄▀
█▄▀ ██▄ █▀█ █▄▄ █▄▀ ██▄ ▄█ █ █`

// DoneMsg is sent once the tagline is revealed and the hold has passed.
type DoneMsg struct{}

// Page is the logo screen with a typewriter tagline.
type Page struct {
	tagline string
	writer  *motion.Typewriter
	pending tea.Cmd
}

// New returns a splash for tagline. A nil scheduler shows the tagline at
// once and only waits for the hold.
func New(tagline string, sched motion.IntervalScheduler) *Page {
	p := &Page{tagline: tagline}
	p.writer = motion.NewTypewriter(motion.DefaultRevealInterval, sched, motion.OnDone(func() {
		p.pending = tea.Tick(Hold, func(time.Time) tea.Msg {
			return DoneMsg{}
		})
	}))
	return p
}

// Start begins revealing the tagline.
func (p *Page) Start() {
	p.writer.SetText(p.tagline)
}

// Cmd drains the command queued when the tagline finished.
func (p *Page) Cmd() tea.Cmd {
	cmd := p.pending
	p.pending = nil
	return cmd
}

func (p *Page) Revealed() string {
	return p.writer.Text()
}

func (p *Page) Done() bool {
	return p.writer.Done()
}

func (p *Page) Close() {
	p.writer.Close()
}

func (p *Page) View(t theme.Theme, width, height int) string {
	line := p.writer.Text()
	if !p.writer.Done() {
		line += cursor
	}

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		t.TextAccent().Render(Logo),
		"",
		t.Base().Render(line),
	)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}
