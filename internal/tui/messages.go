package tui

import (
	"time"

	"github.com/garrettladley/dealdesk/internal/layout"
	"github.com/garrettladley/dealdesk/internal/store"
)

// flashDuration is how long a pressed quick action stays highlighted.
const flashDuration = 600 * time.Millisecond

type StoreChangedMsg struct {
	State store.State
}

type LayoutChangedMsg struct {
	Update layout.Update
}

type UpdateAvailableMsg struct {
	Version string
}

type flashDoneMsg struct {
	key string
}
