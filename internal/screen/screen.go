package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/mondai-quiz/mondai/internal/ui/layout"
)

// Screen is one routed page of the application.
type Screen interface {
	// Init starts any loading the page needs.
	Init() tea.Cmd

	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the body between the header and footer bars.
	View(width, height int) string

	// Title is shown centered in the header.
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Closer is implemented by screens that own timers or in-flight work.
// The router calls Close when the screen is replaced.
type Closer interface {
	Close()
}
