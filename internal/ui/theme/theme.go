package theme

import (
	"charm.land/lipgloss/v2"
)

// Palette runs from indigo to violet, the same stops as the score ring.
var (
	Primary = lipgloss.Color("#6366F1") // indigo
	Accent  = lipgloss.Color("#F59E0B") // amber, running timers
	Success = lipgloss.Color("#22C55E")
	Error   = lipgloss.Color("#EF4444")
	Text    = lipgloss.Color("#F1F5F9")
	TextDim = lipgloss.Color("#94A3B8")
	Border  = lipgloss.Color("#334155")
)

// Frame chrome drawn by the app around every screen.
var (
	Bar = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border)

	Brand = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	KeyName = lipgloss.NewStyle().
		Foreground(Text).
		Bold(true)

	KeyDesc = lipgloss.NewStyle().
		Foreground(TextDim)
)

// Headings.
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)
)

// Card frames the current question.
var Card = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Border).
	Padding(0, 2)

// Answer verdicts and the submission state.
var (
	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Pending = lipgloss.NewStyle().
		Foreground(Accent)
)

// Progress and comparison bars.
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Primary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)

	// BarYou is the player's time, BarAvg the population average.
	BarYou = lipgloss.NewStyle().
		Foreground(Primary)

	BarAvg = lipgloss.NewStyle().
		Foreground(TextDim)
)

// Result screen actions.
var (
	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Foreground(TextDim).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)
)
