package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mondai-quiz/mondai/internal/ui/theme"
)

// MenuItem is one entry of a Menu: a label, an optional dim detail line
// and the command to run when chosen.
type MenuItem struct {
	Label  string
	Detail string
	Action func() tea.Cmd
}

func (it MenuItem) lines() int {
	if it.Detail == "" {
		return 1
	}
	return 2
}

// Menu is a vertical list with a cursor. Navigation wraps around and
// long lists scroll to keep the cursor visible.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a menu with the first item selected.
func NewMenu(items []MenuItem) Menu {
	return Menu{Items: items}
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	n := len(m.Items)
	switch key.String() {
	case "up", "k":
		m.Selected = (m.Selected - 1 + n) % n
	case "down", "j":
		m.Selected = (m.Selected + 1) % n
	case "home", "g":
		m.Selected = 0
	case "end", "G":
		m.Selected = n - 1
	case "enter":
		if act := m.Items[m.Selected].Action; act != nil {
			return m, act()
		}
	}
	return m, nil
}

// View renders as many items as fit in height lines, scrolled so the
// selected one is visible. A height of 0 or less renders every item.
func (m Menu) View(height int) string {
	first, last := m.window(height)

	var b strings.Builder
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	if first > 0 {
		b.WriteString(dim.Render(fmt.Sprintf("    ↑ %d more", first)))
		b.WriteString("\n")
	}
	for i := first; i < last; i++ {
		item := m.Items[i]
		if i == m.Selected {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  ▸ " + item.Label))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render("    " + item.Label))
		}
		b.WriteString("\n")
		if item.Detail != "" {
			b.WriteString(dim.Render("      " + item.Detail))
			b.WriteString("\n")
		}
	}
	if rest := len(m.Items) - last; rest > 0 {
		b.WriteString(dim.Render(fmt.Sprintf("    ↓ %d more", rest)))
		b.WriteString("\n")
	}
	return b.String()
}

// window returns the half-open range of items to draw. Two lines are
// kept for the scroll markers whenever the list does not fit.
func (m Menu) window(height int) (first, last int) {
	total := 0
	for _, it := range m.Items {
		total += it.lines()
	}
	if height <= 0 || total <= height {
		return 0, len(m.Items)
	}

	budget := max(height-2, m.Items[m.Selected].lines())
	first, last = m.Selected, m.Selected+1
	used := m.Items[m.Selected].lines()
	for {
		grew := false
		if last < len(m.Items) && used+m.Items[last].lines() <= budget {
			used += m.Items[last].lines()
			last++
			grew = true
		}
		if first > 0 && used+m.Items[first-1].lines() <= budget {
			first--
			used += m.Items[first].lines()
			grew = true
		}
		if !grew {
			return first, last
		}
	}
}
