package components

import (
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestScoreRing_Cells(t *testing.T) {
	empty := NewScoreRing(0, 0)
	filled, total := empty.Cells()
	if total == 0 {
		t.Fatal("ring has no cells")
	}
	if filled != 0 {
		t.Errorf("0%% ring filled %d cells", filled)
	}

	full := NewScoreRing(100, 1)
	if filled, total := full.Cells(); filled != total {
		t.Errorf("100%% ring filled %d of %d cells", filled, total)
	}

	half := NewScoreRing(50, 0.5)
	filled, total = half.Cells()
	if filled == 0 || filled == total {
		t.Errorf("50%% ring filled %d of %d cells", filled, total)
	}
}

func TestScoreRing_ViewShowsPercent(t *testing.T) {
	v := NewScoreRing(70, 0.7).View()
	if !strings.Contains(v, "70%") {
		t.Errorf("ring view missing label:\n%s", v)
	}
	if strings.Count(v, "\n") != 2*4 {
		t.Errorf("expected %d lines", 2*4+1)
	}
}

func TestTimeBar_Filled(t *testing.T) {
	tests := []struct {
		frac  float64
		width int
		want  int
	}{
		{0, 20, 0},
		{1, 20, 20},
		{0.5, 20, 10},
		{1.7, 20, 20},
		{-1, 20, 0},
		{0.5, 0, 1},
	}
	for _, tt := range tests {
		got := TimeBar{Fraction: tt.frac, Width: tt.width}.Filled()
		if got != tt.want {
			t.Errorf("TimeBar{%v, %d}.Filled() = %d, want %d", tt.frac, tt.width, got, tt.want)
		}
	}
}

func TestMenu_Navigation(t *testing.T) {
	var chosen string
	pick := func(id string) func() tea.Cmd {
		return func() tea.Cmd { chosen = id; return nil }
	}
	m := NewMenu([]MenuItem{
		{Label: "A", Action: pick("a")},
		{Label: "B", Action: pick("b")},
		{Label: "C", Action: pick("c")},
	})

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 2 {
		t.Errorf("Selected = %d, want 2 (wraps to the end)", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if chosen != "c" {
		t.Errorf("chosen = %q, want c", chosen)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: 'j', Text: "j"})
	if m.Selected != 0 {
		t.Errorf("Selected = %d, want 0 (wraps to the start)", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnd})
	if m.Selected != 2 {
		t.Errorf("Selected = %d, want 2", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyHome})
	if m.Selected != 0 {
		t.Errorf("Selected = %d, want 0", m.Selected)
	}
}

func TestMenu_EmptyIgnoresKeys(t *testing.T) {
	m := NewMenu(nil)
	m, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil || m.Selected != 0 {
		t.Error("empty menu should ignore keys")
	}
	if m.View(10) != "" {
		t.Errorf("empty menu rendered %q", m.View(10))
	}
}

func TestMenu_ViewScrollsToSelection(t *testing.T) {
	items := make([]MenuItem, 10)
	for i := range items {
		items[i] = MenuItem{Label: fmt.Sprintf("set-%d", i), Detail: "detail"}
	}
	m := NewMenu(items)

	all := m.View(0)
	if !strings.Contains(all, "set-9") || strings.Contains(all, "more") {
		t.Error("unbounded view should list every item without markers")
	}

	m.Selected = 8
	view := m.View(8)
	if !strings.Contains(view, "set-8") {
		t.Error("selected item should be visible")
	}
	if strings.Contains(view, "set-0") {
		t.Error("items far above the cursor should be scrolled away")
	}
	if !strings.Contains(view, "↑") {
		t.Error("expected an upward scroll marker")
	}
	if got := strings.Count(view, "\n"); got > 8 {
		t.Errorf("view uses %d lines, want at most 8", got)
	}
}

func TestAnswerInput_VerdictLocksInput(t *testing.T) {
	a := NewAnswerInput("answer", 0)
	a, _ = a.Update(tea.KeyPressMsg{Code: 'a', Text: "a"})
	if a.Value() != "a" {
		t.Fatalf("Value = %q", a.Value())
	}
	a.Judge(false)
	a, _ = a.Update(tea.KeyPressMsg{Code: 'b', Text: "b"})
	if a.Value() != "a" {
		t.Errorf("input accepted keys after verdict: %q", a.Value())
	}
	if a.Verdict() != VerdictIncorrect || a.Misses() != 1 {
		t.Errorf("verdict = %v, misses = %d", a.Verdict(), a.Misses())
	}
	if !strings.Contains(a.View(), "1 wrong try") {
		t.Errorf("view missing miss count: %q", a.View())
	}

	a.Retry()
	if a.Value() != "" || a.Verdict() != VerdictNone {
		t.Errorf("Retry left value %q verdict %v", a.Value(), a.Verdict())
	}
	a, _ = a.Update(tea.KeyPressMsg{Code: 'c', Text: "c"})
	a.Judge(false)
	a.Retry()
	if a.Misses() != 2 {
		t.Errorf("misses = %d, want 2", a.Misses())
	}

	a.Judge(true)
	if a.Misses() != 2 {
		t.Error("a correct answer should not count as a miss")
	}
	a.Next()
	if a.Misses() != 0 || a.Verdict() != VerdictNone {
		t.Errorf("Next left misses %d verdict %v", a.Misses(), a.Verdict())
	}
}

func TestTable_ContainsCells(t *testing.T) {
	out := Table([]string{"ID", "Title"}, [][]string{{"quick-math", "Quick Math"}})
	for _, want := range []string{"ID", "Title", "quick-math", "Quick Math"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}
