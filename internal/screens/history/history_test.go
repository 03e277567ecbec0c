package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/mondai-quiz/mondai/internal/results"
	"github.com/mondai-quiz/mondai/internal/router"
)

type stubLister struct {
	plays []results.Play
	err   error
	limit int
}

func (l *stubLister) RecentPlays(_ context.Context, limit int) ([]results.Play, error) {
	l.limit = limit
	return l.plays, l.err
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func loaded(t *testing.T, l *stubLister) *HistoryScreen {
	t.Helper()
	s := New(l)
	s.Update(s.Init()())
	return s
}

func samplePlays() []results.Play {
	finished := time.Date(2026, 3, 4, 10, 0, 0, 0, time.Local)
	return []results.Play{
		{SetID: "capitals", SetVersion: 1, Correct: 6, Total: 6, ElapsedMs: 12400, ResultID: "r-9", StartedAt: finished.Add(-12400 * time.Millisecond), FinishedAt: finished},
		{SetID: "elements", SetVersion: 2, Correct: 5, Total: 5, ElapsedMs: 800, StartedAt: finished.Add(-time.Hour), FinishedAt: finished.Add(-time.Hour)},
	}
}

func TestHistoryScreen_Loading(t *testing.T) {
	s := New(&stubLister{})
	if !strings.Contains(s.View(100, 30), "Loading history...") {
		t.Error("expected loading message")
	}
}

func TestHistoryScreen_Empty(t *testing.T) {
	l := &stubLister{}
	s := loaded(t, l)
	if l.limit != pageSize {
		t.Errorf("limit = %d, want %d", l.limit, pageSize)
	}
	if !strings.Contains(s.View(100, 30), "No quizzes played yet") {
		t.Error("expected empty-state message")
	}
	if len(s.KeyHints()) != 1 {
		t.Errorf("hints = %v, want only Back", s.KeyHints())
	}
}

func TestHistoryScreen_Error(t *testing.T) {
	s := loaded(t, &stubLister{err: errors.New("disk gone")})
	if !strings.Contains(s.View(100, 30), "Error: disk gone") {
		t.Error("expected error message")
	}
}

func TestHistoryScreen_ListsAndExpands(t *testing.T) {
	s := loaded(t, &stubLister{plays: samplePlays()})

	view := s.View(120, 30)
	for _, want := range []string{"capitals v1", "6/6 correct", "12.4s", "elements v2", "800ms"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "r-9") {
		t.Error("details should be collapsed initially")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !strings.Contains(s.View(120, 30), "r-9") {
		t.Error("enter should expand the selected play")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !strings.Contains(s.View(120, 30), "not submitted") {
		t.Error("expected unsubmitted play details")
	}
}

func TestHistoryScreen_Navigation(t *testing.T) {
	s := loaded(t, &stubLister{plays: samplePlays()})

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := s.Update(keyPress('p'))
	if cmd == nil {
		t.Fatal("expected navigation command")
	}
	if nav := cmd().(router.NavigateMsg); nav.Path != "/quiz/elements" {
		t.Errorf("Path = %q, want /quiz/elements", nav.Path)
	}

	_, cmd = s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected back command")
	}
	if nav := cmd().(router.NavigateMsg); nav.Path != "/select" {
		t.Errorf("Path = %q, want /select", nav.Path)
	}
}
