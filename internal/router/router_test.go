package router

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/mondai-quiz/mondai/internal/quiz"
	"github.com/mondai-quiz/mondai/internal/screen"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title   string
	params  Params
	result  *quiz.Result
	initRan bool
	closed  bool
	updates int
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { s.updates++; return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }
func (s *stubScreen) Close()                                  { s.closed = true }

func stubHandler(title string, made *[]*stubScreen) Handler {
	return func(p Params, msg NavigateMsg) screen.Screen {
		s := &stubScreen{title: title, params: p, result: msg.Result}
		*made = append(*made, s)
		return s
	}
}

func testRouter(made *[]*stubScreen) *Router {
	return New([]Route{
		{Pattern: "/", Handler: stubHandler("select", made)},
		{Pattern: "/select", Handler: stubHandler("select", made)},
		{Pattern: "/quiz/:setId", Handler: stubHandler("quiz", made)},
		{Pattern: "/result", Handler: stubHandler("result", made)},
	}, "")
}

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern, path string
		want          Params
		ok            bool
	}{
		{"/quiz/:setId", "/quiz/set-007", Params{"setId": "set-007"}, true},
		{"/quiz/:setId", "quiz/set-007/", Params{"setId": "set-007"}, true},
		{"/quiz/:setId", "/quiz/hello%20world", Params{"setId": "hello world"}, true},
		{"/quiz/:setId", "/quiz", nil, false},
		{"/quiz/:setId", "/quiz/a/b", nil, false},
		{"/quiz/:setId", "/result/x", nil, false},
		{"/quiz/:setId", "/quiz/%zz", nil, false},
		{"/", "/", Params{}, true},
		{"/", "", Params{}, true},
		{"/result", "/result", Params{}, true},
		{"/result", "/results", nil, false},
		{"/a/:x/:y", "/a/1/2", Params{"x": "1", "y": "2"}, true},
	}
	for _, tt := range tests {
		got, ok := Match(tt.pattern, tt.path)
		if ok != tt.ok {
			t.Errorf("Match(%q, %q) ok = %v, want %v", tt.pattern, tt.path, ok, tt.ok)
			continue
		}
		if !ok {
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("Match(%q, %q) = %v, want %v", tt.pattern, tt.path, got, tt.want)
			continue
		}
		for k, v := range tt.want {
			if got[k] != v {
				t.Errorf("Match(%q, %q)[%q] = %q, want %q", tt.pattern, tt.path, k, got[k], v)
			}
		}
	}
}

func TestNavigateBindsParams(t *testing.T) {
	var made []*stubScreen
	r := testRouter(&made)

	r.Navigate(NavigateMsg{Path: "/quiz/set-007"})

	if r.Active().Title() != "quiz" {
		t.Fatalf("expected quiz screen, got %q", r.Active().Title())
	}
	if made[0].params["setId"] != "set-007" {
		t.Errorf("setId = %q, want set-007", made[0].params["setId"])
	}
	if !made[0].initRan {
		t.Error("expected Init() to run on activated screen")
	}
	if r.Path() != "/quiz/set-007" {
		t.Errorf("Path = %q", r.Path())
	}
}

func TestNavigateUnmatchedRedirectsToDefault(t *testing.T) {
	var made []*stubScreen
	r := testRouter(&made)

	r.Navigate(NavigateMsg{Path: "/nowhere/at/all"})

	if r.Path() != "/" {
		t.Errorf("Path = %q, want /", r.Path())
	}
	if r.Active().Title() != "select" {
		t.Errorf("expected select screen, got %q", r.Active().Title())
	}
}

func TestNavigateFirstMatchWins(t *testing.T) {
	var made []*stubScreen
	r := New([]Route{
		{Pattern: "/quiz/special", Handler: stubHandler("special", &made)},
		{Pattern: "/quiz/:setId", Handler: stubHandler("quiz", &made)},
	}, "/quiz/special")

	r.Navigate(NavigateMsg{Path: "/quiz/special"})
	if r.Active().Title() != "special" {
		t.Errorf("expected declaration order to win, got %q", r.Active().Title())
	}
}

func TestNavigateClosesPreviousScreen(t *testing.T) {
	var made []*stubScreen
	r := testRouter(&made)

	r.Navigate(NavigateMsg{Path: "/quiz/a"})
	r.Navigate(NavigateMsg{Path: "/"})

	if !made[0].closed {
		t.Error("expected replaced screen to be closed")
	}
	if made[1].closed {
		t.Error("active screen should not be closed")
	}
}

func TestNavigateMsgCarriesResult(t *testing.T) {
	var made []*stubScreen
	r := testRouter(&made)

	res := &quiz.Result{SetID: "set-001", FinishedAt: time.Now()}
	r.Update(NavigateMsg{Path: "/result", Result: res})

	if made[0].result != res {
		t.Error("expected result payload to reach the handler")
	}
}

func TestUpdateForwardsToActive(t *testing.T) {
	var made []*stubScreen
	r := testRouter(&made)
	r.Navigate(NavigateMsg{Path: "/"})

	r.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	if made[0].updates != 1 {
		t.Errorf("updates = %d, want 1", made[0].updates)
	}
}

func TestNavigateCommand(t *testing.T) {
	msg := Navigate("/select")()
	nav, ok := msg.(NavigateMsg)
	if !ok || nav.Path != "/select" {
		t.Errorf("Navigate produced %#v", msg)
	}
}

func TestEmptyRouter(t *testing.T) {
	r := New(nil, "")
	if cmd := r.Navigate(NavigateMsg{Path: "/x"}); cmd != nil {
		t.Error("expected nil command from empty router")
	}
	if r.View(80, 24) != "" {
		t.Error("expected empty view")
	}
}
