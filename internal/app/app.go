package app

import (
	"context"
	"fmt"
	"io"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/sirupsen/logrus"

	"github.com/mondai-quiz/mondai/internal/quiz"
	"github.com/mondai-quiz/mondai/internal/results"
	"github.com/mondai-quiz/mondai/internal/router"
	"github.com/mondai-quiz/mondai/internal/screen"
	"github.com/mondai-quiz/mondai/internal/screens/history"
	quizscreen "github.com/mondai-quiz/mondai/internal/screens/quiz"
	"github.com/mondai-quiz/mondai/internal/screens/result"
	"github.com/mondai-quiz/mondai/internal/screens/selectset"
	"github.com/mondai-quiz/mondai/internal/ui/layout"
)

// Catalog lists and loads question sets.
type Catalog interface {
	selectset.Lister
	quiz.Loader
}

// Deps are the services the screens run on.
type Deps struct {
	Catalog   Catalog
	Submitter results.Submitter
	// Recorder keeps local play history. Optional.
	Recorder results.Recorder
	// History lists local play history. Optional; without it the
	// history path falls back to the set selection.
	History  history.Lister
	ClientID string
	Timezone string
	// Clock overrides the engine clock. Optional.
	Clock quiz.Clock
	// Status is shown at the right of the header.
	Status string
	Log    logrus.FieldLogger
}

func (d Deps) logger() logrus.FieldLogger {
	if d.Log != nil {
		return d.Log
	}
	silent := logrus.New()
	silent.SetOutput(io.Discard)
	return silent
}

// Routes binds the navigation paths to their screens.
func Routes(d Deps) []router.Route {
	log := d.logger()

	selectHandler := func(router.Params, router.NavigateMsg) screen.Screen {
		return selectset.New(d.Catalog)
	}

	engineOpts := []quiz.Option{quiz.WithClientID(d.ClientID)}
	if d.Timezone != "" {
		engineOpts = append(engineOpts, quiz.WithTimezone(d.Timezone))
	}
	if d.Clock != nil {
		engineOpts = append(engineOpts, quiz.WithClock(d.Clock))
	}

	resultOpts := []result.Option{result.WithLogger(log)}
	if d.Recorder != nil {
		resultOpts = append(resultOpts, result.WithRecorder(d.Recorder))
	}

	routes := []router.Route{
		{Pattern: "/", Handler: selectHandler},
		{Pattern: "/select", Handler: selectHandler},
		{Pattern: "/quiz/:setId", Handler: func(p router.Params, _ router.NavigateMsg) screen.Screen {
			log.WithField("set_id", p["setId"]).Debug("starting quiz")
			return quizscreen.New(d.Catalog, p["setId"], engineOpts...)
		}},
		{Pattern: quizscreen.ResultPath, Handler: func(_ router.Params, msg router.NavigateMsg) screen.Screen {
			return result.New(msg.Result, d.Submitter, resultOpts...)
		}},
	}
	if d.History != nil {
		routes = append(routes, router.Route{Pattern: selectset.HistoryPath, Handler: func(router.Params, router.NavigateMsg) screen.Screen {
			return history.New(d.History)
		}})
	}
	return routes
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router    *router.Router
	startPath string
	status    string
	width     int
	height    int
}

// NewModel creates the root model. It navigates to startPath on Init; an
// empty or unknown path lands on the set selection.
func NewModel(d Deps, startPath string) AppModel {
	if startPath == "" {
		startPath = router.DefaultPath
	}
	return AppModel{
		router:    router.New(Routes(d), router.DefaultPath),
		startPath: startPath,
		status:    d.Status,
	}
}

// Router exposes the navigation state.
func (m AppModel) Router() *router.Router { return m.router }

func (m AppModel) Init() tea.Cmd {
	return m.router.Navigate(router.NavigateMsg{Path: m.startPath})
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.router.Close()
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the frame for the current window size.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}
	header := layout.RenderHeader(title, m.status, m.width)

	var hints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		hints = append(hints, p.KeyHints()...)
	}
	hints = append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	footer := layout.RenderFooter(hints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program at startPath and blocks until it
// exits or ctx is cancelled.
func Run(ctx context.Context, d Deps, startPath string) error {
	m := NewModel(d, startPath)
	p := tea.NewProgram(m, tea.WithContext(ctx))
	_, err := p.Run()
	m.router.Close()
	if err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
