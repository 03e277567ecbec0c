package quiz

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	qz "github.com/mondai-quiz/mondai/internal/quiz"
	"github.com/mondai-quiz/mondai/internal/router"
	"github.com/mondai-quiz/mondai/internal/screen"
	"github.com/mondai-quiz/mondai/internal/ui/components"
	"github.com/mondai-quiz/mondai/internal/ui/layout"
)

const (
	tickInterval = 100 * time.Millisecond

	correctPause   = 600 * time.Millisecond
	incorrectPause = 400 * time.Millisecond
)

// ResultPath is where a finished session is handed off.
const ResultPath = "/result"

// QuizScreen runs one quiz session over a question set.
type QuizScreen struct {
	setID  string
	engine *qz.Engine
	input  components.AnswerInput

	ctx    context.Context
	cancel context.CancelFunc

	errMsg      string
	gen         int // display tick generation
	feedbackSeq int
	confirmQuit bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.Closer = (*QuizScreen)(nil)

// New creates a quiz screen for setID. Engine options carry the client
// id, timezone and clock.
func New(loader qz.Loader, setID string, opts ...qz.Option) *QuizScreen {
	ctx, cancel := context.WithCancel(context.Background())
	return &QuizScreen{
		setID:  setID,
		engine: qz.NewEngine(loader, opts...),
		input:  newAnswerInput(),
		ctx:    ctx,
		cancel: cancel,
	}
}

func newAnswerInput() components.AnswerInput {
	return components.NewAnswerInput("Type your answer...", 200)
}

// Engine exposes the session state.
func (s *QuizScreen) Engine() *qz.Engine { return s.engine }

func (s *QuizScreen) Init() tea.Cmd {
	return tea.Batch(s.loadSet(), s.input.Focus())
}

// Close stops the display tick and abandons an in-flight load.
func (s *QuizScreen) Close() {
	s.gen++
	s.cancel()
}

func (s *QuizScreen) Title() string {
	if set := s.engine.Set(); set != nil && set.Title != "" {
		return set.Title
	}
	return "Quiz"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Back to sets"}}
	case s.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave quiz"},
			{Key: "N", Description: "Keep going"},
		}
	case s.engine.Phase() == qz.PhaseFeedback:
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	case s.engine.Phase() == qz.PhasePresenting:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return nil
}

func (s *QuizScreen) loadSet() tea.Cmd {
	ctx, loader, id := s.ctx, s.engine.Loader(), s.setID
	return func() tea.Msg {
		set, err := loader.LoadSet(ctx, id)
		return setLoadedMsg{Set: set, Err: err}
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case setLoadedMsg:
		return s.handleLoaded(msg)

	case timerTickMsg:
		if msg.gen != s.gen || !s.engine.TimerRunning() {
			return s, nil
		}
		return s, tickCmd(s.gen)

	case feedbackDoneMsg:
		if msg.seq != s.feedbackSeq || s.engine.Phase() != qz.PhaseFeedback {
			return s, nil
		}
		return s.advance()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.engine.Phase() == qz.PhasePresenting && !s.confirmQuit {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *QuizScreen) handleLoaded(msg setLoadedMsg) (screen.Screen, tea.Cmd) {
	if errors.Is(s.ctx.Err(), context.Canceled) {
		return s, nil
	}
	err := msg.Err
	if err == nil {
		err = s.engine.Use(s.setID, msg.Set)
	} else {
		var le *qz.SetLoadError
		if !errors.As(err, &le) {
			err = &qz.SetLoadError{SetID: s.setID, Err: err}
		}
	}
	if err == nil {
		err = s.engine.Start()
	}
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	return s, s.restartTick()
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, router.Navigate(router.DefaultPath)
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.confirmQuit = false
			return s, router.Navigate(router.DefaultPath)
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	switch s.engine.Phase() {
	case qz.PhaseFeedback:
		retrying := !s.engine.LastCorrect()
		next, cmd := s.advance()
		// A character typed during the retry pause starts the next attempt.
		if kp, ok := msg.(tea.KeyPressMsg); ok && retrying && kp.Text != "" &&
			s.engine.Phase() == qz.PhasePresenting {
			var inputCmd tea.Cmd
			s.input, inputCmd = s.input.Update(msg)
			return next, tea.Batch(cmd, inputCmd)
		}
		return next, cmd

	case qz.PhasePresenting:
		switch key {
		case "esc":
			s.confirmQuit = true
			return s, nil
		case "enter":
			return s.submit()
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *QuizScreen) submit() (screen.Screen, tea.Cmd) {
	outcome, err := s.engine.Submit(s.input.Value())
	if err != nil {
		// Blank input is ignored; the phase checks cannot fail here.
		return s, nil
	}

	s.input.Judge(outcome.Correct)
	s.feedbackSeq++
	seq := s.feedbackSeq

	pause := incorrectPause
	if outcome.Correct {
		// The timer stopped; end the display loop.
		s.gen++
		pause = correctPause
	}
	return s, tea.Tick(pause, func(time.Time) tea.Msg {
		return feedbackDoneMsg{seq: seq}
	})
}

// advance leaves the verdict: retry the same question, present the next
// one, or hand the finished result to the result screen.
func (s *QuizScreen) advance() (screen.Screen, tea.Cmd) {
	wasCorrect := s.engine.LastCorrect()
	s.feedbackSeq++

	result, err := s.engine.Continue()
	if err != nil {
		return s, nil
	}
	if result != nil {
		s.gen++
		return s, router.NavigateWithResult(ResultPath, result)
	}

	if wasCorrect {
		s.input.Next()
		return s, s.restartTick()
	}
	s.input.Retry()
	return s, nil
}

func (s *QuizScreen) restartTick() tea.Cmd {
	s.gen++
	return tickCmd(s.gen)
}

// tickCmd returns a display tick for generation gen.
func tickCmd(gen int) tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return timerTickMsg{gen: gen}
	})
}
