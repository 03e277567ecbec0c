package result

import (
	"context"
	"io"

	tea "charm.land/bubbletea/v2"
	"github.com/sirupsen/logrus"

	"github.com/mondai-quiz/mondai/internal/api"
	"github.com/mondai-quiz/mondai/internal/quiz"
	"github.com/mondai-quiz/mondai/internal/results"
	"github.com/mondai-quiz/mondai/internal/router"
	"github.com/mondai-quiz/mondai/internal/screen"
	"github.com/mondai-quiz/mondai/internal/screens/selectset"
	"github.com/mondai-quiz/mondai/internal/ui/layout"
)

// submitDoneMsg reports the outcome of one submission round.
type submitDoneMsg struct {
	attempt int
	resp    *api.SubmitResponse
	err     error
}

const (
	actionBack = iota
	actionRetrySet
)

var actionLabels = []string{"🏠 Back to sets", "🔄 Try again"}

// playRecordedMsg reports a history write.
type playRecordedMsg struct {
	err error
}

// ResultScreen scores a finished session and submits it.
type ResultScreen struct {
	report    *results.Report
	submitter results.Submitter
	recorder  results.Recorder
	log       logrus.FieldLogger

	// closed is set once the router replaces the screen.
	closed bool

	action    int
	rowOffset int
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)
var _ screen.Closer = (*ResultScreen)(nil)

// Option configures a ResultScreen.
type Option func(*ResultScreen)

// WithRecorder keeps a local history entry for the run.
func WithRecorder(r results.Recorder) Option {
	return func(s *ResultScreen) { s.recorder = r }
}

// WithLogger sets the logger for background failures.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *ResultScreen) { s.log = l }
}

// New creates a result screen. A nil result shows the empty state.
func New(res *quiz.Result, submitter results.Submitter, opts ...Option) *ResultScreen {
	silent := logrus.New()
	silent.SetOutput(io.Discard)
	s := &ResultScreen{
		submitter: submitter,
		log:       silent,
		action:    actionRetrySet,
	}
	for _, opt := range opts {
		opt(s)
	}
	if res != nil {
		s.report = results.NewReport(res)
	}
	return s
}

// Report exposes the submission state.
func (s *ResultScreen) Report() *results.Report { return s.report }

func (s *ResultScreen) Init() tea.Cmd {
	if s.report == nil {
		return nil
	}
	return tea.Batch(s.send(), s.record())
}

// Close detaches the screen. An in-flight submission still runs to
// completion; its reply is dropped.
func (s *ResultScreen) Close() {
	s.closed = true
}

func (s *ResultScreen) Title() string {
	return "Results"
}

func (s *ResultScreen) KeyHints() []layout.KeyHint {
	if s.report == nil {
		return []layout.KeyHint{{Key: "Enter", Description: "Back to sets"}}
	}
	hints := []layout.KeyHint{
		{Key: "←→", Description: "Choose"},
		{Key: "Enter", Description: "Go"},
		{Key: "↑↓", Description: "Scroll"},
	}
	if s.report.CanRetry() {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Retry send"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

// record writes the history entry. Recording again after a successful
// submission attaches the result id.
func (s *ResultScreen) record() tea.Cmd {
	if s.recorder == nil {
		return nil
	}
	rec, play := s.recorder, s.report.Play()
	return func() tea.Msg {
		return playRecordedMsg{err: rec.RecordPlay(context.Background(), play)}
	}
}

// send starts a submission round off the event loop. The report is only
// touched here and in Update.
func (s *ResultScreen) send() tea.Cmd {
	s.report.Begin()
	sub, payload, attempt := s.submitter, s.report.Payload(), s.report.Attempts()
	return func() tea.Msg {
		resp, err := sub.SubmitWithRetry(context.Background(), payload)
		return submitDoneMsg{attempt: attempt, resp: resp, err: err}
	}
}

func (s *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case submitDoneMsg:
		if s.report == nil || s.closed || msg.attempt != s.report.Attempts() {
			return s, nil
		}
		s.report.Complete(msg.resp, msg.err)
		if msg.err != nil {
			s.log.WithError(msg.err).WithFields(logrus.Fields{
				"set_id":  s.report.Result().SetID,
				"attempt": msg.attempt,
			}).Warn("result not sent")
			return s, nil
		}
		if s.report.ResultID() != "" {
			return s, s.record()
		}
		return s, nil

	case playRecordedMsg:
		if msg.err != nil {
			s.log.WithError(msg.err).Warn("record play history")
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *ResultScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.report == nil {
		if msg.String() == "enter" || msg.String() == "esc" {
			return s, router.Navigate(router.DefaultPath)
		}
		return s, nil
	}

	switch msg.String() {
	case "esc":
		return s, router.Navigate(router.DefaultPath)
	case "left", "h":
		s.action = actionBack
	case "right", "l", "tab":
		s.action = actionRetrySet
	case "up", "k":
		s.rowOffset = max(s.rowOffset-1, 0)
	case "down", "j":
		s.rowOffset = min(s.rowOffset+1, max(len(s.report.Result().Answers)-1, 0))
	case "r", "R":
		if s.report.CanRetry() {
			return s, s.send()
		}
	case "enter":
		if s.action == actionBack {
			return s, router.Navigate(router.DefaultPath)
		}
		return s, router.Navigate(selectset.QuizPath(s.report.Result().SetID))
	}
	return s, nil
}
