package quiz

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Phase is the engine's position in the quiz state machine.
type Phase int

const (
	PhaseLoading    Phase = iota // No set loaded yet
	PhasePresenting              // A question is on screen, timer running
	PhaseFeedback                // Showing the verdict for the last submission
	PhaseFinished                // All questions answered; result available
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhasePresenting:
		return "presenting"
	case PhaseFeedback:
		return "feedback"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Outcome describes the effect of a single submission.
type Outcome struct {
	Correct bool
	// Answer is the recorded answer (nil when incorrect).
	Answer *Answer
	// Last is true when the correct answer completed the final question.
	Last bool
}

// Engine runs one quiz session over a loaded question set. It is owned by
// a single screen and is not safe for concurrent use.
type Engine struct {
	loader   Loader
	clock    Clock
	clientID string
	timezone string

	set           *QuestionSet
	phase         Phase
	index         int
	answers       []Answer
	startedAt     time.Time
	questionStart time.Time
	timerRunning  bool
	lastCorrect   bool
	stoppedAt     time.Time
	result        *Result
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the engine clock.
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithClientID sets the client identifier stamped on results.
func WithClientID(id string) Option {
	return func(e *Engine) { e.clientID = id }
}

// WithTimezone sets the timezone name reported in result metadata.
func WithTimezone(tz string) Option {
	return func(e *Engine) { e.timezone = tz }
}

// NewEngine creates an Engine that loads sets through loader.
func NewEngine(loader Loader, opts ...Option) *Engine {
	e := &Engine{
		loader:   loader,
		clock:    SystemClock(),
		timezone: LocalTimezone(),
		phase:    PhaseLoading,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load fetches the question set. Failures are reported as *SetLoadError and
// leave the engine in PhaseLoading.
func (e *Engine) Load(ctx context.Context, setID string) error {
	set, err := e.loader.LoadSet(ctx, setID)
	if err != nil {
		var loadErr *SetLoadError
		if errors.As(err, &loadErr) {
			return err
		}
		return &SetLoadError{SetID: setID, Err: err}
	}
	return e.Use(setID, set)
}

// Use installs a set fetched elsewhere, for callers that load off the
// goroutine owning the engine. It applies the same checks as Load.
func (e *Engine) Use(setID string, set *QuestionSet) error {
	if set == nil || len(set.Questions) == 0 {
		return &SetLoadError{SetID: setID, Err: ErrMalformedSet}
	}
	e.set = set
	return nil
}

// Loader returns the loader the engine was created with.
func (e *Engine) Loader() Loader { return e.loader }

// Start begins a fresh session: index 0, no answers, session start recorded,
// and the first question presented.
func (e *Engine) Start() error {
	if e.set == nil {
		return ErrNotLoaded
	}
	e.index = 0
	e.answers = make([]Answer, 0, len(e.set.Questions))
	e.result = nil
	e.lastCorrect = false
	e.startedAt = e.clock.Now()
	e.present()
	return nil
}

// Present shows the current question and starts its timer from zero.
// Start and Continue present implicitly.
func (e *Engine) Present() (*Question, error) {
	if e.set == nil {
		return nil, ErrNotLoaded
	}
	if e.phase == PhaseFinished {
		return nil, ErrWrongPhase
	}
	e.present()
	return e.Current(), nil
}

func (e *Engine) present() {
	e.phase = PhasePresenting
	e.questionStart = e.clock.Now()
	e.timerRunning = true
}

// Submit judges text against the current question.
func (e *Engine) Submit(text string) (Outcome, error) {
	if e.set == nil {
		return Outcome{}, ErrNotLoaded
	}
	if e.phase != PhasePresenting {
		return Outcome{}, ErrWrongPhase
	}
	entered := strings.TrimSpace(text)
	if entered == "" {
		return Outcome{}, ErrBlankAnswer
	}

	q := e.set.Questions[e.index]
	if !Matches(entered, q.Answer) {
		// The timer keeps running across wrong attempts.
		e.lastCorrect = false
		e.phase = PhaseFeedback
		return Outcome{}, nil
	}

	now := e.clock.Now()
	e.timerRunning = false
	e.stoppedAt = now

	ans := Answer{
		QuestionID: q.ID,
		Entered:    entered,
		IsCorrect:  true,
		ElapsedMs:  ClampElapsed(now.Sub(e.questionStart)),
	}
	e.answers = append(e.answers, ans)
	e.lastCorrect = true
	e.phase = PhaseFeedback

	return Outcome{
		Correct: true,
		Answer:  &ans,
		Last:    e.index == len(e.set.Questions)-1,
	}, nil
}

// Continue leaves the feedback phase. After a wrong answer the same question
// resumes with its original start time; after a right answer the next
// question is presented, or the session finishes and the result is returned.
func (e *Engine) Continue() (*Result, error) {
	if e.set == nil {
		return nil, ErrNotLoaded
	}
	if e.phase != PhaseFeedback {
		return nil, ErrWrongPhase
	}

	if !e.lastCorrect {
		e.phase = PhasePresenting
		return nil, nil
	}

	e.index++
	if e.index < len(e.set.Questions) {
		e.present()
		return nil, nil
	}

	e.phase = PhaseFinished
	e.result = e.buildResult()
	return e.result, nil
}

func (e *Engine) buildResult() *Result {
	answers := make([]Answer, len(e.answers))
	copy(answers, e.answers)
	return &Result{
		ClientID:   e.clientID,
		SetID:      e.set.ID,
		SetVersion: e.set.Version,
		StartedAt:  e.startedAt,
		FinishedAt: e.clock.Now(),
		Answers:    answers,
		Meta:       Meta{Timezone: e.timezone},
	}
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase { return e.phase }

// Set returns the loaded question set, or nil.
func (e *Engine) Set() *QuestionSet { return e.set }

// Current returns the question being presented, or nil when none is.
func (e *Engine) Current() *Question {
	if e.set == nil || e.phase == PhaseFinished || e.index >= len(e.set.Questions) {
		return nil
	}
	return &e.set.Questions[e.index]
}

// Index returns the zero-based index of the current question.
func (e *Engine) Index() int { return e.index }

// Total returns the number of questions in the loaded set.
func (e *Engine) Total() int {
	if e.set == nil {
		return 0
	}
	return len(e.set.Questions)
}

// Answers returns the answers recorded so far.
func (e *Engine) Answers() []Answer { return e.answers }

// LastCorrect reports the verdict of the most recent submission.
func (e *Engine) LastCorrect() bool { return e.lastCorrect }

// TimerRunning reports whether the per-question timer is running.
func (e *Engine) TimerRunning() bool { return e.timerRunning }

// Result returns the completed result once finished.
func (e *Engine) Result() *Result { return e.result }

// Elapsed returns the time spent on the current question, for display.
// Once a correct answer stops the timer the value freezes.
func (e *Engine) Elapsed() time.Duration {
	if e.questionStart.IsZero() {
		return 0
	}
	if !e.timerRunning {
		return e.stoppedAt.Sub(e.questionStart)
	}
	return e.clock.Now().Sub(e.questionStart)
}

// ClampElapsed converts d to whole milliseconds within
// [MinElapsedMs, MaxElapsedMs].
func ClampElapsed(d time.Duration) int64 {
	ms := d.Round(time.Millisecond).Milliseconds()
	if ms < MinElapsedMs {
		return MinElapsedMs
	}
	if ms > MaxElapsedMs {
		return MaxElapsedMs
	}
	return ms
}
