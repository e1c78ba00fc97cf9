package questionnaire

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/ucanfire/internal/logging"
	"github.com/aretw0/ucanfire/pkg/domain"
)

// Engine walks a decision table one answer at a time.
// Its only state is the index of the current question.
type Engine struct {
	table  *Table
	index  int
	hooks  domain.LifecycleHooks
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithTable replaces the built-in table.
func WithTable(t *Table) Option {
	return func(e *Engine) {
		e.table = t
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithLogger sets a structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

func newEngine(opts []Option) *Engine {
	e := &Engine{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	if e.table == nil {
		e.table = Default()
	}
	return e
}

// New creates an engine positioned on the first question.
func New(opts ...Option) *Engine {
	e := newEngine(opts)
	e.enter()
	return e
}

// Resume creates an engine positioned on a previously persisted question index.
// No enter hook fires, since the question was already shown.
func Resume(index int, opts ...Option) (*Engine, error) {
	e := newEngine(opts)
	if _, err := e.table.Question(index); err != nil {
		return nil, fmt.Errorf("cannot resume: %w", err)
	}
	e.index = index
	return e, nil
}

// Table returns the table the engine walks.
func (e *Engine) Table() *Table {
	return e.table
}

// Index returns the index of the current question.
func (e *Engine) Index() int {
	return e.index
}

// CurrentPrompt returns the current question. It has no side effects.
func (e *Engine) CurrentPrompt() domain.Question {
	return e.table.questions[e.index]
}

// Answer follows the edge for choice on the current question.
// A Continue edge moves the engine and yields NextQuestion; a Terminal edge
// leaves the index where it is and yields Resolved.
func (e *Engine) Answer(choice domain.Choice) domain.Outcome {
	from := e.index
	if e.hooks.OnAnswer != nil {
		e.hooks.OnAnswer(&domain.AnswerEvent{
			EventBase: e.event(domain.EventAnswer),
			Index:     from,
			Choice:    choice,
		})
	}

	next, outcome, err := e.table.Step(from, choice)
	if err != nil {
		// Validated tables and Resume keep the index in range.
		panic(fmt.Sprintf("questionnaire: %v", err))
	}

	if outcome.IsResolved() {
		e.logger.Debug("stage resolved", "question", from, "choice", choice.String(), "stage_id", outcome.Stage.ID)
		if e.hooks.OnStageResolved != nil {
			e.hooks.OnStageResolved(&domain.StageEvent{
				EventBase: e.event(domain.EventStageResolved),
				Index:     from,
				Stage:     *outcome.Stage,
			})
		}
		return outcome
	}

	e.logger.Debug("question answered", "question", from, "choice", choice.String(), "next", next)
	e.index = next
	e.enter()
	return outcome
}

// Restart moves the engine back to the first question and returns it.
func (e *Engine) Restart() domain.Question {
	e.index = 0
	e.logger.Debug("questionnaire restarted")
	if e.hooks.OnRestart != nil {
		base := e.event(domain.EventRestart)
		e.hooks.OnRestart(&base)
	}
	e.enter()
	return e.CurrentPrompt()
}

func (e *Engine) enter() {
	if e.hooks.OnQuestionEnter == nil {
		return
	}
	e.hooks.OnQuestionEnter(&domain.QuestionEvent{
		EventBase: e.event(domain.EventQuestionEnter),
		Index:     e.index,
		Headline:  e.table.questions[e.index].Prompt.Headline,
	})
}

func (e *Engine) event(t domain.EventType) domain.EventBase {
	return domain.EventBase{Timestamp: time.Now(), Type: t}
}
