package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/aretw0/ucanfire/internal/logging"
	"github.com/aretw0/ucanfire/pkg/adapters/memory"
	"github.com/aretw0/ucanfire/pkg/domain"
	"github.com/aretw0/ucanfire/pkg/session"
	"github.com/google/uuid"
)

// Commands understood besides yes/no answers.
const (
	CommandRestart = "restart"
	CommandExit    = "exit"
	CommandQuit    = "quit"
)

var (
	// ErrInterrupted is returned when a signal stops the loop.
	ErrInterrupted = errors.New("interrupted")
	// ErrInputTimeout is returned when no answer arrives within the input timeout.
	ErrInputTimeout = errors.New("timed out waiting for input")
)

// Runner handles the interactive loop of the questionnaire.
// It uses an IOHandler strategy to abstract the interaction mode (Text vs JSON).
type Runner struct {
	Handler IOHandler

	// Sessions keeps progress. If nil, sessions are ephemeral.
	Sessions  *session.Manager
	SessionID string

	// InputTimeout bounds a single read. Zero means no limit.
	InputTimeout time.Duration

	// Signals enables SIGINT/SIGTERM handling while reading input.
	Signals bool

	// Logger is used for internal debug logging.
	Logger *slog.Logger
}

// NewRunner creates a new Runner with text IO on Stdin/Stdout.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.Handler == nil {
		r.Handler = NewTextHandler(os.Stdin, os.Stdout)
	}
	if r.Sessions == nil {
		r.Sessions = session.NewManager(memory.NewStore())
	}
	if r.SessionID == "" {
		r.SessionID = uuid.NewString()
	}
	return r
}

// Run executes the loop until the user exits or input ends.
// An existing session is resumed where it was left.
func (r *Runner) Run(ctx context.Context) error {
	view, err := r.Sessions.LoadOrStart(ctx, r.SessionID)
	if err != nil {
		return fmt.Errorf("failed to open session %s: %w", r.SessionID, err)
	}
	r.Logger.Debug("runner started", "session_id", r.SessionID, "question_index", view.State.QuestionIndex)

	for {
		if err := r.present(ctx, view); err != nil {
			return fmt.Errorf("output error: %w", err)
		}

		text, err := r.read(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		cmd := strings.ToLower(strings.TrimSpace(text))
		switch cmd {
		case CommandExit, CommandQuit:
			return nil
		case CommandRestart:
			view, err = r.Sessions.Restart(ctx, r.SessionID)
			if err != nil {
				return fmt.Errorf("restart failed: %w", err)
			}
			continue
		}

		if view.Terminal() {
			r.hint(ctx, "Type 'restart' to take the questionnaire again, or 'exit' to quit.")
			continue
		}

		choice, err := domain.ParseChoice(cmd)
		if err != nil {
			r.Logger.Debug("invalid answer", "session_id", r.SessionID, "input", cmd)
			r.hint(ctx, "Please answer yes or no.")
			continue
		}

		view, _, err = r.Sessions.Answer(ctx, r.SessionID, choice)
		if err != nil {
			return fmt.Errorf("answer failed: %w", err)
		}
	}
}

func (r *Runner) present(ctx context.Context, view session.View) error {
	if view.Terminal() {
		return r.Handler.Result(ctx, *view.State.Resolved)
	}
	return r.Handler.Question(ctx, view.State.QuestionIndex, view.Question)
}

func (r *Runner) hint(ctx context.Context, msg string) {
	if err := r.Handler.SystemOutput(ctx, msg); err != nil {
		r.Logger.Warn("failed to write system output", "err", err)
	}
}

// read waits for one line of input, honouring signals and the input timeout.
// Malformed input (too large, invalid UTF-8) is reported and read again.
func (r *Runner) read(ctx context.Context) (string, error) {
	var signals *SignalManager
	if r.Signals {
		signals = NewSignalManager(ctx)
		defer signals.Stop()
		ctx = signals.Context()
	}

	for {
		inputCtx, cancel := ctx, context.CancelFunc(func() {})
		if r.InputTimeout > 0 {
			inputCtx, cancel = context.WithTimeout(ctx, r.InputTimeout)
		}
		text, err := r.Handler.Input(inputCtx)
		cancel()

		if err == nil {
			return text, nil
		}
		if errors.Is(err, ErrInputTooLarge) || errors.Is(err, ErrInvalidUTF8) {
			r.hint(ctx, err.Error())
			continue
		}

		if signals != nil {
			signals.CheckRace()
		}
		switch {
		case ctx.Err() != nil:
			r.Logger.Debug("runner input: context cancelled", "err", ctx.Err())
			return "", ErrInterrupted
		case errors.Is(err, context.DeadlineExceeded):
			return "", ErrInputTimeout
		case errors.Is(err, io.EOF):
			return "", io.EOF
		}
		return "", fmt.Errorf("input error: %w", err)
	}
}
