package runner

import (
	"log/slog"
	"time"

	"github.com/aretw0/ucanfire/pkg/session"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithSessionManager configures where progress is kept.
// Without it the Runner uses an in-memory store.
func WithSessionManager(mgr *session.Manager) Option {
	return func(r *Runner) {
		r.Sessions = mgr
	}
}

// WithSessionID resumes (or creates) the named session.
// Without it a random ID is generated.
func WithSessionID(id string) Option {
	return func(r *Runner) {
		r.SessionID = id
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithInputHandler configures a custom IOHandler.
func WithInputHandler(handler IOHandler) Option {
	return func(r *Runner) {
		r.Handler = handler
	}
}

// WithInputTimeout bounds how long the Runner waits for a single answer.
func WithInputTimeout(d time.Duration) Option {
	return func(r *Runner) {
		r.InputTimeout = d
	}
}

// WithSignals enables SIGINT/SIGTERM handling while waiting for input.
func WithSignals(enabled bool) Option {
	return func(r *Runner) {
		r.Signals = enabled
	}
}
