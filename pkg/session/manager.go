package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/ucanfire/internal/logging"
	"github.com/aretw0/ucanfire/pkg/domain"
	"github.com/aretw0/ucanfire/pkg/ports"
	"github.com/aretw0/ucanfire/pkg/questionnaire"
)

// DefaultLockTTL bounds how long a distributed session lock may be held.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates session access, ensuring safe concurrent operations.
// It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	store ports.StateStore

	mu    sync.Mutex
	locks map[string]*lockEntry

	locker     ports.DistributedLocker
	lockTTL    time.Duration
	engineOpts []questionnaire.Option
	listeners  []Listener
	logger     *slog.Logger
}

// Listener is notified after a state change has been persisted.
// prev is nil for a freshly started session. Listeners run with the
// session lock held and must not call back into the Manager.
type Listener func(prev, next *domain.State)

// View is what a presentation layer needs to render a session: the current
// question, or the stage it resolved to.
type View struct {
	State    *domain.State
	Question domain.Question
}

// Terminal reports whether the view shows a stage result.
func (v View) Terminal() bool {
	return v.State.Terminated()
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL overrides DefaultLockTTL.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.lockTTL = ttl
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithEngineOptions configures the engines built for each request
// (table, hooks, logger).
func WithEngineOptions(opts ...questionnaire.Option) Option {
	return func(m *Manager) {
		m.engineOpts = append(m.engineOpts, opts...)
	}
}

// WithListener registers a Listener for persisted state changes.
func WithListener(l Listener) Option {
	return func(m *Manager) {
		m.listeners = append(m.listeners, l)
	}
}

// NewManager creates a new Session Manager with the given persistence store.
func NewManager(store ports.StateStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(sessionID) after unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// Start creates (or resets) a session positioned on the first question.
func (m *Manager) Start(ctx context.Context, sessionID string) (View, error) {
	var view View
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		view, err = m.start(ctx, sessionID)
		return err
	})
	return view, err
}

// start must be called with the session lock held.
func (m *Manager) start(ctx context.Context, sessionID string) (View, error) {
	eng := questionnaire.New(m.engineOpts...)
	state := domain.NewState(sessionID)
	if err := m.store.Save(ctx, sessionID, state); err != nil {
		return View{}, fmt.Errorf("failed to initialize session: %w", err)
	}
	m.logger.Debug("session started", "session_id", sessionID)
	m.notify(nil, state)
	return View{State: state, Question: eng.CurrentPrompt()}, nil
}

// Current returns the view of an existing session without changing it.
func (m *Manager) Current(ctx context.Context, sessionID string) (View, error) {
	var view View
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		state, eng, err := m.resume(ctx, sessionID)
		if err != nil {
			return err
		}
		view = View{State: state, Question: eng.CurrentPrompt()}
		return nil
	})
	return view, err
}

// Answer applies choice to the session's current question and persists the result.
func (m *Manager) Answer(ctx context.Context, sessionID string, choice domain.Choice) (View, domain.Outcome, error) {
	var (
		view    View
		outcome domain.Outcome
	)
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		state, eng, err := m.resume(ctx, sessionID)
		if err != nil {
			return err
		}

		outcome = eng.Answer(choice)

		next := state.Snapshot()
		next.QuestionIndex = eng.Index()
		next.Resolved = outcome.Stage
		if err := m.store.Save(ctx, sessionID, next); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		m.notify(state, next)

		view = View{State: next, Question: eng.CurrentPrompt()}
		return nil
	})
	return view, outcome, err
}

// Restart moves the session back to the first question and clears any result.
func (m *Manager) Restart(ctx context.Context, sessionID string) (View, error) {
	var view View
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		state, eng, err := m.resume(ctx, sessionID)
		if err != nil {
			return err
		}

		first := eng.Restart()

		next := state.Snapshot()
		next.QuestionIndex = eng.Index()
		next.Resolved = nil
		if err := m.store.Save(ctx, sessionID, next); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		m.notify(state, next)

		view = View{State: next, Question: first}
		return nil
	})
	return view, err
}

// LoadOrStart returns the current view of a session, starting it if it does not exist.
func (m *Manager) LoadOrStart(ctx context.Context, sessionID string) (View, error) {
	var view View
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		state, eng, err := m.resume(ctx, sessionID)
		if err == nil {
			view = View{State: state, Question: eng.CurrentPrompt()}
			return nil
		}
		if !errors.Is(err, domain.ErrSessionNotFound) {
			return fmt.Errorf("failed to check session existence: %w", err)
		}
		view, err = m.start(ctx, sessionID)
		return err
	})
	return view, err
}

func (m *Manager) notify(prev, next *domain.State) {
	for _, l := range m.listeners {
		l(prev, next)
	}
}

// resume loads a state and rebuilds an engine at its question index.
// Must be called with the session lock held.
func (m *Manager) resume(ctx context.Context, sessionID string) (*domain.State, *questionnaire.Engine, error) {
	state, err := m.store.Load(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	eng, err := questionnaire.Resume(state.QuestionIndex, m.engineOpts...)
	if err != nil {
		return nil, nil, fmt.Errorf("session %s: %w", sessionID, err)
	}
	return state, eng, nil
}

// Load retrieves an existing session from the store.
func (m *Manager) Load(ctx context.Context, sessionID string) (*domain.State, error) {
	var state *domain.State
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		state, err = m.store.Load(ctx, sessionID)
		return err
	})
	return state, err
}

// Save persists the session state.
func (m *Manager) Save(ctx context.Context, sessionID string, state *domain.State) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		return m.store.Save(ctx, sessionID, state)
	})
}

// Delete removes the session from the store.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		return m.store.Delete(ctx, sessionID)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying state store.
func (m *Manager) Store() ports.StateStore {
	return m.store
}

// WithLock executes a function while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, sessionID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"session_id", sessionID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
