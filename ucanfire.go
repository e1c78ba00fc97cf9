package ucanfire

import (
	_ "embed"

	"github.com/aretw0/ucanfire/pkg/adapters/memory"
	"github.com/aretw0/ucanfire/pkg/ports"
	"github.com/aretw0/ucanfire/pkg/questionnaire"
	"github.com/aretw0/ucanfire/pkg/session"
)

// Version is the release of this module.
//
//go:embed VERSION
var Version string

// Engine walks the stage questionnaire for a single session.
type Engine = questionnaire.Engine

// Option configures an Engine.
type Option = questionnaire.Option

// New returns an engine positioned at the first question of the built-in table.
func New(opts ...Option) *Engine {
	return questionnaire.New(opts...)
}

// NewSessions returns a session manager backed by store.
// A nil store keeps sessions in memory.
func NewSessions(store ports.StateStore, opts ...session.Option) *session.Manager {
	if store == nil {
		store = memory.NewStore()
	}
	return session.NewManager(store, opts...)
}
