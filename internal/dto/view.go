// Package dto holds the JSON shapes shared by the HTTP and MCP adapters.
package dto

import (
	"github.com/aretw0/ucanfire/pkg/domain"
	"github.com/aretw0/ucanfire/pkg/session"
)

// View is the wire form of a session: either the current question or the
// stage it resolved to.
type View struct {
	SessionID     string    `json:"session_id" jsonschema_description:"Session identifier"`
	QuestionIndex int       `json:"question_index" jsonschema_description:"Index of the current (or last answered) question"`
	Question      *Question `json:"question,omitempty" jsonschema_description:"The question to answer, absent once resolved"`
	Stage         *Stage    `json:"stage,omitempty" jsonschema_description:"The resolved stage, absent while questions remain"`
	Terminal      bool      `json:"terminal" jsonschema_description:"True when a stage has been reached"`
}

// Question is the two-part prompt of a question.
type Question struct {
	Headline string `json:"headline"`
	Detail   string `json:"detail,omitempty"`
}

// Stage is a resolved stage with its summary sentence and page link.
type Stage struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Link    string `json:"link"`
	Summary string `json:"summary,omitempty"`
}

// NewView maps a session view.
func NewView(v session.View) View {
	out := View{
		SessionID:     v.State.SessionID,
		QuestionIndex: v.State.QuestionIndex,
		Terminal:      v.Terminal(),
	}
	if out.Terminal {
		s := NewStage(*v.State.Resolved)
		out.Stage = &s
		return out
	}
	out.Question = &Question{Headline: v.Question.Prompt.Headline, Detail: v.Question.Prompt.Detail}
	return out
}

// NewStage maps a stage.
func NewStage(s domain.Stage) Stage {
	return Stage{ID: s.ID, Name: s.Name, Link: s.Link(), Summary: s.Summary()}
}
