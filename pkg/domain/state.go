package domain

// State is the serializable snapshot of a questionnaire session.
// It carries the single question index of the engine plus, once an answer
// resolved the questionnaire, the stage that was reached.
type State struct {
	// SessionID identifies the session in a StateStore.
	SessionID string `json:"session_id"`

	// QuestionIndex is the index of the current question. It is left
	// unchanged when an answer resolves to a stage.
	QuestionIndex int `json:"question_index"`

	// Resolved is the stage reached by the last answer, if any.
	// Cleared by restart and by any answer that continues to another question.
	Resolved *Stage `json:"resolved,omitempty"`
}

// NewState creates a clean state positioned on the first question.
func NewState(sessionID string) *State {
	return &State{SessionID: sessionID}
}

// Terminated reports whether the session currently shows a stage result.
func (s *State) Terminated() bool {
	return s.Resolved != nil
}

// Snapshot returns a deep copy of the state.
func (s *State) Snapshot() *State {
	if s == nil {
		return nil
	}
	next := *s
	if s.Resolved != nil {
		stage := *s.Resolved
		next.Resolved = &stage
	}
	return &next
}
