package domain

// StateDiff represents the changes between two session states.
// It is serialized to JSON for partial updates on streaming clients.
type StateDiff struct {
	// SessionID is always present to identify the target.
	SessionID string `json:"session_id"`

	QuestionIndex *int   `json:"question_index,omitempty"`
	Resolved      *Stage `json:"resolved,omitempty"`
	Terminated    *bool  `json:"terminated,omitempty"`
}

// Diff calculates the difference between oldState and newState.
// If oldState is nil, it returns a diff representing the entire newState (initial load).
// It returns nil when nothing changed.
func Diff(oldState, newState *State) *StateDiff {
	if newState == nil {
		return nil
	}

	diff := &StateDiff{SessionID: newState.SessionID}

	if oldState == nil || oldState.QuestionIndex != newState.QuestionIndex {
		idx := newState.QuestionIndex
		diff.QuestionIndex = &idx
	}

	terminated := newState.Terminated()
	if (oldState == nil && terminated) || (oldState != nil && oldState.Terminated() != terminated) {
		diff.Terminated = &terminated
	}

	if newState.Resolved != nil && (oldState == nil || oldState.Resolved == nil || *oldState.Resolved != *newState.Resolved) {
		stage := *newState.Resolved
		diff.Resolved = &stage
	}

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *StateDiff) IsEmpty() bool {
	return d.QuestionIndex == nil &&
		d.Resolved == nil &&
		d.Terminated == nil
}
