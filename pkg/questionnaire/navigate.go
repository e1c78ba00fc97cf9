package questionnaire

import (
	"fmt"

	"github.com/aretw0/ucanfire/pkg/domain"
)

// Navigate applies choice to a state snapshot without an engine.
// The input is not modified. A Continue edge moves the index and clears any
// resolved stage; a Terminal edge keeps the index and records the stage.
// A snapshot with an index outside the table yields ErrQuestionOutOfRange.
func (t *Table) Navigate(state *domain.State, choice domain.Choice) (*domain.State, domain.Outcome, error) {
	if state == nil {
		return nil, domain.Outcome{}, fmt.Errorf("%w: nil state", domain.ErrQuestionOutOfRange)
	}
	next, outcome, err := t.Step(state.QuestionIndex, choice)
	if err != nil {
		return nil, domain.Outcome{}, err
	}

	out := state.Snapshot()
	out.QuestionIndex = next
	out.Resolved = outcome.Stage
	return out, outcome, nil
}

// Reset returns a copy of state positioned on the first question.
func Reset(state *domain.State) *domain.State {
	if state == nil {
		return domain.NewState("")
	}
	return domain.NewState(state.SessionID)
}
