package questionnaire

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/aretw0/ucanfire/pkg/domain"
)

//go:embed questions.yaml
var questionsYAML []byte

// MinStageID and MaxStageID bound the stage identifiers a table may use.
const (
	MinStageID = 1
	MaxStageID = 6
)

// Table is an immutable, validated decision tree.
type Table struct {
	questions []domain.Question
}

// TableError lists every problem found while validating a table.
type TableError struct {
	Problems []string
}

func (e *TableError) Error() string {
	return fmt.Sprintf("found %d problems:\n- %s", len(e.Problems), strings.Join(e.Problems, "\n- "))
}

// Unwrap allows errors.Is(err, domain.ErrInvalidTable).
func (e *TableError) Unwrap() error {
	return domain.ErrInvalidTable
}

// NewTable builds a table from questions and validates it.
func NewTable(questions ...domain.Question) (*Table, error) {
	t := &Table{questions: append([]domain.Question(nil), questions...)}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

var defaultTable = sync.OnceValues(func() (*Table, error) {
	return Load(questionsYAML)
})

// Default returns the built-in six question table.
// It panics if the embedded table is malformed.
func Default() *Table {
	t, err := defaultTable()
	if err != nil {
		panic(fmt.Sprintf("questionnaire: embedded table is invalid: %v", err))
	}
	return t
}

// DefaultSource returns the raw YAML the default table is loaded from.
func DefaultSource() []byte {
	return append([]byte(nil), questionsYAML...)
}

// Validate checks that every Continue edge points inside the table and that
// every stage and prompt is well formed. Acyclicity is not checked.
func (t *Table) Validate() error {
	var problems []string

	if len(t.questions) == 0 {
		problems = append(problems, "table has no questions")
	}

	for i, q := range t.questions {
		if strings.TrimSpace(q.Prompt.Headline) == "" {
			problems = append(problems, fmt.Sprintf("question %d: empty headline", i))
		}
		for _, choice := range []domain.Choice{domain.Yes, domain.No} {
			if p := t.checkEdge(q.Edge(choice)); p != "" {
				problems = append(problems, fmt.Sprintf("question %d, %s edge: %s", i, choice, p))
			}
		}
	}

	if len(problems) > 0 {
		return &TableError{Problems: problems}
	}
	return nil
}

func (t *Table) checkEdge(edge domain.Edge) string {
	switch e := edge.(type) {
	case domain.Continue:
		if e.Next < 0 || e.Next >= len(t.questions) {
			return fmt.Sprintf("next question %d out of range [0, %d)", e.Next, len(t.questions))
		}
	case domain.Terminal:
		if e.Stage.ID < MinStageID || e.Stage.ID > MaxStageID {
			return fmt.Sprintf("stage id %d out of range [%d, %d]", e.Stage.ID, MinStageID, MaxStageID)
		}
		if strings.TrimSpace(e.Stage.Name) == "" {
			return fmt.Sprintf("stage %d has no name", e.Stage.ID)
		}
	case nil:
		return "missing"
	default:
		return fmt.Sprintf("unknown edge type %T", edge)
	}
	return ""
}

// Len returns the number of questions.
func (t *Table) Len() int {
	return len(t.questions)
}

// Question returns the question at index i.
func (t *Table) Question(i int) (domain.Question, error) {
	if i < 0 || i >= len(t.questions) {
		return domain.Question{}, fmt.Errorf("%w: %d", domain.ErrQuestionOutOfRange, i)
	}
	return t.questions[i], nil
}

// Questions returns a copy of all questions in table order.
func (t *Table) Questions() []domain.Question {
	return append([]domain.Question(nil), t.questions...)
}

// Stages lists every distinct stage reachable through a terminal edge, in
// table order. Stages sharing an ID but not a name are listed separately.
func (t *Table) Stages() []domain.Stage {
	seen := make(map[domain.Stage]bool)
	var stages []domain.Stage
	for _, q := range t.questions {
		for _, choice := range []domain.Choice{domain.Yes, domain.No} {
			if term, ok := q.Edge(choice).(domain.Terminal); ok && !seen[term.Stage] {
				seen[term.Stage] = true
				stages = append(stages, term.Stage)
			}
		}
	}
	return stages
}

// Step follows the edge for choice from the question at index.
// It returns the index the engine should hold afterwards: the target of a
// Continue edge, or index itself for a Terminal edge.
func (t *Table) Step(index int, choice domain.Choice) (int, domain.Outcome, error) {
	q, err := t.Question(index)
	if err != nil {
		return index, domain.Outcome{}, err
	}

	switch edge := q.Edge(choice).(type) {
	case domain.Continue:
		next, err := t.Question(edge.Next)
		if err != nil {
			return index, domain.Outcome{}, err
		}
		return edge.Next, domain.NextQuestion(next), nil
	case domain.Terminal:
		return index, domain.Resolved(edge.Stage), nil
	default:
		return index, domain.Outcome{}, fmt.Errorf("%w: question %d has no %s edge", domain.ErrInvalidTable, index, choice)
	}
}
