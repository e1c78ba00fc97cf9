package questionnaire_test

import (
	"errors"
	"testing"

	"github.com/aretw0/ucanfire/pkg/domain"
	"github.com/aretw0/ucanfire/pkg/questionnaire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	table := questionnaire.Default()
	require.NoError(t, table.Validate())
	assert.Equal(t, 6, table.Len())

	stages := table.Stages()
	require.Len(t, stages, 7, "stage 6 has two named variants")
	for i, s := range stages[:6] {
		assert.Equal(t, i+1, s.ID)
	}
	assert.Equal(t, 6, stages[6].ID)
}

func TestDefault_ContinueEdgesPointForward(t *testing.T) {
	for i, q := range questionnaire.Default().Questions() {
		for _, edge := range []domain.Edge{q.Yes, q.No} {
			if c, ok := edge.(domain.Continue); ok {
				assert.Greater(t, c.Next, i, "question %d", i)
			}
		}
	}
}

func TestNewTable_Validation(t *testing.T) {
	prompt := domain.Prompt{Headline: "Q?"}
	stage := domain.Terminal{Stage: domain.Stage{ID: 1, Name: "One"}}

	tests := []struct {
		name      string
		questions []domain.Question
		wantIssue string
	}{
		{
			name:      "Empty Table",
			questions: nil,
			wantIssue: "table has no questions",
		},
		{
			name: "Forward Index Out Of Range",
			questions: []domain.Question{
				{Prompt: prompt, Yes: domain.Continue{Next: 1}, No: stage},
			},
			wantIssue: "question 0, yes edge: next question 1 out of range [0, 1)",
		},
		{
			name: "Negative Index",
			questions: []domain.Question{
				{Prompt: prompt, Yes: stage, No: domain.Continue{Next: -1}},
			},
			wantIssue: "question 0, no edge: next question -1 out of range [0, 1)",
		},
		{
			name: "Missing Edge",
			questions: []domain.Question{
				{Prompt: prompt, Yes: stage},
			},
			wantIssue: "question 0, no edge: missing",
		},
		{
			name: "Stage Id Out Of Range",
			questions: []domain.Question{
				{Prompt: prompt, Yes: stage, No: domain.Terminal{Stage: domain.Stage{ID: 7, Name: "Seven"}}},
			},
			wantIssue: "question 0, no edge: stage id 7 out of range [1, 6]",
		},
		{
			name: "Unnamed Stage",
			questions: []domain.Question{
				{Prompt: prompt, Yes: domain.Terminal{Stage: domain.Stage{ID: 2}}, No: stage},
			},
			wantIssue: "question 0, yes edge: stage 2 has no name",
		},
		{
			name: "Empty Headline",
			questions: []domain.Question{
				{Yes: stage, No: stage},
			},
			wantIssue: "question 0: empty headline",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := questionnaire.NewTable(tt.questions...)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidTable)

			var tableErr *questionnaire.TableError
			require.True(t, errors.As(err, &tableErr))
			assert.Contains(t, tableErr.Problems, tt.wantIssue)
		})
	}
}

func TestNewTable_CycleIsNotRejected(t *testing.T) {
	// Acyclicity is the author's responsibility.
	table, err := questionnaire.NewTable(
		domain.Question{Prompt: domain.Prompt{Headline: "A?"}, Yes: domain.Continue{Next: 1}, No: domain.Terminal{Stage: domain.Stage{ID: 1, Name: "One"}}},
		domain.Question{Prompt: domain.Prompt{Headline: "B?"}, Yes: domain.Continue{Next: 0}, No: domain.Terminal{Stage: domain.Stage{ID: 2, Name: "Two"}}},
	)
	require.NoError(t, err)

	eng := questionnaire.New(questionnaire.WithTable(table))
	for i := 0; i < 10; i++ {
		assert.False(t, eng.Answer(domain.Yes).IsResolved())
	}
}

func TestLoad(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		table, err := questionnaire.Load([]byte(`
questions:
  - headline: "First?"
    detail: "More."
    "yes": {next: 1}
    "no": {stage: {id: 1, name: "One"}}
  - headline: "Second?"
    "yes": {stage: {id: 2, name: "Two"}}
    "no": {stage: {id: 3, name: "Three"}}
`))
		require.NoError(t, err)
		assert.Equal(t, 2, table.Len())

		q, err := table.Question(0)
		require.NoError(t, err)
		assert.Equal(t, "First?\nMore.", q.Prompt.Text())
		assert.Equal(t, domain.Continue{Next: 1}, q.Yes)
	})

	t.Run("Both Next And Stage", func(t *testing.T) {
		_, err := questionnaire.Load([]byte(`
questions:
  - headline: "Q?"
    "yes": {next: 0, stage: {id: 1, name: "One"}}
    "no": {stage: {id: 1, name: "One"}}
`))
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidTable)
		assert.Contains(t, err.Error(), "both 'next' and 'stage' are set")
	})

	t.Run("Neither Next Nor Stage", func(t *testing.T) {
		_, err := questionnaire.Load([]byte(`
questions:
  - headline: "Q?"
    "yes": {}
    "no": {stage: {id: 1, name: "One"}}
`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "one of 'next' or 'stage' is required")
	})

	t.Run("Out Of Range", func(t *testing.T) {
		_, err := questionnaire.Load([]byte(`
questions:
  - headline: "Q?"
    "yes": {next: 5}
    "no": {stage: {id: 1, name: "One"}}
`))
		assert.ErrorIs(t, err, domain.ErrInvalidTable)
	})

	t.Run("Unknown Field", func(t *testing.T) {
		_, err := questionnaire.Load([]byte(`
questions:
  - headline: "Q?"
    maybe: {next: 0}
    "yes": {stage: {id: 1, name: "One"}}
    "no": {stage: {id: 1, name: "One"}}
`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "maybe")
	})

	t.Run("Malformed YAML", func(t *testing.T) {
		_, err := questionnaire.Load([]byte("questions: [\n"))
		assert.Error(t, err)
	})
}

func TestLoad_DefaultSourceRoundTrip(t *testing.T) {
	table, err := questionnaire.Load(questionnaire.DefaultSource())
	require.NoError(t, err)
	assert.Equal(t, questionnaire.Default().Questions(), table.Questions())
}

func TestTable_Step(t *testing.T) {
	table := questionnaire.Default()

	next, out, err := table.Step(0, domain.Yes)
	require.NoError(t, err)
	assert.Equal(t, 1, next)
	assert.False(t, out.IsResolved())

	next, out, err = table.Step(1, domain.Yes)
	require.NoError(t, err)
	assert.Equal(t, 1, next)
	assert.Equal(t, 2, out.Stage.ID)

	_, _, err = table.Step(42, domain.Yes)
	assert.ErrorIs(t, err, domain.ErrQuestionOutOfRange)
}
