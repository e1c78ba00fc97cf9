package questionnaire_test

import (
	"fmt"
	"testing"

	"github.com/aretw0/ucanfire/pkg/domain"
	"github.com/aretw0/ucanfire/pkg/questionnaire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	stage1  = "Stabilize Your Base (Mini Emergency Fund)"
	stage2  = "Eliminate High-Interest Debt"
	stage3  = "Build a 3–6 Month Safety Buffer"
	stage4  = "Understand TFSA vs RRSP"
	stage5  = "Start Investing (Index Funds & ETFs)"
	stage6a = "Continue Refining Your Long-Term Plan"
	stage6b = "Long-Term Freedom & FI Basics"
)

// walk answers every choice in path, stopping at the first resolved stage.
func walk(t *testing.T, eng *questionnaire.Engine, path ...domain.Choice) (*domain.Stage, int) {
	t.Helper()
	for i, c := range path {
		out := eng.Answer(c)
		if out.IsResolved() {
			return out.Stage, i + 1
		}
		require.NotNil(t, out.Question, "outcome must carry either a question or a stage")
	}
	return nil, len(path)
}

func TestEngine_TableEdges(t *testing.T) {
	y, n := domain.Yes, domain.No

	tests := []struct {
		index     int
		choice    domain.Choice
		wantNext  int
		wantStage *domain.Stage
	}{
		{index: 0, choice: y, wantNext: 1},
		{index: 0, choice: n, wantStage: &domain.Stage{ID: 1, Name: stage1}},
		{index: 1, choice: y, wantStage: &domain.Stage{ID: 2, Name: stage2}},
		{index: 1, choice: n, wantNext: 2},
		{index: 2, choice: y, wantNext: 3},
		{index: 2, choice: n, wantStage: &domain.Stage{ID: 3, Name: stage3}},
		{index: 3, choice: y, wantNext: 4},
		{index: 3, choice: n, wantStage: &domain.Stage{ID: 4, Name: stage4}},
		{index: 4, choice: y, wantNext: 5},
		{index: 4, choice: n, wantStage: &domain.Stage{ID: 5, Name: stage5}},
		{index: 5, choice: y, wantStage: &domain.Stage{ID: 6, Name: stage6a}},
		{index: 5, choice: n, wantStage: &domain.Stage{ID: 6, Name: stage6b}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_%s", tt.index, tt.choice), func(t *testing.T) {
			eng, err := questionnaire.Resume(tt.index)
			require.NoError(t, err)

			out := eng.Answer(tt.choice)
			if tt.wantStage != nil {
				require.True(t, out.IsResolved())
				assert.Nil(t, out.Question)
				assert.Equal(t, *tt.wantStage, *out.Stage)
				assert.Equal(t, tt.index, eng.Index(), "terminal edges must not move the engine")
				return
			}

			require.False(t, out.IsResolved())
			require.NotNil(t, out.Question)
			assert.Equal(t, tt.wantNext, eng.Index())
			assert.Equal(t, eng.CurrentPrompt(), *out.Question)
		})
	}
}

func TestEngine_Paths(t *testing.T) {
	y, n := domain.Yes, domain.No

	tests := []struct {
		name      string
		path      []domain.Choice
		wantStage domain.Stage
		wantSteps int
	}{
		{name: "no", path: []domain.Choice{n}, wantStage: domain.Stage{ID: 1, Name: stage1}, wantSteps: 1},
		{name: "all no resolves at first terminal", path: []domain.Choice{n, n, n, n, n, n}, wantStage: domain.Stage{ID: 1, Name: stage1}, wantSteps: 1},
		{name: "yes yes", path: []domain.Choice{y, y}, wantStage: domain.Stage{ID: 2, Name: stage2}, wantSteps: 2},
		{name: "yes no no", path: []domain.Choice{y, n, n}, wantStage: domain.Stage{ID: 3, Name: stage3}, wantSteps: 3},
		{name: "yes no yes no", path: []domain.Choice{y, n, y, n}, wantStage: domain.Stage{ID: 4, Name: stage4}, wantSteps: 4},
		{name: "yes no yes yes no", path: []domain.Choice{y, n, y, y, n}, wantStage: domain.Stage{ID: 5, Name: stage5}, wantSteps: 5},
		{name: "long-term plan", path: []domain.Choice{y, n, y, y, y, y}, wantStage: domain.Stage{ID: 6, Name: stage6a}, wantSteps: 6},
		{name: "FI basics", path: []domain.Choice{y, n, y, y, y, n}, wantStage: domain.Stage{ID: 6, Name: stage6b}, wantSteps: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := questionnaire.New()
			stage, steps := walk(t, eng, tt.path...)
			require.NotNil(t, stage)
			assert.Equal(t, tt.wantStage, *stage)
			assert.Equal(t, tt.wantSteps, steps)
		})
	}
}

func TestEngine_StageSixVariantsAreDistinct(t *testing.T) {
	y, n := domain.Yes, domain.No

	a, _ := walk(t, questionnaire.New(), y, n, y, y, y, y)
	b, _ := walk(t, questionnaire.New(), y, n, y, y, y, n)
	require.NotNil(t, a)
	require.NotNil(t, b)

	assert.Equal(t, a.ID, b.ID)
	assert.NotEqual(t, a.Name, b.Name)
	assert.NotEqual(t, *a, *b)
}

func TestEngine_RestartIsDeterministic(t *testing.T) {
	y, n := domain.Yes, domain.No
	paths := [][]domain.Choice{
		{n},
		{y, y},
		{y, n, n},
		{y, n, y, y, y, y},
		{y, n, y, y, y, n},
	}

	eng := questionnaire.New()
	for _, path := range paths {
		first, _ := walk(t, eng, path...)
		require.NotNil(t, first)

		q := eng.Restart()
		assert.Equal(t, 0, eng.Index())
		assert.Equal(t, eng.Table().Questions()[0], q)

		second, _ := walk(t, eng, path...)
		require.NotNil(t, second)
		assert.Equal(t, *first, *second)

		eng.Restart()
	}
}

func TestEngine_RestartIdempotent(t *testing.T) {
	eng := questionnaire.New()
	first := eng.Restart()
	second := eng.Restart()
	assert.Equal(t, first, second)
	assert.Equal(t, 0, eng.Index())
}

func TestEngine_AnswerAfterResolvedRepeatsStage(t *testing.T) {
	eng := questionnaire.New()
	out := eng.Answer(domain.No)
	require.True(t, out.IsResolved())

	// The index is not reset automatically.
	assert.Equal(t, 0, eng.Index())
	again := eng.Answer(domain.No)
	assert.Equal(t, *out.Stage, *again.Stage)
}

func TestEngine_CurrentPromptHasTwoParts(t *testing.T) {
	q := questionnaire.New().CurrentPrompt()
	assert.Equal(t, "Do you have a small $1,000–$2,000 cushion set aside for unexpected expenses?", q.Prompt.Headline)
	assert.Equal(t, "This is the first layer of financial stability for most people.", q.Prompt.Detail)
}

func TestResume_OutOfRange(t *testing.T) {
	_, err := questionnaire.Resume(6)
	assert.ErrorIs(t, err, domain.ErrQuestionOutOfRange)

	_, err = questionnaire.Resume(-1)
	assert.ErrorIs(t, err, domain.ErrQuestionOutOfRange)
}

func TestEngine_Hooks(t *testing.T) {
	var entered []int
	var answers []domain.Choice
	var resolved []domain.Stage
	restarts := 0

	hooks := domain.LifecycleHooks{
		OnQuestionEnter: func(e *domain.QuestionEvent) { entered = append(entered, e.Index) },
		OnAnswer:        func(e *domain.AnswerEvent) { answers = append(answers, e.Choice) },
		OnStageResolved: func(e *domain.StageEvent) { resolved = append(resolved, e.Stage) },
		OnRestart:       func(*domain.EventBase) { restarts++ },
	}

	eng := questionnaire.New(questionnaire.WithHooks(hooks))
	eng.Answer(domain.Yes)
	eng.Answer(domain.Yes)
	eng.Restart()

	assert.Equal(t, []int{0, 1, 0}, entered)
	assert.Equal(t, []domain.Choice{domain.Yes, domain.Yes}, answers)
	assert.Equal(t, []domain.Stage{{ID: 2, Name: stage2}}, resolved)
	assert.Equal(t, 1, restarts)
}
