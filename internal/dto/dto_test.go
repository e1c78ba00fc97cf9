package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/ucanfire/internal/dto"
	"github.com/aretw0/ucanfire/pkg/domain"
	"github.com/aretw0/ucanfire/pkg/questionnaire"
	"github.com/aretw0/ucanfire/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewView_Question(t *testing.T) {
	q := questionnaire.Default().Questions()[2]
	v := dto.NewView(session.View{
		State:    &domain.State{SessionID: "s", QuestionIndex: 2},
		Question: q,
	})

	b, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"session_id":"s","question_index":2,"terminal":false,
		"question":{"headline":"Have you saved 3–6 months of living expenses?",
			"detail":"This is the foundation for long-term financial security."}
	}`, string(b))
}

func TestNewView_Terminal(t *testing.T) {
	v := dto.NewView(session.View{
		State: &domain.State{
			SessionID:     "s",
			QuestionIndex: 0,
			Resolved:      &domain.Stage{ID: 1, Name: "Stabilize Your Base (Mini Emergency Fund)"},
		},
		Question: questionnaire.Default().Questions()[0],
	})

	assert.True(t, v.Terminal)
	assert.Nil(t, v.Question)
	require.NotNil(t, v.Stage)
	assert.Equal(t, "stages/stage1.html", v.Stage.Link)
}

func TestNewTable(t *testing.T) {
	rows := dto.NewTable(questionnaire.Default().Questions())
	require.Len(t, rows, 6)

	require.NotNil(t, rows[0].Yes.Next)
	assert.Equal(t, 1, *rows[0].Yes.Next)
	assert.Nil(t, rows[0].Yes.Stage)

	require.NotNil(t, rows[5].No.Stage)
	assert.Equal(t, "Long-Term Freedom & FI Basics", rows[5].No.Stage.Name)
	assert.Nil(t, rows[5].No.Next)
}
