package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/aretw0/ucanfire/internal/dto"
	"github.com/aretw0/ucanfire/pkg/adapters/memory"
	"github.com/aretw0/ucanfire/pkg/domain"
	"github.com/aretw0/ucanfire/pkg/runner"
	"github.com/aretw0/ucanfire/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *Server {
	return NewServer(session.NewManager(memory.NewStore()))
}

func TestTools_Flow(t *testing.T) {
	s := newTestServer()
	ctx := context.Background()
	req := mcp.CallToolRequest{}

	view, err := s.handleCurrent(ctx, req, SessionArgs{SessionID: "agent-1"})
	require.NoError(t, err)
	assert.Equal(t, 0, view.QuestionIndex)
	require.NotNil(t, view.Question)

	for _, c := range []string{"yes", "no", "yes", "yes"} {
		view, err = s.handleAnswer(ctx, req, AnswerArgs{SessionID: "agent-1", Choice: c})
		require.NoError(t, err)
	}
	view, err = s.handleAnswer(ctx, req, AnswerArgs{SessionID: "agent-1", Choice: "no"})
	require.NoError(t, err)
	assert.True(t, view.Terminal)
	require.NotNil(t, view.Stage)
	assert.Equal(t, 5, view.Stage.ID)
	assert.Equal(t, "Start Investing (Index Funds & ETFs)", view.Stage.Name)

	// current_question does not restart a resolved session.
	view, err = s.handleCurrent(ctx, req, SessionArgs{SessionID: "agent-1"})
	require.NoError(t, err)
	assert.True(t, view.Terminal)

	view, err = s.handleRestart(ctx, req, SessionArgs{SessionID: "agent-1"})
	require.NoError(t, err)
	assert.False(t, view.Terminal)
	assert.Equal(t, 0, view.QuestionIndex)
}

func TestTools_Errors(t *testing.T) {
	s := newTestServer()
	ctx := context.Background()
	req := mcp.CallToolRequest{}

	_, err := s.handleAnswer(ctx, req, AnswerArgs{SessionID: "missing", Choice: "yes"})
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = s.handleCurrent(ctx, req, SessionArgs{SessionID: "x"})
	require.NoError(t, err)
	_, err = s.handleAnswer(ctx, req, AnswerArgs{SessionID: "x", Choice: "sometimes"})
	assert.ErrorIs(t, err, domain.ErrInvalidChoice)

	_, err = s.handleRestart(ctx, req, SessionArgs{})
	assert.Error(t, err)
}

func TestTools_Table(t *testing.T) {
	s := newTestServer()
	b, err := s.tableJSON()
	require.NoError(t, err)

	var rows []dto.TableQuestion
	require.NoError(t, json.Unmarshal(b, &rows))
	require.Len(t, rows, 6)
	assert.Equal(t, 2, rows[1].Yes.Stage.ID)
}

func TestTools_MaxInputSize(t *testing.T) {
	s := NewServer(session.NewManager(memory.NewStore()), WithMaxInputSize(8))
	ctx := context.Background()
	req := mcp.CallToolRequest{}

	_, err := s.handleCurrent(ctx, req, SessionArgs{SessionID: "agent-1"})
	require.NoError(t, err)

	_, err = s.handleAnswer(ctx, req, AnswerArgs{SessionID: "agent-1", Choice: "yes" + strings.Repeat(" ", 16)})
	assert.ErrorIs(t, err, runner.ErrInputTooLarge)

	view, err := s.handleAnswer(ctx, req, AnswerArgs{SessionID: "agent-1", Choice: "yes"})
	require.NoError(t, err)
	assert.Equal(t, 1, view.QuestionIndex)

	// The default limit still applies when no option is given.
	def := newTestServer()
	_, err = def.handleCurrent(ctx, req, SessionArgs{SessionID: "agent-2"})
	require.NoError(t, err)
	_, err = def.handleAnswer(ctx, req, AnswerArgs{SessionID: "agent-2", Choice: strings.Repeat("y", runner.DefaultMaxInputSize+1)})
	assert.ErrorIs(t, err, runner.ErrInputTooLarge)
}
