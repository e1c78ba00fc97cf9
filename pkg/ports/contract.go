package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/ucanfire/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStateStoreContract runs a suite of tests to verify that a StateStore implementation
// adheres to the defined interface contract.
func RunStateStoreContract(t *testing.T, store StateStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		state := domain.NewState(sessionID)
		state.QuestionIndex = 5
		state.Resolved = &domain.Stage{ID: 6, Name: "Long-Term Freedom & FI Basics"}

		err := store.Save(ctx, sessionID, state)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, sessionID, loaded.SessionID)
		assert.Equal(t, 5, loaded.QuestionIndex)
		require.NotNil(t, loaded.Resolved)
		assert.Equal(t, *state.Resolved, *loaded.Resolved)
	})

	t.Run("Load Is Isolated From Caller", func(t *testing.T) {
		state := domain.NewState(sessionID)
		state.Resolved = &domain.Stage{ID: 1, Name: "Stabilize Your Base (Mini Emergency Fund)"}
		require.NoError(t, store.Save(ctx, sessionID, state))

		// Mutating the caller's copy must not leak into the store.
		state.Resolved.Name = "mutated"
		state.QuestionIndex = 3

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, 0, loaded.QuestionIndex)
		assert.Equal(t, "Stabilize Your Base (Mini Emergency Fund)", loaded.Resolved.Name)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, sessionID, domain.NewState(sessionID))
		require.NoError(t, err)

		err = store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, domain.NewState(id1))
		_ = store.Save(ctx, id2, domain.NewState(id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
