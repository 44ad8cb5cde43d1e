package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingWrite_Transition(t *testing.T) {
	t.Run("commit path", func(t *testing.T) {
		w := NewPendingWrite("", 0, map[string]string{FieldFirstName: "Анна"})
		assert.True(t, w.IsCreate())
		assert.Equal(t, WriteProposed, w.State)

		require.NoError(t, w.Transition(WriteLocalApplied, StatusAppliedLocally))
		require.NoError(t, w.Transition(WriteCommitted, StatusCommitted))
		assert.True(t, w.Done())
		assert.Equal(t, StatusCommitted, w.Status)
	})

	t.Run("rollback path", func(t *testing.T) {
		w := NewPendingWrite("id-1", 3, nil)
		require.NoError(t, w.Transition(WriteLocalApplied, StatusAppliedLocally))
		require.NoError(t, w.Transition(WriteRolledBack, StatusRejectedConflict))
		assert.Equal(t, StatusRejectedConflict, w.Status)
	})

	t.Run("terminal state is final", func(t *testing.T) {
		w := NewPendingWrite("id-1", 3, nil)
		require.NoError(t, w.Transition(WriteRolledBack, StatusRejectedRemoteError))

		err := w.Transition(WriteCommitted, StatusCommitted)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Equal(t, WriteRolledBack, w.State)
	})

	t.Run("cannot commit before local apply", func(t *testing.T) {
		w := NewPendingWrite("id-1", 3, nil)
		assert.ErrorIs(t, w.Transition(WriteCommitted, StatusCommitted), ErrInvalidTransition)
	})
}
