package boltdb

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/cloudalerts/internal/client/storage"
	"github.com/iudanet/cloudalerts/internal/models"
)

func TestCommands_SaveListDelete(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	cmds, err := store.ListCommands(ctx)
	require.NoError(t, err)
	assert.Empty(t, cmds)

	now := time.Now().UTC().Truncate(time.Second)
	saved := make([]*models.Command, 0, 3)
	for seq := int64(3); seq >= 1; seq-- {
		cmd := &models.Command{
			ID:        uuid.New().String(),
			Name:      models.CommandSetLastAcknowledged,
			Tag:       int(seq) * 10,
			Sequence:  seq,
			CreatedAt: now,
		}
		require.NoError(t, store.SaveCommand(ctx, cmd))
		saved = append(saved, cmd)
	}

	cmds, err = store.ListCommands(ctx)
	require.NoError(t, err)
	require.Len(t, cmds, 3)
	for i, cmd := range cmds {
		assert.Equal(t, int64(i+1), cmd.Sequence)
		assert.True(t, now.Equal(cmd.CreatedAt))
	}
	assert.Equal(t, saved[2].ID, cmds[0].ID)

	require.NoError(t, store.DeleteCommand(ctx, saved[0].ID))
	assert.ErrorIs(t, store.DeleteCommand(ctx, saved[0].ID), storage.ErrCommandNotFound)

	cmds, err = store.ListCommands(ctx)
	require.NoError(t, err)
	assert.Len(t, cmds, 2)
}
