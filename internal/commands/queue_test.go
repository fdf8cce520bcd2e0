package commands

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/cloudalerts/internal/client/storage"
	"github.com/iudanet/cloudalerts/internal/client/storage/boltdb"
	"github.com/iudanet/cloudalerts/internal/models"
)

func TestQueue_SetLastAcknowledged(t *testing.T) {
	q := NewQueue(nil, nil)

	q.SetLastAcknowledged(5)
	q.SetLastAcknowledged(6)

	pending := q.Pending()
	require.Len(t, pending, 2)
	assert.Equal(t, 2, q.Len())

	for i, cmd := range pending {
		assert.Equal(t, models.CommandSetLastAcknowledged, cmd.Name)
		assert.Equal(t, int64(i+1), cmd.Sequence)
		_, err := uuid.Parse(cmd.ID)
		assert.NoError(t, err)
	}
	assert.Equal(t, 5, pending[0].Tag)
	assert.Equal(t, 6, pending[1].Tag)
}

func TestQueue_Drain(t *testing.T) {
	ctx := context.Background()
	q := NewQueue(nil, nil)
	q.SetLastAcknowledged(1)
	q.SetLastAcknowledged(2)
	q.SetLastAcknowledged(3)

	errSend := errors.New("connection reset")
	var tags []int
	n, err := q.Drain(ctx, func(_ context.Context, cmd models.Command) error {
		if cmd.Tag == 3 {
			return errSend
		}
		tags = append(tags, cmd.Tag)
		return nil
	})

	assert.ErrorIs(t, err, errSend)
	assert.Equal(t, 2, n)
	assert.Equal(t, []int{1, 2}, tags)
	assert.Equal(t, 1, q.Len())

	n, err = q.Drain(ctx, func(context.Context, models.Command) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 0, q.Len())
}

func TestQueue_DrainCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	q := NewQueue(nil, nil)
	q.SetLastAcknowledged(1)

	n, err := q.Drain(ctx, func(context.Context, models.Command) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, n)
	assert.Equal(t, 1, q.Len())
}

func TestQueue_Persistence(t *testing.T) {
	ctx := context.Background()
	store, err := boltdb.New(ctx, filepath.Join(t.TempDir(), "commands.db"))
	require.NoError(t, err)
	defer store.Close()

	q := NewQueue(store, nil)
	q.SetLastAcknowledged(7)
	q.SetLastAcknowledged(8)

	restored := NewQueue(store, nil)
	require.NoError(t, restored.Restore(ctx))
	require.Equal(t, 2, restored.Len())
	for i, cmd := range restored.Pending() {
		assert.Equal(t, q.Pending()[i].ID, cmd.ID)
		assert.Equal(t, q.Pending()[i].Tag, cmd.Tag)
	}

	restored.SetLastAcknowledged(9)
	pending := restored.Pending()
	assert.Equal(t, int64(3), pending[2].Sequence)

	n, err := restored.Drain(ctx, func(context.Context, models.Command) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	cmds, err := store.ListCommands(ctx)
	require.NoError(t, err)
	assert.Empty(t, cmds)
}

func TestQueue_StoreErrors(t *testing.T) {
	ctx := context.Background()
	errDisk := errors.New("disk full")

	store := &storage.CommandStorageMock{
		ListCommandsFunc: func(ctx context.Context) ([]*models.Command, error) {
			return nil, errDisk
		},
		SaveCommandFunc: func(ctx context.Context, cmd *models.Command) error {
			return errDisk
		},
		DeleteCommandFunc: func(ctx context.Context, id string) error {
			return storage.ErrCommandNotFound
		},
	}
	q := NewQueue(store, nil)

	err := q.Restore(ctx)
	assert.ErrorIs(t, err, errDisk)

	// ошибка записи не теряет команду в памяти
	q.SetLastAcknowledged(4)
	require.Len(t, store.SaveCommandCalls(), 1)
	assert.Equal(t, 4, store.SaveCommandCalls()[0].Cmd.Tag)
	assert.Equal(t, 1, q.Len())

	sent, err := q.Drain(ctx, func(ctx context.Context, cmd models.Command) error { return nil })
	assert.ErrorIs(t, err, storage.ErrCommandNotFound)
	assert.Equal(t, 0, sent)
	require.Len(t, store.DeleteCommandCalls(), 1)
	assert.Equal(t, 0, q.Len())
}
