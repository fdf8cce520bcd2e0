// Package commands queues outbound client-server requests raised by the
// alert engine.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/cloudalerts/internal/client/storage"
	"github.com/iudanet/cloudalerts/internal/models"
)

// Queue is an ordered list of pending commands. When a CommandStorage is
// attached, every command is persisted until it is acknowledged as sent.
type Queue struct {
	store   storage.CommandStorage
	logger  *slog.Logger
	pending []*models.Command
	seq     int64 // монотонный счетчик, как у часов Лампорта
	mu      sync.Mutex
}

// NewQueue creates a queue. store may be nil for an in-memory queue.
func NewQueue(store storage.CommandStorage, logger *slog.Logger) *Queue {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Queue{
		store:  store,
		logger: logger,
	}
}

// Restore loads the commands left over from a previous run.
func (q *Queue) Restore(ctx context.Context) error {
	if q.store == nil {
		return nil
	}

	cmds, err := q.store.ListCommands(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore commands: %w", err)
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	q.pending = cmds
	for _, cmd := range cmds {
		if cmd.Sequence > q.seq {
			q.seq = cmd.Sequence
		}
	}
	q.logger.Info("Restored pending commands", "count", len(cmds))
	return nil
}

// SetLastAcknowledged queues an "sla" request carrying tag.
func (q *Queue) SetLastAcknowledged(tag int) {
	cmd := q.enqueue(models.CommandSetLastAcknowledged, tag)
	q.logger.Debug("Queued set-last-acknowledged", "id", cmd.ID, "tag", tag)
}

func (q *Queue) enqueue(name string, tag int) *models.Command {
	q.mu.Lock()
	q.seq++
	cmd := &models.Command{
		ID:        uuid.New().String(),
		Name:      name,
		Tag:       tag,
		Sequence:  q.seq,
		CreatedAt: time.Now().UTC(),
	}
	q.pending = append(q.pending, cmd)
	q.mu.Unlock()

	if q.store != nil {
		// очередь не блокирует движок: ошибку записи только логируем
		if err := q.store.SaveCommand(context.Background(), cmd); err != nil {
			q.logger.Error("Failed to persist command", "id", cmd.ID, "error", err)
		}
	}
	return cmd
}

// Pending returns a copy of the queued commands in order.
func (q *Queue) Pending() []models.Command {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]models.Command, 0, len(q.pending))
	for _, cmd := range q.pending {
		out = append(out, *cmd)
	}
	return out
}

// Len returns the number of queued commands.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.pending)
}

// Drain hands every queued command to send in order and removes the ones
// that were sent. It stops at the first send error.
func (q *Queue) Drain(ctx context.Context, send func(ctx context.Context, cmd models.Command) error) (int, error) {
	sent := 0
	for _, cmd := range q.Pending() {
		if err := ctx.Err(); err != nil {
			return sent, err
		}
		if err := send(ctx, cmd); err != nil {
			return sent, fmt.Errorf("failed to send command %s: %w", cmd.ID, err)
		}
		if err := q.remove(ctx, cmd.ID); err != nil {
			return sent, err
		}
		sent++
	}
	return sent, nil
}

func (q *Queue) remove(ctx context.Context, id string) error {
	q.mu.Lock()
	for i, cmd := range q.pending {
		if cmd.ID == id {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			break
		}
	}
	q.mu.Unlock()

	if q.store == nil {
		return nil
	}
	if err := q.store.DeleteCommand(ctx, id); err != nil {
		return fmt.Errorf("failed to delete sent command: %w", err)
	}
	return nil
}
