package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"go.etcd.io/bbolt"

	"github.com/iudanet/cloudalerts/internal/client/storage"
	"github.com/iudanet/cloudalerts/internal/models"
)

// SaveCommand stores or replaces a command by ID
func (s *Storage) SaveCommand(ctx context.Context, cmd *models.Command) error {
	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCommands)
		if bucket == nil {
			return fmt.Errorf("commands bucket not found")
		}

		data, err := json.Marshal(cmd)
		if err != nil {
			return fmt.Errorf("failed to marshal command: %w", err)
		}

		if err := bucket.Put([]byte(cmd.ID), data); err != nil {
			return fmt.Errorf("failed to save command: %w", err)
		}

		return nil
	})
}

// ListCommands returns queued commands ordered by sequence
func (s *Storage) ListCommands(ctx context.Context) ([]*models.Command, error) {
	var cmds []*models.Command

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCommands)
		if bucket == nil {
			return fmt.Errorf("commands bucket not found")
		}

		// ключи - UUID, порядок восстанавливаем по sequence
		return bucket.ForEach(func(k, v []byte) error {
			cmd := &models.Command{}
			if err := json.Unmarshal(v, cmd); err != nil {
				return fmt.Errorf("failed to unmarshal command: %w", err)
			}
			cmds = append(cmds, cmd)
			return nil
		})
	})

	if err != nil {
		return nil, err
	}

	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Sequence < cmds[j].Sequence })
	return cmds, nil
}

// DeleteCommand removes a sent command
func (s *Storage) DeleteCommand(ctx context.Context, id string) error {
	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCommands)
		if bucket == nil {
			return fmt.Errorf("commands bucket not found")
		}

		if bucket.Get([]byte(id)) == nil {
			return storage.ErrCommandNotFound
		}

		if err := bucket.Delete([]byte(id)); err != nil {
			return fmt.Errorf("failed to delete command: %w", err)
		}

		return nil
	})
}
