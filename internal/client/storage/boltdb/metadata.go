package boltdb

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/cloudalerts/internal/client/storage"
	"github.com/iudanet/cloudalerts/internal/models"
)

const (
	keyLastSyncTimestamp = "last_sync_timestamp"
	keySeenMarkers       = "seen_markers"
)

// SaveLastSyncTimestamp saves the time of the last processed packet batch
func (s *Storage) SaveLastSyncTimestamp(ctx context.Context, timestamp int64) error {
	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		timestampBytes := make([]byte, 8)
		binary.BigEndian.PutUint64(timestampBytes, uint64(timestamp))

		if err := bucket.Put([]byte(keyLastSyncTimestamp), timestampBytes); err != nil {
			return fmt.Errorf("failed to save last sync timestamp: %w", err)
		}

		return nil
	})
}

// GetLastSyncTimestamp retrieves the time of the last processed packet batch
// Returns 0 if nothing has been processed yet
func (s *Storage) GetLastSyncTimestamp(ctx context.Context) (int64, error) {
	var timestamp int64

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		timestampBytes := bucket.Get([]byte(keyLastSyncTimestamp))
		if timestampBytes == nil {
			// первый запуск
			return nil
		}

		timestamp = int64(binary.BigEndian.Uint64(timestampBytes))
		return nil
	})

	if err != nil {
		return 0, fmt.Errorf("failed to get last sync timestamp: %w", err)
	}

	return timestamp, nil
}

// SaveSeenMarkers stores the last-seen boundaries of the catch-up replay
func (s *Storage) SaveSeenMarkers(ctx context.Context, m models.SeenMarkers) error {
	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		data, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("failed to marshal seen markers: %w", err)
		}

		if err := bucket.Put([]byte(keySeenMarkers), data); err != nil {
			return fmt.Errorf("failed to save seen markers: %w", err)
		}

		return nil
	})
}

// GetSeenMarkers returns the saved markers
// Returns storage.ErrMarkersNotFound if none were saved
func (s *Storage) GetSeenMarkers(ctx context.Context) (models.SeenMarkers, error) {
	var m models.SeenMarkers

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		data := bucket.Get([]byte(keySeenMarkers))
		if data == nil {
			return storage.ErrMarkersNotFound
		}

		if err := json.Unmarshal(data, &m); err != nil {
			return fmt.Errorf("failed to unmarshal seen markers: %w", err)
		}

		return nil
	})

	if err != nil {
		return models.SeenMarkers{}, err
	}

	return m, nil
}
