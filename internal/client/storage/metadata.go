package storage

import (
	"context"

	"github.com/iudanet/cloudalerts/internal/models"
)

//go:generate moq -out metadata_mock.go . MetadataStorage

// MetadataStorage defines interface for storing client session metadata
type MetadataStorage interface {
	// SaveLastSyncTimestamp saves the time of the last processed packet batch
	SaveLastSyncTimestamp(ctx context.Context, timestamp int64) error

	// GetLastSyncTimestamp retrieves the time of the last processed packet batch
	// Returns 0 if nothing has been processed yet
	GetLastSyncTimestamp(ctx context.Context) (int64, error)

	// SaveSeenMarkers stores the last-seen boundaries of the catch-up replay
	SaveSeenMarkers(ctx context.Context, m models.SeenMarkers) error

	// GetSeenMarkers returns the saved markers
	// Returns ErrMarkersNotFound if none were saved
	GetSeenMarkers(ctx context.Context) (models.SeenMarkers, error)
}
