package storage

import (
	"context"

	"github.com/iudanet/cloudalerts/internal/models"
)

//go:generate moq -out commands_mock.go . CommandStorage

// CommandStorage persists outbound commands until they are sent
type CommandStorage interface {
	// SaveCommand stores or replaces a command by ID
	SaveCommand(ctx context.Context, cmd *models.Command) error

	// ListCommands returns queued commands ordered by sequence
	ListCommands(ctx context.Context) ([]*models.Command, error)

	// DeleteCommand removes a sent command
	// Returns ErrCommandNotFound if it does not exist
	DeleteCommand(ctx context.Context, id string) error
}
