package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/iudanet/cloudalerts/internal/models"
)

func (c *Cli) runPending() error {
	tmpl := template.Must(template.New("pending").Parse(pendingListTemplate))
	return tmpl.Execute(c.io, c.queue.Pending())
}

// runFlush writes every pending command to the output as one JSON object
// per line and removes it from the queue.
func (c *Cli) runFlush(ctx context.Context) error {
	enc := json.NewEncoder(c.io)

	sent, err := c.queue.Drain(ctx, func(_ context.Context, cmd models.Command) error {
		return enc.Encode(cmd)
	})
	if err != nil {
		return fmt.Errorf("flush stopped after %d command(s): %w", sent, err)
	}

	c.logger.Info("Pending commands flushed", "count", sent)
	return nil
}
