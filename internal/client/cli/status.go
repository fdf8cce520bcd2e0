package cli

import (
	"context"
	"errors"
	"fmt"
	"text/template"
	"time"

	"github.com/iudanet/cloudalerts/internal/client/storage"
	"github.com/iudanet/cloudalerts/internal/models"
)

type statusView struct {
	Markers  *models.SeenMarkers
	LastSync string
	Pending  int
}

func (c *Cli) runStatus(ctx context.Context) error {
	view := statusView{Pending: c.queue.Len()}

	markers, err := c.metadata.GetSeenMarkers(ctx)
	switch {
	case err == nil:
		view.Markers = &markers
	case !errors.Is(err, storage.ErrMarkersNotFound):
		return fmt.Errorf("failed to get seen markers: %w", err)
	}

	// нулевой timestamp означает что синхронизации еще не было
	ts, err := c.metadata.GetLastSyncTimestamp(ctx)
	if err != nil {
		return fmt.Errorf("failed to get last sync timestamp: %w", err)
	}
	if ts > 0 {
		view.LastSync = time.Unix(ts, 0).UTC().Format(time.RFC3339)
	}

	tmpl := template.Must(template.New("status").Parse(statusTemplate))
	return tmpl.Execute(c.io, view)
}
