package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/iudanet/cloudalerts/internal/client/iocli"
	"github.com/iudanet/cloudalerts/internal/client/storage"
	"github.com/iudanet/cloudalerts/internal/client/sync"
	"github.com/iudanet/cloudalerts/internal/commands"
	"github.com/iudanet/cloudalerts/internal/useralerts"
)

// ErrUnknownCommand is returned by Run for a command it does not handle.
var ErrUnknownCommand = errors.New("unknown command")

// ErrUsage is returned when a command is called with wrong arguments.
var ErrUsage = errors.New("invalid usage")

type Cli struct {
	io       iocli.IO
	alerts   *useralerts.UserAlerts
	sync     *sync.Service
	queue    *commands.Queue
	metadata storage.MetadataStorage
	logger   *slog.Logger
}

func New(out iocli.IO, alerts *useralerts.UserAlerts, syncService *sync.Service, queue *commands.Queue, metadata storage.MetadataStorage, logger *slog.Logger) *Cli {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Cli{
		io:       out,
		alerts:   alerts,
		sync:     syncService,
		queue:    queue,
		metadata: metadata,
		logger:   logger,
	}
}

// Run executes command with its arguments.
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "replay":
		return c.runReplay(ctx, args)
	case "process":
		return c.runProcess(ctx, args)
	case "follow":
		return c.runFollow(ctx, args)
	case "ack":
		return c.runAck(ctx, args)
	case "status":
		return c.runStatus(ctx)
	case "pending":
		return c.runPending()
	case "flush":
		return c.runFlush(ctx)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}
}

// openInput opens path for reading; "-" means standard input.
func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return f, nil
}

// restore reinstates the previous session and runs the catch-up replay
// from path. Without a replay the previous markers are kept and the
// engine is marked caught up.
func (c *Cli) restore(ctx context.Context, path string) error {
	if err := c.sync.Restore(ctx); err != nil {
		return err
	}

	if path == "" {
		c.alerts.CompleteCatchup()
		return nil
	}

	r, err := openInput(path)
	if err != nil {
		return err
	}
	defer func() {
		if err := r.Close(); err != nil {
			c.logger.Error("failed to close replay file", "error", err)
		}
	}()

	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read replay: %w", err)
	}

	if err := c.sync.Catchup(ctx, data); err != nil {
		// сессия продолжается без истории
		c.io.Printf("Warning: %v\n", err)
	}
	return nil
}

// processFile feeds the packets in path to the sync service.
func (c *Cli) processFile(ctx context.Context, path string) (*sync.Result, error) {
	r, err := openInput(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := r.Close(); err != nil {
			c.logger.Error("failed to close packets file", "error", err)
		}
	}()

	result, err := c.sync.Process(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("processing failed: %w", err)
	}
	return result, nil
}

func PrintUsage(w io.Writer) {
	_, _ = fmt.Fprint(w, usage)
}

const usage = `CloudAlerts Client

Usage:
  cloudalerts [OPTIONS] COMMAND

Options:
  --version          Show version information
  --config PATH      Path to config file (default: ~/.config/cloudalerts/config.yaml)
  --db PATH          Path to local metadata database
  --directory PATH   Path to local directory database
  --me HANDLE        Local account handle (base64)
  --log-level LEVEL  debug, info, warn or error

Commands:
  init                            Write a default config file
  replay <catchup> [packets]      Run the catch-up replay, apply packets and list alerts
  process <packets>               Apply packets on top of the saved session and list alerts
  follow <packets> [catchup]      Apply packets, then watch the file and print new alerts
  ack <catchup> [tag]             Replay and acknowledge every alert
  status                          Show the saved session state
  pending                         List commands waiting to be sent
  flush                           Write pending commands as JSON lines and drop them
  version                         Show version information

Use "-" instead of a file name to read from standard input.

Examples:
  cloudalerts --me AQAAAAAAAAA replay catchup.json packets.jsonl
  cloudalerts follow /var/spool/cloudalerts/packets.jsonl catchup.json
  cloudalerts ack catchup.json 12
`
