package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fsnotify/fsnotify"
)

// ErrFileGone is returned by follow when the watched file is removed or renamed.
var ErrFileGone = errors.New("packets file removed")

// tailer reads whole lines appended to a file since the previous call.
type tailer struct {
	f       *os.File
	partial []byte // хвост без завершающего перевода строки
}

// next returns the complete lines written since the last call.
func (t *tailer) next() ([]byte, error) {
	data, err := io.ReadAll(t.f)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	buf := append(t.partial, data...)
	end := bytes.LastIndexByte(buf, '\n')
	if end < 0 {
		t.partial = buf
		return nil, nil
	}

	t.partial = append([]byte(nil), buf[end+1:]...)
	return buf[:end+1], nil
}

func (c *Cli) runFollow(ctx context.Context, args []string) error {
	if len(args) == 0 || len(args) > 2 {
		return fmt.Errorf("%w: cloudalerts follow <packets> [catchup]", ErrUsage)
	}

	catchup := ""
	if len(args) == 2 {
		catchup = args[1]
	}
	if err := c.restore(ctx, catchup); err != nil {
		return err
	}
	c.printAlerts("Alerts", c.alerts.Alerts())

	return c.follow(ctx, args[0])
}

// follow applies the packets already in path and then every line appended
// to it until ctx is done, printing the alerts each batch raises.
func (c *Cli) follow(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			c.logger.Error("failed to close packets file", "error", err)
		}
	}()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			c.logger.Error("failed to close watcher", "error", err)
		}
	}()

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	t := &tailer{f: f}
	if err := c.applyNew(ctx, t); err != nil {
		return err
	}

	c.logger.Info("Following packets", "path", path)
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
				return fmt.Errorf("%w: %s", ErrFileGone, path)
			}
			if ev.Has(fsnotify.Write) {
				if err := c.applyNew(ctx, t); err != nil {
					return err
				}
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.logger.Warn("Watcher error", "path", path, "error", err)
		}
	}
}

func (c *Cli) applyNew(ctx context.Context, t *tailer) error {
	lines, err := t.next()
	if err != nil {
		return fmt.Errorf("failed to read packets: %w", err)
	}
	if len(lines) == 0 {
		return nil
	}

	if _, err := c.sync.Process(ctx, bytes.NewReader(lines)); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("processing failed: %w", err)
	}

	if notify := c.alerts.TakeNotifications(); len(notify) > 0 {
		c.printAlerts("New alerts", notify)
	}
	return nil
}
