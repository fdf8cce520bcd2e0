package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/iudanet/cloudalerts/internal/client/sync"
)

func (c *Cli) runReplay(ctx context.Context, args []string) error {
	if len(args) == 0 || len(args) > 2 {
		return fmt.Errorf("%w: cloudalerts replay <catchup> [packets]", ErrUsage)
	}

	if err := c.restore(ctx, args[0]); err != nil {
		return err
	}

	if len(args) == 2 {
		result, err := c.processFile(ctx, args[1])
		if err != nil {
			return err
		}
		c.printResult(result)
	}

	c.printAlerts("Alerts", c.alerts.Alerts())
	return nil
}

func (c *Cli) runProcess(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: cloudalerts process <packets>", ErrUsage)
	}

	if err := c.restore(ctx, ""); err != nil {
		return err
	}

	result, err := c.processFile(ctx, args[0])
	if err != nil {
		return err
	}
	c.printResult(result)
	c.printAlerts("Alerts", c.alerts.Alerts())
	return nil
}

func (c *Cli) runAck(ctx context.Context, args []string) error {
	if len(args) == 0 || len(args) > 2 {
		return fmt.Errorf("%w: cloudalerts ack <catchup> [tag]", ErrUsage)
	}

	tag := 0
	if len(args) == 2 {
		v, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("%w: tag must be a number: %v", ErrUsage, err)
		}
		tag = v
	}

	if err := c.restore(ctx, args[0]); err != nil {
		return err
	}

	c.alerts.TakeNotifications()
	c.alerts.AcknowledgeAll(tag)

	acked := c.alerts.TakeNotifications()
	c.io.Printf("Acknowledged %d alert(s), %d command(s) pending\n", len(acked), c.queue.Len())
	return nil
}

func (c *Cli) printResult(r *sync.Result) {
	c.io.Printf("Packets:  %d (applied %d, skipped %d)\n", r.Packets, r.Applied, r.Skipped)
	c.io.Printf("Alerts:   %d\n", r.Alerts)
	c.io.Printf("Notify:   %d\n", r.Notify)
	c.io.Println()
}
