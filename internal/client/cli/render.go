package cli

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/iudanet/cloudalerts/internal/models"
)

const (
	ansiBold  = "\x1b[1m"
	ansiReset = "\x1b[0m"
)

// printAlerts lists the relevant alerts, unseen ones marked with "*".
func (c *Cli) printAlerts(title string, alerts []models.Alert) {
	c.io.Printf("=== %s ===\n", title)
	c.io.Println()

	shown := 0
	for _, a := range alerts {
		b := a.Common()
		if !b.Relevant {
			continue
		}
		shown++

		header, text := c.alerts.Text(a)
		line := formatAlert(b, header, text)
		line = truncate(line, c.io.Width())

		if !b.Seen && c.io.IsTerminal() {
			line = ansiBold + line + ansiReset
		}
		c.io.Println(line)
	}

	if shown == 0 {
		c.io.Println("No alerts")
	}
}

func formatAlert(b *models.Base, header, text string) string {
	mark := " "
	if !b.Seen {
		mark = "*"
	}
	ts := time.Unix(b.Timestamp, 0).UTC().Format("2006-01-02 15:04")

	if header == "" {
		return fmt.Sprintf("%s #%d %s [%s] %s", mark, b.ID, ts, b.Type, text)
	}
	return fmt.Sprintf("%s #%d %s [%s] %s: %s", mark, b.ID, ts, b.Type, header, text)
}

// truncate shortens s to width runes, ending it with "...". Widths too
// small to hold the ellipsis leave s unchanged.
func truncate(s string, width int) string {
	if width <= 3 || utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}
