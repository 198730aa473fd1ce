// Package feed turns a line based stream into selection changes.
package feed

import (
	"bufio"
	"io"
	"log/slog"
	"strings"

	"github.com/abenz1267/glance/internal/preview"
)

// Read sends one selection per line of r. Empty lines clear the selection.
// The channel is closed at EOF.
func Read(r io.Reader) <-chan *preview.Selection {
	out := make(chan *preview.Selection)

	go func() {
		defer close(out)

		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 4096), 1024*1024)

		for scanner.Scan() {
			out <- Parse(scanner.Text())
		}

		if err := scanner.Err(); err != nil {
			slog.Error("feed", "error", err)
		}
	}()

	return out
}

func Parse(line string) *preview.Selection {
	line = strings.TrimRight(line, "\r")

	if strings.TrimSpace(line) == "" {
		return nil
	}

	return &preview.Selection{Path: line}
}
