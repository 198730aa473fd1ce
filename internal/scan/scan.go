// Package scan classifies every file below a directory the way the preview
// panel would.
package scan

import (
	"context"
	"log/slog"

	"github.com/abenz1267/glance/internal/preview"
	"github.com/boyter/gocodewalker"
)

type Result struct {
	Path     string           `json:"path"`
	Decision preview.Decision `json:"decision"`
	Err      error            `json:"-"`
}

type Options struct {
	IgnoreGitIgnore bool
	IncludeHidden   bool
	Concurrency     int
}

type Scanner struct {
	selector *preview.Selector
	opts     Options
}

func New(selector *preview.Selector, opts Options) *Scanner {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}

	return &Scanner{selector: selector, opts: opts}
}

// Run walks root and calls fn for every file. Entries that cannot be walked
// are logged and skipped; fn is never called concurrently.
func (s *Scanner) Run(ctx context.Context, root string, fn func(Result)) error {
	queue := make(chan *gocodewalker.File, 100)

	walker := gocodewalker.NewFileWalker(root, queue)
	walker.IgnoreGitIgnore = s.opts.IgnoreGitIgnore
	walker.IncludeHidden = s.opts.IncludeHidden
	walker.SetConcurrency(s.opts.Concurrency)

	walker.SetErrorHandler(func(e error) bool {
		slog.Warn("scan", "root", root, "error", e)
		return true
	})

	errc := make(chan error, 1)

	go func() {
		errc <- walker.Start()
	}()

	terminated := false

	for f := range queue {
		if ctx.Err() != nil {
			if !terminated {
				walker.Terminate()
				terminated = true
			}

			continue
		}

		d, err := s.selector.Decide(&preview.Selection{Path: f.Location})
		if err != nil {
			d = preview.FallbackDecision()
		}

		fn(Result{Path: f.Location, Decision: d, Err: err})
	}

	if err := <-errc; err != nil {
		return err
	}

	return ctx.Err()
}

// Summary counts results per decision kind.
type Summary map[preview.Kind]int

func (s Summary) Add(r Result) {
	s[r.Decision.Kind]++
}
