package ui

import (
	"log/slog"
	"sync"

	"github.com/abenz1267/glance/internal/config"
	"github.com/abenz1267/glance/internal/preview"
	"github.com/abenz1267/glance/internal/util"
	"github.com/abenz1267/glance/internal/watch"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
)

type Thumbnailer interface {
	Wants(size int64) bool
	Thumbnail(path string) ([]byte, error)
}

// Controller turns selection changes into renderings. Bursts of changes are
// throttled so only the newest selection is decided and shown.
type Controller struct {
	panel    *Panel
	selector *preview.Selector
	thumbs   Thumbnailer
	fallback bool

	throttle *util.LatestOnly[*preview.Selection]
	watcher  *watch.Watcher

	mu      sync.Mutex
	current *preview.Selection
}

func NewController(panel *Panel, selector *preview.Selector, thumbs Thumbnailer, cfg *config.Config) (*Controller, error) {
	c := &Controller{
		panel:    panel,
		selector: selector,
		thumbs:   thumbs,
		fallback: cfg.Preview.FallbackIcon,
	}

	c.throttle = util.NewLatestOnly(cfg.Preview.Throttle(), c.update)

	if cfg.Watch.Enabled {
		w, err := watch.New(cfg.Watch.Debounce(), c.refresh, func(err error) {
			slog.Error("watch", "error", err)
		})
		if err != nil {
			c.throttle.Stop()
			return nil, err
		}

		c.watcher = w
	}

	return c, nil
}

// SelectionChanged is the entry point for the host's selection model. nil
// means nothing is selected.
func (c *Controller) SelectionChanged(sel *preview.Selection) {
	c.mu.Lock()
	c.current = sel
	c.mu.Unlock()

	c.throttle.Execute(sel)
}

func (c *Controller) Close() {
	c.throttle.Stop()

	if c.watcher != nil {
		if err := c.watcher.Close(); err != nil {
			slog.Error("watch", "error", err)
		}
	}
}

func (c *Controller) refresh(path string) {
	c.mu.Lock()
	sel := c.current
	c.mu.Unlock()

	if sel != nil && c.watcher != nil && c.watcher.Path() == path {
		c.throttle.Execute(sel)
	}
}

func (c *Controller) update(sel *preview.Selection) {
	r := c.render(sel)

	if c.watcher != nil {
		path := ""
		if sel != nil {
			path = sel.Path
		}

		if err := c.watcher.Watch(path); err != nil {
			slog.Warn("watch", "path", path, "error", err)
		}
	}

	glib.IdleAdd(func() {
		c.mu.Lock()
		stale := c.current != sel
		c.mu.Unlock()

		if stale {
			return
		}

		c.panel.Apply(r)
	})
}

func (c *Controller) render(sel *preview.Selection) Rendering {
	r := Rendering{Selection: sel}

	d, err := c.selector.DecideWithFallback(sel, c.fallback)
	if err != nil {
		slog.Error("preview", "path", sel.Path, "error", err)
		r.Decision = preview.HiddenDecision()
		return r
	}

	r.Decision = d

	switch d.Kind {
	case preview.Icon:
		if info, err := preview.Stat(sel.Path); err == nil {
			r.Details = info.Summary(d.MIME)
		}
	case preview.Image:
		if c.thumbs == nil {
			break
		}

		info, err := preview.Stat(d.Path)
		if err != nil || !c.thumbs.Wants(info.Size) {
			break
		}

		b, err := c.thumbs.Thumbnail(d.Path)
		if err != nil {
			slog.Error("thumbnail", "path", d.Path, "error", err)
			break
		}

		r.Thumbnail = b
	}

	return r
}
