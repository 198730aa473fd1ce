// Package thumbnail scales images down for the preview panel and caches the
// result on disk.
package thumbnail

import (
	"errors"
	"log/slog"
	"os"
	"sync"

	"github.com/abenz1267/glance/internal/util"
	"github.com/davidbyttow/govips/v2/vips"
)

var (
	startup sync.Once
	started bool
)

type Generator struct {
	edge     int
	minBytes int64
}

// New returns a generator fitting images into an edge x edge box. Files
// smaller than minBytes are not worth thumbnailing.
func New(edge int, minBytes int64) *Generator {
	startup.Do(func() {
		vips.LoggingSettings(logVips, vips.LogLevelWarning)
		vips.Startup(nil)
		started = true
	})

	return &Generator{edge: edge, minBytes: minBytes}
}

// Shutdown releases libvips if a generator was created. Call once at exit.
func Shutdown() {
	if started {
		vips.Shutdown()
	}
}

func (g *Generator) Wants(size int64) bool {
	return size >= g.minBytes
}

// Thumbnail returns JPEG bytes for path, from cache when the file is
// unchanged.
func (g *Generator) Thumbnail(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if info.IsDir() {
		return nil, errors.New("thumbnail: is a directory")
	}

	dest, err := util.ThumbnailFile(util.ThumbnailKey(path, info.Size(), info.ModTime(), g.edge))
	if err != nil {
		return nil, err
	}

	if b, err := os.ReadFile(dest); err == nil && len(b) > 0 {
		return b, nil
	}

	image, err := vips.NewImageFromFile(path)
	if err != nil {
		return nil, err
	}
	defer image.Close()

	if err := image.Thumbnail(g.edge, g.edge, vips.InterestingNone); err != nil {
		return nil, err
	}

	ep := vips.NewDefaultJPEGExportParams()

	b, _, err := image.Export(ep)
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(dest, b, 0o600); err != nil {
		slog.Error("thumbnail", "cache", dest, "error", err)
	}

	return b, nil
}

func logVips(domain string, level vips.LogLevel, msg string) {
	switch level {
	case vips.LogLevelError, vips.LogLevelCritical:
		slog.Error("vips", "domain", domain, "msg", msg)
	case vips.LogLevelWarning:
		slog.Warn("vips", "domain", domain, "msg", msg)
	default:
		slog.Debug("vips", "domain", domain, "msg", msg)
	}
}
