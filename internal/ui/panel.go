package ui

import (
	_ "embed"
	"log/slog"
	"path/filepath"

	"github.com/abenz1267/glance/internal/config"
	"github.com/abenz1267/glance/internal/platform"
	"github.com/abenz1267/glance/internal/preview"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
)

//go:embed layout.xml
var layout string

// Rendering is a decision plus what was computed off the main loop to show
// it.
type Rendering struct {
	Selection *preview.Selection
	Decision  preview.Decision
	Details   string
	Thumbnail []byte
}

// Panel owns the preview widgets. All methods must run on the GTK main
// loop.
type Panel struct {
	box           *gtk.Box
	image         *gtk.Image
	textContainer *gtk.ScrolledWindow
	text          *gtk.TextView
	fileName      *gtk.Label
	details       *gtk.Label
	imageSize     int
}

func newPanel(builder *gtk.Builder, cfg *config.Config) *Panel {
	p := &Panel{
		box:           builder.GetObject("Preview").Cast().(*gtk.Box),
		image:         builder.GetObject("Image").Cast().(*gtk.Image),
		textContainer: builder.GetObject("TextContainer").Cast().(*gtk.ScrolledWindow),
		text:          builder.GetObject("Text").Cast().(*gtk.TextView),
		fileName:      builder.GetObject("FileName").Cast().(*gtk.Label),
		details:       builder.GetObject("Details").Cast().(*gtk.Label),
		imageSize:     cfg.Thumbnail.Size,
	}

	p.box.SetName("preview")
	p.image.SetName("image")
	p.textContainer.SetName("text-container")
	p.text.SetName("text")
	p.fileName.SetName("file-name")
	p.details.SetName("details")

	p.text.SetMonospace(cfg.Text.Monospace)

	if cfg.Text.Wrap {
		p.text.SetWrapMode(gtk.WrapWordChar)
	}

	p.box.SetOpacity(0)

	return p
}

// Opacity is 0 for Hidden so the panel keeps its allocated space.
func Opacity(d preview.Decision) float64 {
	if d.Kind == preview.Hidden {
		return 0
	}

	return 1
}

func (p *Panel) Apply(r Rendering) {
	if r.Selection == nil || r.Decision.Kind == preview.Hidden {
		p.box.SetOpacity(Opacity(preview.HiddenDecision()))
		return
	}

	p.fileName.SetText(filepath.Base(r.Selection.Path))

	p.image.SetVisible(false)
	p.textContainer.SetVisible(false)
	p.details.SetVisible(false)

	switch r.Decision.Kind {
	case preview.Image:
		p.showImage(r)
	case preview.Text:
		p.text.Buffer().SetText(r.Decision.Text)
		p.textContainer.SetVisible(true)
	default:
		p.image.SetFromGIcon(platform.Icon(r.Decision.MIME))
		p.image.SetIconSize(gtk.IconSizeLarge)
		p.image.SetPixelSize(-1)
		p.image.SetVisible(true)

		if r.Details != "" {
			p.details.SetText(r.Details)
			p.details.SetVisible(true)
		}
	}

	p.box.SetOpacity(Opacity(r.Decision))
}

func (p *Panel) showImage(r Rendering) {
	p.image.SetPixelSize(p.imageSize)

	if len(r.Thumbnail) > 0 {
		t, err := gdk.NewTextureFromBytes(glib.NewBytes(r.Thumbnail))
		if err == nil {
			p.image.SetFromPaintable(t)
			p.image.SetVisible(true)
			return
		}

		slog.Error("thumbnail", "path", r.Decision.Path, "error", err)
	}

	p.image.SetFromFile(r.Decision.Path)
	p.image.SetVisible(true)
}
