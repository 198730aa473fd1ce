package ui

import (
	"log/slog"
	"os"

	"github.com/abenz1267/glance/internal/config"
	"github.com/abenz1267/glance/internal/preview"
	"github.com/abenz1267/glance/internal/thumbnail"
	"github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
)

const appID = "dev.benz.glance"

// Run shows the preview window. The first selection is rendered right away,
// later ones are read from feed until it is closed. Returns the exit status.
func Run(cfg *config.Config, selector *preview.Selector, initial *preview.Selection, feed <-chan *preview.Selection) int {
	app := gtk.NewApplication(appID, gio.ApplicationNonUnique)

	var ctrl *Controller

	app.ConnectActivate(func() {
		builder := gtk.NewBuilderFromString(layout)

		window := builder.GetObject("Window").Cast().(*gtk.Window)
		window.SetName("window")
		window.SetDefaultSize(cfg.Window.Width, cfg.Window.Height)

		var thumbs Thumbnailer
		if cfg.Thumbnail.Enabled {
			thumbs = thumbnail.New(cfg.Thumbnail.Size, cfg.Thumbnail.MinBytes)
		}

		var err error

		ctrl, err = NewController(newPanel(builder, cfg), selector, thumbs, cfg)
		if err != nil {
			slog.Error("preview", "error", err)
			app.Quit()
			return
		}

		initShell(window, cfg)
		setupKeyEvents(window)

		window.ConnectCloseRequest(func() bool {
			ctrl.Close()
			return false
		})

		app.AddWindow(window)
		window.SetVisible(true)

		ctrl.SelectionChanged(initial)

		if feed != nil {
			go func() {
				for sel := range feed {
					ctrl.SelectionChanged(sel)
				}
			}()
		}
	})

	status := app.Run([]string{os.Args[0]})

	if cfg.Thumbnail.Enabled {
		thumbnail.Shutdown()
	}

	return status
}

func initShell(window *gtk.Window, cfg *config.Config) {
	if !cfg.Window.LayerShell {
		return
	}

	if !gtk4layershell.IsSupported() {
		slog.Warn("layer shell", "error", "not supported by compositor")
		return
	}

	gtk4layershell.InitForWindow(window)
	gtk4layershell.SetNamespace(window, "glance")
	gtk4layershell.SetLayer(window, gtk4layershell.LayerShellLayerOverlay)
	gtk4layershell.SetKeyboardMode(window, gtk4layershell.LayerShellKeyboardModeOnDemand)
}

func setupKeyEvents(window *gtk.Window) {
	controller := gtk.NewEventControllerKey()
	controller.SetPropagationPhase(gtk.PhaseCapture)

	controller.ConnectKeyPressed(func(val, code uint, state gdk.ModifierType) bool {
		if val == gdk.KEY_Escape {
			window.Close()
			return true
		}

		return false
	})

	window.AddController(controller)
}
