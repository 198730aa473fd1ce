package preview

import (
	"log/slog"
)

type EventKind int

const (
	Selected EventKind = iota
	ReadFailed
	Guessed
	Decided
	FellBack
)

// Event is emitted while a decision is computed. Only the fields relevant
// to Kind are set.
type Event struct {
	Kind        EventKind
	Path        string
	ContentType string
	MIME        string
	Uncertain   bool
	Decision    Decision
	Err         error
}

type Observer func(Event)

// SlogObserver reports events to logger.
func SlogObserver(logger *slog.Logger) Observer {
	return func(e Event) {
		switch e.Kind {
		case Selected:
			if e.Path == "" {
				logger.Info("new selection", "path", nil)
				return
			}

			logger.Info("new selection", "path", e.Path)
		case ReadFailed:
			logger.Warn("read block", "path", e.Path, "error", e.Err)
		case Guessed:
			logger.Info("guessed mime", "path", e.Path, "content_type", e.ContentType, "mime", e.MIME, "uncertain", e.Uncertain)
		case Decided:
			if e.Decision.Kind == Text {
				logger.Debug("text", "path", e.Path, "text", e.Decision.Text)
			}

			logger.Debug("decided", "path", e.Path, "kind", e.Decision.Kind.String(), "mime", e.Decision.MIME)
		case FellBack:
			logger.Warn("preview", "path", e.Path, "error", e.Err, "fallback", e.Decision.MIME)
		}
	}
}
