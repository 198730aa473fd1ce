// Package platform binds the preview core to GLib's content type system.
package platform

import (
	"github.com/diamondburned/gotk4/pkg/gio/v2"
)

// Sniffer uses g_content_type_guess. Content types are platform specific
// (MIME strings on Unix, UTIs or extensions elsewhere), so MIMEType maps them
// back through g_content_type_get_mime_type.
type Sniffer struct{}

func (Sniffer) Guess(filename string, data []byte) (string, bool) {
	uncertain, contentType := gio.ContentTypeGuess(filename, data)

	return contentType, uncertain
}

func (Sniffer) MIMEType(contentType string) (string, bool) {
	mime := gio.ContentTypeGetMIMEType(contentType)

	return mime, mime != ""
}

// Icon returns the themed icon GLib associates with a MIME type.
func Icon(mime string) *gio.Icon {
	return gio.ContentTypeGetIcon(gio.ContentTypeFromMIMEType(mime))
}
