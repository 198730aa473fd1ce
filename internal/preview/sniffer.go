package preview

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Sniffer guesses a content type from a filename hint and leading bytes and
// maps content types to MIME strings.
type Sniffer interface {
	Guess(filename string, data []byte) (contentType string, uncertain bool)
	MIMEType(contentType string) (string, bool)
}

// extensions is consulted before the system MIME database so results don't
// depend on what /etc/mime.types happens to contain.
var extensions = map[string]string{
	".txt":  "text/plain",
	".md":   "text/markdown",
	".log":  "text/plain",
	".csv":  "text/csv",
	".go":   "text/x-go",
	".rs":   "text/rust",
	".py":   "text/x-python",
	".sh":   "text/x-shellscript",
	".toml": "text/x-toml",
	".yaml": "application/yaml",
	".yml":  "application/yaml",
	".json": "application/json",
	".html": "text/html",
	".css":  "text/css",
	".xml":  "application/xml",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
	".bmp":  "image/bmp",
	".zip":  "application/zip",
	".tar":  "application/x-tar",
	".gz":   "application/gzip",
	".pdf":  "application/pdf",
	".mp3":  "audio/mpeg",
	".mp4":  "video/mp4",
}

// NativeSniffer classifies without any platform facility. A known extension
// wins; otherwise the content decides.
type NativeSniffer struct{}

func (NativeSniffer) Guess(filename string, data []byte) (string, bool) {
	byName := typeByExtension(filename)

	if len(data) == 0 {
		if byName != "" {
			return byName, true
		}

		return OctetStream, true
	}

	byData := mimetype.Detect(data)

	if byName != "" {
		return byName, !sameTopLevel(byName, byData.String())
	}

	return byData.String(), byData.Is(OctetStream)
}

// MIMEType is the identity for non-empty types; NativeSniffer content types
// already are MIME strings.
func (NativeSniffer) MIMEType(contentType string) (string, bool) {
	return contentType, contentType != ""
}

func typeByExtension(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return ""
	}

	if t, ok := extensions[ext]; ok {
		return t
	}

	return mime.TypeByExtension(ext)
}

func sameTopLevel(a, b string) bool {
	at, _, _ := strings.Cut(a, "/")
	bt, _, _ := strings.Cut(b, "/")

	return at == bt
}
