package preview

import (
	"errors"
	"fmt"
	"mime"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

const OctetStream = "application/octet-stream"

// ErrMimeResolution reports that a sniffed content type has no usable MIME
// mapping. It means the sniffer and the parser disagree, not that the file
// is odd.
var ErrMimeResolution = errors.New("mime resolution failed")

type MimeGuess struct {
	Type      string
	Subtype   string
	Uncertain bool
}

func (m MimeGuess) Essence() string {
	return m.Type + "/" + m.Subtype
}

// ParseMime parses a MIME string such as "text/plain; charset=utf-8" into
// its type and subtype. Parameters are dropped.
func ParseMime(s string) (MimeGuess, error) {
	mediaType, _, err := mime.ParseMediaType(s)
	if err != nil {
		return MimeGuess{}, fmt.Errorf("%w: %q: %w", ErrMimeResolution, s, err)
	}

	typ, sub, ok := strings.Cut(mediaType, "/")
	if !ok || typ == "" || sub == "" {
		return MimeGuess{}, fmt.Errorf("%w: %q has no subtype", ErrMimeResolution, s)
	}

	return MimeGuess{Type: typ, Subtype: sub}, nil
}

// lossy decodes b as UTF-8, replacing invalid sequences with U+FFFD.
func lossy(b []byte) string {
	if len(b) == 0 {
		return ""
	}

	out, err := unicode.UTF8.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "�")
	}

	return string(out)
}
