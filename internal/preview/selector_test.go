package preview

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func writeFile(t *testing.T, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	return path
}

type stubSniffer struct {
	contentType string
	uncertain   bool
	mime        string
	resolves    bool

	gotName string
	gotData []byte
}

func (s *stubSniffer) Guess(filename string, data []byte) (string, bool) {
	s.gotName = filename
	s.gotData = data

	return s.contentType, s.uncertain
}

func (s *stubSniffer) MIMEType(string) (string, bool) {
	return s.mime, s.resolves
}

type countingReader struct {
	calls int
	data  []byte
	err   error
}

func (r *countingReader) ReadBlock(string, int) ([]byte, error) {
	r.calls++
	return r.data, r.err
}

func TestDecide_NoSelection(t *testing.T) {
	t.Run("returns hidden without touching the filesystem", func(t *testing.T) {
		reader := &countingReader{}
		sel := NewSelector(WithReader(reader))

		d, err := sel.Decide(nil)

		require.NoError(t, err)
		assert.Equal(t, HiddenDecision(), d)
		assert.Zero(t, reader.calls)
	})

	t.Run("does not depend on previous decisions", func(t *testing.T) {
		sel := NewSelector()
		path := writeFile(t, "notes.txt", []byte("hello"))

		_, err := sel.Decide(&Selection{Path: path})
		require.NoError(t, err)

		d, err := sel.Decide(nil)

		require.NoError(t, err)
		assert.Equal(t, Hidden, d.Kind)
	})
}

func TestDecide_Examples(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  []byte
		expected func(path string) Decision
	}{
		{
			name:    "text file shows its content",
			file:    "notes.txt",
			content: []byte("hello"),
			expected: func(string) Decision {
				return TextDecision("hello", "text/plain")
			},
		},
		{
			name:    "png shows the image itself",
			file:    "photo.png",
			content: pngHeader,
			expected: func(path string) Decision {
				return ImageDecision(path, "image/png")
			},
		},
		{
			name:    "zip falls back to an icon",
			file:    "archive.zip",
			content: []byte("PK\x03\x04\x14\x00\x00\x00\x08\x00"),
			expected: func(string) Decision {
				return IconDecision("application/zip")
			},
		},
		{
			name:    "unknown extension is classified by content",
			file:    "README",
			content: []byte("plain words\n"),
			expected: func(string) Decision {
				return TextDecision("plain words\n", "text/plain")
			},
		},
		{
			name:    "png bytes without extension",
			file:    "blob",
			content: pngHeader,
			expected: func(path string) Decision {
				return ImageDecision(path, "image/png")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)

			d, err := NewSelector().Decide(&Selection{Path: path})

			require.NoError(t, err)
			assert.Equal(t, tt.expected(path), d)
		})
	}
}

func TestDecide_UnreadableFile(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		file     string
		kind     Kind
		expected string
	}{
		{file: "photo.png", kind: Image, expected: "image/png"},
		{file: "archive.zip", kind: Icon, expected: "application/zip"},
		{file: "notes.txt", kind: Text, expected: "text/plain"},
		{file: "no-extension", kind: Icon, expected: OctetStream},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)

			d, err := NewSelector().Decide(&Selection{Path: path})

			require.NoError(t, err)
			assert.Equal(t, tt.kind, d.Kind)
			assert.Equal(t, tt.expected, d.MIME)
			assert.Empty(t, d.Text)
		})
	}

	t.Run("read errors reach the observer only", func(t *testing.T) {
		var events []Event
		reader := &countingReader{err: fs.ErrPermission}

		sel := NewSelector(WithReader(reader), WithObserver(func(e Event) {
			events = append(events, e)
		}))

		d, err := sel.Decide(&Selection{Path: "secret.txt"})

		require.NoError(t, err)
		assert.Equal(t, TextDecision("", "text/plain"), d)

		var failed []Event
		for _, e := range events {
			if e.Kind == ReadFailed {
				failed = append(failed, e)
			}
		}

		require.Len(t, failed, 1)
		assert.ErrorIs(t, failed[0].Err, fs.ErrPermission)
	})
}

func TestDecide_Boundaries(t *testing.T) {
	t.Run("empty file is a valid input", func(t *testing.T) {
		path := writeFile(t, "empty.txt", nil)

		d, err := NewSelector().Decide(&Selection{Path: path})

		require.NoError(t, err)
		assert.Equal(t, TextDecision("", "text/plain"), d)
	})

	t.Run("large file is truncated to one block", func(t *testing.T) {
		path := writeFile(t, "big.txt", bytes.Repeat([]byte("a"), BlockSize*3))

		d, err := NewSelector().Decide(&Selection{Path: path})

		require.NoError(t, err)
		assert.Equal(t, Text, d.Kind)
		assert.Len(t, d.Text, BlockSize)
	})

	t.Run("file of exactly one block is kept whole", func(t *testing.T) {
		path := writeFile(t, "exact.txt", bytes.Repeat([]byte("b"), BlockSize))

		d, err := NewSelector().Decide(&Selection{Path: path})

		require.NoError(t, err)
		assert.Len(t, d.Text, BlockSize)
	})

	t.Run("oversized reader output is clamped", func(t *testing.T) {
		sniffer := &stubSniffer{contentType: "text/plain", mime: "text/plain", resolves: true}
		reader := &countingReader{data: bytes.Repeat([]byte("c"), BlockSize+10)}

		d, err := NewSelector(WithReader(reader), WithSniffer(sniffer)).Decide(&Selection{Path: "x"})

		require.NoError(t, err)
		assert.Len(t, sniffer.gotData, BlockSize)
		assert.Len(t, d.Text, BlockSize)
	})

	t.Run("directory degrades to an empty block", func(t *testing.T) {
		d, err := NewSelector().Decide(&Selection{Path: t.TempDir()})

		require.NoError(t, err)
		assert.Equal(t, IconDecision(OctetStream), d)
	})
}

func TestDecide_Idempotent(t *testing.T) {
	path := writeFile(t, "notes.md", []byte("# title\n\nbody"))
	sel := NewSelector()

	first, err := sel.Decide(&Selection{Path: path})
	require.NoError(t, err)

	second, err := sel.Decide(&Selection{Path: path})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, TextDecision("# title\n\nbody", "text/markdown"), first)
}

func TestDecide_LossyText(t *testing.T) {
	path := writeFile(t, "broken.txt", []byte{'h', 'i', 0xff, '!'})

	d, err := NewSelector().Decide(&Selection{Path: path})

	require.NoError(t, err)
	assert.Equal(t, "hi�!", d.Text)
}

func TestDecide_PassesPathAndBlockToSniffer(t *testing.T) {
	sniffer := &stubSniffer{contentType: "public.data", mime: "application/x-thing", resolves: true}
	reader := &countingReader{data: []byte("abc")}

	d, err := NewSelector(WithReader(reader), WithSniffer(sniffer)).Decide(&Selection{Path: "/tmp/thing.bin"})

	require.NoError(t, err)
	assert.Equal(t, "/tmp/thing.bin", sniffer.gotName)
	assert.Equal(t, []byte("abc"), sniffer.gotData)
	assert.Equal(t, IconDecision("application/x-thing"), d)
}

func TestDecide_UncertainIsIgnored(t *testing.T) {
	certain := &stubSniffer{contentType: "image/gif", mime: "image/gif", resolves: true}
	uncertain := &stubSniffer{contentType: "image/gif", mime: "image/gif", resolves: true, uncertain: true}
	reader := &countingReader{}

	a, err := NewSelector(WithReader(reader), WithSniffer(certain)).Decide(&Selection{Path: "a.gif"})
	require.NoError(t, err)

	b, err := NewSelector(WithReader(reader), WithSniffer(uncertain)).Decide(&Selection{Path: "a.gif"})
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestDecide_ResolutionErrors(t *testing.T) {
	reader := &countingReader{data: []byte("x")}

	t.Run("content type without mime mapping", func(t *testing.T) {
		sniffer := &stubSniffer{contentType: "weird/type"}

		_, err := NewSelector(WithReader(reader), WithSniffer(sniffer)).Decide(&Selection{Path: "x"})

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMimeResolution))

		var resErr *ResolutionError
		require.ErrorAs(t, err, &resErr)
		assert.Equal(t, "weird/type", resErr.ContentType)
	})

	t.Run("mime without subtype", func(t *testing.T) {
		sniffer := &stubSniffer{contentType: "x", mime: "notamime", resolves: true}

		_, err := NewSelector(WithReader(reader), WithSniffer(sniffer)).Decide(&Selection{Path: "x"})

		assert.ErrorIs(t, err, ErrMimeResolution)
	})

	t.Run("malformed media type", func(t *testing.T) {
		sniffer := &stubSniffer{contentType: "x", mime: "text/plain; =", resolves: true}

		_, err := NewSelector(WithReader(reader), WithSniffer(sniffer)).Decide(&Selection{Path: "x"})

		assert.ErrorIs(t, err, ErrMimeResolution)
	})
}

func TestDecide_Events(t *testing.T) {
	var kinds []EventKind
	var guessed Event

	sel := NewSelector(WithObserver(func(e Event) {
		kinds = append(kinds, e.Kind)
		if e.Kind == Guessed {
			guessed = e
		}
	}))

	path := writeFile(t, "notes.txt", []byte("hello"))

	_, err := sel.Decide(&Selection{Path: path})
	require.NoError(t, err)

	assert.Equal(t, []EventKind{Selected, Guessed, Decided}, kinds)
	assert.Equal(t, "text/plain", guessed.MIME)
	assert.Equal(t, path, guessed.Path)
}

func TestDecideWithFallback(t *testing.T) {
	reader := &countingReader{data: []byte("x")}

	t.Run("unresolvable type falls back to the generic icon", func(t *testing.T) {
		var events []Event
		sniffer := &stubSniffer{contentType: "weird/type"}

		sel := NewSelector(WithReader(reader), WithSniffer(sniffer), WithObserver(func(e Event) {
			events = append(events, e)
		}))

		d, err := sel.DecideWithFallback(&Selection{Path: "/nope"}, true)

		require.NoError(t, err)
		assert.Equal(t, FallbackDecision(), d)
		assert.Equal(t, IconDecision(OctetStream), d)

		last := events[len(events)-1]
		assert.Equal(t, FellBack, last.Kind)
		assert.Equal(t, "/nope", last.Path)
		assert.ErrorIs(t, last.Err, ErrMimeResolution)
	})

	t.Run("without fallback the resolution error is returned", func(t *testing.T) {
		sniffer := &stubSniffer{contentType: "weird/type"}

		d, err := NewSelector(WithReader(reader), WithSniffer(sniffer)).DecideWithFallback(&Selection{Path: "/nope"}, false)

		assert.ErrorIs(t, err, ErrMimeResolution)
		assert.Equal(t, Decision{}, d)
	})

	t.Run("resolvable types are unaffected", func(t *testing.T) {
		path := writeFile(t, "notes.txt", []byte("hello"))

		for _, fallback := range []bool{true, false} {
			d, err := NewSelector().DecideWithFallback(&Selection{Path: path}, fallback)

			require.NoError(t, err)
			assert.Equal(t, TextDecision("hello", "text/plain"), d)
		}
	})

	t.Run("no selection stays hidden", func(t *testing.T) {
		d, err := NewSelector().DecideWithFallback(nil, true)

		require.NoError(t, err)
		assert.Equal(t, HiddenDecision(), d)
	})
}

func TestDecide_LossyTruncatedRune(t *testing.T) {
	content := append(bytes.Repeat([]byte("a"), BlockSize-2), "€"...)
	path := writeFile(t, "cut.txt", content)

	d, err := NewSelector().Decide(&Selection{Path: path})

	require.NoError(t, err)
	assert.Equal(t, string(bytes.Repeat([]byte("a"), BlockSize-2))+"�", d.Text)
}
