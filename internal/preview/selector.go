// Package preview decides how a selected file should be previewed.
//
// The decision reads at most BlockSize bytes, asks a Sniffer for the content
// type and branches on the top-level MIME type. It never fails on unreadable
// files; it only fails when the sniffed type cannot be resolved to a MIME
// type, see ErrMimeResolution.
package preview

import "errors"

type Selector struct {
	reader  FileReader
	sniffer Sniffer
	observe Observer
}

type Option func(*Selector)

func WithReader(r FileReader) Option {
	return func(s *Selector) {
		s.reader = r
	}
}

func WithSniffer(sn Sniffer) Option {
	return func(s *Selector) {
		s.sniffer = sn
	}
}

func WithObserver(o Observer) Option {
	return func(s *Selector) {
		s.observe = o
	}
}

func NewSelector(opts ...Option) *Selector {
	s := &Selector{
		reader:  FSReader{},
		sniffer: NativeSniffer{},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Selector) Decide(sel *Selection) (Decision, error) {
	if sel == nil {
		s.emit(Event{Kind: Selected})
		s.emit(Event{Kind: Decided, Decision: HiddenDecision()})
		return HiddenDecision(), nil
	}

	s.emit(Event{Kind: Selected, Path: sel.Path})

	block, err := s.reader.ReadBlock(sel.Path, BlockSize)
	if err != nil {
		s.emit(Event{Kind: ReadFailed, Path: sel.Path, Err: err})
		block = nil
	}

	if len(block) > BlockSize {
		block = block[:BlockSize]
	}

	contentType, uncertain := s.sniffer.Guess(sel.Path, block)

	resolved, ok := s.sniffer.MIMEType(contentType)
	if !ok {
		return Decision{}, &ResolutionError{ContentType: contentType}
	}

	guess, err := ParseMime(resolved)
	if err != nil {
		return Decision{}, err
	}

	guess.Uncertain = uncertain

	s.emit(Event{Kind: Guessed, Path: sel.Path, ContentType: contentType, MIME: guess.Essence(), Uncertain: uncertain})

	var d Decision

	switch guess.Type {
	case "image":
		d = ImageDecision(sel.Path, guess.Essence())
	case "text":
		d = TextDecision(lossy(block), guess.Essence())
	default:
		d = IconDecision(guess.Essence())
	}

	s.emit(Event{Kind: Decided, Path: sel.Path, Decision: d})

	return d, nil
}

// DecideWithFallback is Decide with the icon fallback policy applied: when
// fallback is set, a MIME resolution failure yields FallbackDecision and is
// only reported to the observer. Other errors are returned as is.
func (s *Selector) DecideWithFallback(sel *Selection, fallback bool) (Decision, error) {
	d, err := s.Decide(sel)
	if err == nil {
		return d, nil
	}

	if !fallback || !errors.Is(err, ErrMimeResolution) {
		return Decision{}, err
	}

	d = FallbackDecision()

	s.emit(Event{Kind: FellBack, Path: sel.Path, Decision: d, Err: err})

	return d, nil
}

func (s *Selector) emit(e Event) {
	if s.observe != nil {
		s.observe(e)
	}
}

// ResolutionError is returned when a content type has no MIME mapping.
type ResolutionError struct {
	ContentType string
}

func (e *ResolutionError) Error() string {
	return ErrMimeResolution.Error() + ": no mime type for content type " + e.ContentType
}

func (e *ResolutionError) Unwrap() error {
	return ErrMimeResolution
}
