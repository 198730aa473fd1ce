package preview

import "fmt"

// Selection references the entry the host has selected. A nil *Selection
// means nothing previewable is selected.
type Selection struct {
	Path string
}

type Kind int

const (
	Hidden Kind = iota
	Image
	Text
	Icon
)

func (k Kind) String() string {
	switch k {
	case Hidden:
		return "hidden"
	case Image:
		return "image"
	case Text:
		return "text"
	case Icon:
		return "icon"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Decision describes how a selection should be rendered. Path is set for
// Image, Text for Text. MIME holds the resolved essence for every kind
// except Hidden.
type Decision struct {
	Kind Kind   `json:"kind"`
	Path string `json:"path,omitempty"`
	Text string `json:"text,omitempty"`
	MIME string `json:"mime,omitempty"`
}

func HiddenDecision() Decision {
	return Decision{Kind: Hidden}
}

func ImageDecision(path, essence string) Decision {
	return Decision{Kind: Image, Path: path, MIME: essence}
}

func TextDecision(text, essence string) Decision {
	return Decision{Kind: Text, Text: text, MIME: essence}
}

func IconDecision(essence string) Decision {
	return Decision{Kind: Icon, MIME: essence}
}

// FallbackDecision is what callers render when the content type could not
// be resolved.
func FallbackDecision() Decision {
	return IconDecision(OctetStream)
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}
