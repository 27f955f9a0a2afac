package scanner

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Default tags delimiting the script block
const (
	DefaultStartTag = "<script>"
	DefaultEndTag   = "</script>"
)

// Precondition failures: the region could not be located, so nothing is scanned
var (
	ErrMarkerNotFound    = errors.New("could not find JavaScript marker")
	ErrScriptTagNotFound = errors.New("could not find script tag containing marker")
	ErrScriptEndNotFound = errors.New("could not find closing script tag")
)

// SourceLine is one line of the script region
type SourceLine struct {
	Number  int
	Raw     string
	Trimmed string
}

// Skipped reports whether the line takes no part in the scan
func (l SourceLine) Skipped() bool {
	return l.Trimmed == "" || strings.HasPrefix(l.Trimmed, "//")
}

// Indent returns the width of the leading whitespace, one per character
func (l SourceLine) Indent() int {
	return utf8.RuneCountInString(l.Raw) - utf8.RuneCountInString(strings.TrimLeftFunc(l.Raw, unicode.IsSpace))
}

// Region is the text between the script tag enclosing the marker and the
// first closing tag after it
type Region struct {
	Text string

	// Byte offsets of Text within the document
	Start int
	End   int

	// StartLine is the 1-based document line holding the opening tag
	StartLine int
}

// Lines splits the region into numbered source lines. Line 1 is the rest of
// the opening tag's line.
func (r *Region) Lines() []SourceLine {
	return SplitLines(r.Text)
}

// EndLine returns the document line holding the closing tag
func (r *Region) EndLine() int {
	return r.StartLine + strings.Count(r.Text, "\n")
}

// SplitLines numbers every line of text starting at 1
func SplitLines(text string) []SourceLine {
	raw := strings.Split(text, "\n")
	lines := make([]SourceLine, len(raw))
	for i, r := range raw {
		lines[i] = SourceLine{
			Number:  i + 1,
			Raw:     r,
			Trimmed: strings.TrimSpace(r),
		}
	}
	return lines
}

// Locator finds the script region holding a marker string
type Locator struct {
	Marker   string
	StartTag string
	EndTag   string
}

// NewLocator creates a locator using the default script tags
func NewLocator(marker string) *Locator {
	return &Locator{
		Marker:   marker,
		StartTag: DefaultStartTag,
		EndTag:   DefaultEndTag,
	}
}

// Locate returns the region between the nearest start tag before the marker
// and the first end tag after that start tag
func (l *Locator) Locate(content string) (*Region, error) {
	// An empty marker matches at offset 0, so no tag can precede it
	markerAt := strings.Index(content, l.Marker)
	if markerAt == -1 {
		return nil, ErrMarkerNotFound
	}

	startAt := strings.LastIndex(content[:markerAt], l.StartTag)
	if startAt == -1 {
		return nil, ErrScriptTagNotFound
	}

	endRel := strings.Index(content[startAt:], l.EndTag)
	if endRel == -1 {
		return nil, ErrScriptEndNotFound
	}
	endAt := startAt + endRel

	textStart := startAt + len(l.StartTag)
	if textStart > endAt {
		textStart = endAt
	}

	return &Region{
		Text:      content[textStart:endAt],
		Start:     textStart,
		End:       endAt,
		StartLine: strings.Count(content[:startAt], "\n") + 1,
	}, nil
}
