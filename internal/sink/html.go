package sink

import (
	"bytes"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultHTMLLines is how many lines NewHTMLSink keeps.
const DefaultHTMLLines = 200

// HTMLSink is the output area of the page surface. Every line becomes an
// escaped <p> element. Only the most recent lines are kept.
type HTMLSink struct {
	mu       sync.Mutex
	lines    []string
	maxLines int
}

func NewHTMLSink() *HTMLSink {
	return NewBoundedHTMLSink(DefaultHTMLLines)
}

// NewBoundedHTMLSink returns a sink keeping at most maxLines lines. A
// non-positive maxLines falls back to DefaultHTMLLines.
func NewBoundedHTMLSink(maxLines int) *HTMLSink {
	if maxLines <= 0 {
		maxLines = DefaultHTMLLines
	}
	return &HTMLSink{maxLines: maxLines}
}

func (s *HTMLSink) Append(line string) error {
	p := &html.Node{Type: html.ElementNode, DataAtom: atom.P, Data: "p"}
	p.AppendChild(&html.Node{Type: html.TextNode, Data: line})

	var buf bytes.Buffer
	if err := html.Render(&buf, p); err != nil {
		return errors.Wrap(err, "sink: failed to render output line")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, buf.String())
	if drop := len(s.lines) - s.maxLines; drop > 0 {
		s.lines = append(s.lines[:0], s.lines[drop:]...)
	}
	return nil
}

// HTML returns the kept lines, oldest first.
func (s *HTMLSink) HTML() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return strings.Join(s.lines, "")
}

// Reset clears the output.
func (s *HTMLSink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
}
